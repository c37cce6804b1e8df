// Package record decodes the row payloads stored in table b-tree leaf cells.
//
// A record is a header followed by a body:
//
//	header: varint header-size, then one varint serial type per column
//	body:   the column values, back to back, sized by their serial types
//
// Serial type codes:
//
//	0      NULL
//	1-6    big-endian signed integer of 1, 2, 3, 4, 6 or 8 bytes
//	7      IEEE 754 float64 (big-endian)
//	8, 9   the integer constants 0 and 1 (no body bytes)
//	10, 11 reserved
//	N>=12  even: BLOB of (N-12)/2 bytes
//	N>=13  odd: TEXT of (N-13)/2 bytes
//
// Decoded values keep their raw body bytes; rendering to text happens on
// demand with the database text encoding.
package record
