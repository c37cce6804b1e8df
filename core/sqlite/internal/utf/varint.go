package utf

import (
	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
)

// Varint encoding and decoding following the database file format.
//
// A varint is 1-9 bytes, most significant group first:
//
//	 7 bits - A
//	14 bits - BA
//	21 bits - BBA
//	  ...
//	56 bits - BBBBBBBA
//	64 bits - BBBBBBBBC
//
// Where:
//
//	A = 0xxxxxxx    7 bits of data, last byte
//	B = 1xxxxxxx    7 bits of data, more bytes follow
//	C = xxxxxxxx    8 bits of data (the 9th byte has no flag bit)

// MaxVarintLen is the longest encoding of a 64-bit value.
const MaxVarintLen = 9

// ReadVarint decodes the varint starting at buf[off] and returns the value
// and the number of bytes consumed. It fails with a truncated-input error if
// buf ends before the terminating byte.
func ReadVarint(buf []byte, off int) (uint64, int, error) {
	var v uint64
	for i := 0; i < MaxVarintLen; i++ {
		if off < 0 || off+i >= len(buf) {
			return 0, 0, liteerrors.NewTruncated("varint", off, i+1, max(len(buf)-off, 0))
		}
		b := buf[off+i]
		if i == MaxVarintLen-1 {
			return v<<8 | uint64(b), MaxVarintLen, nil
		}
		v = v<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	// unreachable: the loop returns on the 9th byte
	return v, MaxVarintLen, nil
}

// PutVarint encodes a 64-bit unsigned integer into buf and returns the number of bytes written.
// buf must be at least 9 bytes long.
func PutVarint(buf []byte, v uint64) int {
	if v <= 0x7f {
		buf[0] = byte(v)
		return 1
	}
	if v <= 0x3fff {
		buf[0] = byte((v>>7)&0x7f) | 0x80
		buf[1] = byte(v & 0x7f)
		return 2
	}
	return putVarint64(buf, v)
}

// putVarint64 handles encoding of larger varints.
func putVarint64(buf []byte, v uint64) int {
	// Top 8 bits in use: all 8 bits of the 9th byte carry data.
	if v&(uint64(0xff000000)<<32) != 0 {
		buf[8] = byte(v)
		v >>= 8
		for i := 7; i >= 0; i-- {
			buf[i] = byte(v&0x7f) | 0x80
			v >>= 7
		}
		return 9
	}

	n := VarintLen(v)
	for i := n - 1; i >= 0; i-- {
		b := byte(v & 0x7f)
		if i != n-1 {
			b |= 0x80
		}
		buf[i] = b
		v >>= 7
	}
	return n
}

// AppendVarint appends the encoding of v to buf.
func AppendVarint(buf []byte, v uint64) []byte {
	var tmp [MaxVarintLen]byte
	n := PutVarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}

// VarintLen returns the number of bytes required to encode v as a varint
func VarintLen(v uint64) int {
	switch {
	case v <= 0x7f:
		return 1
	case v <= 0x3fff:
		return 2
	case v <= 0x1fffff:
		return 3
	case v <= 0xfffffff:
		return 4
	case v <= 0x7ffffffff:
		return 5
	case v <= 0x3ffffffffff:
		return 6
	case v <= 0x1ffffffffffff:
		return 7
	case v <= 0xffffffffffffff:
		return 8
	default:
		return 9
	}
}
