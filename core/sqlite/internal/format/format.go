package format

import (
	"encoding/binary"
	"fmt"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
)

// File format constants
const (
	// HeaderSize is the database header size in bytes (first 100 bytes of the database file).
	HeaderSize = 100

	// MagicString is the magic header string for database files.
	// Must be exactly 16 bytes including the null terminator.
	MagicString = "SQLite format 3\000"

	// MinPageSize is the minimum allowed page size (512 bytes).
	MinPageSize = 512

	// MaxPageSize is the largest page size, stored on disk as 1.
	MaxPageSize = 65536

	// MaxStoredPageSize is the largest page size stored literally (32768 bytes).
	MaxStoredPageSize = 32768
)

// Header offsets - byte positions in the 100-byte database header
const (
	OffsetMagic             = 0  // 16 bytes
	OffsetPageSize          = 16 // 2 bytes, 1 means 65536
	OffsetWriteVersion      = 18 // 1 byte
	OffsetReadVersion       = 19 // 1 byte
	OffsetReservedSpace     = 20 // 1 byte, unused bytes at the end of each page
	OffsetMaxPayloadFrac    = 21 // 1 byte, must be 64
	OffsetMinPayloadFrac    = 22 // 1 byte, must be 32
	OffsetLeafPayloadFrac   = 23 // 1 byte, must be 32
	OffsetFileChangeCounter = 24 // 4 bytes
	OffsetDatabaseSize      = 28 // 4 bytes, in pages
	OffsetFirstFreelist     = 32 // 4 bytes
	OffsetFreelistCount     = 36 // 4 bytes
	OffsetSchemaCookie      = 40 // 4 bytes
	OffsetSchemaFormat      = 44 // 4 bytes
	OffsetTextEncoding      = 56 // 4 bytes
	OffsetUserVersion       = 60 // 4 bytes
	OffsetAppID             = 68 // 4 bytes
	OffsetSQLiteVersion     = 96 // 4 bytes
)

// Text encodings - values for the OffsetTextEncoding field
const (
	// EncodingUTF8 indicates UTF-8 text encoding.
	EncodingUTF8 = 1

	// EncodingUTF16LE indicates UTF-16 little-endian text encoding.
	EncodingUTF16LE = 2

	// EncodingUTF16BE indicates UTF-16 big-endian text encoding.
	EncodingUTF16BE = 3
)

// Header represents the 100-byte database file header.
type Header struct {
	Magic [16]byte

	// PageSize is the raw stored value; use GetPageSize for the byte count.
	PageSize uint16

	WriteVersion    uint8
	ReadVersion     uint8
	ReservedSpace   uint8
	MaxPayloadFrac  uint8
	MinPayloadFrac  uint8
	LeafPayloadFrac uint8

	FileChangeCounter uint32
	DatabaseSize      uint32
	FirstFreelist     uint32
	FreelistCount     uint32
	SchemaCookie      uint32
	SchemaFormat      uint32

	// TextEncoding is the database text encoding (1=UTF-8, 2=UTF-16le, 3=UTF-16be).
	TextEncoding uint32

	UserVersion   uint32
	AppID         uint32
	SQLiteVersion uint32
}

// Parse parses the 100-byte database header from raw bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return liteerrors.NewNotDatabase(fmt.Sprintf("header is %d bytes, want %d", len(data), HeaderSize))
	}

	copy(h.Magic[:], data[OffsetMagic:OffsetMagic+16])
	if string(h.Magic[:]) != MagicString {
		return liteerrors.NewNotDatabase(fmt.Sprintf("invalid magic header %q", h.Magic[:]))
	}

	h.PageSize = binary.BigEndian.Uint16(data[OffsetPageSize:])
	if !IsValidPageSize(h.GetPageSize()) {
		return liteerrors.NewNotDatabase(fmt.Sprintf("invalid page size %d", h.PageSize))
	}

	h.WriteVersion = data[OffsetWriteVersion]
	h.ReadVersion = data[OffsetReadVersion]
	h.ReservedSpace = data[OffsetReservedSpace]
	h.MaxPayloadFrac = data[OffsetMaxPayloadFrac]
	h.MinPayloadFrac = data[OffsetMinPayloadFrac]
	h.LeafPayloadFrac = data[OffsetLeafPayloadFrac]

	h.FileChangeCounter = binary.BigEndian.Uint32(data[OffsetFileChangeCounter:])
	h.DatabaseSize = binary.BigEndian.Uint32(data[OffsetDatabaseSize:])
	h.FirstFreelist = binary.BigEndian.Uint32(data[OffsetFirstFreelist:])
	h.FreelistCount = binary.BigEndian.Uint32(data[OffsetFreelistCount:])
	h.SchemaCookie = binary.BigEndian.Uint32(data[OffsetSchemaCookie:])
	h.SchemaFormat = binary.BigEndian.Uint32(data[OffsetSchemaFormat:])
	h.TextEncoding = binary.BigEndian.Uint32(data[OffsetTextEncoding:])
	h.UserVersion = binary.BigEndian.Uint32(data[OffsetUserVersion:])
	h.AppID = binary.BigEndian.Uint32(data[OffsetAppID:])
	h.SQLiteVersion = binary.BigEndian.Uint32(data[OffsetSQLiteVersion:])

	// A zero encoding appears in freshly created, still-empty files.
	if h.TextEncoding == 0 {
		h.TextEncoding = EncodingUTF8
	}
	if h.TextEncoding > EncodingUTF16BE {
		return liteerrors.NewNotDatabase(fmt.Sprintf("invalid text encoding %d", h.TextEncoding))
	}

	return nil
}

// Serialize serializes the database header to 100 bytes.
func (h *Header) Serialize() []byte {
	data := make([]byte, HeaderSize)

	copy(data[OffsetMagic:], h.Magic[:])
	binary.BigEndian.PutUint16(data[OffsetPageSize:], h.PageSize)

	data[OffsetWriteVersion] = h.WriteVersion
	data[OffsetReadVersion] = h.ReadVersion
	data[OffsetReservedSpace] = h.ReservedSpace
	data[OffsetMaxPayloadFrac] = h.MaxPayloadFrac
	data[OffsetMinPayloadFrac] = h.MinPayloadFrac
	data[OffsetLeafPayloadFrac] = h.LeafPayloadFrac

	binary.BigEndian.PutUint32(data[OffsetFileChangeCounter:], h.FileChangeCounter)
	binary.BigEndian.PutUint32(data[OffsetDatabaseSize:], h.DatabaseSize)
	binary.BigEndian.PutUint32(data[OffsetFirstFreelist:], h.FirstFreelist)
	binary.BigEndian.PutUint32(data[OffsetFreelistCount:], h.FreelistCount)
	binary.BigEndian.PutUint32(data[OffsetSchemaCookie:], h.SchemaCookie)
	binary.BigEndian.PutUint32(data[OffsetSchemaFormat:], h.SchemaFormat)
	binary.BigEndian.PutUint32(data[OffsetTextEncoding:], h.TextEncoding)
	binary.BigEndian.PutUint32(data[OffsetUserVersion:], h.UserVersion)
	binary.BigEndian.PutUint32(data[OffsetAppID:], h.AppID)
	binary.BigEndian.PutUint32(data[OffsetSQLiteVersion:], h.SQLiteVersion)

	return data
}

// NewHeader creates a header with default values. Tests use it to build
// database images byte by byte.
func NewHeader(pageSize int) *Header {
	var pageSizeVal uint16
	if pageSize == MaxPageSize {
		pageSizeVal = 1
	} else {
		pageSizeVal = uint16(pageSize)
	}

	h := &Header{
		PageSize:        pageSizeVal,
		WriteVersion:    1,
		ReadVersion:     1,
		MaxPayloadFrac:  64,
		MinPayloadFrac:  32,
		LeafPayloadFrac: 32,
		SchemaFormat:    4,
		TextEncoding:    EncodingUTF8,
		SQLiteVersion:   3051020,
	}
	copy(h.Magic[:], MagicString)

	return h
}

// GetPageSize returns the actual page size, handling the special case where
// a stored value of 1 means 65536.
func (h *Header) GetPageSize() int {
	if h.PageSize == 1 {
		return MaxPageSize
	}
	return int(h.PageSize)
}

// UsableSize returns the page size minus the reserved bytes at the end of each page.
func (h *Header) UsableSize() int {
	return h.GetPageSize() - int(h.ReservedSpace)
}

// EncodingName returns a human-readable name for the text encoding.
func (h *Header) EncodingName() string {
	switch h.TextEncoding {
	case EncodingUTF16LE:
		return "utf16le"
	case EncodingUTF16BE:
		return "utf16be"
	default:
		return "utf8"
	}
}

// IsValidPageSize reports whether size is a power of two between 512 and
// 32768, or exactly 65536 (the decoded form of the stored value 1).
func IsValidPageSize(size int) bool {
	if size == MaxPageSize {
		return true
	}
	if size < MinPageSize || size > MaxStoredPageSize {
		return false
	}
	return size&(size-1) == 0
}
