package utf

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the text encoding recorded in the database header.
type Encoding byte

const (
	// UTF8 encoding
	UTF8 Encoding = 1

	// UTF16LE is little-endian UTF-16
	UTF16LE Encoding = 2

	// UTF16BE is big-endian UTF-16
	UTF16BE Encoding = 3
)

func (e Encoding) String() string {
	switch e {
	case UTF16LE:
		return "utf16le"
	case UTF16BE:
		return "utf16be"
	default:
		return "utf8"
	}
}

// decoder returns the x/text decoder for a UTF-16 encoding, or nil for UTF-8.
func (e Encoding) decoder() *encoding.Decoder {
	switch e {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	default:
		return nil
	}
}

// DecodeText converts stored text bytes in encoding enc to a Go string.
// UTF-8 text is returned unchanged, including invalid sequences. Unpaired
// surrogates in UTF-16 text become U+FFFD.
func DecodeText(b []byte, enc Encoding) (string, error) {
	dec := enc.decoder()
	if dec == nil {
		return string(b), nil
	}
	out, err := dec.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
