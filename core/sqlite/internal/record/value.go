package record

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/litequery/core/sqlite/internal/utf"
)

// Value is one column of a decoded record: its serial type and the body
// bytes it occupies.
type Value struct {
	Type SerialType
	Raw  []byte
}

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool {
	return v.Type.Kind() == KindNull
}

// Kind returns the value's storage class.
func (v Value) Kind() Kind {
	return v.Type.Kind()
}

// Int returns the value as a signed integer. It is only meaningful for
// KindInteger values; other kinds return 0.
func (v Value) Int() int64 {
	switch v.Type {
	case SerialTypeZero:
		return 0
	case SerialTypeOne:
		return 1
	case SerialTypeInt8, SerialTypeInt16, SerialTypeInt24,
		SerialTypeInt32, SerialTypeInt48, SerialTypeInt64:
		var u uint64
		for _, b := range v.Raw {
			u = u<<8 | uint64(b)
		}
		// Sign extend from the stored width.
		shift := uint(64 - 8*len(v.Raw))
		return int64(u<<shift) >> shift
	default:
		return 0
	}
}

// Float returns the value of a KindFloat value.
func (v Value) Float() float64 {
	if v.Type != SerialTypeFloat64 || len(v.Raw) != 8 {
		return 0
	}
	return math.Float64frombits(binary.BigEndian.Uint64(v.Raw))
}

// Text renders the value as text: NULL as the empty string, integers in
// decimal, floats the way SQLite prints them, text decoded from enc, blobs
// as their raw bytes.
func (v Value) Text(enc utf.Encoding) (string, error) {
	switch v.Kind() {
	case KindNull:
		return "", nil
	case KindInteger:
		return strconv.FormatInt(v.Int(), 10), nil
	case KindFloat:
		return formatFloat(v.Float()), nil
	case KindText:
		return utf.DecodeText(v.Raw, enc)
	default:
		return string(v.Raw), nil
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

// NullValue returns a NULL value.
func NullValue() Value {
	return Value{Type: SerialTypeNull}
}

// IntValue returns an integer value stored in the smallest serial type that holds i.
func IntValue(i int64) Value {
	st := serialTypeForInt(i)
	n := st.Size()
	raw := make([]byte, n)
	u := uint64(i)
	for j := n - 1; j >= 0; j-- {
		raw[j] = byte(u)
		u >>= 8
	}
	return Value{Type: st, Raw: raw}
}

// FloatValue returns a float64 value.
func FloatValue(f float64) Value {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, math.Float64bits(f))
	return Value{Type: SerialTypeFloat64, Raw: raw}
}

// TextValue returns a text value holding the UTF-8 bytes of s.
func TextValue(s string) Value {
	return Value{Type: SerialType(13 + 2*len(s)), Raw: []byte(s)}
}

// BlobValue returns a blob value.
func BlobValue(b []byte) Value {
	return Value{Type: SerialType(12 + 2*len(b)), Raw: b}
}
