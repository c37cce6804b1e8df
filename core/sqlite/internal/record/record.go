package record

import (
	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
	"github.com/FocuswithJustin/litequery/core/sqlite/internal/utf"
)

// Record is a decoded row payload: one value per serial type in the header,
// in declaration order.
type Record struct {
	Values []Value
}

// Len returns the number of values in the record.
func (r Record) Len() int {
	return len(r.Values)
}

// Column returns the i-th value, or NULL when the record is shorter than i+1.
// Rows written before an ALTER TABLE ADD COLUMN store fewer values than the
// table declares.
func (r Record) Column(i int) Value {
	if i < 0 || i >= len(r.Values) {
		return NullValue()
	}
	return r.Values[i]
}

// Decode parses a record payload. Value bytes alias payload.
func Decode(payload []byte) (Record, error) {
	headerSize, n, err := utf.ReadVarint(payload, 0)
	if err != nil {
		return Record{}, liteerrors.Wrap(err, "record header size")
	}
	if headerSize < uint64(n) || headerSize > uint64(len(payload)) {
		return Record{}, liteerrors.NewTruncated("record header", 0, int(min(headerSize, uint64(1<<31))), len(payload))
	}

	header := payload[:headerSize]
	offset := n
	var types []SerialType
	for offset < len(header) {
		st, n, err := utf.ReadVarint(header, offset)
		if err != nil {
			return Record{}, liteerrors.Wrap(err, "record serial type")
		}
		types = append(types, SerialType(st))
		offset += n
	}

	values := make([]Value, len(types))
	for i, st := range types {
		size := st.Size()
		if size > len(payload)-offset {
			return Record{}, liteerrors.NewTruncated("record value", offset, size, len(payload)-offset)
		}
		values[i] = Value{Type: st, Raw: payload[offset : offset+size]}
		offset += size
	}

	return Record{Values: values}, nil
}

// Encode builds a record payload from values. It is the inverse of Decode.
func Encode(values []Value) []byte {
	typesSize := 0
	bodySize := 0
	for _, v := range values {
		typesSize += utf.VarintLen(uint64(v.Type))
		bodySize += len(v.Raw)
	}

	// The header size counts its own varint, so iterate until stable.
	headerSize := typesSize + 1
	for {
		next := utf.VarintLen(uint64(headerSize)) + typesSize
		if next == headerSize {
			break
		}
		headerSize = next
	}

	buf := make([]byte, 0, headerSize+bodySize)
	buf = utf.AppendVarint(buf, uint64(headerSize))
	for _, v := range values {
		buf = utf.AppendVarint(buf, uint64(v.Type))
	}
	for _, v := range values {
		buf = append(buf, v.Raw...)
	}
	return buf
}
