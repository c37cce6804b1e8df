package record

// SerialType is a record header code describing a value's storage class and size.
type SerialType uint64

const (
	SerialTypeNull    SerialType = 0
	SerialTypeInt8    SerialType = 1
	SerialTypeInt16   SerialType = 2
	SerialTypeInt24   SerialType = 3
	SerialTypeInt32   SerialType = 4
	SerialTypeInt48   SerialType = 5
	SerialTypeInt64   SerialType = 6
	SerialTypeFloat64 SerialType = 7
	SerialTypeZero    SerialType = 8
	SerialTypeOne     SerialType = 9
)

// Kind is the storage class of a value.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return "null"
	}
}

// Size returns the number of body bytes a value of this serial type occupies.
func (st SerialType) Size() int {
	switch st {
	case SerialTypeNull, SerialTypeZero, SerialTypeOne:
		return 0
	case SerialTypeInt8:
		return 1
	case SerialTypeInt16:
		return 2
	case SerialTypeInt24:
		return 3
	case SerialTypeInt32:
		return 4
	case SerialTypeInt48:
		return 6
	case SerialTypeInt64, SerialTypeFloat64:
		return 8
	case 10, 11:
		return 0
	default:
		if st%2 == 0 {
			return int((st - 12) / 2)
		}
		return int((st - 13) / 2)
	}
}

// Kind returns the storage class encoded by st. The reserved codes 10 and 11
// report KindNull.
func (st SerialType) Kind() Kind {
	switch {
	case st == SerialTypeNull, st == 10, st == 11:
		return KindNull
	case st == SerialTypeFloat64:
		return KindFloat
	case st <= SerialTypeOne:
		return KindInteger
	case st%2 == 0:
		return KindBlob
	default:
		return KindText
	}
}

// serialTypeForInt returns the smallest integer serial type that holds i.
func serialTypeForInt(i int64) SerialType {
	switch {
	case i == 0:
		return SerialTypeZero
	case i == 1:
		return SerialTypeOne
	case i >= -128 && i <= 127:
		return SerialTypeInt8
	case i >= -32768 && i <= 32767:
		return SerialTypeInt16
	case i >= -8388608 && i <= 8388607:
		return SerialTypeInt24
	case i >= -2147483648 && i <= 2147483647:
		return SerialTypeInt32
	case i >= -140737488355328 && i <= 140737488355327:
		return SerialTypeInt48
	default:
		return SerialTypeInt64
	}
}
