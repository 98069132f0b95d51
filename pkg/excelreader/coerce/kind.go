// Package coerce converts decoded cell text into typed values.
package coerce

// Kind is the semantic type of a target field.
type Kind int

const (
	// KindInvalid is the zero Kind; nothing coerces to it.
	KindInvalid Kind = iota
	// KindString is plain text.
	KindString
	// KindInt is Go's int.
	KindInt
	// KindInt8 is a signed 8-bit integer.
	KindInt8
	// KindInt16 is a signed 16-bit integer.
	KindInt16
	// KindInt32 is a signed 32-bit integer.
	KindInt32
	// KindInt64 is a signed 64-bit integer.
	KindInt64
	// KindUint8 is an unsigned byte.
	KindUint8
	// KindFloat32 is a single-precision float.
	KindFloat32
	// KindFloat64 is a double-precision float.
	KindFloat64
	// KindDecimal is an arbitrary-precision decimal (decimal.Decimal).
	KindDecimal
	// KindBool is a boolean.
	KindBool
	// KindTime is a date/time (time.Time).
	KindTime
	// KindUUID is a unique identifier (uuid.UUID).
	KindUUID
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindString:  "string",
	KindInt:     "int",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint8:   "uint8",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindDecimal: "decimal",
	KindBool:    "bool",
	KindTime:    "time",
	KindUUID:    "uuid",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsInteger reports whether k belongs to the integer family.
func (k Kind) IsInteger() bool {
	switch k {
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64, KindUint8:
		return true
	}
	return false
}

// bits returns the bit size used when parsing integer kinds.
func (k Kind) bits() int {
	switch k {
	case KindInt8, KindUint8:
		return 8
	case KindInt16:
		return 16
	case KindInt32:
		return 32
	case KindInt:
		return strconvIntSize
	}
	return 64
}
