package nbt

import (
	"errors"
	"strconv"
)

// Type represents type of the tag, it's also the type id used in the binary
// format.
type Type byte

// This block defines all known tag types.
const (
	EndT       Type = 0x00
	ByteT      Type = 0x01
	ShortT     Type = 0x02
	IntT       Type = 0x03
	LongT      Type = 0x04
	FloatT     Type = 0x05
	DoubleT    Type = 0x06
	ByteArrayT Type = 0x07
	StringT    Type = 0x08
	ListT      Type = 0x09
	CompoundT  Type = 0x0a
	IntArrayT  Type = 0x0b
)

var typeNames = [...]string{
	EndT:       "TAG_End",
	ByteT:      "TAG_Byte",
	ShortT:     "TAG_Short",
	IntT:       "TAG_Int",
	LongT:      "TAG_Long",
	FloatT:     "TAG_Float",
	DoubleT:    "TAG_Double",
	ByteArrayT: "TAG_Byte_Array",
	StringT:    "TAG_String",
	ListT:      "TAG_List",
	CompoundT:  "TAG_Compound",
	IntArrayT:  "TAG_Int_Array",
}

// String implements fmt.Stringer interface. It returns the name used in
// debug output, like "TAG_Int".
func (t Type) String() string {
	if t.IsValid() {
		return typeNames[t]
	}
	return "TAG_Unknown(" + strconv.Itoa(int(t)) + ")"
}

// IsValid checks if t is a well defined tag type.
func (t Type) IsValid() bool {
	return int(t) < len(typeNames)
}

// IsNumeric checks if t is one of the six numeric scalar types.
func (t Type) IsNumeric() bool {
	switch t {
	case ByteT, ShortT, IntT, LongT, FloatT, DoubleT:
		return true
	default:
		return false
	}
}

// FromString returns tag type from its name, it's the inverse of Type.String.
func FromString(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return 0xFF, errors.New("invalid type")
}

// TypeOf returns the type of the given tag, nil tags are reported as EndT.
func TypeOf(t Tag) Type {
	if t == nil {
		return EndT
	}
	return t.Type()
}
