package nbt

import (
	"math"
)

// Helpers behind List and Compound getters. All of them are total: a nil or
// differently typed tag yields the zero value of the requested type.

func byteOf(t Tag) int8 {
	if v, ok := t.(*Byte); ok {
		return v.value
	}
	return 0
}

func shortOf(t Tag) int16 {
	if v, ok := t.(*Short); ok {
		return v.value
	}
	return 0
}

func intOf(t Tag) int32 {
	if v, ok := t.(*Int); ok {
		return v.value
	}
	return 0
}

func longOf(t Tag) int64 {
	if v, ok := t.(*Long); ok {
		return v.value
	}
	return 0
}

func floatOf(t Tag) float32 {
	if v, ok := t.(*Float); ok {
		return v.value
	}
	return 0
}

func doubleOf(t Tag) float64 {
	if v, ok := t.(*Double); ok {
		return v.value
	}
	return 0
}

func stringOf(t Tag) string {
	if v, ok := t.(*String); ok {
		return v.value
	}
	return ""
}

func byteArrayOf(t Tag) []byte {
	if v, ok := t.(*ByteArray); ok {
		return v.Bytes()
	}
	return []byte{}
}

func intArrayOf(t Tag) []int32 {
	if v, ok := t.(*IntArray); ok {
		return v.Ints()
	}
	return []int32{}
}

func listOf(t Tag) []Tag {
	if v, ok := t.(*List); ok {
		return v.Elements()
	}
	return []Tag{}
}

func listTagOf(t Tag) *List {
	if v, ok := t.(*List); ok {
		return v
	}
	return EmptyList("", StringT)
}

func listOfType(t Tag, typ Type) []Tag {
	if v, ok := t.(*List); ok && v.typ == typ {
		return v.Elements()
	}
	return []Tag{}
}

func compoundOf(t Tag) *Compound {
	if v, ok := t.(*Compound); ok {
		return v
	}
	return NewCompound("")
}

// AsInt converts any numeric tag to int32. Wider integers are truncated to
// their low 32 bits, floating point values are truncated towards zero and
// saturated. Non-numeric and nil tags give 0.
func AsInt(t Tag) int32 {
	switch v := t.(type) {
	case *Byte:
		return int32(v.value)
	case *Short:
		return int32(v.value)
	case *Int:
		return v.value
	case *Long:
		return int32(v.value)
	case *Float:
		return floatToInt32(float64(v.value))
	case *Double:
		return floatToInt32(v.value)
	default:
		return 0
	}
}

// AsLong converts any numeric tag to int64, floating point values are
// truncated towards zero and saturated. Non-numeric and nil tags give 0.
func AsLong(t Tag) int64 {
	switch v := t.(type) {
	case *Byte:
		return int64(v.value)
	case *Short:
		return int64(v.value)
	case *Int:
		return int64(v.value)
	case *Long:
		return v.value
	case *Float:
		return floatToInt64(float64(v.value))
	case *Double:
		return floatToInt64(v.value)
	default:
		return 0
	}
}

// AsDouble converts any numeric tag to float64. Non-numeric and nil tags
// give 0.
func AsDouble(t Tag) float64 {
	switch v := t.(type) {
	case *Byte:
		return float64(v.value)
	case *Short:
		return float64(v.value)
	case *Int:
		return float64(v.value)
	case *Long:
		return float64(v.value)
	case *Float:
		return float64(v.value)
	case *Double:
		return v.value
	default:
		return 0
	}
}

func floatToInt32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

func floatToInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}
