package nbt

import (
	"bytes"
	"math"
	"slices"
)

// Equals checks whether a and b are structurally equal: same type, name and
// value. Floating point values are compared bitwise, so NaN equals itself
// and 0.0 differs from -0.0. Lists and compounds are compared element by
// element in order.
func Equals(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() || a.Name() != b.Name() {
		return false
	}
	switch va := a.(type) {
	case End:
		return true
	case *Byte:
		return va.value == b.(*Byte).value
	case *Short:
		return va.value == b.(*Short).value
	case *Int:
		return va.value == b.(*Int).value
	case *Long:
		return va.value == b.(*Long).value
	case *Float:
		return math.Float32bits(va.value) == math.Float32bits(b.(*Float).value)
	case *Double:
		return math.Float64bits(va.value) == math.Float64bits(b.(*Double).value)
	case *String:
		return va.value == b.(*String).value
	case *ByteArray:
		return bytes.Equal(va.value, b.(*ByteArray).value)
	case *IntArray:
		return slices.Equal(va.value, b.(*IntArray).value)
	case *List:
		vb := b.(*List)
		return va.typ == vb.typ && slices.EqualFunc(va.elems, vb.elems, Equals)
	case *Compound:
		return slices.EqualFunc(va.list, b.(*Compound).list, Equals)
	default:
		return false
	}
}
