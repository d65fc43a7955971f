package nbt

import (
	"slices"
	"strconv"
	"strings"
)

// ByteArray represents a byte array tag. It owns its data, the slice passed
// to NewByteArray is copied and Bytes returns a copy too.
type ByteArray struct {
	named
	value []byte
}

// NewByteArray returns a new ByteArray tag holding a copy of b.
func NewByteArray(name string, b []byte) *ByteArray {
	return &ByteArray{named{name}, cloneBytes(b)}
}

// Bytes returns a copy of tag value.
func (t *ByteArray) Bytes() []byte { return cloneBytes(t.value) }

// Len returns the number of bytes in the array.
func (t *ByteArray) Len() int { return len(t.value) }

// Type implements the Tag interface.
func (t *ByteArray) Type() Type { return ByteArrayT }

// Value implements the Tag interface.
func (t *ByteArray) Value() any { return t.Bytes() }

// String implements the Tag interface.
func (t *ByteArray) String() string {
	var sb strings.Builder
	sb.WriteString(header(ByteArrayT, t.name))
	for _, b := range t.value {
		appendHex(&sb, uint64(b))
	}
	return sb.String()
}

func (t *ByteArray) rename(name string) Tag {
	c := *t
	c.name = name
	return &c
}

// IntArray represents an array of signed 32-bit integers. Like ByteArray it
// owns its data.
type IntArray struct {
	named
	value []int32
}

// NewIntArray returns a new IntArray tag holding a copy of a.
func NewIntArray(name string, a []int32) *IntArray {
	return &IntArray{named{name}, cloneInts(a)}
}

// Ints returns a copy of tag value.
func (t *IntArray) Ints() []int32 { return cloneInts(t.value) }

// Len returns the number of integers in the array.
func (t *IntArray) Len() int { return len(t.value) }

// Type implements the Tag interface.
func (t *IntArray) Type() Type { return IntArrayT }

// Value implements the Tag interface.
func (t *IntArray) Value() any { return t.Ints() }

// String implements the Tag interface.
func (t *IntArray) String() string {
	var sb strings.Builder
	sb.WriteString(header(IntArrayT, t.name))
	for _, i := range t.value {
		appendHex(&sb, uint64(uint32(i)))
	}
	return sb.String()
}

func (t *IntArray) rename(name string) Tag {
	c := *t
	c.name = name
	return &c
}

// cloneBytes never returns nil, so that empty arrays are always distinct
// allocations.
func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}
	return slices.Clone(b)
}

func cloneInts(a []int32) []int32 {
	if len(a) == 0 {
		return []int32{}
	}
	return slices.Clone(a)
}

// appendHex writes upper-case hex of v padded to at least two digits and
// followed by a space.
func appendHex(sb *strings.Builder, v uint64) {
	s := strings.ToUpper(strconv.FormatUint(v, 16))
	if len(s) == 1 {
		sb.WriteByte('0')
	}
	sb.WriteString(s)
	sb.WriteByte(' ')
}
