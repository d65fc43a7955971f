package nbt

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// List represents an ordered homogeneous sequence of unnamed tags sharing the
// declared element type. It's immutable, all "modifying" methods return a new
// List.
type List struct {
	named
	typ   Type
	elems []Tag
}

// NewList returns a new List with the given element type holding a copy of
// elems. Every element must be of typ, names of elements are dropped. EndT
// lists can only be empty.
func NewList(name string, typ Type, elems []Tag) (*List, error) {
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}
	vals := make([]Tag, len(elems))
	for i, e := range elems {
		if e == nil {
			return nil, fmt.Errorf("%w: element %d", ErrNilTag, i)
		}
		if e.Type() != typ || typ == EndT {
			return nil, fmt.Errorf("%w: element %d is %s in a list of %s", ErrListType, i, e.Type(), typ)
		}
		vals[i] = Rename(e, "")
	}
	return &List{named{name}, typ, vals}, nil
}

// EmptyList returns a new List without elements.
func EmptyList(name string, typ Type) *List {
	return &List{named{name}, typ, []Tag{}}
}

// ElemType returns the declared type of list elements.
func (l *List) ElemType() Type { return l.typ }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.elems) }

// Elements returns a copy of the element slice.
func (l *List) Elements() []Tag { return slices.Clone(l.elems) }

// SetValue returns a new List with the same name and element type holding
// elems instead of the current contents.
func (l *List) SetValue(elems []Tag) (*List, error) {
	return NewList(l.name, l.typ, elems)
}

// Append returns a new List with elems added after the current contents.
func (l *List) Append(elems ...Tag) (*List, error) {
	return NewList(l.name, l.typ, append(slices.Clone(l.elems), elems...))
}

// Type implements the Tag interface.
func (l *List) Type() Type { return ListT }

// Value implements the Tag interface.
func (l *List) Value() any { return l.Elements() }

// String implements the Tag interface.
func (l *List) String() string {
	var sb strings.Builder
	sb.WriteString(header(ListT, l.name))
	sb.WriteString(strconv.Itoa(len(l.elems)))
	sb.WriteString(" entries of type ")
	sb.WriteString(l.typ.String())
	sb.WriteString(lineSep + "{" + lineSep)
	for _, e := range l.elems {
		writeChild(&sb, e)
	}
	sb.WriteByte('}')
	return sb.String()
}

func (l *List) rename(name string) Tag {
	c := *l
	c.name = name
	return &c
}

// Get returns the element at index i or nil if there is no such element.
func (l *List) Get(i int) Tag {
	if i < 0 || i >= len(l.elems) {
		return nil
	}
	return l.elems[i]
}

// GetByte returns the value of the Byte element at i or 0 if the index is
// out of range or the element is of some other type.
func (l *List) GetByte(i int) int8 { return byteOf(l.Get(i)) }

// GetShort returns the value of the Short element at i or 0.
func (l *List) GetShort(i int) int16 { return shortOf(l.Get(i)) }

// GetInt returns the value of the Int element at i or 0.
func (l *List) GetInt(i int) int32 { return intOf(l.Get(i)) }

// GetLong returns the value of the Long element at i or 0.
func (l *List) GetLong(i int) int64 { return longOf(l.Get(i)) }

// GetFloat returns the value of the Float element at i or 0.
func (l *List) GetFloat(i int) float32 { return floatOf(l.Get(i)) }

// GetDouble returns the value of the Double element at i or 0.
func (l *List) GetDouble(i int) float64 { return doubleOf(l.Get(i)) }

// GetString returns the value of the String element at i or "".
func (l *List) GetString(i int) string { return stringOf(l.Get(i)) }

// GetByteArray returns a copy of the ByteArray element at i or a new empty
// slice.
func (l *List) GetByteArray(i int) []byte { return byteArrayOf(l.Get(i)) }

// GetIntArray returns a copy of the IntArray element at i or a new empty
// slice.
func (l *List) GetIntArray(i int) []int32 { return intArrayOf(l.Get(i)) }

// AsInt returns the element at i converted to int32 (see AsInt).
func (l *List) AsInt(i int) int32 { return AsInt(l.Get(i)) }

// AsLong returns the element at i converted to int64 (see AsLong).
func (l *List) AsLong(i int) int64 { return AsLong(l.Get(i)) }

// AsDouble returns the element at i converted to float64 (see AsDouble).
func (l *List) AsDouble(i int) float64 { return AsDouble(l.Get(i)) }

// GetList returns elements of the List at i or an empty slice.
func (l *List) GetList(i int) []Tag { return listOf(l.Get(i)) }

// GetListTag returns the List at i or an empty list of strings, so that the
// result can always be used further.
func (l *List) GetListTag(i int) *List { return listTagOf(l.Get(i)) }

// GetListOf returns elements of the List at i if its declared element type
// is typ, an empty slice otherwise.
func (l *List) GetListOf(i int, typ Type) []Tag { return listOfType(l.Get(i), typ) }

// GetCompound returns the Compound at i or an empty one.
func (l *List) GetCompound(i int) *Compound { return compoundOf(l.Get(i)) }

// ElementsOf returns list elements as a slice of concrete tag type T, like
// ElementsOf[*String](l). Elements that are not T are skipped, so a list of
// some other type gives an empty slice.
func ElementsOf[T Tag](l *List) []T {
	res := make([]T, 0, len(l.elems))
	for _, e := range l.elems {
		if v, ok := e.(T); ok {
			res = append(res, v)
		}
	}
	return res
}
