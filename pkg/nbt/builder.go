package nbt

// CompoundBuilder accumulates entries for a Compound. Unlike Compound it's
// mutable and not safe for concurrent use.
type CompoundBuilder struct {
	entries
}

// NewCompoundBuilder returns an empty builder.
func NewCompoundBuilder() *CompoundBuilder {
	return &CompoundBuilder{newEntries(0)}
}

// Put stores t under the given name replacing any previous value.
func (b *CompoundBuilder) Put(name string, t Tag) *CompoundBuilder {
	b.put(name, t)
	return b
}

// PutByte stores a Byte tag.
func (b *CompoundBuilder) PutByte(name string, v int8) *CompoundBuilder {
	return b.Put(name, NewByte(name, v))
}

// PutShort stores a Short tag.
func (b *CompoundBuilder) PutShort(name string, v int16) *CompoundBuilder {
	return b.Put(name, NewShort(name, v))
}

// PutInt stores an Int tag.
func (b *CompoundBuilder) PutInt(name string, v int32) *CompoundBuilder {
	return b.Put(name, NewInt(name, v))
}

// PutLong stores a Long tag.
func (b *CompoundBuilder) PutLong(name string, v int64) *CompoundBuilder {
	return b.Put(name, NewLong(name, v))
}

// PutFloat stores a Float tag.
func (b *CompoundBuilder) PutFloat(name string, v float32) *CompoundBuilder {
	return b.Put(name, NewFloat(name, v))
}

// PutDouble stores a Double tag.
func (b *CompoundBuilder) PutDouble(name string, v float64) *CompoundBuilder {
	return b.Put(name, NewDouble(name, v))
}

// PutString stores a String tag.
func (b *CompoundBuilder) PutString(name string, v string) *CompoundBuilder {
	return b.Put(name, NewString(name, v))
}

// PutByteArray stores a ByteArray tag with a copy of v.
func (b *CompoundBuilder) PutByteArray(name string, v []byte) *CompoundBuilder {
	return b.Put(name, NewByteArray(name, v))
}

// PutIntArray stores an IntArray tag with a copy of v.
func (b *CompoundBuilder) PutIntArray(name string, v []int32) *CompoundBuilder {
	return b.Put(name, NewIntArray(name, v))
}

// Remove deletes the entry with the given name if there is any.
func (b *CompoundBuilder) Remove(name string) *CompoundBuilder {
	b.remove(name)
	return b
}

// Len returns the number of accumulated entries.
func (b *CompoundBuilder) Len() int { return len(b.list) }

// Build returns a Compound with the given name holding current entries. The
// builder can be used further without affecting the result.
func (b *CompoundBuilder) Build(name string) *Compound {
	return &Compound{named{name}, b.clone()}
}
