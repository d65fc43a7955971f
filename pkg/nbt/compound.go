package nbt

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// entries is an insertion-ordered name->tag mapping, stored tags are always
// named after their keys.
type entries struct {
	list  []Tag
	index map[string]int
}

func newEntries(capacity int) entries {
	return entries{
		list:  make([]Tag, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

func (e *entries) get(name string) Tag {
	if i, ok := e.index[name]; ok {
		return e.list[i]
	}
	return nil
}

// put adds or replaces an entry, replaced entries keep their position. nil
// and End tags are ignored.
func (e *entries) put(name string, t Tag) {
	if t == nil || t.Type() == EndT {
		return
	}
	t = Rename(t, name)
	if i, ok := e.index[name]; ok {
		e.list[i] = t
		return
	}
	e.index[name] = len(e.list)
	e.list = append(e.list, t)
}

func (e *entries) remove(name string) {
	i, ok := e.index[name]
	if !ok {
		return
	}
	e.list = slices.Delete(e.list, i, i+1)
	delete(e.index, name)
	for j := i; j < len(e.list); j++ {
		e.index[e.list[j].Name()] = j
	}
}

func (e *entries) clone() entries {
	return entries{
		list:  slices.Clone(e.list),
		index: maps.Clone(e.index),
	}
}

// Compound represents a mapping from names to tags. Lookups are done by name,
// but the insertion order is kept and used for encoding and rendering. It's
// immutable, Put and Remove return updated copies; use CompoundBuilder for
// bulk construction.
type Compound struct {
	named
	entries
}

// NewCompound returns a new Compound containing given tags keyed by their
// names. A repeated name replaces the previous value keeping its position,
// nil and End tags are skipped.
func NewCompound(name string, tags ...Tag) *Compound {
	c := &Compound{named{name}, newEntries(len(tags))}
	for _, t := range tags {
		if t != nil {
			c.put(t.Name(), t)
		}
	}
	return c
}

// Len returns the number of entries.
func (c *Compound) Len() int { return len(c.list) }

// Keys returns entry names in insertion order.
func (c *Compound) Keys() []string {
	res := make([]string, len(c.list))
	for i, t := range c.list {
		res[i] = t.Name()
	}
	return res
}

// Entries returns a copy of the entry slice in insertion order.
func (c *Compound) Entries() []Tag { return slices.Clone(c.list) }

// ContainsKey checks whether there is an entry with the given name.
func (c *Compound) ContainsKey(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Get returns the entry with the given name or nil.
func (c *Compound) Get(name string) Tag { return c.get(name) }

// Put returns a copy of c with t stored under name (t is renamed if needed).
// c itself is not changed. nil and End tags are ignored.
func (c *Compound) Put(name string, t Tag) *Compound {
	n := &Compound{c.named, c.clone()}
	n.put(name, t)
	return n
}

// Remove returns a copy of c without the given entry.
func (c *Compound) Remove(name string) *Compound {
	n := &Compound{c.named, c.clone()}
	n.remove(name)
	return n
}

// Builder returns a CompoundBuilder prefilled with c entries.
func (c *Compound) Builder() *CompoundBuilder {
	return &CompoundBuilder{c.clone()}
}

// Type implements the Tag interface.
func (c *Compound) Type() Type { return CompoundT }

// Value implements the Tag interface.
func (c *Compound) Value() any { return c.Entries() }

// String implements the Tag interface.
func (c *Compound) String() string {
	var sb strings.Builder
	sb.WriteString(header(CompoundT, c.name))
	sb.WriteString(strconv.Itoa(len(c.list)))
	sb.WriteString(" entries" + lineSep + "{" + lineSep)
	for _, e := range c.list {
		writeChild(&sb, e)
	}
	sb.WriteByte('}')
	return sb.String()
}

func (c *Compound) rename(name string) Tag {
	n := *c
	n.name = name
	return &n
}

// GetByte returns the value of the Byte entry or 0 if there is no such entry
// or it's of some other type.
func (c *Compound) GetByte(name string) int8 { return byteOf(c.get(name)) }

// GetShort returns the value of the Short entry or 0.
func (c *Compound) GetShort(name string) int16 { return shortOf(c.get(name)) }

// GetInt returns the value of the Int entry or 0.
func (c *Compound) GetInt(name string) int32 { return intOf(c.get(name)) }

// GetLong returns the value of the Long entry or 0.
func (c *Compound) GetLong(name string) int64 { return longOf(c.get(name)) }

// GetFloat returns the value of the Float entry or 0.
func (c *Compound) GetFloat(name string) float32 { return floatOf(c.get(name)) }

// GetDouble returns the value of the Double entry or 0.
func (c *Compound) GetDouble(name string) float64 { return doubleOf(c.get(name)) }

// GetString returns the value of the String entry or "".
func (c *Compound) GetString(name string) string { return stringOf(c.get(name)) }

// GetByteArray returns a copy of the ByteArray entry or a new empty slice.
func (c *Compound) GetByteArray(name string) []byte { return byteArrayOf(c.get(name)) }

// GetIntArray returns a copy of the IntArray entry or a new empty slice.
func (c *Compound) GetIntArray(name string) []int32 { return intArrayOf(c.get(name)) }

// AsInt returns the entry converted to int32 (see AsInt).
func (c *Compound) AsInt(name string) int32 { return AsInt(c.get(name)) }

// AsLong returns the entry converted to int64 (see AsLong).
func (c *Compound) AsLong(name string) int64 { return AsLong(c.get(name)) }

// AsDouble returns the entry converted to float64 (see AsDouble).
func (c *Compound) AsDouble(name string) float64 { return AsDouble(c.get(name)) }

// GetList returns elements of the List entry or an empty slice.
func (c *Compound) GetList(name string) []Tag { return listOf(c.get(name)) }

// GetListTag returns the List entry or an empty list of strings.
func (c *Compound) GetListTag(name string) *List { return listTagOf(c.get(name)) }

// GetListOf returns elements of the List entry if its declared element type
// is typ, an empty slice otherwise.
func (c *Compound) GetListOf(name string, typ Type) []Tag { return listOfType(c.get(name), typ) }

// GetCompound returns the Compound entry or an empty one.
func (c *Compound) GetCompound(name string) *Compound { return compoundOf(c.get(name)) }
