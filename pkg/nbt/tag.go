package nbt

import (
	"fmt"
)

// Tag represents a single named node of the tree. The set of implementations
// is closed, it's End, Byte, Short, Int, Long, Float, Double, String,
// ByteArray, IntArray, List and Compound. Tags are immutable once created,
// so they can be shared between goroutines freely.
type Tag interface {
	fmt.Stringer
	// Name returns tag name, empty string means unnamed tag (list elements
	// are always unnamed).
	Name() string
	// Type returns tag type.
	Type() Type
	// Value returns tag payload. Slices are returned as copies.
	Value() any

	rename(name string) Tag
}

// named is the part common to all named tags.
type named struct {
	name string
}

// Name implements the Tag interface.
func (n named) Name() string {
	return n.name
}

// Rename returns a copy of t with the given name, payload is shared as it
// can't be modified anyway. nil is returned for nil t.
func Rename(t Tag, name string) Tag {
	if t == nil {
		return nil
	}
	if t.Name() == name {
		return t
	}
	return t.rename(name)
}
