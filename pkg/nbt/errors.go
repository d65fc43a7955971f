package nbt

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/nbt-go/pkg/io"
)

var (
	// ErrUnknownType is returned for type ids outside of the known set.
	ErrUnknownType = errors.New("unknown tag type")
	// ErrNegativeLength is returned when a length prefix is negative.
	ErrNegativeLength = errors.New("negative length")
	// ErrTooBig is returned when a length prefix exceeds the configured
	// limit or the data left in the buffer.
	ErrTooBig = errors.New("too big")
	// ErrTooDeep is returned when lists and compounds are nested deeper than
	// allowed.
	ErrTooDeep = errors.New("too deep")
	// ErrNotCompound is returned when the root tag is expected to be a
	// Compound, but it's not.
	ErrNotCompound = errors.New("root tag is not a compound")
	// ErrListType is returned when list elements don't match the declared
	// element type.
	ErrListType = errors.New("list element type mismatch")
	// ErrNilTag is returned on attempt to store or encode a nil tag.
	ErrNilTag = errors.New("nil tag")
	// ErrInvalidValue is returned when a value can't be represented in the
	// target format (like NaN in JSON).
	ErrInvalidValue = errors.New("invalid value")
	// ErrStringTooLong is returned when a name or a string value exceeds
	// math.MaxUint16 bytes.
	ErrStringTooLong = io.ErrTooLong
)

// FormatError is returned for malformed binary data. It's always fatal for
// the whole decoding, no partial tree is returned along with it.
type FormatError struct {
	// Offset is the position in the input the problem was detected at.
	Offset int64
	// Type is the type of the tag being decoded (or the offending type id).
	Type Type
	Err  error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed NBT at offset %d (%s): %v", e.Offset, e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
