package nbt

import (
	"strconv"
)

// End is the zero-payload tag terminating compound contents in the binary
// format. It never has a name.
type End struct{}

// Name implements the Tag interface.
func (End) Name() string { return "" }

// Type implements the Tag interface.
func (End) Type() Type { return EndT }

// Value implements the Tag interface.
func (End) Value() any { return nil }

// String implements the Tag interface.
func (End) String() string { return EndT.String() }

func (e End) rename(string) Tag { return e }

// Byte represents a signed 8-bit integer tag.
type Byte struct {
	named
	value int8
}

// NewByte returns a new Byte tag.
func NewByte(name string, v int8) *Byte {
	return &Byte{named{name}, v}
}

// Int8 returns tag value.
func (t *Byte) Int8() int8 { return t.value }

// Type implements the Tag interface.
func (t *Byte) Type() Type { return ByteT }

// Value implements the Tag interface.
func (t *Byte) Value() any { return t.value }

// String implements the Tag interface.
func (t *Byte) String() string {
	return header(ByteT, t.name) + strconv.Itoa(int(t.value))
}

func (t *Byte) rename(name string) Tag {
	c := *t
	c.name = name
	return &c
}

// Short represents a signed 16-bit integer tag.
type Short struct {
	named
	value int16
}

// NewShort returns a new Short tag.
func NewShort(name string, v int16) *Short {
	return &Short{named{name}, v}
}

// Int16 returns tag value.
func (t *Short) Int16() int16 { return t.value }

// Type implements the Tag interface.
func (t *Short) Type() Type { return ShortT }

// Value implements the Tag interface.
func (t *Short) Value() any { return t.value }

// String implements the Tag interface.
func (t *Short) String() string {
	return header(ShortT, t.name) + strconv.Itoa(int(t.value))
}

func (t *Short) rename(name string) Tag {
	c := *t
	c.name = name
	return &c
}

// Int represents a signed 32-bit integer tag.
type Int struct {
	named
	value int32
}

// NewInt returns a new Int tag.
func NewInt(name string, v int32) *Int {
	return &Int{named{name}, v}
}

// Int32 returns tag value.
func (t *Int) Int32() int32 { return t.value }

// Type implements the Tag interface.
func (t *Int) Type() Type { return IntT }

// Value implements the Tag interface.
func (t *Int) Value() any { return t.value }

// String implements the Tag interface.
func (t *Int) String() string {
	return header(IntT, t.name) + strconv.FormatInt(int64(t.value), 10)
}

func (t *Int) rename(name string) Tag {
	c := *t
	c.name = name
	return &c
}

// Long represents a signed 64-bit integer tag.
type Long struct {
	named
	value int64
}

// NewLong returns a new Long tag.
func NewLong(name string, v int64) *Long {
	return &Long{named{name}, v}
}

// Int64 returns tag value.
func (t *Long) Int64() int64 { return t.value }

// Type implements the Tag interface.
func (t *Long) Type() Type { return LongT }

// Value implements the Tag interface.
func (t *Long) Value() any { return t.value }

// String implements the Tag interface.
func (t *Long) String() string {
	return header(LongT, t.name) + strconv.FormatInt(t.value, 10)
}

func (t *Long) rename(name string) Tag {
	c := *t
	c.name = name
	return &c
}

// Float represents an IEEE-754 single precision tag.
type Float struct {
	named
	value float32
}

// NewFloat returns a new Float tag.
func NewFloat(name string, v float32) *Float {
	return &Float{named{name}, v}
}

// Float32 returns tag value.
func (t *Float) Float32() float32 { return t.value }

// Type implements the Tag interface.
func (t *Float) Type() Type { return FloatT }

// Value implements the Tag interface.
func (t *Float) Value() any { return t.value }

// String implements the Tag interface.
func (t *Float) String() string {
	return header(FloatT, t.name) + formatFloat(float64(t.value), 32)
}

func (t *Float) rename(name string) Tag {
	c := *t
	c.name = name
	return &c
}

// Double represents an IEEE-754 double precision tag.
type Double struct {
	named
	value float64
}

// NewDouble returns a new Double tag.
func NewDouble(name string, v float64) *Double {
	return &Double{named{name}, v}
}

// Float64 returns tag value.
func (t *Double) Float64() float64 { return t.value }

// Type implements the Tag interface.
func (t *Double) Type() Type { return DoubleT }

// Value implements the Tag interface.
func (t *Double) Value() any { return t.value }

// String implements the Tag interface.
func (t *Double) String() string {
	return header(DoubleT, t.name) + formatFloat(t.value, 64)
}

func (t *Double) rename(name string) Tag {
	c := *t
	c.name = name
	return &c
}

// String represents an UTF-8 string tag. Its encoded form can't exceed
// math.MaxUint16 bytes.
type String struct {
	named
	value string
}

// NewString returns a new String tag.
func NewString(name string, v string) *String {
	return &String{named{name}, v}
}

// Text returns tag value.
func (t *String) Text() string { return t.value }

// Type implements the Tag interface.
func (t *String) Type() Type { return StringT }

// Value implements the Tag interface.
func (t *String) Value() any { return t.value }

// String implements the Tag interface.
func (t *String) String() string {
	return header(StringT, t.name) + t.value
}

func (t *String) rename(name string) Tag {
	c := *t
	c.name = name
	return &c
}
