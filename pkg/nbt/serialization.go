package nbt

import (
	"errors"
	"fmt"
	gio "io"
	"math"

	"github.com/nspcc-dev/nbt-go/pkg/io"
)

// DefaultMaxDepth is the default limit of List/Compound nesting accepted by
// the decoder.
const DefaultMaxDepth = 512

// Limits restrict decoder resource usage for untrusted input.
type Limits struct {
	// MaxDepth is the maximum List/Compound nesting level, the root
	// compound is at level 1.
	MaxDepth int
	// MaxArrayLen is the maximum number of elements in an array or a list.
	MaxArrayLen int
}

// DefaultLimits are used by Decode, DecodeCompound, DecodeBinary and Read.
var DefaultLimits = Limits{
	MaxDepth:    DefaultMaxDepth,
	MaxArrayLen: io.MaxArraySize,
}

// serContext is an internal serialization context.
type serContext struct {
	*io.BinWriter
}

// Encode encodes given tag (with its name) into the byte slice.
func Encode(t Tag) ([]byte, error) {
	w := io.NewBufBinWriter()
	EncodeBinary(t, w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// EncodeBinary encodes given tag (with its name) into the given BinWriter.
// Errors are reported via w.Err.
func EncodeBinary(t Tag, w *io.BinWriter) {
	sc := serContext{BinWriter: w}
	sc.serializeNamed(t)
}

// Write encodes given tag (with its name) into w.
func Write(w gio.Writer, t Tag) error {
	bw := io.NewBinWriterFromIO(w)
	EncodeBinary(t, bw)
	return bw.Err
}

func (w *serContext) serializeNamed(t Tag) {
	if w.Err != nil {
		return
	}
	if t == nil {
		w.Err = ErrNilTag
		return
	}
	w.WriteB(byte(t.Type()))
	if t.Type() == EndT {
		return
	}
	w.WriteString(t.Name())
	w.serializePayload(t)
}

func (w *serContext) serializePayload(t Tag) {
	if w.Err != nil {
		return
	}
	switch v := t.(type) {
	case End:
	case *Byte:
		w.WriteB(byte(v.value))
	case *Short:
		w.WriteU16BE(uint16(v.value))
	case *Int:
		w.WriteU32BE(uint32(v.value))
	case *Long:
		w.WriteU64BE(uint64(v.value))
	case *Float:
		w.WriteU32BE(math.Float32bits(v.value))
	case *Double:
		w.WriteU64BE(math.Float64bits(v.value))
	case *String:
		w.WriteString(v.value)
	case *ByteArray:
		if !w.writeLen(len(v.value)) {
			return
		}
		w.WriteBytes(v.value)
	case *IntArray:
		if !w.writeLen(len(v.value)) {
			return
		}
		for _, i := range v.value {
			w.WriteU32BE(uint32(i))
		}
	case *List:
		w.WriteB(byte(v.typ))
		if !w.writeLen(len(v.elems)) {
			return
		}
		for i, e := range v.elems {
			if e == nil || e.Type() != v.typ {
				w.Err = fmt.Errorf("%w: element %d is %s in a list of %s", ErrListType, i, TypeOf(e), v.typ)
				return
			}
			w.serializePayload(e)
		}
	case *Compound:
		for _, e := range v.list {
			w.serializeNamed(e)
		}
		w.WriteB(byte(EndT))
	default:
		w.Err = fmt.Errorf("%w: %T", ErrUnknownType, t)
	}
}

func (w *serContext) writeLen(n int) bool {
	if n > math.MaxInt32 {
		w.Err = fmt.Errorf("%w: %d elements", ErrTooBig, n)
		return false
	}
	w.WriteU32BE(uint32(n))
	return w.Err == nil
}

// decContext is an internal deserialization context.
type decContext struct {
	*io.BinReader
	lim   Limits
	depth int
}

// Decode decodes a single named tag from the given byte slice. Trailing data
// is not an error, it's just ignored.
func Decode(data []byte) (Tag, error) {
	r := io.NewBinReaderFromBuf(data)
	t := DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	return t, nil
}

// DecodeCompound is the same as Decode, but it also requires the root tag to
// be a Compound.
func DecodeCompound(data []byte) (*Compound, error) {
	t, err := Decode(data)
	if err != nil {
		return nil, err
	}
	c, ok := t.(*Compound)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotCompound, t.Type())
	}
	return c, nil
}

// Read decodes a single named tag from r using the given limits.
func Read(r gio.Reader, lim Limits) (Tag, error) {
	br := io.NewBinReaderFromIO(r)
	t := DecodeBinaryLimited(br, lim)
	if br.Err != nil {
		return nil, br.Err
	}
	return t, nil
}

// DecodeBinary decodes a single named tag from the given reader using
// DefaultLimits. Caveat: always check reader's error value before using the
// returned Tag, it's a *FormatError for malformed data.
func DecodeBinary(r *io.BinReader) Tag {
	return DecodeBinaryLimited(r, DefaultLimits)
}

// DecodeBinaryLimited is the same as DecodeBinary, but with custom limits.
// Zero limit values are replaced with the defaults.
func DecodeBinaryLimited(r *io.BinReader, lim Limits) Tag {
	if lim.MaxDepth <= 0 {
		lim.MaxDepth = DefaultMaxDepth
	}
	if lim.MaxArrayLen <= 0 {
		lim.MaxArrayLen = io.MaxArraySize
	}
	d := decContext{BinReader: r, lim: lim}
	t := d.decodeNamed()
	if r.Err != nil {
		return nil
	}
	return t
}

// check converts plain reader errors into FormatError, it returns true if
// there is no error.
func (d *decContext) check(t Type) bool {
	if d.Err == nil {
		return true
	}
	var fe *FormatError
	if !errors.As(d.Err, &fe) {
		err := d.Err
		if err == gio.EOF {
			err = gio.ErrUnexpectedEOF
		}
		d.Err = &FormatError{Offset: d.Offset(), Type: t, Err: err}
	}
	return false
}

func (d *decContext) fail(off int64, t Type, err error) {
	if d.Err == nil {
		d.Err = &FormatError{Offset: off, Type: t, Err: err}
	}
}

func (d *decContext) decodeNamed() Tag {
	off := d.Offset()
	t := Type(d.ReadB())
	if !d.check(t) {
		return nil
	}
	if !t.IsValid() {
		d.fail(off, t, ErrUnknownType)
		return nil
	}
	if t == EndT {
		return End{}
	}
	name := d.ReadString()
	if !d.check(t) {
		return nil
	}
	return d.decodePayload(t, name)
}

func (d *decContext) decodePayload(t Type, name string) Tag {
	var res Tag
	switch t {
	case EndT:
		res = End{}
	case ByteT:
		res = &Byte{named{name}, int8(d.ReadB())}
	case ShortT:
		res = &Short{named{name}, int16(d.ReadU16BE())}
	case IntT:
		res = &Int{named{name}, int32(d.ReadU32BE())}
	case LongT:
		res = &Long{named{name}, int64(d.ReadU64BE())}
	case FloatT:
		res = &Float{named{name}, math.Float32frombits(d.ReadU32BE())}
	case DoubleT:
		res = &Double{named{name}, math.Float64frombits(d.ReadU64BE())}
	case StringT:
		res = &String{named{name}, d.ReadString()}
	case ByteArrayT:
		n := d.readLen(t, 1)
		if d.Err != nil {
			return nil
		}
		b := make([]byte, n)
		d.ReadBytes(b)
		res = &ByteArray{named{name}, b}
	case IntArrayT:
		n := d.readLen(t, 4)
		if d.Err != nil {
			return nil
		}
		a := make([]int32, n)
		for i := range a {
			a[i] = int32(d.ReadU32BE())
		}
		res = &IntArray{named{name}, a}
	case ListT:
		res = d.decodeList(name)
	case CompoundT:
		res = d.decodeCompound(name)
	default:
		d.fail(d.Offset(), t, ErrUnknownType)
	}
	if !d.check(t) {
		return nil
	}
	return res
}

func (d *decContext) decodeList(name string) Tag {
	if !d.enter(ListT) {
		return nil
	}
	defer d.leave()

	off := d.Offset()
	et := Type(d.ReadB())
	if !d.check(ListT) {
		return nil
	}
	if !et.IsValid() {
		d.fail(off, et, ErrUnknownType)
		return nil
	}
	n := d.readLen(ListT, minPayloadSize(et))
	if d.Err != nil {
		return nil
	}
	if et == EndT && n > 0 {
		d.fail(off, ListT, fmt.Errorf("%w: %d elements of %s", ErrListType, n, et))
		return nil
	}
	elems := make([]Tag, 0, min(n, 1024))
	for range n {
		e := d.decodePayload(et, "")
		if d.Err != nil {
			return nil
		}
		elems = append(elems, e)
	}
	return &List{named{name}, et, elems}
}

func (d *decContext) decodeCompound(name string) Tag {
	if !d.enter(CompoundT) {
		return nil
	}
	defer d.leave()

	c := &Compound{named{name}, newEntries(0)}
	for {
		e := d.decodeNamed()
		if d.Err != nil {
			return nil
		}
		if e.Type() == EndT {
			return c
		}
		c.put(e.Name(), e)
	}
}

func (d *decContext) enter(t Type) bool {
	d.depth++
	if d.depth > d.lim.MaxDepth {
		d.fail(d.Offset(), t, fmt.Errorf("%w: more than %d levels", ErrTooDeep, d.lim.MaxDepth))
		return false
	}
	return true
}

func (d *decContext) leave() {
	d.depth--
}

// readLen reads an int32 length prefix and validates it against limits and
// the data left (if known).
func (d *decContext) readLen(t Type, elemSize int) int {
	off := d.Offset()
	n := int32(d.ReadU32BE())
	if !d.check(t) {
		return 0
	}
	switch {
	case n < 0:
		d.fail(off, t, fmt.Errorf("%w: %d", ErrNegativeLength, n))
	case int(n) > d.lim.MaxArrayLen:
		d.fail(off, t, fmt.Errorf("%w: %d elements, limit is %d", ErrTooBig, n, d.lim.MaxArrayLen))
	default:
		if rem := d.Remaining(); rem >= 0 && int64(n)*int64(elemSize) > int64(rem) {
			d.fail(off, t, fmt.Errorf("%w: %d elements with only %d bytes left", gio.ErrUnexpectedEOF, n, rem))
		}
	}
	if d.Err != nil {
		return 0
	}
	return int(n)
}

// minPayloadSize returns the least number of bytes a payload of the given
// type occupies.
func minPayloadSize(t Type) int {
	switch t {
	case ByteT, CompoundT:
		return 1
	case ShortT, StringT:
		return 2
	case IntT, FloatT, ByteArrayT, IntArrayT:
		return 4
	case LongT, DoubleT:
		return 8
	case ListT:
		return 5
	default:
		return 0
	}
}
