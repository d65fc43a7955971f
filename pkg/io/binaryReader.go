package io

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// MaxArraySize is the maximum size of an array which can be decoded.
const MaxArraySize = 0x1000000

// lener is implemented by in-memory readers that know how much data is left
// (bytes.Reader, bytes.Buffer, strings.Reader).
type lener interface {
	Len() int
}

// BinReader is a convenient wrapper around a io.Reader and err object.
// Used to simplify error handling when reading into a struct with many fields.
// Once Err is set every subsequent read is a no-op returning zero values.
type BinReader struct {
	r   io.Reader
	pos int64
	u64 [8]byte
	Err error
}

// NewBinReaderFromIO makes a BinReader from io.Reader.
func NewBinReaderFromIO(ior io.Reader) *BinReader {
	return &BinReader{r: ior}
}

// NewBinReaderFromBuf makes a BinReader from byte buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	r := bytes.NewReader(b)
	return NewBinReaderFromIO(r)
}

// Offset returns the number of bytes successfully consumed so far.
func (r *BinReader) Offset() int64 {
	return r.pos
}

// Remaining returns the number of bytes left in the underlying reader if it's
// able to tell (in-memory readers are), -1 otherwise.
func (r *BinReader) Remaining() int {
	if l, ok := r.r.(lener); ok {
		return l.Len()
	}
	return -1
}

// ReadB reads a byte from the underlying io.Reader.
func (r *BinReader) ReadB() byte {
	r.ReadBytes(r.u64[:1])
	if r.Err != nil {
		return 0
	}
	return r.u64[0]
}

// ReadU16BE reads a big-endian encoded uint16 value from the underlying
// io.Reader.
func (r *BinReader) ReadU16BE() uint16 {
	r.ReadBytes(r.u64[:2])
	if r.Err != nil {
		return 0
	}
	return binary.BigEndian.Uint16(r.u64[:2])
}

// ReadU32BE reads a big-endian encoded uint32 value from the underlying
// io.Reader.
func (r *BinReader) ReadU32BE() uint32 {
	r.ReadBytes(r.u64[:4])
	if r.Err != nil {
		return 0
	}
	return binary.BigEndian.Uint32(r.u64[:4])
}

// ReadU64BE reads a big-endian encoded uint64 value from the underlying
// io.Reader.
func (r *BinReader) ReadU64BE() uint64 {
	r.ReadBytes(r.u64[:8])
	if r.Err != nil {
		return 0
	}
	return binary.BigEndian.Uint64(r.u64[:8])
}

// ReadBytes fills buf with the data from the underlying io.Reader. A partial
// read sets io.ErrUnexpectedEOF, a read at the very end of data sets io.EOF.
func (r *BinReader) ReadBytes(buf []byte) {
	if r.Err != nil {
		return
	}
	n, err := io.ReadFull(r.r, buf)
	r.pos += int64(n)
	r.Err = err
}

// ReadString reads a string prefixed with its big-endian uint16 length.
func (r *BinReader) ReadString() string {
	n := int(r.ReadU16BE())
	if r.Err != nil {
		return ""
	}
	if rem := r.Remaining(); rem >= 0 && n > rem {
		r.Err = fmt.Errorf("string of %d bytes with only %d left: %w", n, rem, io.ErrUnexpectedEOF)
		return ""
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	if r.Err != nil {
		return ""
	}
	return string(b)
}
