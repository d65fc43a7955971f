/*
Package compress provides transparent stream wrappers used around NBT data.
NBT itself is not aware of compression, files and stored values may be
wrapped with gzip (the most common case), zlib, lz4 frames or zstd.
*/
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Type is a compression wrapper kind.
type Type byte

// Supported wrappers.
const (
	None Type = iota
	Gzip
	Zlib
	LZ4
	Zstd
)

// ErrUnknownType is returned for unsupported wrapper types.
var ErrUnknownType = errors.New("unknown compression type")

var typeNames = [...]string{
	None: "none",
	Gzip: "gzip",
	Zlib: "zlib",
	LZ4:  "lz4",
	Zstd: "zstd",
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectLen is the number of leading bytes enough for Detect.
const DetectLen = 4

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("unknown(%d)", byte(t))
}

// FromString parses compression type name (case-insensitive). An empty
// string means None.
func FromString(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Detect guesses the wrapper from the first bytes of the data. Anything not
// recognized is considered to be raw (None). Raw NBT usually starts with 0x0a
// which doesn't clash with any of the magics.
func Detect(prefix []byte) Type {
	switch {
	case bytes.HasPrefix(prefix, gzipMagic):
		return Gzip
	case bytes.HasPrefix(prefix, lz4Magic):
		return LZ4
	case bytes.HasPrefix(prefix, zstdMagic):
		return Zstd
	case isZlibHeader(prefix):
		return Zlib
	default:
		return None
	}
}

// isZlibHeader checks RFC 1950 header: deflate method with 32K window and
// valid FCHECK bits.
func isZlibHeader(p []byte) bool {
	if len(p) < 2 || p[0] != 0x78 {
		return false
	}
	return (uint16(p[0])<<8|uint16(p[1]))%31 == 0
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NewReader wraps r with the decompressor of type t. Closing the result
// doesn't close r.
func NewReader(r io.Reader, t Type) (io.ReadCloser, error) {
	switch t {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		return zr, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Zstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
}

// NewWriter wraps w with the compressor of type t. The result must be closed
// to flush buffered data, closing it doesn't close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zlib:
		return zlib.NewWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
}

// Compress returns data wrapped with t. For None the data is returned as is.
func Compress(data []byte, t Type) ([]byte, error) {
	if t == None {
		return data, nil
	}
	buf := new(bytes.Buffer)
	w, err := NewWriter(buf, t)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	return buf.Bytes(), nil
}

// Decompress unwraps data compressed with t. For None the data is returned
// as is.
func Decompress(data []byte, t Type) ([]byte, error) {
	if t == None {
		return data, nil
	}
	r, err := NewReader(bytes.NewReader(data), t)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	res, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	return res, nil
}

// DecompressAuto detects wrapper type and unwraps data.
func DecompressAuto(data []byte) ([]byte, Type, error) {
	t := Detect(data)
	res, err := Decompress(data, t)
	return res, t, err
}
