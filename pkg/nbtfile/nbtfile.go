/*
Package nbtfile reads and writes whole NBT files. Files contain a single root
compound optionally wrapped with one of the compress package wrappers.
*/
package nbtfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/nbt-go/pkg/compress"
	"github.com/nspcc-dev/nbt-go/pkg/io"
	"github.com/nspcc-dev/nbt-go/pkg/nbt"
)

// ReadFile reads the root compound from the file detecting compression
// automatically. Detected compression type is returned along with the tree.
func ReadFile(path string) (*nbt.Compound, compress.Type, error) {
	return ReadFileLimited(path, nbt.DefaultLimits)
}

// ReadFileLimited is the same as ReadFile, but with custom decoder limits.
func ReadFileLimited(path string, lim nbt.Limits) (*nbt.Compound, compress.Type, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, compress.None, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	// Short files are fine here, Peek returns what's available.
	prefix, _ := br.Peek(compress.DetectLen)
	typ := compress.Detect(prefix)

	r, err := compress.NewReader(br, typ)
	if err != nil {
		return nil, typ, fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	t, err := nbt.Read(r, lim)
	if err != nil {
		return nil, typ, fmt.Errorf("%s: %w", path, err)
	}
	c, ok := t.(*nbt.Compound)
	if !ok {
		return nil, typ, fmt.Errorf("%s: %w: %s", path, nbt.ErrNotCompound, t.Type())
	}
	return c, typ, nil
}

// WriteFile writes c to the file at path wrapped with t. The parent directory
// is created if needed. The file is replaced atomically: data goes to a
// temporary file in the same directory that's then renamed.
func WriteFile(path string, c *nbt.Compound, t compress.Type) error {
	if c == nil {
		return nbt.ErrNilTag
	}
	if err := io.MakeDirForFile(path, "nbtfile"); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	err = writeTo(f, c, t)
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// writeTo writes and closes f.
func writeTo(f *os.File, c *nbt.Compound, t compress.Type) error {
	bw := bufio.NewWriter(f)
	w, err := compress.NewWriter(bw, t)
	if err != nil {
		return errors.Join(err, f.Close())
	}
	err = nbt.Write(w, c)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = bw.Flush()
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
