package nbtfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/nbt-go/pkg/compress"
	"github.com/nspcc-dev/nbt-go/pkg/nbt"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T) *nbt.Compound {
	l, err := nbt.NewList("tags", nbt.StringT, []nbt.Tag{nbt.NewString("", "a"), nbt.NewString("", "b")})
	require.NoError(t, err)
	return nbt.NewCompoundBuilder().
		PutInt("hp", 20).
		PutString("name", "Steve").
		PutByteArray("blocks", []byte{1, 2, 3}).
		Put("tags", l).
		Build("Level")
}

func TestWriteReadFile(t *testing.T) {
	c := testTree(t)
	for _, typ := range []compress.Type{compress.None, compress.Gzip, compress.Zlib, compress.LZ4, compress.Zstd} {
		t.Run(typ.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", "dir", "level.dat")
			require.NoError(t, WriteFile(path, c, typ))

			actual, detected, err := ReadFile(path)
			require.NoError(t, err)
			require.Equal(t, typ, detected)
			require.True(t, nbt.Equals(c, actual))

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			require.Len(t, entries, 1, "no temporary files left")
		})
	}
}

func TestWriteFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.dat")
	require.NoError(t, WriteFile(path, testTree(t), compress.Gzip))
	require.NoError(t, WriteFile(path, nbt.NewCompound("", nbt.NewInt("x", 1)), compress.None))

	actual, typ, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, compress.None, typ)
	require.Equal(t, int32(1), actual.GetInt("x"))
	require.Equal(t, 1, actual.Len())
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := ReadFile(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, _, err = ReadFile(empty)
	var fe *nbt.FormatError
	require.ErrorAs(t, err, &fe)

	notCompound := filepath.Join(dir, "int")
	data, err := nbt.Encode(nbt.NewInt("", 1))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(notCompound, data, 0o644))
	_, _, err = ReadFile(notCompound)
	require.ErrorIs(t, err, nbt.ErrNotCompound)

	deep := filepath.Join(dir, "deep")
	require.NoError(t, WriteFile(deep, nbt.NewCompound("", nbt.NewCompound("a", nbt.NewCompound("b"))), compress.Gzip))
	_, _, err = ReadFileLimited(deep, nbt.Limits{MaxDepth: 2})
	require.ErrorIs(t, err, nbt.ErrTooDeep)
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()
	require.ErrorIs(t, WriteFile(filepath.Join(dir, "x"), nil, compress.None), nbt.ErrNilTag)
	require.ErrorIs(t, WriteFile(filepath.Join(dir, "x"), testTree(t), compress.Type(42)), compress.ErrUnknownType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
