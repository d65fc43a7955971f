package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeDirForFile(t *testing.T) {
	t.Run("nested", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "a", "b", "level.dat")
		require.NoError(t, MakeDirForFile(filePath, "test"))

		f, err := os.Create(filePath)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	})
	t.Run("parent is a file", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "level.dat")
		f, err := os.Create(filePath)
		require.NoError(t, err)
		require.NoError(t, f.Close())

		err = MakeDirForFile(filepath.Join(filePath, "error"), "test")
		require.ErrorContains(t, err, "could not create dir for test")
	})
}
