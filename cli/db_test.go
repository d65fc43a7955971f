package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/nspcc-dev/nbt-go/pkg/compress"
	"github.com/nspcc-dev/nbt-go/pkg/nbt"
	"github.com/nspcc-dev/nbt-go/pkg/nbtfile"
	"github.com/stretchr/testify/require"
)

func TestDB(t *testing.T) {
	e := newExecutor(t)
	cfg := writeConfig(t)
	c := testTree(t)
	file := writeTree(t, c, compress.LZ4)

	t.Run("put", func(t *testing.T) {
		e.RunWithError(t, "nbt", "db", "put", "--config-file", cfg, "world/level")
		e.RunWithError(t, "nbt", "db", "put", "--config-file", cfg, "world/level", filepath.Join(t.TempDir(), "missing"))
		e.Run(t, "nbt", "db", "put", "--config-file", cfg, "world/level", file)
		e.Run(t, "nbt", "db", "put", "--config-file", cfg, "world/player", file)
		e.Run(t, "nbt", "db", "put", "--config-file", cfg, "other", file)
	})
	t.Run("list", func(t *testing.T) {
		e.Run(t, "nbt", "db", "list", "--config-file", cfg)
		e.checkNextLine(t, "^other$")
		e.checkNextLine(t, "^world/level$")
		e.checkNextLine(t, "^world/player$")
		e.checkEOF(t)

		e.Run(t, "nbt", "db", "list", "--config-file", cfg, "world/")
		e.checkNextLine(t, "^world/level$")
		e.checkNextLine(t, "^world/player$")
		e.checkEOF(t)
	})
	t.Run("get", func(t *testing.T) {
		e.RunWithError(t, "nbt", "db", "get", "--config-file", cfg)
		e.RunWithError(t, "nbt", "db", "get", "--config-file", cfg, "missing")

		e.Run(t, "nbt", "db", "get", "--config-file", cfg, "world/level")
		require.Equal(t, strings.ReplaceAll(c.String(), "\r\n", "\n")+"\n", e.Out.String())

		out := filepath.Join(t.TempDir(), "level.dat")
		e.Run(t, "nbt", "db", "get", "--config-file", cfg, "--out", out, "world/level")
		actual, typ, err := nbtfile.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, compress.Zstd, typ)
		require.True(t, nbt.Equals(c, actual))

		e.Run(t, "nbt", "db", "get", "--config-file", cfg, "-c", "none", "--out", out, "world/level")
		_, typ, err = nbtfile.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, compress.None, typ)
	})
	t.Run("delete", func(t *testing.T) {
		e.RunWithError(t, "nbt", "db", "delete", "--config-file", cfg)

		e.In.WriteString("n\r")
		e.RunWithError(t, "nbt", "db", "delete", "--config-file", cfg, "other")
		e.Run(t, "nbt", "db", "get", "--config-file", cfg, "other")

		e.In.WriteString("y\r")
		e.Run(t, "nbt", "db", "delete", "--config-file", cfg, "other")
		e.RunWithError(t, "nbt", "db", "get", "--config-file", cfg, "other")

		e.Run(t, "nbt", "db", "delete", "--config-file", cfg, "--yes", "world/player")
		e.Run(t, "nbt", "db", "list", "--config-file", cfg)
		e.checkNextLine(t, "^world/level$")
		e.checkEOF(t)
	})
}

func TestDBBadConfig(t *testing.T) {
	e := newExecutor(t)
	e.RunWithError(t, "nbt", "db", "list", "--config-file", filepath.Join(t.TempDir(), "missing.yml"))
}
