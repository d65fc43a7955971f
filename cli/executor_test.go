package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nspcc-dev/nbt-go/cli/app"
	"github.com/nspcc-dev/nbt-go/cli/input"
	"github.com/nspcc-dev/nbt-go/pkg/compress"
	"github.com/nspcc-dev/nbt-go/pkg/nbt"
	"github.com/nspcc-dev/nbt-go/pkg/nbtfile"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

// executor represents context for a test instance.
// It can be safely used in multiple tests, but not in parallel.
type executor struct {
	// CLI is a cli application to test.
	CLI *cli.App
	// Out contains command output.
	Out *bytes.Buffer
	// Err contains command errors.
	Err *bytes.Buffer
	// In contains command input.
	In *bytes.Buffer
}

func newExecutor(t *testing.T) *executor {
	e := &executor{
		CLI: app.New(),
		Out: bytes.NewBuffer(nil),
		Err: bytes.NewBuffer(nil),
		In:  bytes.NewBuffer(nil),
	}
	e.CLI.Writer = e.Out
	e.CLI.ErrWriter = e.Err
	t.Cleanup(func() {
		e.Close(t)
	})
	return e
}

func (e *executor) Close(t *testing.T) {
	input.Terminal = nil
}

func (e *executor) getNextLine(t *testing.T) string {
	line, err := e.Out.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimSuffix(line, "\n")
}

func (e *executor) checkNextLine(t *testing.T, expected string) {
	line := e.getNextLine(t)
	e.checkLine(t, line, expected)
}

func (e *executor) checkLine(t *testing.T, line, expected string) {
	require.Regexp(t, expected, line)
}

func (e *executor) checkEOF(t *testing.T) {
	_, err := e.Out.ReadString('\n')
	require.True(t, errors.Is(err, io.EOF))
}

func setExitFunc() <-chan int {
	ch := make(chan int, 1)
	cli.OsExiter = func(code int) {
		ch <- code
	}
	return ch
}

func checkExit(t *testing.T, ch <-chan int, code int) {
	select {
	case c := <-ch:
		require.Equal(t, code, c)
	default:
		if code != 0 {
			require.Fail(t, "no exit was called")
		}
	}
}

// RunWithError runs command and checks that is exits with error.
func (e *executor) RunWithError(t *testing.T, args ...string) {
	ch := setExitFunc()
	require.Error(t, e.run(args...))
	checkExit(t, ch, 1)
}

// Run runs command and checks that there were no errors.
func (e *executor) Run(t *testing.T, args ...string) {
	ch := setExitFunc()
	require.NoError(t, e.run(args...))
	checkExit(t, ch, 0)
}

func (e *executor) run(args ...string) error {
	e.Out.Reset()
	e.Err.Reset()
	input.Terminal = term.NewTerminal(input.ReadWriter{
		Reader: e.In,
		Writer: io.Discard,
	}, "")
	err := e.CLI.Run(args)
	input.Terminal = nil
	e.In.Reset()
	return err
}

// setStdin replaces standard input used for "-" arguments.
func setStdin(t *testing.T, r io.Reader) {
	input.Stdin = r
	t.Cleanup(func() { input.Stdin = os.Stdin })
}

// testTree returns a small tree with all kinds of tags.
func testTree(t *testing.T) *nbt.Compound {
	l, err := nbt.NewList("inventory", nbt.CompoundT, []nbt.Tag{
		nbt.NewCompound("", nbt.NewString("id", "stone"), nbt.NewByte("count", 64)),
	})
	require.NoError(t, err)
	return nbt.NewCompoundBuilder().
		PutString("name", "Steve").
		PutInt("hp", 20).
		PutLong("seed", -42).
		PutDouble("x", 1.5).
		PutByteArray("blocks", []byte{1, 2, 3}).
		PutIntArray("heights", []int32{64, 65}).
		Put("inventory", l).
		Build("Level")
}

// writeTree saves c into the temporary directory and returns the path.
func writeTree(t *testing.T, c *nbt.Compound, typ compress.Type) string {
	path := filepath.Join(t.TempDir(), "level.dat")
	require.NoError(t, nbtfile.WriteFile(path, c, typ))
	return path
}

// writeConfig creates configuration file with LevelDB in the temporary
// directory.
func writeConfig(t *testing.T) string {
	dir := t.TempDir()
	cfg := "ApplicationConfiguration:\n" +
		"  LogLevel: error\n" +
		"  Codec:\n" +
		"    Compression: zstd\n" +
		"  DBConfiguration:\n" +
		"    Type: leveldb\n" +
		"    LevelDBOptions:\n" +
		"      DataDirectoryPath: " + filepath.Join(dir, "db") + "\n"
	path := filepath.Join(dir, "nbt.yml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}
