/*
Package input provides helpers for CLI input and output: reading from files
or stdin, interactive confirmation and terminal detection.
*/
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ReadWriter combines reader and writer.
type ReadWriter struct {
	io.Reader
	io.Writer
}

// Terminal is a terminal used for input. If `nil`, stdin is used.
var Terminal *term.Terminal

// Stdin is used for "-" file arguments, it can be replaced in tests.
var Stdin io.Reader = os.Stdin

// ReadLine reads line from the input without trailing '\n'.
func ReadLine(w io.Writer, prompt string) (string, error) {
	if Terminal != nil {
		_, err := Terminal.Write([]byte(prompt))
		if err != nil {
			return "", err
		}
		raw, err := Terminal.ReadLine()
		return strings.TrimRight(raw, "\n"), err
	}
	fmt.Fprint(w, prompt)
	buf := bufio.NewReader(Stdin)
	line, err := buf.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// Confirm asks the user for a yes/no answer, anything but "y" or "yes"
// (case-insensitive) is a no.
func Confirm(w io.Writer, prompt string) bool {
	line, err := ReadLine(w, prompt+" [y/N] > ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ReadFile returns contents of the file or of Stdin for "-".
func ReadFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(Stdin)
	}
	return os.ReadFile(path)
}

// IsTerminal checks whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
