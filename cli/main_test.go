package main

import (
	"testing"
)

func TestCLIVersion(t *testing.T) {
	e := newExecutor(t)
	e.Run(t, "nbt", "--version")
	e.checkNextLine(t, "^nbt$")
	e.checkNextLine(t, "^Version:")
	e.checkNextLine(t, "^GoVersion:")
	e.checkEOF(t)
}
