package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/nbt-go/cli/db"
	"github.com/nspcc-dev/nbt-go/cli/tree"
	"github.com/nspcc-dev/nbt-go/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "nbt\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates an instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "nbt"
	ctl.Version = config.Version
	ctl.Usage = "Named Binary Tag files and storage tool"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, tree.NewCommands()...)
	ctl.Commands = append(ctl.Commands, db.NewCommands()...)
	return ctl
}
