/*
Package db contains commands managing named trees kept in the database
configured in DBConfiguration section of the config file.
*/
package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/nbt-go/cli/input"
	"github.com/nspcc-dev/nbt-go/cli/options"
	"github.com/nspcc-dev/nbt-go/pkg/compress"
	"github.com/nspcc-dev/nbt-go/pkg/config"
	"github.com/nspcc-dev/nbt-go/pkg/nbtfile"
	"github.com/nspcc-dev/nbt-go/pkg/storage"
	"github.com/nspcc-dev/nbt-go/pkg/tagstore"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var errNoName = errors.New("tree name is required")

var (
	outFlag = cli.StringFlag{Name: "out, o", Usage: "write the tree to the file instead of printing it"}
	yesFlag = cli.BoolFlag{Name: "yes, y", Usage: "do not ask for confirmation"}
)

// NewCommands returns 'db' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "db",
		Usage: "Manage trees stored in the database",
		Subcommands: []cli.Command{
			{
				Name:      "put",
				Usage:     "Store tree from NBT file under the given name",
				UsageText: "nbt db put [--config-file <file>] <name> <file>",
				Action:    put,
				Flags:     options.Common,
			},
			{
				Name:      "get",
				Usage:     "Print or save stored tree",
				UsageText: "nbt db get [--out <file>] [--compression <type>] <name>",
				Action:    get,
				Flags:     append([]cli.Flag{outFlag, options.Compression}, options.Common...),
			},
			{
				Name:      "delete",
				Usage:     "Remove stored tree",
				UsageText: "nbt db delete [--yes] <name>",
				Action:    remove,
				Flags:     append([]cli.Flag{yesFlag}, options.Common...),
			},
			{
				Name:      "list",
				Usage:     "List names of stored trees",
				UsageText: "nbt db list [<prefix>]",
				Action:    list,
				Flags:     options.Common,
			},
		},
	}}
}

// openStore opens the database from configuration.
func openStore(ctx *cli.Context) (config.Config, *tagstore.Store, *zap.Logger, error) {
	cfg, log, err := options.GetConfigAndLogger(ctx)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	app := cfg.ApplicationConfiguration
	tcfg, err := app.TagStoreConfig()
	if err != nil {
		return config.Config{}, nil, nil, cli.NewExitError(err, 1)
	}
	backend, err := storage.NewStore(app.DBConfiguration)
	if err != nil {
		return config.Config{}, nil, nil, cli.NewExitError(fmt.Errorf("failed to open database: %w", err), 1)
	}
	ts, err := tagstore.New(backend, tcfg, log)
	if err != nil {
		_ = backend.Close()
		return config.Config{}, nil, nil, cli.NewExitError(err, 1)
	}
	log.Debug("database opened", zap.String("type", app.DBConfiguration.Type))
	return cfg, ts, log, nil
}

func closeStore(ts *tagstore.Store, log *zap.Logger) {
	if err := ts.Close(); err != nil {
		log.Error("failed to close database", zap.Error(err))
	}
	_ = log.Sync()
}

func put(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.NewExitError("name and file expected", 1)
	}
	name, path := ctx.Args().Get(0), ctx.Args().Get(1)
	if name == "" {
		return cli.NewExitError(errNoName, 1)
	}
	cfg, ts, log, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(ts, log)

	c, _, err := nbtfile.ReadFileLimited(path, cfg.ApplicationConfiguration.Codec.Limits())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := ts.Put(name, c); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func get(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return cli.NewExitError(errNoName, 1)
	}
	cfg, ts, log, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(ts, log)

	c, err := ts.Get(name)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return cli.NewExitError(fmt.Errorf("tree %q not found", name), 1)
		}
		return cli.NewExitError(err, 1)
	}
	out := ctx.String("out")
	if out == "" {
		fmt.Fprintln(ctx.App.Writer, strings.ReplaceAll(c.String(), "\r\n", "\n"))
		return nil
	}
	typ, err := cfg.ApplicationConfiguration.Codec.CompressionType()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if s := ctx.String("compression"); s != "" {
		if typ, err = compress.FromString(s); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	if err := nbtfile.WriteFile(out, c, typ); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func remove(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return cli.NewExitError(errNoName, 1)
	}
	if !ctx.Bool("yes") && !input.Confirm(ctx.App.Writer, fmt.Sprintf("Delete %q?", name)) {
		return cli.NewExitError("aborted", 1)
	}
	_, ts, log, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(ts, log)

	if err := ts.Delete(name); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func list(ctx *cli.Context) error {
	_, ts, log, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(ts, log)

	for _, name := range ts.Keys(ctx.Args().First()) {
		fmt.Fprintln(ctx.App.Writer, name)
	}
	return nil
}
