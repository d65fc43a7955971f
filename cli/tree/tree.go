/*
Package tree contains commands working with NBT files: printing, conversion
to and from JSON, comparison and recompression.
*/
package tree

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/nspcc-dev/nbt-go/cli/input"
	"github.com/nspcc-dev/nbt-go/cli/options"
	"github.com/nspcc-dev/nbt-go/pkg/compress"
	"github.com/nspcc-dev/nbt-go/pkg/config"
	"github.com/nspcc-dev/nbt-go/pkg/nbt"
	"github.com/nspcc-dev/nbt-go/pkg/nbtfile"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var (
	errNoInput     = errors.New("no input file given")
	errTerminalOut = errors.New("refusing to write binary data to a terminal, use --out or redirect output")
	errTreesDiffer = errors.New("trees differ")
)

var (
	forceFlag   = cli.BoolFlag{Name: "force, f", Usage: "write binary output even to a terminal"}
	outFlag     = cli.StringFlag{Name: "out, o", Usage: "output file ('-' for standard output)"}
	typedFlag   = cli.BoolFlag{Name: "typed, t", Usage: "use lossless typed JSON representation"}
	indentFlag  = cli.BoolFlag{Name: "indent, i", Usage: "indent JSON output"}
	rawFlag     = cli.BoolFlag{Name: "raw", Usage: "dump internal Go representation"}
	contextFlag = cli.IntFlag{Name: "context, U", Value: 3, Usage: "number of context lines in diff output"}
)

// NewCommands returns NBT file commands.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:      "dump",
			Usage:     "Print NBT file contents",
			UsageText: "nbt dump [--raw] [--config-file <file>] <file>",
			Description: `Prints the tree stored in the given file (compression is detected
   automatically). Use --raw to see the Go representation of the tree.
`,
			Action: dump,
			Flags:  append([]cli.Flag{rawFlag}, options.Common...),
		},
		{
			Name:      "json",
			Usage:     "Convert NBT file to JSON",
			UsageText: "nbt json [--typed] [--indent] <file>",
			Description: `Converts the tree to JSON. Plain JSON is intended for reading and
   loses type information, --typed output can be converted back with
   'fromjson'.
`,
			Action: toJSON,
			Flags:  append([]cli.Flag{typedFlag, indentFlag}, options.Common...),
		},
		{
			Name:      "fromjson",
			Usage:     "Convert typed JSON to NBT file",
			UsageText: "nbt fromjson [--out <file>] [--compression <type>] [--force] <file.json|->",
			Description: `Reads typed JSON (as produced by 'json --typed') and writes binary
   NBT. The root must be a compound. Output goes to standard output unless
   --out is given.
`,
			Action: fromJSON,
			Flags:  append([]cli.Flag{outFlag, options.Compression, forceFlag}, options.Common...),
		},
		{
			Name:      "diff",
			Usage:     "Compare two NBT files",
			UsageText: "nbt diff [--context <n>] <file1> <file2>",
			Description: `Prints unified diff of the trees stored in two files. Exits with
   code 1 if they differ.
`,
			Action: diff,
			Flags:  append([]cli.Flag{contextFlag}, options.Common...),
		},
		{
			Name:      "convert",
			Usage:     "Change compression of NBT file",
			UsageText: "nbt convert [--compression <type>] <in> <out>",
			Action:    convert,
			Flags:     append([]cli.Flag{options.Compression}, options.Common...),
		},
	}
}

// readTree reads the file with configured limits.
func readTree(cfg config.Config, log *zap.Logger, path string) (*nbt.Compound, error) {
	c, typ, err := nbtfile.ReadFileLimited(path, cfg.ApplicationConfiguration.Codec.Limits())
	if err != nil {
		return nil, err
	}
	log.Debug("file read", zap.String("path", path), zap.Stringer("compression", typ), zap.Int("entries", c.Len()))
	return c, nil
}

// getCompression returns compression from the flag or configuration.
func getCompression(ctx *cli.Context, cfg config.Config) (compress.Type, error) {
	if s := ctx.String("compression"); s != "" {
		return compress.FromString(s)
	}
	return cfg.ApplicationConfiguration.Codec.CompressionType()
}

func dump(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return cli.NewExitError(errNoInput, 1)
	}
	cfg, log, err := options.GetConfigAndLogger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	c, err := readTree(cfg, log, path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if ctx.Bool("raw") {
		cs := spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true, SortKeys: true}
		cs.Fdump(ctx.App.Writer, c)
		return nil
	}
	fmt.Fprintln(ctx.App.Writer, strings.ReplaceAll(c.String(), "\r\n", "\n"))
	return nil
}

func toJSON(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return cli.NewExitError(errNoInput, 1)
	}
	cfg, log, err := options.GetConfigAndLogger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	c, err := readTree(cfg, log, path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	var data []byte
	if ctx.Bool("typed") {
		data, err = nbt.ToJSONWithTypes(c)
	} else {
		data, err = nbt.ToJSON(c)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if ctx.Bool("indent") {
		buf := new(bytes.Buffer)
		if err := json.Indent(buf, data, "", "  "); err != nil {
			return cli.NewExitError(err, 1)
		}
		data = buf.Bytes()
	}
	fmt.Fprintln(ctx.App.Writer, string(data))
	return nil
}

func fromJSON(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return cli.NewExitError(errNoInput, 1)
	}
	cfg, log, err := options.GetConfigAndLogger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	typ, err := getCompression(ctx, cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	data, err := input.ReadFile(path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	t, err := nbt.FromJSONWithTypes(data)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid typed JSON: %w", err), 1)
	}
	c, ok := t.(*nbt.Compound)
	if !ok {
		return cli.NewExitError(fmt.Errorf("%w: %s", nbt.ErrNotCompound, t.Type()), 1)
	}

	out := ctx.String("out")
	if out != "" && out != "-" {
		if err := nbtfile.WriteFile(out, c, typ); err != nil {
			return cli.NewExitError(err, 1)
		}
		log.Debug("file written", zap.String("path", out), zap.Stringer("compression", typ))
		return nil
	}
	if !ctx.Bool("force") && input.IsTerminal(ctx.App.Writer) {
		return cli.NewExitError(errTerminalOut, 1)
	}
	raw, err := nbt.Encode(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	raw, err = compress.Compress(raw, typ)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if _, err := ctx.App.Writer.Write(raw); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func diff(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.NewExitError("two files expected", 1)
	}
	a, b := ctx.Args().Get(0), ctx.Args().Get(1)
	cfg, log, err := options.GetConfigAndLogger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ca, err := readTree(cfg, log, a)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	cb, err := readTree(cfg, log, b)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if nbt.Equals(ca, cb) {
		return nil
	}
	res, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.ReplaceAll(ca.String(), "\r\n", "\n") + "\n"),
		B:        difflib.SplitLines(strings.ReplaceAll(cb.String(), "\r\n", "\n") + "\n"),
		FromFile: a,
		ToFile:   b,
		Context:  ctx.Int("context"),
	})
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprint(ctx.App.Writer, res)
	return cli.NewExitError(errTreesDiffer, 1)
}

func convert(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.NewExitError("input and output files expected", 1)
	}
	in, out := ctx.Args().Get(0), ctx.Args().Get(1)
	cfg, log, err := options.GetConfigAndLogger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	typ, err := getCompression(ctx, cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	c, err := readTree(cfg, log, in)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := nbtfile.WriteFile(out, c, typ); err != nil {
		return cli.NewExitError(err, 1)
	}
	log.Info("file converted", zap.String("from", in), zap.String("to", out), zap.Stringer("compression", typ))
	return nil
}
