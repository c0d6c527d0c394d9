// Command examine extracts exam questions from Word documents.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tsawler/examine/equation"
	"github.com/tsawler/examine/scan"
)

var version = "dev"

// RootFlags are shared by every subcommand.
type RootFlags struct {
	Config  string `help:"Path to a YAML config file" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`
}

type CLI struct {
	RootFlags `embed:""`

	Version kong.VersionFlag `help:"Print version and exit"`

	Extract ExtractCmd `cmd:"" help:"Extract questions from a DOCX exam"`
	Pack    PackCmd    `cmd:"" help:"Extract questions and bundle them with their images into a zip archive"`
	Serve   ServeCmd   `cmd:"" help:"Run the extraction HTTP server"`
	Watch   WatchCmd   `cmd:"" help:"Watch a directory and extract every DOCX dropped into it"`
}

// app carries the shared state kong binds into each command's Run.
type app struct {
	log  *slog.Logger
	file fileConfig
}

// converter resolves the equation converter: an external command from
// the config file if one is set, the built-in MTEF converter otherwise.
func (a *app) converter() scan.Converter {
	return converterFromCommand(a.file.Converter)
}

func converterFromCommand(cmdline string) scan.Converter {
	parts := strings.Fields(cmdline)
	if len(parts) == 0 {
		return equation.MTEF{}
	}
	return equation.Command(parts[0], parts[1:]...)
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("examine"),
		kong.Description("Extract exam questions, options, answer keys, and figures from Word documents."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fc, err := loadFileConfig(cli.Config)
	kctx.FatalIfErrorf(err)

	kctx.FatalIfErrorf(kctx.Run(&app{log: log, file: fc}))
}
