package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/mcncl/gtmconv/internal/config"
	"github.com/mcncl/gtmconv/internal/errors"
	"github.com/mcncl/gtmconv/internal/formatter"
	"github.com/mcncl/gtmconv/internal/models"
	"github.com/mcncl/gtmconv/internal/parser"
	"golang.org/x/sync/errgroup"
)

// CLI defines the command-line interface
var CLI struct {
	Files          []string `arg:"" optional:"" help:"Files to convert. Outputs are concatenated in the order given." type:"path"`
	Input          string   `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output         string   `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Format         string   `help:"Output format: lines or json." short:"f"`
	Config         string   `help:"Path to config file. Defaults to .gtmconv.yml in the current directory or a parent." short:"c" type:"path"`
	IdentifierCase string   `help:"Case applied to declared identifiers: preserve, screaming_snake, snake, camel, lower_camel or kebab." name:"identifier-case"`
	NoFixup        bool     `help:"Keep lines with empty values instead of removing them." name:"no-fixup"`
	Debug          bool     `help:"Enable debug logging." short:"d"`
	Version        bool     `help:"Show version information." short:"v"`
	Interactive    bool     `help:"Run in interactive mode, converting each declaration as it is entered." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	cli := newCLIParser()
	cli.FatalIfErrorf(parseArgs(cli, os.Args[1:]))

	if CLI.Version {
		fmt.Printf("gtmconv version %s\n", Version)
		return
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Format, CLI.IdentifierCase, CLI.NoFixup, CLI.Debug)
	if err != nil {
		exitWithError(errors.NewConfigError(err.Error(), err))
	}

	if err := run(&Context{Debug: cfg.Dev.Debug, Config: cfg}); err != nil {
		exitWithError(err)
	}
}

func newCLIParser() *kong.Kong {
	return kong.Must(&CLI,
		kong.Name("gtmconv"),
		kong.Description("A tool to convert constant declarations to GTM-JSON"),
		kong.UsageOnError(),
	)
}

// parseArgs fills CLI from args. Without arguments interactive mode is
// requested; run only starts it when stdin is a terminal.
func parseArgs(cli *kong.Kong, args []string) error {
	if _, err := cli.Parse(args); err != nil {
		return err
	}
	if len(args) == 0 {
		CLI.Interactive = true
	}
	return nil
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
	fmt.Fprintf(os.Stderr, "\nFor help, run: gtmconv --help\n")
	os.Exit(1)
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := newLogger(ctx.Debug || cfg.Dev.Debug)

	p := parser.NewWithConfig(cfg).WithLogger(logger)
	f := formatter.NewFormatterWithConfig(cfg)

	if CLI.Interactive && len(inputPaths()) == 0 && stdinIsTerminal() {
		return runInteractive(p, f)
	}

	out, err := convertInput(p, logger)
	if err != nil {
		return err
	}

	text, err := f.Format(out)
	if err != nil {
		return err
	}

	return writeOutput(text)
}

// inputPaths returns -i followed by the positional files.
func inputPaths() []string {
	var paths []string
	if CLI.Input != "" {
		paths = append(paths, CLI.Input)
	}
	return append(paths, CLI.Files...)
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// convertInput converts the named files, or stdin when none are given
func convertInput(p *parser.Parser, logger *slog.Logger) (models.Output, error) {
	if paths := inputPaths(); len(paths) > 0 {
		return convertFiles(p, paths, logger)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Output{}, errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		return models.Output{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Output{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return models.Output{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return p.ParseString(string(data))
}

// convertFiles converts every file concurrently and merges the results in
// argument order.
func convertFiles(p *parser.Parser, paths []string, logger *slog.Logger) (models.Output, error) {
	outs := make([]models.Output, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			out, err := p.ParseFile(path)
			if err != nil {
				var perr *errors.ParseError
				if stderrors.As(err, &perr) {
					perr.File = path
				}
				return err
			}
			logger.Debug("converted file", "path", path, "lines", out.Len())
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Output{}, err
	}

	return formatter.Merge(outs...), nil
}

// writeOutput writes text to the output file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Converted output written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Print(text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
