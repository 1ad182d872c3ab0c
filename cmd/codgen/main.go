// Package main provides the CLI entrypoint for codgen.
//
// codgen reads a schema and generates Java classes in one binding style:
//   - gen               generate with the configured style (default plain)
//   - gen-java-jaxb     generate JAXB-annotated classes
//   - gen-java-jackson  generate Jackson-annotated classes
//   - check             report files that are missing or out of date
//   - watch             regenerate whenever the schema changes
//   - schema-doc        print the JSON Schema of the YAML/JSON schema format
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"codgen/internal/binding"
	"codgen/internal/config"
	"codgen/internal/emit"
	"codgen/internal/pipeline"
	"codgen/internal/schema"
	"codgen/internal/watch"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}

	var err error

	switch sub := args[0]; sub {
	case "gen":
		err = genCmd(ctx, sub, "", args[1:], stdout, stderr)
	case "gen-java-jaxb":
		err = genCmd(ctx, sub, binding.StyleJAXB.String(), args[1:], stdout, stderr)
	case "gen-java-jackson":
		err = genCmd(ctx, sub, binding.StyleJackson.String(), args[1:], stdout, stderr)
	case "check":
		err = checkCmd(ctx, args[1:], stdout, stderr)
	case "watch":
		err = watchCmd(ctx, args[1:], stdout, stderr)
	case "schema-doc":
		err = schemaDocCmd(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", sub)
		usage(stderr)

		return exitUsage
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, errStale):
		return exitError
	default:
		fmt.Fprintf(stderr, "codgen: %v\n", err)
		return exitError
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `codgen - schema to Java binding generator

Usage:
  codgen gen [flags]               generate with -style (default plain)
  codgen gen-java-jaxb [flags]     generate jaxb-style classes
  codgen gen-java-jackson [flags]  generate jackson-style classes
  codgen check [flags]             exit 1 when generated files are out of date
  codgen watch [flags]             regenerate on schema changes
  codgen schema-doc                print the JSON Schema of the document format

Settings are read from codgen.yaml (or -config), then CODGEN_* environment
variables, then flags. Run "codgen <command> -h" for flags.
`)
}

// commonFlags are shared by every generating subcommand.
type commonFlags struct {
	configPath string
	verbose    bool
	jakarta    bool
	overrides  config.Settings
}

func newFlagSet(name string, fixedStyle string, stderr io.Writer) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	cf := &commonFlags{}
	fs.StringVar(&cf.configPath, "config", "", "settings file (default codgen.yaml when present)")
	fs.StringVar(&cf.overrides.Schema, "schema", "", "schema file")
	fs.StringVar(&cf.overrides.Format, "format", "", "schema format: text, yaml or json (default from extension)")
	fs.StringVar(&cf.overrides.OutputDir, "out", "", "output directory")
	fs.StringVar(&cf.overrides.PackageName, "package", "", "Java package of generated classes")
	fs.BoolVar(&cf.jakarta, "jakarta", false, "use jakarta.xml.bind annotations for jaxb-style")
	fs.BoolVar(&cf.verbose, "v", false, "enable debug logging")

	if fixedStyle == "" {
		fs.StringVar(&cf.overrides.BindingStyle, "style", "", "binding style: plain, jaxb-style or jackson-style")
	}

	return fs, cf
}

// settings resolves the layered settings. fixedStyle, when set, wins over
// every other layer.
func (cf *commonFlags) settings(fixedStyle string) (config.Settings, error) {
	s, err := config.Resolve(cf.configPath)
	if err != nil {
		return config.Settings{}, err
	}

	cf.overrides.Jakarta = cf.jakarta
	s = s.Merge(cf.overrides)

	if fixedStyle != "" {
		s.BindingStyle = fixedStyle
	}

	return s, nil
}

func (cf *commonFlags) logger(stderr io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cf.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}

		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %v\n", fs.Args())
		return errUsage
	}

	return nil
}

func genCmd(ctx context.Context, name, fixedStyle string, args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet(name, fixedStyle, stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	s, err := cf.settings(fixedStyle)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(ctx, pipeline.Request{Settings: s}, pipeline.WithLogger(cf.logger(stderr)))
	if err != nil {
		return err
	}

	printResult(stdout, res)

	return nil
}

var errStale = errors.New("generated files are out of date")

func checkCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet("check", "", stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	s, err := cf.settings("")
	if err != nil {
		return err
	}

	res, err := pipeline.Run(ctx, pipeline.Request{Settings: s},
		pipeline.WithLogger(cf.logger(stderr)), pipeline.WithDryRun(true))
	if err != nil {
		return err
	}

	if !res.Changed() {
		fmt.Fprintln(stdout, "up to date")
		return nil
	}

	for _, f := range res.Files {
		if f.Status != emit.StatusUnchanged {
			fmt.Fprintf(stdout, "stale   %s (would be %s)\n", f.RelPath, f.Status)
		}
	}

	return errStale
}

func watchCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, cf := newFlagSet("watch", "", stderr)
	debounce := fs.Duration("debounce", watch.DefaultDebounce, "quiet period before regenerating")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	s, err := cf.settings("")
	if err != nil {
		return err
	}

	if s.Schema == "" {
		return pipeline.ErrNoSchema
	}

	logger := cf.logger(stderr)
	regenerate := func(ctx context.Context) error {
		res, err := pipeline.Run(ctx, pipeline.Request{Settings: s}, pipeline.WithLogger(logger))
		if err != nil {
			return err
		}

		printResult(stdout, res)

		return nil
	}

	if err := regenerate(ctx); err != nil {
		logger.Error("initial generation failed", slog.String("err", err.Error()))
	}

	w := watch.New(s.Schema, watch.WithDebounce(*debounce), watch.WithLogger(logger))

	return w.Run(ctx, regenerate)
}

func schemaDocCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("schema-doc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	doc, err := schema.DocumentJSONSchema()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, string(doc))

	return err
}

func printResult(w io.Writer, res *emit.GenerationResult) {
	for _, f := range res.Files {
		if f.Status != emit.StatusUnchanged {
			fmt.Fprintf(w, "%-9s %s\n", f.Status, f.RelPath)
		}
	}

	fmt.Fprintf(w, "%d files: %d created, %d updated, %d unchanged\n",
		len(res.Files),
		res.Count(emit.StatusCreated),
		res.Count(emit.StatusUpdated),
		res.Count(emit.StatusUnchanged))
}
