package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jeduden/rumetrics/internal/config"
	"github.com/jeduden/rumetrics/internal/metrics"

	// Import all analyzer packages so their init() functions register them.
	_ "github.com/jeduden/rumetrics/internal/analyzers/lexical"
	_ "github.com/jeduden/rumetrics/internal/analyzers/morphology"
	_ "github.com/jeduden/rumetrics/internal/analyzers/readability"
	_ "github.com/jeduden/rumetrics/internal/analyzers/surface"
)

func main() {
	a := &app{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		stdinPiped: isStdinPipe,
	}
	os.Exit(a.run(os.Args[1:]))
}

// Exit codes.
const (
	exitOK      = 0
	exitPartial = 1 // some inputs failed, the rest were reported
	exitUsage   = 2
)

const usageText = `Usage: rumetrics <command> [flags] [files...]

Commands:
  analyze   Compute metrics for files or stdin
  rank      Rank files by one metric field
  list      List registered analyzers
  filter    Clean and score JSONL records for training data
  help      Show analyzer documentation
  init      Generate a default .rumetrics.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'rumetrics <command> --help' for more information on a command.
`

// app carries the process streams so commands can be run in tests.
type app struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	stdinPiped func() bool
}

func (a *app) run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usageText)
		return exitOK
	}

	switch args[0] {
	case "--help", "-h":
		fmt.Fprint(a.stderr, usageText)
		return exitOK
	case "analyze":
		return a.runAnalyze(args[1:])
	case "rank":
		return a.runRank(args[1:])
	case "list":
		return a.runList(args[1:])
	case "filter":
		return a.runFilter(args[1:])
	case "help":
		return a.runHelp(args[1:])
	case "init":
		return a.runInit(args[1:])
	case "version":
		a.printVersion()
		return exitOK
	default:
		fmt.Fprintf(a.stderr, "rumetrics: unknown command %q\n\n%s", args[0], usageText)
		return exitUsage
	}
}

func (a *app) printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Fprintf(a.stdout, "rumetrics %s\n", version)
}

func (a *app) errorf(format string, args ...any) {
	fmt.Fprintf(a.stderr, "rumetrics: "+format+"\n", args...)
}

// printErrors writes runtime errors to stderr.
func (a *app) printErrors(errs []error) {
	for _, e := range errs {
		a.errorf("%v", e)
	}
}

// runInit implements the "init" subcommand: generate .rumetrics.yml.
func (a *app) runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var path string
	fs.StringVarP(&path, "output", "o", config.FileName, "Path of the config file to write")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: rumetrics init [flags]\n\n"+
			"Generate a default %s config file with every analyzer setting.\n\n"+
			"Flags:\n", config.FileName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		a.errorf("init takes no arguments")
		return exitUsage
	}

	if _, err := os.Stat(path); err == nil {
		a.errorf("%s already exists", path)
		return exitUsage
	}

	data, err := yaml.Marshal(config.DumpDefaults())
	if err != nil {
		a.errorf("marshalling config: %v", err)
		return exitUsage
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		a.errorf("writing %s: %v", path, err)
		return exitUsage
	}

	a.errorf("created %s", path)
	return exitOK
}

const helpUsageText = `Usage: rumetrics help <topic>

Topics:
  analyzer [id|name]   Show analyzer documentation
`

// runHelp implements the "help" subcommand.
func (a *app) runHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, helpUsageText)
		return exitOK
	}

	switch args[0] {
	case "analyzer", "analyzers":
		if len(args) == 1 {
			return a.listDocs()
		}
		return a.showDoc(args[1])
	default:
		a.errorf("help: unknown topic %q", args[0])
		return exitUsage
	}
}

func (a *app) listDocs() int {
	docs, err := metrics.ListDocs()
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}
	for _, d := range docs {
		fmt.Fprintf(a.stdout, "%-6s %-12s %s\n", d.ID, d.Name, d.Description)
	}
	return exitOK
}

func (a *app) showDoc(query string) int {
	content, err := metrics.LookupDoc(query)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}
	fmt.Fprint(a.stdout, content)
	return exitOK
}

// isStdinPipe returns true if stdin is a pipe (not a terminal).
func isStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory. It returns the
// merged config, the path that was loaded (empty if defaults only), and
// any error.
func loadConfig(configPath string) (*config.Config, string, error) {
	defaults := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, "", err
		}
		return config.Merge(defaults, loaded), configPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return config.Merge(defaults, nil), "", nil
	}

	discovered, err := config.Discover(cwd)
	if err != nil || discovered == "" {
		return config.Merge(defaults, nil), "", nil
	}

	loaded, err := config.Load(discovered)
	if err != nil {
		return nil, "", err
	}
	return config.Merge(defaults, loaded), discovered, nil
}
