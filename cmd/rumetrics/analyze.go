package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/rumetrics/internal/config"
	"github.com/jeduden/rumetrics/internal/discovery"
	"github.com/jeduden/rumetrics/internal/engine"
	vlog "github.com/jeduden/rumetrics/internal/log"
	"github.com/jeduden/rumetrics/internal/metrics"
	"github.com/jeduden/rumetrics/internal/morph"
	"github.com/jeduden/rumetrics/internal/output"
)

const stdinPath = "<stdin>"

type analyzeOptions struct {
	configPath   string
	analyzersRaw string
	format       string
	langRaw      string
	noMarkdown   bool
	stdinMD      bool
	color        bool
	verbose      bool
}

// runAnalyze implements the "analyze" subcommand.
func (a *app) runAnalyze(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var opts analyzeOptions

	fs.StringVarP(&opts.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&opts.analyzersRaw, "analyzers", "a", "", "Comma-separated analyzer names or IDs (default: all enabled)")
	fs.StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, yaml, jsonl")
	fs.StringVarP(&opts.langRaw, "lang", "l", "ru", "Label language for text output: ru, en, key")
	fs.BoolVar(&opts.noMarkdown, "no-markdown", false, "Analyze Markdown files verbatim")
	fs.BoolVar(&opts.stdinMD, "stdin-markdown", false, "Strip Markdown from stdin, which is plain text by default")
	fs.BoolVar(&opts.color, "color", false, "Colorize text output")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Show config, files and analyzer timings on stderr")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: rumetrics analyze [flags] [files...]\n\n"+
			"Compute readability and complexity metrics for Russian text.\n\n"+
			"Files can be paths, directories (walked using the include patterns), or glob patterns.\n"+
			"With no file arguments, reads from stdin if piped.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	lang, err := metrics.ParseLang(opts.langRaw)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}
	formatter, err := output.New(opts.format, lang, opts.color)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}

	files := fs.Args()
	if len(files) == 0 && !a.stdinPiped() {
		fs.Usage()
		return exitUsage
	}

	cfg, logger, err := a.setup(opts.configPath, opts.verbose)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}
	if opts.noMarkdown {
		off := false
		cfg.Markdown = &off
	}

	analyzers, err := selectAnalyzers(cfg, metrics.SplitList(opts.analyzersRaw))
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}

	runner := &engine.Runner{Config: cfg, Analyzers: analyzers, Logger: logger, SourceMarkdown: opts.stdinMD}
	result, code := a.execute(runner, cfg, files)
	if result == nil {
		return code
	}

	if err := formatter.Format(a.stdout, result.Rows); err != nil {
		a.errorf("writing output: %v", err)
		return exitUsage
	}
	logger.Printf("analyzed %d files", len(result.Rows))
	return code
}

// setup loads the config and builds the verbose logger.
func (a *app) setup(configPath string, verbose bool) (*config.Config, *vlog.Logger, error) {
	logger := &vlog.Logger{Enabled: verbose, W: a.stderr}
	cfg, cfgPath, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfgPath != "" {
		logger.Printf("config: %s", cfgPath)
	}
	if _, err := morph.Default(); err != nil {
		logger.Printf("morphology: %v, using heuristic parser", err)
	}
	return cfg, logger, nil
}

// execute runs the analysis over files, or stdin when files is empty.
// A nil result means nothing could be analyzed and the returned code
// should be used as is.
func (a *app) execute(runner *engine.Runner, cfg *config.Config, files []string) (*engine.Result, int) {
	var result *engine.Result
	if len(files) == 0 {
		source, err := io.ReadAll(a.stdin)
		if err != nil {
			a.errorf("reading stdin: %v", err)
			return nil, exitUsage
		}
		result = runner.RunSource(stdinPath, source)
	} else {
		paths, err := discovery.Resolve(files, discoveryOptions(cfg))
		if err != nil {
			a.errorf("%v", err)
			return nil, exitUsage
		}
		result = runner.Run(paths)
	}

	a.printErrors(result.Errors)
	if len(result.Errors) > 0 {
		if len(result.Rows) == 0 {
			return nil, exitUsage
		}
		return result, exitPartial
	}
	return result, exitOK
}

func discoveryOptions(cfg *config.Config) discovery.Options {
	return discovery.Options{
		Patterns: cfg.Include,
		Skip: func(path string) bool {
			return config.Ignored(cfg, path)
		},
	}
}

// selectAnalyzers resolves the requested analyzers. Analyzers named
// explicitly are enabled even when the config turns them off; with no
// names every registered analyzer is a candidate and the config decides.
func selectAnalyzers(cfg *config.Config, names []string) ([]metrics.Analyzer, error) {
	selected, err := metrics.Resolve(names)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return selected, nil
	}
	for _, an := range selected {
		ac := cfg.Analyzers[an.Name()]
		ac.Enabled = true
		cfg.Analyzers[an.Name()] = ac
	}
	return selected, nil
}

type rankOptions struct {
	configPath string
	byRaw      string
	fieldsRaw  string
	orderRaw   string
	top        int
	format     string
	langRaw    string
	verbose    bool
}

// runRank implements the "rank" subcommand.
func (a *app) runRank(args []string) int {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var opts rankOptions

	fs.StringVarP(&opts.configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&opts.byRaw, "by", "readability.flesch_reading_ease", "Field to sort by (analyzer.key)")
	fs.StringVar(&opts.fieldsRaw, "fields", "", "Comma-separated extra columns (analyzer.key)")
	fs.StringVar(&opts.orderRaw, "order", "desc", "Sort order: asc or desc")
	fs.IntVar(&opts.top, "top", 0, "Limit results to top N files (0 = all)")
	fs.StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	fs.StringVarP(&opts.langRaw, "lang", "l", "key", "Column headers: key, ru, en")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Show config, files and analyzer timings on stderr")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: rumetrics rank [flags] [paths...]\n\n"+
			"Compute one metric field per file and rank the files by it.\n"+
			"With no path arguments, defaults to the current directory.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if opts.top < 0 {
		a.errorf("--top must be >= 0")
		return exitUsage
	}

	order, err := metrics.ParseOrder(opts.orderRaw)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}
	lang, err := metrics.ParseLang(opts.langRaw)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}

	by, fields, err := resolveFields(opts.byRaw, metrics.SplitList(opts.fieldsRaw))
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}
	formatter, err := output.NewRank(opts.format, fields, lang)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}

	cfg, logger, err := a.setup(opts.configPath, opts.verbose)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}
	analyzers, err := selectAnalyzers(cfg, fieldAnalyzers(fields))
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	runner := &engine.Runner{Config: cfg, Analyzers: analyzers, Logger: logger}
	result, code := a.execute(runner, cfg, paths)
	if result == nil {
		return code
	}

	rows := result.Rows
	metrics.SortRows(rows, by, order)
	rows = metrics.LimitRows(rows, opts.top)

	if err := formatter.Format(a.stdout, rows); err != nil {
		a.errorf("writing output: %v", err)
		return exitUsage
	}
	return code
}

// resolveFields parses the sort field and the extra columns. The sort
// field is always the first column. Every field must name a key the
// analyzer actually produces.
func resolveFields(byRaw string, extra []string) (metrics.FieldRef, []metrics.FieldRef, error) {
	by, err := parseKnownField(byRaw)
	if err != nil {
		return metrics.FieldRef{}, nil, err
	}

	fields := []metrics.FieldRef{by}
	for _, raw := range extra {
		ref, err := parseKnownField(raw)
		if err != nil {
			return metrics.FieldRef{}, nil, err
		}
		if ref != by {
			fields = append(fields, ref)
		}
	}
	return by, fields, nil
}

func parseKnownField(raw string) (metrics.FieldRef, error) {
	ref, err := metrics.ParseFieldRef(raw)
	if err != nil {
		return metrics.FieldRef{}, err
	}
	an, _ := metrics.Lookup(ref.Analyzer)
	keys := an.Compute("").Keys()
	for _, k := range keys {
		if k == ref.Key {
			return ref, nil
		}
	}
	return metrics.FieldRef{}, fmt.Errorf("unknown field %q (%s fields: %s)", raw, ref.Analyzer, strings.Join(keys, ", "))
}

func fieldAnalyzers(fields []metrics.FieldRef) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Analyzer)
	}
	return names
}

// runList implements the "list" subcommand.
func (a *app) runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var format string
	fs.StringVarP(&format, "format", "f", "text", "Output format: text, json")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: rumetrics list [flags]\n\n"+
			"List registered analyzers.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		a.errorf("list takes no arguments")
		return exitUsage
	}

	var err error
	switch format {
	case "text":
		err = writeListText(a.stdout, metrics.All())
	case "json":
		err = writeListJSON(a.stdout, metrics.All())
	default:
		a.errorf("unknown format %q (supported: text, json)", format)
		return exitUsage
	}
	if err != nil {
		a.errorf("writing output: %v", err)
		return exitUsage
	}
	return exitOK
}

func settingNames(an metrics.Analyzer) []string {
	c, ok := an.(metrics.Configurable)
	if !ok {
		return nil
	}
	var names []string
	for k := range c.DefaultSettings() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func writeListText(w io.Writer, all []metrics.Analyzer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tNAME\tSETTINGS\tDESCRIPTION"); err != nil {
		return err
	}
	for _, an := range all {
		settings := strings.Join(settingNames(an), ",")
		if settings == "" {
			settings = "-"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", an.ID(), an.Name(), settings, an.Description()); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeListJSON(w io.Writer, all []metrics.Analyzer) error {
	items := make([]map[string]any, 0, len(all))
	for _, an := range all {
		item := map[string]any{
			"id":          an.ID(),
			"name":        an.Name(),
			"description": an.Description(),
			"fields":      an.Compute("").Keys(),
		}
		if c, ok := an.(metrics.Configurable); ok {
			item["settings"] = c.DefaultSettings()
		}
		items = append(items, item)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
