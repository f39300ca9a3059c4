package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/rumetrics/internal/engine"
	"github.com/jeduden/rumetrics/internal/metrics"
	"github.com/jeduden/rumetrics/internal/preprocess"
)

type filterOptions struct {
	configPath   string
	input        string
	field        string
	minWords     int
	maxWords     int
	validOnly    bool
	analyzersRaw string
	verbose      bool
}

// runFilter implements the "filter" subcommand: JSONL in, JSONL out.
func (a *app) runFilter(args []string) int {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var opts filterOptions

	fs.StringVarP(&opts.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&opts.input, "input", "i", "", "Read records from a file instead of stdin")
	fs.StringVar(&opts.field, "field", "", "Record field holding the text (default from config, \"text\")")
	fs.IntVar(&opts.minWords, "min-words", 0, "Minimum word count for training examples")
	fs.IntVar(&opts.maxWords, "max-words", 0, "Maximum word count for training examples")
	fs.BoolVar(&opts.validOnly, "valid-only", false, "Drop records that fail the quality filter")
	fs.StringVarP(&opts.analyzersRaw, "analyzers", "a", "", "Also attach metrics from these analyzers to each record")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Show record counts on stderr")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: rumetrics filter [flags]\n\n"+
			"Read JSON Lines records, clean the text field and add quality features.\n"+
			"Each output record gets text_clean, feat_* fields, confidence_hint and\n"+
			"is_valid_for_training.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		a.errorf("filter takes no arguments (use --input)")
		return exitUsage
	}

	cfg, logger, err := a.setup(opts.configPath, opts.verbose)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}

	popts := cfg.FilterOptions()
	if fs.Changed("field") {
		popts.Field = opts.field
	}
	if fs.Changed("min-words") {
		popts.MinWords = opts.minWords
	}
	if fs.Changed("max-words") {
		popts.MaxWords = opts.maxWords
	}
	if popts.Field == "" || popts.MinWords < 0 || popts.MinWords > popts.MaxWords {
		a.errorf("invalid filter options: field %q, min-words %d, max-words %d", popts.Field, popts.MinWords, popts.MaxWords)
		return exitUsage
	}

	var runner *engine.Runner
	if names := metrics.SplitList(opts.analyzersRaw); len(names) > 0 {
		analyzers, err := selectAnalyzers(cfg, names)
		if err != nil {
			a.errorf("%v", err)
			return exitUsage
		}
		// Records hold plain text.
		off := false
		cfg.Markdown = &off
		cfg.FrontMatter = &off
		runner = &engine.Runner{Config: cfg, Analyzers: analyzers}
	}

	in := a.stdin
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			a.errorf("%v", err)
			return exitUsage
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	total, kept, err := filterRecords(in, a.stdout, popts, opts.validOnly, runner)
	if err != nil {
		a.errorf("%v", err)
		return exitUsage
	}
	logger.Printf("records: %d, written: %d, dropped: %d", total, kept, total-kept)
	return exitOK
}

// filterRecords streams records from r to w. When runner is set, the
// metrics of the cleaned text are attached under "metrics".
func filterRecords(r io.Reader, w io.Writer, opts preprocess.Options, validOnly bool, runner *engine.Runner) (total, kept int, err error) {
	out := preprocess.NewWriter(w)
	err = preprocess.ReadJSONL(r, func(line int, record map[string]any) error {
		total++
		ex := preprocess.Example(record, opts)
		if validOnly && ex["is_valid_for_training"] != true {
			return nil
		}

		if runner != nil {
			res := runner.RunSource(fmt.Sprintf("%s:%d", stdinPath, line), []byte(ex["text_clean"].(string)))
			if len(res.Errors) > 0 {
				return fmt.Errorf("line %d: %w", line, res.Errors[0])
			}
			byAnalyzer := make(map[string]metrics.Result)
			for _, result := range res.Rows[0].Results {
				byAnalyzer[result.Analyzer] = result
			}
			ex["metrics"] = byAnalyzer
		}

		kept++
		return out.Write(ex)
	})
	return total, kept, err
}
