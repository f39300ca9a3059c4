// Package engine runs the selected analyzers over a set of files.
package engine

import (
	"fmt"
	"os"

	"github.com/jeduden/rumetrics/internal/config"
	vlog "github.com/jeduden/rumetrics/internal/log"
	"github.com/jeduden/rumetrics/internal/metrics"
)

// Runner drives the analysis pipeline: for each file it reads the
// content, builds a Document (the plain text is derived once), determines
// the effective analyzer configuration, runs enabled analyzers, and
// collects one row per file.
type Runner struct {
	Config    *config.Config
	Analyzers []metrics.Analyzer
	Logger    *vlog.Logger
	// SourceMarkdown makes RunSource treat its content as Markdown.
	SourceMarkdown bool

	configured configured
}

// Result holds the output of a run.
type Result struct {
	Rows   []metrics.Row
	Errors []error
}

// Run analyzes the files at the given paths. Rows follow the order of
// paths; ignored and unreadable files produce no row.
func (r *Runner) Run(paths []string) *Result {
	res := &Result{}

	for _, path := range paths {
		if config.Ignored(r.Config, path) {
			r.Logger.Printf("ignored: %s", path)
			continue
		}

		source, err := os.ReadFile(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("reading %q: %w", path, err))
			continue
		}

		r.analyze(res, path, source, false)
	}

	return res
}

// RunSource analyzes in-memory content, such as stdin, under the given
// display path. Overrides match against path as usual. The content is
// plain text unless SourceMarkdown is set.
func (r *Runner) RunSource(path string, source []byte) *Result {
	res := &Result{}
	r.analyze(res, path, source, r.SourceMarkdown)
	return res
}

func (r *Runner) analyze(res *Result, path string, source []byte, assumeMarkdown bool) {
	r.Logger.Printf("file: %s", path)

	doc := metrics.NewDocument(path, source)
	doc.Markdown = r.Config.MarkdownEnabled()
	doc.AssumeMarkdown = assumeMarkdown
	doc.StripFrontMatter = r.Config.FrontMatterEnabled()

	effective := config.Effective(r.Config, path)

	var active []metrics.Analyzer
	for _, a := range r.Analyzers {
		cfg, ok := effective[a.Name()]
		if !ok || !cfg.Enabled {
			continue
		}

		ca, err := r.configured.get(a, cfg)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", path, err))
			continue
		}
		active = append(active, ca)
	}

	if r.Logger != nil && r.Logger.Enabled {
		for i, a := range active {
			active[i] = &timed{Analyzer: a, logger: r.Logger, path: path}
		}
	}
	res.Rows = append(res.Rows, metrics.Analyze(doc, active))
}

// timed logs how long each Compute call takes.
type timed struct {
	metrics.Analyzer
	logger *vlog.Logger
	path   string
}

func (t *timed) Compute(text string) metrics.Result {
	defer t.logger.Timed("analyzer %s on %s", t.Name(), t.path)()
	return t.Analyzer.Compute(text)
}
