// Package output renders analysis rows for the terminal and for tools.
package output

import (
	"fmt"
	"io"

	"github.com/jeduden/rumetrics/internal/metrics"
)

// Formatter defines the interface for outputting analysis rows.
type Formatter interface {
	Format(w io.Writer, rows []metrics.Row) error
}

// Formats lists the names accepted by New.
var Formats = []string{"text", "json", "yaml", "jsonl"}

// New returns the formatter for a format name. Lang and color only
// affect text output.
func New(format string, lang metrics.Lang, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return &TextFormatter{Lang: lang, Color: color}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	case "jsonl":
		return &JSONLinesFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown format %q (supported: text, json, yaml, jsonl)", format)
}
