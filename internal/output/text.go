package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jeduden/rumetrics/internal/metrics"
)

// TextFormatter outputs rows as indented label/value blocks, one block
// per file. When Color is true, the path is printed in cyan and analyzer
// names in yellow.
type TextFormatter struct {
	Lang  metrics.Lang
	Color bool
}

// Format writes each row as:
//
//	path
//	  analyzer
//	    label   value
func (f *TextFormatter) Format(w io.Writer, rows []metrics.Row) error {
	for i, row := range rows {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, f.paint("36", row.Path)); err != nil {
			return err
		}
		for _, res := range row.Results {
			if _, err := fmt.Fprintf(w, "  %s\n", f.paint("33", res.Analyzer)); err != nil {
				return err
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, field := range res.Fields {
				if _, err := fmt.Fprintf(tw, "    %s\t%s\n", metrics.Label(field.Key, f.Lang), field.Value); err != nil {
					return err
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *TextFormatter) paint(code, s string) string {
	if !f.Color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}
