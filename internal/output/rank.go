package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jeduden/rumetrics/internal/metrics"
)

// NewRank returns a formatter that prints one line per row with the
// selected fields as columns.
func NewRank(format string, fields []metrics.FieldRef, lang metrics.Lang) (Formatter, error) {
	switch format {
	case "", "text":
		return &RankTextFormatter{Fields: fields, Lang: lang}, nil
	case "json":
		return &RankJSONFormatter{Fields: fields}, nil
	}
	return nil, fmt.Errorf("unknown format %q (supported: text, json)", format)
}

// RankTextFormatter prints a tab-aligned table with a header line.
// Missing values print as "-".
type RankTextFormatter struct {
	Fields []metrics.FieldRef
	Lang   metrics.Lang
}

// Format implements Formatter.
func (f *RankTextFormatter) Format(w io.Writer, rows []metrics.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, 0, len(f.Fields)+1)
	for _, ref := range f.Fields {
		if f.Lang == metrics.LangKey || f.Lang == "" {
			headers = append(headers, strings.ToUpper(ref.String()))
		} else {
			headers = append(headers, metrics.Label(ref.Key, f.Lang))
		}
	}
	headers = append(headers, "PATH")
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}

	for _, row := range rows {
		cols := make([]string, 0, len(f.Fields)+1)
		for _, ref := range f.Fields {
			cols = append(cols, metrics.FormatValue(row.Lookup(ref)))
		}
		cols = append(cols, row.Path)
		if _, err := fmt.Fprintln(tw, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// RankJSONFormatter prints an array of objects with "path" followed by
// one "analyzer.key" member per field. Missing values are null.
type RankJSONFormatter struct {
	Fields []metrics.FieldRef
}

// Format implements Formatter.
func (f *RankJSONFormatter) Format(w io.Writer, rows []metrics.Row) error {
	items := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		item, err := f.encodeRow(row)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func (f *RankJSONFormatter) encodeRow(row metrics.Row) (json.RawMessage, error) {
	var buf bytes.Buffer
	path, err := json.Marshal(row.Path)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"path":`)
	buf.Write(path)
	for _, ref := range f.Fields {
		fmt.Fprintf(&buf, ",%q:", ref.String())
		v, ok := row.Lookup(ref)
		if !ok {
			buf.WriteString("null")
			continue
		}
		data, err := json.Marshal(v.Scalar())
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", ref, err)
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
