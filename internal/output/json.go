package output

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/jeduden/rumetrics/internal/metrics"
)

// JSONFormatter outputs rows as a JSON array.
type JSONFormatter struct{}

type jsonRow struct {
	Path    string      `json:"path"`
	Results jsonResults `json:"results"`
}

// jsonResults encodes results as an object keyed by analyzer name,
// keeping analyzer order.
type jsonResults []metrics.Result

func (r jsonResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, res := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(res.Analyzer)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := res.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func toJSONRows(rows []metrics.Row) []jsonRow {
	items := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, jsonRow{Path: row.Path, Results: row.Results})
	}
	return items
}

// Format writes rows as a pretty-printed JSON array.
// An empty slice of rows produces [].
func (f *JSONFormatter) Format(w io.Writer, rows []metrics.Row) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSONRows(rows))
}

// JSONLinesFormatter writes one compact JSON object per row.
type JSONLinesFormatter struct{}

// Format implements Formatter.
func (f *JSONLinesFormatter) Format(w io.Writer, rows []metrics.Row) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, item := range toJSONRows(rows) {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}
