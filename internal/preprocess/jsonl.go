package preprocess

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// maxLine bounds a single JSONL record.
const maxLine = 16 << 20

// ReadJSONL decodes one JSON object per line and calls fn for each.
// Blank lines are skipped. Decoding stops at the first error.
func ReadJSONL(r io.Reader, fn func(line int, record map[string]any) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	line := 0
	for sc.Scan() {
		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		var record map[string]any
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&record); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if record == nil {
			return fmt.Errorf("line %d: expected a JSON object", line)
		}
		if err := fn(line, record); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// Writer writes one JSON value per line.
type Writer struct {
	enc *json.Encoder
}

// NewWriter returns a JSONL writer that leaves non-ASCII and HTML
// characters unescaped.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Write encodes v followed by a newline.
func (w *Writer) Write(v any) error {
	if err := w.enc.Encode(v); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}
