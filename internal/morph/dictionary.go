package morph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Dictionary is a Parser backed by a word-form table. Forms missing from
// the table are delegated to Fallback; a nil Fallback yields no candidates.
type Dictionary struct {
	entries  map[string][]Candidate
	Fallback Parser
}

// LoadDictionary reads a tab-separated table with the columns
// form, lemma, tag and an optional aspect. Rows for the same form are
// ranked in file order. Blank lines and lines starting with '#' are
// skipped.
func LoadDictionary(r io.Reader, fallback Parser) (*Dictionary, error) {
	d := &Dictionary{entries: make(map[string][]Candidate), Fallback: fallback}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 3 || len(cols) > 4 {
			return nil, fmt.Errorf("line %d: want 3 or 4 tab-separated columns, got %d", lineNo, len(cols))
		}
		form := strings.ToLower(strings.TrimSpace(cols[0]))
		lemma := strings.ToLower(strings.TrimSpace(cols[1]))
		if form == "" || lemma == "" {
			return nil, fmt.Errorf("line %d: empty form or lemma", lineNo)
		}
		tag, err := ParseTag(cols[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		var aspect Aspect
		if len(cols) == 4 {
			if aspect, err = ParseAspect(cols[3]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}

		rank := len(d.entries[form])
		d.entries[form] = append(d.entries[form], Candidate{
			Tag:    tag,
			Lemma:  lemma,
			Aspect: aspect,
			Score:  1 / float64(rank+1),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return d, nil
}

// OpenDictionary loads a dictionary file from disk.
func OpenDictionary(path string, fallback Parser) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()

	d, err := LoadDictionary(f, fallback)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Len returns the number of distinct forms in the table.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Parse implements Parser.
func (d *Dictionary) Parse(word string) ([]Candidate, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if cands, ok := d.entries[word]; ok {
		return append([]Candidate(nil), cands...), nil
	}
	if d.Fallback == nil {
		return nil, nil
	}
	return d.Fallback.Parse(word)
}
