// Package preprocess cleans raw text records and derives the quality
// features used to filter training examples.
package preprocess

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jeduden/rumetrics/internal/rutext"
	"golang.org/x/text/unicode/norm"
)

// Word-count limits used when no thresholds are configured.
const (
	DefaultMinWords = 5
	DefaultMaxWords = 512
)

// Clean normalizes text to NFC, collapses whitespace runs to one space,
// replaces characters other than letters, digits, '_', whitespace and
// -.,!?;:"' with a space, and trims the result. Spaces introduced by the
// replacement are kept.
func Clean(text string) string {
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	inSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		if keep(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

func keep(r rune) bool {
	if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	return strings.ContainsRune(`-.,!?;:"'`, r)
}

// Features are the quality signals of a cleaned text.
type Features struct {
	CharCount     int     `json:"char_count"`
	WordCount     int     `json:"word_count"`
	SentenceCount int     `json:"sentence_count"`
	AvgWordLen    float64 `json:"avg_word_len"`
	HasQuotes     bool    `json:"has_quotes"`
	IsTooShort    bool    `json:"is_too_short"`
	IsTooLong     bool    `json:"is_too_long"`
}

// ComputeFeatures derives Features from text. Words are whitespace
// separated fields.
func ComputeFeatures(text string) Features {
	words := strings.Fields(text)
	letters := 0
	for _, w := range words {
		letters += utf8.RuneCountInString(w)
	}

	f := Features{
		CharCount:     utf8.RuneCountInString(text),
		WordCount:     len(words),
		SentenceCount: rutext.CountSentences(text),
		HasQuotes:     strings.ContainsAny(text, `"'`),
		IsTooShort:    len(words) < 3,
		IsTooLong:     len(words) > 512,
	}
	if len(words) > 0 {
		f.AvgWordLen = float64(letters) / float64(len(words))
	}
	return f
}

// Passes reports whether the word count lies in [minWords, maxWords] and
// the text is not too short.
func Passes(f Features, minWords, maxWords int) bool {
	return minWords <= f.WordCount && f.WordCount <= maxWords && !f.IsTooShort
}

// ConfidenceHint scores how much to trust metrics of a text of this size.
func ConfidenceHint(f Features) float64 {
	switch {
	case f.IsTooShort:
		return 0.3
	case f.IsTooLong:
		return 0.6
	}
	return 1.0
}

// Options control Example.
type Options struct {
	Field    string
	MinWords int
	MaxWords int
}

// DefaultOptions reads the "text" field with the default word limits.
func DefaultOptions() Options {
	return Options{Field: "text", MinWords: DefaultMinWords, MaxWords: DefaultMaxWords}
}

// Example returns a copy of record extended with the cleaned text, the
// feat_* features, a confidence hint and the training validity flag. A
// missing or non-string text field is treated as empty.
func Example(record map[string]any, opts Options) map[string]any {
	raw, _ := record[opts.Field].(string)
	cleaned := Clean(raw)
	f := ComputeFeatures(cleaned)

	out := make(map[string]any, len(record)+11)
	for k, v := range record {
		out[k] = v
	}
	out["text_clean"] = cleaned
	out["feat_char_count"] = f.CharCount
	out["feat_word_count"] = f.WordCount
	out["feat_sentence_count"] = f.SentenceCount
	out["feat_avg_word_len"] = f.AvgWordLen
	out["feat_has_quotes"] = boolInt(f.HasQuotes)
	out["feat_is_too_short"] = boolInt(f.IsTooShort)
	out["feat_is_too_long"] = boolInt(f.IsTooLong)
	out["confidence_hint"] = ConfidenceHint(f)
	out["is_valid_for_training"] = Passes(f, opts.MinWords, opts.MaxWords)
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
