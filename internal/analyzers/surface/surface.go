// Package surface implements RM001, sentence and word length statistics
// over mixed Cyrillic and Latin text.
package surface

import (
	"strings"
	"unicode/utf8"

	"github.com/jeduden/rumetrics/internal/metrics"
	"github.com/jeduden/rumetrics/internal/rutext"
)

func init() {
	metrics.Register(&Analyzer{})
}

// Analyzer computes average sentence and word lengths with a confidence
// hint that drops for short inputs.
type Analyzer struct{}

// ID implements metrics.Analyzer.
func (a *Analyzer) ID() string { return "RM001" }

// Name implements metrics.Analyzer.
func (a *Analyzer) Name() string { return "surface" }

// Description implements metrics.Analyzer.
func (a *Analyzer) Description() string {
	return "Sentence and word length statistics with a confidence hint."
}

// Compute implements metrics.Analyzer.
func (a *Analyzer) Compute(text string) metrics.Result {
	if strings.TrimSpace(text) == "" {
		return a.empty(text)
	}

	sentences := rutext.SplitSentences(text)
	var words []string
	for _, s := range sentences {
		words = append(words, rutext.MixedWords(s)...)
	}

	syllables, letters := 0, 0
	for _, w := range words {
		syllables += rutext.CountSyllables(w)
		letters += rutext.LetterCount(w)
	}

	confidence := 1.0
	if len(sentences) < 2 {
		confidence = 0.5
	}
	if len(words) < 5 {
		confidence = 0.3
	}

	r := metrics.NewResult(a.Name())
	r.Set("avg_sentence_length", metrics.Float(metrics.Ratio(len(words), len(sentences)), 2))
	r.Set("avg_word_syllables", metrics.Float(metrics.Ratio(syllables, len(words)), 2))
	r.Set("avg_word_letters", metrics.Float(metrics.Ratio(letters, len(words)), 2))
	r.Set("sentence_count", metrics.Int(len(sentences)))
	r.Set("word_count", metrics.Int(len(words)))
	r.Set("char_count", metrics.Int(utf8.RuneCountInString(text)))
	r.Set("confidence_hint", metrics.Float(confidence, 2))
	return r
}

// empty keeps the raw length of whitespace-only input.
func (a *Analyzer) empty(text string) metrics.Result {
	r := metrics.NewResult(a.Name())
	r.Set("avg_sentence_length", metrics.Float(0, 2))
	r.Set("avg_word_syllables", metrics.Float(0, 2))
	r.Set("avg_word_letters", metrics.Float(0, 2))
	r.Set("sentence_count", metrics.Int(0))
	r.Set("word_count", metrics.Int(0))
	r.Set("char_count", metrics.Int(utf8.RuneCountInString(text)))
	r.Set("confidence_hint", metrics.Float(0, 2))
	return r
}
