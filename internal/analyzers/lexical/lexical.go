// Package lexical implements RM002, word-form counts and the syllable
// distribution of Cyrillic words.
package lexical

import (
	"strings"

	"github.com/jeduden/rumetrics/internal/metrics"
	"github.com/jeduden/rumetrics/internal/rutext"
)

func init() {
	metrics.Register(&Analyzer{})
}

// Analyzer counts word forms, unique words and words per syllable count.
type Analyzer struct{}

// ID implements metrics.Analyzer.
func (a *Analyzer) ID() string { return "RM002" }

// Name implements metrics.Analyzer.
func (a *Analyzer) Name() string { return "lexical" }

// Description implements metrics.Analyzer.
func (a *Analyzer) Description() string {
	return "Word forms, unique words and the syllable distribution."
}

// Compute implements metrics.Analyzer.
func (a *Analyzer) Compute(text string) metrics.Result {
	if strings.TrimSpace(text) == "" {
		return build(a.Name(), 0, 0, 0, map[int]int{})
	}

	words := rutext.CyrillicWords(text)
	unique := make(map[string]struct{}, len(words))
	dist := make(map[int]int)
	for _, w := range words {
		unique[w] = struct{}{}
		dist[rutext.CountSyllables(w)]++
	}
	return build(a.Name(), len(words), len(unique), rutext.CountSentences(text), dist)
}

func build(name string, total, unique, sentences int, dist map[int]int) metrics.Result {
	poly := 0
	for syllables, n := range dist {
		if syllables >= 4 {
			poly += n
		}
	}

	r := metrics.NewResult(name)
	r.Set("word_forms_total", metrics.Int(total))
	r.Set("unique_words", metrics.Int(unique))
	r.Set("sentence_count", metrics.Int(sentences))
	r.Set("monosyllabic_words", metrics.Int(dist[1]))
	r.Set("disyllabic_words", metrics.Int(dist[2]))
	r.Set("trisyllabic_words", metrics.Int(dist[3]))
	r.Set("polysyllabic_words", metrics.Int(poly))
	r.Set("word_syllable_distribution", metrics.Distribution(dist))
	r.Set("lexical_diversity", metrics.Float(metrics.Ratio(unique, total), 3))
	return r
}
