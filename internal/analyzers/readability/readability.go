// Package readability implements RM004, Russian adaptations of the
// Flesch, SMOG and plain-language readability indices plus a school
// grade estimate.
package readability

import (
	"math"
	"strings"

	"github.com/jeduden/rumetrics/internal/metrics"
	"github.com/jeduden/rumetrics/internal/rutext"
)

func init() {
	metrics.Register(&Analyzer{})
}

// EmptyLevel is the flesch_level of text without sentences or words.
const EmptyLevel = "пусто"

// Analyzer combines four readability indices with the counts they are
// derived from.
type Analyzer struct{}

// ID implements metrics.Analyzer.
func (a *Analyzer) ID() string { return "RM004" }

// Name implements metrics.Analyzer.
func (a *Analyzer) Name() string { return "readability" }

// Description implements metrics.Analyzer.
func (a *Analyzer) Description() string {
	return "Flesch, SMOG, plain-language level and school grade for Russian text."
}

// counts holds the intermediate quantities of one text.
type counts struct {
	sentences     int
	words         int
	syllables     int
	poly3         int
	poly4         int
	longSentences int
	longWords     int
}

func measure(text string) counts {
	sentences := rutext.SplitSentences(text)
	words := rutext.CyrillicWords(text)

	c := counts{sentences: len(sentences), words: len(words)}
	for _, w := range words {
		s := rutext.CountSyllables(w)
		c.syllables += s
		if s >= 3 {
			c.poly3++
		}
		if s >= 4 {
			c.poly4++
		}
		if rutext.LetterCount(w) >= 7 {
			c.longWords++
		}
	}
	for _, s := range sentences {
		if len(rutext.CyrillicWords(s)) > 15 {
			c.longSentences++
		}
	}
	return c
}

// Compute implements metrics.Analyzer.
func (a *Analyzer) Compute(text string) metrics.Result {
	if strings.TrimSpace(text) == "" {
		return a.empty()
	}
	c := measure(text)
	if c.sentences == 0 || c.words == 0 {
		return a.empty()
	}

	asl := float64(c.words) / float64(c.sentences)
	asw := float64(c.syllables) / float64(c.words)

	flesch := metrics.Clamp(206.835-1.3*asw-60.1*(float64(c.sentences)/float64(c.words)), 0, 100)

	var smog float64
	if c.sentences >= 10 {
		smog = 1.043*math.Sqrt(30*float64(c.poly3)/float64(c.sentences)) + 3.1291
	} else {
		smog = 1.0 + 0.1*float64(c.poly3)
	}

	raw := 0.5*float64(c.longSentences) + 1.0*float64(c.poly4) + 0.2*float64(c.longWords)
	simple := metrics.Clamp(1+raw/5, 1, 5)

	school := metrics.Clamp(0.39*asl+11.8*asw-15.59, 1, 12)

	confidence := 0.6
	if c.words >= 20 {
		confidence = 1.0
	}

	r := metrics.NewResult(a.Name())
	r.Set("flesch_reading_ease", metrics.Float(flesch, 1))
	r.Set("smog_grade", metrics.Float(smog, 1))
	r.Set("simple_level", metrics.Float(simple, 1))
	r.Set("school_grade", metrics.Float(school, 1))
	r.Set("avg_sentence_words", metrics.Float(asl, 2))
	r.Set("avg_word_syllables", metrics.Float(asw, 2))
	r.Set("polysyllabic_words_ge3", metrics.Int(c.poly3))
	r.Set("polysyllabic_words_ge4", metrics.Int(c.poly4))
	r.Set("long_sentences_gt15", metrics.Int(c.longSentences))
	r.Set("long_words_ge7", metrics.Int(c.longWords))
	r.Set("flesch_level", metrics.Text(FleschLevel(flesch)))
	r.Set("is_child_friendly", metrics.Bool(flesch >= 70 && simple <= 2.5))
	r.Set("confidence_hint", metrics.Float(confidence, 1))
	return r
}

func (a *Analyzer) empty() metrics.Result {
	r := metrics.NewResult(a.Name())
	for _, key := range []string{"flesch_reading_ease", "smog_grade", "simple_level", "school_grade"} {
		r.Set(key, metrics.Float(0, 1))
	}
	r.Set("avg_sentence_words", metrics.Float(0, 2))
	r.Set("avg_word_syllables", metrics.Float(0, 2))
	for _, key := range []string{"polysyllabic_words_ge3", "polysyllabic_words_ge4", "long_sentences_gt15", "long_words_ge7"} {
		r.Set(key, metrics.Int(0))
	}
	r.Set("flesch_level", metrics.Text(EmptyLevel))
	r.Set("is_child_friendly", metrics.Bool(false))
	r.Set("confidence_hint", metrics.Float(0, 1))
	return r
}

// bands are checked top-down; the first threshold not above the score wins.
var bands = []struct {
	min   float64
	label string
}{
	{90, "очень легко (1–3 кл.)"},
	{80, "легко (4–5 кл.)"},
	{70, "довольно легко (6–7 кл.)"},
	{60, "средне (8–9 кл.)"},
	{50, "довольно сложно (10–11 кл.)"},
	{30, "сложно (студенты)"},
}

// FleschLevel maps a Flesch reading-ease score to a school band label.
func FleschLevel(score float64) string {
	for _, b := range bands {
		if score >= b.min {
			return b.label
		}
	}
	return "очень сложно (академики)"
}
