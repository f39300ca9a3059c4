// Package morph defines the morphological analysis contract used by the
// morphology analyzer. The default parser reads the OpenCorpora dictionary;
// a TSV word-form table can be layered on top of it, and a rule-based
// heuristic stands in when the dictionary cannot be loaded.
package morph

import (
	"fmt"
	"strings"
)

// Tag is a part-of-speech label using OpenCorpora names.
type Tag string

// Part-of-speech tags.
const (
	Noun          Tag = "NOUN"
	Verb          Tag = "VERB"
	Infinitive    Tag = "INFN"
	Gerund        Tag = "GRND"
	Adjective     Tag = "ADJF"
	Participle    Tag = "PRTF"
	Numeral       Tag = "NUMR"
	Adverb        Tag = "ADVB"
	PronounNoun   Tag = "NPRO"
	Preposition   Tag = "PREP"
	Conjunction   Tag = "CONJ"
	Particle      Tag = "PRCL"
	Interjection  Tag = "INTJ"
	PronounAdj    Tag = "ADJPRO"
	PronounPartic Tag = "PRTFPRO"
	Unknown       Tag = "UNKNOWN"
)

var knownTags = []Tag{
	Noun, Verb, Infinitive, Gerund, Adjective, Participle, Numeral, Adverb,
	PronounNoun, Preposition, Conjunction, Particle, Interjection,
	PronounAdj, PronounPartic, Unknown,
}

// ParseTag parses a tag name case-insensitively.
func ParseTag(raw string) (Tag, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	for _, t := range knownTags {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tag %q", raw)
}

// Aspect is the grammatical aspect of a verb-like form.
type Aspect string

// Aspects.
const (
	AspectNone         Aspect = ""
	AspectPerfective   Aspect = "perf"
	AspectImperfective Aspect = "impf"
)

// ParseAspect parses "perf", "impf" or an empty string.
func ParseAspect(raw string) (Aspect, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "-":
		return AspectNone, nil
	case string(AspectPerfective):
		return AspectPerfective, nil
	case string(AspectImperfective):
		return AspectImperfective, nil
	default:
		return "", fmt.Errorf("unknown aspect %q (supported: perf, impf)", raw)
	}
}

// Candidate is one possible parse of a word form.
type Candidate struct {
	Tag    Tag
	Lemma  string
	Aspect Aspect
	Score  float64
}

// VerbLike reports whether the candidate is a finite verb or infinitive.
func (c Candidate) VerbLike() bool {
	return c.Tag == Verb || c.Tag == Infinitive
}

// Parser returns the candidate parses of a lower-case word form, most
// probable first. An unparseable word yields no candidates and no error.
type Parser interface {
	Parse(word string) ([]Candidate, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(word string) ([]Candidate, error)

// Parse implements Parser.
func (f ParserFunc) Parse(word string) ([]Candidate, error) {
	return f(word)
}

type guarded struct {
	p Parser
}

// Guard wraps p so that a panic inside Parse is returned as an error.
func Guard(p Parser) Parser {
	if _, ok := p.(*guarded); ok {
		return p
	}
	return &guarded{p: p}
}

func (g *guarded) Parse(word string) (cands []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			cands = nil
			err = fmt.Errorf("parsing %q: panic: %v", word, r)
		}
	}()
	return g.p.Parse(word)
}
