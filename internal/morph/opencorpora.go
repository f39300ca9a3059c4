package morph

import (
	"fmt"
	"strings"
	"sync"

	gomorphy "github.com/jus1d/gomorphy"
)

// OpenCorpora is a Parser backed by the pymorphy OpenCorpora dictionary
// embedded in gomorphy. Lemmas are dictionary normal forms. It is safe
// for concurrent use.
type OpenCorpora struct {
	a *gomorphy.Analyzer
}

// NewOpenCorpora loads the embedded dictionary. The dictionary is shared
// by every parser in the process.
func NewOpenCorpora() (*OpenCorpora, error) {
	a, err := gomorphy.Default()
	if err != nil {
		return nil, fmt.Errorf("loading OpenCorpora dictionary: %w", err)
	}
	return &OpenCorpora{a: a}, nil
}

// Parse implements Parser. The dictionary exposes only its most probable
// parse, so at most one candidate is returned. Forms missing from the
// dictionary yield no candidates.
func (o *OpenCorpora) Parse(word string) ([]Candidate, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, nil
	}

	forms := []string{word}
	if strings.ContainsRune(word, 'ё') {
		forms = append(forms, strings.ReplaceAll(word, "ё", "е"))
	}
	for _, form := range forms {
		tag := o.a.Tag(form)
		if tag == "" {
			continue
		}
		lemma := form
		if all := o.a.WordForms(form); len(all) > 0 {
			lemma = all[0]
		}
		return []Candidate{CandidateFromTag(tag, lemma)}, nil
	}
	return nil, nil
}

// CandidateFromTag builds a candidate from an OpenCorpora tag string such
// as "VERB,perf,intr masc,sing,past,indc". The part of speech is kept as
// given, so tags outside the named constants (ADJS, PRTS, COMP, PRED)
// pass through unchanged.
func CandidateFromTag(tag, lemma string) Candidate {
	grammemes := strings.FieldsFunc(tag, func(r rune) bool { return r == ',' || r == ' ' })
	c := Candidate{Tag: Unknown, Lemma: lemma, Score: 1}
	if len(grammemes) == 0 {
		return c
	}
	c.Tag = Tag(grammemes[0])
	for _, g := range grammemes[1:] {
		switch g {
		case string(AspectPerfective):
			c.Aspect = AspectPerfective
		case string(AspectImperfective):
			c.Aspect = AspectImperfective
		}
	}
	return c
}

var (
	defaultOnce   sync.Once
	defaultParser Parser
	defaultErr    error
)

// Default returns the OpenCorpora parser. When the dictionary cannot be
// loaded it returns the heuristic parser together with the load error.
func Default() (Parser, error) {
	defaultOnce.Do(func() {
		oc, err := NewOpenCorpora()
		if err != nil {
			defaultParser, defaultErr = NewHeuristic(), err
			return
		}
		defaultParser = oc
	})
	return defaultParser, defaultErr
}
