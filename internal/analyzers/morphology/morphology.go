// Package morphology implements RM003, part-of-speech structure of
// Russian text using a pluggable morphological parser.
package morphology

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/jeduden/rumetrics/internal/cache"
	"github.com/jeduden/rumetrics/internal/metrics"
	"github.com/jeduden/rumetrics/internal/morph"
	"github.com/jeduden/rumetrics/internal/rutext"
)

func init() {
	metrics.Register(&Analyzer{
		CacheSize:   DefaultCacheSize,
		CachePolicy: cache.PolicyLRU,
	})
}

// DefaultCacheSize bounds the word cache when no setting is given.
const DefaultCacheSize = 100000

// Entry is the cached parse of one word form. OK is false when the
// parser returned no candidates or failed.
type Entry struct {
	Top morph.Candidate
	OK  bool
}

// Analyzer counts parts of speech, verb aspect, diminutives and dialogue
// markers. It is safe for concurrent use; the word cache is shared by all
// calls on the same instance.
type Analyzer struct {
	CacheSize   int
	CachePolicy cache.Policy
	// Dictionary is an optional TSV word-form table consulted before the
	// OpenCorpora dictionary.
	Dictionary string

	mu     sync.Mutex
	parser morph.Parser
	cache  cache.Cache[Entry]
}

// New returns an analyzer using the given parser and cache. A nil cache
// disables caching.
func New(p morph.Parser, c cache.Cache[Entry]) *Analyzer {
	if c == nil {
		c = cache.Disabled[Entry]{}
	}
	return &Analyzer{
		CacheSize:   c.Cap(),
		CachePolicy: cache.PolicyLRU,
		parser:      morph.Guard(p),
		cache:       c,
	}
}

// ID implements metrics.Analyzer.
func (a *Analyzer) ID() string { return "RM003" }

// Name implements metrics.Analyzer.
func (a *Analyzer) Name() string { return "morphology" }

// Description implements metrics.Analyzer.
func (a *Analyzer) Description() string {
	return "Part-of-speech counts, verb aspect, diminutives and dialogue markers."
}

var diminutiveSuffixes = []string{"очк", "еньк", "оньк", "ушк", "ышк", "ичк"}

var (
	quotedSpan = regexp.MustCompile(`«[^»]*»`)
	dashLine   = regexp.MustCompile(`(?m)^[\s\p{Z}\x0b\x85]*[—–]`)
)

var countKeys = []string{
	"nouns", "verbs", "adjectives", "pronouns", "adverbs",
	"prepositions", "conjunctions", "particles", "interjections",
}

// Compute implements metrics.Analyzer.
func (a *Analyzer) Compute(text string) metrics.Result {
	words := rutext.CyrillicTokens(text)
	if len(words) == 0 {
		return a.empty()
	}

	tags := make(map[morph.Tag]int)
	lemmas := make(map[string]struct{})
	verbs, perfective, diminutives := 0, 0, 0
	for _, w := range words {
		e := a.lookup(w)
		tag := morph.Unknown
		norm := w
		if e.OK {
			if e.Top.Tag != "" {
				tag = e.Top.Tag
			}
			norm = e.Top.Lemma
			lemmas[e.Top.Lemma] = struct{}{}
			if e.Top.VerbLike() {
				verbs++
				if e.Top.Aspect == morph.AspectPerfective {
					perfective++
				}
			}
		}
		tags[tag]++
		if isDiminutive(norm) {
			diminutives++
		}
	}

	total := len(words)
	dialogue := len(quotedSpan.FindAllStringIndex(text, -1)) + len(dashLine.FindAllStringIndex(text, -1))

	r := metrics.NewResult(a.Name())
	r.Set("nouns", metrics.Int(tags[morph.Noun]))
	r.Set("verbs", metrics.Int(tags[morph.Verb]))
	r.Set("adjectives", metrics.Int(tags[morph.Adjective]))
	r.Set("pronouns", metrics.Int(tags[morph.PronounNoun]+tags[morph.PronounAdj]+tags[morph.PronounPartic]))
	r.Set("adverbs", metrics.Int(tags[morph.Adverb]))
	r.Set("prepositions", metrics.Int(tags[morph.Preposition]))
	r.Set("conjunctions", metrics.Int(tags[morph.Conjunction]))
	r.Set("particles", metrics.Int(tags[morph.Particle]))
	r.Set("interjections", metrics.Int(tags[morph.Interjection]))
	r.Set("noun_ratio", metrics.Float(metrics.Ratio(tags[morph.Noun], total), 3))
	r.Set("verb_ratio", metrics.Float(metrics.Ratio(tags[morph.Verb], total), 3))
	r.Set("adj_ratio", metrics.Float(metrics.Ratio(tags[morph.Adjective], total), 3))
	r.Set("verb_perfective_ratio", metrics.Float(metrics.Ratio(perfective, verbs), 3))
	r.Set("diminutive_noun_count", metrics.Int(diminutives))
	r.Set("dialogue_markers", metrics.Int(dialogue))
	r.Set("total_words", metrics.Int(total))
	r.Set("unique_lemmas", metrics.Int(len(lemmas)))
	r.Set("noun_like", metrics.Int(tags[morph.Noun]+tags[morph.PronounNoun]))
	r.Set("verb_like", metrics.Int(tags[morph.Verb]+tags[morph.Infinitive]+tags[morph.Gerund]))
	r.Set("adj_like", metrics.Int(tags[morph.Adjective]+tags[morph.Participle]+tags[morph.Numeral]))
	return r
}

func (a *Analyzer) empty() metrics.Result {
	r := metrics.NewResult(a.Name())
	for _, key := range countKeys {
		r.Set(key, metrics.Int(0))
	}
	for _, key := range []string{"noun_ratio", "verb_ratio", "adj_ratio", "verb_perfective_ratio"} {
		r.Set(key, metrics.Float(0, 3))
	}
	for _, key := range []string{"diminutive_noun_count", "dialogue_markers", "total_words", "unique_lemmas", "noun_like", "verb_like", "adj_like"} {
		r.Set(key, metrics.Int(0))
	}
	return r
}

// lookup returns the top parse of word, consulting the cache first.
// Parser errors degrade to an entry without candidates.
func (a *Analyzer) lookup(word string) Entry {
	p, c := a.collaborators()
	if e, ok := c.Get(word); ok {
		return e
	}

	var e Entry
	cands, err := p.Parse(word)
	if err == nil && len(cands) > 0 {
		e = Entry{Top: cands[0], OK: true}
	}
	c.Add(word, e)
	return e
}

// collaborators lazily builds the default parser and cache.
func (a *Analyzer) collaborators() (morph.Parser, cache.Cache[Entry]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.parser == nil {
		p, _ := morph.Default()
		a.parser = morph.Guard(p)
	}
	if a.cache == nil {
		a.cache = cache.New[Entry](a.CachePolicy, a.CacheSize)
	}
	return a.parser, a.cache
}

// CacheLen returns the number of cached word forms.
func (a *Analyzer) CacheLen() int {
	_, c := a.collaborators()
	return c.Len()
}

func isDiminutive(lemma string) bool {
	for _, s := range diminutiveSuffixes {
		if strings.HasSuffix(lemma, s) {
			return true
		}
	}
	return false
}

// ApplySettings implements metrics.Configurable. Changing any setting
// drops the current cache.
func (a *Analyzer) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "cache-size":
			n, ok := toInt(v)
			if !ok {
				return fmt.Errorf("morphology: cache-size must be an integer, got %T", v)
			}
			a.CacheSize = n
		case "cache-policy":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("morphology: cache-policy must be a string, got %T", v)
			}
			p, err := cache.ParsePolicy(s)
			if err != nil {
				return fmt.Errorf("morphology: %w", err)
			}
			a.CachePolicy = p
		case "dictionary":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("morphology: dictionary must be a string, got %T", v)
			}
			a.Dictionary = s
		default:
			return fmt.Errorf("morphology: unknown setting %q", k)
		}
	}

	var parser morph.Parser
	if a.Dictionary != "" {
		fallback, _ := morph.Default()
		d, err := morph.OpenDictionary(a.Dictionary, fallback)
		if err != nil {
			return fmt.Errorf("morphology: %w", err)
		}
		parser = morph.Guard(d)
	}

	a.mu.Lock()
	a.parser = parser
	a.cache = nil
	a.mu.Unlock()
	return nil
}

// DefaultSettings implements metrics.Configurable.
func (a *Analyzer) DefaultSettings() map[string]any {
	return map[string]any{
		"cache-size":   DefaultCacheSize,
		"cache-policy": string(cache.PolicyLRU),
		"dictionary":   "",
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

var _ metrics.Configurable = (*Analyzer)(nil)
