package morph

import (
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball"
)

// closed-class word lists; the first listed tag wins for homographs.
var closedClass = map[string][]Tag{}

func addClass(tag Tag, words string) {
	for _, w := range strings.Fields(words) {
		closedClass[w] = append(closedClass[w], tag)
	}
}

func init() {
	addClass(Conjunction, "и а но или либо да что чтобы если когда хотя зато однако ибо "+
		"будто словно точно пока раз потому поэтому также тоже как чем нежели причём "+
		"притом иначе ни")
	addClass(Preposition, "в во на с со к ко по о об обо от ото до из изо у за над "+
		"надо под подо при про без безо для через перед передо между около вокруг "+
		"после кроме среди сквозь вместо ради возле мимо вдоль против из-за из-под "+
		"благодаря согласно навстречу внутри вне сзади")
	addClass(Particle, "не ни же ж ли ль бы б вот вон даже только лишь уже ещё еще "+
		"разве неужели пусть пускай ведь именно почти едва вряд")
	addClass(Interjection, "ах ох эх ой ай увы ура ого эй ух фу ага алло ну батюшки "+
		"ох-ох ай-ай-ай ой-ой брр тсс цыц")
	addClass(PronounNoun, "я меня мне мной мною ты тебя тебе тобой тобою он его него "+
		"ему нему им ним нём нем она её ее неё нее ей ней ею нею оно мы нас нам нами "+
		"вы вас вам вами они их них ими ними себя себе собой собою кто кого кому кем "+
		"ком что чего чему чем чём никто ничто некто нечто кто-то что-то кто-нибудь "+
		"что-нибудь")
	addClass(Adjective, "мой моя моё мое мои твой твоя твоё твое твои наш наша наше "+
		"наши ваш ваша ваше ваши свой своя своё свое свои этот эта это эти тот та то "+
		"те такой такая такое такие какой какая какое какие который которая которое "+
		"которые весь вся всё все каждый сам сама само сами самый чей чья чьё чьи")
	addClass(Numeral, "один одна одно два две три четыре пять шесть семь восемь "+
		"девять десять одиннадцать двенадцать двадцать тридцать сорок пятьдесят сто "+
		"двести триста четыреста пятьсот")
	addClass(Adverb, "очень тут там здесь туда сюда где куда откуда когда-то всегда "+
		"никогда иногда теперь сейчас потом тогда вчера сегодня завтра опять снова "+
		"уже скоро давно долго быстро тихо громко медленно хорошо плохо много мало "+
		"чуть совсем вдруг так зачем почему как-то вместе далеко близко вверх вниз "+
		"домой назад вперёд вперед")
}

// suffixRule maps a word ending to ranked tags.
type suffixRule struct {
	suffix string
	tags   []Tag
}

// Rules are tried in order; more specific endings come first.
var suffixRules = []suffixRule{
	{"вшись", []Tag{Gerund}},
	{"ючись", []Tag{Gerund}},
	{"учись", []Tag{Gerund}},
	{"ться", []Tag{Infinitive}},
	{"тись", []Tag{Infinitive}},
	{"чься", []Tag{Infinitive}},
	{"ющего", []Tag{Participle}},
	{"ющими", []Tag{Participle}},
	{"вшего", []Tag{Participle}},
	{"вшими", []Tag{Participle}},
	{"ющий", []Tag{Participle}},
	{"ющая", []Tag{Participle}},
	{"ющее", []Tag{Participle}},
	{"ющие", []Tag{Participle}},
	{"ющих", []Tag{Participle}},
	{"ащий", []Tag{Participle}},
	{"ящий", []Tag{Participle}},
	{"вший", []Tag{Participle}},
	{"вшая", []Tag{Participle}},
	{"вшее", []Tag{Participle}},
	{"вшие", []Tag{Participle}},
	{"вших", []Tag{Participle}},
	{"емый", []Tag{Participle, Adjective}},
	{"имый", []Tag{Participle, Adjective}},
	{"ский", []Tag{Adjective}},
	{"ская", []Tag{Adjective}},
	{"ское", []Tag{Adjective}},
	{"ские", []Tag{Adjective}},
	{"ски", []Tag{Adverb}},
	{"цки", []Tag{Adverb}},
	{"ость", []Tag{Noun}},
	{"ости", []Tag{Noun}},
	{"ение", []Tag{Noun}},
	{"ание", []Tag{Noun}},
	{"ения", []Tag{Noun}},
	{"ания", []Tag{Noun}},
	{"ство", []Tag{Noun}},
	{"ется", []Tag{Verb}},
	{"ится", []Tag{Verb}},
	{"утся", []Tag{Verb}},
	{"ются", []Tag{Verb}},
	{"атся", []Tag{Verb}},
	{"ятся", []Tag{Verb}},
	{"ался", []Tag{Verb}},
	{"алась", []Tag{Verb}},
	{"ались", []Tag{Verb}},
	{"ился", []Tag{Verb}},
	{"илась", []Tag{Verb}},
	{"ились", []Tag{Verb}},
	{"ешь", []Tag{Verb}},
	{"ишь", []Tag{Verb}},
	{"ете", []Tag{Verb}},
	{"ите", []Tag{Verb}},
	{"ого", []Tag{Adjective}},
	{"его", []Tag{Adjective}},
	{"ому", []Tag{Adjective}},
	{"ему", []Tag{Adjective}},
	{"ыми", []Tag{Adjective}},
	{"ими", []Tag{Adjective}},
	{"ала", []Tag{Verb}},
	{"ало", []Tag{Verb}},
	{"али", []Tag{Verb}},
	{"ила", []Tag{Verb}},
	{"ило", []Tag{Verb}},
	{"или", []Tag{Verb}},
	{"ела", []Tag{Verb}},
	{"ели", []Tag{Verb}},
	{"ыла", []Tag{Verb}},
	{"ыли", []Tag{Verb}},
	{"ть", []Tag{Infinitive}},
	{"ти", []Tag{Infinitive, Noun}},
	{"чь", []Tag{Infinitive, Noun}},
	{"ый", []Tag{Adjective}},
	{"ий", []Tag{Adjective, Noun}},
	{"ая", []Tag{Adjective}},
	{"яя", []Tag{Adjective}},
	{"ое", []Tag{Adjective}},
	{"ее", []Tag{Adjective}},
	{"ые", []Tag{Adjective}},
	{"ие", []Tag{Adjective, Noun}},
	{"ых", []Tag{Adjective}},
	{"их", []Tag{Adjective}},
	{"ую", []Tag{Adjective, Noun}},
	{"юю", []Tag{Adjective}},
	{"ет", []Tag{Verb}},
	{"ит", []Tag{Verb}},
	{"ут", []Tag{Verb}},
	{"ют", []Tag{Verb}},
	{"ат", []Tag{Verb, Noun}},
	{"ят", []Tag{Verb, Noun}},
	{"ал", []Tag{Verb, Noun}},
	{"ил", []Tag{Verb, Noun}},
	{"ел", []Tag{Verb, Noun}},
	{"ыл", []Tag{Verb}},
	{"ся", []Tag{Verb}},
	{"сь", []Tag{Verb}},
}

// Prefixes that usually mark a perfective verb.
var perfectivePrefixes = []string{
	"пере", "раз", "рас", "под", "над", "при", "про", "вы", "по", "за", "на",
	"до", "от", "об", "вз", "вс", "из", "ис", "с", "у", "о",
}

// Secondary imperfective suffixes override a perfective prefix.
var imperfectiveMarkers = []string{"ыва", "ива", "ава"}

// Heuristic is a rule-based Parser for Russian, used only when the
// OpenCorpora dictionary is unavailable. It consults closed-class word
// lists first, then suffix rules, and defaults to a noun. Lemmas are
// Snowball stems, not normal forms, so lemma-based counts are approximate.
// Heuristic is safe for concurrent use.
type Heuristic struct{}

// NewHeuristic returns the built-in heuristic parser.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Parse implements Parser.
func (h *Heuristic) Parse(word string) ([]Candidate, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, nil
	}

	if tags, ok := closedClass[word]; ok {
		return rank(word, word, tags), nil
	}
	if !cyrillicOnly(word) {
		return nil, nil
	}

	lemma, err := snowball.Stem(word, "russian", true)
	if err != nil || lemma == "" {
		lemma = word
	}

	// Very short forms outside the closed classes are nouns ("кот", "дом").
	if utf8.RuneCountInString(word) <= 3 {
		return rank(word, lemma, []Tag{Noun}), nil
	}
	for _, r := range suffixRules {
		if strings.HasSuffix(word, r.suffix) && utf8.RuneCountInString(word) > utf8.RuneCountInString(r.suffix)+1 {
			return rank(word, lemma, r.tags), nil
		}
	}
	return rank(word, lemma, []Tag{Noun}), nil
}

func rank(word, lemma string, tags []Tag) []Candidate {
	out := make([]Candidate, len(tags))
	for i, t := range tags {
		c := Candidate{Tag: t, Lemma: lemma, Score: 1 / float64(i+1)}
		if t == Verb || t == Infinitive || t == Gerund {
			c.Aspect = guessAspect(word)
		}
		out[i] = c
	}
	return out
}

// guessAspect treats prefixed forms as perfective unless a secondary
// imperfective suffix is present.
func guessAspect(word string) Aspect {
	for _, m := range imperfectiveMarkers {
		if strings.Contains(word, m) {
			return AspectImperfective
		}
	}
	for _, p := range perfectivePrefixes {
		if !strings.HasPrefix(word, p) {
			continue
		}
		rest := utf8.RuneCountInString(word) - utf8.RuneCountInString(p)
		if rest >= 4 || (rest >= 3 && utf8.RuneCountInString(p) > 1) {
			return AspectPerfective
		}
	}
	return AspectImperfective
}

func cyrillicOnly(word string) bool {
	for _, r := range word {
		if r == '-' {
			continue
		}
		if (r < 'а' || r > 'я') && r != 'ё' {
			return false
		}
	}
	return true
}
