package metrics

import (
	"fmt"
	"strings"
)

// Lang selects the display language for metric labels.
type Lang string

const (
	// LangKey renders the raw machine-readable key.
	LangKey Lang = "key"
	// LangEN renders English labels.
	LangEN Lang = "en"
	// LangRU renders Russian labels.
	LangRU Lang = "ru"
)

// ParseLang parses a user-provided label language.
func ParseLang(raw string) (Lang, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(LangKey):
		return LangKey, nil
	case string(LangEN):
		return LangEN, nil
	case string(LangRU):
		return LangRU, nil
	default:
		return "", fmt.Errorf("unknown label language %q (supported: key, en, ru)", raw)
	}
}

type label struct {
	en string
	ru string
}

// Labels are presentation only; result keys never change with language.
var labels = map[string]label{
	"avg_sentence_length":        {"Average sentence length (words)", "Средняя длина предложения"},
	"avg_word_syllables":         {"Average word length (syllables)", "Средняя длина слова (в слогах)"},
	"avg_word_letters":           {"Average word length (letters)", "Средняя длина слова (в буквах)"},
	"sentence_count":             {"Sentences", "Предложений"},
	"word_count":                 {"Words", "Слов"},
	"char_count":                 {"Characters", "Символов"},
	"confidence_hint":            {"Confidence hint", "Уверенность"},
	"word_forms_total":           {"Word forms (with repeats)", "Словоформы (с повторами)"},
	"unique_words":               {"Unique words", "Уникальные слова"},
	"monosyllabic_words":         {"One-syllable words", "Односложных слов"},
	"disyllabic_words":           {"Two-syllable words", "Двусложных слов"},
	"trisyllabic_words":          {"Three-syllable words", "Трёхсложных слов"},
	"polysyllabic_words":         {"Words with 4+ syllables", "Слов из 4 и более слогов"},
	"word_syllable_distribution": {"Syllable distribution", "Распределение слов по слогам"},
	"lexical_diversity":          {"Lexical diversity", "Лексическое разнообразие"},
	"nouns":                      {"Nouns", "Существительных"},
	"verbs":                      {"Verbs", "Глаголов"},
	"adjectives":                 {"Adjectives", "Прилагательных"},
	"pronouns":                   {"Pronouns", "Местоимений"},
	"adverbs":                    {"Adverbs", "Наречий"},
	"prepositions":               {"Prepositions", "Предлогов"},
	"conjunctions":               {"Conjunctions", "Союзов"},
	"particles":                  {"Particles", "Частиц"},
	"interjections":              {"Interjections", "Междометий"},
	"noun_like":                  {"Noun-like words", "Существительные и мест.-сущ."},
	"verb_like":                  {"Verb-like words", "Глаголы, инфинитивы, деепричастия"},
	"adj_like":                   {"Adjective-like words", "Прилагательные, причастия, числительные"},
	"noun_ratio":                 {"Noun share", "Доля существительных"},
	"verb_ratio":                 {"Verb share", "Доля глаголов"},
	"adj_ratio":                  {"Adjective share", "Доля прилагательных"},
	"verb_perfective_ratio":      {"Perfective verb share", "Доля глаголов совершенного вида"},
	"diminutive_noun_count":      {"Diminutive nouns", "Уменьшительно-ласкательных"},
	"dialogue_markers":           {"Dialogue markers", "Маркеров диалога"},
	"total_words":                {"Total words", "Всего слов"},
	"unique_lemmas":              {"Unique lemmas", "Уникальных лемм"},
	"flesch_reading_ease":        {"Flesch reading ease", "Индекс Флеша"},
	"smog_grade":                 {"SMOG grade", "Индекс SMOG"},
	"simple_level":               {"Plain-language level (1-5)", "«Просто о сложном» (1–5)"},
	"school_grade":               {"School grade (1-12)", "Школьный класс (1–12)"},
	"avg_sentence_words":         {"Words per sentence", "Слов в предложении"},
	"polysyllabic_words_ge3":     {"Words with 3+ syllables", "Слов из 3 и более слогов"},
	"polysyllabic_words_ge4":     {"Words with 4+ syllables", "Слов из 4 и более слогов"},
	"long_sentences_gt15":        {"Sentences over 15 words", "Предложений длиннее 15 слов"},
	"long_words_ge7":             {"Words of 7+ letters", "Слов из 7 и более букв"},
	"flesch_level":               {"Flesch band", "Уровень по Флешу"},
	"is_child_friendly":          {"Child friendly", "Подходит детям"},
}

// Label returns the display label for a metric key. Unknown keys and
// LangKey return the key itself.
func Label(key string, lang Lang) string {
	l, ok := labels[key]
	if !ok {
		return key
	}
	switch lang {
	case LangEN:
		return l.en
	case LangRU:
		return l.ru
	}
	return key
}
