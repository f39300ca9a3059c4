// Package rutext splits Russian text into sentences and words and counts
// syllables. All functions are pure and safe for concurrent use.
package rutext

import (
	"strings"
	"unicode"
)

// SplitSentences splits text on runs of sentence terminators (".", "!",
// "?"), trims surrounding whitespace and drops empty pieces.
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(text, isTerminator)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// CountSentences returns len(SplitSentences(text)).
func CountSentences(text string) int {
	return len(SplitSentences(text))
}

// CyrillicWords returns lower-cased Cyrillic words from text. Hyphenated
// compounds such as "из-за" are kept as one word.
func CyrillicWords(text string) []string {
	return scan(lower(text), isCyrillicLower, true)
}

// MixedWords returns Cyrillic and Latin words from text, preserving case.
// Hyphenated compounds are kept as one word.
func MixedWords(text string) []string {
	return scan(text, isMixedLetter, true)
}

// CyrillicTokens returns lower-cased Cyrillic words without joining
// hyphenated parts: "из-за" yields "из" and "за".
func CyrillicTokens(text string) []string {
	return scan(lower(text), isCyrillicLower, false)
}

// dottedCapitalI lower-cases to "i" plus a combining dot above under full
// Unicode case mapping, while strings.ToLower yields a bare "i". The bare
// letter would glue itself to a following Cyrillic run and hide that word.
var dottedCapitalI = strings.NewReplacer("İ", "i\u0307")

// lower applies full Unicode lower-casing.
func lower(text string) string {
	return strings.ToLower(dottedCapitalI.Replace(text))
}

// scan extracts runs of letters accepted by allowed that sit on word
// boundaries. A word character (letter, number or underscore) directly
// before or after a run rejects it. With hyphens enabled, runs joined by
// single hyphens form one word; when the whole chain is glued to a word
// character on the right, the chain is cut back to the last hyphen that
// still leaves a boundary.
func scan(text string, allowed func(rune) bool, hyphens bool) []string {
	runes := []rune(text)
	n := len(runes)
	var words []string

	i := 0
	for i < n {
		if !allowed(runes[i]) {
			i++
			continue
		}
		if i > 0 && isWordChar(runes[i-1]) {
			for i < n && allowed(runes[i]) {
				i++
			}
			continue
		}

		start := i
		j := i
		for j < n && allowed(runes[j]) {
			j++
		}
		ends := []int{j}
		for hyphens && j+1 < n && runes[j] == '-' && allowed(runes[j+1]) {
			j++
			for j < n && allowed(runes[j]) {
				j++
			}
			ends = append(ends, j)
		}

		end := -1
		for k := len(ends) - 1; k >= 0; k-- {
			if ends[k] >= n || !isWordChar(runes[ends[k]]) {
				end = ends[k]
				break
			}
		}
		if end < 0 {
			i = ends[0]
			continue
		}

		words = append(words, string(runes[start:end]))
		i = end
	}
	return words
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isCyrillicLower(r rune) bool {
	return (r >= 'а' && r <= 'я') || r == 'ё'
}

func isMixedLetter(r rune) bool {
	switch {
	case r >= 'а' && r <= 'я', r >= 'А' && r <= 'Я', r == 'ё', r == 'Ё':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	return false
}
