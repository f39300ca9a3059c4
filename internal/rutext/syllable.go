package rutext

import (
	"unicode"
	"unicode/utf8"
)

// CountSyllables estimates the syllable count of a Russian word by
// counting vowels. The result is never below 1, so words without a
// recognized vowel count as one syllable.
func CountSyllables(word string) int {
	count := 0
	for _, r := range word {
		if IsVowel(unicode.ToLower(r)) {
			count++
		}
	}
	return max(1, count)
}

// IsVowel reports whether r is a lower-case Russian vowel.
func IsVowel(r rune) bool {
	switch r {
	case 'а', 'е', 'ё', 'и', 'о', 'у', 'ы', 'э', 'ю', 'я':
		return true
	}
	return false
}

// LetterCount returns the number of runes in word.
func LetterCount(word string) int {
	return utf8.RuneCountInString(word)
}
