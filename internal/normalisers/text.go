// Package normalisers folds free text into the form used for matching.
package normalisers

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics ("Übergabe" -> "ubergabe").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		// Invalid UTF-8 keeps its lowercase form
		folded = s
	}
	return strings.ToLower(folded)
}

// Tokenize folds q and splits it on whitespace.
// Empty or whitespace-only input yields no tokens.
func Tokenize(q string) []string {
	fields := strings.Fields(Fold(q))
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// IsWordStart reports whether position i of s begins a word,
// i.e. it is the first byte or follows a rune that is not a letter or digit.
func IsWordStart(s string, i int) bool {
	if i <= 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(prev) && !unicode.IsDigit(prev)
}

// IndexAtWordBoundary returns the first index > 0 where token starts a word in s, or -1.
func IndexAtWordBoundary(s, token string) int {
	if token == "" {
		return -1
	}
	offset := 1
	for offset < len(s) {
		i := strings.Index(s[offset:], token)
		if i < 0 {
			return -1
		}
		pos := offset + i
		if IsWordStart(s, pos) {
			return pos
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		offset = pos + size
	}
	return -1
}
