package mcq

import (
	"regexp"
	"strings"
	"unicode"
)

// wordShape accepts "real" words: a leading letter then at least two letters, hyphens or apostrophes.
var wordShape = regexp.MustCompile(`^[A-Za-z][A-Za-z\-']{2,}$`)

// Normalize lowercases s and drops everything that is not a letter or digit.
// It is a comparison key only, never shown to users.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		r = unicode.ToLower(r)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isRealWord(s string) bool {
	return wordShape.MatchString(s)
}
