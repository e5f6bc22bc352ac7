package mcq

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	parenthetical = regexp.MustCompile(`\s*\([^)]+\)`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
)

// wordMatcher finds case-insensitive occurrences of a term that sit on word
// boundaries, where word characters are Unicode letters, digits and '_'.
type wordMatcher struct {
	re *regexp.Regexp
}

func wholeWord(target string) wordMatcher {
	return wordMatcher{re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(target))}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// boundary reports whether offset i in s separates a word rune from a non-word rune.
func boundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

// findAll returns the non-overlapping whole-word matches, left to right.
func (m wordMatcher) findAll(s string, limit int) [][]int {
	var out [][]int
	for start := 0; start <= len(s) && (limit < 0 || len(out) < limit); {
		loc := m.re.FindStringIndex(s[start:])
		if loc == nil {
			break
		}
		a, b := start+loc[0], start+loc[1]
		if a < b && boundary(s, a) && boundary(s, b) {
			out = append(out, []int{a, b})
			start = b
			continue
		}
		if a >= len(s) {
			break
		}
		_, size := utf8.DecodeRuneInString(s[a:])
		start = a + size
	}
	return out
}

func (m wordMatcher) find(s string) []int {
	if locs := m.findAll(s, 1); len(locs) == 1 {
		return locs[0]
	}
	return nil
}

func (m wordMatcher) MatchString(s string) bool {
	return m.find(s) != nil
}

func (m wordMatcher) removeAll(s string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range m.findAll(s, -1) {
		sb.WriteString(s[last:loc[0]])
		last = loc[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// MakeCloze blanks the first whole-word, case-insensitive occurrence of target in
// sentence. Parenthetical asides are dropped and the target is removed from the text
// after the blank so the stem does not give the answer away.
func MakeCloze(sentence, target string) string {
	if target == "" {
		return sentence
	}
	m := wholeWord(target)

	cloze := sentence
	if loc := m.find(sentence); loc != nil {
		cloze = sentence[:loc[0]] + Blank + sentence[loc[1]:]
	}
	cloze = strings.TrimSpace(cloze)
	cloze = strings.TrimSpace(parenthetical.ReplaceAllString(cloze, ""))

	parts := strings.Split(cloze, Blank)
	if len(parts) != 2 {
		return cloze
	}
	after := m.removeAll(parts[1])
	after = strings.TrimRightFunc(multiSpace.ReplaceAllString(after, " "), isSpace)
	return strings.TrimSpace(parts[0] + Blank + after)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
