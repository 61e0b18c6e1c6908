package summarize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// collapseWhitespace reduces every whitespace run to a single space and
// trims leading and trailing whitespace.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// wordSet returns the set of unique word tokens in s. Tokenization matches
// the scoring rules: maximal runs of letters, digits, and underscores.
func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(s, -1) {
		set[w] = struct{}{}
	}
	return set
}

// overlapRatio returns the fraction of title words also present in words.
// A nil or empty title set yields 0.
func overlapRatio(words, titleWords map[string]struct{}) float64 {
	if len(titleWords) == 0 {
		return 0
	}
	shared := 0
	for w := range words {
		if _, ok := titleWords[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(titleWords))
}

// capitalizeFirst upper-cases the first rune of s if it is lower-case.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ensureTerminal appends a period unless s already ends in terminal
// punctuation. Empty strings are returned unchanged.
func ensureTerminal(s string) string {
	if s == "" || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

// truncateRunes cuts s to at most n runes. Headline lengths are measured
// in characters, not bytes, so non-ASCII titles are not cut early.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// truncateBytes cuts s to at most n bytes without splitting a UTF-8 rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
