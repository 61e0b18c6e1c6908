package summarize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTitleLength is the target length for enhanced headlines.
const DefaultTitleLength = 75

// tickerRe matches parenthesized exchange:ticker annotations such as
// "(NASDAQ:NVDA)" or "(NYSE:AAPL)", including any leading whitespace.
var tickerRe = regexp.MustCompile(`\s*\([A-Z]+:[A-Z]+\)`)

// wirePrefixes are wire-style labels stripped from the front of headlines.
// Only the first matching prefix is removed.
var wirePrefixes = []string{
	"BREAKING: ", "Breaking: ", "UPDATE: ", "Update: ", "EXCLUSIVE: ", "Exclusive: ",
	"REPORT: ", "Report: ", "WATCH: ", "Watch: ", "JUST IN: ", "Just In: ",
	"VIDEO: ", "Video: ", "ANALYSIS: ", "Analysis: ", "FEATURED: ", "Featured: ",
	"ALERT: ", "Alert: ", "TRENDING: ", "Trending: ",
}

// fillerPhrases are low-information attribution phrases removed anywhere in
// a headline.
var fillerPhrases = []string{
	" according to sources", " according to reports", " according to insiders",
	" sources say", " reports indicate", " experts say", " analysts believe",
	", experts say", ", analysts say", ", sources say", ", reports indicate",
	" - report", " - sources", " - analysts", " - insiders", " report claims",
	" analysts report", " sources claim", ", report says", ", report claims",
}

// knownCompanies are company names checked for redundant mentions at both
// the start and the end of a headline.
var knownCompanies = func() []companyPattern {
	names := []string{
		"Amazon", "Amazon.com", "Apple", "Microsoft", "Google", "Meta",
		"Facebook", "Tesla", "Nvidia", "Broadcom", "Alphabet",
	}
	patterns := make([]companyPattern, 0, len(names))
	for _, name := range names {
		quoted := regexp.QuoteMeta(strings.ToLower(name))
		patterns = append(patterns, companyPattern{
			lower:   strings.ToLower(name),
			nearEnd: regexp.MustCompile(quoted + `(\s+\w+){1,3}$`),
			atEnd:   regexp.MustCompile(`(,?\s+|-\s+)(` + quoted + `(\s+\w+){0,3})$`),
		})
	}
	return patterns
}()

// companyPattern holds the precompiled matchers for one company name.
type companyPattern struct {
	lower   string
	nearEnd *regexp.Regexp
	atEnd   *regexp.Regexp
}

var (
	trailingEllipsisRe = regexp.MustCompile(`\.{3,}$`)
	spacedEllipsisRe   = regexp.MustCompile(`\s*\.\.\.$`)
	trailingJunkRe     = regexp.MustCompile(`[,\s-]+\.$`)
)

// recombineVerbs are reporting verbs that justify keeping "Company verb:"
// in front of the informative half of a colon-split headline.
var recombineVerbs = map[string]struct{}{
	"says": {}, "states": {}, "reports": {}, "announces": {}, "confirms": {}, "reveals": {},
}

// EnhanceTitle produces a shortened, de-duplicated headline from a raw
// article title. It strips ticker annotations, wire prefixes, trailing
// ellipses, and filler phrases, removes a redundant trailing company
// mention, and if the result still exceeds maxLength attempts a cascade of
// non-truncating shortenings before falling back to a word-boundary cut.
// maxLength <= 0 selects DefaultTitleLength. The empty string is returned
// only for empty input; callers treating an empty result as "keep the
// original" remain correct.
func EnhanceTitle(title string, maxLength int) string {
	if title == "" {
		return title
	}
	if maxLength <= 0 {
		maxLength = DefaultTitleLength
	}
	original := title

	// Ticker annotations anywhere in the headline.
	title = tickerRe.ReplaceAllString(title, "")

	// One wire-style prefix, first match only.
	for _, prefix := range wirePrefixes {
		if strings.HasPrefix(title, prefix) {
			title = title[len(prefix):]
			break
		}
	}

	// Trailing ellipses and extra periods.
	title = trailingEllipsisRe.ReplaceAllString(strings.TrimSpace(title), "")
	title = spacedEllipsisRe.ReplaceAllString(title, "")

	title = strings.Join(strings.Fields(title), " ")

	// Filler phrases, lower-case variant anywhere in the headline.
	for _, phrase := range fillerPhrases {
		if strings.Contains(strings.ToLower(title), phrase) {
			title = strings.ReplaceAll(title, phrase, "")
		}
	}

	title = capitalizeFirst(title)
	title = stripRedundantCompany(title)

	if utf8.RuneCountInString(title) <= maxLength {
		return title
	}
	return shortenTitle(title, original, maxLength)
}

// stripRedundantCompany removes a company name that opens the headline and
// reappears within the last one to three words, re-terminating the headline
// with punctuation and cleaning trailing separators when it does.
func stripRedundantCompany(title string) string {
	for _, company := range knownCompanies {
		titleLower := strings.ToLower(title)
		if !strings.HasPrefix(titleLower, company.lower) {
			continue
		}
		if !strings.HasSuffix(titleLower, company.lower) && !company.nearEnd.MatchString(titleLower) {
			continue
		}
		loc := company.atEnd.FindStringIndex(titleLower)
		if loc == nil {
			continue
		}
		title = ensureTerminal(title[:loc[0]])
		title = trailingJunkRe.ReplaceAllString(title, ".")
	}
	return title
}

// shortenTitle applies the ordered shortening cascade to a headline that
// exceeds maxLength: colon split, dash split, right-most acceptable break
// point, last whitespace, unchanged original within tolerance, and finally
// a hard word-boundary truncation with an ellipsis marker.
func shortenTitle(title, original string, maxLength int) string {
	// Colon-separated headlines: keep the substantial side.
	if strings.Contains(title, ": ") {
		parts := strings.SplitN(title, ": ", 2)
		head, tail := parts[0], parts[1]
		switch {
		case utf8.RuneCountInString(tail) > 25 && strings.Count(tail, " ") >= 3:
			if isUpperStart(tail) && hasClauseEnd(tail) {
				return tail
			}
			headWords := strings.Fields(head)
			if len(headWords) > 0 {
				verb := strings.ToLower(headWords[len(headWords)-1])
				if _, ok := recombineVerbs[verb]; ok && len(headWords) > 1 {
					combined := strings.Join(headWords[:len(headWords)-1], " ") + " " + verb + ": " + tail
					if utf8.RuneCountInString(combined) <= maxLength {
						return combined
					}
				}
			}
			return tail
		case utf8.RuneCountInString(head) > 25 && strings.Count(head, " ") >= 3:
			return head
		}
	}

	// Dash-separated headlines.
	for _, sep := range []string{" - ", " – ", " — "} {
		if !strings.Contains(title, sep) {
			continue
		}
		parts := strings.SplitN(title, sep, 2)
		if utf8.RuneCountInString(parts[0]) >= 30 && strings.Count(parts[0], " ") >= 3 {
			return parts[0]
		}
		if utf8.RuneCountInString(parts[1]) >= 30 && strings.Count(parts[1], " ") >= 3 {
			return parts[1]
		}
	}

	// Right-most acceptable break point retaining at least 65% of maxLength.
	// Break points are byte offsets for slicing; comparisons against
	// maxLength count characters.
	shortened := truncateRunes(title, maxLength-1)
	var breakPoints []int
	for _, re := range breakPointRes {
		for _, loc := range re.FindAllStringIndex(shortened, -1) {
			breakPoints = append(breakPoints, loc[1])
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(breakPoints)))
	for _, point := range breakPoints {
		if float64(utf8.RuneCountInString(shortened[:point])) <= float64(maxLength)*0.65 {
			continue
		}
		candidate := ensureTerminal(strings.TrimSpace(title[:point]))
		if float64(utf8.RuneCountInString(candidate)) >= float64(maxLength)*0.7 &&
			(len(candidate) > len(original) || candidate != original[:len(candidate)]) {
			return candidate
		}
	}

	// Last whitespace retaining at least 80% of maxLength.
	if lastSpace := strings.LastIndex(shortened, " "); lastSpace > 0 &&
		float64(utf8.RuneCountInString(shortened[:lastSpace])) > float64(maxLength)*0.8 {
		return ensureTerminal(title[:lastSpace])
	}

	// Keep the original when it is within 25% of the target.
	if float64(utf8.RuneCountInString(original)) <= float64(maxLength)*1.25 {
		return original
	}

	// Hard truncation at a word boundary with an ellipsis marker.
	cut := truncateRunes(title, maxLength-3)
	if lastSpace := strings.LastIndex(cut, " "); lastSpace > 0 {
		return cut[:lastSpace] + "..."
	}
	return cut + "..."
}

// breakPointRes locate natural break points inside an over-long headline.
// Each match's end offset is a candidate cut position.
var breakPointRes = []*regexp.Regexp{
	regexp.MustCompile(`[.!?] `),
	regexp.MustCompile(`, `),
	regexp.MustCompile(`; `),
	regexp.MustCompile(` but `),
	regexp.MustCompile(` and `),
	regexp.MustCompile(` as `),
	regexp.MustCompile(` due to `),
}

func isUpperStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

func hasClauseEnd(s string) bool {
	for _, suffix := range []string{".", "!", "?", `"`} {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
