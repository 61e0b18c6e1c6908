package summarize

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultKeywordCount is the keyword list size when the caller does not ask
// for a specific one.
const DefaultKeywordCount = 8

// fallbackKeywords is returned when nothing extractable survives filtering,
// so the pipeline never aborts on extraction failure.
var fallbackKeywords = []string{"news", "market", "company", "stock", "business"}

// punctuationRe matches everything that is neither word content nor
// whitespace. Underscores are kept to match the word tokenizer.
var punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// ExtractKeywords derives the n most salient terms from article text by
// frequency analysis. The text is lower-cased, stripped of punctuation, and
// tokenized; stopwords and tokens of two characters or fewer are discarded.
// Results are ordered by descending frequency with ties broken by first
// occurrence. n <= 0 selects DefaultKeywordCount. If no candidate tokens
// survive filtering of non-empty text, a fixed fallback list of generic
// finance terms is returned instead of an error.
func ExtractKeywords(text string, n int) []string {
	if n <= 0 {
		n = DefaultKeywordCount
	}

	cleaned := punctuationRe.ReplaceAllString(strings.ToLower(text), "")
	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		if strings.TrimSpace(text) != "" {
			return fallbackKeywords
		}
		return nil
	}

	type candidate struct {
		word  string
		count int
		first int
	}
	counts := make(map[string]*candidate)
	var order []*candidate

	stop := stopwordSet()
	for i, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, ok := stop[tok]; ok {
			continue
		}
		if c, ok := counts[tok]; ok {
			c.count++
			continue
		}
		c := &candidate{word: tok, count: 1, first: i}
		counts[tok] = c
		order = append(order, c)
	}

	if len(order) == 0 {
		return fallbackKeywords
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if len(order) > n {
		order = order[:n]
	}
	keywords := make([]string, len(order))
	for i, c := range order {
		keywords[i] = c.word
	}
	return keywords
}
