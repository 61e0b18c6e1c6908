package summarize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// DefaultMaxSentences is the selection size when the caller does not ask
// for a specific one. A fallback pass in the composer may expand it to 6.
const DefaultMaxSentences = 4

// Heuristic scoring constants. The values are tuned empirically and are
// preserved literally; recomputation with identical inputs is bit-identical.
const (
	scoreHighTitleOverlap   = -5 // overlap ratio > 0.7
	scoreMediumTitleOverlap = -3 // overlap ratio > 0.5
	scoreLowTitleOverlap    = 2  // overlap ratio < 0.2, provides new info
	scoreFirstSentence      = 5
	scoreSecondSentence     = 3
	scoreFirstThird         = 2
	scoreLastThird          = 1
	scoreIdealLength        = 2  // 10-25 words
	scoreTooShort           = -2 // under 5 words
	scoreTooLong            = -1 // over 40 words
	scoreNumericContent     = 2
)

var (
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	numericRe   = regexp.MustCompile(`\d+%|[$€£¥]\d+|\d+\.\d+`)
)

// scoredSentence pairs a sentence with its position in source order and its
// additive heuristic score.
type scoredSentence struct {
	text  string
	index int
	score int
}

// SplitSentences splits article text into sentences using an ordered chain
// of strategies: a rule-based tokenizer, a per-paragraph retry when the
// tokenizer finds fewer than 3 sentences in a text longer than 200
// characters, and finally a naive period split that discards fragments
// shorter than 10 characters.
func SplitSentences(text string) []string {
	sentences := tokenizeSentences(text)

	if len(sentences) < 3 && len(text) > 200 {
		var fromParagraphs []string
		for _, para := range paragraphRe.Split(text, -1) {
			fromParagraphs = append(fromParagraphs, tokenizeSentences(para)...)
		}
		sentences = fromParagraphs
	}

	if len(sentences) == 0 && text != "" {
		for _, raw := range strings.Split(text, ".") {
			if s := strings.TrimSpace(raw); len(s) > 10 {
				sentences = append(sentences, s+".")
			}
		}
	}
	return sentences
}

// tokenizeSentences is the primary rule-based sentence tokenizer. A period,
// exclamation or question mark ends a sentence when it is followed by
// whitespace and an upper-case letter, digit, or opening quote, and (for
// periods) is not preceded by a known abbreviation or a single initial.
func tokenizeSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' && isAbbreviationAt(runes, i) {
			continue
		}

		// Absorb run-on terminators and closing quotes.
		end := i
		for end+1 < len(runes) && strings.ContainsRune(`.!?"')”’`, runes[end+1]) {
			end++
		}

		next := end + 1
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next < len(runes) {
			if next == end+1 {
				i = end
				continue // no whitespace after the terminator
			}
			nr := runes[next]
			if !unicode.IsUpper(nr) && !unicode.IsDigit(nr) && !strings.ContainsRune(`"“‘'`, nr) {
				i = end
				continue
			}
		}

		if s := strings.TrimSpace(string(runes[start : end+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = next
		i = end
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// isAbbreviationAt reports whether the period at index i terminates an
// abbreviation (Mr., Inc., U.S., ...) or a single-letter initial rather
// than a sentence.
func isAbbreviationAt(runes []rune, i int) bool {
	j := i
	for j > 0 && (unicode.IsLetter(runes[j-1]) || runes[j-1] == '.') {
		j--
	}
	if j == i {
		return false
	}
	word := strings.TrimSuffix(string(runes[j:i]), ".")
	if word == "" {
		return false
	}
	if len([]rune(word)) == 1 && unicode.IsUpper([]rune(word)[0]) {
		return true
	}
	_, ok := abbreviationSet()[strings.ToLower(word)]
	return ok
}

// SelectImportantSentences scores every sentence of text independently and
// returns up to maxSentences of them in source order. Scoring is additive
// and deterministic: title-overlap penalty/bonus, rank-weighted keyword
// presence, position, length, and numeric content. The opening sentence is
// forced into the selection under relaxed rules when it scores out, and
// every returned sentence is re-terminated with punctuation. On a text from
// which no sentences can be derived it degrades to the first complete
// sentence or a truncated prefix, never an error.
func SelectImportantSentences(text string, keywords []string, maxSentences int, titleText string) []string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return selectionFallback(text)
	}

	titleWords := wordSet(strings.ToLower(titleText))
	scored := scoreSentences(sentences, keywords, titleWords)

	// Top maxSentences by score; stable sort keeps earlier sentences ahead
	// on ties.
	byScore := make([]scoredSentence, len(scored))
	copy(byScore, scored)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].score > byScore[j].score
	})
	selected := byScore
	if len(selected) > maxSentences {
		selected = selected[:maxSentences]
	}

	selected = forceOpeningSentence(selected, scored, titleWords, maxSentences)

	// Restore narrative order.
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].index < selected[j].index
	})

	out := make([]string, len(selected))
	for i, s := range selected {
		out[i] = ensureTerminal(strings.TrimSpace(s.text))
	}
	return out
}

// scoreSentences computes the additive heuristic score of every sentence.
func scoreSentences(sentences []string, keywords []string, titleWords map[string]struct{}) []scoredSentence {
	n := len(sentences)
	scored := make([]scoredSentence, n)

	for i, sentence := range sentences {
		clean := strings.ToLower(sentence)
		score := 0

		// Overlap with the title: penalize near-duplicates, reward new info.
		if len(titleWords) > 0 {
			ratio := overlapRatio(wordSet(clean), titleWords)
			switch {
			case ratio > 0.7:
				score += scoreHighTitleOverlap
			case ratio > 0.5:
				score += scoreMediumTitleOverlap
			case ratio < 0.2:
				score += scoreLowTitleOverlap
			}
		}

		// Keyword presence, weighted by keyword rank.
		for j, keyword := range keywords {
			if strings.Contains(clean, keyword) {
				score += len(keywords) - j
			}
		}

		// Position in the article.
		switch {
		case i == 0:
			score += scoreFirstSentence
		case i == 1:
			score += scoreSecondSentence
		case i < n/3:
			score += scoreFirstThird
		case i > n*2/3:
			score += scoreLastThird
		}

		// Prefer medium-length sentences.
		switch wc := len(strings.Fields(sentence)); {
		case wc >= 10 && wc <= 25:
			score += scoreIdealLength
		case wc < 5:
			score += scoreTooShort
		case wc > 40:
			score += scoreTooLong
		}

		// Percentages, currency amounts, decimals.
		if numericRe.MatchString(sentence) {
			score += scoreNumericContent
		}

		scored[i] = scoredSentence{text: sentence, index: i, score: score}
	}
	return scored
}

// forceOpeningSentence adds the opening sentence to the selection when it
// was scored out but is at least 5 words long and overlaps the title by
// less than 0.6, evicting the lowest-scoring selected sentence if the
// selection is already at capacity.
func forceOpeningSentence(selected, scored []scoredSentence, titleWords map[string]struct{}, maxSentences int) []scoredSentence {
	if len(scored) == 0 || len(titleWords) == 0 {
		return selected
	}
	for _, s := range selected {
		if s.index == 0 {
			return selected
		}
	}
	opening := scored[0]
	if len(strings.Fields(opening.text)) < 5 {
		return selected
	}
	if overlapRatio(wordSet(strings.ToLower(opening.text)), titleWords) >= 0.6 {
		return selected
	}

	if len(selected) >= maxSentences {
		lowest := 0
		for i := 1; i < len(selected); i++ {
			if selected[i].score < selected[lowest].score {
				lowest = i
			}
		}
		selected = append(selected[:lowest], selected[lowest+1:]...)
	}
	return append(selected, opening)
}

// selectionFallback is the deterministic degradation path when sentence
// derivation produced nothing: the first complete sentence if one ends
// within 10-300 characters, otherwise a truncated prefix.
func selectionFallback(text string) []string {
	if text == "" {
		return nil
	}
	if p := strings.Index(text, "."); p > 10 && p < 300 {
		return []string{text[:p+1]}
	}
	return []string{strings.TrimSpace(truncateBytes(text, 200)) + "..."}
}
