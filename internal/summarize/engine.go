// Package summarize is the text-transformation core of stockpulse. It turns
// raw news-article text into a shortened, de-duplicated headline and an
// extractive summary that carries information not already present in the
// headline.
//
// The engine is synchronous, stateless, and side-effect free: each call is
// independent and safe for concurrent use. The only shared state is the
// lazily initialized, read-only stopword and abbreviation sets. Every public
// entry point guarantees a non-empty result for non-empty input and never
// returns an error; failures degrade summary quality, not availability.
package summarize

import (
	"context"
	"log/slog"
	"strings"
)

// NoContentMessage is the sentinel returned when there is no article text
// to summarize.
const NoContentMessage = "No article content available to summarize."

// titleOverlapLimit is the maximum acceptable word-overlap ratio between a
// summary and the article title.
const titleOverlapLimit = 0.7

// Abstractive is the optional high-quality summarization capability. When
// configured, the engine tries it first and falls back to the extractive
// path if it errors, returns nothing, or its output duplicates the title.
type Abstractive interface {
	Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// Article is the per-article input tuple handed to the engine. The engine
// has no knowledge of where it came from or where the result goes.
type Article struct {
	Title       string
	Description string
	CompanyName string
}

// Result is the engine's output for one article.
type Result struct {
	EnhancedTitle string
	OriginalTitle string
	Summary       string
}

// Engine transforms one article's text at a time. The zero value is usable
// and runs the extractive path only.
type Engine struct {
	abstractive Abstractive
}

// NewEngine creates an Engine. A nil abstractive means the capability is
// absent and the extractive path is canonical.
func NewEngine(abstractive Abstractive) *Engine {
	return &Engine{abstractive: abstractive}
}

// Process runs the full transform for one article: title enhancement plus
// summarization. If title enhancement yields an empty string the original
// title is kept.
func (e *Engine) Process(ctx context.Context, a Article) Result {
	enhanced := EnhanceTitle(a.Title, DefaultTitleLength)
	if enhanced == "" {
		enhanced = a.Title
	}
	return Result{
		EnhancedTitle: enhanced,
		OriginalTitle: a.Title,
		Summary:       e.Summarize(ctx, a.Description, a.CompanyName, enhanced),
	}
}

// Summarize produces an extractive summary of article text that avoids
// redundancy with titleText. It never returns an empty string for non-empty
// input and the result always ends in terminal punctuation. The context is
// consulted only by the optional abstractive path.
func (e *Engine) Summarize(ctx context.Context, text, companyName, titleText string) string {
	if len(text) < 20 {
		return NoContentMessage
	}

	text = Sanitize(text)
	if len(text) < 20 {
		return NoContentMessage
	}

	titleWords := wordSet(strings.ToLower(titleText))

	if e.abstractive != nil {
		if s := e.abstractiveSummary(ctx, text, titleWords); s != "" {
			return s
		}
	}

	keywords := ExtractKeywords(text, DefaultKeywordCount)
	selected := SelectImportantSentences(text, keywords, DefaultMaxSentences, titleText)
	selected = dropTitleDuplicate(selected, text, keywords, titleText)

	summary := composeSummary(selected)

	// Too short for a substantial article: widen the selection.
	if len(summary) < 100 && len(text) > 500 {
		wider := SelectImportantSentences(text, keywords, DefaultMaxSentences+2, titleText)
		summary = composeSummary(wider)
	}

	summary = completeTrailingEllipsis(summary, text)

	// Final overlap guard: if the summary still mostly restates the title,
	// rebuild it from the source with its first two sentences excluded.
	if summary != "" && len(titleWords) > 0 {
		if overlapRatio(wordSet(strings.ToLower(summary)), titleWords) > titleOverlapLimit && len(text) > 200 {
			if alt := e.alternativeSummary(text); alt != "" {
				return alt
			}
		}
	}

	if summary == "" {
		return fallbackSummary(text)
	}
	return summary
}

// abstractiveSummary invokes the configured high-quality path and validates
// its output against the title-overlap rule. It returns "" when the output
// must be discarded, which sends the pipeline down the extractive path.
func (e *Engine) abstractiveSummary(ctx context.Context, text string, titleWords map[string]struct{}) string {
	// Abstractive models choke on very long inputs.
	input := truncateBytes(text, 5000)

	out, err := e.abstractive.Summarize(ctx, input, 150, 60)
	if err != nil {
		slog.Debug("abstractive summarization unavailable, using extractive path", "error", err)
		return ""
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return ""
	}

	out = ensureTerminal(capitalizeFirst(out))
	if len(titleWords) > 0 && overlapRatio(wordSet(strings.ToLower(out)), titleWords) >= titleOverlapLimit {
		return ""
	}
	return out
}

// dropTitleDuplicate removes the first selected sentence when it is the
// title or a substring/superstring of it, recomputing from a wider
// selection when that would leave nothing.
func dropTitleDuplicate(selected []string, text string, keywords []string, titleText string) []string {
	if len(selected) == 0 || titleText == "" {
		return selected
	}
	first := strings.ToLower(selected[0])
	title := strings.ToLower(titleText)
	if first != title && !strings.Contains(title, first) && !strings.Contains(first, title) {
		return selected
	}

	if len(selected) > 1 {
		return selected[1:]
	}

	// Only one sentence was available: ask for a wider selection and take
	// the first sentence that is not title-like.
	wider := SelectImportantSentences(text, keywords, DefaultMaxSentences+1, titleText)
	for _, s := range wider {
		sl := strings.ToLower(s)
		if sl != title && !strings.Contains(sl, title) {
			return []string{s}
		}
	}
	return selected
}

// composeSummary joins selected sentences into a grammatically clean
// paragraph: single spaces, collapsed whitespace, leading capitalization,
// no doubled periods, terminal punctuation. An empty selection yields "".
func composeSummary(sentences []string) string {
	if len(sentences) == 0 {
		return ""
	}
	summary := collapseWhitespace(strings.Join(sentences, " "))
	summary = capitalizeFirst(summary)
	summary = strings.ReplaceAll(summary, "..", ".")
	return ensureTerminal(summary)
}

// completeTrailingEllipsis repairs a summary ending in an unterminated
// ellipsis: either trim back to the previous complete sentence when most of
// the summary survives, or splice the complete trailing sentence back in
// from the source text.
func completeTrailingEllipsis(summary, source string) string {
	if !strings.HasSuffix(summary, "...") {
		return summary
	}

	if lastPeriod := strings.LastIndex(summary[:len(summary)-3], "."); float64(lastPeriod) > float64(len(summary))*0.7 {
		return summary[:lastPeriod+1]
	}

	cut := strings.LastIndex(summary, ". ")
	partial := summary[cut+2 : len(summary)-3]
	if partial == "" {
		return summary
	}
	start := strings.Index(source, partial)
	if start < 0 {
		return summary
	}
	rest := source[start+len(partial):]
	end := strings.Index(rest, ".")
	if end < 0 {
		return summary
	}
	full := source[start : start+len(partial)+end+1]
	return summary[:cut+2] + full
}

// alternativeSummary rebuilds a summary over the source minus its first two
// sentences, which usually restate the headline. Returns "" unless the
// source has more than 5 sentences and the alternative is substantial.
func (e *Engine) alternativeSummary(text string) string {
	sentences := SplitSentences(text)
	if len(sentences) <= 5 {
		return ""
	}
	altText := strings.Join(sentences[2:], " ")
	altKeywords := ExtractKeywords(altText, DefaultKeywordCount)
	altSelected := SelectImportantSentences(altText, altKeywords, DefaultMaxSentences, "")
	alt := composeSummary(altSelected)
	if len(alt) > 100 {
		return alt
	}
	return ""
}

// fallbackSummary is the last-resort degradation chain: the first two or
// three naively split sentences, else the first paragraph if substantial,
// else a truncated prefix. It never returns an empty string for non-empty
// input.
func fallbackSummary(text string) string {
	if text == "" {
		return NoContentMessage
	}

	sentences := tokenizeSentences(text)
	if len(sentences) >= 3 {
		return ensureTerminal(strings.Join(sentences[:3], " "))
	}
	if len(sentences) > 0 {
		return ensureTerminal(strings.Join(sentences, " "))
	}

	paragraphs := paragraphRe.Split(text, -1)
	if len(paragraphs) > 0 && len(paragraphs[0]) > 30 {
		return ensureTerminal(strings.TrimSpace(paragraphs[0]))
	}

	return strings.TrimSpace(truncateBytes(text, 250)) + " [truncated]."
}
