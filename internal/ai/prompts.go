package ai

import (
	"fmt"
	"strings"
)

const summarizeSystemPromptTmpl = `You are a financial news editor. Summarize the following stock market article in %d to %d words. Focus on: the companies involved, the concrete numbers (revenue, prices, percentages), and why the news moves the stock. Write in plain declarative sentences for a retail investor audience. Do NOT repeat the article headline and do NOT include any prefix like "Summary:" — start directly with the first sentence.`

// SummarizePrompt builds the system and user prompts for the article
// summarization operation. maxLength and minLength bound the summary in
// words.
func SummarizePrompt(text string, maxLength, minLength int) (systemPrompt string, userPrompt string) {
	systemPrompt = fmt.Sprintf(summarizeSystemPromptTmpl, minLength, maxLength)

	var b strings.Builder
	b.WriteString("Article Text:\n")
	b.WriteString(text)

	userPrompt = b.String()
	return systemPrompt, userPrompt
}
