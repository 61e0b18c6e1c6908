package summarize

import "regexp"

// boilerplatePatterns is the ordered catalogue of boilerplate removed from
// article bodies before scoring. Patterns are applied case-insensitively in
// catalogue order, so later patterns see the partially cleaned text.
var boilerplatePatterns = []*regexp.Regexp{
	// Visit-website prompts.
	regexp.MustCompile(`(?i)(For more information|To learn more|For further details|Read more|Find out more|Click here for more)(.+?)(website|site|page|URL).*?\.`),
	regexp.MustCompile(`(?i)Visit\s+.+?\s+for\s+more\s+.*?\.`),
	regexp.MustCompile(`(?i)Click\s+here\s+to\s+.*?\.`),
	regexp.MustCompile(`(?i)Learn\s+more\s+at\s+.*?\.`),

	// Generic calls to action.
	regexp.MustCompile(`(?i)Find\s+out\s+more\s+.*?\.`),
	regexp.MustCompile(`(?i)Learn\s+more\s+.*?\.`),
	regexp.MustCompile(`(?i)See\s+more\s+.*?\.`),
	regexp.MustCompile(`(?i)Read\s+the\s+full\s+.*?\.`),
	regexp.MustCompile(`(?i)Follow\s+this\s+link\s+.*?\.`),

	// Subscription prompts.
	regexp.MustCompile(`(?i)Subscribe\s+to\s+our\s+newsletter.*?\.`),
	regexp.MustCompile(`(?i)Sign\s+up\s+for\s+our\s+.*?\.`),
	regexp.MustCompile(`(?i)Get\s+updates\s+.*?\.`),

	// Copyright notices.
	regexp.MustCompile(`(?i)©\s*\d{4}.*?\.\s*`),
	regexp.MustCompile(`(?i)Copyright\s*©.*?\.\s*`),

	// Social media prompts.
	regexp.MustCompile(`(?i)Follow\s+us\s+on\s+.*?\.`),
	regexp.MustCompile(`(?i)Like\s+us\s+on\s+.*?\.`),
	regexp.MustCompile(`(?i)Share\s+this\s+.*?\.`),

	// End-of-article indicators.
	regexp.MustCompile(`(?i)The\s+content\s+is\s+provided\s+for\s+information\s+purposes\s+only.*?\.`),
	regexp.MustCompile(`(?i)All\s+rights\s+reserved.*?\.`),
	regexp.MustCompile(`(?i)This\s+article\s+was\s+originally\s+published\s+.*?\.`),
}

// Sanitize strips common boilerplate (calls-to-action, subscription prompts,
// copyright and syndication notices) from raw article text, then collapses
// whitespace runs to single spaces and trims. Sanitizing already-sanitized
// text is a no-op. Empty input yields empty output; Sanitize never fails.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range boilerplatePatterns {
		text = re.ReplaceAllString(text, "")
	}
	return collapseWhitespace(text)
}
