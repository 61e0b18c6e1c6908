package summarize

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty input",
			text: "",
			want: "",
		},
		{
			name: "plain text untouched",
			text: "Apple shares rose sharply after the earnings report.",
			want: "Apple shares rose sharply after the earnings report.",
		},
		{
			name: "subscription prompt removed",
			text: "Apple shares rose 5% today. Subscribe to our newsletter for daily updates. The rally continued.",
			want: "Apple shares rose 5% today. The rally continued.",
		},
		{
			name: "copyright and rights notices removed",
			text: "Profits grew. © 2024 Reuters. All rights reserved. More text here.",
			want: "Profits grew. More text here.",
		},
		{
			name: "social prompt removed case-insensitively",
			text: "Revenue doubled last quarter. FOLLOW US ON Twitter for updates. Margins improved.",
			want: "Revenue doubled last quarter. Margins improved.",
		},
		{
			name: "visit website prompt removed",
			text: "The merger closed on Friday. Visit example.com for more details. Shares were flat.",
			want: "The merger closed on Friday. Shares were flat.",
		},
		{
			name: "whitespace runs collapsed",
			text: "one\n\n  two\tthree   four",
			want: "one two three four",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.text)
			if got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	texts := []string{
		"",
		"Plain sentence with nothing to remove.",
		"Shares jumped 8% in premarket trading. Sign up for our morning briefing. © 2025 Newswire. Analysts remain cautious.",
		"spaced    out\n\ntext   with\truns",
	}

	for _, text := range texts {
		once := Sanitize(text)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize is not idempotent for %q: first %q, second %q", text, once, twice)
		}
	}
}
