package summarize

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want []string
	}{
		{
			name: "ordered by descending frequency",
			text: "market rally market stocks rally market",
			n:    8,
			want: []string{"market", "rally", "stocks"},
		},
		{
			name: "ties broken by first occurrence",
			text: "alpha beta alpha beta gamma",
			n:    8,
			want: []string{"alpha", "beta", "gamma"},
		},
		{
			name: "stopwords discarded",
			text: "the market and the company",
			n:    8,
			want: []string{"market", "company"},
		},
		{
			name: "short tokens discarded",
			text: "ai up go market",
			n:    8,
			want: []string{"market"},
		},
		{
			name: "punctuation stripped before tokenizing",
			text: "Apple's profit-margin rose 5%.",
			n:    8,
			want: []string{"apples", "profitmargin", "rose"},
		},
		{
			name: "result capped at n",
			text: "one1x two2x three3x four4x five5x",
			n:    3,
			want: []string{"one1x", "two2x", "three3x"},
		},
		{
			name: "empty text yields nothing",
			text: "",
			n:    8,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.text, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords(%q, %d) = %v, want %v", tt.text, tt.n, got, tt.want)
			}
		})
	}
}

func TestExtractKeywordsFallback(t *testing.T) {
	// Nothing survives filtering, but the text is non-empty: the extractor
	// must hand back the generic finance terms instead of failing.
	got := ExtractKeywords("the and or it is", 8)
	if !reflect.DeepEqual(got, fallbackKeywords) {
		t.Errorf("ExtractKeywords() = %v, want fallback %v", got, fallbackKeywords)
	}
}
