package summarize

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic sentences",
			text: "First sentence here. Second sentence there. Third one ends.",
			want: []string{"First sentence here.", "Second sentence there.", "Third one ends."},
		},
		{
			name: "abbreviations do not split",
			text: "Apple Inc. reported strong results. Mr. Cook was pleased.",
			want: []string{"Apple Inc. reported strong results.", "Mr. Cook was pleased."},
		},
		{
			name: "decimals do not split",
			text: "Shares rose 3.5 percent today. Volume was high.",
			want: []string{"Shares rose 3.5 percent today.", "Volume was high."},
		},
		{
			name: "question and exclamation marks",
			text: "Will the rally hold? Traders think so! Time will tell.",
			want: []string{"Will the rally hold?", "Traders think so!", "Time will tell."},
		},
		{
			name: "unterminated trailing fragment kept",
			text: "A closing thought without punctuation",
			want: []string{"A closing thought without punctuation"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitSentencesParagraphRetry(t *testing.T) {
	para1 := strings.Repeat("alpha beta gamma delta ", 6) + "no terminal punctuation at all here"
	para2 := "second paragraph also runs on without any stops whatsoever"
	text := para1 + "\n\n" + para2

	if len(text) <= 200 {
		t.Fatalf("test text must exceed 200 characters, got %d", len(text))
	}

	got := SplitSentences(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 paragraph-derived sentences, got %d: %v", len(got), got)
	}
	if got[1] != para2 {
		t.Errorf("second sentence = %q, want %q", got[1], para2)
	}
}

func TestScoreSentencesPositionOnly(t *testing.T) {
	// Three plain sentences: no keywords, no numbers, no title. Only the
	// position rule contributes, so the first two outscore the third.
	sentences := []string{
		"The quick brown fox jumps over fences",
		"Another plain sentence sits right here today",
		"Final thoughts arrive at the very end",
	}

	scored := scoreSentences(sentences, nil, nil)

	wantScores := []int{5, 3, 0}
	for i, s := range scored {
		if s.score != wantScores[i] {
			t.Errorf("sentence %d score = %d, want %d", i, s.score, wantScores[i])
		}
		if s.index != i {
			t.Errorf("sentence %d index = %d, want %d", i, s.index, i)
		}
	}
}

func TestScoreSentencesTitleOverlap(t *testing.T) {
	titleWords := wordSet("apple launches new iphone model")

	t.Run("near-duplicate penalized", func(t *testing.T) {
		scored := scoreSentences([]string{"Apple launches new iPhone model today"}, nil, titleWords)
		// +5 position, -5 overlap, no length adjustment: net zero.
		if scored[0].score != 0 {
			t.Errorf("score = %d, want 0", scored[0].score)
		}
	})

	t.Run("novel sentence rewarded", func(t *testing.T) {
		scored := scoreSentences([]string{"Production volumes doubled across every factory"}, nil, titleWords)
		// +5 position, +2 low overlap.
		if scored[0].score != 7 {
			t.Errorf("score = %d, want 7", scored[0].score)
		}
	})
}

func TestScoreSentencesKeywordWeight(t *testing.T) {
	keywords := []string{"revenue", "growth"}
	scored := scoreSentences([]string{"Revenue grew strongly"}, keywords, nil)

	// +2 for rank-0 keyword, +5 position, -2 too short (3 words).
	if scored[0].score != 5 {
		t.Errorf("score = %d, want 5", scored[0].score)
	}
}

func TestScoreSentencesNumericContent(t *testing.T) {
	scored := scoreSentences([]string{"The dividend yield reached 4.2% for holders this year"}, nil, nil)

	// +5 position, +2 numeric content (9 words, no length adjustment).
	if scored[0].score != 7 {
		t.Errorf("score = %d, want 7", scored[0].score)
	}
}

func TestSelectImportantSentencesOrderPreserved(t *testing.T) {
	text := "The quick brown fox jumps over fences. Another plain sentence sits right here today. Final thoughts arrive at the very end."

	got := SelectImportantSentences(text, nil, DefaultMaxSentences, "")

	want := []string{
		"The quick brown fox jumps over fences.",
		"Another plain sentence sits right here today.",
		"Final thoughts arrive at the very end.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SelectImportantSentences() = %v, want %v", got, want)
	}
}

func TestSelectImportantSentencesTerminatesPunctuation(t *testing.T) {
	text := "Margins expanded across both operating segments. Guidance was raised for the full fiscal year"

	got := SelectImportantSentences(text, nil, DefaultMaxSentences, "")

	for _, s := range got {
		if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
			t.Errorf("sentence %q lacks terminal punctuation", s)
		}
	}
}

func TestForceOpeningSentence(t *testing.T) {
	titleWords := wordSet("zzz yyy xxx")
	scored := []scoredSentence{
		{text: "one two three four five", index: 0, score: 2},
		{text: "high scorer number one here", index: 1, score: 9},
		{text: "high scorer number two here", index: 2, score: 8},
	}

	t.Run("evicts lowest to admit opening sentence", func(t *testing.T) {
		selected := []scoredSentence{scored[1], scored[2]}
		got := forceOpeningSentence(selected, scored, titleWords, 2)

		if len(got) != 2 {
			t.Fatalf("selection size = %d, want 2", len(got))
		}
		indices := map[int]bool{}
		for _, s := range got {
			indices[s.index] = true
		}
		if !indices[0] {
			t.Error("opening sentence was not forced into the selection")
		}
		if indices[2] {
			t.Error("lowest-scoring sentence was not evicted")
		}
	})

	t.Run("too-short opening sentence not forced", func(t *testing.T) {
		short := []scoredSentence{
			{text: "tiny one", index: 0, score: 1},
			scored[1], scored[2],
		}
		selected := []scoredSentence{scored[1], scored[2]}
		got := forceOpeningSentence(selected, short, titleWords, 2)

		for _, s := range got {
			if s.index == 0 {
				t.Error("short opening sentence should not be forced")
			}
		}
	})

	t.Run("high title overlap not forced", func(t *testing.T) {
		overlapping := []scoredSentence{
			{text: "zzz yyy xxx extra words", index: 0, score: 1},
			scored[1], scored[2],
		}
		selected := []scoredSentence{scored[1], scored[2]}
		got := forceOpeningSentence(selected, overlapping, titleWords, 2)

		for _, s := range got {
			if s.index == 0 {
				t.Error("title-overlapping opening sentence should not be forced")
			}
		}
	})
}

func TestSelectionFallback(t *testing.T) {
	t.Run("first complete sentence", func(t *testing.T) {
		got := selectionFallback("This is a start. and then lowercase continuation forever")
		want := []string{"This is a start."}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("selectionFallback() = %v, want %v", got, want)
		}
	})

	t.Run("no period yields truncated prefix", func(t *testing.T) {
		text := "a stream of words that never terminates anywhere"
		got := selectionFallback(text)
		if len(got) != 1 || !strings.HasSuffix(got[0], "...") {
			t.Errorf("selectionFallback() = %v, want single truncated entry", got)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if got := selectionFallback(""); got != nil {
			t.Errorf("selectionFallback(\"\") = %v, want nil", got)
		}
	})
}
