package summary

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"space before period", "word  .", "word."},
		{"space before comma", "one , two", "one, two"},
		{"space before bang and question", "wow ! really ?", "wow! really?"},
		{"whitespace runs", "a   b\t\nc", "a b c"},
		{"already clean", "Nothing to do here.", "Nothing to do here."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWords int
		expected string
	}{
		{
			name:     "under the cap",
			input:    "Short enough already.",
			maxWords: 10,
			expected: "Short enough already.",
		},
		{
			name:     "cap lands mid-sentence",
			input:    "One. Two words here. Three unfinished words trail off",
			maxWords: 5,
			expected: "One. Two words here.",
		},
		{
			name:     "cap lands on sentence end",
			input:    "A. B. C. D.",
			maxWords: 3,
			expected: "A. B. C.",
		},
		{
			name:     "no punctuation in window",
			input:    "just a stream of words with no sentence ending anywhere",
			maxWords: 4,
			expected: "just a stream of",
		},
		{
			name:     "exclamation counts as sentence end",
			input:    "Big news! More detail follows in this very long clause",
			maxWords: 5,
			expected: "Big news!",
		},
		{
			name:     "zero cap returns input",
			input:    "a b c",
			maxWords: 0,
			expected: "a b c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWords(tt.input, tt.maxWords); got != tt.expected {
				t.Errorf("TruncateWords(%q, %d) = %q, want %q", tt.input, tt.maxWords, got, tt.expected)
			}
		})
	}
}

func TestTruncateNeverMidToken(t *testing.T) {
	input := "Alpha beta. Gamma delta epsilon zeta eta theta"
	for n := 1; n <= 10; n++ {
		got := TruncateWords(input, n)
		for _, w := range strings.Fields(got) {
			if !strings.Contains(input, w) {
				t.Errorf("cap %d produced partial token %q", n, w)
			}
		}
	}
}
