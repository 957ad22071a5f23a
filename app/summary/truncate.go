package summary

import (
	"regexp"
	"strings"
)

var spaceBeforePunct = regexp.MustCompile(`\s+([.,!?])`)

// CleanText collapses internal whitespace runs to single spaces and
// removes whitespace before punctuation ("word  ." becomes "word.").
func CleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return spaceBeforePunct.ReplaceAllString(s, "$1")
}

// TruncateWords caps s at maxWords words and backs up to the last
// sentence-ending punctuation mark at or before that boundary, so the
// result never ends mid-sentence. If the truncated window contains no
// sentence end, the raw word-truncated text is returned.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if maxWords <= 0 || len(words) <= maxWords {
		return strings.Join(words, " ")
	}

	cut := strings.Join(words[:maxWords], " ")
	if i := strings.LastIndexAny(cut, ".!?"); i >= 0 {
		return cut[:i+1]
	}
	return cut
}
