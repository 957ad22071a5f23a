package summary

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// CaptionLimit is Telegram's maximum caption length for media messages.
	// Plain text messages allow more, but sizing everything to the caption
	// limit keeps one budget for both delivery paths.
	CaptionLimit = 1024

	// separators: the two "\n\n" blocks plus the bold markers around the title.
	captionOverhead = 6

	// avgWordLen approximates one word plus its trailing space.
	avgWordLen = 6

	minBudgetWords = 10
)

// CaptionBudget computes the summary word cap for a given title and footer
// so the assembled caption fits CaptionLimit. Conservative by design;
// BuildCaption hard-clamps as the second line of defense.
func CaptionBudget(title, footer string) int {
	avail := CaptionLimit - utf8.RuneCountInString(title) - utf8.RuneCountInString(footer) - captionOverhead
	words := avail / avgWordLen
	if words < minBudgetWords {
		words = minBudgetWords
	}
	return words
}

// BuildCaption assembles the notification text: bold title, summary,
// branding footer. The result never exceeds CaptionLimit.
func BuildCaption(title, sum, footer string) string {
	caption := assemble(title, sum, footer)

	over := utf8.RuneCountInString(caption) - CaptionLimit
	if over <= 0 {
		return caption
	}

	// The summary is the only negotiable part. Shave it down, preferring a
	// sentence boundary, and rebuild.
	runes := []rune(sum)
	if over >= len(runes) {
		return clampRunes(assemble(title, "", footer))
	}
	shaved := strings.TrimSpace(string(runes[:len(runes)-over]))
	if i := strings.LastIndexAny(shaved, ".!?"); i > 0 {
		shaved = shaved[:i+1]
	}
	return clampRunes(assemble(title, shaved, footer))
}

func assemble(title, sum, footer string) string {
	parts := make([]string, 0, 3)
	if title != "" {
		parts = append(parts, fmt.Sprintf("*%s*", title))
	}
	if sum != "" {
		parts = append(parts, sum)
	}
	if footer != "" {
		parts = append(parts, footer)
	}
	return strings.Join(parts, "\n\n")
}

func clampRunes(s string) string {
	runes := []rune(s)
	if len(runes) <= CaptionLimit {
		return s
	}
	return string(runes[:CaptionLimit])
}
