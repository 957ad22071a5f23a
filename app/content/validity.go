package content

import "strings"

const (
	minWords       = 50
	minUniqueRatio = 0.5
)

// ValidText reports whether extracted text looks like real article prose:
// at least 50 words, with at least half of them distinct. Boilerplate
// pages ("subscribe to continue", cookie walls) fail one of the two.
func ValidText(text string) bool {
	words := strings.Fields(text)
	if len(words) < minWords {
		return false
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return float64(len(unique))/float64(len(words)) >= minUniqueRatio
}
