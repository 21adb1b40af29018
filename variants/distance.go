package variants

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance returns the Levenshtein edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity converts edit distance into a 0..1 score:
// 1 - distance/max(len(a), len(b)). Two empty strings are identical.
func Similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Distance(a, b))/float64(maxLen)
}

// FuzzyContains reports whether any word of text is within maxDistance
// edits of one of the keywords. Words shorter than minWordLen only match
// exactly, which keeps short tokens like "in" from matching "is".
func FuzzyContains(text string, keywords []string, maxDistance, minWordLen int) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if word == "" {
			continue
		}
		for _, kw := range keywords {
			if word == kw {
				return true
			}
			if utf8.RuneCountInString(word) >= minWordLen && Distance(word, kw) <= maxDistance {
				return true
			}
		}
	}
	return false
}
