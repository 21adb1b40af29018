package search

import "strings"

// English and Filipino words that carry no weight in keyword similarity.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "of": true, "and": true, "or": true, "is": true,
	"was": true,
	"ang": true, "ng": true, "sa": true, "na": true, "ay": true, "si": true,
	"ni": true, "mga": true, "o": true, "pa": true,
}

// queryTokens splits a lowercased query on whitespace, dropping stop words
// and single characters.
func queryTokens(query string) []string {
	words := strings.Fields(query)
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 1 && !stopWords[word] {
			filtered = append(filtered, word)
		}
	}
	return filtered
}

// documentTokens splits lowercased document text, dropping single characters.
func documentTokens(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 1 {
			filtered = append(filtered, word)
		}
	}
	return filtered
}
