package interpret

import (
	"regexp"
	"strings"

	"github.com/poiesic/hanap/variants"
)

// prefixPasses bounds how many nested prefixes ("can you please hanap")
// are stripped.
const prefixPasses = 3

var conversationalPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:could you please|can you please|would you please|can you|could you|would you|will you|please)\s+`),
	regexp.MustCompile(`(?i)^(?:help me to|help me|i need to|i want to|i would like to|i'd like to|let me)\s+`),
	regexp.MustCompile(`(?i)^(?:search for|look for|looking for|find|search|locate|show me|tell me|get me)\s+`),
	regexp.MustCompile(`(?i)^(?:where is|where's|who is|who's|what is|what's)\s+`),
	regexp.MustCompile(`(?i)^(?:do you know|can you tell me|could you show me)\s+`),
	regexp.MustCompile(`(?i)^(?:pwede mo ba|pwede mo|pwede|maaari mo ba|maaari mo|maaari)\s+`),
	regexp.MustCompile(`(?i)^(?:tulungan mo ako|tulungan|pakitulungan|pakihanap|pakisearch)\s+`),
	regexp.MustCompile(`(?i)^(?:gusto kong|gusto ko|nais kong|nais ko|kailangan kong|kailangan ko)\s+`),
	regexp.MustCompile(`(?i)^(?:magtanong|tanong|ask|question)\s+`),
	regexp.MustCompile(`(?i)^(?:can you please hanap|pwede mo find|help me hanap)\s+`),
	regexp.MustCompile(`(?i)^(?:um|uh|well|so|okay|ok|sige|oo|yes|yeah|yup)\s+`),
}

var (
	fillerWords = regexp.MustCompile(`(?i)\b(?:um|uh|hmm|like|you know|i think|i guess|kasi|eh|diba|di ba|alam mo ba|alam mo|yung|yun|nga|naman|lang|po|opo|ho|oho|ba|pala|din|rin|daw|raw|sana|talaga)\b`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// query holds the forms of one input string the extractors work on.
type query struct {
	raw string
	// folded has accents and punctuation variants folded; case is kept.
	folded string
	// lower is folded, lower-cased.
	lower string
	// cleaned is lower with conversational prefixes and filler words removed.
	cleaned string
}

func newQuery(raw string) *query {
	folded := variants.Fold(raw)
	lower := strings.ToLower(folded)
	return &query{
		raw:     raw,
		folded:  folded,
		lower:   lower,
		cleaned: StripConversation(lower),
	}
}

// StripConversation removes leading conversational prefixes, in up to three
// passes, and filler words anywhere in s, then collapses whitespace. Input
// with nothing to strip is returned trimmed.
func StripConversation(s string) string {
	s = strings.TrimSpace(s)
	for range prefixPasses {
		changed := false
		for _, prefix := range conversationalPrefixes {
			if stripped := prefix.ReplaceAllString(s, ""); stripped != s {
				s = stripped
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	s = fillerWords.ReplaceAllString(s, " ")
	return collapseSpace(s)
}

// Normalize folds accents and punctuation, lower-cases, and strips
// conversational scaffolding.
func Normalize(raw string) string {
	return StripConversation(variants.Normalize(raw))
}

func collapseSpace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
