package interpret

import (
	"regexp"
	"strings"

	"github.com/poiesic/hanap/core"
)

var plotPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:plot|grave|tomb|niche|lot)\s*#?\s*([A-Za-z0-9-]+)\b`),
	regexp.MustCompile(`(?i)\b([A-Za-z0-9]+)\s*(?:plot|grave)\b`),
	regexp.MustCompile(`#\s*([A-Za-z0-9-]+)\b`),
}

var digit = regexp.MustCompile(`\d`)

// extractPlotNumber returns the first plot identifier containing a digit,
// upper-cased. "grave of John" and "Smith's grave" carry none.
func extractPlotNumber(text string) string {
	for _, re := range plotPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if digit.MatchString(m[1]) {
				return strings.ToUpper(m[1])
			}
		}
	}
	return ""
}

var plotTypePatterns = []struct {
	re       *regexp.Regexp
	plotType string
}{
	{regexp.MustCompile(`\bfamily (?:plot|grave|tomb)\b`), core.PlotTypeFamily},
	{regexp.MustCompile(`\b(?:single|individual|private)\s*(?:plot|grave)\b`), core.PlotTypeSingle},
	{regexp.MustCompile(`\b(?:lawn|memorial park)\b`), core.PlotTypeLawn},
	{regexp.MustCompile(`\b(?:mausoleum|columbarium|crypt)\b`), core.PlotTypeMausoleum},
}

func extractPlotType(lower string) string {
	for _, p := range plotTypePatterns {
		if p.re.MatchString(lower) {
			return p.plotType
		}
	}
	return ""
}

var (
	// "Manila North Cemetery", "Loyola Memorial Park"; case-sensitive.
	namedCemetery = regexp.MustCompile(`\b((?:[A-Z][a-z]+\s+){1,3}(?:Cemetery|Memorial Park|Memorial|Park|Sementeryo))\b`)
	// "in the north cemetery", "sa sementeryo ng Paco".
	cemeteryAfterPreposition = regexp.MustCompile(`(?i)\b(?:at|in|from|sa)\s+((?:[a-z]+\s+){1,3}(?:cemetery|memorial park|memorial|sementeryo))\b`)
	// "buried at Paco"; case-sensitive.
	buriedAt = regexp.MustCompile(`\bburied\s+(?:at|in|sa)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3})`)

	location = regexp.MustCompile(`\b(?:in|at|near|from|sa)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`)
)

// extractCemetery returns a cemetery name as typed, or "".
func extractCemetery(folded string) string {
	if m := namedCemetery.FindStringSubmatch(folded); m != nil {
		if name := trimLeadingFiller(m[1]); name != "" {
			return name
		}
	}
	if m := cemeteryAfterPreposition.FindStringSubmatch(folded); m != nil {
		if name := trimLeadingFiller(m[1]); name != "" {
			return name
		}
	}
	if m := buriedAt.FindStringSubmatch(folded); m != nil {
		return leadingPlaceWords(m[1])
	}
	return ""
}

// extractLocation returns a capitalized place after a preposition, or "".
// Month names and keywords are not places ("died in March").
func extractLocation(folded string) string {
	for _, m := range location.FindAllStringSubmatch(folded, -1) {
		if place := leadingPlaceWords(m[1]); place != "" {
			return place
		}
	}
	return ""
}

// leadingPlaceWords keeps the leading run of words that are neither months nor
// keywords.
func leadingPlaceWords(s string) string {
	var kept []string
	for _, w := range strings.Fields(s) {
		if monthNumber(w) != 0 || !isLikelyName(w) {
			break
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// trimLeadingFiller drops leading words such as "the", "Find" or "ang" from
// a place phrase, leaving "" when nothing but the place suffix remains.
func trimLeadingFiller(s string) string {
	words := strings.Fields(s)
	for len(words) > 1 && !isLikelyName(words[0]) {
		words = words[1:]
	}
	if len(words) == 1 {
		return ""
	}
	return strings.Join(words, " ")
}

var relationshipPatterns = []struct {
	re           *regexp.Regexp
	relationship string
}{
	{regexp.MustCompile(`\b(?:father|dad|papa|tatay|ama)\b`), "father"},
	{regexp.MustCompile(`\b(?:mother|mom|mama|nanay|ina)\b`), "mother"},
	{regexp.MustCompile(`\b(?:son|anak na lalaki)\b`), "son"},
	{regexp.MustCompile(`\b(?:daughter|anak na babae)\b`), "daughter"},
	{regexp.MustCompile(`\b(?:brother|kapatid na lalaki)\b`), "brother"},
	{regexp.MustCompile(`\b(?:sister|kapatid na babae)\b`), "sister"},
	{regexp.MustCompile(`\b(?:wife|asawa)\b`), "wife"},
	{regexp.MustCompile(`\bhusband\b`), "husband"},
	{regexp.MustCompile(`\b(?:family|pamilya|angkan|lahi)\b`), "family"},
}

func extractRelationship(lower string) string {
	for _, p := range relationshipPatterns {
		if p.re.MatchString(lower) {
			return p.relationship
		}
	}
	return ""
}

// hasFilipinoKeyword reports whether any whole word is a Filipino keyword.
func hasFilipinoKeyword(lower string) bool {
	for _, w := range tokens(lower) {
		if _, ok := filipinoKeywords[w]; ok {
			return true
		}
	}
	return false
}
