package interpret

import (
	"regexp"

	"github.com/poiesic/hanap/core"
)

// maxAgeDigits rejects four-digit captures so "around 1990" is a year, not an age.
const maxAgeDigits = 3

// agePatterns capture an unbounded digit run; captures longer than
// maxAgeDigits are skipped and scanning continues.
var agePatterns = []*regexp.Regexp{
	// "about 20 age", "around 25 years", "siguro mga 30"
	regexp.MustCompile(`(?i)\b(?:about|around|approximately|roughly|maybe|probably|like|siguro|mga|halos)\s+(\d+)`),
	// "died at 45", "aged 25", "edad 30"
	regexp.MustCompile(`(?i)\b(?:died at|age|aged|was|is|edad|gulang)\s+(\d+)`),
	// "20 years old", "30 taong gulang"
	regexp.MustCompile(`(?i)\b(\d+)\s*(?:years?|yrs?|taon|taong)\s+(?:old|gulang)\b`),
	// "20 age", "25 edad"
	regexp.MustCompile(`(?i)\b(\d+)\s+(?:age|edad|taon|gulang)\b`),
	// "20 yo", "20 y.o."
	regexp.MustCompile(`(?i)\b(\d+)\s*y\.?o\b`),
}

var ageRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:between|ages?)\s+(\d{1,3})\s+(?:and|to|-)\s+(\d{1,3})\b`),
	regexp.MustCompile(`(?i)\b(?:edad|gulang)\s+(\d{1,3})\s+(?:hanggang|at)\s+(\d{1,3})\b`),
}

// extractAges sets the age at death and age range of sc.
func extractAges(q *query, sc *core.SearchContext) {
	sc.AgeAtDeath = firstAge(q.folded)

	for _, re := range ageRangePatterns {
		if m := re.FindStringSubmatch(q.folded); m != nil {
			a, b := atoi(m[1]), atoi(m[2])
			sc.AgeRange = &core.AgeRange{Min: min(a, b), Max: max(a, b)}
			break
		}
	}
}

func firstAge(text string) int {
	for _, re := range agePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m[1]) > maxAgeDigits {
				continue
			}
			if age := atoi(m[1]); age > 0 {
				return age
			}
		}
	}
	return 0
}
