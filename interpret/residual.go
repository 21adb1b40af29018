package interpret

import (
	"regexp"
	"strings"
)

// residualStrip removes every known keyword, filler, number and month name.
// What survives is taken to be a name.
var residualStrip = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:can|you|could|would|please|help|me|we|find|search|look|for|show|tell|get|locate|where|who|what|when|how|is|are|was|were|do|does|have|has|been|the|a|an|to|at|in|on|of|and|or|but|from|with|this|that|it|my|your|his|her|their|he|she|they|him|them|hes|shes|its)\b`),
	regexp.MustCompile(`(?i)\b(?:hanap|hanapin|nasaan|saan|sino|si|ni|kay|ang|yung|ba|na|ng|sa|mga|ko|mo|niya|nila|natin|atin|amin|kanila|po|opo|ho|oho|asan|nasan|ayan)\b`),
	regexp.MustCompile(`(?i)\b(?:died|born|bornd|buried|passed|deceased|death|age|aged|old|years?|yrs?|taon|gulang|edad)\b`),
	regexp.MustCompile(`(?i)\b(?:namatay|pumanaw|yumao|ipinanganak|nailibing|kamatayan|patay|libing)\b`),
	regexp.MustCompile(`(?i)\b(?:about|around|approximately|roughly|maybe|probably|possibly|likely|think|siguro|marahil|halos|mga|parang)\b`),
	regexp.MustCompile(`(?i)\b(?:grave|tomb|burial|plot|puntod|libingan|nitso|sementeryo|cemetery|memorial)\b`),
	regexp.MustCompile(`(?i)\b(?:record|data|someone|person|tao|any|meron|mayroon|pwede|maaari|gusto|nais|kailangan)\b`),
	regexp.MustCompile(`(?i)(?:\bi'm|\bi am|\bwe're|\bwe are|\blooking|\bsearching|\btrying|\bpeople)\b`),
	regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	regexp.MustCompile(`\b\d{1,3}\b`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\b`),
	regexp.MustCompile(`(?i)\b(?:enero|pebrero|marso|abril|mayo|hunyo|hulyo|agosto|setyembre|oktubre|nobyembre|disyembre)\b`),
	regexp.MustCompile(`[^a-zA-Z\s]`),
}

// maxResidualTokens is the most leftover words still read as a name.
const maxResidualTokens = 3

// residualName recovers a name from run-on conversational input such as
// "can you find jiro about 20 age" by deleting everything recognizable.
func residualName(cleaned string, exclude ...string) (nameParts, bool) {
	residual := cleaned
	for _, re := range residualStrip {
		residual = re.ReplaceAllString(residual, " ")
	}
	residual = collapseSpace(residual)
	if len(residual) < 2 {
		return nameParts{}, false
	}

	excluded := make(map[string]struct{})
	for _, phrase := range exclude {
		for _, w := range tokens(phrase) {
			excluded[w] = struct{}{}
		}
	}

	var words []string
	for _, w := range strings.Fields(residual) {
		if _, ok := excluded[strings.ToLower(w)]; ok {
			continue
		}
		if len(w) >= 2 && isLikelyName(w) {
			words = append(words, w)
		}
	}
	if len(words) == 0 || len(words) > maxResidualTokens {
		return nameParts{}, false
	}
	return assignNameParts(words), true
}
