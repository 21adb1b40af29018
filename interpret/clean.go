package interpret

import "regexp"

// cleanNameStrip removes query scaffolding while keeping every other word,
// for substring matching against stored names.
var cleanNameStrip = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:can|you|could|would|please|help|me|find|search|look|for|show|tell|get|locate|where|who|what|is|are|was|were|do|does|have|has|been|the|a|an|to|at|in|on|of|and|or|but|from|with|this|that|it|my|your)\b`),
	regexp.MustCompile(`(?i)\b(?:hanap|hanapin|nasaan|saan|sino|si|ni|kay|ang|yung|ba|na|ng|sa|mga|ko|mo|po|opo)\b`),
	regexp.MustCompile(`(?i)\b(?:died|born|bornd|buried|passed|deceased|death|namatay|ipinanganak|pumanaw|yumao|nailibing|kamatayan)\b`),
	regexp.MustCompile(`(?i)\b(?:about|around|approximately|roughly|maybe|probably|possibly|think|siguro|marahil)\b`),
	regexp.MustCompile(`(?i)\b(?:age|aged|old|years?|yrs?|taon|gulang|edad)\b`),
	regexp.MustCompile(`(?i)\b(?:noong|mula|hanggang|simula|dati|noon|ngayon)\b`),
	regexp.MustCompile(`(?i)\b(?:grave|tomb|burial|plot|puntod|libingan|nitso|record|data|info|someone|person|tao)\b`),
	regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	regexp.MustCompile(`\b\d{1,3}\b`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december|enero|pebrero|marso|abril|mayo|hunyo|hulyo|agosto|setyembre|oktubre|nobyembre|disyembre)\b`),
	regexp.MustCompile(`(?i)\b(?:last year|this year|last month|this month|recently|kamakailan|nakaraang|ngayong|years? ago)\b`),
	regexp.MustCompile(`(?i)\b(?:jr|sr|ii|iii|iv|mr|mrs|ms|dr|engr|atty|gng|bb)\b\.?`),
	regexp.MustCompile(`'?\b\d{2}s\b`),
	regexp.MustCompile(`[-/]`),
}

// CleanName strips keywords, numbers, months, titles and filler from a raw
// query, leaving the words most likely to be part of a name. The result is
// lower-cased and accent-folded; it may be empty.
func CleanName(raw string) string {
	cleaned := newQuery(raw).lower
	for _, re := range cleanNameStrip {
		cleaned = re.ReplaceAllString(cleaned, " ")
	}
	return collapseSpace(cleaned)
}
