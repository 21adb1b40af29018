package interpret

import (
	"regexp"
	"slices"
	"strings"
)

// nameParts is the name a matcher extracted, as typed.
type nameParts struct {
	first  string
	middle string
	last   string
}

func (n nameParts) empty() bool {
	return n.first == "" && n.last == ""
}

// full is the lower-cased, space-joined name.
func (n nameParts) full() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.first, n.middle, n.last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// nameMatcher is one strategy in the extraction cascade. It returns false
// when it does not apply or yields no plausible name.
type nameMatcher struct {
	name  string
	match func(text string) (nameParts, bool)
}

// Shared regexp fragments.
const (
	capWord   = `[A-Z][a-z]+`
	lowerWord = `[a-z]{2,}`
	anyWord   = `[A-Za-z]{2,}`
	particle  = `(?:(?:si|ni|kay|ang|yung)\s+)?`
)

// nameMatchers run in priority order; the first plausible name wins.
var nameMatchers = []nameMatcher{
	captureMatcher("quoted",
		`(?i)\b(?:find|looking for|where is|locate|search for|show me|hanap|hanapin|nasaan)\s+["']([^"']+)["']`),
	captureMatcher("quoted-whole", `^"([^"]+)"$`),
	captureMatcher("conversational",
		`(?i)\b(?:find|looking for|where is|locate|search for|show me|who is|tell me about|do you know)\s+(`+capWord+`(?:\s+(?:[A-Z]\.\s+)?`+capWord+`){1,3})`),
	captureMatcher("conversational-lower",
		`(?i)\b(?:find|looking for|where is|where's|locate|search for|show me|who is|tell me about|do you know)\s+(`+lowerWord+`(?:\s+`+lowerWord+`){0,2})`),
	captureMatcher("filipino",
		`(?i)\b(?:hanap|hanapin|nasaan|saan|sino|alin|pakihanap)\s+`+particle+`(`+capWord+`(?:\s+(?:(?:ng|na)\s+)?`+capWord+`){1,3})`),
	captureMatcher("filipino-lower",
		`(?i)\b(?:hanap|hanapin|nasaan|saan|sino|pakihanap)\s+`+particle+`(`+lowerWord+`(?:\s+`+lowerWord+`){0,2})`),
	captureMatcher("hybrid",
		`(?i)\b(?:find|hanap|where|nasaan|locate|hanapin|search|show)\s+`+particle+`(`+anyWord+`(?:\s+`+anyWord+`){0,2})`),
	captureMatcher("named",
		`(?i)\b(?:someone|somebody|person|people|tao|taong|isang)\s+(?:named|called|with name|na pangalan|na name|na nagngangalang)\s+(`+anyWord+`(?:\s+`+anyWord+`){0,2})`),
	captureMatcher("action",
		`(?i)\b(`+capWord+`(?:\s+`+capWord+`){0,3})(?:'s)?\s+(?:died|born|buried|grave|passed|deceased|family|plot)\b`),
	captureMatcher("action-lower",
		`(?i)\b(`+lowerWord+`(?:\s+`+lowerWord+`){0,2})\s+(?:died|born|buried|passed|deceased|namatay|pumanaw|yumao|yumaong|nailibing|ipinanganak)\b`),
	captureMatcher("before-date",
		`(?i)\b(`+anyWord+`)\s+(?:died|born|bornd|buried|namatay|ipinanganak|pumanaw|yumao|about|around|age|aged|mga)\b`),
	captureMatcher("casual",
		`(?i)(?:\bwhere's|\bwho's|\bwhat's|\bano\s+ba|\bsino\s+ba|\bsino|\bano|\basan|\bnasan)\s+(?:(?:si|ni|kay)\s+)?(`+anyWord+`(?:\s+`+anyWord+`){0,2})`),
	captureMatcher("record-of",
		`(?i)\b(?:any record|may record|meron|mayroon|record|data)\s+(?:(?:of|for|about|ba ni|ba ng|ba si|ba kay|ni|ng)\s+)?(`+anyWord+`(?:\s+`+anyWord+`){0,2})`),
	captureMatcher("looking-for",
		`(?i)\b(?:i'm|i am|we're|we are)\s+(?:looking for|searching for|trying to find)\s+(`+anyWord+`(?:\s+`+anyWord+`){0,2})`),
	captureMatcher("grave-of",
		`(?i)\b(?:grave|tomb|burial|plot|puntod|libingan|nitso)\s+(?:of|ni|ng|para kay|para sa)\s+(`+anyWord+`(?:\s+`+anyWord+`){0,2})`),
	captureMatcher("honorific",
		`(?i)(?:\bG\.|\bGng\.|\bBb\.|\bMr\.?|\bMrs\.?|\bMs\.?|\bDr\.?)\s+(`+capWord+`(?:\s+`+capWord+`){0,3})`),
	{name: "middle-initial", match: matchMiddleInitial},
	{name: "capitalized", match: matchCapitalized},
}

// captureMatcher builds a strategy whose first group holds the name words.
func captureMatcher(name, pattern string) nameMatcher {
	re := regexp.MustCompile(pattern)
	return nameMatcher{
		name: name,
		match: func(text string) (nameParts, bool) {
			m := re.FindStringSubmatch(text)
			if m == nil {
				return nameParts{}, false
			}
			parts := assignNameParts(likelyNameTokens(strings.Fields(m[1])))
			return parts, !parts.empty()
		},
	}
}

var middleInitial = regexp.MustCompile(`\b(` + capWord + `)\s+([A-Z])\.?\s+(` + capWord + `)\b`)

// matchMiddleInitial handles "John A. Smith". It is case-sensitive.
func matchMiddleInitial(text string) (nameParts, bool) {
	m := middleInitial.FindStringSubmatch(text)
	if m == nil || !isLikelyName(m[1]) || !isLikelyName(m[3]) {
		return nameParts{}, false
	}
	return nameParts{first: m[1], middle: m[2], last: m[3]}, true
}

var (
	capitalizedRun = regexp.MustCompile(`\b(` + capWord + `)\s+(` + capWord + `)(?:\s+(` + capWord + `))?\b`)
	placeSuffix    = regexp.MustCompile(`^\s+(?:Cemetery|Memorial|Park|City|Sementeryo)\b`)
	placeWords     = wordSet("cemetery", "memorial", "park", "city", "sementeryo")
)

func isPlaceWord(w string) bool {
	_, ok := placeWords[strings.ToLower(w)]
	return ok
}

// matchCapitalized is the bare fallback: two or three consecutive
// capitalized words that are not a place name.
func matchCapitalized(text string) (nameParts, bool) {
	for _, loc := range capitalizedRun.FindAllStringSubmatchIndex(text, -1) {
		if placeSuffix.MatchString(text[loc[1]:]) {
			continue
		}
		var words []string
		for g := 1; g <= 3; g++ {
			if loc[2*g] >= 0 {
				words = append(words, text[loc[2*g]:loc[2*g+1]])
			}
		}
		if slices.ContainsFunc(words, isPlaceWord) {
			continue
		}
		words = likelyNameTokens(words)
		if len(words) < 2 {
			continue
		}
		return assignNameParts(words), true
	}
	return nameParts{}, false
}

// likelyNameTokens drops filler and keywords, keeping order.
func likelyNameTokens(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"()")
		w = strings.TrimSuffix(w, "'s")
		if isLikelyName(w) {
			out = append(out, w)
		}
	}
	return out
}

// assignNameParts maps name tokens to first/middle/last positionally.
// A surname particle after the first token starts a compound last name.
func assignNameParts(words []string) nameParts {
	switch len(words) {
	case 0:
		return nameParts{}
	case 1:
		return nameParts{first: words[0]}
	}
	for i := 1; i < len(words); i++ {
		if _, ok := surnameParticles[strings.ToLower(words[i])]; ok {
			return nameParts{
				first:  words[0],
				middle: strings.Join(words[1:i], " "),
				last:   strings.Join(words[i:], " "),
			}
		}
	}
	switch len(words) {
	case 2:
		return nameParts{first: words[0], last: words[1]}
	case 3:
		return nameParts{first: words[0], middle: words[1], last: words[2]}
	default:
		return nameParts{first: words[0], last: strings.Join(words[1:], " ")}
	}
}

// extractName runs the cascade over the folded text, then the cleaned
// text, and finally the residual fallback. Words of places already
// recognized are never read as a residual name.
func extractName(q *query, places ...string) (nameParts, string) {
	for _, text := range []string{q.folded, q.cleaned} {
		if text == "" {
			continue
		}
		for _, m := range nameMatchers {
			if parts, ok := m.match(text); ok {
				return parts, m.name
			}
		}
	}
	if parts, ok := residualName(q.cleaned, places...); ok {
		return parts, "residual"
	}
	return nameParts{}, ""
}

// looksReversed reports whether a first/last pair may have been typed
// surname-first ("dela Cruz Juan", "Santos Maria").
func looksReversed(n nameParts) bool {
	if n.first == "" || n.last == "" || n.middle != "" {
		return false
	}
	for _, name := range []string{n.first, n.last} {
		head, _, _ := strings.Cut(strings.ToLower(name), " ")
		if _, ok := surnameParticles[head]; ok {
			return true
		}
	}
	return len([]rune(n.first)) > len([]rune(n.last))
}
