package interpret

import (
	"math"
	"regexp"
	"slices"
	"strconv"

	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/variants"
)

const yearGroup = `(19\d{2}|20\d{2})`

var (
	yearOnly  = regexp.MustCompile(`^` + yearGroup + `$`)
	monthOnly = regexp.MustCompile(`(?i)^(` + monthAlternation + `)$`)

	monthRangePattern = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\s*(?:-|\bto\b|\bthrough\b|\bhasta\b|\bhanggang\b)\s*(` + monthAlternation + `)\b`)
	monthYearPattern  = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\s+` + yearGroup + `\b`)
	dayMonthYear      = regexp.MustCompile(`(?i)\b(0?[1-9]|[12]\d|3[01])\s+(` + monthAlternation + `)\s+` + yearGroup + `\b`)
	monthDayYear      = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\s+(0?[1-9]|[12]\d|3[01]),?\s+` + yearGroup + `\b`)
	bareYear          = regexp.MustCompile(`\b` + yearGroup + `\b`)

	deathMonthContext = regexp.MustCompile(`(?i)\b(?:died|death|passed|buried|namatay|pumanaw|yumao)\b.*?\b(` + monthAlternation + `)\b`)
	birthMonthContext = regexp.MustCompile(`(?i)\b(?:born|birth|ipinanganak)\b.*?\b(` + monthAlternation + `)\b`)
)

// numericDate is a full-date pattern with the group index of each component.
type numericDate struct {
	name             string
	re               *regexp.Regexp
	year, month, day int
}

var numericDates = []numericDate{
	{name: "iso", re: regexp.MustCompile(`\b` + yearGroup + `-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])\b`), year: 1, month: 2, day: 3},
	{name: "us", re: regexp.MustCompile(`\b(0?[1-9]|1[0-2])/(0?[1-9]|[12]\d|3[01])/` + yearGroup + `\b`), year: 3, month: 1, day: 2},
	{name: "uk", re: regexp.MustCompile(`\b(0?[1-9]|[12]\d|3[01])[/-](0?[1-9]|1[0-2])[/-]` + yearGroup + `\b`), year: 3, month: 2, day: 1},
}

var yearRanges = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{4})\s*(?:-|\bto\b|\bthrough\b)\s*(\d{4})\b`),
	regexp.MustCompile(`(?i)\bbetween\s+(\d{4})\s+and\s+(\d{4})\b`),
	regexp.MustCompile(`(?i)\bfrom\s+(\d{4})\s+to\s+(\d{4})\b`),
	regexp.MustCompile(`(?i)\b(?:mula|noong|simula)\s+(\d{4})\s+(?:hanggang|hasta)\s+(\d{4})\b`),
	regexp.MustCompile(`(?i)\bsa\s+pagitan\s+ng\s+(\d{4})\s+(?:at|hanggang)\s+(\d{4})\b`),
}

// extractDates fills the date fields of sc from q. Month-only and
// year-only queries are handled by the caller before this runs.
func extractDates(q *query, sc *core.SearchContext) {
	if m := monthRangePattern.FindStringSubmatch(q.folded); m != nil {
		a, b := monthNumber(m[1]), monthNumber(m[2])
		sc.MonthRange = &core.MonthRange{Start: min(a, b), End: max(a, b)}
	}

	if m := monthYearPattern.FindStringSubmatch(q.folded); m != nil {
		sc.MonthOfDeath = monthNumber(m[1])
		sc.YearOfDeath = atoi(m[2])
	}

	extractFullDate(q.folded, sc)

	if sc.YearOfDeath == 0 && sc.DateRange == nil {
		classifyBareYears(q, sc)
	}

	if sc.DateRange == nil {
		for _, re := range yearRanges {
			if m := re.FindStringSubmatch(q.folded); m != nil {
				a, b := atoi(m[1]), atoi(m[2])
				sc.DateRange = &core.YearRange{Start: min(a, b), End: max(a, b)}
				break
			}
		}
	}

	if sc.MonthOfDeath == 0 && sc.MonthOfBirth == 0 && sc.MonthRange == nil {
		if m := deathMonthContext.FindStringSubmatch(q.cleaned); m != nil {
			sc.MonthOfDeath = monthNumber(m[1])
		}
		if m := birthMonthContext.FindStringSubmatch(q.cleaned); m != nil {
			sc.MonthOfBirth = monthNumber(m[1])
		}
	}
}

// extractFullDate sets the specific date of death from the first pattern
// that yields a real calendar date. Impossible dates such as 31/02 are
// skipped.
func extractFullDate(text string, sc *core.SearchContext) {
	for _, p := range numericDates {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if setSpecificDate(sc, atoi(m[p.year]), atoi(m[p.month]), atoi(m[p.day])) {
			return
		}
	}
	if m := dayMonthYear.FindStringSubmatch(text); m != nil {
		if setSpecificDate(sc, atoi(m[3]), monthNumber(m[2]), atoi(m[1])) {
			return
		}
	}
	if m := monthDayYear.FindStringSubmatch(text); m != nil {
		setSpecificDate(sc, atoi(m[3]), monthNumber(m[1]), atoi(m[2]))
	}
}

func setSpecificDate(sc *core.SearchContext, y, m, d int) bool {
	date, ok := core.Date(y, m, d)
	if !ok {
		return false
	}
	sc.SpecificDate = &date
	sc.YearOfDeath = y
	sc.MonthOfDeath = m
	sc.DayOfMonth = d
	return true
}

// classifyBareYears handles four-digit years with no other structure. One
// year is a birth or death year depending on the nearest birth or death
// keyword, defaulting to death; two or more span a range.
func classifyBareYears(q *query, sc *core.SearchContext) {
	found := bareYear.FindAllString(q.folded, -1)
	switch {
	case len(found) == 0:
		return
	case len(found) >= 2:
		years := make([]int, len(found))
		for i, y := range found {
			years[i] = atoi(y)
		}
		sc.DateRange = &core.YearRange{Start: slices.Min(years), End: slices.Max(years)}
		return
	}

	y := atoi(found[0])
	if nearestYearKeyword(tokens(q.lower), found[0]) == keywordBirth {
		sc.YearOfBirth = y
		return
	}
	sc.YearOfDeath = y
}

type yearKeyword int

const (
	keywordNone yearKeyword = iota
	keywordBirth
	keywordDeath
)

// nearestYearKeyword finds the birth or death keyword closest to the year
// token. Keywords of four or more letters match within one edit ("bornd",
// "diedd"). On a tie the keyword before the year wins.
func nearestYearKeyword(words []string, yearToken string) yearKeyword {
	at := slices.Index(words, yearToken)
	if at < 0 {
		return keywordNone
	}
	best, bestDist := keywordNone, math.MaxInt
	for i, w := range words {
		kind := classifyKeyword(w)
		if kind == keywordNone {
			continue
		}
		dist := at - i
		if dist < 0 {
			// Keywords after the year lose ties to keywords before it.
			dist = -dist*2 + 1
		} else {
			dist *= 2
		}
		if dist < bestDist {
			best, bestDist = kind, dist
		}
	}
	return best
}

func classifyKeyword(w string) yearKeyword {
	if variants.FuzzyContains(w, birthKeywords, 1, 4) {
		return keywordBirth
	}
	if variants.FuzzyContains(w, deathKeywords, 1, 4) {
		return keywordDeath
	}
	return keywordNone
}

// monthOnlyQuery reports the month when the whole query is a month name.
func monthOnlyQuery(folded string) (int, bool) {
	m := monthOnly.FindStringSubmatch(folded)
	if m == nil {
		return 0, false
	}
	return monthNumber(m[1]), true
}

// yearOnlyQuery reports the year when the whole query is a four-digit year.
func yearOnlyQuery(folded string) (int, bool) {
	if !yearOnly.MatchString(folded) {
		return 0, false
	}
	return atoi(folded), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
