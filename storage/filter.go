package storage

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/variants"
)

const (
	// DefaultPageSize is used when a query does not set a page size.
	DefaultPageSize = 20
	// MaxPageSize bounds the page size of a candidate query.
	MaxPageSize = 100
	// DefaultAutocompleteLimit is used when Autocomplete is given no limit.
	DefaultAutocompleteLimit = 10
	// MinAutocompletePrefix is the shortest prefix Autocomplete answers.
	MinAutocompletePrefix = 2
)

// CandidateQuery carries the request-level parameters of a candidate search.
type CandidateQuery struct {
	// RawQuery is the query as typed. It is matched against names and plot
	// numbers when no name or date was interpreted.
	RawQuery string
	// CleanName is the query with all non-name words removed, used as a
	// fallback name pattern.
	CleanName string
	// CemeteryId restricts candidates to one cemetery when non-zero.
	CemeteryId core.ID
	Page       int
	PageSize   int
}

// Normalized returns q with Page at least 1 and PageSize within
// 1..MaxPageSize, defaulting to DefaultPageSize.
func (q CandidateQuery) Normalized() CandidateQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PageSize == 0:
		q.PageSize = DefaultPageSize
	case q.PageSize < 1:
		q.PageSize = 1
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset is the index of the first record on the page.
func (q CandidateQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// CandidatePage is one page of filtered, ordered candidates.
type CandidatePage struct {
	Records  []*core.Record
	Total    int
	Page     int
	PageSize int
}

// Match quality ranks, best first.
const (
	rankExactFullName = iota + 1
	rankExactFirstAndLast
	rankExactFirst
	rankExactLast
	rankFirstPrefix
	rankLastPrefix
	rankFirstContains
	rankLastContains
	rankOther
)

// CandidateFilter decides which stored records are worth ranking for one
// interpreted query, and in which order they are returned. It is built
// once per query and is safe for concurrent use.
type CandidateFilter struct {
	sc        *core.SearchContext
	q         CandidateQuery
	hasName   bool
	hasDate   bool
	first     string
	last      string
	firstAlts []string
	lastAlts  []string
	clean     string
	raw       string
	plot      string
	cemetery  string
	rankFull  string
}

// NewCandidateFilter prepares the filter for sc and q.
func NewCandidateFilter(sc *core.SearchContext, q CandidateQuery) *CandidateFilter {
	f := &CandidateFilter{
		sc:       sc,
		q:        q,
		hasName:  sc.HasName() || sc.FullName != "",
		hasDate:  sc.HasDateConstraint(),
		first:    variants.Normalize(sc.FirstName),
		last:     variants.Normalize(sc.LastName),
		clean:    variants.Normalize(q.CleanName),
		raw:      strings.TrimSpace(variants.Normalize(q.RawQuery)),
		plot:     variants.Normalize(sc.PlotNumber),
		cemetery: variants.Normalize(sc.CemeteryName),
	}
	f.firstAlts = alternatives(f.first, sc.FirstNameVariants)
	f.lastAlts = alternatives(f.last, sc.LastNameVariants)

	switch {
	case f.first != "" && f.last != "":
		f.rankFull = f.first + " " + f.last
	case f.first != "":
		f.rankFull = f.first
	case f.last != "":
		f.rankFull = f.last
	default:
		f.rankFull = f.raw
	}
	return f
}

// alternatives returns the normalized variants of name other than name itself.
func alternatives(name string, variantList []string) []string {
	var out []string
	for _, v := range variantList {
		if v = variants.Normalize(v); v != "" && v != name && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// recordNames is the normalized name view of a record.
type recordNames struct {
	first, middle, last string
	full                string // "first last"
	fullMiddle          string // "first middle last"
}

func namesOf(r *core.Record) recordNames {
	n := recordNames{
		first:  variants.Normalize(r.FirstName),
		middle: variants.Normalize(r.MiddleName),
		last:   variants.Normalize(r.LastName),
	}
	n.full = n.first + " " + n.last
	n.fullMiddle = n.first + " " + n.middle + " " + n.last
	return n
}

// Match reports whether r passes the coarse name, date and cemetery filter.
func (f *CandidateFilter) Match(r *core.Record) bool {
	if r == nil {
		return false
	}
	if f.q.CemeteryId != 0 && r.CemeteryId != f.q.CemeteryId {
		return false
	}
	n := namesOf(r)
	switch {
	case f.hasName:
		if !f.matchName(n) {
			return false
		}
	case !f.hasDate:
		if !f.matchUnstructured(n, r) {
			return false
		}
	}
	return f.matchDates(r)
}

func (f *CandidateFilter) matchName(n recordNames) bool {
	matched := false
	switch {
	case f.first != "" && f.last != "":
		matched = f.matchPair(n)
	case f.first != "":
		matched = anyNameContains(n, f.first, f.firstAlts)
	case f.last != "":
		matched = anyNameContains(n, f.last, f.lastAlts)
	}
	if !matched && f.clean != "" {
		matched = strings.Contains(n.first, f.clean) ||
			strings.Contains(n.last, f.clean) ||
			strings.Contains(n.full, f.clean)
	}
	return matched
}

// matchPair accepts first/last in either order, nickname variants of
// either part, and a middle name between them.
func (f *CandidateFilter) matchPair(n recordNames) bool {
	pair := func(first, last string) bool {
		return strings.Contains(n.first, first) && strings.Contains(n.last, last)
	}
	if pair(f.first, f.last) || pair(f.last, f.first) {
		return true
	}
	for _, alt := range f.firstAlts {
		if pair(alt, f.last) {
			return true
		}
	}
	for _, alt := range f.lastAlts {
		if pair(f.first, alt) {
			return true
		}
	}
	return strings.Contains(n.fullMiddle, f.first) && strings.Contains(n.fullMiddle, f.last)
}

// anyNameContains matches a single name part against either stored name.
// Only the primary term is also tried against "first last".
func anyNameContains(n recordNames, term string, alts []string) bool {
	if strings.Contains(n.first, term) || strings.Contains(n.last, term) || strings.Contains(n.full, term) {
		return true
	}
	for _, alt := range alts {
		if strings.Contains(n.first, alt) || strings.Contains(n.last, alt) {
			return true
		}
	}
	return false
}

// matchUnstructured handles queries with neither name nor date: the raw
// query against names and plot, or the interpreted plot or cemetery.
func (f *CandidateFilter) matchUnstructured(n recordNames, r *core.Record) bool {
	plot := variants.Normalize(r.PlotNumber)
	if f.raw != "" && (strings.Contains(n.first, f.raw) || strings.Contains(n.last, f.raw) ||
		strings.Contains(n.full, f.raw) || strings.Contains(plot, f.raw)) {
		return true
	}
	if f.plot != "" && strings.Contains(plot, f.plot) {
		return true
	}
	return f.cemetery != "" && strings.Contains(variants.Normalize(r.CemeteryName), f.cemetery)
}

// matchDates applies every date constraint. A record with an unknown date
// fails any constraint on that date.
func (f *CandidateFilter) matchDates(r *core.Record) bool {
	sc := f.sc
	death, birth := r.DeathYear(), r.BirthYear()

	switch {
	case sc.DateRange != nil:
		if !(death != 0 && sc.DateRange.Contains(death)) && !(birth != 0 && sc.DateRange.Contains(birth)) {
			return false
		}
	case sc.YearOfDeath != 0:
		if death != sc.YearOfDeath {
			return false
		}
	case sc.YearOfBirth != 0:
		tolerance := 0
		if sc.BirthYearFromAge {
			tolerance = core.BirthYearTolerance
		}
		if birth == 0 || birth < sc.YearOfBirth-tolerance || birth > sc.YearOfBirth+tolerance {
			return false
		}
	}

	if sc.MonthOfDeath != 0 && (death == 0 || int(r.DateOfDeath.Month()) != sc.MonthOfDeath) {
		return false
	}
	if sc.MonthOfBirth != 0 && (birth == 0 || int(r.DateOfBirth.Month()) != sc.MonthOfBirth) {
		return false
	}
	if sc.MonthRange != nil && (death == 0 || !sc.MonthRange.Contains(int(r.DateOfDeath.Month()))) {
		return false
	}
	if sc.DayOfMonth != 0 && (death == 0 || r.DateOfDeath.Day() != sc.DayOfMonth) {
		return false
	}
	if sc.SpecificDate != nil {
		if death == 0 || r.DateOfDeath.Format(time.DateOnly) != sc.SpecificDate.Format(time.DateOnly) {
			return false
		}
	}
	return true
}

// Rank classifies how well r's name matches, 1 (exact full name) to 9.
// A single name part is ranked against both stored names. Queries without
// a name rank every record 9.
func (f *CandidateFilter) Rank(r *core.Record) int {
	if !f.hasName {
		return rankOther
	}
	first, last := f.first, f.last
	if first == "" {
		first = last
	}
	if last == "" {
		last = first
	}

	n := namesOf(r)
	switch {
	case f.rankFull != "" && strings.TrimSpace(n.full) == f.rankFull:
		return rankExactFullName
	case n.first == first && n.last == last:
		return rankExactFirstAndLast
	case n.first == first:
		return rankExactFirst
	case n.last == last:
		return rankExactLast
	case strings.HasPrefix(n.first, first):
		return rankFirstPrefix
	case strings.HasPrefix(n.last, last):
		return rankLastPrefix
	case strings.Contains(n.first, first):
		return rankFirstContains
	case strings.Contains(n.last, last):
		return rankLastContains
	default:
		return rankOther
	}
}

// Sort orders records by match rank, then most recent death (unknown
// last), then last name, first name and ID.
func (f *CandidateFilter) Sort(records []*core.Record) {
	type ranked struct {
		record *core.Record
		rank   int
	}
	rs := make([]ranked, len(records))
	for i, r := range records {
		rs[i] = ranked{record: r, rank: f.Rank(r)}
	}
	slices.SortStableFunc(rs, func(x, y ranked) int {
		if c := cmp.Compare(x.rank, y.rank); c != 0 {
			return c
		}
		a, b := x.record, y.record
		if c := compareDeathDesc(a, b); c != 0 {
			return c
		}
		if c := strings.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)); c != 0 {
			return c
		}
		if c := strings.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)); c != 0 {
			return c
		}
		return cmp.Compare(a.Id, b.Id)
	})
	for i := range rs {
		records[i] = rs[i].record
	}
}

func compareDeathDesc(a, b *core.Record) int {
	switch {
	case a.DateOfDeath.IsZero() && b.DateOfDeath.IsZero():
		return 0
	case a.DateOfDeath.IsZero():
		return 1
	case b.DateOfDeath.IsZero():
		return -1
	default:
		return b.DateOfDeath.Compare(a.DateOfDeath)
	}
}

// Paginate filters and sorts records and cuts out the requested page.
func Paginate(sc *core.SearchContext, q CandidateQuery, records []*core.Record) *CandidatePage {
	q = q.Normalized()
	f := NewCandidateFilter(sc, q)

	matched := make([]*core.Record, 0)
	for _, r := range records {
		if f.Match(r) {
			matched = append(matched, r)
		}
	}
	f.Sort(matched)

	page := &CandidatePage{Total: len(matched), Page: q.Page, PageSize: q.PageSize, Records: []*core.Record{}}
	if start := q.Offset(); start < len(matched) {
		end := min(start+q.PageSize, len(matched))
		page.Records = matched[start:end]
	}
	return page
}
