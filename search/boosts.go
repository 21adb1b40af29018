package search

import (
	"strings"
	"time"

	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/variants"
)

// nameBoosts are the additive rewards for one name part. Only the strongest
// of exact, prefix, contains and edit distance applies; Soundex adds on top.
type nameBoosts struct {
	exact, prefix, contains float64
	oneEdit, twoEdits       float64
	soundex                 float64
}

var (
	firstNameBoosts = nameBoosts{exact: 0.7, prefix: 0.4, contains: 0.25, oneEdit: 0.3, twoEdits: 0.18, soundex: 0.18}
	lastNameBoosts  = nameBoosts{exact: 0.8, prefix: 0.45, contains: 0.3, oneEdit: 0.35, twoEdits: 0.2, soundex: 0.22}
)

func (b nameBoosts) score(candidate, wanted, wantedSoundex string) float64 {
	var score float64
	switch {
	case candidate == wanted:
		score += b.exact
	case strings.HasPrefix(candidate, wanted):
		score += b.prefix
	case strings.Contains(candidate, wanted):
		score += b.contains
	default:
		switch variants.Distance(candidate, wanted) {
		case 0, 1:
			score += b.oneEdit
		case 2:
			score += b.twoEdits
		}
	}
	if wantedSoundex != "" && variants.Soundex(candidate) == wantedSoundex {
		score += b.soundex
	}
	return score
}

// boost sums every field-specific reward for r under sc.
func boost(sc *core.SearchContext, r *core.Record) float64 {
	first := variants.Normalize(r.FirstName)
	last := variants.Normalize(r.LastName)

	var score float64
	if sc.FullName != "" && strings.TrimSpace(first+" "+last) == sc.FullName {
		score += 1.0
	}
	if sc.FirstName != "" {
		score += firstNameBoosts.score(first, strings.ToLower(sc.FirstName), sc.SoundexFirstName)
	}
	if sc.LastName != "" {
		score += lastNameBoosts.score(last, strings.ToLower(sc.LastName), sc.SoundexLastName)
	}

	score += placeBoost(sc, r)
	score += deathBoost(sc, r)
	score += birthBoost(sc, r)
	score += ageBoost(sc, r)

	if sc.Intent == core.IntentFindFamily && sc.LastName != "" && strings.Contains(last, strings.ToLower(sc.LastName)) {
		score += 0.3
	}
	return score
}

func placeBoost(sc *core.SearchContext, r *core.Record) float64 {
	var score float64
	if sc.PlotNumber != "" && r.PlotNumber != "" {
		plot := strings.ToLower(r.PlotNumber)
		wanted := strings.ToLower(sc.PlotNumber)
		if plot == wanted {
			score += 1.5
		} else if strings.Contains(plot, wanted) || strings.Contains(wanted, plot) {
			score += 0.8
		}
	}
	if sc.CemeteryName != "" && r.CemeteryName != "" {
		cemetery := strings.ToLower(r.CemeteryName)
		wanted := strings.ToLower(sc.CemeteryName)
		if strings.Contains(cemetery, wanted) || strings.Contains(wanted, cemetery) {
			score += 0.6
		}
	}
	if sc.PlotType != "" && strings.ToLower(r.PlotType) == sc.PlotType {
		score += 0.4
	}
	return score
}

func deathBoost(sc *core.SearchContext, r *core.Record) float64 {
	if r.DateOfDeath.IsZero() {
		return 0
	}
	death := r.DateOfDeath
	var score float64
	if sc.SpecificDate != nil && sameDay(death, *sc.SpecificDate) {
		score += 1.2
	}
	if sc.YearOfDeath != 0 && death.Year() == sc.YearOfDeath {
		score += 0.6
	}
	if sc.DateRange != nil && !sc.DateRangeFromAge && sc.DateRange.Contains(death.Year()) {
		score += 0.4
	}
	if sc.MonthOfDeath != 0 && int(death.Month()) == sc.MonthOfDeath {
		score += 0.5
	}
	if sc.MonthRange != nil && sc.MonthRange.Contains(int(death.Month())) {
		score += 0.35
	}
	if sc.DayOfMonth != 0 && death.Day() == sc.DayOfMonth {
		score += 0.3
	}
	return score
}

func birthBoost(sc *core.SearchContext, r *core.Record) float64 {
	if r.DateOfBirth.IsZero() {
		return 0
	}
	birth := r.DateOfBirth
	var score float64
	// An age-implied range bounds the birth year, not the death year.
	if sc.DateRange != nil && sc.DateRangeFromAge && sc.DateRange.Contains(birth.Year()) {
		score += 0.4
	}
	if sc.YearOfBirth != 0 && birth.Year() == sc.YearOfBirth {
		score += 0.35
	}
	if sc.MonthOfBirth != 0 && int(birth.Month()) == sc.MonthOfBirth {
		score += 0.3
	}
	return score
}

func ageBoost(sc *core.SearchContext, r *core.Record) float64 {
	age, ok := r.AgeAtDeath()
	if !ok {
		return 0
	}
	var score float64
	if sc.AgeAtDeath != 0 {
		switch diff := abs(age - sc.AgeAtDeath); {
		case diff == 0:
			score += 0.5
		case diff <= 2:
			score += 0.25
		}
	}
	if sc.AgeRange != nil && sc.AgeRange.Contains(age) {
		score += 0.4
	}
	return score
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
