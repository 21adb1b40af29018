package core

import "time"

// Intent is the coarse category of what a query is looking for.
type Intent string

const (
	IntentFindPerson   Intent = "find_person"
	IntentFindLocation Intent = "find_location"
	IntentFindPlot     Intent = "find_plot"
	IntentFindFamily   Intent = "find_family"
	IntentGeneral      Intent = "general"
)

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// MonthRange is an inclusive range of months, 1-12, with Start <= End.
type MonthRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether month falls inside the range.
func (r MonthRange) Contains(month int) bool {
	return month >= r.Start && month <= r.End
}

// AgeRange is an inclusive range of ages at death.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether age falls inside the range.
func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

// SearchContext is the structured interpretation of one free-text query.
// It is produced once per query and must not be modified afterwards.
// Integer fields use 0 for "absent"; pointer fields use nil.
type SearchContext struct {
	RawQuery string `json:"rawQuery"`

	FirstName         string   `json:"firstName,omitempty"`
	MiddleName        string   `json:"middleName,omitempty"`
	LastName          string   `json:"lastName,omitempty"`
	FullName          string   `json:"fullName,omitempty"`
	FirstNameVariants []string `json:"firstNameVariants,omitempty"`
	LastNameVariants  []string `json:"lastNameVariants,omitempty"`
	SoundexFirstName  string   `json:"soundexFirstName,omitempty"`
	SoundexLastName   string   `json:"soundexLastName,omitempty"`
	// Reversed marks a first/last pair that may have been typed surname-first.
	Reversed bool `json:"reversed,omitempty"`

	YearOfDeath  int         `json:"yearOfDeath,omitempty"`
	YearOfBirth  int         `json:"yearOfBirth,omitempty"`
	DateRange    *YearRange  `json:"dateRange,omitempty"`
	MonthOfDeath int         `json:"monthOfDeath,omitempty"`
	MonthOfBirth int         `json:"monthOfBirth,omitempty"`
	MonthRange   *MonthRange `json:"monthRange,omitempty"`
	DayOfMonth   int         `json:"dayOfMonth,omitempty"`
	SpecificDate *time.Time  `json:"specificDate,omitempty"`
	AgeAtDeath   int         `json:"ageAtDeath,omitempty"`
	AgeRange     *AgeRange   `json:"ageRange,omitempty"`

	// BirthYearFromAge marks YearOfBirth as inferred from YearOfDeath - AgeAtDeath.
	// Filters widen an inferred birth year by BirthYearTolerance.
	BirthYearFromAge bool `json:"birthYearFromAge,omitempty"`
	// DateRangeFromAge marks DateRange as a birth-year range implied by AgeRange.
	DateRangeFromAge bool `json:"dateRangeFromAge,omitempty"`

	PlotNumber   string `json:"plotNumber,omitempty"`
	PlotType     string `json:"plotType,omitempty"`
	CemeteryName string `json:"cemeteryName,omitempty"`
	Location     string `json:"location,omitempty"`
	Relationship string `json:"relationship,omitempty"`

	IsFilipinoHint bool   `json:"isFilipinoHint"`
	Intent         Intent `json:"intentType"`
}

// BirthYearTolerance is the +/- band applied to an age-derived birth year.
const BirthYearTolerance = 2

// HasName reports whether any name part was extracted.
func (sc *SearchContext) HasName() bool {
	return sc.FirstName != "" || sc.LastName != ""
}

// HasDateConstraint reports whether any date, month or age constraint was extracted.
func (sc *SearchContext) HasDateConstraint() bool {
	return sc.YearOfDeath != 0 || sc.YearOfBirth != 0 || sc.DateRange != nil ||
		sc.MonthOfDeath != 0 || sc.MonthOfBirth != 0 || sc.MonthRange != nil ||
		sc.DayOfMonth != 0 || sc.SpecificDate != nil
}

// ScoredCandidate is a candidate record annotated with its relevance score
// for one query. It is never modified after scoring.
type ScoredCandidate struct {
	Record  *Record        `json:"record"`
	Score   float64        `json:"score"`
	Context *SearchContext `json:"-"`
}

// Response is the result of interpreting and ranking one query.
type Response struct {
	Context     SearchContext     `json:"context"`
	Results     []ScoredCandidate `json:"results"`
	Suggestions []string          `json:"suggestions"`
}
