package interpret

import (
	"log/slog"

	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/variants"
)

// Interpreter turns free-text burial queries into search contexts.
// It holds no mutable state and is safe for concurrent use.
type Interpreter struct {
	nicknames *variants.NicknameTable
	logger    *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) error {
		if logger == nil {
			logger = slog.Default()
		}
		in.logger = logger
		return nil
	}
}

// WithNicknames replaces the nickname table used to expand names.
// Default is variants.Nicknames.
func WithNicknames(table *variants.NicknameTable) Option {
	return func(in *Interpreter) error {
		if table == nil {
			return ErrNicknameTableRequired
		}
		in.nicknames = table
		return nil
	}
}

// New creates an Interpreter.
func New(opts ...Option) (*Interpreter, error) {
	in := &Interpreter{
		nicknames: variants.Nicknames,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}
	in.logger = in.logger.With("component", "interpreter")
	return in, nil
}

var defaultInterpreter, _ = New()

// Interpret interprets query with the default Interpreter.
func Interpret(query string) core.SearchContext {
	return defaultInterpreter.Interpret(query)
}

// Interpret extracts names, dates, ages, places and relationships from
// query and classifies its intent. It never fails: input it cannot read
// yields a context with only RawQuery set and intent general.
func (in *Interpreter) Interpret(raw string) (sc core.SearchContext) {
	defer func() {
		if r := recover(); r != nil {
			in.logger.Error("recovered while interpreting query", "query", raw, "panic", r)
			sc = core.SearchContext{RawQuery: raw, Intent: core.IntentGeneral}
		}
	}()

	sc = core.SearchContext{RawQuery: raw, Intent: core.IntentGeneral}
	q := newQuery(raw)
	if q.folded == "" {
		return sc
	}

	if y, ok := yearOnlyQuery(q.folded); ok {
		sc.YearOfDeath = y
		return sc
	}
	if m, ok := monthOnlyQuery(q.folded); ok {
		sc.MonthOfDeath = m
		return sc
	}

	sc.IsFilipinoHint = hasFilipinoKeyword(q.lower)

	sc.PlotNumber = extractPlotNumber(q.folded)
	sc.PlotType = extractPlotType(q.lower)
	sc.CemeteryName = extractCemetery(q.folded)
	if sc.CemeteryName == "" {
		sc.Location = extractLocation(q.folded)
	}
	sc.Relationship = extractRelationship(q.lower)

	name, matcher := extractName(q, sc.CemeteryName, sc.Location)
	in.applyName(&sc, name)

	extractDates(q, &sc)
	extractAges(q, &sc)
	deriveFromAge(&sc)

	sc.Intent = classifyIntent(&sc)

	in.logger.Debug("interpreted query",
		"query", raw,
		"matcher", matcher,
		"intent", sc.Intent,
		"name", sc.FullName)
	return sc
}

// applyName copies the extracted name into sc with its variants and
// phonetic codes.
func (in *Interpreter) applyName(sc *core.SearchContext, name nameParts) {
	if name.empty() {
		return
	}
	sc.FirstName = name.first
	sc.MiddleName = name.middle
	sc.LastName = name.last
	sc.FullName = name.full()
	sc.Reversed = looksReversed(name)

	if sc.FirstName != "" {
		sc.FirstNameVariants = in.nicknames.Expand(sc.FirstName)
		sc.SoundexFirstName = variants.Soundex(sc.FirstName)
	}
	if sc.LastName != "" {
		sc.LastNameVariants = in.nicknames.Expand(sc.LastName)
		sc.SoundexLastName = variants.Soundex(sc.LastName)
	}
}

// deriveFromAge infers a birth year, or a birth-year range, from the age
// and the death year. Explicit years always win over inferred ones.
func deriveFromAge(sc *core.SearchContext) {
	if sc.YearOfDeath == 0 {
		return
	}
	if sc.AgeAtDeath > 0 && sc.YearOfBirth == 0 {
		sc.YearOfBirth = sc.YearOfDeath - sc.AgeAtDeath
		sc.BirthYearFromAge = true
	}
	if sc.AgeRange != nil && sc.DateRange == nil {
		sc.DateRange = &core.YearRange{
			Start: sc.YearOfDeath - sc.AgeRange.Max,
			End:   sc.YearOfDeath - sc.AgeRange.Min,
		}
		sc.DateRangeFromAge = true
	}
}
