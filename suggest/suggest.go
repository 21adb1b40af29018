// Package suggest produces "did you mean" names for queries that matched
// nothing, using bounded edit distance against the stored names.
package suggest

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/variants"
)

const (
	// MinNameLength is the shortest search name worth suggesting for.
	MinNameLength = 3
	// MaxPartDistance bounds the edit distance to a first or last name.
	MaxPartDistance = 3
	// MaxFullDistance bounds the edit distance to "first last".
	MaxFullDistance = 4
	// DefaultLimit is the number of suggestions returned.
	DefaultLimit = 5
)

// ErrNameSourceRequired is returned when New is given a nil NameSource.
var ErrNameSourceRequired = errors.New("name source required")

// NameSource supplies the corpus of names suggestions are drawn from.
type NameSource interface {
	Names(ctx context.Context) ([]core.PersonName, error)
}

// Generator produces suggestions. It is safe for concurrent use.
type Generator struct {
	source NameSource
	limit  int
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// WithLimit sets the maximum number of suggestions.
// Non-positive values keep DefaultLimit.
func WithLimit(limit int) Option {
	return func(g *Generator) error {
		if limit > 0 {
			g.limit = limit
		}
		return nil
	}
}

// New creates a Generator drawing names from source.
func New(source NameSource, opts ...Option) (*Generator, error) {
	if source == nil {
		return nil, ErrNameSourceRequired
	}
	g := &Generator{
		source: source,
		limit:  DefaultLimit,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	g.logger = g.logger.With("component", "suggest")
	return g, nil
}

type match struct {
	name     string
	distance int
}

// Suggest returns up to the configured limit of "first last" names close to
// the query's name, nearest first. It is meant for queries that produced no
// results and returns nothing for date-only queries, for search names shorter
// than MinNameLength, or when the source fails.
func (g *Generator) Suggest(ctx context.Context, sc *core.SearchContext) []string {
	suggestions := []string{}
	if !sc.HasName() && sc.HasDateConstraint() {
		return suggestions
	}
	searchName := SearchName(sc)
	if len([]rune(searchName)) < MinNameLength {
		return suggestions
	}

	names, err := g.source.Names(ctx)
	if err != nil {
		g.logger.Warn("name source failed, skipping suggestions", "err", err)
		return suggestions
	}

	wanted := variants.Normalize(searchName)
	matches := make([]match, 0)
	for _, n := range names {
		first := variants.Normalize(n.FirstName)
		last := variants.Normalize(n.LastName)
		dFirst := variants.Distance(first, wanted)
		dLast := variants.Distance(last, wanted)
		dFull := variants.Distance(strings.TrimSpace(first+" "+last), wanted)
		if dFirst > MaxPartDistance && dLast > MaxPartDistance && dFull > MaxFullDistance {
			continue
		}
		matches = append(matches, match{name: n.Full(), distance: min(dFirst, dLast, dFull)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	seen := make(map[string]struct{}, g.limit)
	for _, m := range matches {
		if _, dup := seen[m.name]; dup || m.name == "" {
			continue
		}
		seen[m.name] = struct{}{}
		suggestions = append(suggestions, m.name)
		if len(suggestions) == g.limit {
			break
		}
	}
	g.logger.Debug("generated suggestions", "searchName", searchName, "count", len(suggestions))
	return suggestions
}

// SearchName is the text suggestions are measured against: the first name,
// else the last name, else the trimmed raw query.
func SearchName(sc *core.SearchContext) string {
	switch {
	case sc.FirstName != "":
		return sc.FirstName
	case sc.LastName != "":
		return sc.LastName
	default:
		return strings.TrimSpace(sc.RawQuery)
	}
}
