package hanap

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/interpret"
	"github.com/poiesic/hanap/search"
	"github.com/poiesic/hanap/suggest"
)

type rankOptions struct {
	similarity      search.Similarity
	names           suggest.NameSource
	suggestionLimit int
	logger          *slog.Logger
}

// RankOption configures InterpretAndRank.
type RankOption func(*rankOptions)

// WithRankSimilarity replaces keyword similarity as the base score.
func WithRankSimilarity(similarity search.Similarity) RankOption {
	return func(o *rankOptions) {
		o.similarity = similarity
	}
}

// WithNameSource draws suggestions from source instead of the candidates.
func WithNameSource(source suggest.NameSource) RankOption {
	return func(o *rankOptions) {
		o.names = source
	}
}

// WithSuggestionLimit caps the number of suggestions.
// Default is suggest.DefaultLimit.
func WithSuggestionLimit(limit int) RankOption {
	return func(o *rankOptions) {
		o.suggestionLimit = limit
	}
}

// WithRankLogger sets a custom logger.
// Default is slog.Default().
func WithRankLogger(logger *slog.Logger) RankOption {
	return func(o *rankOptions) {
		o.logger = logger
	}
}

// InterpretAndRank interprets query, ranks candidates against it and, when
// nothing survives ranking, suggests near-miss names. Candidates should be the
// whole coarse page from the store, not a truncated slice. It never fails: an
// empty query yields an empty response.
func InterpretAndRank(ctx context.Context, query string, candidates []*core.Record, opts ...RankOption) *core.Response {
	o := &rankOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.names == nil {
		o.names = candidateNames(candidates)
	}

	resp := &core.Response{
		Context:     interpret.Interpret(query),
		Results:     []core.ScoredCandidate{},
		Suggestions: []string{},
	}
	if strings.TrimSpace(query) == "" {
		return resp
	}

	resp.Results = rank(ctx, query, &resp.Context, candidates, o)
	if len(resp.Results) == 0 {
		resp.Suggestions = suggestNames(ctx, &resp.Context, o)
	}
	return resp
}

func rank(ctx context.Context, query string, sc *core.SearchContext, candidates []*core.Record, o *rankOptions) []core.ScoredCandidate {
	scorerOpts := []search.Option{search.WithLogger(o.logger)}
	if o.similarity != nil {
		scorerOpts = append(scorerOpts, search.WithSimilarity(o.similarity))
	}
	scorer, err := search.NewScorer(scorerOpts...)
	if err != nil {
		o.logger.Warn("falling back to keyword scoring", "err", err)
		scorer, _ = search.NewScorer(search.WithLogger(o.logger))
	}
	defer scorer.Close()
	return scorer.Rank(ctx, query, sc, candidates)
}

func suggestNames(ctx context.Context, sc *core.SearchContext, o *rankOptions) []string {
	generator, err := suggest.New(o.names, suggest.WithLimit(o.suggestionLimit), suggest.WithLogger(o.logger))
	if err != nil {
		o.logger.Warn("suggestions unavailable", "err", err)
		return []string{}
	}
	return generator.Suggest(ctx, sc)
}

// candidateNames serves the candidates themselves as the suggestion corpus.
type candidateNames []*core.Record

func (c candidateNames) Names(context.Context) ([]core.PersonName, error) {
	names := make([]core.PersonName, 0, len(c))
	for _, r := range c {
		if r == nil {
			continue
		}
		names = append(names, core.PersonName{FirstName: r.FirstName, MiddleName: r.MiddleName, LastName: r.LastName})
	}
	return names, nil
}
