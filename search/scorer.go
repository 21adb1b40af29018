package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/hanap/core"
)

// Scorer ranks candidate records against an interpreted query.
// It is safe for concurrent use.
type Scorer struct {
	similarity Similarity
	workers    int
	pool       *ants.Pool
	monitor    SearchMonitor
	logger     *slog.Logger
}

// NewScorer creates a scorer. With the default KeywordSimilarity candidates
// are scored inline; any other strategy is run on a worker pool that must be
// released with Close.
func NewScorer(opts ...Option) (*Scorer, error) {
	s := &Scorer{
		similarity: KeywordSimilarity{},
		workers:    DefaultWorkers,
		monitor:    &noopMonitor{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "scorer")

	if _, local := s.similarity.(KeywordSimilarity); !local {
		pool, err := ants.NewPool(s.workers)
		if err != nil {
			return nil, err
		}
		s.pool = pool
	}
	return s, nil
}

// Close releases the worker pool, if any.
func (s *Scorer) Close() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Rank scores every candidate, sorts them by descending score (ties keep
// input order), drops those under the intent's threshold and caps the list
// at MaxResults. It never fails: similarity errors fall back to keyword
// scoring for the affected candidate.
func (s *Scorer) Rank(ctx context.Context, query string, sc *core.SearchContext, candidates []*core.Record) []core.ScoredCandidate {
	s.monitor.Start(query, sc, len(candidates))
	results := []core.ScoredCandidate{}
	if len(candidates) == 0 {
		s.monitor.Finish(results)
		return results
	}

	q := strings.ToLower(query)
	bases := s.baseScores(ctx, q, candidates)

	scaled := sc.Intent == core.IntentFindPlot && sc.PlotNumber != ""
	scored := make([]core.ScoredCandidate, 0, len(candidates))
	for i, record := range candidates {
		if record == nil {
			continue
		}
		score := bases[i] + boost(sc, record)
		if scaled {
			score *= PlotIntentMultiplier
		}
		candidate := core.ScoredCandidate{Record: record, Score: score, Context: sc}
		s.monitor.Scored(candidate)
		scored = append(scored, candidate)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	threshold := Threshold(sc.Intent)
	for _, candidate := range scored {
		if candidate.Score < threshold {
			// sorted, so nothing after this passes either
			break
		}
		results = append(results, candidate)
		if len(results) == MaxResults {
			break
		}
	}

	s.logger.Debug("ranked candidates",
		"query", query,
		"intent", sc.Intent,
		"candidates", len(candidates),
		"results", len(results))
	s.monitor.Finish(results)
	return results
}

// baseScores computes base similarity for every candidate, index-aligned
// with candidates. Nil candidates score 0.
func (s *Scorer) baseScores(ctx context.Context, query string, candidates []*core.Record) []float64 {
	bases := make([]float64, len(candidates))
	failures := make([]error, len(candidates))

	if s.pool == nil {
		for i, record := range candidates {
			if record != nil {
				bases[i], failures[i] = s.base(ctx, query, record)
			}
		}
	} else {
		var wg sync.WaitGroup
		for i, record := range candidates {
			if record == nil {
				continue
			}
			wg.Add(1)
			task := func() {
				defer wg.Done()
				bases[i], failures[i] = s.base(ctx, query, record)
			}
			if err := s.pool.Submit(task); err != nil {
				s.logger.Warn("pool rejected similarity task, scoring inline", "err", err)
				task()
			}
		}
		wg.Wait()
	}

	for i, err := range failures {
		if err != nil {
			s.logger.Debug("similarity failed, fell back to keywords", "recordId", candidates[i].Id, "err", err)
			s.monitor.Fallback(candidates[i], err)
		}
	}
	return bases
}

// base returns the strategy's similarity, or the keyword score together
// with the strategy's error when it fails.
func (s *Scorer) base(ctx context.Context, query string, record *core.Record) (float64, error) {
	doc := Document{Text: record.SearchText(), Vector: record.Vector}
	score, err := s.similarity.Similarity(ctx, query, doc)
	if err != nil {
		return KeywordScore(query, doc.Text), err
	}
	return score, nil
}
