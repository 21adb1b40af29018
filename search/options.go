package search

import (
	"log/slog"
	"time"

	"github.com/poiesic/hanap/core"
)

const (
	// DefaultThreshold is the minimum score kept for non-plot searches.
	DefaultThreshold = 0.1
	// PlotThreshold is the minimum score kept for plot searches.
	PlotThreshold = 0.3
	// MaxResults caps the ranked result list.
	MaxResults = 50
	// PlotIntentMultiplier scales scores of plot searches with a plot number.
	PlotIntentMultiplier = 1.2

	// DefaultSimilarityTimeout bounds a single semantic similarity call.
	DefaultSimilarityTimeout = 2 * time.Second
	// DefaultWorkers is the size of the pool used for non-local similarity.
	DefaultWorkers = 8
)

// Threshold returns the inclusive minimum score for an intent.
func Threshold(intent core.Intent) float64 {
	if intent == core.IntentFindPlot {
		return PlotThreshold
	}
	return DefaultThreshold
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSimilarity sets the base similarity strategy.
// Default is KeywordSimilarity.
func WithSimilarity(similarity Similarity) Option {
	return func(s *Scorer) error {
		if similarity == nil {
			return ErrSimilarityRequired
		}
		s.similarity = similarity
		return nil
	}
}

// WithWorkers sets how many candidates are scored concurrently when the
// similarity strategy is not local.
// Default is DefaultWorkers.
func WithWorkers(workers int) Option {
	return func(s *Scorer) error {
		if workers < 1 {
			return ErrInvalidWorkers
		}
		s.workers = workers
		return nil
	}
}

// WithMonitor sets a monitor that observes every Rank call.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Scorer) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}
