package search

import "github.com/poiesic/hanap/core"

// SearchMonitor provides hooks to observe ranking.
// Scored is called once per candidate, before thresholding, in input order.
type SearchMonitor interface {
	Start(query string, sc *core.SearchContext, candidates int)
	Fallback(record *core.Record, err error)
	Scored(candidate core.ScoredCandidate)
	Finish(results []core.ScoredCandidate)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ *core.SearchContext, _ int) {}
func (n *noopMonitor) Fallback(_ *core.Record, _ error)             {}
func (n *noopMonitor) Scored(_ core.ScoredCandidate)                {}
func (n *noopMonitor) Finish(_ []core.ScoredCandidate)              {}
