package search

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/poiesic/hanap/ai"
	"github.com/poiesic/hanap/variants"
)

// Document is the candidate side of a similarity comparison.
type Document struct {
	// Text is the record's synthesized search text.
	Text string
	// Vector is the record's stored embedding, if any.
	Vector []float32
}

// Similarity computes a base relevance in [0, 1] between a query and a document.
// Implementations must be safe for concurrent use.
type Similarity interface {
	Similarity(ctx context.Context, query string, doc Document) (float64, error)
}

// KeywordSimilarity scores token overlap with prefix, substring and edit
// distance tolerance. It never fails.
type KeywordSimilarity struct{}

var _ Similarity = KeywordSimilarity{}

func (KeywordSimilarity) Similarity(_ context.Context, query string, doc Document) (float64, error) {
	return KeywordScore(query, doc.Text), nil
}

// fuzzyTokenFloor is the lowest edit similarity counted as a token match.
const fuzzyTokenFloor = 0.6

// KeywordScore returns 1.0 for an exact match, 0.9 when the query is a
// substring of text, and otherwise blends the fraction of query tokens
// matched (60%) with their average match quality (40%).
func KeywordScore(query, text string) float64 {
	q := strings.TrimSpace(variants.Normalize(query))
	t := strings.TrimSpace(variants.Normalize(text))
	if q == "" {
		return 0
	}
	if t == q {
		return 1.0
	}
	if strings.Contains(t, q) {
		return 0.9
	}

	qTokens := queryTokens(q)
	if len(qTokens) == 0 {
		return 0
	}
	tTokens := documentTokens(t)

	var total float64
	matched := 0
	for _, qt := range qTokens {
		best := 0.0
		for _, tt := range tTokens {
			best = math.Max(best, tokenScore(qt, tt))
		}
		if best > 0 {
			matched++
			total += best
		}
	}

	n := float64(len(qTokens))
	return float64(matched)/n*0.6 + total/n*0.4
}

func tokenScore(q, t string) float64 {
	switch {
	case t == q:
		return 1.0
	case strings.HasPrefix(t, q):
		return 0.9
	case strings.HasPrefix(q, t):
		return 0.85
	case strings.Contains(t, q) || strings.Contains(q, t):
		return 0.75
	}
	if sim := variants.Similarity(q, t); sim >= fuzzyTokenFloor {
		return sim * 0.7
	}
	return 0
}

// SemanticSimilarity compares embeddings of the query and the document.
// Cosine similarity is mapped from [-1, 1] onto [0, 1]. A document's stored
// vector is used when present; otherwise its text is embedded.
type SemanticSimilarity struct {
	embedder ai.Embedder
	timeout  time.Duration
}

var _ Similarity = (*SemanticSimilarity)(nil)

// NewSemanticSimilarity creates an embedding-backed similarity. Each call is
// bounded by timeout; a non-positive timeout selects DefaultSimilarityTimeout.
func NewSemanticSimilarity(embedder ai.Embedder, timeout time.Duration) (*SemanticSimilarity, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if timeout <= 0 {
		timeout = DefaultSimilarityTimeout
	}
	return &SemanticSimilarity{embedder: embedder, timeout: timeout}, nil
}

func (s *SemanticSimilarity) Similarity(ctx context.Context, query string, doc Document) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	queryVector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("embedding query: %w", err)
	}
	docVector := doc.Vector
	if len(docVector) == 0 {
		docVector, err = s.embedder.EmbedText(ctx, doc.Text)
		if err != nil {
			return 0, fmt.Errorf("embedding document: %w", err)
		}
	}
	if len(queryVector) == 0 || len(docVector) == 0 {
		return 0, ErrEmptyEmbedding
	}
	if len(queryVector) != len(docVector) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(queryVector), len(docVector))
	}
	return (cosine(queryVector, docVector) + 1) / 2, nil
}

// cosine returns 0 when either vector has zero magnitude.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
