package openai

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/hanap/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// documentBatchSize bounds how many burial texts go into one request.
const documentBatchSize = 64

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// The first vector it returns fixes the dimension for its lifetime, so a
// model swap cannot silently mix incomparable vectors into one index.
type Embedder struct {
	embedder   embeddings.Embedder
	dimensions atomic.Int64
	logger     *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.Token),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client,
		embeddings.WithStripNewLines(true),
		embeddings.WithBatchSize(documentBatchSize),
	)
	if err != nil {
		return nil, err
	}
	return wrapEmbedder(embedder, config.EmbeddingModel), nil
}

func wrapEmbedder(embedder embeddings.Embedder, model string) *Embedder {
	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-embedder", "model", model),
	}
}

// NewEmbedder creates a new embedder using the provided configuration.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// Dimensions reports the vector length seen so far, or 0 before the first
// successful call.
func (e *Embedder) Dimensions() int {
	return int(e.dimensions.Load())
}

// EmbedText embeds a search query.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		e.logger.Debug("query embedding failed", "err", err)
		return nil, err
	}
	if err := e.checkDimensions(vector); err != nil {
		return nil, err
	}
	return vector, nil
}

// EmbedTexts embeds burial search texts, one vector per text.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("embedding burial texts", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("burial embedding failed", "count", len(texts), "err", err)
		return nil, err
	}
	for _, vector := range vectors {
		if err := e.checkDimensions(vector); err != nil {
			return nil, err
		}
	}
	return vectors, nil
}

// checkDimensions locks in the first non-empty vector length and rejects
// any later vector of another length. Empty vectors are left to callers.
func (e *Embedder) checkDimensions(vector []float32) error {
	n := int64(len(vector))
	if n == 0 {
		return nil
	}
	if e.dimensions.CompareAndSwap(0, n) {
		e.logger.Debug("embedding dimensions detected", "dimensions", n)
		return nil
	}
	if want := e.dimensions.Load(); want != n {
		e.logger.Error("embedding dimensions changed", "want", want, "got", n)
		return fmt.Errorf("%w: want %d, got %d", ai.ErrDimensionMismatch, want, n)
	}
	return nil
}
