package reembed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/hanap/ai"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/storage"
)

// BatchProcessor handles embedding generation for batches of burial records.
type BatchProcessor struct {
	repo     storage.RecordRepository
	embedder ai.Embedder
	retry    backoff
	logger   *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.RecordRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	logger := slog.Default().With("component", "reembed")
	return &BatchProcessor{
		repo:     repo,
		embedder: embedder,
		retry:    newBackoff(maxRetries, retryBaseDelay, logger),
		logger:   logger,
	}
}

// Process embeds the search text of each record and stores the unit-length
// vectors. A record whose embedding cannot be normalized is stored without a
// vector and stays searchable by keyword; Process returns how many of those
// it saw.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.SearchText()
	}

	var embeddings [][]float32
	err := bp.retry.do(ctx, func(ctx context.Context) error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		switch {
		case errors.Is(err, ai.ErrInvalidConfig), errors.Is(err, ai.ErrDimensionMismatch):
			return permanent(err)
		case err != nil:
			return err
		case len(embeddings) != len(records):
			return permanent(fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(records), len(embeddings)))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	unembedded := 0
	for i, record := range records {
		vector, ok := NormalizeVector(embeddings[i])
		if !ok {
			unembedded++
			bp.logger.Warn("unusable embedding, keeping record keyword-only",
				"record", record.Id, "name", record.DisplayName(), "dimensions", len(embeddings[i]))
		}
		record.Vector = vector
	}

	if _, err := bp.repo.UpdateRecords(ctx, records...); err != nil {
		return unembedded, fmt.Errorf("failed to update records: %w", err)
	}
	return unembedded, nil
}
