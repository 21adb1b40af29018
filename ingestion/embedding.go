package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/hanap/ai"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/storage"
)

// embeddingProcessor stores an embedding of each record's search text.
type embeddingProcessor struct {
	repository storage.RecordRepository
	embedder   ai.Embedder
	logger     *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(repository storage.RecordRepository, embedder ai.Embedder, logger *slog.Logger) (*embeddingProcessor, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		repository: repository,
		embedder:   embedder,
		logger:     logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified records.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Debug("processing records for embeddings", "records", len(ids))

	slices.Sort(ids)
	records, err := ep.repository.GetRecords(ctx, ids...)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.SearchText()
	}

	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(embeddings) != len(records) {
		return fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingMismatch, len(records), len(embeddings))
	}

	for i := range embeddings {
		records[i].Vector = embeddings[i]
	}

	_, err = ep.repository.UpdateRecords(ctx, records...)
	return err
}
