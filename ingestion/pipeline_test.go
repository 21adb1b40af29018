package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/hanap/ai/mock"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/storage"
	"github.com/poiesic/hanap/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) storage.RecordRepository {
	t.Helper()
	backend, err := badger.OpenBackend(t.TempDir(), false)
	require.NoError(t, err)

	repo, err := badger.NewRecordRepository(backend)
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func date(y, m, d int) time.Time {
	t, _ := core.Date(y, m, d)
	return t
}

func burials() []*core.Record {
	return []*core.Record{
		{FirstName: "Juan", LastName: "Dela Cruz", DateOfDeath: date(2001, 7, 3), PlotNumber: "A-12", CemeteryId: 1, CemeteryName: "Manila North Cemetery"},
		{FirstName: "Maria", LastName: "Santos", DateOfDeath: date(2015, 1, 20), PlotNumber: "B-4", CemeteryId: 1, CemeteryName: "Manila North Cemetery"},
		{FirstName: "Pedro", LastName: "Reyes", DateOfBirth: date(1940, 5, 1), DateOfDeath: date(2010, 3, 15), PlotNumber: "C-9", CemeteryId: 1, CemeteryName: "Manila North Cemetery"},
	}
}

func TestEmbeddingProcessor_Process(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	added, err := repo.AddRecords(ctx, burials()...)
	require.NoError(t, err)

	var texts []string
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, in []string) ([][]float32, error) {
		texts = in
		out := make([][]float32, len(in))
		for i := range in {
			out[i] = []float32{float32(i + 1), 0, 0}
		}
		return out, nil
	}

	ep, err := newEmbeddingProcessor(repo, embedder, nil)
	require.NoError(t, err)

	require.NoError(t, ep.process(ctx, added[2].Id, added[0].Id))

	assert.Equal(t, []string{
		"juan dela cruz A-12 Manila North Cemetery 2001",
		"pedro reyes C-9 Manila North Cemetery 2010 1940",
	}, texts)

	first, err := repo.GetRecord(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, first.Vector)

	untouched, err := repo.GetRecord(ctx, added[1].Id)
	require.NoError(t, err)
	assert.Empty(t, untouched.Vector)
}

func TestEmbeddingProcessor_Errors(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	added, err := repo.AddRecords(ctx, burials()[0])
	require.NoError(t, err)

	t.Run("embedder error", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
			return nil, errors.New("embedder error")
		}
		ep, err := newEmbeddingProcessor(repo, embedder, nil)
		require.NoError(t, err)
		assert.Error(t, ep.process(ctx, added[0].Id))
	})

	t.Run("result count mismatch", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
			return [][]float32{}, nil
		}
		ep, err := newEmbeddingProcessor(repo, embedder, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, ep.process(ctx, added[0].Id), ErrEmbeddingMismatch)
	})

	t.Run("requires dependencies", func(t *testing.T) {
		_, err := newEmbeddingProcessor(nil, mock.NewMockEmbedder(), nil)
		assert.ErrorIs(t, err, ErrRepositoryRequired)
		_, err = newEmbeddingProcessor(repo, nil, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}

func TestNewPipeline(t *testing.T) {
	repo := setupTestRepository(t)

	t.Run("valid", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, mock.NewMockProvider())
		require.NoError(t, err)
		defer pipeline.Release()
		assert.NotNil(t, pipeline.embeddingProc)
	})

	t.Run("without provider", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, nil)
		require.NoError(t, err)
		defer pipeline.Release()
		assert.Nil(t, pipeline.embeddingProc)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})
}

func TestPipeline_WithOptions(t *testing.T) {
	repo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	t.Run("with pool size", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider, WithPoolSize(4))
		require.NoError(t, err)
		defer pipeline.Release()
		assert.Equal(t, 4, pipeline.embeddingPool.Cap())
	})

	t.Run("with pool size zero defaults to 1", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider, WithPoolSize(0))
		require.NoError(t, err)
		defer pipeline.Release()
		assert.Equal(t, 1, pipeline.embeddingPool.Cap())
	})

	t.Run("with batch size", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider, WithBatchSize(5))
		require.NoError(t, err)
		defer pipeline.Release()
		assert.Equal(t, 5, pipeline.batchSize)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider, WithLogger(nil))
		require.NoError(t, err)
		defer pipeline.Release()
		assert.NotNil(t, pipeline.logger)
	})

	t.Run("with multiple options", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider, WithPoolSize(2), WithBatchSize(8), WithLogger(slog.Default()))
		require.NoError(t, err)
		defer pipeline.Release()
		assert.Equal(t, 2, pipeline.embeddingPool.Cap())
		assert.Equal(t, 8, pipeline.batchSize)
	})
}

func TestPipeline_Ingest(t *testing.T) {
	repo := setupTestRepository(t)
	provider := mock.NewMockProvider()
	ctx := context.Background()

	pipeline, err := NewPipeline(repo, provider, WithPoolSize(2), WithBatchSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	result, err := pipeline.Ingest(ctx, burials()...)
	require.NoError(t, err)
	require.Len(t, result.Added, 3)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Rejected)

	pipeline.Wait()

	// Three records in batches of two.
	assert.Equal(t, 2, provider.GetMockEmbedder().CallCount())
	for _, added := range result.Added {
		stored, err := repo.GetRecord(ctx, added.Id)
		require.NoError(t, err)
		assert.Equal(t, mock.DeterministicVector(stored.SearchText(), mock.Dimensions), stored.Vector)
	}

	t.Run("already stored records are skipped", func(t *testing.T) {
		result, err := pipeline.Ingest(ctx, burials()...)
		require.NoError(t, err)
		assert.Empty(t, result.Added)
		assert.Equal(t, 3, result.Skipped)

		count, err := repo.CountRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("repeats within a batch are skipped", func(t *testing.T) {
		rec := &core.Record{FirstName: "Ana", LastName: "Lim", PlotNumber: "D-1"}
		again := *rec
		result, err := pipeline.Ingest(ctx, rec, &again)
		require.NoError(t, err)
		assert.Len(t, result.Added, 1)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("invalid records are rejected", func(t *testing.T) {
		result, err := pipeline.Ingest(ctx,
			&core.Record{PlotNumber: "E-1"},
			&core.Record{FirstName: "Rosa", LastName: "Cruz", DateOfBirth: date(2000, 1, 1), DateOfDeath: date(1990, 1, 1)},
			&core.Record{FirstName: "Luz", LastName: "Garcia"},
		)
		require.NoError(t, err)
		assert.Len(t, result.Added, 1)
		require.Len(t, result.Rejected, 2)
		assert.Equal(t, 0, result.Rejected[0].Index)
		assert.ErrorIs(t, result.Rejected[0].Err, core.ErrMissingName)
		assert.Equal(t, 1, result.Rejected[1].Index)
		assert.ErrorIs(t, result.Rejected[1].Err, core.ErrDeathBeforeBirth)
	})

	t.Run("no records", func(t *testing.T) {
		result, err := pipeline.Ingest(ctx)
		require.NoError(t, err)
		assert.Empty(t, result.Added)
	})
}

func TestPipeline_EmbeddingFailureKeepsRecords(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	var calls atomic.Int32
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		calls.Add(1)
		return nil, errors.New("embedding service down")
	}

	pipeline, err := NewPipeline(repo, mock.NewMockProviderWithEmbedder(embedder))
	require.NoError(t, err)
	defer pipeline.Release()

	result, err := pipeline.Ingest(ctx, burials()...)
	require.NoError(t, err)
	pipeline.Wait()

	assert.Equal(t, int32(1), calls.Load())
	stored, err := repo.GetRecord(ctx, result.Added[0].Id)
	require.NoError(t, err)
	assert.Empty(t, stored.Vector)
}

func TestPipeline_Release(t *testing.T) {
	repo := setupTestRepository(t)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)

	pipeline.Release()
	assert.True(t, pipeline.embeddingPool.IsClosed())
}
