package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/hanap/ai/mock"
	"github.com/poiesic/hanap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(batchSize int) *Config {
	return &Config{
		BatchSize:      batchSize,
		ReportInterval: batchSize,
		MaxRetries:     3,
		RetryDelay:     10 * time.Millisecond,
	}
}

func TestReembedder_Run(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	seedBurials(t, repo, 10)

	var buf bytes.Buffer
	summary, err := NewReembedder(repo, unnormalized(), testConfig(3), &buf).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 10, summary.Processed)

	require.NoError(t, repo.ForEachRecord(ctx, func(record *core.Record) error {
		assert.InDelta(t, 1.0, magnitude(record.Vector), 0.01, "record %d", record.Id)
		return nil
	}))
	assert.Contains(t, buf.String(), "10/10")
	assert.Contains(t, buf.String(), "Reembedding complete")
	assert.Zero(t, summary.Unembedded)
	assert.NotContains(t, buf.String(), "keyword-only")
}

func TestReembedder_UnusableEmbeddings(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	added := seedBurials(t, repo, 4)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			if text == added[1].SearchText() {
				out[i] = make([]float32, mock.Dimensions)
				continue
			}
			out[i] = mock.DeterministicVector(text, mock.Dimensions)
		}
		return out, nil
	}

	var buf bytes.Buffer
	summary, err := NewReembedder(repo, embedder, testConfig(2), &buf).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Processed)
	assert.Equal(t, 1, summary.Unembedded)
	assert.Contains(t, buf.String(), "1 records had unusable embeddings and remain keyword-only")

	skipped, err := repo.GetRecord(ctx, added[1].Id)
	require.NoError(t, err)
	assert.Empty(t, skipped.Vector)

	t.Run("only missing retries them", func(t *testing.T) {
		config := testConfig(2)
		config.OnlyMissing = true
		summary, err := NewReembedder(repo, mock.NewMockEmbedder(), config, nil).Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Total)
		assert.Zero(t, summary.Unembedded)
	})
}

func TestReembedder_EmptyDatabase(t *testing.T) {
	repo := setupTestDB(t)

	var buf bytes.Buffer
	summary, err := NewReembedder(repo, mock.NewMockEmbedder(), DefaultConfig(), &buf).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Contains(t, buf.String(), "0 records")
}

func TestReembedder_OnlyMissing(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	added := seedBurials(t, repo, 5)

	added[0].Vector = []float32{0, 1}
	_, err := repo.UpdateRecords(ctx, added[0])
	require.NoError(t, err)

	config := testConfig(2)
	config.OnlyMissing = true
	summary, err := NewReembedder(repo, unnormalized(), config, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Processed)

	kept, err := repo.GetRecord(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, kept.Vector)
}

func TestReembedder_DryRun(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	seedBurials(t, repo, 3)

	embedder := mock.NewMockEmbedder()
	config := testConfig(2)
	config.DryRun = true

	var buf bytes.Buffer
	summary, err := NewReembedder(repo, embedder, config, &buf).Run(ctx)
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 3, summary.Total)
	assert.Zero(t, summary.Processed)
	assert.Zero(t, embedder.CallCount())
	assert.Contains(t, buf.String(), "would reembed 3 records")
}

func TestReembedder_ContextCancellation(t *testing.T) {
	repo := setupTestDB(t)
	seedBurials(t, repo, 10)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		result := make([][]float32, len(texts))
		for i := range result {
			result[i] = []float32{1.0, 0.0, 0.0}
		}
		return result, nil
	}

	summary, err := NewReembedder(repo, embedder, testConfig(3), nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 6, summary.Processed)
}

func TestReembedder_EmbeddingError(t *testing.T) {
	repo := setupTestDB(t)
	seedBurials(t, repo, 1)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, errors.New("persistent error")
	}
	config := testConfig(1)
	config.MaxRetries = 2

	_, err := NewReembedder(repo, embedder, config, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persistent error")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Greater(t, config.BatchSize, 0)
	assert.Greater(t, config.ReportInterval, 0)
	assert.Greater(t, config.MaxRetries, 0)
	assert.Greater(t, config.RetryDelay, time.Duration(0))
	assert.False(t, config.DryRun)
	assert.False(t, config.OnlyMissing)
}
