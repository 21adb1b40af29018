package reembed

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/hanap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIterator_Batches(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	seedBurials(t, repo, 10)

	tests := []struct {
		batchSize int
		expected  []int
	}{
		{batchSize: 1, expected: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{batchSize: 3, expected: []int{3, 3, 3, 1}},
		{batchSize: 5, expected: []int{5, 5}},
		{batchSize: 20, expected: []int{10}},
	}

	for _, tt := range tests {
		iter := NewRecordIterator(repo, tt.batchSize)
		var sizes []int
		require.NoError(t, iter.ForEach(ctx, func(records []*core.Record) error {
			sizes = append(sizes, len(records))
			return nil
		}))
		assert.Equal(t, tt.expected, sizes, "batch size %d", tt.batchSize)
	}
}

func TestRecordIterator_Where(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	added := seedBurials(t, repo, 4)

	added[1].Vector = []float32{1, 0}
	_, err := repo.UpdateRecords(ctx, added[1])
	require.NoError(t, err)

	iter := NewRecordIterator(repo, 10).Where(func(r *core.Record) bool { return len(r.Vector) == 0 })
	ids, err := iter.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{added[0].Id, added[2].Id, added[3].Id}, ids)
}

func TestRecordIterator_EmptyDatabase(t *testing.T) {
	repo := setupTestDB(t)

	called := false
	err := NewRecordIterator(repo, 10).ForEach(context.Background(), func([]*core.Record) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestRecordIterator_ErrorStops(t *testing.T) {
	repo := setupTestDB(t)
	seedBurials(t, repo, 4)

	calls := 0
	err := NewRecordIterator(repo, 2).ForEach(context.Background(), func([]*core.Record) error {
		calls++
		return errors.New("stop")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRecordIterator_ContextCancellation(t *testing.T) {
	repo := setupTestDB(t)
	seedBurials(t, repo, 5)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := NewRecordIterator(repo, 2).ForEach(ctx, func([]*core.Record) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRecordIterator_InvalidBatchSize(t *testing.T) {
	repo := setupTestDB(t)
	assert.Equal(t, DefaultBatchSize, NewRecordIterator(repo, 0).batchSize)
	assert.Equal(t, DefaultBatchSize, NewRecordIterator(repo, -5).batchSize)
}
