package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y, m, d int) time.Time {
	t, _ := core.Date(y, m, d)
	return t
}

func newTestRepo(t *testing.T) storage.RecordRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func sampleRecords() []*core.Record {
	return []*core.Record{
		{FirstName: "Juan", MiddleName: "Santos", LastName: "Dela Cruz", DateOfBirth: day(1931, 2, 14), DateOfDeath: day(2001, 7, 3), PlotNumber: "A-12", CemeteryId: 1, CemeteryName: "Manila North Cemetery"},
		{FirstName: "Maria", LastName: "Santos", DateOfDeath: day(2015, 1, 20), PlotNumber: "B-4", CemeteryId: 1, CemeteryName: "Manila North Cemetery"},
		{FirstName: "José", LastName: "Rizal", DateOfBirth: day(1961, 6, 19), DateOfDeath: day(2020, 12, 30), PlotNumber: "C-1", CemeteryId: 2, CemeteryName: "Paco Park"},
		{FirstName: "Juana", LastName: "Reyes", PlotNumber: "A-13", CemeteryId: 1, CemeteryName: "Manila North Cemetery"},
	}
}

func TestRecordRepository_AddAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddRecords(ctx, sampleRecords()...)
	require.NoError(t, err)
	require.Len(t, added, 4)

	seen := make(map[core.ID]bool)
	for _, r := range added {
		assert.NotZero(t, r.Id)
		assert.False(t, seen[r.Id], "ids must be unique")
		seen[r.Id] = true
		assert.False(t, r.InsertedAt.IsZero())
		assert.Equal(t, r.InsertedAt, r.UpdatedAt)
	}

	got, err := repo.GetRecord(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Juan", got.FirstName)
	assert.Equal(t, "Santos", got.MiddleName)
	assert.Equal(t, "Dela Cruz", got.LastName)
	assert.True(t, got.DateOfDeath.Equal(day(2001, 7, 3)))
	assert.Equal(t, "A-12", got.PlotNumber)

	t.Run("timestamps read back as returned", func(t *testing.T) {
		for _, r := range added {
			stored, err := repo.GetRecord(ctx, r.Id)
			require.NoError(t, err)
			assert.True(t, stored.InsertedAt.Equal(r.InsertedAt), "inserted_at %v != %v", stored.InsertedAt, r.InsertedAt)
			assert.True(t, stored.UpdatedAt.Equal(r.UpdatedAt), "updated_at %v != %v", stored.UpdatedAt, r.UpdatedAt)
		}
	})

	many, err := repo.GetRecords(ctx, added[1].Id, 9999, added[2].Id)
	require.NoError(t, err)
	require.Len(t, many, 2)
	assert.Equal(t, "Maria", many[0].FirstName)
	assert.Equal(t, "José", many[1].FirstName)

	_, err = repo.GetRecord(ctx, 9999)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	count, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestRecordRepository_Fingerprints(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := sampleRecords()[0]
	_, err := repo.AddRecords(ctx, rec)
	require.NoError(t, err)

	has, err := repo.HasFingerprint(ctx, rec.Fingerprint())
	require.NoError(t, err)
	assert.True(t, has)

	_, err = repo.AddRecords(ctx, sampleRecords()[0])
	assert.ErrorIs(t, err, storage.ErrDuplicateRecord)

	t.Run("duplicate within a batch rejects the batch", func(t *testing.T) {
		a, b := sampleRecords()[1], sampleRecords()[1]
		_, err := repo.AddRecords(ctx, a, b)
		assert.ErrorIs(t, err, storage.ErrDuplicateRecord)

		count, err := repo.CountRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestRecordRepository_Update(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddRecords(ctx, sampleRecords()...)
	require.NoError(t, err)

	rec := *added[1]
	oldFp := rec.Fingerprint()
	rec.PlotNumber = "B-5"
	rec.Vector = []float32{0.5, -0.5}
	_, err = repo.UpdateRecords(ctx, &rec)
	require.NoError(t, err)

	got, err := repo.GetRecord(ctx, rec.Id)
	require.NoError(t, err)
	assert.Equal(t, "B-5", got.PlotNumber)
	assert.Equal(t, []float32{0.5, -0.5}, got.Vector)
	assert.True(t, got.InsertedAt.Equal(added[1].InsertedAt))
	assert.True(t, got.UpdatedAt.Equal(rec.UpdatedAt))
	assert.False(t, got.UpdatedAt.Before(got.InsertedAt))

	has, err := repo.HasFingerprint(ctx, oldFp)
	require.NoError(t, err)
	assert.False(t, has)
	has, err = repo.HasFingerprint(ctx, rec.Fingerprint())
	require.NoError(t, err)
	assert.True(t, has)

	t.Run("missing record", func(t *testing.T) {
		_, err := repo.UpdateRecords(ctx, &core.Record{Id: 9999, FirstName: "Nobody"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("collides with another record", func(t *testing.T) {
		clash := *added[3]
		clash.FirstName, clash.LastName = "Juan", "Dela Cruz"
		clash.MiddleName = "Santos"
		clash.DateOfBirth, clash.DateOfDeath = added[0].DateOfBirth, added[0].DateOfDeath
		clash.PlotNumber, clash.CemeteryName = added[0].PlotNumber, added[0].CemeteryName
		_, err := repo.UpdateRecords(ctx, &clash)
		assert.ErrorIs(t, err, storage.ErrDuplicateRecord)
	})
}

func TestRecordRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddRecords(ctx, sampleRecords()...)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteRecords(ctx, added[0].Id))

	_, err = repo.GetRecord(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	has, err := repo.HasFingerprint(ctx, added[0].Fingerprint())
	require.NoError(t, err)
	assert.False(t, has)

	// The same burial can be imported again once deleted.
	_, err = repo.AddRecords(ctx, sampleRecords()[0])
	require.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteRecords(ctx, 9999), storage.ErrNotFound)
}

func TestRecordRepository_ForEachRecord(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddRecords(ctx, sampleRecords()...)
	require.NoError(t, err)

	var ids []core.ID
	require.NoError(t, repo.ForEachRecord(ctx, func(r *core.Record) error {
		ids = append(ids, r.Id)
		return nil
	}))
	require.Len(t, ids, 4)
	assert.IsIncreasing(t, ids)

	calls := 0
	err = repo.ForEachRecord(ctx, func(*core.Record) error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestRecordRepository_FindCandidates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddRecords(ctx, sampleRecords()...)
	require.NoError(t, err)

	sc := &core.SearchContext{RawQuery: "juan", FirstName: "Juan", FullName: "Juan", Intent: core.IntentFindPerson}

	page, err := repo.FindCandidates(ctx, sc, storage.CandidateQuery{RawQuery: sc.RawQuery})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, storage.DefaultPageSize, page.PageSize)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "Juan", page.Records[0].FirstName)
	assert.Equal(t, "Juana", page.Records[1].FirstName)

	t.Run("cemetery restriction", func(t *testing.T) {
		page, err := repo.FindCandidates(ctx, sc, storage.CandidateQuery{RawQuery: sc.RawQuery, CemeteryId: 2})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.NotNil(t, page.Records)
	})

	t.Run("nil context", func(t *testing.T) {
		_, err := repo.FindCandidates(ctx, nil, storage.CandidateQuery{})
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}

func TestRecordRepository_Autocomplete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddRecords(ctx, sampleRecords()...)
	require.NoError(t, err)

	tests := []struct {
		name       string
		prefix     string
		cemeteryId core.ID
		limit      int
		expected   []string
	}{
		{name: "first name prefix", prefix: "Jua", expected: []string{"Juan Santos Dela Cruz", "Juana Reyes"}},
		{name: "last name prefix", prefix: "san", expected: []string{"Maria Santos"}},
		{name: "full name prefix", prefix: "juan dela", expected: []string{"Juan Santos Dela Cruz"}},
		{name: "accent folded", prefix: "jose", expected: []string{"José Rizal"}},
		{name: "limit", prefix: "jua", limit: 1, expected: []string{"Juan Santos Dela Cruz"}},
		{name: "cemetery filter", prefix: "jo", cemeteryId: 2, expected: []string{"José Rizal"}},
		{name: "too short", prefix: "j", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Autocomplete(ctx, tt.prefix, tt.cemeteryId, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRecordRepository_NamesAndCemeteries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddRecords(ctx, sampleRecords()...)
	require.NoError(t, err)

	names, err := repo.Names(ctx)
	require.NoError(t, err)
	require.Len(t, names, 4)
	assert.Equal(t, "Juan Dela Cruz", names[0].Full())

	cemeteries, err := repo.Cemeteries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Cemetery{
		{Id: 1, Name: "Manila North Cemetery", Burials: 3},
		{Id: 2, Name: "Paco Park", Burials: 1},
	}, cemeteries)
}

func TestRecordRepository_Closed(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	_, err = repo.GetRecord(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = repo.AddRecords(context.Background(), sampleRecords()[0])
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
