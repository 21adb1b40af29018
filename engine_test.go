package hanap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/hanap/ai/mock"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/reembed"
	"github.com/poiesic/hanap/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	t, _ := core.Date(y, m, d)
	return t
}

func burials() []*core.Record {
	return []*core.Record{
		{FirstName: "Juan", MiddleName: "Santos", LastName: "Dela Cruz", DateOfBirth: date(1931, 2, 14), DateOfDeath: date(2001, 7, 3), PlotNumber: "A-12", CemeteryId: 1, CemeteryName: "Manila North Cemetery"},
		{FirstName: "Maria", LastName: "Santos", DateOfDeath: date(2015, 1, 20), PlotNumber: "B-4", CemeteryId: 1, CemeteryName: "Manila North Cemetery"},
		{FirstName: "José", LastName: "Rizal", DateOfBirth: date(1961, 6, 19), DateOfDeath: date(2020, 12, 30), PlotNumber: "C-1", CemeteryId: 2, CemeteryName: "Paco Park"},
		{FirstName: "John", LastName: "Smith", DateOfDeath: date(1999, 4, 2), PlotNumber: "C-7", CemeteryId: 2, CemeteryName: "Paco Park"},
	}
}

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	opts = append([]EngineOption{WithInMemory(true)}, opts...)
	engine, err := NewEngine("", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	pipeline, err := engine.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	result, err := pipeline.Ingest(context.Background(), burials()...)
	require.NoError(t, err)
	require.Len(t, result.Added, 4)
	pipeline.Wait()
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("create new store on disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "burials_db")
		engine, err := NewEngine(dir)
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		assert.NotNil(t, engine.Records())
		assert.NotNil(t, engine.backend)
		assert.Nil(t, engine.provider)
		assert.Equal(t, storage.DefaultPageSize, engine.pageSize)
		assert.DirExists(t, dir)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		engine, err := NewEngine(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, engine)
	})

	t.Run("out of range page size falls back to default", func(t *testing.T) {
		engine, err := NewEngine("", WithInMemory(true), WithPageSize(1000))
		require.NoError(t, err)
		defer engine.Close()
		assert.Equal(t, storage.DefaultPageSize, engine.pageSize)
	})

	t.Run("with provider", func(t *testing.T) {
		provider := mock.NewMockProvider()
		engine, err := NewEngine("", WithInMemory(true), WithAIProvider(provider), WithWorkers(2))
		require.NoError(t, err)
		require.NoError(t, engine.Close())
		assert.True(t, provider.Closed())
	})
}

func TestEngine_Search(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	t.Run("full name", func(t *testing.T) {
		resp, err := engine.Search(ctx, "Maria Santos", SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, "Maria", resp.Context.FirstName)
		assert.Equal(t, core.IntentFindPerson, resp.Context.Intent)
		require.NotEmpty(t, resp.Results)
		assert.Equal(t, "Maria", resp.Results[0].Record.FirstName)
		assert.Empty(t, resp.Suggestions)
		assert.GreaterOrEqual(t, resp.Total, 1)
	})

	t.Run("bare year is a death year", func(t *testing.T) {
		resp, err := engine.Search(ctx, "2001", SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2001, resp.Context.YearOfDeath)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "Juan", resp.Results[0].Record.FirstName)
	})

	t.Run("misspelled name suggests", func(t *testing.T) {
		resp, err := engine.Search(ctx, "Jihn Smath", SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
		assert.Zero(t, resp.Total)
		assert.Contains(t, resp.Suggestions, "John Smith")
	})

	t.Run("cemetery restriction", func(t *testing.T) {
		resp, err := engine.Search(ctx, "Maria Santos", SearchOptions{CemeteryId: 2})
		require.NoError(t, err)
		assert.Zero(t, resp.Total)
		assert.Empty(t, resp.Results)
	})

	t.Run("empty query", func(t *testing.T) {
		resp, err := engine.Search(ctx, "   ", SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, core.IntentGeneral, resp.Context.Intent)
		assert.Empty(t, resp.Results)
		assert.NotNil(t, resp.Results)
		assert.Empty(t, resp.Suggestions)
		assert.NotNil(t, resp.Suggestions)
	})
}

func TestEngine_SearchPaging(t *testing.T) {
	engine := newTestEngine(t, WithPageSize(5))
	ctx := context.Background()

	tests := []struct {
		name     string
		opts     SearchOptions
		page     int
		pageSize int
	}{
		{name: "engine default", opts: SearchOptions{}, page: 1, pageSize: 5},
		{name: "explicit", opts: SearchOptions{Page: 2, PageSize: 10}, page: 2, pageSize: 10},
		{name: "clamped", opts: SearchOptions{Page: -1, PageSize: 500}, page: 1, pageSize: storage.MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := engine.Search(ctx, "Santos", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.page, resp.Page)
			assert.Equal(t, tt.pageSize, resp.PageSize)
		})
	}
}

func TestEngine_Semantic(t *testing.T) {
	provider := mock.NewMockProvider()
	engine := newTestEngine(t, WithAIProvider(provider), WithSimilarityTimeout(time.Second))
	ctx := context.Background()

	require.NoError(t, engine.Records().ForEachRecord(ctx, func(r *core.Record) error {
		assert.Len(t, r.Vector, mock.Dimensions)
		return nil
	}))

	before := provider.GetMockEmbedder().CallCount()
	resp, err := engine.Search(ctx, "Maria Santos", SearchOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Results)
	assert.Greater(t, provider.GetMockEmbedder().CallCount(), before)
}

func TestEngine_Lookups(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	sc := engine.Interpret("plot 123")
	assert.Equal(t, core.IntentFindPlot, sc.Intent)

	suggestions, err := engine.Suggest(ctx, "Marai Santos")
	require.NoError(t, err)
	assert.Contains(t, suggestions, "Maria Santos")

	names, err := engine.Autocomplete(ctx, "jo", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"José Rizal", "John Smith"}, names)

	cemeteries, err := engine.Cemeteries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Cemetery{
		{Id: 1, Name: "Manila North Cemetery", Burials: 2},
		{Id: 2, Name: "Paco Park", Burials: 2},
	}, cemeteries)
}

func TestEngine_NewReembedder(t *testing.T) {
	t.Run("requires provider", func(t *testing.T) {
		engine := newTestEngine(t)
		_, err := engine.NewReembedder(nil, nil)
		assert.ErrorIs(t, err, ErrProviderRequired)
	})

	t.Run("reembeds every record", func(t *testing.T) {
		engine := newTestEngine(t, WithAIProvider(mock.NewMockProvider()))
		var progress bytes.Buffer
		reembedder, err := engine.NewReembedder(reembed.DefaultConfig(), &progress)
		require.NoError(t, err)

		summary, err := reembedder.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, summary.Processed)
		assert.Contains(t, progress.String(), "Reembedding complete")
	})
}

func TestEngine_Close(t *testing.T) {
	engine, err := NewEngine(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, engine.Close())
	assert.NoError(t, engine.Close())

	_, err = engine.Search(context.Background(), "Maria", SearchOptions{})
	assert.ErrorIs(t, err, ErrEngineClosed)
	_, err = engine.Cemeteries(context.Background())
	assert.ErrorIs(t, err, ErrEngineClosed)
	_, err = engine.NewIngestionPipeline()
	assert.ErrorIs(t, err, ErrEngineClosed)
}
