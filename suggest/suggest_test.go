package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/interpret"
)

type staticNames []core.PersonName

func (s staticNames) Names(context.Context) ([]core.PersonName, error) {
	return s, nil
}

type failingNames struct{}

func (failingNames) Names(context.Context) ([]core.PersonName, error) {
	return nil, errors.New("store closed")
}

var corpus = staticNames{
	{FirstName: "John", LastName: "Smith"},
	{FirstName: "Maria", LastName: "Santos"},
	{FirstName: "Juan", MiddleName: "P", LastName: "dela Cruz"},
	{FirstName: "John", MiddleName: "Q", LastName: "Smith"},
	{FirstName: "Jose", LastName: "Rizal"},
	{FirstName: "Pedro", LastName: "Penduko"},
}

func newGenerator(t *testing.T, source NameSource, opts ...Option) *Generator {
	t.Helper()
	g, err := New(source, opts...)
	require.NoError(t, err)
	return g
}

func TestSuggest_Misspelling(t *testing.T) {
	g := newGenerator(t, corpus)
	sc := interpret.Interpret("Jihn Smath")

	suggestions := g.Suggest(context.Background(), &sc)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "John Smith", suggestions[0])
	// Middle names do not produce duplicates.
	assert.Equal(t, 1, countOf(suggestions, "John Smith"))
}

func TestSuggest_OrderedByDistance(t *testing.T) {
	g := newGenerator(t, corpus)
	sc := &core.SearchContext{RawQuery: "jose", FirstName: "jose"}

	suggestions := g.Suggest(context.Background(), sc)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Jose Rizal", suggestions[0])
	assert.LessOrEqual(t, len(suggestions), DefaultLimit)
}

func TestSuggest_Limit(t *testing.T) {
	names := staticNames{}
	for _, first := range []string{"Ana", "Anna", "Anne", "Ann", "Anita", "Ana", "Annie", "Aina"} {
		names = append(names, core.PersonName{FirstName: first, LastName: "Reyes"})
	}

	g := newGenerator(t, names)
	sc := &core.SearchContext{RawQuery: "ana", FirstName: "ana"}
	assert.Len(t, g.Suggest(context.Background(), sc), DefaultLimit)

	g = newGenerator(t, names, WithLimit(2))
	assert.Equal(t, []string{"Ana Reyes", "Anna Reyes"}, g.Suggest(context.Background(), sc))
}

func TestSuggest_Skipped(t *testing.T) {
	g := newGenerator(t, corpus)
	ctx := context.Background()

	t.Run("short name", func(t *testing.T) {
		assert.Empty(t, g.Suggest(ctx, &core.SearchContext{RawQuery: "jo", FirstName: "jo"}))
	})

	t.Run("date only", func(t *testing.T) {
		sc := interpret.Interpret("died 1999")
		assert.Empty(t, g.Suggest(ctx, &sc))
	})

	t.Run("nothing close", func(t *testing.T) {
		assert.Empty(t, g.Suggest(ctx, &core.SearchContext{RawQuery: "xylophone", FirstName: "xylophone"}))
	})

	t.Run("source failure", func(t *testing.T) {
		failing := newGenerator(t, failingNames{})
		suggestions := failing.Suggest(ctx, &core.SearchContext{RawQuery: "john", FirstName: "john"})
		assert.NotNil(t, suggestions)
		assert.Empty(t, suggestions)
	})
}

func TestSuggest_RawQueryFallback(t *testing.T) {
	g := newGenerator(t, corpus)
	sc := &core.SearchContext{RawQuery: "  santos  "}

	assert.Equal(t, "santos", SearchName(sc))
	assert.Contains(t, g.Suggest(context.Background(), sc), "Maria Santos")
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNameSourceRequired)
}

func countOf(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}
