// Package hanap searches burial records with free-text queries.
//
// A query such as "Hanap si Juan dela Cruz namatay 2001" is interpreted into
// a core.SearchContext (names, dates, ages, plot and intent), matched against
// stored records and ranked by relevance. Queries that match nothing produce
// "did you mean" suggestions drawn from the stored names.
//
// InterpretAndRank is the pure entry point: it ranks a caller-supplied slice
// of records and never fails. Engine wraps the badger record store, optional
// embedding provider, import pipeline and re-embedder behind one handle:
//
//	engine, err := hanap.NewEngine("./burials_db")
//	if err != nil {
//	    return err
//	}
//	defer engine.Close()
//
//	resp, err := engine.Search(ctx, "maria santos died 2015", hanap.SearchOptions{})
package hanap
