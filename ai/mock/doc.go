// Package mock provides test doubles for the ai interfaces.
//
// The mocks let tests run without an embedding server while keeping
// behavior deterministic.
//
// # Usage in Tests
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return nil, errors.New("server down")
//	}
//	provider := mock.NewMockProviderWithEmbedder(embedder)
//
//	count := embedder.CallCount()
//
// # Default Behavior
//
// MockEmbedder returns vectors derived from an FNV hash of the input text, so
// equal texts embed identically and different texts almost never do.
package mock
