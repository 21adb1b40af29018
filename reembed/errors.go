package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when MaxRetries is not positive.
	ErrInvalidMaxAttempts = errors.New("max retries must be greater than 0")

	// ErrEmbeddingCountMismatch is returned when the embedder returns a
	// different number of vectors than texts it was given.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")
)
