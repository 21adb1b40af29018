package ai

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("ai config")

	// ErrDimensionMismatch is returned when an embedder produces vectors of a
	// different length than it produced before, usually after the embedding
	// model was changed without reembedding the stored records.
	ErrDimensionMismatch = errors.New("embedding dimensions changed")
)
