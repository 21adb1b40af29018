package hanap

import "errors"

var (
	// ErrInvalidConfig is returned when a configuration file fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEngineClosed is returned by Engine methods called after Close.
	ErrEngineClosed = errors.New("engine closed")

	// ErrProviderRequired is returned when an operation needs embeddings
	// and the engine was opened without an AI provider.
	ErrProviderRequired = errors.New("AI provider required")
)
