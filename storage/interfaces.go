package storage

import (
	"context"

	"github.com/poiesic/hanap/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// RecordRepository stores burial records and answers the coarse queries
// that feed ranking, suggestions and autocomplete.
type RecordRepository interface {
	Repository

	// AddRecords adds one or more records to storage.
	// Generates new IDs from a sequence and sets InsertedAt/UpdatedAt.
	// Returns the records with generated IDs and timestamps populated.
	AddRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error)

	// UpdateRecords replaces existing records and refreshes UpdatedAt.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error)

	// DeleteRecords removes records and their index entries.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteRecords(ctx context.Context, ids ...core.ID) error

	// GetRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id core.ID) (*core.Record, error)

	// GetRecords retrieves multiple records by ID.
	// Returns only the records that exist (no error for missing records).
	GetRecords(ctx context.Context, ids ...core.ID) ([]*core.Record, error)

	// HasFingerprint reports whether a record with the given content
	// fingerprint is already stored.
	HasFingerprint(ctx context.Context, fingerprint core.ID) (bool, error)

	// ForEachRecord calls fn for every stored record in ID order.
	// Iteration stops at the first error returned by fn.
	ForEachRecord(ctx context.Context, fn func(*core.Record) error) error

	// CountRecords returns the number of stored records.
	CountRecords(ctx context.Context) (int, error)

	// FindCandidates returns one page of records passing the coarse filter
	// for sc, ordered by match quality, then most recent death, then name.
	FindCandidates(ctx context.Context, sc *core.SearchContext, q CandidateQuery) (*CandidatePage, error)

	// Names returns the name of every stored record.
	Names(ctx context.Context) ([]core.PersonName, error)

	// Autocomplete returns distinct "first middle last" names where the
	// first, last or "first last" name starts with prefix, ordered by last
	// then first name. A zero cemeteryId matches every cemetery.
	Autocomplete(ctx context.Context, prefix string, cemeteryId core.ID, limit int) ([]string, error)

	// Cemeteries returns the distinct cemeteries referenced by stored
	// records, ordered by name.
	Cemeteries(ctx context.Context) ([]core.Cemetery, error)
}
