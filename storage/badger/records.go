package badger

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/storage"
	"github.com/poiesic/hanap/variants"
)

// RecordRepository implements storage.RecordRepository for BadgerDB.
type RecordRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(backend *Backend) (storage.RecordRepository, error) {
	return newRecordRepository(backend)
}

func newRecordRepository(backend *Backend) (*RecordRepository, error) {
	idSeq, err := backend.GetSequence(recordIDSeq)
	if err != nil {
		return nil, err
	}

	return &RecordRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *RecordRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *RecordRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

func (r *RecordRepository) checkOpen() error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// AddRecords adds one or more burial records to storage.
// The whole batch is rejected with storage.ErrDuplicateRecord when any
// record's fingerprint is already stored or repeated within the batch.
func (r *RecordRepository) AddRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			fpKey := makeFingerprintKey(record.Fingerprint())
			exists, err := keyExists(tx, fpKey)
			if err != nil {
				return err
			}
			if exists {
				return storage.ErrDuplicateRecord
			}

			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			record.Id = core.ID(nextID)

			record.InsertedAt = now()
			record.UpdatedAt = record.InsertedAt

			if err := tx.Set(makeRecordKey(record.Id), storage.MarshalRecord(record)); err != nil {
				return err
			}
			if err := tx.Set(fpKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateRecords replaces existing burial records, moving their fingerprint
// index entries when the identifying fields changed.
func (r *RecordRepository) UpdateRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeRecordKey(record.Id)

			old, err := readRecord(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			if oldFp, newFp := old.Fingerprint(), record.Fingerprint(); oldFp != newFp {
				newKey := makeFingerprintKey(newFp)
				exists, err := keyExists(tx, newKey)
				if err != nil {
					return err
				}
				if exists {
					return storage.ErrDuplicateRecord
				}
				if err := tx.Delete(makeFingerprintKey(oldFp)); err != nil {
					return err
				}
				if err := tx.Set(newKey, storage.MarshalID(record.Id)); err != nil {
					return err
				}
			}

			record.InsertedAt = old.InsertedAt
			record.UpdatedAt = now()
			if err := tx.Set(key, storage.MarshalRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteRecords removes burial records and their fingerprint entries.
func (r *RecordRepository) DeleteRecords(ctx context.Context, ids ...core.ID) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecordKey(id)

			record, err := readRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeFingerprintKey(record.Fingerprint())); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetRecord retrieves a single burial record by ID.
func (r *RecordRepository) GetRecord(ctx context.Context, id core.ID) (*core.Record, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var result *core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRecord(tx, makeRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetRecords retrieves the burial records that exist among ids.
func (r *RecordRepository) GetRecords(ctx context.Context, ids ...core.ID) ([]*core.Record, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var result []*core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := readRecord(tx, makeRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// HasFingerprint reports whether a record with this fingerprint is stored.
func (r *RecordRepository) HasFingerprint(ctx context.Context, fingerprint core.ID) (bool, error) {
	if err := r.checkOpen(); err != nil {
		return false, err
	}
	var exists bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		exists, err = keyExists(tx, makeFingerprintKey(fingerprint))
		return err
	}, false)
	return exists, err
}

// ForEachRecord calls fn for every stored record in ID order.
func (r *RecordRepository) ForEachRecord(ctx context.Context, fn func(*core.Record) error) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.backend.ScanPrefix(ctx, []byte(recordPrefix), func(_, val []byte) error {
		record, err := storage.UnmarshalRecord(val)
		if err != nil {
			return err
		}
		return fn(record)
	})
}

// CountRecords returns the number of stored records.
func (r *RecordRepository) CountRecords(ctx context.Context) (int, error) {
	count := 0
	err := r.ForEachRecord(ctx, func(*core.Record) error {
		count++
		return nil
	})
	return count, err
}

// FindCandidates scans every record through the candidate filter and
// returns the requested page.
func (r *RecordRepository) FindCandidates(ctx context.Context, sc *core.SearchContext, q storage.CandidateQuery) (*storage.CandidatePage, error) {
	if sc == nil {
		return nil, storage.ErrInvalidQuery
	}
	var records []*core.Record
	err := r.ForEachRecord(ctx, func(record *core.Record) error {
		if q.CemeteryId == 0 || record.CemeteryId == q.CemeteryId {
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return storage.Paginate(sc, q, records), nil
}

// Names returns the name of every stored record.
func (r *RecordRepository) Names(ctx context.Context) ([]core.PersonName, error) {
	var names []core.PersonName
	err := r.ForEachRecord(ctx, func(record *core.Record) error {
		names = append(names, core.PersonName{
			FirstName:  record.FirstName,
			MiddleName: record.MiddleName,
			LastName:   record.LastName,
		})
		return nil
	})
	return names, err
}

// Autocomplete returns distinct display names whose first, last or
// "first last" name starts with prefix, ignoring case and accents.
// Prefixes shorter than storage.MinAutocompletePrefix return nothing.
func (r *RecordRepository) Autocomplete(ctx context.Context, prefix string, cemeteryId core.ID, limit int) ([]string, error) {
	prefix = variants.Normalize(strings.TrimSpace(prefix))
	if len([]rune(prefix)) < storage.MinAutocompletePrefix {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = storage.DefaultAutocompleteLimit
	}

	var matches []core.PersonName
	seen := make(map[string]struct{})
	err := r.ForEachRecord(ctx, func(record *core.Record) error {
		if cemeteryId != 0 && record.CemeteryId != cemeteryId {
			return nil
		}
		first := variants.Normalize(record.FirstName)
		last := variants.Normalize(record.LastName)
		if !strings.HasPrefix(first, prefix) &&
			!strings.HasPrefix(last, prefix) &&
			!strings.HasPrefix(first+" "+last, prefix) {
			return nil
		}
		display := record.DisplayName()
		if _, dup := seen[display]; dup {
			return nil
		}
		seen[display] = struct{}{}
		matches = append(matches, core.PersonName{
			FirstName:  record.FirstName,
			MiddleName: record.MiddleName,
			LastName:   record.LastName,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(matches, func(a, b core.PersonName) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)),
			cmp.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)),
		)
	})

	out := make([]string, 0, min(limit, len(matches)))
	for _, n := range matches[:min(limit, len(matches))] {
		out = append(out, strings.Join(strings.Fields(n.FirstName+" "+n.MiddleName+" "+n.LastName), " "))
	}
	return out, nil
}

// Cemeteries returns the distinct cemeteries referenced by stored records,
// ordered by name, with their burial counts.
func (r *RecordRepository) Cemeteries(ctx context.Context) ([]core.Cemetery, error) {
	byId := make(map[core.ID]*core.Cemetery)
	err := r.ForEachRecord(ctx, func(record *core.Record) error {
		if record.CemeteryId == 0 && record.CemeteryName == "" {
			return nil
		}
		c, ok := byId[record.CemeteryId]
		if !ok {
			c = &core.Cemetery{Id: record.CemeteryId}
			byId[record.CemeteryId] = c
		}
		if c.Name == "" {
			c.Name = record.CemeteryName
		}
		c.Burials++
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]core.Cemetery, 0, len(byId))
	for _, c := range byId {
		out = append(out, *c)
	}
	slices.SortFunc(out, func(a, b core.Cemetery) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Id, b.Id))
	})
	return out, nil
}

// readRecord reads a record from the transaction, returning nil when the
// key does not exist.
func readRecord(tx *badger.Txn, key []byte) (*core.Record, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.Record
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalRecord(val)
		return unmarshalErr
	})
	return record, err
}

func keyExists(tx *badger.Txn, key []byte) (bool, error) {
	_, err := tx.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// now returns the current time at the precision core.TimeMUS stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
