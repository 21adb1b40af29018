// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"

	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/storage"
)

const (
	// DefaultBatchSize is the default number of records to fetch in each batch
	DefaultBatchSize = 100
)

// RecordIterator iterates over stored burial records in batches.
type RecordIterator struct {
	repo      storage.RecordRepository
	batchSize int
	filter    func(*core.Record) bool
}

// NewRecordIterator creates a new record iterator.
// batchSize: number of records to fetch in each batch (must be > 0)
func NewRecordIterator(repo storage.RecordRepository, batchSize int) *RecordIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &RecordIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Where returns an iterator that only visits records accepted by keep.
func (it *RecordIterator) Where(keep func(*core.Record) bool) *RecordIterator {
	filtered := *it
	filtered.filter = keep
	return &filtered
}

// IDs returns the IDs of every record the iterator visits, in ID order.
func (it *RecordIterator) IDs(ctx context.Context) ([]core.ID, error) {
	var ids []core.ID
	err := it.repo.ForEachRecord(ctx, func(record *core.Record) error {
		if it.filter == nil || it.filter(record) {
			ids = append(ids, record.Id)
		}
		return nil
	})
	return ids, err
}

// ForEach calls fn for each batch of records.
// Records are snapshotted by ID first and re-read per batch, so fn may
// update the records it is given.
// Iteration stops on first error from fn or when all records are processed.
// Context cancellation is checked between batches.
func (it *RecordIterator) ForEach(ctx context.Context, fn func([]*core.Record) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ids, err := it.IDs(ctx)
	if err != nil {
		return err
	}

	for start := 0; start < len(ids); start += it.batchSize {
		batch, err := it.repo.GetRecords(ctx, ids[start:min(start+it.batchSize, len(ids))]...)
		if err != nil {
			return err
		}
		if len(batch) > 0 {
			if err := fn(batch); err != nil {
				return err
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
