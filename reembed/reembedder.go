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
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/hanap/ai"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of records to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for each embedding call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// OnlyMissing restricts the run to records without a stored vector
	OnlyMissing bool

	// DryRun counts the records that would be reembedded without calling
	// the embedder
	DryRun bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Summary reports what a run did.
type Summary struct {
	Total     int
	Processed int
	// Unembedded counts records left without a vector because the
	// embedder returned an unusable one.
	Unembedded int
	Elapsed   time.Duration
	DryRun    bool
}

// Reembedder orchestrates the reembedding of stored burial records.
type Reembedder struct {
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *RecordIterator
	logger    *slog.Logger
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.RecordRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	iterator := NewRecordIterator(repo, config.BatchSize)
	if config.OnlyMissing {
		iterator = iterator.Where(func(r *core.Record) bool { return len(r.Vector) == 0 })
	}

	return &Reembedder{
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  iterator,
		logger:    slog.Default().With("component", "reembed"),
	}
}

// Run reembeds every selected record and reports progress to the
// configured writer.
func (r *Reembedder) Run(ctx context.Context) (*Summary, error) {
	ids, err := r.iterator.IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	summary := &Summary{Total: len(ids), DryRun: r.config.DryRun}
	if summary.Total == 0 {
		fmt.Fprintf(r.progress, "No records to reembed (0 records)\n")
		return summary, nil
	}
	if r.config.DryRun {
		fmt.Fprintf(r.progress, "Dry run: would reembed %d records (batch size: %d)\n",
			summary.Total, r.iterator.batchSize)
		return summary, nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d records (batch size: %d)\n",
		summary.Total, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, summary.Total, r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, func(records []*core.Record) error {
		unembedded, err := r.processor.Process(ctx, records)
		summary.Unembedded += unembedded
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		summary.Processed += len(records)
		tracker.Update(summary.Processed)
		return nil
	})
	summary.Elapsed = tracker.Elapsed()
	if err != nil {
		r.logger.Error("reembedding stopped", "processed", summary.Processed, "total", summary.Total, "err", err)
		return summary, err
	}

	tracker.Finish()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d records in %v (%.1f records/sec)\n",
		summary.Processed, summary.Elapsed.Round(time.Second), float64(summary.Processed)/summary.Elapsed.Seconds())
	if summary.Unembedded > 0 {
		fmt.Fprintf(r.progress, "%d records had unusable embeddings and remain keyword-only\n", summary.Unembedded)
	}
	return summary, nil
}
