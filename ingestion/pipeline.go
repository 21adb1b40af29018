package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/hanap/ai"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/storage"
)

// DefaultBatchSize is how many records are embedded per request.
const DefaultBatchSize = 32

// Pipeline orchestrates the import of burial records.
// It validates and de-duplicates records, stores them, and computes their
// embeddings concurrently when an embedder is available.
type Pipeline struct {
	repository    storage.RecordRepository
	embeddingPool *ants.Pool
	embeddingProc processor
	batchSize     int
	pending       sync.WaitGroup
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithBatchSize sets how many records are embedded per request.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline. A nil provider stores
// records without embeddings.
func NewPipeline(repository storage.RecordRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository:    repository,
		embeddingPool: embeddingPool,
		batchSize:     DefaultBatchSize,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	if provider != nil && provider.Embedder() != nil {
		embeddingProc, err := newEmbeddingProcessor(repository, provider.Embedder(), p.logger)
		if err != nil {
			p.Release()
			return nil, err
		}
		p.embeddingProc = embeddingProc
	}

	return p, nil
}

// Rejection is a record that failed validation.
type Rejection struct {
	Index  int // position in the ingested batch
	Record *core.Record
	Err    error
}

// Result summarizes one call to Ingest.
type Result struct {
	Added    []*core.Record
	Skipped  int // already stored, or repeated within the batch
	Rejected []Rejection
}

// Ingest validates records, drops those already stored, adds the rest and
// schedules their embeddings. Invalid records are reported in the result
// and do not fail the batch. Embedding errors are logged only.
func (p *Pipeline) Ingest(ctx context.Context, records ...*core.Record) (*Result, error) {
	result := &Result{Added: []*core.Record{}}

	fresh := make([]*core.Record, 0, len(records))
	seen := make(map[core.ID]struct{}, len(records))
	for i, record := range records {
		if err := core.ValidateRecord(record); err != nil {
			result.Rejected = append(result.Rejected, Rejection{Index: i, Record: record, Err: err})
			continue
		}

		fp := record.Fingerprint()
		if _, dup := seen[fp]; dup {
			result.Skipped++
			continue
		}
		seen[fp] = struct{}{}

		stored, err := p.repository.HasFingerprint(ctx, fp)
		if err != nil {
			return nil, err
		}
		if stored {
			result.Skipped++
			continue
		}
		fresh = append(fresh, record)
	}

	if len(fresh) == 0 {
		p.logger.Debug("nothing to ingest", "skipped", result.Skipped, "rejected", len(result.Rejected))
		return result, nil
	}

	added, err := p.repository.AddRecords(ctx, fresh...)
	if err != nil {
		return nil, err
	}
	result.Added = added
	p.logger.Info("ingested records",
		"added", len(added),
		"skipped", result.Skipped,
		"rejected", len(result.Rejected))

	if p.embeddingProc != nil {
		p.scheduleEmbeddings(added)
	}
	return result, nil
}

// scheduleEmbeddings submits one pool task per batch of records.
func (p *Pipeline) scheduleEmbeddings(records []*core.Record) {
	for batch := range chunk(records, p.batchSize) {
		ids := make([]core.ID, len(batch))
		for i, record := range batch {
			ids[i] = record.Id
		}

		p.pending.Add(1)
		task := func() {
			defer p.pending.Done()
			if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
				p.logger.Error("error processing embeddings", "records", len(ids), "err", err)
			}
		}
		if err := p.embeddingPool.Submit(task); err != nil {
			p.logger.Warn("embedding pool unavailable, embedding inline", "err", err)
			task()
		}
	}
}

// Wait blocks until every scheduled embedding has finished.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for pending work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.pending.Wait()
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}

func chunk(records []*core.Record, size int) func(yield func([]*core.Record) bool) {
	return func(yield func([]*core.Record) bool) {
		for start := 0; start < len(records); start += size {
			if !yield(records[start:min(start+size, len(records))]) {
				return
			}
		}
	}
}
