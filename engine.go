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

package hanap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/poiesic/hanap/ai"
	"github.com/poiesic/hanap/ai/openai"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/ingestion"
	"github.com/poiesic/hanap/interpret"
	"github.com/poiesic/hanap/reembed"
	"github.com/poiesic/hanap/search"
	"github.com/poiesic/hanap/storage"
	"github.com/poiesic/hanap/storage/badger"
	"github.com/poiesic/hanap/suggest"
)

// Engine answers burial searches against a record store.
// It is safe for concurrent use.
type Engine struct {
	backend     *badger.Backend
	repo        storage.RecordRepository
	provider    ai.AIProvider
	interpreter *interpret.Interpreter
	scorer      *search.Scorer
	suggester   *suggest.Generator
	pageSize    int
	baseLogger  *slog.Logger
	logger      *slog.Logger
	closed      atomic.Bool
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig          *ai.Config
	provider          ai.AIProvider
	inMemory          bool
	workers           int
	similarityTimeout time.Duration
	pageSize          int
	logger            *slog.Logger
}

// WithAIConfig enables semantic ranking and import embeddings through an
// OpenAI-compatible embedding service.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider enables semantic ranking with an existing provider.
// The engine takes ownership and closes it. Overrides WithAIConfig.
func WithAIProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps the store in memory. The path is ignored.
func WithInMemory(inMemory bool) EngineOption {
	return func(o *engineOptions) {
		o.inMemory = inMemory
	}
}

// WithWorkers sets how many candidates are scored concurrently when
// semantic ranking is enabled.
func WithWorkers(workers int) EngineOption {
	return func(o *engineOptions) {
		o.workers = workers
	}
}

// WithSimilarityTimeout bounds each semantic similarity call.
func WithSimilarityTimeout(timeout time.Duration) EngineOption {
	return func(o *engineOptions) {
		o.similarityTimeout = timeout
	}
}

// WithPageSize sets the page size used when a search does not set one.
func WithPageSize(pageSize int) EngineOption {
	return func(o *engineOptions) {
		o.pageSize = pageSize
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// NewEngine opens the record store at filePath and assembles the search
// components. Without an AI option the engine ranks by keyword only.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		workers:  search.DefaultWorkers,
		pageSize: storage.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	logger := options.logger

	var cleanup []func() error
	fail := func(err error) (*Engine, error) {
		for i := len(cleanup) - 1; i >= 0; i-- {
			if closeErr := cleanup[i](); closeErr != nil {
				logger.Error("error releasing engine resource", "err", closeErr)
			}
		}
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory, badger.WithBackendLogger(logger))
	if err != nil {
		return nil, err
	}
	cleanup = append(cleanup, backend.Close)

	repo, err := badger.NewRecordRepository(backend)
	if err != nil {
		return fail(err)
	}
	cleanup = append(cleanup, repo.Close)

	provider := options.provider
	if provider == nil && options.aiConfig != nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return fail(err)
		}
	}
	if provider != nil {
		cleanup = append(cleanup, provider.Close)
	}

	interpreter, err := interpret.New(interpret.WithLogger(logger))
	if err != nil {
		return fail(err)
	}

	scorerOpts := []search.Option{search.WithLogger(logger)}
	if provider != nil {
		similarity, err := search.NewSemanticSimilarity(provider.Embedder(), options.similarityTimeout)
		if err != nil {
			return fail(err)
		}
		scorerOpts = append(scorerOpts, search.WithSimilarity(similarity), search.WithWorkers(max(options.workers, 1)))
	}
	scorer, err := search.NewScorer(scorerOpts...)
	if err != nil {
		return fail(err)
	}

	suggester, err := suggest.New(repo, suggest.WithLogger(logger))
	if err != nil {
		scorer.Close()
		return fail(err)
	}

	pageSize := options.pageSize
	if pageSize < 1 || pageSize > storage.MaxPageSize {
		pageSize = storage.DefaultPageSize
	}

	e := &Engine{
		backend:     backend,
		repo:        repo,
		provider:    provider,
		interpreter: interpreter,
		scorer:      scorer,
		suggester:   suggester,
		pageSize:    pageSize,
		baseLogger:  logger,
		logger:      logger.With("component", "engine"),
	}
	e.logger.Debug("engine ready", "path", filePath, "inMemory", options.inMemory, "semantic", provider != nil)
	return e, nil
}

// SearchOptions narrows and pages a search.
type SearchOptions struct {
	// CemeteryId restricts results to one cemetery when non-zero.
	CemeteryId core.ID
	// Page is 1-based. Values below 1 select the first page.
	Page int
	// PageSize is clamped to 1..storage.MaxPageSize. Zero selects the
	// engine's default.
	PageSize int
}

// SearchResponse is one page of ranked results.
type SearchResponse struct {
	core.Response
	// Total counts the candidates that passed the store filter, before
	// ranking and thresholding.
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Search interprets query, fetches one page of candidates from the store
// and ranks them. Suggestions are produced only when nothing was ranked.
func (e *Engine) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = e.pageSize
	}
	q := storage.CandidateQuery{
		RawQuery:   query,
		CleanName:  interpret.CleanName(query),
		CemeteryId: opts.CemeteryId,
		Page:       opts.Page,
		PageSize:   pageSize,
	}.Normalized()

	resp := &SearchResponse{
		Response: core.Response{
			Context:     e.interpreter.Interpret(query),
			Results:     []core.ScoredCandidate{},
			Suggestions: []string{},
		},
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if strings.TrimSpace(query) == "" {
		return resp, nil
	}

	page, err := e.repo.FindCandidates(ctx, &resp.Context, q)
	if err != nil {
		return nil, fmt.Errorf("finding candidates: %w", err)
	}
	resp.Total = page.Total
	resp.Results = e.scorer.Rank(ctx, query, &resp.Context, page.Records)
	if len(resp.Results) == 0 {
		resp.Suggestions = e.suggester.Suggest(ctx, &resp.Context)
	}

	e.logger.Debug("search",
		"query", query,
		"intent", resp.Context.Intent,
		"candidates", len(page.Records),
		"total", page.Total,
		"results", len(resp.Results),
		"suggestions", len(resp.Suggestions))
	return resp, nil
}

// Interpret returns the search context for query without touching the store.
func (e *Engine) Interpret(query string) core.SearchContext {
	return e.interpreter.Interpret(query)
}

// Suggest returns names from the store close to the name in query.
func (e *Engine) Suggest(ctx context.Context, query string) ([]string, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	sc := e.interpreter.Interpret(query)
	return e.suggester.Suggest(ctx, &sc), nil
}

// Autocomplete returns stored names starting with prefix.
// A zero cemeteryId matches every cemetery.
func (e *Engine) Autocomplete(ctx context.Context, prefix string, cemeteryId core.ID, limit int) ([]string, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return e.repo.Autocomplete(ctx, prefix, cemeteryId, limit)
}

// Cemeteries lists the cemeteries referenced by stored records.
func (e *Engine) Cemeteries(ctx context.Context) ([]core.Cemetery, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return e.repo.Cemeteries(ctx)
}

// NewIngestionPipeline creates an import pipeline writing to the engine's
// store. Records are embedded on import when the engine has an AI provider.
func (e *Engine) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	opts = append([]ingestion.Option{ingestion.WithLogger(e.baseLogger)}, opts...)
	return ingestion.NewPipeline(e.repo, e.provider, opts...)
}

// NewReembedder creates a re-embedder over every stored record.
// A nil config uses reembed.DefaultConfig.
func (e *Engine) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if e.provider == nil {
		return nil, ErrProviderRequired
	}
	return reembed.NewReembedder(e.repo, e.provider.Embedder(), config, progress), nil
}

// Records exposes the underlying record store.
func (e *Engine) Records() storage.RecordRepository {
	return e.repo
}

// Close releases the scorer, AI provider, store and backend, in that order.
// Closing twice is a no-op.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}

	e.scorer.Close()

	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := e.repo.Close(); err != nil {
		e.logger.Error("error closing record repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
