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


package search

import "errors"

var (
	// ErrSimilarityRequired is returned when WithSimilarity is given nil.
	ErrSimilarityRequired = errors.New("similarity strategy required")

	// ErrEmbedderRequired is returned when a semantic similarity has no embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("worker count must be positive")

	// ErrEmptyEmbedding is returned when the embedder yields no vector.
	ErrEmptyEmbedding = errors.New("empty embedding")

	// ErrDimensionMismatch is returned when query and document vectors differ in length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
