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


// Package ai provides abstractions for the AI services used by hanap.
//
// The only service the engine needs is text embedding: burial records are
// embedded on import and queries are embedded at search time when semantic
// similarity is enabled. Everything else in the engine works without it.
//
// # Implementation Packages
//
//   - ai/openai: langchaingo client for OpenAI-compatible APIs (Ollama, vLLM, ...)
//   - ai/mock: deterministic test doubles
//
// Public constructors such as openai.NewProvider return interface types.
// Test constructors such as mock.NewMockEmbedder return concrete types so
// tests can inject behavior and read call counts.
//
// # Usage Example
//
//	provider, err := openai.NewProvider(ai.NewConfig(ai.WithEmbeddingModel("nomic-embed-text")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "juan dela cruz 1999")
package ai
