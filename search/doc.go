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


// Package search ranks candidate burial records against an interpreted query.
//
// The Scorer combines two kinds of signal for every candidate:
//   - a base textual similarity between the query and the record's search
//     text, computed by a pluggable Similarity (keyword or embedding based)
//   - field boosts for names, plot, cemetery, dates and ages that agree with
//     the query's core.SearchContext
//
// Plot searches are scaled up and held to a stricter threshold. Results are
// sorted stably by score, so identical inputs always rank identically.
package search
