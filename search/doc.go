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

// Package search provides semantic retrieval over document chunks.
//
// A query vector (or a text query embedded on the fly) is ranked against
// the chunk store by cosine similarity. Filters apply to the parent
// document, never to the chunk itself, and every match carries the
// parent's event date so callers can weight recency against relevance.
package search
