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

// Package transcript provides text analysis for uploaded documents:
// meeting detection, event date extraction, speaker identification,
// and context-preserving chunking.
//
// Everything here is pure string processing with no storage or network
// dependencies, so callers can run it inline before deciding whether a
// document deserves a trip through the extraction queue.
package transcript
