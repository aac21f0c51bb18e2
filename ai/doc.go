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

// Package ai defines the interfaces for the model-backed services the
// pipeline depends on: text embedding and insight extraction.
//
// The package itself holds only interfaces, configuration, and shared
// types. Concrete implementations live in subpackages:
//
//   - ai/openai talks to any OpenAI-compatible API (Ollama, LocalAI,
//     vLLM, OpenAI itself)
//   - ai/mock provides deterministic test doubles
//
// Callers construct a provider and pull services off it:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithExtractorModel("qwen2.5:3b"),
//	)
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	insights, err := provider.InsightExtractor().ExtractInsights(ctx, input)
//
// Both services are safe for concurrent use, so a single provider can
// back every extraction worker in the process.
package ai
