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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/insightd/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// InsightExtractor implements ai.InsightExtractor using OpenAI-compatible chat APIs.
type InsightExtractor struct {
	client        llms.Model
	minConfidence float32
	logger        *slog.Logger
}

// analysis is the wrapper structure for the LLM's JSON response.
type analysis struct {
	Insights []ai.RawInsight `json:"insights"`
}

// newInsightExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newInsightExtractor(config *ai.Config) (*InsightExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/extraction
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &InsightExtractor{
		client:        client,
		minConfidence: config.MinConfidence,
		logger:        slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewInsightExtractor creates a new insight extractor using the provided configuration.
//
// Returns ai.InsightExtractor interface to enforce abstraction.
func NewInsightExtractor(config *ai.Config) (ai.InsightExtractor, error) {
	return newInsightExtractor(config)
}

// ExtractInsights extracts business insights from a document using an LLM.
// It applies confidence filtering and returns only insights at or above
// the minimum threshold, highest confidence first.
func (e *InsightExtractor) ExtractInsights(ctx context.Context, input ai.ExtractionInput) ([]ai.RawInsight, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(input)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result analysis
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []ai.RawInsight{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Filter by confidence and drop types outside the vocabulary
	extracted := make([]ai.RawInsight, 0, len(result.Insights))
	for _, raw := range result.Insights {
		raw.Type = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw.Type)), " ", "_")
		raw.Severity = strings.ToLower(strings.TrimSpace(raw.Severity))
		if !slices.Contains(ai.InsightTypes, raw.Type) {
			e.logger.Debug("dropping insight with unknown type", "type", raw.Type)
			continue
		}
		if raw.Title == "" || raw.Confidence < e.minConfidence {
			continue
		}
		extracted = append(extracted, raw)
	}

	// Sort by confidence (descending)
	slices.SortFunc(extracted, func(a, b ai.RawInsight) int {
		if a.Confidence == b.Confidence {
			return 0
		}
		if a.Confidence < b.Confidence {
			return 1
		}
		return -1
	})

	e.logger.Debug("extracted insights",
		"total", len(result.Insights),
		"filtered", len(extracted))

	return extracted, nil
}
