// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.InsightExtractor,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embedding, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockExtractor := mock.NewMockInsightExtractor()
//	mockExtractor.ExtractInsightsFunc = func(ctx context.Context, input ai.ExtractionInput) ([]ai.RawInsight, error) {
//	    return []ai.RawInsight{{Type: "risk", Title: "fixed", Confidence: 1, Severity: "high"}}, nil
//	}
//
//	// Check call counts
//	count := mockExtractor.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockInsightExtractor: Emits one insight per trigger keyword in the content
//   - MockProvider: Aggregates mock embedder and extractor
package mock
