package mock

import (
	"context"
	"strings"

	"github.com/poiesic/insightd/ai"
)

// MockInsightExtractor is a test double for ai.InsightExtractor.
// It allows custom behavior injection via function fields.
type MockInsightExtractor struct {
	// ExtractInsightsFunc is called by ExtractInsights if set.
	// If nil, uses default keyword-driven behavior.
	ExtractInsightsFunc func(ctx context.Context, input ai.ExtractionInput) ([]ai.RawInsight, error)

	callCount int
}

// NewMockInsightExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions on call counts.
func NewMockInsightExtractor() *MockInsightExtractor {
	return &MockInsightExtractor{}
}

// ExtractInsights produces deterministic mock insights.
// Default behavior: one insight per trigger keyword present in the
// content, so tests can steer the count by wording their fixtures.
func (m *MockInsightExtractor) ExtractInsights(ctx context.Context, input ai.ExtractionInput) ([]ai.RawInsight, error) {
	m.callCount++

	if m.ExtractInsightsFunc != nil {
		return m.ExtractInsightsFunc(ctx, input)
	}

	triggers := []struct {
		keyword  string
		kind     string
		severity string
	}{
		{"will", "action_item", "medium"},
		{"agreed", "decision", "medium"},
		{"risk", "risk", "high"},
		{"delay", "timeline_change", "high"},
		{"budget", "budget_update", "high"},
	}

	lower := strings.ToLower(input.Content)
	var insights []ai.RawInsight
	for _, trigger := range triggers {
		if !strings.Contains(lower, trigger.keyword) {
			continue
		}
		insights = append(insights, ai.RawInsight{
			Type:        trigger.kind,
			Title:       "Mention of " + trigger.keyword,
			Description: "The document mentions " + trigger.keyword + ".",
			Confidence:  0.9,
			Severity:    trigger.severity,
		})
	}
	return insights, nil
}

// CallCount returns the number of times ExtractInsights was called.
func (m *MockInsightExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockInsightExtractor) Reset() {
	m.callCount = 0
	m.ExtractInsightsFunc = nil
}
