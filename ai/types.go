package ai

// InsightTypes defines the valid categories for extracted insights.
// These names are embedded in the extraction prompt and must round-trip
// through core.ParseInsightType.
var InsightTypes = []string{
	"action_item",
	"decision",
	"risk",
	"milestone",
	"blocker",
	"dependency",
	"budget_update",
	"timeline_change",
	"stakeholder_feedback",
	"technical_issue",
	"opportunity",
	"concern",
}

// Severities defines the valid priority labels for extracted insights.
var Severities = []string{"critical", "high", "medium", "low"}

// ExtractionInput carries a document and its known context into the
// extractor. Date and Speakers are optional hints that sharpen the
// prompt when available.
type ExtractionInput struct {
	// Title is the document title.
	Title string

	// Content is the full document text. Implementations may truncate
	// it to fit their model's context window.
	Content string

	// Date is the document's event date in YYYY-MM-DD form, or empty
	// when unknown.
	Date string

	// Speakers are the participants identified in the document.
	Speakers []string
}

// RawInsight is an insight as the extractor returned it, before
// validation and project resolution. Field names mirror the JSON the
// model is asked to produce.
type RawInsight struct {
	// Type is one of InsightTypes.
	Type string `json:"type"`

	// Title is a brief descriptive title, at most 100 characters.
	Title string `json:"title"`

	// Description elaborates on the insight, at most 500 characters.
	Description string `json:"description"`

	// Confidence is the extractor's certainty, 0.0 to 1.0.
	Confidence float32 `json:"confidence"`

	// Severity is one of Severities.
	Severity string `json:"severity"`

	// ProjectName is the project the insight belongs to, as mentioned
	// in the document. Empty when the document names no project.
	ProjectName string `json:"project_name"`

	// Assignee is who the work fell to, for action items.
	Assignee string `json:"assigned_to"`

	// DueDate is a YYYY-MM-DD deadline when one was stated.
	DueDate string `json:"due_date"`

	// FinancialImpact is the dollar amount at stake, 0 when none was
	// mentioned.
	FinancialImpact float64 `json:"financial_impact"`
}
