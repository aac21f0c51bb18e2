package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocumentCategory classifies an ingested document.
type DocumentCategory int

const (
	// CategoryOther is the default for documents that are not meeting transcripts.
	CategoryOther DocumentCategory = iota + 1
	// CategoryMeeting marks meeting transcripts eligible for insight extraction.
	CategoryMeeting
)

// Document is an ingested content unit: a meeting transcript or any other
// text artifact that may be chunked for retrieval and analyzed for insights.
type Document struct {
	Id           ID
	Title        string
	Content      string
	Category     DocumentCategory
	Source       string    // Origin of the document (e.g. "upload", "drive", "storage")
	OccurredAt   time.Time // Real-world event time; zero when unknown. Never conflate with CreatedAt.
	CreatedAt    time.Time // Ingestion time
	UpdatedAt    time.Time
	ProjectId    ID // 0 when no project is linked
	Participants []string
	Metadata     map[string]string
}

// QueueStatus is the lifecycle state of a processing queue item.
type QueueStatus int

const (
	// StatusPending means the item is waiting to be claimed by a worker.
	StatusPending QueueStatus = iota + 1
	// StatusProcessing means a worker holds a claim on the item.
	StatusProcessing
	// StatusCompleted is terminal: extraction finished successfully.
	StatusCompleted
	// StatusFailed is terminal: the retry cap was exceeded.
	StatusFailed
)

// String returns the lowercase wire name of the status.
func (s QueueStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is an end state.
func (s QueueStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// QueueItem tracks one document's progress through classification and
// extraction. At most one non-terminal item may exist per document.
type QueueItem struct {
	Id           ID
	DocumentId   ID
	Title        string
	Status       QueueStatus
	RetryCount   int
	ErrorMessage string
	InsightCount int
	CreatedAt    time.Time
	StartedAt    time.Time // Set each time a worker claims the item; zero before the first claim
	CompletedAt  time.Time // Set when the item reaches a terminal state
	Metadata     map[string]string
}

// Project is a canonical project entity used for mention resolution.
type Project struct {
	Id         ID
	Name       string
	Aliases    []string
	Keywords   []string
	Status     string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Tuple returns a string representation of the project as "(project,Name)".
// This is used for generating deterministic IDs.
func (p *Project) Tuple() string {
	return "(project," + p.Name + ")"
}

// Chunk is an ordered slice of a document's content paired with a vector
// embedding. Indexes for a document are dense, zero-based, and replaced
// as a whole set on reprocessing.
type Chunk struct {
	Id         ID
	DocumentId ID
	Index      int
	Content    string
	Speaker    string  // Dominant speaker in the slice, if any
	StartSec   float64 // Time offset into the meeting; 0 when untimed
	EndSec     float64
	Vector     []float32
	InsertedAt time.Time
}

// InsightType is the closed set of insight categories extracted from documents.
type InsightType int

const (
	InsightActionItem InsightType = iota + 1
	InsightDecision
	InsightRisk
	InsightMilestone
	InsightBlocker
	InsightOpportunity
	InsightDependency
	InsightBudgetUpdate
	InsightTimelineChange
	InsightStakeholderFeedback
	InsightTechnicalIssue
	InsightConcern
)

var insightTypeNames = map[InsightType]string{
	InsightActionItem:          "action_item",
	InsightDecision:            "decision",
	InsightRisk:                "risk",
	InsightMilestone:           "milestone",
	InsightBlocker:             "blocker",
	InsightOpportunity:         "opportunity",
	InsightDependency:          "dependency",
	InsightBudgetUpdate:        "budget_update",
	InsightTimelineChange:      "timeline_change",
	InsightStakeholderFeedback: "stakeholder_feedback",
	InsightTechnicalIssue:      "technical_issue",
	InsightConcern:             "concern",
}

// String returns the snake_case wire name of the insight type.
func (t InsightType) String() string {
	if name, ok := insightTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseInsightType maps a wire name back to an InsightType.
// Returns false when the name is not part of the closed set.
func ParseInsightType(name string) (InsightType, bool) {
	for t, n := range insightTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Severity ranks how urgent an insight is.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

// String returns the lowercase wire name of the severity.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSeverity maps a wire name back to a Severity.
// Returns SeverityMedium for unknown names, which is the extractor default.
func ParseSeverity(name string) Severity {
	for s, n := range severityNames {
		if n == name {
			return s
		}
	}
	return SeverityMedium
}

// Insight is a structured extraction from a document. Immutable once
// created except for the Resolved flag and user-editable metadata.
type Insight struct {
	Id              ID
	DocumentId      ID
	ProjectId       ID // 0 when the project mention could not be resolved
	Type            InsightType
	Title           string
	Description     string
	Severity        Severity
	Confidence      float32 // Extraction confidence in [0,1]
	Assignee        string
	DueDate         time.Time // Zero when no due date was mentioned
	FinancialImpact float64
	Resolved        bool
	DocumentDate    time.Time // Best-effort true event date; never conflate with CreatedAt
	DateFallback    bool      // True when DocumentDate fell back to the document's CreatedAt
	CreatedAt       time.Time
	Metadata        map[string]string
}

// ChunkMatch is a semantic search hit: the chunk, its similarity to the
// query vector, and the parent document for filter/recency metadata.
type ChunkMatch struct {
	Chunk      *Chunk
	Similarity float32
	Document   *Document
}

// QueueStats is the monitoring contract for the processing queue.
type QueueStats struct {
	Pending          int
	Processing       int
	Completed        int
	Failed           int
	Total            int
	OldestPendingAge time.Duration // Age of the oldest pending item; 0 when none are pending
}
