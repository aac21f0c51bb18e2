package storage

import (
	"context"
	"time"

	"github.com/poiesic/insightd/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing ingested documents.
type DocumentRepository interface {
	Repository
	// AddDocuments adds one or more documents to storage.
	// For documents with ID=0, generates new IDs from sequence.
	// Sets CreatedAt if not already set.
	// Returns the documents with generated IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// UpdateDocuments updates existing documents.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// ListDocuments retrieves all documents. Used by administrative sweeps
	// such as the classification backfill.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// GetDocumentsByOccurredRange retrieves documents whose OccurredAt falls
	// in [start, end), ordered by OccurredAt ascending. Documents with an
	// unknown (zero) OccurredAt are never returned by this query.
	GetDocumentsByOccurredRange(ctx context.Context, start, end time.Time) ([]*core.Document, error)
}

// QueueRepository provides the durable processing queue and its claim primitive.
//
// The queue enforces the invariant that at most one item in a non-terminal
// state (pending or processing) exists per document at any time.
type QueueRepository interface {
	Repository
	// Enqueue inserts a pending queue item for the document.
	// Returns false without inserting when a non-terminal item already
	// exists for the document, or when the document already has insights.
	// The check and the insert are a single atomic operation.
	Enqueue(ctx context.Context, documentID core.ID, title string) (bool, error)

	// ClaimNext atomically claims the oldest eligible pending item:
	// it transitions the item to processing, increments RetryCount, and
	// sets StartedAt. No two concurrent callers ever receive the same item.
	// A caller contending with another claimer does not block; it skips to
	// the next eligible item. Returns nil, nil when no item is eligible.
	ClaimNext(ctx context.Context) (*core.QueueItem, error)

	// Complete releases a claim, applying the retry policy:
	// success moves the item to completed; failure under the retry cap
	// returns it to pending; failure at the cap moves it to failed.
	// Callers must call Complete exactly once per claim they hold.
	Complete(ctx context.Context, queueID core.ID, success bool, errorMessage string, insightCount int) error

	// GetQueueItem retrieves a single queue item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetQueueItem(ctx context.Context, id core.ID) (*core.QueueItem, error)

	// GetQueueItemsByStatus retrieves all items currently in the given status.
	GetQueueItemsByStatus(ctx context.Context, status core.QueueStatus) ([]*core.QueueItem, error)

	// Stats reports queue counts by status and the age of the oldest
	// pending item, for monitoring and staleness alarms.
	Stats(ctx context.Context) (*core.QueueStats, error)

	// ResetFailed moves failed items back to pending with RetryCount
	// reset to zero. Failed items whose document already has a live
	// item or extracted insights are skipped, so a reset never creates
	// a second live item for a document. Returns the number reset.
	ResetFailed(ctx context.Context) (int, error)

	// CleanupCompleted deletes completed items older than the retention
	// window. Returns the number of items deleted.
	CleanupCompleted(ctx context.Context, olderThan time.Duration) (int, error)

	// ReclaimStale sweeps items stuck in processing longer than the
	// timeout (worker presumed crashed): items under the retry cap go
	// back to pending, items at the cap go to failed. Returns the
	// number of items swept.
	ReclaimStale(ctx context.Context, timeout time.Duration) (int, error)
}

// ChunkFilter restricts semantic search to chunks whose parent document
// matches. Zero values mean "no restriction". Filters never apply to the
// chunk itself.
type ChunkFilter struct {
	Source       string
	Category     core.DocumentCategory
	ProjectId    core.ID
	OccurredFrom time.Time
	OccurredTo   time.Time
}

// ChunkRepository provides the chunk and embedding store.
type ChunkRepository interface {
	Repository
	// ReplaceChunks deletes any existing chunk set for the document and
	// inserts the new set as a single atomic operation; partial replacement
	// is never observable. Chunks are assigned dense zero-based indexes in
	// input order and generated IDs. Returns the stored chunks.
	ReplaceChunks(ctx context.Context, documentID core.ID, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunks retrieves the chunk set for a document, ordered by index.
	GetChunks(ctx context.Context, documentID core.ID) ([]*core.Chunk, error)

	// FindSimilarChunks ranks chunks by cosine similarity to the query
	// vector. Only chunks with similarity strictly greater than
	// minSimilarity are returned, up to limit results, ordered by
	// similarity descending with ties broken by more recent parent
	// OccurredAt. Each match carries the parent document.
	FindSimilarChunks(ctx context.Context, vector []float32, minSimilarity float32, limit int, filter *ChunkFilter) ([]*core.ChunkMatch, error)
}

// InsightRepository provides operations for managing extracted insights.
// Insight rows are append-only per document apart from the Resolved flag.
type InsightRepository interface {
	Repository
	// AddInsights adds one or more insights to storage.
	// For insights with ID=0, generates new IDs from sequence.
	// Sets CreatedAt if not already set.
	AddInsights(ctx context.Context, insights ...*core.Insight) ([]*core.Insight, error)

	// GetInsight retrieves a single insight by ID.
	// Returns ErrNotFound if the insight doesn't exist.
	GetInsight(ctx context.Context, id core.ID) (*core.Insight, error)

	// GetInsightsByDocument retrieves all insights extracted from a document.
	GetInsightsByDocument(ctx context.Context, documentID core.ID) ([]*core.Insight, error)

	// HasInsights reports whether any insights exist for the document.
	HasInsights(ctx context.Context, documentID core.ID) (bool, error)

	// DeleteInsightsByDocument removes all insights for a document.
	// Used only by forced reprocessing. Returns the number deleted.
	DeleteInsightsByDocument(ctx context.Context, documentID core.ID) (int, error)

	// SetResolved updates the resolved flag, the one mutable insight field.
	// Returns ErrNotFound if the insight doesn't exist.
	SetResolved(ctx context.Context, id core.ID, resolved bool) error
}

// ProjectRepository provides operations for managing canonical projects.
type ProjectRepository interface {
	Repository
	// AddProjects adds one or more projects to storage.
	// Uses content-based IDs (IDFromContent of the project tuple).
	AddProjects(ctx context.Context, projects ...*core.Project) ([]*core.Project, error)

	// UpdateProjects updates existing projects.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any project doesn't exist.
	UpdateProjects(ctx context.Context, projects ...*core.Project) ([]*core.Project, error)

	// GetProject retrieves a single project by ID.
	// Returns ErrNotFound if the project doesn't exist.
	GetProject(ctx context.Context, id core.ID) (*core.Project, error)

	// FindProjectByName finds a project by exact name.
	// Returns ErrNotFound if no matching project exists.
	FindProjectByName(ctx context.Context, name string) (*core.Project, error)

	// ListProjects retrieves all projects, for in-memory mention matching.
	ListProjects(ctx context.Context) ([]*core.Project, error)
}
