package badger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
)

func addTestDocument(t *testing.T, repos *Repositories, title string) *core.Document {
	t.Helper()
	doc := &core.Document{
		Title:      title,
		Content:    "content for " + title,
		Category:   core.CategoryMeeting,
		Source:     "upload",
		OccurredAt: time.Now().UTC(),
	}
	added, err := repos.Documents.AddDocuments(context.Background(), doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}
	return added[0]
}

func TestEnqueueAndClaim(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Standup notes")

	enqueued, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title)
	if err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}
	if !enqueued {
		t.Fatal("Expected first enqueue to create an item")
	}

	// A second enqueue for the same document is a no-op while the
	// first item is still live.
	enqueued, err = repos.Queue.Enqueue(ctx, doc.Id, doc.Title)
	if err != nil {
		t.Fatalf("Failed on duplicate enqueue: %v", err)
	}
	if enqueued {
		t.Fatal("Expected duplicate enqueue to be rejected")
	}

	item, err := repos.Queue.ClaimNext(ctx)
	if err != nil {
		t.Fatalf("Failed to claim: %v", err)
	}
	if item == nil {
		t.Fatal("Expected a claimed item")
	}
	if item.DocumentId != doc.Id {
		t.Fatalf("Expected document %d, got %d", doc.Id, item.DocumentId)
	}
	if item.Status != core.StatusProcessing {
		t.Fatalf("Expected processing status, got %s", item.Status)
	}
	if item.StartedAt.IsZero() {
		t.Fatal("Expected StartedAt to be set")
	}

	// Queue is empty now; claim returns nil without error.
	next, err := repos.Queue.ClaimNext(ctx)
	if err != nil {
		t.Fatalf("Failed on empty claim: %v", err)
	}
	if next != nil {
		t.Fatalf("Expected no item, got %+v", next)
	}
}

func TestClaimOrderIsOldestFirst(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	var docIDs []core.ID
	for _, title := range []string{"first", "second", "third"} {
		doc := addTestDocument(t, repos, title)
		docIDs = append(docIDs, doc.Id)
		if _, err := repos.Queue.Enqueue(ctx, doc.Id, title); err != nil {
			t.Fatalf("Failed to enqueue %s: %v", title, err)
		}
		// Pending order is keyed by creation time at microsecond
		// resolution.
		time.Sleep(2 * time.Millisecond)
	}

	for i, want := range docIDs {
		item, err := repos.Queue.ClaimNext(ctx)
		if err != nil {
			t.Fatalf("Failed to claim item %d: %v", i, err)
		}
		if item == nil {
			t.Fatalf("Expected item %d, got nil", i)
		}
		if item.DocumentId != want {
			t.Fatalf("Claim %d: expected document %d, got %d", i, want, item.DocumentId)
		}
	}
}

func TestConcurrentClaimsAreExclusive(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	const items = 20
	for i := 0; i < items; i++ {
		doc := addTestDocument(t, repos, "doc")
		if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
			t.Fatalf("Failed to enqueue: %v", err)
		}
	}

	var mu sync.Mutex
	claimed := make(map[core.ID]int)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item, err := repos.Queue.ClaimNext(ctx)
				if errors.Is(err, storage.ErrClaimContention) {
					continue
				}
				if err != nil {
					t.Errorf("Claim failed: %v", err)
					return
				}
				if item == nil {
					return
				}
				mu.Lock()
				claimed[item.Id]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(claimed) != items {
		t.Fatalf("Expected %d distinct claims, got %d", items, len(claimed))
	}
	for id, count := range claimed {
		if count != 1 {
			t.Fatalf("Item %d claimed %d times", id, count)
		}
	}
}

func TestCompleteSuccess(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Weekly sync")

	if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}
	item, err := repos.Queue.ClaimNext(ctx)
	if err != nil {
		t.Fatalf("Failed to claim: %v", err)
	}

	if err := repos.Queue.Complete(ctx, item.Id, true, "", 5); err != nil {
		t.Fatalf("Failed to complete: %v", err)
	}

	got, err := repos.Queue.GetQueueItem(ctx, item.Id)
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if got.Status != core.StatusCompleted {
		t.Fatalf("Expected completed, got %s", got.Status)
	}
	if got.InsightCount != 5 {
		t.Fatalf("Expected 5 insights, got %d", got.InsightCount)
	}
	if got.CompletedAt.IsZero() {
		t.Fatal("Expected CompletedAt to be set")
	}

	// With the item terminal the document can be enqueued again.
	enqueued, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title)
	if err != nil {
		t.Fatalf("Failed to re-enqueue: %v", err)
	}
	if !enqueued {
		t.Fatal("Expected re-enqueue after completion to succeed")
	}
}

func TestFailureRetriesThenFails(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Flaky doc")

	if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}

	var itemID core.ID
	for attempt := 1; attempt <= maxRetryCount; attempt++ {
		item, err := repos.Queue.ClaimNext(ctx)
		if err != nil {
			t.Fatalf("Attempt %d: failed to claim: %v", attempt, err)
		}
		if item == nil {
			t.Fatalf("Attempt %d: expected item back in pending", attempt)
		}
		itemID = item.Id
		if err := repos.Queue.Complete(ctx, item.Id, false, "extraction failed", 0); err != nil {
			t.Fatalf("Attempt %d: failed to record failure: %v", attempt, err)
		}
	}

	got, err := repos.Queue.GetQueueItem(ctx, itemID)
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if got.Status != core.StatusFailed {
		t.Fatalf("Expected failed after %d attempts, got %s", maxRetryCount, got.Status)
	}
	if got.RetryCount != maxRetryCount {
		t.Fatalf("Expected retry count %d, got %d", maxRetryCount, got.RetryCount)
	}
	if got.ErrorMessage != "extraction failed" {
		t.Fatalf("Expected error message preserved, got %q", got.ErrorMessage)
	}

	// Failed is terminal, nothing left to claim.
	item, err := repos.Queue.ClaimNext(ctx)
	if err != nil {
		t.Fatalf("Failed on empty claim: %v", err)
	}
	if item != nil {
		t.Fatalf("Expected empty queue, got %+v", item)
	}
}

func TestResetFailed(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Retryable doc")

	if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}
	for attempt := 0; attempt < maxRetryCount; attempt++ {
		item, err := repos.Queue.ClaimNext(ctx)
		if err != nil || item == nil {
			t.Fatalf("Failed to claim: %v", err)
		}
		if err := repos.Queue.Complete(ctx, item.Id, false, "boom", 0); err != nil {
			t.Fatalf("Failed to record failure: %v", err)
		}
	}

	reset, err := repos.Queue.ResetFailed(ctx)
	if err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}
	if reset != 1 {
		t.Fatalf("Expected 1 reset, got %d", reset)
	}

	pending, err := repos.Queue.GetQueueItemsByStatus(ctx, core.StatusPending)
	if err != nil {
		t.Fatalf("Failed to list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].RetryCount != 0 {
		t.Fatalf("Expected one pending item with a fresh retry budget, got %+v", pending)
	}

	item, err := repos.Queue.ClaimNext(ctx)
	if err != nil {
		t.Fatalf("Failed to claim reset item: %v", err)
	}
	if item == nil {
		t.Fatal("Expected reset item to be claimable")
	}
	if item.RetryCount != 1 {
		t.Fatalf("Expected the claim to charge the first retry, got %d", item.RetryCount)
	}
	if item.ErrorMessage != "" {
		t.Fatalf("Expected error message cleared, got %q", item.ErrorMessage)
	}
}

func TestResetFailedSkipsReEnqueuedDocument(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Twice-queued doc")

	if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}
	var failedID core.ID
	for attempt := 0; attempt < maxRetryCount; attempt++ {
		item, err := repos.Queue.ClaimNext(ctx)
		if err != nil || item == nil {
			t.Fatalf("Failed to claim: %v", err)
		}
		failedID = item.Id
		if err := repos.Queue.Complete(ctx, item.Id, false, "boom", 0); err != nil {
			t.Fatalf("Failed to record failure: %v", err)
		}
	}

	// The failed item is terminal, so the document can be enqueued again.
	enqueued, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title)
	if err != nil {
		t.Fatalf("Failed to re-enqueue: %v", err)
	}
	if !enqueued {
		t.Fatal("Expected re-enqueue after terminal failure to succeed")
	}

	// Resetting must not resurrect the failed item alongside the live one.
	reset, err := repos.Queue.ResetFailed(ctx)
	if err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}
	if reset != 0 {
		t.Fatalf("Expected 0 reset while the document has a live item, got %d", reset)
	}

	pending, err := repos.Queue.GetQueueItemsByStatus(ctx, core.StatusPending)
	if err != nil {
		t.Fatalf("Failed to list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Expected exactly one pending item for the document, got %d", len(pending))
	}

	got, err := repos.Queue.GetQueueItem(ctx, failedID)
	if err != nil {
		t.Fatalf("Failed to get failed item: %v", err)
	}
	if got.Status != core.StatusFailed {
		t.Fatalf("Expected skipped item to stay failed, got %s", got.Status)
	}
}

func TestResetFailedSkipsDocumentsWithInsights(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Flaky then manual")

	if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}
	for attempt := 0; attempt < maxRetryCount; attempt++ {
		item, err := repos.Queue.ClaimNext(ctx)
		if err != nil || item == nil {
			t.Fatalf("Failed to claim: %v", err)
		}
		if err := repos.Queue.Complete(ctx, item.Id, false, "boom", 0); err != nil {
			t.Fatalf("Failed to record failure: %v", err)
		}
	}

	// Insights landed through another path; re-extracting is pointless.
	_, err = repos.Insights.AddInsights(ctx, &core.Insight{
		DocumentId: doc.Id,
		Type:       core.InsightDecision,
		Title:      "Approved manually",
		Confidence: 0.9,
		Severity:   core.SeverityMedium,
	})
	if err != nil {
		t.Fatalf("Failed to add insight: %v", err)
	}

	reset, err := repos.Queue.ResetFailed(ctx)
	if err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}
	if reset != 0 {
		t.Fatalf("Expected 0 reset for a document with insights, got %d", reset)
	}
}

func TestReclaimStale(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Orphaned doc")

	if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}
	claimed, err := repos.Queue.ClaimNext(ctx)
	if err != nil || claimed == nil {
		t.Fatalf("Failed to claim: %v", err)
	}

	// Nothing is stale yet.
	reclaimed, err := repos.Queue.ReclaimStale(ctx, time.Hour)
	if err != nil {
		t.Fatalf("Failed to reclaim: %v", err)
	}
	if reclaimed != 0 {
		t.Fatalf("Expected 0 reclaimed, got %d", reclaimed)
	}

	// With a zero timeout every processing item counts as abandoned.
	time.Sleep(2 * time.Millisecond)
	reclaimed, err = repos.Queue.ReclaimStale(ctx, time.Millisecond)
	if err != nil {
		t.Fatalf("Failed to reclaim: %v", err)
	}
	if reclaimed != 1 {
		t.Fatalf("Expected 1 reclaimed, got %d", reclaimed)
	}

	item, err := repos.Queue.ClaimNext(ctx)
	if err != nil {
		t.Fatalf("Failed to claim reclaimed item: %v", err)
	}
	if item == nil {
		t.Fatal("Expected reclaimed item to be claimable")
	}
	if item.Id != claimed.Id {
		t.Fatalf("Expected item %d, got %d", claimed.Id, item.Id)
	}
	if item.RetryCount != 2 {
		t.Fatalf("Expected second claim to charge the second retry, got %d", item.RetryCount)
	}
}

func TestReclaimStaleFailsAtRetryCap(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Crash-looping doc")

	if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}

	// A worker that claims and dies never calls Complete. Each claim
	// charges a retry, so the sweep must eventually stop resurrecting
	// the item instead of cycling it forever.
	var itemID core.ID
	for attempt := 0; attempt < maxRetryCount; attempt++ {
		claimed, err := repos.Queue.ClaimNext(ctx)
		if err != nil || claimed == nil {
			t.Fatalf("Failed to claim on attempt %d: %v", attempt, err)
		}
		itemID = claimed.Id
		if claimed.RetryCount != attempt+1 {
			t.Fatalf("Expected retry count %d on attempt %d, got %d", attempt+1, attempt, claimed.RetryCount)
		}
		time.Sleep(2 * time.Millisecond)
		if _, err := repos.Queue.ReclaimStale(ctx, time.Millisecond); err != nil {
			t.Fatalf("Failed to reclaim on attempt %d: %v", attempt, err)
		}
	}

	item, err := repos.Queue.GetQueueItem(ctx, itemID)
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item.Status != core.StatusFailed {
		t.Fatalf("Expected failed after exhausting retries, got %s", item.Status)
	}
	if item.ErrorMessage != "processing timed out" {
		t.Fatalf("Unexpected error message %q", item.ErrorMessage)
	}

	next, err := repos.Queue.ClaimNext(ctx)
	if err != nil {
		t.Fatalf("Failed final claim: %v", err)
	}
	if next != nil {
		t.Fatalf("Expected empty queue after terminal failure, got item %d", next.Id)
	}

	// The terminal failure releases the document for future enqueues.
	enqueued, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title)
	if err != nil {
		t.Fatalf("Failed to re-enqueue: %v", err)
	}
	if !enqueued {
		t.Fatal("Expected re-enqueue after terminal failure to succeed")
	}
}

func TestCleanupCompleted(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Done doc")

	if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}
	item, err := repos.Queue.ClaimNext(ctx)
	if err != nil || item == nil {
		t.Fatalf("Failed to claim: %v", err)
	}
	if err := repos.Queue.Complete(ctx, item.Id, true, "", 2); err != nil {
		t.Fatalf("Failed to complete: %v", err)
	}

	// Too young to clean.
	removed, err := repos.Queue.CleanupCompleted(ctx, time.Hour)
	if err != nil {
		t.Fatalf("Failed to cleanup: %v", err)
	}
	if removed != 0 {
		t.Fatalf("Expected 0 removed, got %d", removed)
	}

	time.Sleep(2 * time.Millisecond)
	removed, err = repos.Queue.CleanupCompleted(ctx, time.Millisecond)
	if err != nil {
		t.Fatalf("Failed to cleanup: %v", err)
	}
	if removed != 1 {
		t.Fatalf("Expected 1 removed, got %d", removed)
	}

	if _, err := repos.Queue.GetQueueItem(ctx, item.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after cleanup, got %v", err)
	}
}

func TestQueueStats(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	stats, err := repos.Queue.Stats(ctx)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("Expected empty stats, got %+v", stats)
	}

	for i := 0; i < 3; i++ {
		doc := addTestDocument(t, repos, "doc")
		if _, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title); err != nil {
			t.Fatalf("Failed to enqueue: %v", err)
		}
	}

	claimed, err := repos.Queue.ClaimNext(ctx)
	if err != nil || claimed == nil {
		t.Fatalf("Failed to claim: %v", err)
	}
	if err := repos.Queue.Complete(ctx, claimed.Id, true, "", 1); err != nil {
		t.Fatalf("Failed to complete: %v", err)
	}

	if _, err := repos.Queue.ClaimNext(ctx); err != nil {
		t.Fatalf("Failed to claim: %v", err)
	}

	stats, err = repos.Queue.Stats(ctx)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats.Pending != 1 || stats.Processing != 1 || stats.Completed != 1 {
		t.Fatalf("Unexpected stats: %+v", stats)
	}
	if stats.Total != 3 {
		t.Fatalf("Expected total 3, got %d", stats.Total)
	}
	if stats.OldestPendingAge <= 0 {
		t.Fatalf("Expected positive pending age, got %v", stats.OldestPendingAge)
	}
}

func TestEnqueueSkipsDocumentsWithInsights(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	doc := addTestDocument(t, repos, "Already processed")

	_, err = repos.Insights.AddInsights(ctx, &core.Insight{
		DocumentId: doc.Id,
		Type:       core.InsightActionItem,
		Title:      "Order rebar",
		Confidence: 0.9,
		Severity:   core.SeverityMedium,
	})
	if err != nil {
		t.Fatalf("Failed to add insight: %v", err)
	}

	enqueued, err := repos.Queue.Enqueue(ctx, doc.Id, doc.Title)
	if err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}
	if enqueued {
		t.Fatal("Expected enqueue to skip a document with insights")
	}
}
