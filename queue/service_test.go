package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/insightd/core"
	storagebadger "github.com/poiesic/insightd/storage/badger"
)

func newTestService(t *testing.T) (*Service, *storagebadger.Repositories) {
	t.Helper()

	repos, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	service, err := NewService(repos.Documents, repos.Queue, repos.Insights)
	require.NoError(t, err)
	return service, repos
}

func TestEnqueueClassifiesDocuments(t *testing.T) {
	service, repos := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		doc     *core.Document
		enqueue bool
	}{
		{
			name: "meeting by title keyword",
			doc: &core.Document{
				Title:   "Friday Standup",
				Content: "Notes from the morning.",
			},
			enqueue: true,
		},
		{
			name: "meeting by speaker lines",
			doc: &core.Document{
				Title: "Notes 2024-09-23",
				Content: `Sarah: We poured the footings today.
Mike: Inspection is booked for Thursday.
Sarah: Rebar delivery confirmed.`,
			},
			enqueue: true,
		},
		{
			name: "plain document",
			doc: &core.Document{
				Title:   "Safety manual",
				Content: "Hard hats are required on site at all times. Report hazards to the foreman.",
			},
			enqueue: false,
		},
		{
			name: "stored category wins over title",
			doc: &core.Document{
				Title:    "Budget spreadsheet",
				Content:  "Q3 figures.",
				Category: core.CategoryMeeting,
			},
			enqueue: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, err := repos.Documents.AddDocuments(ctx, tt.doc)
			require.NoError(t, err)

			enqueued, err := service.Enqueue(ctx, added[0].Id)
			require.NoError(t, err)
			assert.Equal(t, tt.enqueue, enqueued)
		})
	}
}

func TestEnqueueRejectsDuplicates(t *testing.T) {
	service, repos := newTestService(t)
	ctx := context.Background()

	added, err := repos.Documents.AddDocuments(ctx, &core.Document{
		Title:   "Kickoff Meeting",
		Content: "Agenda.",
	})
	require.NoError(t, err)

	enqueued, err := service.Enqueue(ctx, added[0].Id)
	require.NoError(t, err)
	require.True(t, enqueued)

	enqueued, err = service.Enqueue(ctx, added[0].Id)
	require.NoError(t, err)
	assert.False(t, enqueued, "a live queue item must block a second enqueue")
}

func TestBackfill(t *testing.T) {
	service, repos := newTestService(t)
	ctx := context.Background()

	docs := []*core.Document{
		{Title: "Monday Sync", Content: "Brief notes."},
		{Title: "Design Review Call", Content: "More notes."},
		{Title: "Invoice 4471", Content: "Amount due is $12,400 with payment terms of net 30."},
	}
	_, err := repos.Documents.AddDocuments(ctx, docs...)
	require.NoError(t, err)

	count, err := service.Backfill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "only the meetings should be enqueued")

	// A second sweep finds nothing new: live items block re-enqueue.
	count, err = service.Backfill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Pending)
}

func TestBackfillSkipsDocumentsWithInsights(t *testing.T) {
	service, repos := newTestService(t)
	ctx := context.Background()

	added, err := repos.Documents.AddDocuments(ctx, &core.Document{
		Title:   "Old Standup",
		Content: "Historic notes.",
	})
	require.NoError(t, err)

	_, err = repos.Insights.AddInsights(ctx, &core.Insight{
		DocumentId: added[0].Id,
		Type:       core.InsightDecision,
		Title:      "Already extracted",
	})
	require.NoError(t, err)

	count, err := service.Backfill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestForceReprocess(t *testing.T) {
	service, repos := newTestService(t)
	ctx := context.Background()

	added, err := repos.Documents.AddDocuments(ctx, &core.Document{
		Title:   "Weekly Sync",
		Content: "Notes.",
	})
	require.NoError(t, err)
	doc := added[0]

	_, err = repos.Insights.AddInsights(ctx, &core.Insight{
		DocumentId: doc.Id,
		Type:       core.InsightRisk,
		Title:      "Crane availability",
	})
	require.NoError(t, err)

	// Existing insights block the normal path.
	enqueued, err := service.Enqueue(ctx, doc.Id)
	require.NoError(t, err)
	require.False(t, enqueued)

	enqueued, err = service.ForceReprocess(ctx, doc.Id)
	require.NoError(t, err)
	assert.True(t, enqueued)

	has, err := repos.Insights.HasInsights(ctx, doc.Id)
	require.NoError(t, err)
	assert.False(t, has, "force reprocess must clear the old insight set")
}

func TestCleanupCompletedConvertsDays(t *testing.T) {
	service, repos := newTestService(t)
	ctx := context.Background()

	added, err := repos.Documents.AddDocuments(ctx, &core.Document{
		Title:   "Old Meeting",
		Content: "Notes.",
	})
	require.NoError(t, err)

	enqueued, err := service.Enqueue(ctx, added[0].Id)
	require.NoError(t, err)
	require.True(t, enqueued)

	item, err := repos.Queue.ClaimNext(ctx)
	require.NoError(t, err)
	require.NotNil(t, item)
	require.NoError(t, repos.Queue.Complete(ctx, item.Id, true, "", 0))

	// Freshly completed items survive a 30 day retention window.
	removed, err := service.CleanupCompleted(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	removed, err = service.CleanupCompleted(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestServiceReclaimStale(t *testing.T) {
	service, repos := newTestService(t)
	ctx := context.Background()

	added, err := repos.Documents.AddDocuments(ctx, &core.Document{
		Title:   "Stuck Meeting",
		Content: "Notes.",
	})
	require.NoError(t, err)

	enqueued, err := service.Enqueue(ctx, added[0].Id)
	require.NoError(t, err)
	require.True(t, enqueued)

	item, err := repos.Queue.ClaimNext(ctx)
	require.NoError(t, err)
	require.NotNil(t, item)

	time.Sleep(5 * time.Millisecond)

	reclaimed, err := service.ReclaimStale(ctx, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, reclaimed)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	repos, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	_, err = NewService(nil, repos.Queue, repos.Insights)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)

	_, err = NewService(repos.Documents, nil, repos.Insights)
	assert.ErrorIs(t, err, ErrQueueRepositoryRequired)

	_, err = NewService(repos.Documents, repos.Queue, nil)
	assert.ErrorIs(t, err, ErrInsightRepositoryRequired)
}
