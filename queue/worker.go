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

package queue

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/insightd/ai"
	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/resolver"
	"github.com/poiesic/insightd/storage"
	"github.com/poiesic/insightd/transcript"
)

const (
	// defaultPollInterval is how often an idle worker checks for pending items.
	defaultPollInterval = 5 * time.Second

	// defaultModelCallAttempts bounds the backoff retries around a single
	// model call. Exhausting these fails the claim, which consumes one
	// queue retry.
	defaultModelCallAttempts = 3

	// defaultModelCallBaseDelay is the initial backoff delay for model calls.
	defaultModelCallBaseDelay = time.Second
)

// Worker drains the processing queue: it claims pending items, runs
// insight extraction and chunk embedding for each claimed document, and
// releases the claim through Complete. Multiple workers may run against
// the same store; the claim primitive keeps them from colliding.
type Worker struct {
	documents    storage.DocumentRepository
	queue        storage.QueueRepository
	chunks       storage.ChunkRepository
	insights     storage.InsightRepository
	projects     *resolver.Resolver
	embedder     ai.Embedder
	extractor    ai.InsightExtractor
	chunker      *transcript.Chunker
	pool         *ants.Pool
	pollInterval time.Duration
	callAttempts int
	callDelay    time.Duration
	logger       *slog.Logger
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker) error

// WithPoolSize sets the number of claims processed concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) WorkerOption {
	return func(w *Worker) error {
		if size < 1 {
			size = 1
		}

		if w.pool != nil {
			w.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		w.pool = pool
		return nil
	}
}

// WithPollInterval sets how often an idle worker checks the queue.
func WithPollInterval(interval time.Duration) WorkerOption {
	return func(w *Worker) error {
		if interval > 0 {
			w.pollInterval = interval
		}
		return nil
	}
}

// WithModelRetry sets the retry policy for individual model calls made
// while holding a claim.
func WithModelRetry(attempts int, baseDelay time.Duration) WorkerOption {
	return func(w *Worker) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		w.callAttempts = attempts
		w.callDelay = baseDelay
		return nil
	}
}

// WithChunker sets a custom transcript chunker.
func WithChunker(chunker *transcript.Chunker) WorkerOption {
	return func(w *Worker) error {
		if chunker != nil {
			w.chunker = chunker
		}
		return nil
	}
}

// WithWorkerLogger sets a custom logger. Default is slog.Default().
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) error {
		if logger != nil {
			w.logger = logger
		}
		return nil
	}
}

// NewWorker creates a worker.
func NewWorker(
	documents storage.DocumentRepository,
	queue storage.QueueRepository,
	chunks storage.ChunkRepository,
	insights storage.InsightRepository,
	projects *resolver.Resolver,
	provider ai.AIProvider,
	opts ...WorkerOption,
) (*Worker, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if queue == nil {
		return nil, ErrQueueRepositoryRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if insights == nil {
		return nil, ErrInsightRepositoryRequired
	}
	if projects == nil {
		return nil, ErrResolverRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	w := &Worker{
		documents:    documents,
		queue:        queue,
		chunks:       chunks,
		insights:     insights,
		projects:     projects,
		embedder:     provider.Embedder(),
		extractor:    provider.InsightExtractor(),
		chunker:      transcript.NewChunker(),
		pool:         pool,
		pollInterval: defaultPollInterval,
		callAttempts: defaultModelCallAttempts,
		callDelay:    defaultModelCallBaseDelay,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(w); optErr != nil {
			w.Release()
			return nil, optErr
		}
	}

	return w, nil
}

// Run polls the queue until the context is canceled. Each poll fans out
// drain loops across the worker pool; an in-flight extraction is never
// canceled mid-claim, so cancellation takes effect between items.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		w.drain(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// drain starts one claim loop per free pool slot. Each loop claims and
// processes items until the queue is empty, so a burst of pending work is
// shared across the pool without over-claiming. Errors inside a loop are
// logged, not returned; the failing claim lands back on the queue row.
func (w *Worker) drain(ctx context.Context) {
	free := w.pool.Free()
	for i := 0; i < free; i++ {
		if err := w.pool.Submit(func() {
			for {
				if ctx.Err() != nil {
					return
				}
				processed, err := w.ProcessNext(context.Background())
				if err != nil {
					w.logger.Error("error processing queue item", "err", err)
					return
				}
				if !processed {
					return
				}
			}
		}); err != nil {
			w.logger.Error("error submitting drain loop", "err", err)
			return
		}
	}
}

// ProcessNext claims and processes a single queue item synchronously,
// releasing the claim through Complete before returning. Returns false
// when no pending item was available. Claim contention is not an error;
// the caller simply polls again.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	item, err := w.queue.ClaimNext(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrClaimContention) {
			return false, nil
		}
		return false, err
	}
	if item == nil {
		return false, nil
	}

	w.processClaim(ctx, item)
	return true, nil
}

// processClaim runs the full extraction pass for one claimed item and
// releases the claim exactly once.
func (w *Worker) processClaim(ctx context.Context, item *core.QueueItem) {
	insightCount, err := w.processDocument(ctx, item.DocumentId)
	if err != nil {
		w.logger.Error("processing failed", "queueID", item.Id, "documentID", item.DocumentId, "err", err)
		if completeErr := w.queue.Complete(ctx, item.Id, false, err.Error(), 0); completeErr != nil {
			w.logger.Error("error releasing failed claim", "queueID", item.Id, "err", completeErr)
		}
		return
	}

	if completeErr := w.queue.Complete(ctx, item.Id, true, "", insightCount); completeErr != nil {
		w.logger.Error("error releasing completed claim", "queueID", item.Id, "err", completeErr)
		return
	}

	w.logger.Info("document processed", "documentID", item.DocumentId, "insights", insightCount)
}

// processDocument extracts insights and rebuilds the chunk set for a
// document. Returns the number of insights stored.
func (w *Worker) processDocument(ctx context.Context, documentID core.ID) (int, error) {
	doc, err := w.documents.GetDocument(ctx, documentID)
	if err != nil {
		return 0, err
	}

	// Idempotence guard: a document that already has insights is never
	// re-extracted. Forced reprocessing deletes the old set first, which
	// is what makes it pass this check.
	hasInsights, err := w.insights.HasInsights(ctx, documentID)
	if err != nil {
		return 0, err
	}
	if hasInsights {
		w.logger.Debug("document already has insights, skipping extraction", "documentID", documentID)
		return 0, nil
	}

	documentDate, dateFallback := w.documentDate(doc)

	speakers := doc.Participants
	if len(speakers) == 0 {
		speakers = transcript.ExtractSpeakers(doc.Content, transcript.MaxDocumentSpeakers)
	}

	input := ai.ExtractionInput{
		Title:    doc.Title,
		Content:  doc.Content,
		Speakers: speakers,
	}
	if !dateFallback {
		input.Date = documentDate.Format("2006-01-02")
	}

	var raw []ai.RawInsight
	err = RetryWithBackoff(ctx, func() error {
		var extractErr error
		raw, extractErr = w.extractor.ExtractInsights(ctx, input)
		return extractErr
	}, w.callAttempts, w.callDelay)
	if err != nil {
		return 0, err
	}

	insights := w.buildInsights(doc, raw, documentDate, dateFallback)

	if err := w.rebuildChunks(ctx, doc); err != nil {
		return 0, err
	}

	if len(insights) > 0 {
		if _, err := w.insights.AddInsights(ctx, insights...); err != nil {
			return 0, err
		}
	}

	w.linkDocumentProject(ctx, doc, insights)

	return len(insights), nil
}

// documentDate returns the best-effort event date for the document: the
// stored OccurredAt, a date scanned from title or content, and finally
// the ingestion time flagged as a fallback.
func (w *Worker) documentDate(doc *core.Document) (time.Time, bool) {
	if !doc.OccurredAt.IsZero() {
		return doc.OccurredAt, false
	}
	if date, ok := transcript.ExtractDate(doc.Title, doc.Content); ok {
		return date, false
	}
	return doc.CreatedAt, true
}

// buildInsights validates raw extractor output into insight records,
// resolving project mentions along the way.
func (w *Worker) buildInsights(doc *core.Document, raw []ai.RawInsight, documentDate time.Time, dateFallback bool) []*core.Insight {
	insights := make([]*core.Insight, 0, len(raw))
	for _, r := range raw {
		insightType, ok := core.ParseInsightType(r.Type)
		if !ok {
			w.logger.Warn("dropping insight with unknown type", "type", r.Type, "documentID", doc.Id)
			continue
		}
		if strings.TrimSpace(r.Title) == "" {
			continue
		}

		insight := &core.Insight{
			DocumentId:      doc.Id,
			Type:            insightType,
			Title:           r.Title,
			Description:     r.Description,
			Severity:        core.ParseSeverity(r.Severity),
			Confidence:      r.Confidence,
			Assignee:        r.Assignee,
			FinancialImpact: r.FinancialImpact,
			DocumentDate:    documentDate,
			DateFallback:    dateFallback,
		}

		if r.DueDate != "" {
			if due, err := time.Parse("2006-01-02", r.DueDate); err == nil {
				insight.DueDate = due
			}
		}

		if r.ProjectName != "" {
			if projectID, ok := w.projects.Resolve(r.ProjectName); ok {
				insight.ProjectId = projectID
			}
		} else if doc.ProjectId != 0 {
			insight.ProjectId = doc.ProjectId
		}

		insights = append(insights, insight)
	}
	return insights
}

// rebuildChunks splits the document, embeds each chunk, and atomically
// replaces the document's chunk set.
func (w *Worker) rebuildChunks(ctx context.Context, doc *core.Document) error {
	chunks := w.chunker.Split(doc.Content)
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = w.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, w.callAttempts, w.callDelay)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return ErrEmbeddingCountMismatch
	}

	for i, chunk := range chunks {
		chunk.Vector = vectors[i]
	}

	_, err = w.chunks.ReplaceChunks(ctx, doc.Id, chunks...)
	return err
}

// linkDocumentProject backfills the document's project link when every
// resolved insight agrees on a single project. Disagreement or an
// existing link leaves the document untouched.
func (w *Worker) linkDocumentProject(ctx context.Context, doc *core.Document, insights []*core.Insight) {
	if doc.ProjectId != 0 {
		return
	}

	var projectID core.ID
	for _, insight := range insights {
		if insight.ProjectId == 0 {
			continue
		}
		if projectID == 0 {
			projectID = insight.ProjectId
			continue
		}
		if projectID != insight.ProjectId {
			return
		}
	}
	if projectID == 0 {
		return
	}

	doc.ProjectId = projectID
	if _, err := w.documents.UpdateDocuments(ctx, doc); err != nil {
		w.logger.Warn("error linking document to project", "documentID", doc.Id, "err", err)
	}
}

// Release frees the worker pool. The worker should not be used after
// calling Release.
func (w *Worker) Release() {
	if w.pool != nil {
		w.pool.Release()
	}
}
