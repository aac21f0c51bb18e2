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

package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/queue"
	"github.com/poiesic/insightd/storage"
	"github.com/poiesic/insightd/transcript"
)

// Pipeline stores incoming documents and hands meetings to the processing
// queue. The store is synchronous; the classify-and-enqueue step runs on a
// worker pool so a slow queue never delays the caller's write.
type Pipeline struct {
	documents storage.DocumentRepository
	queue     *queue.Service
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for the async enqueue step.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingest pipeline.
func NewPipeline(
	documents storage.DocumentRepository,
	queueService *queue.Service,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if queueService == nil {
		return nil, ErrQueueServiceRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		queue:     queueService,
		pool:      pool,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestOptions holds optional parameters for ingestion.
type IngestOptions struct {
	Source     string            // Origin of the document (e.g. "upload", "drive")
	OccurredAt time.Time         // Real-world event time; scanned from the text when zero
	ProjectId  core.ID           // Known project link, 0 when unknown
	Metadata   map[string]string // Optional metadata to attach to the document
}

// Ingest stores a document, classifying it and stamping participants and
// the event date, then submits the enqueue step asynchronously. Errors
// during async enqueue are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, title, content string, opts *IngestOptions) (*core.Document, error) {
	if opts == nil {
		opts = &IngestOptions{}
	}

	occurredAt := opts.OccurredAt
	if occurredAt.IsZero() {
		if date, ok := transcript.ExtractDate(title, content); ok {
			occurredAt = date
		}
	}

	doc := &core.Document{
		Title:        title,
		Content:      content,
		Category:     transcript.Classify(title, content),
		Source:       opts.Source,
		OccurredAt:   occurredAt,
		ProjectId:    opts.ProjectId,
		Participants: transcript.ExtractSpeakers(content, transcript.MaxDocumentSpeakers),
		Metadata:     opts.Metadata,
	}

	added, err := p.documents.AddDocuments(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc = added[0]

	// Submit for async enqueue
	p.pool.Submit(func() {
		enqueued, err := p.queue.Enqueue(context.Background(), doc.Id)
		if err != nil {
			p.logger.Error("error enqueuing document", "documentID", doc.Id, "err", err)
			return
		}
		if enqueued {
			p.logger.Debug("document enqueued for extraction", "documentID", doc.Id)
		}
	})

	return doc, nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
