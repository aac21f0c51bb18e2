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
	"log/slog"
	"time"

	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
	"github.com/poiesic/insightd/transcript"
)

// Service is the administrative surface of the processing queue: it decides
// which documents enter the queue and provides the monitoring and recovery
// operations. Claiming and processing items is the Worker's job.
type Service struct {
	documents storage.DocumentRepository
	queue     storage.QueueRepository
	insights  storage.InsightRepository
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets a custom logger. Default is slog.Default().
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a queue service.
func NewService(
	documents storage.DocumentRepository,
	queue storage.QueueRepository,
	insights storage.InsightRepository,
	opts ...ServiceOption,
) (*Service, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if queue == nil {
		return nil, ErrQueueRepositoryRequired
	}
	if insights == nil {
		return nil, ErrInsightRepositoryRequired
	}

	s := &Service{
		documents: documents,
		queue:     queue,
		insights:  insights,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Enqueue classifies the document and, when it looks like a meeting
// transcript, inserts a pending queue item. Returns false when the
// document is not a meeting, already has a non-terminal queue item, or
// already has insights. A stored category takes precedence over
// re-classification.
func (s *Service) Enqueue(ctx context.Context, documentID core.ID) (bool, error) {
	doc, err := s.documents.GetDocument(ctx, documentID)
	if err != nil {
		return false, err
	}

	category := doc.Category
	if category == 0 {
		category = transcript.Classify(doc.Title, doc.Content)
	}
	if category != core.CategoryMeeting {
		s.logger.Debug("document is not a meeting transcript, skipping",
			"documentID", documentID, "title", doc.Title)
		return false, nil
	}

	return s.queue.Enqueue(ctx, doc.Id, doc.Title)
}

// Backfill sweeps all documents, classifying and enqueuing meetings that
// have neither a non-terminal queue item nor existing insights. Used to
// recover from classifier gaps or documents ingested while no trigger was
// in place. Returns the number of documents enqueued.
func (s *Service) Backfill(ctx context.Context) (int, error) {
	docs, err := s.documents.ListDocuments(ctx)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return enqueued, err
		}

		ok, err := s.Enqueue(ctx, doc.Id)
		if err != nil {
			return enqueued, err
		}
		if ok {
			enqueued++
		}
	}

	s.logger.Info("backfill complete", "scanned", len(docs), "enqueued", enqueued)
	return enqueued, nil
}

// ForceReprocess deletes the document's existing insights and enqueues it
// again, bypassing classification. The insight deletion is what makes the
// new queue item eligible; without it Enqueue would refuse the duplicate.
func (s *Service) ForceReprocess(ctx context.Context, documentID core.ID) (bool, error) {
	doc, err := s.documents.GetDocument(ctx, documentID)
	if err != nil {
		return false, err
	}

	deleted, err := s.insights.DeleteInsightsByDocument(ctx, documentID)
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		s.logger.Info("deleted insights for reprocessing", "documentID", documentID, "count", deleted)
	}

	return s.queue.Enqueue(ctx, doc.Id, doc.Title)
}

// Stats reports queue counts by status and the age of the oldest pending
// item.
func (s *Service) Stats(ctx context.Context) (*core.QueueStats, error) {
	return s.queue.Stats(ctx)
}

// ResetFailed moves all failed items back to pending with their retry
// budget restored. Returns the number of items reset.
func (s *Service) ResetFailed(ctx context.Context) (int, error) {
	return s.queue.ResetFailed(ctx)
}

// CleanupCompleted deletes completed items older than the given number of
// days. Returns the number of items deleted.
func (s *Service) CleanupCompleted(ctx context.Context, olderThanDays int) (int, error) {
	return s.queue.CleanupCompleted(ctx, time.Duration(olderThanDays)*24*time.Hour)
}

// ReclaimStale returns items stuck in processing longer than the timeout
// back to pending. Returns the number of items reclaimed.
func (s *Service) ReclaimStale(ctx context.Context, timeout time.Duration) (int, error) {
	return s.queue.ReclaimStale(ctx, timeout)
}
