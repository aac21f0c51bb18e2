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


package core

import (
	"fmt"
	"time"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Content must not be empty
//   - OccurredAt, when set, must not be in the future
//
// NOT validated (populated downstream):
//   - ProjectId (0 is valid: not every document resolves to a project)
//   - Participants (filled by speaker extraction)
//   - ID (0 is valid from database sequences)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	if !doc.OccurredAt.IsZero() && !IsValidTimestamp(doc.OccurredAt) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateQueueItem validates a QueueItem according to domain rules.
func ValidateQueueItem(item *QueueItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidQueueItem)
	}

	if item.DocumentId == 0 {
		return fmt.Errorf("%w: document reference required", ErrInvalidQueueItem)
	}

	if err := ValidateQueueStatus(item.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQueueItem, err)
	}

	if item.RetryCount < 0 {
		return fmt.Errorf("%w: retry count cannot be negative", ErrInvalidQueueItem)
	}

	return nil
}

// ValidateQueueStatus validates that a QueueStatus has a valid value.
func ValidateQueueStatus(status QueueStatus) error {
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
}

// ValidateInsight validates an Insight according to domain rules.
//
// Validation rules:
//   - DocumentId must reference a document
//   - Type must be in the closed insight type set
//   - Title must not be empty
//   - Confidence must be in [0,1]
//
// NOT validated:
//   - ProjectId (0 is a legitimate unresolved-project outcome)
//   - DocumentDate (zero only transiently, before stamping)
func ValidateInsight(insight *Insight) error {
	if insight == nil {
		return fmt.Errorf("%w: insight is nil", ErrInvalidInsight)
	}

	if insight.DocumentId == 0 {
		return fmt.Errorf("%w: document reference required", ErrInvalidInsight)
	}

	if _, ok := insightTypeNames[insight.Type]; !ok {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidInsight, ErrInvalidInsightType, insight.Type)
	}

	if insight.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInsight, ErrEmptyTitle)
	}

	if insight.Confidence < 0 || insight.Confidence > 1 {
		return fmt.Errorf("%w: %w: value %f", ErrInvalidInsight, ErrInvalidConfidence, insight.Confidence)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// The dense 0..N-1 index invariant is a per-set property enforced by
// the chunk store's replace operation, not here.
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.DocumentId == 0 {
		return fmt.Errorf("%w: document reference required", ErrInvalidChunk)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if chunk.Index < 0 {
		return fmt.Errorf("%w: index cannot be negative", ErrInvalidChunk)
	}

	return nil
}

// ValidateProject validates a Project according to domain rules.
func ValidateProject(project *Project) error {
	if project == nil {
		return fmt.Errorf("%w: project is nil", ErrInvalidProject)
	}

	if project.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProject, ErrEmptyProjectName)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
