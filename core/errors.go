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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidQueueItem indicates a QueueItem failed validation.
	ErrInvalidQueueItem = errors.New("invalid queue item")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidInsight indicates an Insight failed validation.
	ErrInvalidInsight = errors.New("invalid insight")

	// ErrInvalidProject indicates a Project failed validation.
	ErrInvalidProject = errors.New("invalid project")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidStatus indicates an invalid QueueStatus value.
	ErrInvalidStatus = errors.New("invalid queue status")

	// ErrInvalidInsightType indicates an InsightType outside the closed set.
	ErrInvalidInsightType = errors.New("invalid insight type")

	// ErrInvalidConfidence indicates a confidence score outside [0,1].
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyProjectName indicates the project Name field is empty.
	ErrEmptyProjectName = errors.New("project name cannot be empty")
)
