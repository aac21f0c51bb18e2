package ingest

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrQueueServiceRequired is returned when a queue service is not provided.
	ErrQueueServiceRequired = errors.New("queue service required")
)
