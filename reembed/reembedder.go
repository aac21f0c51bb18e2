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

package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/insightd/ai"
	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
)

// Config holds configuration for the re-embedding sweep.
type Config struct {
	// BatchSize is the number of documents to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of documents)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for embedding calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder orchestrates the re-embedding of every chunk in a database.
type Reembedder struct {
	documents storage.DocumentRepository
	chunks    storage.ChunkRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *DocumentIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(documents storage.DocumentRepository, chunks storage.ChunkRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		documents: documents,
		chunks:    chunks,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(chunks, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewDocumentIterator(documents, config.BatchSize),
	}, nil
}

// Run executes the re-embedding sweep. Every chunk in the database is
// re-embedded with the configured embedder; each document's chunk set is
// replaced atomically as its batch completes, so an interrupted run leaves
// every document either fully re-embedded or untouched.
func (r *Reembedder) Run(ctx context.Context) error {
	docs, err := r.documents.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	totalDocs := len(docs)
	if totalDocs == 0 {
		fmt.Fprintf(r.progress, "No documents found in database\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting re-embedding of %d documents (batch size: %d)\n",
		totalDocs, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, totalDocs, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	updatedChunks := 0

	err = r.iterator.ForEach(ctx, func(batch []*core.Document) error {
		updated, err := r.processor.Process(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		updatedChunks += updated
		processed += len(batch)
		tracker.Update(processed)

		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Re-embedding complete. Updated %d chunks across %d documents in %v\n",
		updatedChunks, totalDocs, elapsed.Round(time.Second))

	return nil
}
