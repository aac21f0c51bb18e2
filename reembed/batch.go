package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/insightd/ai"
	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/queue"
	"github.com/poiesic/insightd/storage"
)

// BatchProcessor re-embeds the chunk sets of a batch of documents.
type BatchProcessor struct {
	chunks         storage.ChunkRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(chunks storage.ChunkRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		chunks:         chunks,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process re-embeds every chunk of the given documents and writes the new
// vectors back. All chunk texts in the batch go through a single embedding
// call; each document's chunk set is then replaced atomically. Documents
// with no chunks are skipped. Returns the number of chunks updated.
func (bp *BatchProcessor) Process(ctx context.Context, docs []*core.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	chunksByDoc := make(map[core.ID][]*core.Chunk, len(docs))
	var texts []string
	for _, doc := range docs {
		chunks, err := bp.chunks.GetChunks(ctx, doc.Id)
		if err != nil {
			return 0, fmt.Errorf("failed to load chunks for document %d: %w", doc.Id, err)
		}
		if len(chunks) == 0 {
			continue
		}
		chunksByDoc[doc.Id] = chunks
		for _, chunk := range chunks {
			texts = append(texts, chunk.Content)
		}
	}

	if len(texts) == 0 {
		return 0, nil
	}

	var embeddings [][]float32
	err := queue.RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(texts) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(embeddings))
	}

	updated := 0
	next := 0
	for _, doc := range docs {
		chunks, ok := chunksByDoc[doc.Id]
		if !ok {
			continue
		}
		for _, chunk := range chunks {
			chunk.Vector = embeddings[next]
			next++
		}
		if _, err := bp.chunks.ReplaceChunks(ctx, doc.Id, chunks...); err != nil {
			return updated, fmt.Errorf("failed to replace chunks for document %d: %w", doc.Id, err)
		}
		updated += len(chunks)
	}

	return updated, nil
}
