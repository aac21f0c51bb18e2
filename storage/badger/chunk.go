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

package badger

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
//
// Chunks are keyed by (document, index) so a document's chunks form a
// contiguous key range and can be replaced wholesale in one
// transaction.
type ChunkRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	idSeq, err := backend.GetSequence(chunkIDSeq)
	if err != nil {
		return nil, err
	}

	return &ChunkRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ChunkRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// ReplaceChunks atomically swaps a document's chunks for the given set.
// Old chunks are deleted and new ones written in one transaction, so
// readers never observe a mix of old and new. Chunk indexes are
// reassigned densely in slice order.
func (r *ChunkRepository) ReplaceChunks(ctx context.Context, documentID core.ID, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialChunkKey(documentID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var oldKeys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			oldKeys = append(oldKeys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range oldKeys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		for i, chunk := range chunks {
			if chunk.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				chunk.Id = core.ID(nextID)
			}

			chunk.DocumentId = documentID
			chunk.Index = i
			if chunk.InsertedAt.IsZero() {
				chunk.InsertedAt = now
			}

			key := makeChunkKey(documentID, chunk.Index)
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// GetChunks retrieves a document's chunks in index order.
func (r *ChunkRepository) GetChunks(ctx context.Context, documentID core.ID) ([]*core.Chunk, error) {
	var results []*core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialChunkKey(documentID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				chunk, unmarshalErr = storage.UnmarshalChunk(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			results = append(results, chunk)
		}
		return nil
	}, false)
	return results, err
}

// FindSimilarChunks scans all chunks, scores them against the query
// vector by cosine similarity, and returns the best matches above
// minSimilarity. Filters apply to the parent document; matches carry
// the parent so callers need no second lookup.
//
// This is a full scan. The corpus stays small enough (thousands of
// chunks) that an index structure would not pay for itself.
func (r *ChunkRepository) FindSimilarChunks(ctx context.Context, vector []float32, minSimilarity float32, limit int, filter *storage.ChunkFilter) ([]*core.ChunkMatch, error) {
	var matches []*core.ChunkMatch
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		docs := make(map[core.ID]*core.Document)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				chunk, unmarshalErr = storage.UnmarshalChunk(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}

			if len(chunk.Vector) == 0 {
				continue
			}

			similarity := cosineSimilarity(vector, chunk.Vector)
			if similarity <= minSimilarity {
				continue
			}

			doc, ok := docs[chunk.DocumentId]
			if !ok {
				doc, err = readDocument(tx, makeDocumentKey(chunk.DocumentId))
				if err != nil {
					return err
				}
				docs[chunk.DocumentId] = doc
			}
			if doc == nil {
				// Orphaned chunk; the document was deleted out from
				// under it.
				continue
			}
			if !matchesFilter(doc, filter) {
				continue
			}

			matches = append(matches, &core.ChunkMatch{
				Chunk:      chunk,
				Similarity: similarity,
				Document:   doc,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		// Equal scores break toward the more recent document.
		return matches[i].Document.OccurredAt.After(matches[j].Document.OccurredAt)
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// matchesFilter applies document-level filters to a chunk's parent.
func matchesFilter(doc *core.Document, filter *storage.ChunkFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Source != "" && doc.Source != filter.Source {
		return false
	}
	if filter.Category != 0 && doc.Category != filter.Category {
		return false
	}
	if filter.ProjectId != 0 && doc.ProjectId != filter.ProjectId {
		return false
	}
	if !filter.OccurredFrom.IsZero() && doc.OccurredAt.Before(filter.OccurredFrom) {
		return false
	}
	if !filter.OccurredTo.IsZero() && !doc.OccurredAt.Before(filter.OccurredTo) {
		return false
	}
	return true
}
