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
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
)

const (
	// claimMaxAttempts bounds re-scans when concurrent claimers conflict
	// on the same pending item.
	claimMaxAttempts = 8

	// maxRetryCount is the number of processing failures after which an
	// item moves to the failed state instead of back to pending.
	maxRetryCount = 3
)

// QueueRepository implements storage.QueueRepository for BadgerDB.
//
// Pending items carry a secondary index key ordered by creation time so
// that ClaimNext always sees the oldest eligible item first. An active
// marker keyed by document ID enforces that at most one non-terminal
// item exists per document.
type QueueRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.QueueRepository = (*QueueRepository)(nil)

// NewQueueRepository creates a new QueueRepository.
func NewQueueRepository(backend *Backend) (*QueueRepository, error) {
	idSeq, err := backend.GetSequence(queueItemIDSeq)
	if err != nil {
		return nil, err
	}

	return &QueueRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *QueueRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *QueueRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Enqueue adds a pending item for the document unless the document
// already has a non-terminal item or extracted insights. Both checks
// and the insert happen in a single transaction. Returns true when a
// new item was created.
func (r *QueueRepository) Enqueue(ctx context.Context, documentID core.ID, title string) (bool, error) {
	enqueued := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// A live item for this document means the work is already
		// scheduled or running.
		_, err := tx.Get(makeQueueActiveKey(documentID))
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		// Already-extracted insights make a new item pointless.
		has, err := hasInsightsForDocument(tx, documentID)
		if err != nil {
			return err
		}
		if has {
			return nil
		}

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

		item := &core.QueueItem{
			Id:         core.ID(nextID),
			DocumentId: documentID,
			Title:      title,
			Status:     core.StatusPending,
			CreatedAt:  time.Now().UTC(),
		}

		if err := writeQueueItem(tx, item); err != nil {
			return err
		}
		if err := tx.Set(makeQueuePendingKey(item.CreatedAt, item.Id), storage.MarshalID(item.Id)); err != nil {
			return err
		}
		if err := tx.Set(makeQueueActiveKey(documentID), storage.MarshalID(item.Id)); err != nil {
			return err
		}

		enqueued = true
		return tx.Commit()
	}, true)

	return enqueued, err
}

// ClaimNext atomically claims the oldest pending item and moves it to
// processing, incrementing its retry count and stamping StartedAt.
// Counting attempts at claim time means a worker that crashes mid-claim
// still burns a retry, so a poison document cannot cycle through the
// staleness sweep forever. Returns (nil, nil) when the queue has no
// pending work.
//
// Concurrent claimers race on the same index entry; the loser's commit
// fails with a conflict and it re-scans, skipping the now-claimed row.
// Retries are bounded so a claimer never spins under heavy contention.
func (r *QueueRepository) ClaimNext(ctx context.Context) (*core.QueueItem, error) {
	for attempt := 0; attempt < claimMaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var claimed *core.QueueItem
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(queuePendingPrefix + ":")
			opts.PrefetchValues = false
			iter := tx.NewIterator(opts)

			var itemID core.ID
			found := false
			for iter.Rewind(); iter.Valid(); iter.Next() {
				err := iter.Item().Value(func(val []byte) error {
					var err error
					itemID, err = storage.UnmarshalID(val)
					return err
				})
				if err != nil {
					iter.Close()
					return err
				}
				found = true
				break
			}
			iter.Close()

			if !found {
				return nil
			}

			item, err := readQueueItem(tx, makeQueueItemKey(itemID))
			if err != nil {
				return err
			}
			if item == nil {
				return storage.ErrNotFound
			}

			pendingKey := makeQueuePendingKey(item.CreatedAt, item.Id)
			if err := tx.Delete(pendingKey); err != nil {
				return err
			}

			item.Status = core.StatusProcessing
			item.RetryCount++
			item.StartedAt = time.Now().UTC()
			if err := writeQueueItem(tx, item); err != nil {
				return err
			}

			claimed = item
			return tx.Commit()
		}, true)

		if err == nil {
			return claimed, nil
		}
		if !errors.Is(err, badger.ErrConflict) {
			return nil, err
		}
	}

	return nil, storage.ErrClaimContention
}

// Complete finishes a processing item. On success the item moves to
// completed with its insight count recorded. On failure the item moves
// back to pending until the retry budget is exhausted, at which point
// it becomes failed. The active marker is removed only on terminal
// transitions.
func (r *QueueRepository) Complete(ctx context.Context, queueID core.ID, success bool, errorMessage string, insightCount int) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := readQueueItem(tx, makeQueueItemKey(queueID))
		if err != nil {
			return err
		}
		if item == nil {
			return storage.ErrNotFound
		}
		if item.Status != core.StatusProcessing {
			return core.ErrInvalidStatus
		}

		now := time.Now().UTC()

		switch {
		case success:
			item.Status = core.StatusCompleted
			item.CompletedAt = now
			item.InsightCount = insightCount
			item.ErrorMessage = ""
			if err := tx.Delete(makeQueueActiveKey(item.DocumentId)); err != nil {
				return err
			}

		// RetryCount was already charged by the claim.
		case item.RetryCount >= maxRetryCount:
			item.Status = core.StatusFailed
			item.CompletedAt = now
			item.ErrorMessage = errorMessage
			if err := tx.Delete(makeQueueActiveKey(item.DocumentId)); err != nil {
				return err
			}

		default:
			item.Status = core.StatusPending
			item.ErrorMessage = errorMessage
			item.StartedAt = time.Time{}
			// Re-index under the original creation time so retried work
			// keeps its place at the head of the queue.
			if err := tx.Set(makeQueuePendingKey(item.CreatedAt, item.Id), storage.MarshalID(item.Id)); err != nil {
				return err
			}
		}

		if err := writeQueueItem(tx, item); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetQueueItem retrieves a single queue item by ID.
func (r *QueueRepository) GetQueueItem(ctx context.Context, id core.ID) (*core.QueueItem, error) {
	var result *core.QueueItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readQueueItem(tx, makeQueueItemKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetQueueItemsByStatus retrieves all queue items in the given status.
func (r *QueueRepository) GetQueueItemsByStatus(ctx context.Context, status core.QueueStatus) ([]*core.QueueItem, error) {
	var results []*core.QueueItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return forEachQueueItem(tx, func(item *core.QueueItem) error {
			if item.Status == status {
				results = append(results, item)
			}
			return nil
		})
	}, false)
	return results, err
}

// Stats reports queue depth per status and the age of the oldest
// pending item.
func (r *QueueRepository) Stats(ctx context.Context) (*core.QueueStats, error) {
	stats := &core.QueueStats{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		err := forEachQueueItem(tx, func(item *core.QueueItem) error {
			stats.Total++
			switch item.Status {
			case core.StatusPending:
				stats.Pending++
			case core.StatusProcessing:
				stats.Processing++
			case core.StatusCompleted:
				stats.Completed++
			case core.StatusFailed:
				stats.Failed++
			}
			return nil
		})
		if err != nil {
			return err
		}

		// The head of the pending index is the oldest pending item.
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queuePendingPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		iter.Rewind()
		if iter.Valid() {
			var itemID core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				itemID, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}
			item, err := readQueueItem(tx, makeQueueItemKey(itemID))
			if err != nil {
				return err
			}
			if item != nil {
				stats.OldestPendingAge = time.Since(item.CreatedAt)
			}
		}
		return nil
	}, false)

	return stats, err
}

// ResetFailed moves all failed items back to pending with a fresh
// retry budget. A failed item is terminal, so its document may have
// been legitimately re-enqueued in the meantime; such items are left
// failed to preserve the one-live-item-per-document invariant. The
// same applies when the document has since grown insights. Returns
// the number of items reset.
func (r *QueueRepository) ResetFailed(ctx context.Context) (int, error) {
	reset := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var failed []*core.QueueItem
		err := forEachQueueItem(tx, func(item *core.QueueItem) error {
			if item.Status == core.StatusFailed {
				failed = append(failed, item)
			}
			return nil
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, item := range failed {
			_, err := tx.Get(makeQueueActiveKey(item.DocumentId))
			if err == nil {
				continue
			}
			if err != badger.ErrKeyNotFound {
				return err
			}
			has, err := hasInsightsForDocument(tx, item.DocumentId)
			if err != nil {
				return err
			}
			if has {
				continue
			}

			item.Status = core.StatusPending
			item.RetryCount = 0
			item.ErrorMessage = ""
			item.StartedAt = time.Time{}
			item.CompletedAt = time.Time{}
			// Re-created at the tail so fresh work is not starved.
			item.CreatedAt = now

			if err := writeQueueItem(tx, item); err != nil {
				return err
			}
			if err := tx.Set(makeQueuePendingKey(item.CreatedAt, item.Id), storage.MarshalID(item.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeQueueActiveKey(item.DocumentId), storage.MarshalID(item.Id)); err != nil {
				return err
			}
			reset++
		}
		return tx.Commit()
	}, true)

	return reset, err
}

// CleanupCompleted deletes completed items older than the given age.
// Failed items are kept for inspection until reset or cleaned by hand.
func (r *QueueRepository) CleanupCompleted(ctx context.Context, olderThan time.Duration) (int, error) {
	removed := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		cutoff := time.Now().UTC().Add(-olderThan)

		var stale []*core.QueueItem
		err := forEachQueueItem(tx, func(item *core.QueueItem) error {
			if item.Status == core.StatusCompleted && !item.CompletedAt.IsZero() && item.CompletedAt.Before(cutoff) {
				stale = append(stale, item)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, item := range stale {
			if err := tx.Delete(makeQueueItemKey(item.Id)); err != nil {
				return err
			}
			removed++
		}
		return tx.Commit()
	}, true)

	return removed, err
}

// ReclaimStale sweeps processing items whose worker has been silent for
// longer than the timeout. Each claim already charged the retry count,
// so an item under the cap goes back to pending and an item at the cap
// goes to failed; without the cap check a document that crashes its
// worker every time would cycle through the sweep forever.
func (r *QueueRepository) ReclaimStale(ctx context.Context, timeout time.Duration) (int, error) {
	reclaimed := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		cutoff := time.Now().UTC().Add(-timeout)
		now := time.Now().UTC()

		var stale []*core.QueueItem
		err := forEachQueueItem(tx, func(item *core.QueueItem) error {
			if item.Status == core.StatusProcessing && !item.StartedAt.IsZero() && item.StartedAt.Before(cutoff) {
				stale = append(stale, item)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, item := range stale {
			if item.RetryCount >= maxRetryCount {
				item.Status = core.StatusFailed
				item.CompletedAt = now
				item.ErrorMessage = "processing timed out"
				item.StartedAt = time.Time{}
				if err := tx.Delete(makeQueueActiveKey(item.DocumentId)); err != nil {
					return err
				}
				if err := writeQueueItem(tx, item); err != nil {
					return err
				}
				reclaimed++
				continue
			}

			item.Status = core.StatusPending
			item.StartedAt = time.Time{}
			if err := writeQueueItem(tx, item); err != nil {
				return err
			}
			if err := tx.Set(makeQueuePendingKey(item.CreatedAt, item.Id), storage.MarshalID(item.Id)); err != nil {
				return err
			}
			reclaimed++
		}
		return tx.Commit()
	}, true)

	return reclaimed, err
}

// writeQueueItem stores the item's primary record.
func writeQueueItem(tx *badger.Txn, item *core.QueueItem) error {
	return tx.Set(makeQueueItemKey(item.Id), storage.MarshalQueueItem(item))
}

// readQueueItem reads a queue item from the transaction.
func readQueueItem(tx *badger.Txn, key []byte) (*core.QueueItem, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var result *core.QueueItem
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		result, unmarshalErr = storage.UnmarshalQueueItem(val)
		return unmarshalErr
	})
	return result, err
}

// forEachQueueItem iterates every queue item record.
func forEachQueueItem(tx *badger.Txn, fn func(*core.QueueItem) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(queueItemPrefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var item *core.QueueItem
		err := iter.Item().Value(func(val []byte) error {
			var unmarshalErr error
			item, unmarshalErr = storage.UnmarshalQueueItem(val)
			return unmarshalErr
		})
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}
