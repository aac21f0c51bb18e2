package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
)

// InsightRepository implements storage.InsightRepository for BadgerDB.
type InsightRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.InsightRepository = (*InsightRepository)(nil)

// NewInsightRepository creates a new InsightRepository.
func NewInsightRepository(backend *Backend) (*InsightRepository, error) {
	idSeq, err := backend.GetSequence(insightIDSeq)
	if err != nil {
		return nil, err
	}

	return &InsightRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *InsightRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *InsightRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddInsights adds one or more insights to storage, maintaining the
// by-document index.
func (r *InsightRepository) AddInsights(ctx context.Context, insights ...*core.Insight) ([]*core.Insight, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, insight := range insights {
			if insight.Id == 0 {
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
				insight.Id = core.ID(nextID)
			}

			key := makeInsightKey(insight.Id)
			if err := tx.Set(key, storage.MarshalInsight(insight)); err != nil {
				return err
			}

			docKey := makeInsightDocKey(insight.DocumentId, insight.Id)
			if err := tx.Set(docKey, storage.MarshalID(insight.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return insights, err
}

// GetInsight retrieves a single insight by ID.
func (r *InsightRepository) GetInsight(ctx context.Context, id core.ID) (*core.Insight, error) {
	var result *core.Insight
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readInsight(tx, makeInsightKey(id))
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

// GetInsightsByDocument retrieves all insights extracted from a document.
func (r *InsightRepository) GetInsightsByDocument(ctx context.Context, documentID core.ID) ([]*core.Insight, error) {
	var results []*core.Insight
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialInsightDocKey(documentID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var insightID core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				insightID, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			insight, err := readInsight(tx, makeInsightKey(insightID))
			if err != nil {
				return err
			}
			if insight != nil {
				results = append(results, insight)
			}
		}
		return nil
	}, false)
	return results, err
}

// HasInsights reports whether any insights exist for the document.
func (r *InsightRepository) HasInsights(ctx context.Context, documentID core.ID) (bool, error) {
	var has bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		has, err = hasInsightsForDocument(tx, documentID)
		return err
	}, false)
	return has, err
}

// DeleteInsightsByDocument removes all of a document's insights,
// clearing the way for reprocessing. Returns the number deleted.
func (r *InsightRepository) DeleteInsightsByDocument(ctx context.Context, documentID core.ID) (int, error) {
	deleted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialInsightDocKey(documentID)
		iter := tx.NewIterator(opts)

		type pair struct {
			docKey    []byte
			insightID core.ID
		}
		var pairs []pair
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var insightID core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				insightID, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				iter.Close()
				return err
			}
			pairs = append(pairs, pair{
				docKey:    iter.Item().KeyCopy(nil),
				insightID: insightID,
			})
		}
		iter.Close()

		for _, p := range pairs {
			if err := tx.Delete(makeInsightKey(p.insightID)); err != nil {
				return err
			}
			if err := tx.Delete(p.docKey); err != nil {
				return err
			}
			deleted++
		}
		return tx.Commit()
	}, true)

	return deleted, err
}

// SetResolved flips an insight's resolved flag.
func (r *InsightRepository) SetResolved(ctx context.Context, id core.ID, resolved bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		insight, err := readInsight(tx, makeInsightKey(id))
		if err != nil {
			return err
		}
		if insight == nil {
			return storage.ErrNotFound
		}

		insight.Resolved = resolved
		if err := tx.Set(makeInsightKey(id), storage.MarshalInsight(insight)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// hasInsightsForDocument checks the by-document index inside an open
// transaction. Shared with the queue repository's enqueue check so both
// sides observe the same snapshot.
func hasInsightsForDocument(tx *badger.Txn, documentID core.ID) (bool, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makePartialInsightDocKey(documentID)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	iter.Rewind()
	return iter.Valid(), nil
}

// readInsight reads an insight from the transaction.
func readInsight(tx *badger.Txn, key []byte) (*core.Insight, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var result *core.Insight
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		result, unmarshalErr = storage.UnmarshalInsight(val)
		return unmarshalErr
	})
	return result, err
}
