package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
)

// ProjectRepository implements storage.ProjectRepository for BadgerDB.
type ProjectRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ProjectRepository = (*ProjectRepository)(nil)

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(backend *Backend) (*ProjectRepository, error) {
	idSeq, err := backend.GetSequence(projectIDSeq)
	if err != nil {
		return nil, err
	}

	return &ProjectRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ProjectRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ProjectRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddProjects adds one or more projects. Project names are unique
// case-insensitively; a clash fails the whole batch.
func (r *ProjectRepository) AddProjects(ctx context.Context, projects ...*core.Project) ([]*core.Project, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, project := range projects {
			nameKey := makeProjectNameKey(project.Name)
			_, err := tx.Get(nameKey)
			if err == nil {
				return storage.ErrDuplicateKey
			}
			if err != badger.ErrKeyNotFound {
				return err
			}

			if project.Id == 0 {
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
				project.Id = core.ID(nextID)
			}

			if project.InsertedAt.IsZero() {
				project.InsertedAt = time.Now().UTC()
			}
			project.UpdatedAt = project.InsertedAt

			if err := tx.Set(makeProjectKey(project.Id), storage.MarshalProject(project)); err != nil {
				return err
			}
			if err := tx.Set(nameKey, storage.MarshalID(project.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return projects, err
}

// UpdateProjects updates existing projects, moving the name index when
// a project is renamed.
func (r *ProjectRepository) UpdateProjects(ctx context.Context, projects ...*core.Project) ([]*core.Project, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, project := range projects {
			old, err := readProject(tx, makeProjectKey(project.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			project.UpdatedAt = time.Now().UTC()

			if old.Name != project.Name {
				if err := tx.Delete(makeProjectNameKey(old.Name)); err != nil {
					return err
				}
				if err := tx.Set(makeProjectNameKey(project.Name), storage.MarshalID(project.Id)); err != nil {
					return err
				}
			}

			if err := tx.Set(makeProjectKey(project.Id), storage.MarshalProject(project)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return projects, err
}

// GetProject retrieves a single project by ID.
func (r *ProjectRepository) GetProject(ctx context.Context, id core.ID) (*core.Project, error) {
	var result *core.Project
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readProject(tx, makeProjectKey(id))
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

// FindProjectByName looks a project up by exact name, ignoring case.
// Returns (nil, nil) when no project has that name.
func (r *ProjectRepository) FindProjectByName(ctx context.Context, name string) (*core.Project, error) {
	var result *core.Project
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeProjectNameKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		var projectID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			projectID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readProject(tx, makeProjectKey(projectID))
		return err
	}, false)
	return result, err
}

// ListProjects retrieves all projects.
func (r *ProjectRepository) ListProjects(ctx context.Context) ([]*core.Project, error) {
	var results []*core.Project
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(projectPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var project *core.Project
			err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				project, unmarshalErr = storage.UnmarshalProject(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			results = append(results, project)
		}
		return nil
	}, false)
	return results, err
}

// readProject reads a project from the transaction.
func readProject(tx *badger.Txn, key []byte) (*core.Project, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var result *core.Project
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		result, unmarshalErr = storage.UnmarshalProject(val)
		return unmarshalErr
	})
	return result, err
}
