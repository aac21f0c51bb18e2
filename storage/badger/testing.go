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

import "github.com/poiesic/insightd/storage"

// Repositories bundles every repository over a shared backend.
// Caller must close the repositories and the backend when done.
type Repositories struct {
	Documents storage.DocumentRepository
	Queue     storage.QueueRepository
	Chunks    storage.ChunkRepository
	Insights  storage.InsightRepository
	Projects  storage.ProjectRepository
	Backend   *Backend
}

// Close releases all repositories and the underlying backend.
func (r *Repositories) Close() error {
	for _, c := range []interface{ Close() error }{
		r.Documents, r.Queue, r.Chunks, r.Insights, r.Projects,
	} {
		if c != nil {
			c.Close()
		}
	}
	return r.Backend.Close()
}

// NewRepositories opens every repository on the given backend.
func NewRepositories(backend *Backend) (*Repositories, error) {
	repos := &Repositories{Backend: backend}

	docRepo, err := NewDocumentRepository(backend)
	if err != nil {
		return nil, err
	}
	repos.Documents = docRepo

	queueRepo, err := NewQueueRepository(backend)
	if err != nil {
		docRepo.Close()
		return nil, err
	}
	repos.Queue = queueRepo

	chunkRepo, err := NewChunkRepository(backend)
	if err != nil {
		docRepo.Close()
		queueRepo.Close()
		return nil, err
	}
	repos.Chunks = chunkRepo

	insightRepo, err := NewInsightRepository(backend)
	if err != nil {
		docRepo.Close()
		queueRepo.Close()
		chunkRepo.Close()
		return nil, err
	}
	repos.Insights = insightRepo

	projectRepo, err := NewProjectRepository(backend)
	if err != nil {
		docRepo.Close()
		queueRepo.Close()
		chunkRepo.Close()
		insightRepo.Close()
		return nil, err
	}
	repos.Projects = projectRepo

	return repos, nil
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must close the returned bundle when done.
func NewMemoryRepositories() (*Repositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	repos, err := NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return repos, nil
}
