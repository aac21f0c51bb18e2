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

package insightd

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/insightd/ai"
	"github.com/poiesic/insightd/ai/openai"
	"github.com/poiesic/insightd/ingest"
	"github.com/poiesic/insightd/queue"
	"github.com/poiesic/insightd/reembed"
	"github.com/poiesic/insightd/resolver"
	"github.com/poiesic/insightd/search"
	"github.com/poiesic/insightd/storage"
	"github.com/poiesic/insightd/storage/badger"
)

// Database bundles the storage backend, the repositories, and the AI
// provider, and acts as the factory for the pipeline components built on
// top of them.
type Database struct {
	backend      *badger.Backend
	documentRepo storage.DocumentRepository
	queueRepo    storage.QueueRepository
	chunkRepo    storage.ChunkRepository
	insightRepo  storage.InsightRepository
	projectRepo  storage.ProjectRepository
	provider     ai.AIProvider
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithAIProvider sets a pre-built AI provider, bypassing the config.
// Used by tests to inject mocks.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	repos, err := badger.NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	return &Database{
		backend:      backend,
		documentRepo: repos.Documents,
		queueRepo:    repos.Queue,
		chunkRepo:    repos.Chunks,
		insightRepo:  repos.Insights,
		projectRepo:  repos.Projects,
		provider:     provider,
		logger:       slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	for _, repo := range []storage.Repository{
		db.documentRepo, db.queueRepo, db.chunkRepo, db.insightRepo, db.projectRepo,
	} {
		if err := repo.Close(); err != nil {
			db.logger.Error("error closing repository", "err", err)
			return err
		}
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.documentRepo
}

func (db *Database) QueueRepository() storage.QueueRepository {
	return db.queueRepo
}

func (db *Database) ChunkRepository() storage.ChunkRepository {
	return db.chunkRepo
}

func (db *Database) InsightRepository() storage.InsightRepository {
	return db.insightRepo
}

func (db *Database) ProjectRepository() storage.ProjectRepository {
	return db.projectRepo
}

func (db *Database) NewQueueService(opts ...queue.ServiceOption) (*queue.Service, error) {
	return queue.NewService(db.documentRepo, db.queueRepo, db.insightRepo, opts...)
}

func (db *Database) NewWorker(ctx context.Context, opts ...queue.WorkerOption) (*queue.Worker, error) {
	projects, err := db.NewResolver(ctx)
	if err != nil {
		return nil, err
	}
	return queue.NewWorker(db.documentRepo, db.queueRepo, db.chunkRepo, db.insightRepo,
		projects, db.provider, opts...)
}

func (db *Database) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	service, err := db.NewQueueService()
	if err != nil {
		return nil, err
	}
	return ingest.NewPipeline(db.documentRepo, service, opts...)
}

func (db *Database) NewResolver(ctx context.Context) (*resolver.Resolver, error) {
	return resolver.NewResolver(ctx, db.projectRepo)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.chunkRepo, db.provider, opts...)
}

func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(db.documentRepo, db.chunkRepo, db.provider.Embedder(), config, progress)
}
