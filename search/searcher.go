package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/insightd/ai"
	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
)

const (
	// DefaultThreshold is the minimum similarity a chunk must strictly
	// exceed to be returned.
	DefaultThreshold = 0.7

	// DefaultLimit is the maximum number of matches returned.
	DefaultLimit = 10
)

// Searcher provides semantic search over document chunks.
type Searcher struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	chunkRepository storage.ChunkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		chunkRepository: chunkRepository,
		embedder:        provider.Embedder(),
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Options tunes a single search. Passing nil means all defaults.
type Options struct {
	// Threshold is the minimum similarity, exclusive. A non-nil
	// Options takes it literally, so 0 keeps every chunk with any
	// positive similarity.
	Threshold float32

	// Limit caps the result count. 0 means DefaultLimit.
	Limit int

	// Filter restricts matches by parent document metadata. Filters
	// never apply to the chunk itself.
	Filter *storage.ChunkFilter

	// Verbatim keeps only chunks containing every significant query
	// word. Only meaningful for text queries.
	Verbatim bool
}

func (o *Options) threshold() float32 {
	if o == nil {
		return DefaultThreshold
	}
	return o.Threshold
}

func (o *Options) limit() int {
	if o == nil || o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

// Search ranks chunks by cosine similarity to the query vector. Results
// strictly exceed the threshold, are ordered by similarity descending
// with ties broken by the more recent parent OccurredAt, and each carries
// its parent document so callers can recency-weight independent of when
// the chunk was processed.
func (s *Searcher) Search(ctx context.Context, vector []float32, opts *Options) ([]*core.ChunkMatch, error) {
	var filter *storage.ChunkFilter
	if opts != nil {
		filter = opts.Filter
	}

	matches, err := s.chunkRepository.FindSimilarChunks(ctx, vector, opts.threshold(), opts.limit(), filter)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}
	return matches, nil
}

// SearchText embeds the query and searches with the resulting vector.
func (s *Searcher) SearchText(ctx context.Context, query string, opts *Options) ([]*core.ChunkMatch, error) {
	return s.SearchTextWithMonitor(ctx, query, opts, nil)
}

// SearchTextWithMonitor runs SearchText with monitoring. The monitor
// receives callbacks at each stage of the search.
func (s *Searcher) SearchTextWithMonitor(ctx context.Context, query string, opts *Options, monitor SearchMonitor) ([]*core.ChunkMatch, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(vector)

	matches, err := s.Search(ctx, vector, opts)
	if err != nil {
		return nil, err
	}
	monitor.AfterSimilaritySearch(matches)

	if opts != nil && opts.Verbatim {
		kept := matches[:0]
		for _, match := range matches {
			if !containsAllQueryWords(match.Chunk.Content, query) {
				continue
			}
			monitor.VerbatimHit(match.Chunk)
			kept = append(kept, match)
		}
		matches = kept
	}

	monitor.Finish(matches)
	return matches, nil
}
