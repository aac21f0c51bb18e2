package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/insightd/ai/mock"
	"github.com/poiesic/insightd/core"
	storagebadger "github.com/poiesic/insightd/storage/badger"
)

var staleVector = []float32{1, 0, 0}
var freshVector = []float32{0, 1, 0}

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     1,
		RetryDelay:     time.Millisecond,
	}
}

func freshEmbedder() *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = freshVector
		}
		return vectors, nil
	}
	return embedder
}

func addDocumentWithChunks(t *testing.T, repos *storagebadger.Repositories, title string, contents ...string) *core.Document {
	t.Helper()
	ctx := context.Background()

	added, err := repos.Documents.AddDocuments(ctx, &core.Document{Title: title, Content: title})
	require.NoError(t, err)

	if len(contents) > 0 {
		chunks := make([]*core.Chunk, len(contents))
		for i, content := range contents {
			chunks[i] = &core.Chunk{Content: content, Vector: staleVector}
		}
		_, err = repos.Chunks.ReplaceChunks(ctx, added[0].Id, chunks...)
		require.NoError(t, err)
	}
	return added[0]
}

func TestRunReembedsAllChunks(t *testing.T) {
	repos, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	ctx := context.Background()

	doc1 := addDocumentWithChunks(t, repos, "Site meeting", "crane schedule", "permit paperwork")
	doc2 := addDocumentWithChunks(t, repos, "Budget call", "cost review")
	doc3 := addDocumentWithChunks(t, repos, "Unprocessed upload")

	var out bytes.Buffer
	reembedder, err := NewReembedder(repos.Documents, repos.Chunks, freshEmbedder(), testConfig(), &out)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(ctx))

	for _, doc := range []*core.Document{doc1, doc2} {
		chunks, err := repos.Chunks.GetChunks(ctx, doc.Id)
		require.NoError(t, err)
		for _, chunk := range chunks {
			assert.Equal(t, freshVector, chunk.Vector)
		}
	}

	// Content and ordering survive the vector rewrite.
	chunks, err := repos.Chunks.GetChunks(ctx, doc1.Id)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "crane schedule", chunks[0].Content)
	assert.Equal(t, "permit paperwork", chunks[1].Content)

	empty, err := repos.Chunks.GetChunks(ctx, doc3.Id)
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.Contains(t, out.String(), "Starting re-embedding of 3 documents")
	assert.Contains(t, out.String(), "Updated 3 chunks across 3 documents")
}

func TestRunEmptyDatabase(t *testing.T) {
	repos, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	var out bytes.Buffer
	reembedder, err := NewReembedder(repos.Documents, repos.Chunks, freshEmbedder(), testConfig(), &out)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Contains(t, out.String(), "No documents found")
}

func TestRunPropagatesEmbedderFailure(t *testing.T) {
	repos, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	ctx := context.Background()

	doc := addDocumentWithChunks(t, repos, "Site meeting", "crane schedule")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("model unavailable")
	}

	var out bytes.Buffer
	reembedder, err := NewReembedder(repos.Documents, repos.Chunks, embedder, testConfig(), &out)
	require.NoError(t, err)

	err = reembedder.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")

	// Stored vectors are untouched on failure.
	chunks, err := repos.Chunks.GetChunks(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, staleVector, chunks[0].Vector)
}

func TestNewReembedderRequiresDependencies(t *testing.T) {
	repos, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	var out bytes.Buffer

	_, err = NewReembedder(nil, repos.Chunks, freshEmbedder(), nil, &out)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)

	_, err = NewReembedder(repos.Documents, nil, freshEmbedder(), nil, &out)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewReembedder(repos.Documents, repos.Chunks, nil, nil, &out)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
