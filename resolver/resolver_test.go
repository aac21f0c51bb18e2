package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/insightd/core"
	storagebadger "github.com/poiesic/insightd/storage/badger"
)

func newTestResolver(t *testing.T, projects ...*core.Project) *Resolver {
	t.Helper()

	repos, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	if len(projects) > 0 {
		_, err = repos.Projects.AddProjects(context.Background(), projects...)
		require.NoError(t, err)
	}

	r, err := NewResolver(context.Background(), repos.Projects)
	require.NoError(t, err)
	return r
}

func TestResolveExactName(t *testing.T) {
	r := newTestResolver(t,
		&core.Project{Name: "Riverside Tower"},
		&core.Project{Name: "Harbor Bridge Retrofit"},
	)

	id, ok := r.Resolve("riverside tower")
	require.True(t, ok)

	expected, ok2 := r.Resolve("Riverside Tower")
	require.True(t, ok2)
	assert.Equal(t, expected, id, "name matching should be case-insensitive")
}

func TestResolveAlias(t *testing.T) {
	r := newTestResolver(t,
		&core.Project{Name: "Riverside Tower", Aliases: []string{"RT", "the tower"}},
	)

	id, ok := r.Resolve("the tower")
	require.True(t, ok)
	assert.NotZero(t, id)

	_, ok = r.Resolve("the bridge")
	assert.False(t, ok)
}

func TestResolveKeywordOverlap(t *testing.T) {
	r := newTestResolver(t,
		&core.Project{Name: "Riverside Tower", Keywords: []string{"riverside", "tower", "crane"}},
		&core.Project{Name: "Harbor Bridge Retrofit", Keywords: []string{"harbor", "bridge"}},
	)

	id, ok := r.Resolve("crane delivery for the riverside site")
	require.True(t, ok, "two keyword matches should resolve")

	want, _ := r.Resolve("Riverside Tower")
	assert.Equal(t, want, id)

	// A single keyword match is below the overlap threshold.
	_, ok = r.Resolve("something about the harbor")
	assert.False(t, ok)
}

func TestResolveKeywordTieBreaksByUpdatedAt(t *testing.T) {
	older := &core.Project{
		Name:     "Project A",
		Keywords: []string{"foundation", "concrete"},
	}
	newer := &core.Project{
		Name:     "Project B",
		Keywords: []string{"foundation", "concrete"},
	}

	repos, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	_, err = repos.Projects.AddProjects(context.Background(), older)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = repos.Projects.AddProjects(context.Background(), newer)
	require.NoError(t, err)

	r, err := NewResolver(context.Background(), repos.Projects)
	require.NoError(t, err)

	id, ok := r.Resolve("foundation concrete pour schedule")
	require.True(t, ok)
	assert.Equal(t, newer.Id, id, "ties should go to the most recently updated project")
}

func TestResolveUnresolved(t *testing.T) {
	r := newTestResolver(t, &core.Project{Name: "Riverside Tower"})

	_, ok := r.Resolve("")
	assert.False(t, ok)

	_, ok = r.Resolve("unrelated mention")
	assert.False(t, ok)
}

func TestRefreshPicksUpNewProjects(t *testing.T) {
	repos, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	r, err := NewResolver(context.Background(), repos.Projects)
	require.NoError(t, err)

	_, ok := r.Resolve("Riverside Tower")
	assert.False(t, ok)

	_, err = repos.Projects.AddProjects(context.Background(), &core.Project{Name: "Riverside Tower"})
	require.NoError(t, err)

	require.NoError(t, r.Refresh(context.Background()))
	_, ok = r.Resolve("Riverside Tower")
	assert.True(t, ok)
}

func TestNewResolverRequiresRepository(t *testing.T) {
	_, err := NewResolver(context.Background(), nil)
	assert.ErrorIs(t, err, ErrProjectRepositoryRequired)
}
