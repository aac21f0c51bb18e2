package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/insightd/core"
	"github.com/poiesic/insightd/storage"
)

func TestProjectBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	project := &core.Project{
		Name:     "Riverside Tower",
		Aliases:  []string{"riverside", "tower project"},
		Keywords: []string{"riverside", "tower", "downtown"},
		Status:   "active",
	}

	added, err := repos.Projects.AddProjects(ctx, project)
	if err != nil {
		t.Fatalf("Failed to add project: %v", err)
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	got, err := repos.Projects.GetProject(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get project: %v", err)
	}
	if got.Name != "Riverside Tower" {
		t.Fatalf("Expected 'Riverside Tower', got %q", got.Name)
	}
	if len(got.Aliases) != 2 || len(got.Keywords) != 3 {
		t.Fatalf("Expected aliases and keywords preserved, got %+v", got)
	}
}

func TestFindProjectByNameIsCaseInsensitive(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Projects.AddProjects(ctx, &core.Project{Name: "Harbor Point", Status: "active"})
	if err != nil {
		t.Fatalf("Failed to add project: %v", err)
	}

	got, err := repos.Projects.FindProjectByName(ctx, "harbor point")
	if err != nil {
		t.Fatalf("Failed to find project: %v", err)
	}
	if got == nil || got.Name != "Harbor Point" {
		t.Fatalf("Expected 'Harbor Point', got %+v", got)
	}

	missing, err := repos.Projects.FindProjectByName(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Failed on missing lookup: %v", err)
	}
	if missing != nil {
		t.Fatalf("Expected nil for unknown name, got %+v", missing)
	}
}

func TestDuplicateProjectNameRejected(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Projects.AddProjects(ctx, &core.Project{Name: "Harbor Point", Status: "active"})
	if err != nil {
		t.Fatalf("Failed to add project: %v", err)
	}

	_, err = repos.Projects.AddProjects(ctx, &core.Project{Name: "HARBOR POINT", Status: "active"})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestProjectRenameMovesNameIndex(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Projects.AddProjects(ctx, &core.Project{Name: "Old Name", Status: "active"})
	if err != nil {
		t.Fatalf("Failed to add project: %v", err)
	}

	project := added[0]
	project.Name = "New Name"
	if _, err := repos.Projects.UpdateProjects(ctx, project); err != nil {
		t.Fatalf("Failed to update: %v", err)
	}

	old, err := repos.Projects.FindProjectByName(ctx, "Old Name")
	if err != nil {
		t.Fatalf("Failed on old lookup: %v", err)
	}
	if old != nil {
		t.Fatal("Expected old name index entry to be gone")
	}

	got, err := repos.Projects.FindProjectByName(ctx, "New Name")
	if err != nil {
		t.Fatalf("Failed on new lookup: %v", err)
	}
	if got == nil || got.Id != project.Id {
		t.Fatalf("Expected renamed project, got %+v", got)
	}
}

func TestListProjects(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Projects.AddProjects(ctx,
		&core.Project{Name: "A", Status: "active"},
		&core.Project{Name: "B", Status: "active"},
		&core.Project{Name: "C", Status: "archived"},
	)
	if err != nil {
		t.Fatalf("Failed to add projects: %v", err)
	}

	projects, err := repos.Projects.ListProjects(ctx)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("Expected 3 projects, got %d", len(projects))
	}
}
