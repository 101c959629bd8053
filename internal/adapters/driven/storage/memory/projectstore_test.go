package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
)

func TestProjectStore_SaveAndGet(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	project := domain.Project{
		ID:     "p1",
		Name:   "Invoice Sync",
		Target: domain.PlatformMuleSoft,
		Status: domain.StatusDraft,
	}

	err := store.Save(ctx, project)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice Sync", retrieved.Name)
	assert.Equal(t, domain.PlatformMuleSoft, retrieved.Target)
}

func TestProjectStore_Save_EmptyID(t *testing.T) {
	store := NewProjectStore()

	err := store.Save(context.Background(), domain.Project{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProjectStore_Save_ReplacesWholeRecord(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	first := domain.Project{
		ID:   "p1",
		Name: "First",
		Artifacts: domain.Artifacts{
			Prompt: "map everything",
		},
	}
	require.NoError(t, store.Save(ctx, first))

	// A later save with no prompt must not keep the old one.
	second := domain.Project{ID: "p1", Name: "Second"}
	require.NoError(t, store.Save(ctx, second))

	retrieved, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Second", retrieved.Name)
	assert.Empty(t, retrieved.Artifacts.Prompt)
}

func TestProjectStore_Get_NotFound(t *testing.T) {
	store := NewProjectStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectStore_List_NewestFirst(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Project{ID: "a", Name: "Oldest"}))
	require.NoError(t, store.Save(ctx, domain.Project{ID: "b", Name: "Middle"}))
	require.NoError(t, store.Save(ctx, domain.Project{ID: "c", Name: "Newest"}))

	// Re-saving an existing project must not change its position.
	require.NoError(t, store.Save(ctx, domain.Project{ID: "a", Name: "Oldest v2"}))

	projects, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "c", projects[0].ID)
	assert.Equal(t, "b", projects[1].ID)
	assert.Equal(t, "a", projects[2].ID)
	assert.Equal(t, "Oldest v2", projects[2].Name)
}

func TestProjectStore_Get_ReturnsCopy(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	project := domain.Project{
		ID: "p1",
		Artifacts: domain.Artifacts{
			Mappings: domain.MappingSet{
				{Source: "total", Target: "amount", Confidence: 1.0},
			},
		},
	}
	require.NoError(t, store.Save(ctx, project))

	first, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	first.Artifacts.Mappings[0].Target = "tampered"

	second, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "amount", second.Artifacts.Mappings[0].Target)
}
