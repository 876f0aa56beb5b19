// ABOUTME: Tests for project store operations
// ABOUTME: Covers CRUD, per-owner name uniqueness, and task cascade on delete

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectStore_Create(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")

	p := &Project{OwnerID: owner.ID, Name: "alpha", Description: "first project"}
	require.NoError(t, store.CreateProject(ctx, p))
	assert.NotZero(t, p.ID)

	retrieved, err := store.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, retrieved.OwnerID)
	assert.Equal(t, "alpha", retrieved.Name)
	assert.Equal(t, "first project", retrieved.Description)
}

func TestProjectStore_Create_DuplicateNameSameOwner(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	require.NoError(t, store.CreateProject(ctx, &Project{OwnerID: owner.ID, Name: "alpha"}))

	err := store.CreateProject(ctx, &Project{OwnerID: owner.ID, Name: "alpha"})
	assert.ErrorIs(t, err, ErrDuplicateProjectName)
}

func TestProjectStore_Create_SameNameDifferentOwners(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")

	require.NoError(t, store.CreateProject(ctx, &Project{OwnerID: alice.ID, Name: "alpha"}))
	// Uniqueness is scoped per owner
	require.NoError(t, store.CreateProject(ctx, &Project{OwnerID: bob.ID, Name: "alpha"}))
}

func TestProjectStore_List_OnlyOwned(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")

	require.NoError(t, store.CreateProject(ctx, &Project{OwnerID: alice.ID, Name: "a1"}))
	require.NoError(t, store.CreateProject(ctx, &Project{OwnerID: alice.ID, Name: "a2"}))
	require.NoError(t, store.CreateProject(ctx, &Project{OwnerID: bob.ID, Name: "b1"}))

	projects, err := store.ListProjects(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	for _, p := range projects {
		assert.Equal(t, alice.ID, p.OwnerID)
	}
}

func TestProjectStore_Update(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	p := &Project{OwnerID: owner.ID, Name: "alpha"}
	require.NoError(t, store.CreateProject(ctx, p))

	p.Name = "renamed"
	p.Description = "updated"
	require.NoError(t, store.UpdateProject(ctx, p))

	retrieved, err := store.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", retrieved.Name)
	assert.Equal(t, "updated", retrieved.Description)
}

func TestProjectStore_Update_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.UpdateProject(context.Background(), &Project{ID: 9999, Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectStore_Delete_RemovesItsTasks(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, store, "alice")
	p := &Project{OwnerID: owner.ID, Name: "alpha"}
	require.NoError(t, store.CreateProject(ctx, p))

	inProject := &Task{OwnerID: owner.ID, ProjectID: &p.ID, Title: "in project"}
	require.NoError(t, store.CreateTask(ctx, inProject))
	loose := &Task{OwnerID: owner.ID, Title: "loose"}
	require.NoError(t, store.CreateTask(ctx, loose))

	require.NoError(t, store.DeleteProject(ctx, p.ID))

	_, err := store.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetTask(ctx, inProject.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Tasks outside the project survive
	_, err = store.GetTask(ctx, loose.ID)
	require.NoError(t, err)
}

func TestProjectStore_Delete_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.DeleteProject(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
