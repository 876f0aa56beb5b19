// ABOUTME: Tests for owner-scoped project operations
// ABOUTME: Asserts not-owned is indistinguishable from not-found

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registerTwo registers two principals and returns their IDs.
func registerTwo(t *testing.T, creds *CredentialService) (aliceID, bobID int64) {
	t.Helper()
	ctx := context.Background()
	alice, err := creds.Register(ctx, "alice", "alice@example.com", "correct-horse")
	require.NoError(t, err)
	bob, err := creds.Register(ctx, "bob", "bob@example.com", "correct-horse")
	require.NoError(t, err)
	return alice.User.ID, bob.User.ID
}

func TestProjects_CreateAndGet(t *testing.T) {
	creds, projects, _, _ := newTestServices(t)
	ctx := context.Background()
	aliceID, _ := registerTwo(t, creds)

	p, err := projects.Create(ctx, aliceID, "alpha", "the first one")
	require.NoError(t, err)
	assert.Equal(t, aliceID, p.OwnerID)

	got, err := projects.Get(ctx, aliceID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Name)
}

func TestProjects_Create_Conflict(t *testing.T) {
	creds, projects, _, _ := newTestServices(t)
	ctx := context.Background()
	aliceID, _ := registerTwo(t, creds)

	_, err := projects.Create(ctx, aliceID, "alpha", "")
	require.NoError(t, err)
	_, err = projects.Create(ctx, aliceID, "alpha", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProjects_Create_EmptyName(t *testing.T) {
	creds, projects, _, _ := newTestServices(t)
	ctx := context.Background()
	aliceID, _ := registerTwo(t, creds)

	_, err := projects.Create(ctx, aliceID, "  ", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProjects_NotOwnedLooksLikeNotFound(t *testing.T) {
	creds, projects, _, _ := newTestServices(t)
	ctx := context.Background()
	aliceID, bobID := registerTwo(t, creds)

	p, err := projects.Create(ctx, aliceID, "alpha", "")
	require.NoError(t, err)

	// Bob reading alice's project gets exactly what he'd get for a
	// nonexistent ID.
	_, notOwned := projects.Get(ctx, bobID, p.ID)
	_, notFound := projects.Get(ctx, bobID, 99999)
	require.Error(t, notOwned)
	require.Error(t, notFound)
	assert.ErrorIs(t, notOwned, ErrNotFound)
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.Equal(t, notFound.Error(), notOwned.Error())

	// Same for update and delete
	_, err = projects.Update(ctx, bobID, p.ID, "stolen", "")
	assert.ErrorIs(t, err, ErrNotFound)
	err = projects.Delete(ctx, bobID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// And the project is untouched
	got, err := projects.Get(ctx, aliceID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Name)
}

func TestProjects_ListScopedToOwner(t *testing.T) {
	creds, projects, _, _ := newTestServices(t)
	ctx := context.Background()
	aliceID, bobID := registerTwo(t, creds)

	_, err := projects.Create(ctx, aliceID, "alpha", "")
	require.NoError(t, err)
	_, err = projects.Create(ctx, bobID, "beta", "")
	require.NoError(t, err)

	got, err := projects.List(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0].Name)
}

func TestProjects_Update(t *testing.T) {
	creds, projects, _, _ := newTestServices(t)
	ctx := context.Background()
	aliceID, _ := registerTwo(t, creds)

	p, err := projects.Create(ctx, aliceID, "alpha", "")
	require.NoError(t, err)

	updated, err := projects.Update(ctx, aliceID, p.ID, "renamed", "new desc")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "new desc", updated.Description)
}

func TestProjects_DeleteCascadesTasks(t *testing.T) {
	creds, projects, tasks, _ := newTestServices(t)
	ctx := context.Background()
	aliceID, _ := registerTwo(t, creds)

	p, err := projects.Create(ctx, aliceID, "alpha", "")
	require.NoError(t, err)
	task, err := tasks.Create(ctx, aliceID, TaskInput{Title: "in project", ProjectID: &p.ID})
	require.NoError(t, err)

	require.NoError(t, projects.Delete(ctx, aliceID, p.ID))

	_, err = tasks.Get(ctx, aliceID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjects_TasksTransitiveOwnership(t *testing.T) {
	creds, projects, tasks, _ := newTestServices(t)
	ctx := context.Background()
	aliceID, bobID := registerTwo(t, creds)

	p, err := projects.Create(ctx, aliceID, "alpha", "")
	require.NoError(t, err)
	_, err = tasks.Create(ctx, aliceID, TaskInput{Title: "t1", ProjectID: &p.ID})
	require.NoError(t, err)

	got, err := projects.Tasks(ctx, aliceID, p.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Reaching tasks through someone else's project hits the project
	// ownership wall first.
	_, err = projects.Tasks(ctx, bobID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
