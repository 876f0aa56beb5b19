// ABOUTME: Tests for principal propagation through request context
// ABOUTME: Covers attach, retrieve, missing, and panic behavior

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seapoint/taskboard/internal/store"
)

func TestWithPrincipal_RoundTrip(t *testing.T) {
	user := &store.User{ID: 7, Handle: "alice"}
	ctx := WithPrincipal(context.Background(), user)

	got := PrincipalFromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "alice", got.Handle)
}

func TestPrincipalFromContext_Missing(t *testing.T) {
	assert.Nil(t, PrincipalFromContext(context.Background()))
}

func TestMustPrincipalFromContext_PanicsWhenMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustPrincipalFromContext(context.Background())
	})
}

func TestMustPrincipalFromContext_ReturnsWhenPresent(t *testing.T) {
	ctx := WithPrincipal(context.Background(), &store.User{ID: 1, Handle: "alice"})
	assert.NotPanics(t, func() {
		got := MustPrincipalFromContext(ctx)
		assert.Equal(t, "alice", got.Handle)
	})
}
