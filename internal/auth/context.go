// ABOUTME: Authentication context for tracking identity through request handlers
// ABOUTME: Provides WithPrincipal/PrincipalFromContext for propagating auth info via context

package auth

import (
	"context"

	"github.com/seapoint/taskboard/internal/store"
)

// principalKey is the key type for storing the principal in context.Context.
type principalKey struct{}

// WithPrincipal returns a new context with the authenticated principal attached.
func WithPrincipal(ctx context.Context, user *store.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// PrincipalFromContext retrieves the authenticated principal from the context,
// returning nil if not present.
func PrincipalFromContext(ctx context.Context) *store.User {
	val := ctx.Value(principalKey{})
	if val == nil {
		return nil
	}
	user, ok := val.(*store.User)
	if !ok {
		return nil
	}
	return user
}

// MustPrincipalFromContext retrieves the authenticated principal from the
// context, panicking if not present. Handlers mounted behind the auth
// middleware may rely on it.
func MustPrincipalFromContext(ctx context.Context) *store.User {
	user := PrincipalFromContext(ctx)
	if user == nil {
		panic("auth: principal not found in context")
	}
	return user
}
