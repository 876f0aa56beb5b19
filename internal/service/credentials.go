// ABOUTME: Registration, login, and self-service account management
// ABOUTME: Hashes credentials, issues tokens, and merges login failure modes

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/seapoint/taskboard/internal/auth"
	"github.com/seapoint/taskboard/internal/store"
)

// TokenIssuer issues signed tokens for a subject handle.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	Lifetime() time.Duration
}

// UserStore is the slice of the store the credential service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *store.User) error
	GetUser(ctx context.Context, id int64) (*store.User, error)
	GetUserByHandle(ctx context.Context, handle string) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	UpdateUser(ctx context.Context, user *store.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	Token     string
	ExpiresIn int64 // seconds
	User      *store.User
}

// CredentialService handles registration and login.
type CredentialService struct {
	users  UserStore
	tokens TokenIssuer
	logger *slog.Logger
}

// NewCredentialService creates a credential service.
func NewCredentialService(users UserStore, tokens TokenIssuer, logger *slog.Logger) *CredentialService {
	return &CredentialService{
		users:  users,
		tokens: tokens,
		logger: logger.With("component", "credentials"),
	}
}

const minPasswordLen = 8

// Register creates a new account, hashes the credential, and issues a token.
// Returns ErrConflict when the handle or email is already taken. The
// service-level pre-checks exist for clean error messages; the storage
// UNIQUE constraints remain the authoritative guard under races.
func (s *CredentialService) Register(ctx context.Context, handle, email, password string) (*AuthResult, error) {
	handle = strings.TrimSpace(handle)
	email = strings.TrimSpace(email)

	if handle == "" {
		return nil, fmt.Errorf("%w: handle is required", ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	if _, err := s.users.GetUserByHandle(ctx, handle); err == nil {
		return nil, fmt.Errorf("%w: handle already taken", ErrConflict)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking handle: %w", err)
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &store.User{
		Handle:       handle,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// The pre-check can lose a race; the constraint never does.
		if errors.Is(err, store.ErrDuplicateHandle) {
			return nil, fmt.Errorf("%w: handle already taken", ErrConflict)
		}
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", "handle", handle, "user_id", user.ID)
	return s.issueFor(user)
}

// Login verifies the credential and issues a token. An unknown handle and a
// wrong password return the same ErrInvalidCredentials; the unknown-handle
// path burns a dummy bcrypt comparison so both cost the same.
func (s *CredentialService) Login(ctx context.Context, handle, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByHandle(ctx, strings.TrimSpace(handle))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = auth.CheckPassword(password, auth.DummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "handle", user.Handle, "user_id", user.ID)
	return s.issueFor(user)
}

// AccountUpdate carries the mutable account fields. Nil means unchanged.
// The handle is immutable and deliberately not here.
type AccountUpdate struct {
	Email    *string
	Password *string
}

// UpdateAccount applies a self-service update to the principal's own account.
func (s *CredentialService) UpdateAccount(ctx context.Context, userID int64, update AccountUpdate) (*store.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: valid email is required", ErrValidation)
		}
		user.Email = email
	}
	if update.Password != nil {
		if len(*update.Password) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
		}
		hash, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return user, nil
}

// DeleteAccount deletes the principal's account and cascades to every project
// and task it owns.
func (s *CredentialService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting user: %w", err)
	}
	s.logger.Info("account deleted", "user_id", userID)
	return nil
}

func (s *CredentialService) issueFor(user *store.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.Handle)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &AuthResult{
		Token:     token,
		ExpiresIn: int64(s.tokens.Lifetime().Seconds()),
		User:      user,
	}, nil
}
