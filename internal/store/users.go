// ABOUTME: User persistence operations against the users table
// ABOUTME: Handles and emails are enforced unique; delete cascades in one transaction

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateUser inserts a new user and assigns its numeric ID.
// Returns ErrDuplicateHandle or ErrDuplicateEmail on uniqueness violation.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (handle, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.Handle, user.Email, user.PasswordHash,
		user.CreatedAt.Format(time.RFC3339), user.UpdatedAt.Format(time.RFC3339))

	if isUniqueConstraintError(err, "users.handle") {
		return ErrDuplicateHandle
	}
	if isUniqueConstraintError(err, "users.email") {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, handle, email, password_hash, created_at, updated_at
		FROM users WHERE id = ?
	`, id))
}

// GetUserByHandle retrieves a user by its unique handle.
func (s *SQLiteStore) GetUserByHandle(ctx context.Context, handle string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, handle, email, password_hash, created_at, updated_at
		FROM users WHERE handle = ?
	`, handle))
}

// GetUserByEmail retrieves a user by its unique email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, handle, email, password_hash, created_at, updated_at
		FROM users WHERE email = ?
	`, email))
}

// UpdateUser updates a user's email and password hash. The handle is
// immutable after creation and is deliberately absent from the SET list.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *User) error {
	user.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET email = ?, password_hash = ?, updated_at = ?
		WHERE id = ?
	`, user.Email, user.PasswordHash, user.UpdatedAt.Format(time.RFC3339), user.ID)

	if isUniqueConstraintError(err, "users.email") {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser deletes a user and every project and task it owns.
// The cascade runs in a single transaction so a crash mid-delete can never
// leave orphaned resources.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE owner_id = ?`, id); err != nil {
		return fmt.Errorf("deleting tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE owner_id = ?`, id); err != nil {
		return fmt.Errorf("deleting projects: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// scanUser scans a single user row.
func (s *SQLiteStore) scanUser(row *sql.Row) (*User, error) {
	var u User
	var createdAt, updatedAt string

	err := row.Scan(&u.ID, &u.Handle, &u.Email, &u.PasswordHash, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &u, nil
}
