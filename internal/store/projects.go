// ABOUTME: Project persistence operations against the projects table
// ABOUTME: Names are unique per owner; delete removes the project's tasks in one transaction

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateProject inserts a new project and assigns its numeric ID.
// Returns ErrDuplicateProjectName if the owner already has one by that name.
func (s *SQLiteStore) CreateProject(ctx context.Context, project *Project) error {
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (owner_id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, project.OwnerID, project.Name, project.Description,
		project.CreatedAt.Format(time.RFC3339), project.UpdatedAt.Format(time.RFC3339))

	if isUniqueConstraintError(err, "projects") {
		return ErrDuplicateProjectName
	}
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}

	project.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading project id: %w", err)
	}
	return nil
}

// GetProject retrieves a project by ID.
func (s *SQLiteStore) GetProject(ctx context.Context, id int64) (*Project, error) {
	var p Project
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM projects WHERE id = ?
	`, id).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

// ListProjects lists all projects owned by the given user, newest first.
func (s *SQLiteStore) ListProjects(ctx context.Context, ownerID int64) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM projects WHERE owner_id = ? ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []*Project
	for rows.Next() {
		var p Project
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// UpdateProject updates a project's name and description. OwnerID is never
// part of the SET list: ownership is not reassignable.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project *Project) error {
	project.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, project.Name, project.Description, project.UpdatedAt.Format(time.RFC3339), project.ID)

	if isUniqueConstraintError(err, "projects") {
		return ErrDuplicateProjectName
	}
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject deletes a project and all tasks assigned to it, atomically.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("deleting project tasks: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
