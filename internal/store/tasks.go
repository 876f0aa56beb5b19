// ABOUTME: Task persistence operations against the tasks table
// ABOUTME: Tasks optionally reference a project; filters cover status and project

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateTask inserts a new task and assigns its numeric ID.
// Defaults: status pending, priority medium.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *Task) error {
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = TaskPriorityMedium
	}

	var dueDate *string
	if task.DueDate != nil {
		d := task.DueDate.Format(time.RFC3339)
		dueDate = &d
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (owner_id, project_id, title, notes, status, priority, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.OwnerID, task.ProjectID, task.Title, task.Notes, task.Status, task.Priority, dueDate,
		task.CreatedAt.Format(time.RFC3339), task.UpdatedAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	task.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading task id: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, project_id, title, notes, status, priority, due_date, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id)

	task, err := scanTaskRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks lists tasks for an owner with optional status and project filters,
// newest first.
func (s *SQLiteStore) ListTasks(ctx context.Context, ownerID int64, filter TaskFilter) ([]*Task, error) {
	var args []any
	query := `SELECT id, owner_id, project_id, title, notes, status, priority, due_date, created_at, updated_at
		FROM tasks WHERE owner_id = ?`
	args = append(args, ownerID)

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.ProjectID != nil {
		query += ` AND project_id = ?`
		args = append(args, *filter.ProjectID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []*Task
	for rows.Next() {
		task, err := scanTaskRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask updates an existing task. OwnerID is never part of the SET list.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *Task) error {
	task.UpdatedAt = time.Now().UTC()

	var dueDate *string
	if task.DueDate != nil {
		d := task.DueDate.Format(time.RFC3339)
		dueDate = &d
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET project_id = ?, title = ?, notes = ?, status = ?, priority = ?, due_date = ?, updated_at = ?
		WHERE id = ?
	`, task.ProjectID, task.Title, task.Notes, task.Status, task.Priority, dueDate,
		task.UpdatedAt.Format(time.RFC3339), task.ID)

	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask deletes a task by ID. The referenced project, if any, is untouched.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanTaskRow scans a task from either a *sql.Row or *sql.Rows scan func.
func scanTaskRow(scan func(dest ...any) error) (*Task, error) {
	var t Task
	var projectID sql.NullInt64
	var dueDate sql.NullString
	var createdAt, updatedAt string

	err := scan(&t.ID, &t.OwnerID, &projectID, &t.Title, &t.Notes, &t.Status, &t.Priority,
		&dueDate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if projectID.Valid {
		t.ProjectID = &projectID.Int64
	}
	if dueDate.Valid {
		d, _ := time.Parse(time.RFC3339, dueDate.String)
		t.DueDate = &d
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &t, nil
}
