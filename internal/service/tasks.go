// ABOUTME: Owner-scoped task operations including project cross-link checks
// ABOUTME: A task may never reference a project owned by another principal

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/seapoint/taskboard/internal/store"
)

// TaskStore is the slice of the store the task service needs.
type TaskStore interface {
	CreateTask(ctx context.Context, task *store.Task) error
	GetTask(ctx context.Context, id int64) (*store.Task, error)
	ListTasks(ctx context.Context, ownerID int64, filter store.TaskFilter) ([]*store.Task, error)
	UpdateTask(ctx context.Context, task *store.Task) error
	DeleteTask(ctx context.Context, id int64) error
	GetProject(ctx context.Context, id int64) (*store.Project, error)
}

// TaskInput carries the caller-settable task fields.
type TaskInput struct {
	Title     string
	Notes     string
	ProjectID *int64
	Status    string
	Priority  string
	DueDate   *time.Time
}

// TaskService implements owner-scoped task CRUD. Every method takes the
// authenticated principal's ID explicitly.
type TaskService struct {
	store  TaskStore
	logger *slog.Logger
}

// NewTaskService creates a task service.
func NewTaskService(s TaskStore, logger *slog.Logger) *TaskService {
	return &TaskService{
		store:  s,
		logger: logger.With("component", "tasks"),
	}
}

// Create creates a task owned by the principal. When the input references a
// project, that project's ownership is asserted before any write, so a task
// row referencing a foreign project never exists even transiently.
func (s *TaskService) Create(ctx context.Context, principalID int64, input TaskInput) (*store.Task, error) {
	if err := validateTaskInput(&input); err != nil {
		return nil, err
	}
	if err := s.checkProjectRef(ctx, principalID, input.ProjectID); err != nil {
		return nil, err
	}

	task := &store.Task{
		OwnerID:   principalID,
		ProjectID: input.ProjectID,
		Title:     input.Title,
		Notes:     input.Notes,
		Status:    input.Status,
		Priority:  input.Priority,
		DueDate:   input.DueDate,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "owner_id", principalID)
	return task, nil
}

// Get returns a task if the principal owns it.
func (s *TaskService) Get(ctx context.Context, principalID, taskID int64) (*store.Task, error) {
	return s.loadOwned(ctx, principalID, taskID)
}

// List returns the principal's tasks, optionally filtered. A project filter
// is subject to the same ownership assertion as any other project reference.
func (s *TaskService) List(ctx context.Context, principalID int64, filter store.TaskFilter) ([]*store.Task, error) {
	if err := s.checkProjectRef(ctx, principalID, filter.ProjectID); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListTasks(ctx, principalID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Update modifies a task the principal owns. Reassigning the task to a
// project re-runs the project ownership check.
func (s *TaskService) Update(ctx context.Context, principalID, taskID int64, input TaskInput) (*store.Task, error) {
	task, err := s.loadOwned(ctx, principalID, taskID)
	if err != nil {
		return nil, err
	}

	if err := validateTaskInput(&input); err != nil {
		return nil, err
	}
	if err := s.checkProjectRef(ctx, principalID, input.ProjectID); err != nil {
		return nil, err
	}

	// Empty status/priority mean "leave as is"
	if input.Status == "" {
		input.Status = task.Status
	}
	if input.Priority == "" {
		input.Priority = task.Priority
	}

	task.Title = input.Title
	task.Notes = input.Notes
	task.ProjectID = input.ProjectID
	task.Status = input.Status
	task.Priority = input.Priority
	task.DueDate = input.DueDate

	if err := s.store.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return task, nil
}

// Delete removes a task the principal owns.
func (s *TaskService) Delete(ctx context.Context, principalID, taskID int64) error {
	if _, err := s.loadOwned(ctx, principalID, taskID); err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}

	s.logger.Info("task deleted", "task_id", taskID, "owner_id", principalID)
	return nil
}

// loadOwned loads a task and asserts ownership before anything else runs.
func (s *TaskService) loadOwned(ctx context.Context, principalID, taskID int64) (*store.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}
	if err := assertOwned(task.OwnerID, principalID); err != nil {
		return nil, err
	}
	return task, nil
}

// checkProjectRef asserts that a referenced project exists and belongs to the
// principal. A foreign project is reported as ErrNotFound, the same as a
// missing one.
func (s *TaskService) checkProjectRef(ctx context.Context, principalID int64, projectID *int64) error {
	if projectID == nil {
		return nil
	}

	project, err := s.store.GetProject(ctx, *projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: project", ErrNotFound)
		}
		return fmt.Errorf("loading project: %w", err)
	}
	if err := assertOwned(project.OwnerID, principalID); err != nil {
		return fmt.Errorf("%w: project", ErrNotFound)
	}
	return nil
}

func validateTaskInput(input *TaskInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("%w: task title is required", ErrValidation)
	}

	switch input.Status {
	case "", store.TaskStatusPending, store.TaskStatusInProgress, store.TaskStatusDone:
	default:
		return fmt.Errorf("%w: invalid status %q", ErrValidation, input.Status)
	}

	switch input.Priority {
	case "", store.TaskPriorityLow, store.TaskPriorityMedium, store.TaskPriorityHigh:
	default:
		return fmt.Errorf("%w: invalid priority %q", ErrValidation, input.Priority)
	}

	return nil
}
