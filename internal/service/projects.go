// ABOUTME: Owner-scoped project operations
// ABOUTME: Loads the resource first, asserts ownership, then acts

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seapoint/taskboard/internal/store"
)

// ProjectStore is the slice of the store the project service needs.
type ProjectStore interface {
	CreateProject(ctx context.Context, project *store.Project) error
	GetProject(ctx context.Context, id int64) (*store.Project, error)
	ListProjects(ctx context.Context, ownerID int64) ([]*store.Project, error)
	UpdateProject(ctx context.Context, project *store.Project) error
	DeleteProject(ctx context.Context, id int64) error
	ListTasks(ctx context.Context, ownerID int64, filter store.TaskFilter) ([]*store.Task, error)
}

// ProjectService implements owner-scoped project CRUD. Every method takes
// the authenticated principal's ID explicitly.
type ProjectService struct {
	store  ProjectStore
	logger *slog.Logger
}

// NewProjectService creates a project service.
func NewProjectService(s ProjectStore, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		store:  s,
		logger: logger.With("component", "projects"),
	}
}

// Create creates a project owned by the principal.
func (s *ProjectService) Create(ctx context.Context, principalID int64, name, description string) (*store.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}

	project := &store.Project{
		OwnerID:     principalID,
		Name:        name,
		Description: description,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		if errors.Is(err, store.ErrDuplicateProjectName) {
			return nil, fmt.Errorf("%w: project name already taken", ErrConflict)
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "project_id", project.ID, "owner_id", principalID)
	return project, nil
}

// Get returns a project if the principal owns it.
func (s *ProjectService) Get(ctx context.Context, principalID, projectID int64) (*store.Project, error) {
	return s.loadOwned(ctx, principalID, projectID)
}

// List returns all projects owned by the principal.
func (s *ProjectService) List(ctx context.Context, principalID int64) ([]*store.Project, error) {
	projects, err := s.store.ListProjects(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Update renames or re-describes a project the principal owns.
func (s *ProjectService) Update(ctx context.Context, principalID, projectID int64, name, description string) (*store.Project, error) {
	project, err := s.loadOwned(ctx, principalID, projectID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}

	project.Name = name
	project.Description = description
	if err := s.store.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, store.ErrDuplicateProjectName) {
			return nil, fmt.Errorf("%w: project name already taken", ErrConflict)
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return project, nil
}

// Delete removes a project the principal owns along with its tasks.
func (s *ProjectService) Delete(ctx context.Context, principalID, projectID int64) error {
	if _, err := s.loadOwned(ctx, principalID, projectID); err != nil {
		return err
	}

	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}

	s.logger.Info("project deleted", "project_id", projectID, "owner_id", principalID)
	return nil
}

// Tasks lists the tasks assigned to a project the principal owns. The
// ownership check runs on the project before any task is read, so tasks
// reached transitively are covered by the same guard.
func (s *ProjectService) Tasks(ctx context.Context, principalID, projectID int64) ([]*store.Task, error) {
	if _, err := s.loadOwned(ctx, principalID, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListTasks(ctx, principalID, store.TaskFilter{ProjectID: &projectID})
	if err != nil {
		return nil, fmt.Errorf("listing project tasks: %w", err)
	}
	return tasks, nil
}

// loadOwned loads a project and asserts ownership before anything else runs.
func (s *ProjectService) loadOwned(ctx context.Context, principalID, projectID int64) (*store.Project, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if err := assertOwned(project.OwnerID, principalID); err != nil {
		return nil, err
	}
	return project, nil
}
