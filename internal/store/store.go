// ABOUTME: Store interface and data types for taskboard persistence
// ABOUTME: Defines User, Project, Task structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateHandle is returned when a user handle is already taken
var ErrDuplicateHandle = errors.New("handle already taken")

// ErrDuplicateEmail is returned when a user email is already registered
var ErrDuplicateEmail = errors.New("email already registered")

// ErrDuplicateProjectName is returned when an owner already has a project with that name
var ErrDuplicateProjectName = errors.New("project name already taken")

// User represents an account identity. The handle is immutable after
// creation; email and password hash are mutable via self-service update.
type User struct {
	ID           int64
	Handle       string
	Email        string
	PasswordHash string // never serialized outward
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Project represents a named group of tasks owned by a single user.
// OwnerID is set at creation and never reassigned.
type Project struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStatus constants for task state
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// TaskPriority constants
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task represents a unit of work owned by a single user. ProjectID is
// optional; when set, the referenced project must belong to the same owner.
type Task struct {
	ID        int64
	OwnerID   int64
	ProjectID *int64
	Title     string
	Notes     string
	Status    string // pending, in_progress, done
	Priority  string // low, medium, high
	DueDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskFilter narrows ListTasks results. Zero values mean no filtering.
type TaskFilter struct {
	Status    string
	ProjectID *int64
}

// Store defines the interface for user, project, and task persistence
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByHandle(ctx context.Context, handle string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id int64) error

	// Projects
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context, ownerID int64) ([]*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id int64) error

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context, ownerID int64, filter TaskFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error

	// Close closes the underlying database
	Close() error
}
