// ABOUTME: HTTP API handlers for accounts, projects, and tasks
// ABOUTME: Protected routes sit behind the auth middleware; public routes don't

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seapoint/taskboard/internal/auth"
	"github.com/seapoint/taskboard/internal/service"
	"github.com/seapoint/taskboard/internal/store"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler exposes the taskboard HTTP API.
type Handler struct {
	creds    *service.CredentialService
	projects *service.ProjectService
	tasks    *service.TaskService
	pinger   Pinger
	logger   *slog.Logger
}

// New creates an API handler over the given services.
func New(creds *service.CredentialService, projects *service.ProjectService, tasks *service.TaskService, pinger Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		creds:    creds,
		projects: projects,
		tasks:    tasks,
		pinger:   pinger,
		logger:   logger.With("component", "api"),
	}
}

// Routes builds the router. The route table is the authorization policy:
// everything mounted inside the authenticated group requires a valid bearer
// token, everything outside is public. Only registration, login, and health
// are public.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)

	// Public routes
	r.Get("/health", h.handleHealth)
	r.Get("/health/ready", h.handleReady)
	r.Post("/api/register", h.handleRegister)
	r.Post("/api/login", h.handleLogin)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/api/me", h.handleMe)
		r.Put("/api/me", h.handleUpdateMe)
		r.Delete("/api/me", h.handleDeleteMe)

		r.Post("/api/projects", h.handleCreateProject)
		r.Get("/api/projects", h.handleListProjects)
		r.Get("/api/projects/{id}", h.handleGetProject)
		r.Put("/api/projects/{id}", h.handleUpdateProject)
		r.Delete("/api/projects/{id}", h.handleDeleteProject)
		r.Get("/api/projects/{id}/tasks", h.handleProjectTasks)

		r.Post("/api/tasks", h.handleCreateTask)
		r.Get("/api/tasks", h.handleListTasks)
		r.Get("/api/tasks/{id}", h.handleGetTask)
		r.Put("/api/tasks/{id}", h.handleUpdateTask)
		r.Delete("/api/tasks/{id}", h.handleDeleteTask)
	})

	return r
}

// RegisterRequest is the JSON request body for POST /api/register.
type RegisterRequest struct {
	Handle     string `json:"handle"`
	Address    string `json:"address"`
	Credential string `json:"credential"`
}

// LoginRequest is the JSON request body for POST /api/login.
type LoginRequest struct {
	Handle     string `json:"handle"`
	Credential string `json:"credential"`
}

// PrincipalResponse is the outward shape of an account. The credential hash
// has no field here on purpose.
type PrincipalResponse struct {
	ID      int64  `json:"id"`
	Handle  string `json:"handle"`
	Address string `json:"address"`
}

// AuthResponse is the JSON response for successful register and login.
type AuthResponse struct {
	Token            string            `json:"token"`
	TokenType        string            `json:"tokenType"`
	ExpiresInSeconds int64             `json:"expiresInSeconds"`
	Principal        PrincipalResponse `json:"principal"`
}

// UpdateAccountRequest is the JSON request body for PUT /api/me.
// Absent fields are left unchanged.
type UpdateAccountRequest struct {
	Address    *string `json:"address"`
	Credential *string `json:"credential"`
}

// ProjectRequest is the JSON request body for project create and update.
type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectResponse is the outward shape of a project.
type ProjectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TaskRequest is the JSON request body for task create and update.
type TaskRequest struct {
	Title     string  `json:"title"`
	Notes     string  `json:"notes"`
	ProjectID *int64  `json:"project_id"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"due_date"` // RFC3339
}

// TaskResponse is the outward shape of a task.
type TaskResponse struct {
	ID        int64   `json:"id"`
	ProjectID *int64  `json:"project_id,omitempty"`
	Title     string  `json:"title"`
	Notes     string  `json:"notes,omitempty"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"due_date,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		h.logger.Error("readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	result, err := h.creds.Register(r.Context(), req.Handle, req.Address, req.Credential)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponseFrom(result))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	result, err := h.creds.Login(r.Context(), req.Handle, req.Credential)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponseFrom(result))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())
	writeJSON(w, http.StatusOK, principalFrom(user))
}

func (h *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	updated, err := h.creds.UpdateAccount(r.Context(), user.ID, service.AccountUpdate{
		Email:    req.Address,
		Password: req.Credential,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, principalFrom(updated))
}

func (h *Handler) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())

	if err := h.creds.DeleteAccount(r.Context(), user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	project, err := h.projects.Create(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectFrom(project))
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())

	projects, err := h.projects.List(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		response = append(response, projectFrom(p))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, service.ErrNotFound)
		return
	}

	project, err := h.projects.Get(r.Context(), user.ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectFrom(project))
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, service.ErrNotFound)
		return
	}

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	project, err := h.projects.Update(r.Context(), user.ID, id, req.Name, req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectFrom(project))
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, service.ErrNotFound)
		return
	}

	if err := h.projects.Delete(r.Context(), user.ID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleProjectTasks(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, service.ErrNotFound)
		return
	}

	tasks, err := h.projects.Tasks(r.Context(), user.ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskListFrom(tasks))
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())

	input, ok := h.decodeTaskInput(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Create(r.Context(), user.ID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, taskFrom(task))
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())

	filter := store.TaskFilter{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid project_id"})
			return
		}
		filter.ProjectID = &id
	}

	tasks, err := h.tasks.List(r.Context(), user.ID, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskListFrom(tasks))
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, service.ErrNotFound)
		return
	}

	task, err := h.tasks.Get(r.Context(), user.ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskFrom(task))
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, service.ErrNotFound)
		return
	}

	input, ok := h.decodeTaskInput(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Update(r.Context(), user.ID, id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskFrom(task))
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user := auth.MustPrincipalFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, service.ErrNotFound)
		return
	}

	if err := h.tasks.Delete(r.Context(), user.ID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeTaskInput decodes and converts a TaskRequest, writing the error
// response itself on failure.
func (h *Handler) decodeTaskInput(w http.ResponseWriter, r *http.Request) (service.TaskInput, bool) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return service.TaskInput{}, false
	}

	input := service.TaskInput{
		Title:     req.Title,
		Notes:     req.Notes,
		ProjectID: req.ProjectID,
		Status:    req.Status,
		Priority:  req.Priority,
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "due_date must be RFC3339"})
			return service.TaskInput{}, false
		}
		input.DueDate = &due
	}
	return input, true
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

func authResponseFrom(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:            result.Token,
		TokenType:        "Bearer",
		ExpiresInSeconds: result.ExpiresIn,
		Principal:        principalFrom(result.User),
	}
}

func principalFrom(user *store.User) PrincipalResponse {
	return PrincipalResponse{
		ID:      user.ID,
		Handle:  user.Handle,
		Address: user.Email,
	}
}

func projectFrom(p *store.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func taskFrom(t *store.Task) TaskResponse {
	resp := TaskResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		Notes:     t.Notes,
		Status:    t.Status,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		d := t.DueDate.Format(time.RFC3339)
		resp.DueDate = &d
	}
	return resp
}

func taskListFrom(tasks []*store.Task) []TaskResponse {
	response := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, taskFrom(t))
	}
	return response
}
