package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"daytrack/internal/models"
	"daytrack/internal/store"
)

// WorkHandler serves projects and tasks. They feed the dashboard counters.
type WorkHandler struct {
	store *store.Store
	log   *zap.Logger
}

func NewWorkHandler(st *store.Store, log *zap.Logger) *WorkHandler {
	return &WorkHandler{store: st, log: log}
}

func (h *WorkHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *WorkHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, r, h.log, invalid("name is required"))
		return
	}
	switch req.Status {
	case "", models.ProjectActive, models.ProjectArchived:
	default:
		writeError(w, r, h.log, invalid("status must be %s or %s", models.ProjectActive, models.ProjectArchived))
		return
	}
	p, err := h.store.CreateProject(r.Context(), models.Project{OwnerID: ownerID(r), Name: req.Name, Status: req.Status})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *WorkHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), ownerID(r), boolParam(r, "include_done"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *WorkHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title     string  `json:"title"`
		ProjectID *string `json:"project_id"`
		DueDate   *string `json:"due_date"` // YYYY-MM-DD
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	task := models.Task{OwnerID: ownerID(r), Title: strings.TrimSpace(req.Title), ProjectID: req.ProjectID}
	if task.Title == "" {
		writeError(w, r, h.log, invalid("title is required"))
		return
	}
	if req.DueDate != nil {
		due, err := dateParam("due_date", *req.DueDate)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		task.DueDate = &due
	}
	task, err := h.store.CreateTask(r.Context(), task)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *WorkHandler) SetTaskDone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Done bool `json:"done"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.store.SetTaskDone(r.Context(), ownerID(r), chi.URLParam(r, "id"), req.Done); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
