package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"daytrack/internal/models"
	"daytrack/internal/store"
)

type HabitHandler struct {
	store *store.Store
	log   *zap.Logger
}

func NewHabitHandler(st *store.Store, log *zap.Logger) *HabitHandler {
	return &HabitHandler{store: st, log: log}
}

type habitRequest struct {
	Name   *string `json:"name"`
	Icon   *string `json:"icon"`
	Color  *string `json:"color"`
	Active *bool   `json:"active"`
}

// apply copies the provided fields onto h.
func (req habitRequest) apply(h *models.Habit) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return invalid("name must not be empty")
		}
		h.Name = name
	}
	if req.Icon != nil {
		h.Icon = *req.Icon
	}
	if req.Color != nil {
		h.Color = *req.Color
	}
	if req.Active != nil {
		h.Active = *req.Active
	}
	return nil
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	habits, err := h.store.ListHabits(r.Context(), ownerID(r), boolParam(r, "include_inactive"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.Name == nil {
		writeError(w, r, h.log, invalid("name is required"))
		return
	}
	habit := models.Habit{OwnerID: ownerID(r), Active: true}
	if err := req.apply(&habit); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	habit, err := h.store.CreateHabit(r.Context(), habit)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

// Update applies a partial change. Deactivating keeps the habit's history.
func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	habit, err := h.store.GetHabit(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := req.apply(&habit); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.store.UpdateHabit(r.Context(), habit); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteHabit(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
