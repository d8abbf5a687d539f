package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"daytrack/internal/analytics"
	"daytrack/internal/calendar"
	"daytrack/internal/services"
)

// Window caps. Habit lookbacks stay within a year; heatmaps may cover two.
const (
	habitMaxDays   = 366
	heatmapMaxDays = 731
)

type AnalyticsHandler struct {
	svc *services.AnalyticsService
	log *zap.Logger
}

func NewAnalyticsHandler(svc *services.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, log: log}
}

// reference honours ?today=YYYY-MM-DD so clients can pin their local day.
func (h *AnalyticsHandler) reference(r *http.Request) (calendar.Reference, error) {
	ref, err := h.svc.Reference(r.URL.Query().Get("today"))
	if err != nil {
		return calendar.Reference{}, invalid("invalid today; expected YYYY-MM-DD")
	}
	return ref, nil
}

// window resolves ?days= plus an optional explicit range.
func (h *AnalyticsHandler) window(r *http.Request, maxDays int) (calendar.Range, error) {
	ref, err := h.reference(r)
	if err != nil {
		return calendar.Range{}, err
	}
	days, err := intParam(r, "days", analytics.HabitWindowDays, 1, maxDays)
	if err != nil {
		return calendar.Range{}, err
	}
	return rangeParam(r, ref, days, maxDays)
}

func (h *AnalyticsHandler) HabitStats(w http.ResponseWriter, r *http.Request) {
	ref, err := h.reference(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	days, err := intParam(r, "days", analytics.HabitWindowDays, 1, habitMaxDays)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	report, err := h.svc.HabitStats(r.Context(), ownerID(r), chi.URLParam(r, "id"), ref, days)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *AnalyticsHandler) HabitHeatmap(w http.ResponseWriter, r *http.Request) {
	rng, err := h.window(r, heatmapMaxDays)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	cells, err := h.svc.HabitHeatmap(r.Context(), ownerID(r), chi.URLParam(r, "id"), rng)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cells)
}

func (h *AnalyticsHandler) AllHabitsHeatmap(w http.ResponseWriter, r *http.Request) {
	rng, err := h.window(r, heatmapMaxDays)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	cells, err := h.svc.AllHabitsHeatmap(r.Context(), ownerID(r), rng)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cells)
}

func (h *AnalyticsHandler) JournalHeatmap(w http.ResponseWriter, r *http.Request) {
	rng, err := h.window(r, heatmapMaxDays)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	cells, err := h.svc.JournalHeatmap(r.Context(), ownerID(r), rng)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cells)
}

func (h *AnalyticsHandler) Moods(w http.ResponseWriter, r *http.Request) {
	rng, err := h.window(r, heatmapMaxDays)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	recent, err := intParam(r, "recent", analytics.RecentMoodCount, 0, 100)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	report, err := h.svc.Moods(r.Context(), ownerID(r), rng, recent)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Dashboard accepts an optional today=YYYY-MM-DD to use as the user's day.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ref, err := h.reference(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	d, err := h.svc.Dashboard(r.Context(), ownerID(r), ref)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
