package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"daytrack/internal/models"
	"daytrack/internal/services"
	"daytrack/internal/store"
)

// Journal listings default to a month and never span more than a year.
const (
	journalDefaultDays = 30
	journalMaxDays     = 366
)

type JournalHandler struct {
	store     *store.Store
	encSvc    *services.EncryptionService
	analytics *services.AnalyticsService
	log       *zap.Logger
}

func NewJournalHandler(st *store.Store, encSvc *services.EncryptionService, svc *services.AnalyticsService, log *zap.Logger) *JournalHandler {
	return &JournalHandler{store: st, encSvc: encSvc, analytics: svc, log: log}
}

// Upsert creates or replaces the entry for the given date and records the
// listed habit logs. Logs for habits not listed are kept.
func (h *JournalHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req journalInput
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	entry, logs, err := req.toModels(ownerID(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	plain := entry.Content
	if err := h.encSvc.EncryptEntry(&entry); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	saved, err := h.store.SaveJournalEntry(r.Context(), entry, logs)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	saved.Content = plain
	writeJSON(w, http.StatusOK, ToJournalEntryDTO(saved, logs))
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	ref, err := h.analytics.Reference(r.URL.Query().Get("today"))
	if err != nil {
		writeError(w, r, h.log, invalid("invalid today; expected YYYY-MM-DD"))
		return
	}
	rng, err := rangeParam(r, ref, journalDefaultDays, journalMaxDays)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	owner := ownerID(r)
	entries, err := h.store.ListJournalEntries(r.Context(), owner, rng)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.encSvc.DecryptEntries(entries); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	logs, err := h.store.EntryLogs(r.Context(), owner, rng)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	byEntry := make(map[string][]models.HabitLog)
	for _, l := range logs {
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
	}

	out := make([]JournalEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToJournalEntryDTO(e, byEntry[e.ID]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete removes the entry for {date} and its habit logs.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	day, err := dateParam("date", chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.store.DeleteJournalEntry(r.Context(), ownerID(r), day); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
