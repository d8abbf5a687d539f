package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"daytrack/internal/models"
	"daytrack/internal/services"
	"daytrack/internal/store"
)

// maxImportEntries bounds one import request.
const maxImportEntries = 5000

type ImportHandler struct {
	store  *store.Store
	encSvc *services.EncryptionService
	log    *zap.Logger
}

func NewImportHandler(st *store.Store, encSvc *services.EncryptionService, log *zap.Logger) *ImportHandler {
	return &ImportHandler{store: st, encSvc: encSvc, log: log}
}

type ImportRequest struct {
	Entries []journalInput  `json:"entries"`
	Profile *profileRequest `json:"profile"`
}

// Import upserts a batch of journal entries, with their habit logs, for the
// authenticated user. The batch is saved in one transaction: one bad entry
// rejects all of them.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if len(req.Entries) == 0 && req.Profile == nil {
		writeError(w, r, h.log, invalid("no entries or profile data provided"))
		return
	}
	if len(req.Entries) > maxImportEntries {
		writeError(w, r, h.log, invalid("at most %d entries per import", maxImportEntries))
		return
	}

	owner := ownerID(r)
	entries := make([]models.JournalEntry, 0, len(req.Entries))
	logs := make([][]models.HabitLog, 0, len(req.Entries))
	seen := make(map[string]bool, len(req.Entries))
	for i, in := range req.Entries {
		entry, entryLogs, err := in.toModels(owner)
		if err != nil {
			writeError(w, r, h.log, invalid("entry %d: %v", i, err))
			return
		}
		if seen[entry.Date.String()] {
			writeError(w, r, h.log, invalid("entry %d: date %s appears twice", i, entry.Date))
			return
		}
		seen[entry.Date.String()] = true
		if err := h.encSvc.EncryptEntry(&entry); err != nil {
			writeError(w, r, h.log, err)
			return
		}
		entries = append(entries, entry)
		logs = append(logs, entryLogs)
	}

	imported := 0
	if len(entries) > 0 {
		n, err := h.store.ImportJournalEntries(r.Context(), entries, logs)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		imported = n
	}
	if req.Profile != nil {
		if err := h.store.UpdateUserProfile(r.Context(), owner, req.Profile.update()); err != nil {
			writeError(w, r, h.log, err)
			return
		}
	}

	h.log.Info("journal imported", zap.Int("user_id", owner), zap.Int("entries", imported))
	writeJSON(w, http.StatusCreated, map[string]any{
		"imported":        imported,
		"profile_updated": req.Profile != nil,
	})
}
