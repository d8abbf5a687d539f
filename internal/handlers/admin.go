package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"daytrack/internal/services"
	"daytrack/internal/store"
)

type AdminHandler struct {
	store *store.Store
	svc   *services.AnalyticsService
	log   *zap.Logger
}

func NewAdminHandler(st *store.Store, svc *services.AnalyticsService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{store: st, svc: svc, log: log}
}

// Overview returns instance-wide counts. Routed behind RequireAdmin.
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ref, err := h.svc.Reference(r.URL.Query().Get("today"))
	if err != nil {
		writeError(w, r, h.log, invalid("invalid today; expected YYYY-MM-DD"))
		return
	}
	out, err := h.store.Overview(r.Context(), ref)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
