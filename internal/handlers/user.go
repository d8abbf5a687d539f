package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"daytrack/internal/services"
	"daytrack/internal/store"
)

type UserHandler struct {
	store  *store.Store
	encSvc *services.EncryptionService
	log    *zap.Logger
}

func NewUserHandler(st *store.Store, encSvc *services.EncryptionService, log *zap.Logger) *UserHandler {
	return &UserHandler{store: st, encSvc: encSvc, log: log}
}

// GetMe returns the current user's profile
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUser(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.encSvc.DecryptUser(&u); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ToUserDTO(u))
}

type profileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (p profileRequest) update() store.ProfileUpdate {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		t := strings.TrimSpace(*s)
		return &t
	}
	return store.ProfileUpdate{FirstName: trim(p.FirstName), LastName: trim(p.LastName)}
}

// UpdateMe updates provided fields on the current user's profile
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var body profileRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.store.UpdateUserProfile(r.Context(), ownerID(r), body.update()); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.GetMe(w, r)
}
