package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"daytrack/internal/models"
	"daytrack/internal/services"
	"daytrack/internal/store"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	store     *store.Store
	encSvc    *services.EncryptionService
	jwtSecret []byte
	log       *zap.Logger
}

func NewAuthHandler(st *store.Store, encSvc *services.EncryptionService, jwtSecret []byte, log *zap.Logger) *AuthHandler {
	return &AuthHandler{store: st, encSvc: encSvc, jwtSecret: jwtSecret, log: log}
}

type credentials struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (c *credentials) validate() error {
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	if c.Email == "" || c.Password == "" {
		return invalid("email and password required")
	}
	return nil
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decode(r, &c); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := c.validate(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	user := models.User{Email: c.Email, PasswordHash: string(hashed), FirstName: c.FirstName, LastName: c.LastName}
	if err := h.encSvc.EncryptUser(&user); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	user, err = h.store.CreateUser(r.Context(), user)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	token, err := h.issueJWT(user.ID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info("user signed up", zap.Int("user_id", user.ID))
	writeJSON(w, http.StatusCreated, map[string]any{"token": token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decode(r, &c); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := c.validate(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	user, err := h.store.UserByBlindIndex(r.Context(), h.encSvc.EmailBlindIndex(c.Email))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(c.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	token, err := h.issueJWT(user.ID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (h *AuthHandler) issueJWT(userID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
