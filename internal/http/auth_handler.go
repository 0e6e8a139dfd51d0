package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/clients"
	"github.com/Nelson707/store-project-sub000/internal/session"
)

// AuthHandler forwards credentials to the backend and keeps the returned
// token blob in the local session. No auth protocol lives here.
type AuthHandler struct {
	auth    *clients.AuthClient
	session *session.Session
	logger  *zap.Logger
}

func NewAuthHandler(auth *clients.AuthClient, sess *session.Session, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, session: sess, logger: logger}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds clients.Credentials
	if err := decodeJSONBody(r, &creds); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	user, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		writeUpstreamError(w, r, err, "login failed")
		return
	}

	h.session.SetUser(user)
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req clients.RegisterRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, r, err, "registration failed")
		return
	}

	h.session.SetUser(user)
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// The token is stateless; backend logout is advisory and local discard
	// is what actually ends the session.
	if err := h.auth.Logout(r.Context()); err != nil {
		h.logger.Warn("backend logout failed", zap.Error(err))
	}
	h.session.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.session.User()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
