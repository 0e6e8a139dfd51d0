package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/clients"
)

type UsersHandler struct {
	users  *clients.UsersClient
	logger *zap.Logger
}

func NewUsersHandler(users *clients.UsersClient, logger *zap.Logger) *UsersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UsersHandler{users: users, logger: logger}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err, "user list failed")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UsersHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.users.ListAdmins(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err, "admin list failed")
		return
	}
	writeJSON(w, http.StatusOK, admins)
}

func (h *UsersHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req clients.RegisterRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.users.CreateAdmin(r.Context(), req); err != nil {
		writeUpstreamError(w, r, err, "admin creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "admin created"})
}
