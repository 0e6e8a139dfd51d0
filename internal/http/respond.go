// Package httpapi is the HTTP surface of the two apps: handlers that join
// the local cart state with calls to the remote store backend.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nelson707/store-project-sub000/internal/clients"
	"github.com/Nelson707/store-project-sub000/internal/middleware"
	"github.com/Nelson707/store-project-sub000/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:         msg,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}

// fieldErrorResponse extends the error envelope with per-field messages for
// form validation failures.
type fieldErrorResponse struct {
	Error         string            `json:"error"`
	Fields        map[string]string `json:"fields"`
	CorrelationID string            `json:"correlationId,omitempty"`
}

// writeUpstreamError passes backend 4xx through (their message is the
// useful one) and folds everything else into a 502.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var apiErr *clients.Error
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		writeError(w, r, apiErr.Status, apiErr.Message)
		return
	}
	writeError(w, r, http.StatusBadGateway, fallback)
}

func decodeJSONBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
