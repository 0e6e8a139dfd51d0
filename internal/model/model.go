package model

// ErrorResponse is the JSON error envelope both apps return.
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}
