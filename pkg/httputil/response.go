package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/show-show-way/TechCompare/pkg/errors"
	"github.com/show-show-way/TechCompare/pkg/logger"
)

// ErrorResponse is the JSON body written for every failed request.
// Error carries the human-readable message; Code is the machine-readable kind.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// MessageResponse is the JSON body of a write acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {"message": ...} acknowledgment.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

// WriteError writes a standardized error response based on the error type.
// AppErrors keep their status, code and message; anything else becomes a
// 500 that does not leak its cause. Every 5xx is logged with the
// request-scoped logger from context, or fallback when none is stored.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}

	appErr := apperrors.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "request failed",
			slog.String("code", appErr.Code),
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, appErr.Status, ErrorResponse{
		Error:     appErr.Message,
		Code:      appErr.Code,
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	})
}
