package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/riverline/items-api/internal/apperr"
)

// ErrorResponse defines the standard error response structure shared by every
// rejection path: {statusCode, error, message}. The trace ID is included when
// available for log correlation.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Label      string `json:"error"`
	Message    string `json:"message"`
	TraceID    string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message. The error label is the standard HTTP status text.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithAppError(w, r, apperr.New(status, message))
}

// RespondWithAppError writes a structured domain error verbatim: its status
// code, label, and message become the response body.
func RespondWithAppError(w http.ResponseWriter, r *http.Request, appErr *apperr.Error) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", appErr.StatusCode,
		"message", appErr.Message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, appErr.StatusCode, ErrorResponse{
		StatusCode: appErr.StatusCode,
		Label:      appErr.Label,
		Message:    appErr.Message,
		TraceID:    traceID,
	})
}

// RespondWithErrorAndLog writes a sanitized JSON error response and logs the
// underlying error with full detail. 5xx responses are logged at ERROR level,
// 4xx at DEBUG; the raw error string never reaches the client.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, userMessage string, err error) {
	traceID := GetTraceID(r.Context())

	attrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithError(w, r, status, userMessage)
}
