package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/riverline/items-api/internal/api/shared"
	"github.com/riverline/items-api/internal/apperr"
)

// Stable messages for the structural rejection paths and the generic
// fallback. Like the domain validation messages, these are part of the API
// contract.
const (
	MsgUndecodableBody = "Request body could not be decoded. Use an encoding that can be decoded (e.g. UTF-8)."
	MsgInvalidJSON     = "Request body must be valid JSON."
	MsgBodyTooLarge    = "Request body is too large."
	MsgUnexpected      = "An unexpected error occurred."
)

// encodingHints are the message fragments that mark an untyped error as an
// encoding/decoding failure.
var encodingHints = []string{
	"encoding",
	"charset",
	"decode",
	"invalid utf",
	"invalid character",
	"invalid byte",
}

// WriteError is the single place where errors become HTTP responses. It
// classifies err, first by type and then by message, and emits the matching
// stable response:
//
//  1. A structured *apperr.Error (raised deliberately by the validators,
//     guards, or service) is forwarded verbatim.
//  2. An oversized body (*http.MaxBytesError) is a 413.
//  3. Typed JSON structural errors map to the invalid-JSON message.
//  4. Untyped errors whose message suggests an encoding failure map to the
//     undecodable-body message.
//  5. Untyped errors whose message suggests a parse failure map to the
//     invalid-JSON message.
//  6. Everything else is a 500 with a generic message; the full error is
//     logged but never leaks to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		shared.RespondWithAppError(w, r, appErr)
		return
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, MsgBodyTooLarge, err)
		return
	}

	if isJSONStructuralError(err) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidJSON, err)
		return
	}

	msg := strings.ToLower(err.Error())
	switch {
	case hasEncodingHint(msg):
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgUndecodableBody, err)
	case strings.Contains(msg, "json"),
		strings.Contains(msg, "unexpected token"),
		strings.Contains(msg, "parse"):
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidJSON, err)
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgUnexpected, err)
	}
}

// isJSONStructuralError reports whether err is one of the typed errors
// encoding/json produces for bodies that decode as text but are not valid
// JSON for the target shape.
func isJSONStructuralError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}

func hasEncodingHint(msg string) bool {
	for _, hint := range encodingHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return strings.Contains(msg, "utf") && strings.Contains(msg, "invalid")
}
