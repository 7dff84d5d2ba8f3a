package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"unicode/utf8"
)

// maxBodyBytes caps how much of a request body is read before decoding.
const maxBodyBytes = 1 << 20

// ErrBodyNotUTF8 is returned when the request body is not decodable as UTF-8.
var ErrBodyNotUTF8 = errors.New("invalid utf-8 byte sequence in request body")

// DecodeJSON reads the request body and decodes it into v. Bodies over
// maxBodyBytes fail with *http.MaxBytesError rather than being truncated. The
// body must be valid UTF-8: encoding/json silently replaces invalid byte
// sequences instead of failing, so undecodable input has to be caught before
// unmarshalling to surface a decode error rather than garbled data.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if !utf8.Valid(body) {
		return ErrBodyNotUTF8
	}
	return json.Unmarshal(body, v)
}
