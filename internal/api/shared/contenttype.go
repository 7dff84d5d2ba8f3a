package shared

import (
	"net/http"
	"strings"

	"github.com/riverline/items-api/internal/apperr"
)

// Stable transport-level error messages.
const (
	MsgInvalidContentType = "Content-Type must be application/json."
	MsgUnsupportedCharset = "Unsupported charset. Only UTF-8 is supported."
)

// contentTypeJSON is the only media type accepted on body-bearing requests.
const contentTypeJSON = "application/json"

// bodyBearingMethods are the verbs whose requests may carry a payload and
// therefore require content-type/charset enforcement.
var bodyBearingMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPatch: true,
	http.MethodPut:   true,
}

// ValidateContentType checks the Content-Type header for the given method.
// contentType is the raw header value slice from http.Header: only the first
// element is considered, and an empty slice is treated as an absent header.
//
// Methods outside {POST, PATCH, PUT} always validate. For body-bearing
// methods the media type must be exactly application/json (parameters
// ignored), and any asserted charset must be a UTF-8 spelling. An empty
// charset value ("charset=") asserts nothing and passes.
//
// The function is pure, so it can run both before body parsing and again at
// the handler boundary without divergent behavior.
func ValidateContentType(method string, contentType []string) *apperr.Error {
	if !bodyBearingMethods[method] {
		return nil
	}

	var raw string
	if len(contentType) > 0 {
		raw = contentType[0]
	}
	if strings.TrimSpace(raw) == "" {
		return apperr.BadRequest(MsgInvalidContentType)
	}

	segments := strings.Split(raw, ";")
	if strings.ToLower(strings.TrimSpace(segments[0])) != contentTypeJSON {
		return apperr.BadRequest(MsgInvalidContentType)
	}

	for _, segment := range segments[1:] {
		key, value, found := strings.Cut(segment, "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "charset") {
			continue
		}
		charset := strings.TrimSpace(value)
		charset = strings.Trim(charset, `"`)
		charset = strings.ToLower(strings.TrimSpace(charset))
		if charset == "" {
			// "charset=" asserts no encoding; nothing to reject.
			continue
		}
		if charset != "utf-8" && charset != "utf8" {
			return apperr.BadRequest(MsgUnsupportedCharset)
		}
	}

	return nil
}
