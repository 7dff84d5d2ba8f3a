package shared_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverline/items-api/internal/api/shared"
)

func TestValidateContentType_NonBodyBearingMethods(t *testing.T) {
	methods := []string{
		http.MethodGet,
		http.MethodDelete,
		http.MethodHead,
		http.MethodOptions,
	}
	headers := [][]string{
		nil,
		{},
		{""},
		{"text/plain"},
		{"application/xml; charset=iso-8859-1"},
	}

	for _, method := range methods {
		for _, header := range headers {
			assert.Nil(t, shared.ValidateContentType(method, header),
				"method %s with header %v must always validate", method, header)
		}
	}
}

func TestValidateContentType_BodyBearingMethods(t *testing.T) {
	tests := []struct {
		name        string
		contentType []string
		wantMessage string // empty means valid
	}{
		{name: "absent_nil_slice", contentType: nil, wantMessage: shared.MsgInvalidContentType},
		{name: "absent_empty_slice", contentType: []string{}, wantMessage: shared.MsgInvalidContentType},
		{name: "empty_value", contentType: []string{""}, wantMessage: shared.MsgInvalidContentType},
		{name: "blank_value", contentType: []string{"   "}, wantMessage: shared.MsgInvalidContentType},
		{name: "wrong_media_type", contentType: []string{"text/plain"}, wantMessage: shared.MsgInvalidContentType},
		{name: "wrong_with_charset", contentType: []string{"text/html; charset=utf-8"}, wantMessage: shared.MsgInvalidContentType},
		{name: "json_suffix_type", contentType: []string{"application/vnd.api+json"}, wantMessage: shared.MsgInvalidContentType},
		{name: "exact_json", contentType: []string{"application/json"}},
		{name: "mixed_case_media_type", contentType: []string{"Application/JSON"}},
		{name: "padded_media_type", contentType: []string{"  application/json  "}},
		{name: "charset_utf8_hyphen", contentType: []string{"application/json; charset=utf-8"}},
		{name: "charset_utf8_no_hyphen", contentType: []string{"application/json; charset=utf8"}},
		{name: "charset_uppercase", contentType: []string{"application/json; charset=UTF-8"}},
		{name: "charset_quoted", contentType: []string{`application/json; charset="utf-8"`}},
		{name: "charset_padded", contentType: []string{"application/json;  charset = utf-8 "}},
		{name: "charset_empty_value", contentType: []string{"application/json; charset="}},
		{name: "charset_latin1", contentType: []string{"application/json; charset=iso-8859-1"}, wantMessage: shared.MsgUnsupportedCharset},
		{name: "charset_utf16", contentType: []string{"application/json; charset=utf-16"}, wantMessage: shared.MsgUnsupportedCharset},
		{name: "charset_after_other_param", contentType: []string{"application/json; boundary=x; charset=ascii"}, wantMessage: shared.MsgUnsupportedCharset},
		{name: "only_first_header_value_considered", contentType: []string{"application/json", "text/plain"}},
		{name: "first_header_value_invalid", contentType: []string{"text/plain", "application/json"}, wantMessage: shared.MsgInvalidContentType},
	}

	for _, method := range []string{http.MethodPost, http.MethodPatch, http.MethodPut} {
		for _, tt := range tests {
			t.Run(method+"_"+tt.name, func(t *testing.T) {
				got := shared.ValidateContentType(method, tt.contentType)
				if tt.wantMessage == "" {
					assert.Nil(t, got)
					return
				}
				require.NotNil(t, got)
				assert.Equal(t, http.StatusBadRequest, got.StatusCode)
				assert.Equal(t, tt.wantMessage, got.Message)
			})
		}
	}
}

func TestValidateContentType_IsPure(t *testing.T) {
	header := []string{"application/json; charset=iso-8859-1"}

	first := shared.ValidateContentType(http.MethodPost, header)
	second := shared.ValidateContentType(http.MethodPost, header)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.StatusCode, second.StatusCode)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, []string{"application/json; charset=iso-8859-1"}, header,
		"input slice must not be mutated")
}
