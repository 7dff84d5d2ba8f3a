package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverline/items-api/internal/apperr"
)

func TestNew(t *testing.T) {
	err := apperr.New(422, "cannot process")
	assert.Equal(t, 422, err.StatusCode)
	assert.Equal(t, "Unprocessable Entity", err.Label)
	assert.Equal(t, "cannot process", err.Message)
	assert.Equal(t, "422 Unprocessable Entity: cannot process", err.Error())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 400, apperr.BadRequest("nope").StatusCode)
	assert.Equal(t, "Bad Request", apperr.BadRequest("nope").Label)
	assert.Equal(t, 404, apperr.NotFound("gone").StatusCode)
	assert.Equal(t, "Not Found", apperr.NotFound("gone").Label)
}

func TestSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", apperr.NotFound("gone"))

	var appErr *apperr.Error
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, "gone", appErr.Message)
}
