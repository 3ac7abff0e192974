package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"database", NewDatabaseError("db", nil), http.StatusInternalServerError},
		{"auth", NewAuthError("Unauthorized", nil), http.StatusUnauthorized},
		{"not found", NewNotFoundError("Favorite not found", nil), http.StatusNotFound},
		{"validation", NewValidationError("universityId is required", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("invalid body", nil), http.StatusBadRequest},
		{"conflict", NewConflictError("exists", nil), http.StatusConflict},
		{"unavailable", NewUnavailableError("down", nil), http.StatusServiceUnavailable},
		{"unknown", NewAppError(UnknownError, "?", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestCauseAndResponse(t *testing.T) {
	raw := errors.New("connection refused")
	appErr := NewDatabaseError("failed to count universities", raw)

	assert.Equal(t, "connection refused", appErr.Cause())
	assert.Equal(t, "failed to count universities: connection refused", appErr.Error())
	assert.True(t, errors.Is(appErr, raw))

	resp := appErr.ToResponse()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to count universities", resp.Error)

	assert.Equal(t, "Favorite not found", NewNotFoundError("Favorite not found", nil).Cause())
}

func TestFromErrorFollowsWrapChain(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewValidationError("id parameter is required", nil))

	appErr, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ValidationError, appErr.Type)
	assert.True(t, IsValidationError(wrapped))

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)
	_, ok = FromError(nil)
	assert.False(t, ok)
}
