package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"conflict", ErrConflict, http.StatusConflict},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"unsupported media", ErrUnsupportedMedia, http.StatusBadRequest},
		{"payload too large", ErrPayloadTooLarge, http.StatusBadRequest},
		{"internal", ErrInternal, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("restaurant not found: %w", ErrNotFound), http.StatusNotFound},
		{"wrapped conflict", fmt.Errorf("username taken: %w", ErrConflict), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}

func TestAppErrorCodeWins(t *testing.T) {
	err := New(http.StatusBadRequest, "invalid id", ErrValidation)
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatus(err))
	assert.Equal(t, "invalid input", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAppErrorMessageWithoutCause(t *testing.T) {
	err := New(http.StatusTeapot, "short and stout", nil)
	assert.Equal(t, "short and stout", err.Error())
	assert.Equal(t, http.StatusTeapot, MapErrorToStatus(err))
}
