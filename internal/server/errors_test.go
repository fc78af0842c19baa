package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/vacancy-matching/internal/matching"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "max", Message: "must be a positive integer"}
	assert.Equal(t, "validation error: max - must be a positive integer", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "invalid argument",
			err:      &matching.Error{Kind: matching.KindInvalidArgument, Cause: matching.ErrInvalidMax},
			expected: http.StatusBadRequest,
		},
		{
			name:     "request not found",
			err:      &matching.Error{Kind: matching.KindInvalidArgument, Cause: matching.ErrRequestNotFound},
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped conflict",
			err:      fmt.Errorf("run: %w", &matching.Error{Kind: matching.KindConflict, Cause: matching.ErrRunInProgress}),
			expected: http.StatusConflict,
		},
		{
			name:     "configuration",
			err:      &matching.Error{Kind: matching.KindConfiguration, Cause: matching.ErrMatchStatusNotFound},
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
