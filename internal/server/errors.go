package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/vacancy-matching/internal/matching"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var verr *ErrValidation
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}

	switch matching.KindOf(err) {
	case matching.KindInvalidArgument:
		if errors.Is(err, matching.ErrRequestNotFound) {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case matching.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
