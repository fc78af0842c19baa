package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/vacancy-matching/internal/types"
)

// findMatchesBody is the JSON body of POST /requests/{id}/matches.
type findMatchesBody struct {
	Max int `json:"max"`
}

// handleFindMatches runs matching for the request in the path.
// It returns 201 with the created matches, or 200 with an empty list.
func (s *Server) handleFindMatches(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil || id == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	var body findMatchesBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := types.FindMatchesRequest{RequestID: id, Max: body.Max}
	if err := req.Validate(); err != nil {
		verr := &ErrValidation{Field: "max", Message: "must be a positive integer"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	matches, err := s.matcher.FindMatches(r.Context(), req.RequestID, req.Max)
	if err != nil {
		status := HTTPStatus(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			message = "matching failed"
		}
		s.errorResponse(w, status, message)
		return
	}

	if len(matches) == 0 {
		s.jsonResponse(w, http.StatusOK, []types.Match{})
		return
	}
	s.jsonResponse(w, http.StatusCreated, matches)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
