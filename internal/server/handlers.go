package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"linkedin-scraper/internal/crawler"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/session"
)

type scrapeRequest struct {
	APIKey       string `json:"api_key"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	PaginationID string `json:"pagination_id"`
}

// authorize parses and validates the request body shared by both endpoints.
// It writes the response itself on failure and reports whether to continue.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (scrapeRequest, bool) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}
	if req.APIKey == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "api_key, username and password are required")
		return req, false
	}
	if _, ok := s.apiKeys[req.APIKey]; !ok {
		writeError(w, http.StatusUnauthorized, "Invalid API Key")
		return req, false
	}
	return req, true
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	req, ok := s.authorize(w, r)
	if !ok {
		return
	}

	record, err := s.pipeline.GetProfile(r.Context(), models.Credentials{
		Email:    req.Username,
		Password: req.Password,
	})
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Data processed",
		"data":    record,
	})
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	req, ok := s.authorize(w, r)
	if !ok {
		return
	}

	page, err := s.pipeline.GetConnections(r.Context(), models.Credentials{
		Email:    req.Username,
		Password: req.Password,
	}, req.PaginationID)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":          "Data processed",
		"connections_data": page,
	})
}

// writePipelineError maps pipeline error kinds onto caller-facing statuses.
// The caller always learns which stage failed; a failure never surfaces as
// an empty success.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	s.log.Error("pipeline call failed", "err", err)

	switch {
	case errors.Is(err, session.ErrAuthentication):
		writeError(w, http.StatusUnauthorized, "upstream login failed")
	case errors.Is(err, crawler.ErrInvalidCursor):
		writeError(w, http.StatusBadRequest, "invalid pagination_id")
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
