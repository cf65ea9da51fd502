// Package server is the front door: it validates the caller's API key,
// dispatches into the pipeline and maps pipeline error kinds onto HTTP
// status codes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"linkedin-scraper/internal/models"
)

// Pipeline is the surface the front door dispatches to
type Pipeline interface {
	GetProfile(ctx context.Context, creds models.Credentials) (models.ProfileRecord, error)
	GetConnections(ctx context.Context, creds models.Credentials, cursor string) (models.Page, error)
}

// Server routes front door requests to the pipeline
type Server struct {
	pipeline Pipeline
	apiKeys  map[string]struct{}
	log      *slog.Logger
}

// New creates a Server wired to the given pipeline
func New(pipeline Pipeline, apiKeys []string, log *slog.Logger) *Server {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		keys[k] = struct{}{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		pipeline: pipeline,
		apiKeys:  keys,
		log:      log.With("module", "server"),
	}
}

// Handler returns the root http.Handler for the service
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "LinkedIn scraper is running!")
	})
	mux.HandleFunc("POST /profile", s.handleProfile)
	mux.HandleFunc("POST /connections", s.handleConnections)

	return s.withLogging(mux)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Info("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
