// Package server provides the local HTTP control surface for the gesture
// control app.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/kathak/internal/app"
	"github.com/ayusman/kathak/internal/server/api"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       *app.App
}

// Server is the HTTP server exposing profiles, config, events, and the
// camera preview.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventsHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	a := s.config.App
	if a == nil {
		return
	}

	if a.Store() != nil {
		profileHandler := api.NewProfileHandler(a.Store(), a)
		s.mux.Handle("/api/profiles", profileHandler)
		s.mux.Handle("/api/profiles/", profileHandler)
	}

	s.mux.Handle("/api/config", api.NewConfigHandler(a))

	s.events = NewEventsHandler(a.Events())
	s.mux.Handle("/api/events", s.events)

	if a.Camera() != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(a.Camera()))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
	}
	if a := s.config.App; a != nil {
		response["uptime"] = a.Uptime().String()
		response["fps"] = a.FPS()
		response["latency_ms"] = a.LatencyMs()
		response["enabled"] = a.IsEnabled()
		response["profile"] = a.Profiles().ActiveName()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
