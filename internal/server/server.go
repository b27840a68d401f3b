// Package server provides the HTTP boundary for the holiday scene: health,
// frame broadcast, camera preview, photos, mode override, and tunables.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/deodar/internal/app"
	"github.com/ayusman/deodar/internal/server/api"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       *app.App
}

// Server represents the HTTP server for the scene application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.App != nil {
		photosHandler := api.NewPhotosHandler(s.config.App)

		// /api/photos and /api/photos/{id}/click share a handler
		photosRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/click") {
				photosHandler.ServeClick(w, r)
				return
			}
			photosHandler.ServeHTTP(w, r)
		})
		s.mux.Handle("/api/photos", photosRouter)
		s.mux.Handle("/api/photos/", photosRouter)

		s.mux.Handle("/api/mode", api.NewModeHandler(s.config.App))
		s.mux.Handle("/api/params", api.NewParamsHandler(s.config.App))

		s.mux.Handle("/api/frames", NewFramesHandler(s.config.App))
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App.Camera()))
	}

	// Serve static files if StaticDir is configured
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

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
