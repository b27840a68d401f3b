// Package api provides HTTP API handlers for the holiday scene.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/deodar/internal/app"
	"github.com/ayusman/deodar/internal/scene"
)

// PhotosHandler handles HTTP requests for the photo collection.
type PhotosHandler struct {
	app *app.App
}

// NewPhotosHandler creates a new PhotosHandler for the given app.
func NewPhotosHandler(a *app.App) *PhotosHandler {
	return &PhotosHandler{app: a}
}

type addPhotoRequest struct {
	URL string `json:"url"`
}

type photoResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

type listPhotosResponse struct {
	Photos []photoResponse `json:"photos"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ServeHTTP routes collection requests: GET and POST /api/photos.
func (h *PhotosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ServeClick handles POST /api/photos/{id}/click from the renderer.
func (h *PhotosHandler) ServeClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/photos/")
	id = strings.TrimSuffix(id, "/click")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "Invalid photo id")
		return
	}

	if !h.app.HandleClick(id) {
		writeError(w, http.StatusNotFound, "Photo not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mode": h.app.Mode().String()})
}

// list handles GET /api/photos and returns all photos.
func (h *PhotosHandler) list(w http.ResponseWriter, r *http.Request) {
	photos := h.app.Scene().Photos()
	activeIdx := photos.ActiveIndex()

	response := listPhotosResponse{Photos: make([]photoResponse, 0, photos.Len())}
	for i, p := range photos.List() {
		response.Photos = append(response.Photos, photoResponse{
			ID:     p.ID,
			URL:    p.URL,
			Active: i == activeIdx,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// add handles POST /api/photos and appends a photo to the collection.
func (h *PhotosHandler) add(w http.ResponseWriter, r *http.Request) {
	var req addPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	p := h.app.Scene().Photos().Add(req.URL)
	writeJSON(w, http.StatusCreated, toPhotoResponse(p, h.app.Scene().Photos()))
}

func toPhotoResponse(p scene.Photo, list *scene.PhotoList) photoResponse {
	active, ok := list.Active()
	return photoResponse{
		ID:     p.ID,
		URL:    p.URL,
		Active: ok && active.ID == p.ID,
	}
}
