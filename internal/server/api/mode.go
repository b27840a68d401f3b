package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/deodar/internal/app"
	"github.com/ayusman/deodar/internal/gesture"
)

// ModeHandler handles manual scene mode overrides.
type ModeHandler struct {
	app *app.App
}

// NewModeHandler creates a new ModeHandler for the given app.
func NewModeHandler(a *app.App) *ModeHandler {
	return &ModeHandler{app: a}
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

type modeResponse struct {
	Mode string `json:"mode"`
}

// ServeHTTP handles GET and POST /api/mode. A manual override bypasses
// the gesture debounce.
func (h *ModeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, modeResponse{Mode: h.app.Mode().String()})

	case http.MethodPost:
		var req setModeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		mode, err := gesture.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown mode")
			return
		}

		h.app.SetMode(mode)
		writeJSON(w, http.StatusOK, modeResponse{Mode: mode.String()})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
