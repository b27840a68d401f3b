package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/deodar/internal/app"
	"github.com/ayusman/deodar/internal/scene"
)

// Tunable ranges enforced at the HTTP boundary. The scene itself trusts
// its inputs, so clamping happens here.
const (
	minDensity    = 0.0
	maxDensity    = 1.0
	minSizeFactor = 0.1
	maxSizeFactor = 4.0
	minBreathing  = 0.0
	maxBreathing  = 5.0
	minStar       = 0.0
	maxStar       = 1.0
)

// ParamsHandler reads and writes the scene tunables.
type ParamsHandler struct {
	app *app.App
}

// NewParamsHandler creates a new ParamsHandler for the given app.
func NewParamsHandler(a *app.App) *ParamsHandler {
	return &ParamsHandler{app: a}
}

// ServeHTTP handles GET and PUT /api/params.
func (h *ParamsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.app.Scene().Params())

	case http.MethodPut:
		var p scene.Params
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		p.Density = clamp(p.Density, minDensity, maxDensity)
		p.SizeFactor = clamp(p.SizeFactor, minSizeFactor, maxSizeFactor)
		p.BreathingSpeed = clamp(p.BreathingSpeed, minBreathing, maxBreathing)
		p.StarBrightness = clamp(p.StarBrightness, minStar, maxStar)

		h.app.Scene().SetParams(p)
		writeJSON(w, http.StatusOK, p)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
