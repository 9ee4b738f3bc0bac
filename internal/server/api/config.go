package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/kathak/internal/app"
)

// ConfigHandler exposes the gesture configuration for reading and tuning.
type ConfigHandler struct {
	app *app.App
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(a *app.App) *ConfigHandler {
	return &ConfigHandler{app: a}
}

// ServeHTTP handles GET and PUT on /api/config.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.app.GestureConfig())
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// update decodes the request over the current configuration, so partial
// bodies only change the fields they name.
func (h *ConfigHandler) update(w http.ResponseWriter, r *http.Request) {
	cfg := h.app.GestureConfig()
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.app.ApplyGestureConfig(cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.app.GestureConfig())
}
