// Package api provides the HTTP API handlers for the gesture control app.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/kathak/internal/app"
	"github.com/ayusman/kathak/internal/store"
)

// ProfileHandler handles HTTP requests for game profile resources.
type ProfileHandler struct {
	store *store.Store
	app   *app.App
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(s *store.Store, a *app.App) *ProfileHandler {
	return &ProfileHandler{store: s, app: a}
}

// ServeHTTP routes profile requests.
// Expected paths: /api/profiles, /api/profiles/{id}, /api/profiles/{id}/activate
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type profileRequest struct {
	Name     string            `json:"name"`
	Bindings map[string]string `json:"bindings"`
}

type profileResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Builtin   bool              `json:"builtin"`
	Active    bool              `json:"active"`
	Bindings  map[string]string `json:"bindings"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

func (h *ProfileHandler) toResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Builtin:   p.Builtin,
		Active:    p.Name == h.app.Profiles().ActiveName(),
		Bindings:  p.Bindings,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/profiles.
func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	response := listProfilesResponse{
		Profiles: make([]profileResponse, 0, len(profiles)),
	}
	for _, p := range profiles {
		response.Profiles = append(response.Profiles, h.toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/profiles/{id}.
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(p))
}

// create handles POST /api/profiles.
func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if len(req.Bindings) == 0 {
		writeError(w, http.StatusBadRequest, "Bindings are required")
		return
	}

	p := &store.Profile{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Bindings: req.Bindings,
	}
	if err := h.store.Profiles().Create(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	h.app.Profiles().Add(app.RuntimeProfile(p))

	writeJSON(w, http.StatusCreated, h.toResponse(p))
}

// update handles PUT /api/profiles/{id}.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}
	if p.Builtin {
		writeError(w, http.StatusForbidden, "Built-in profiles cannot be modified")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	oldName := p.Name
	if req.Name != "" {
		p.Name = req.Name
	}
	if len(req.Bindings) > 0 {
		p.Bindings = req.Bindings
	}

	if err := h.store.Profiles().Update(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	// Keep the runtime registry in step with the rename.
	wasActive := h.app.Profiles().ActiveName() == oldName
	h.app.Profiles().Remove(oldName)
	h.app.Profiles().Add(app.RuntimeProfile(p))
	if wasActive {
		h.app.Profiles().SetActive(p.Name)
	}

	writeJSON(w, http.StatusOK, h.toResponse(p))
}

// delete handles DELETE /api/profiles/{id}.
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}
	if p.Builtin {
		writeError(w, http.StatusForbidden, "Built-in profiles cannot be deleted")
		return
	}

	if err := h.store.Profiles().Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}
	h.app.Profiles().Remove(p.Name)

	w.WriteHeader(http.StatusNoContent)
}

// activate handles POST /api/profiles/{id}/activate.
func (h *ProfileHandler) activate(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	if err := h.app.ActivateProfile(p.Name); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to activate profile")
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(p))
}
