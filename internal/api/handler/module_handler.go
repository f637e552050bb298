package handler

import (
	"encoding/json"
	"net/http"

	"topology-builder/internal/model"
	"topology-builder/pkg/router"
)

const moduleVersionRoute = "/api/v1/module-versions/*"

// CreateModule registers a module
// @Summary Register a module
// @Description Store a module with the libraries it needs at runtime
// @Tags modules
// @Accept json
// @Produce json
// @Param module body model.Module true "Module"
// @Success 201 {object} model.Module "Stored module"
// @Failure 400 {object} ErrorResponse "Invalid request payload"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /modules [post]
func (h *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var m model.Module
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if m.ID == "" || m.Name == "" {
		writeError(w, r, http.StatusBadRequest, "Module id and name are required", nil)
		return
	}
	if err := h.store.SaveModule(r.Context(), m); err != nil {
		writeError(w, r, http.StatusInternalServerError, "Failed to save module", err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// CreateModuleVersion registers a module version schema
// @Summary Register a module version
// @Description Store the parameter schema of one module version
// @Tags modules
// @Accept json
// @Produce json
// @Param version body model.ModuleVersion true "Module version"
// @Success 201 {object} model.ModuleVersion "Stored module version"
// @Failure 400 {object} ErrorResponse "Invalid request payload"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /module-versions [post]
func (h *Handler) CreateModuleVersion(w http.ResponseWriter, r *http.Request) {
	var mv model.ModuleVersion
	if err := json.NewDecoder(r.Body).Decode(&mv); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if mv.ID == "" {
		writeError(w, r, http.StatusBadRequest, "Module version id is required", nil)
		return
	}
	for _, f := range mv.Fields {
		if f.Name == "" {
			writeError(w, r, http.StatusBadRequest, "Every field needs a name", nil)
			return
		}
	}
	if err := h.store.SaveModuleVersion(r.Context(), mv); err != nil {
		writeError(w, r, http.StatusInternalServerError, "Failed to save module version", err)
		return
	}
	writeJSON(w, http.StatusCreated, mv)
}

// GetModuleVersion fetches a module version schema
// @Summary Get module version
// @Description Retrieve the parameter schema of one module version
// @Tags modules
// @Produce json
// @Param id path string true "Module version ID"
// @Success 200 {object} model.ModuleVersion "Module version"
// @Failure 404 {object} ErrorResponse "Module version not found"
// @Router /module-versions/{id} [get]
func (h *Handler) GetModuleVersion(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r.URL.Path, moduleVersionRoute)
	mv, err := h.store.GetSchemaVersion(r.Context(), id)
	if err != nil {
		writeError(w, r, lookupStatus(err), "Module version not found", err)
		return
	}
	writeJSON(w, http.StatusOK, mv)
}
