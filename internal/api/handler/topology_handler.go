package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"topology-builder/internal/model"
	"topology-builder/internal/topology"
	"topology-builder/pkg/router"
)

const (
	topologyRoute            = "/api/v1/topologies/*"
	topologyDescriptorRoute  = "/api/v1/topologies/*/descriptor"
	topologyDiagnosticsRoute = "/api/v1/topologies/*/diagnostics"
	topologyErrorsRoute      = "/api/v1/topologies/*/errors"
)

// FailedTranslation is the reply when a topology cannot be translated.
type FailedTranslation struct {
	Error       string             `json:"error"`
	Translation *model.Translation `json:"translation"`
	Diagnostics []model.Diagnostic `json:"diagnostics"`
}

// CreateTopology translates a pipeline model
// @Summary Translate a topology
// @Description Translate a pipeline model into an execution descriptor, store the run and write its workspace
// @Tags topologies
// @Accept json
// @Produce json
// @Param topology body model.Topology true "Pipeline model"
// @Success 201 {object} translation.Outcome "Translation result"
// @Failure 400 {object} ErrorResponse "Invalid request payload"
// @Failure 422 {object} FailedTranslation "Topology cannot be translated"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /topologies [post]
func (h *Handler) CreateTopology(w http.ResponseWriter, r *http.Request) {
	var topo model.Topology
	if err := json.NewDecoder(r.Body).Decode(&topo); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if topo.Name == "" {
		writeError(w, r, http.StatusBadRequest, "Topology name is required", nil)
		return
	}

	out, err := h.runner.Translate(r.Context(), &topo)
	if err != nil {
		if out == nil || !isTranslationError(err) {
			writeError(w, r, http.StatusInternalServerError, "Failed to translate topology", err)
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, FailedTranslation{
			Error:       err.Error(),
			Translation: out.Translation,
			Diagnostics: out.Diagnostics,
		})
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func isTranslationError(err error) bool {
	var (
		pve *topology.PropertyValidationError
		sle *topology.SchemaLookupError
		tre *topology.TemplateResolutionError
		tce *topology.TypeCoercionError
		se  *topology.StructuralError
	)
	return errors.As(err, &pve) || errors.As(err, &sle) || errors.As(err, &tre) ||
		errors.As(err, &tce) || errors.As(err, &se)
}

// ListTopologies lists translations
// @Summary List translations
// @Description Get all translations with their status, newest first
// @Tags topologies
// @Produce json
// @Success 200 {array} model.Translation "List of translations"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /topologies [get]
func (h *Handler) ListTopologies(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListTranslations(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Failed to fetch translations", err)
		return
	}
	if list == nil {
		list = []model.Translation{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetTopology fetches one translation
// @Summary Get translation
// @Description Retrieve a translation with its pipeline model, descriptor and dependencies
// @Tags topologies
// @Produce json
// @Param id path string true "Translation ID"
// @Success 200 {object} model.Translation "Translation"
// @Failure 404 {object} ErrorResponse "Translation not found"
// @Router /topologies/{id} [get]
func (h *Handler) GetTopology(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r.URL.Path, topologyRoute)
	t, err := h.store.GetTranslation(r.Context(), id)
	if err != nil {
		writeError(w, r, lookupStatus(err), "Translation not found", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// GetDescriptor fetches the descriptor of a translation
// @Summary Get descriptor
// @Description Retrieve the execution descriptor produced by a translation
// @Tags topologies
// @Produce json
// @Param id path string true "Translation ID"
// @Success 200 {object} model.Descriptor "Execution descriptor"
// @Failure 404 {object} ErrorResponse "Translation or descriptor not found"
// @Router /topologies/{id}/descriptor [get]
func (h *Handler) GetDescriptor(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r.URL.Path, topologyDescriptorRoute)
	t, err := h.store.GetTranslation(r.Context(), id)
	if err != nil {
		writeError(w, r, lookupStatus(err), "Translation not found", err)
		return
	}
	if t.Descriptor == nil {
		writeError(w, r, http.StatusNotFound, "Translation has no descriptor", nil)
		return
	}
	writeJSON(w, http.StatusOK, t.Descriptor)
}

// GetDiagnostics lists the structural diagnostics of a translation
// @Summary Get diagnostics
// @Description Retrieve the nodes, parameters and wires skipped during translation
// @Tags topologies
// @Produce json
// @Param id path string true "Translation ID"
// @Success 200 {object} map[string]interface{} "Diagnostics"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /topologies/{id}/diagnostics [get]
func (h *Handler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r.URL.Path, topologyDiagnosticsRoute)
	diags, err := h.store.GetDiagnostics(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Failed to retrieve diagnostics", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"translation_id": id,
		"diagnostics":    diags,
		"count":          len(diags),
	})
}

// GetErrors lists the fatal errors of a translation
// @Summary Get translation errors
// @Description Retrieve the errors that made a translation fail
// @Tags topologies
// @Produce json
// @Param id path string true "Translation ID"
// @Success 200 {object} map[string]interface{} "Translation errors"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /topologies/{id}/errors [get]
func (h *Handler) GetErrors(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r.URL.Path, topologyErrorsRoute)
	errs, err := h.store.GetTranslationErrors(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Failed to retrieve errors", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"translation_id": id,
		"errors":         errs,
		"count":          len(errs),
	})
}

// DeleteTopology removes a translation and its workspace
// @Summary Delete translation
// @Description Delete a translation record, its diagnostics, errors and workspace
// @Tags topologies
// @Param id path string true "Translation ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse "Translation not found"
// @Router /topologies/{id} [delete]
func (h *Handler) DeleteTopology(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r.URL.Path, topologyRoute)
	if err := h.store.DeleteTranslation(r.Context(), id); err != nil {
		writeError(w, r, lookupStatus(err), "Failed to delete translation", err)
		return
	}
	if err := h.workspace.Remove(id); err != nil {
		writeError(w, r, http.StatusInternalServerError, "Failed to remove workspace", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
