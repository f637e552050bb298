package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
	"topology-builder/internal/store"
	"topology-builder/internal/translation"
	"topology-builder/pkg/utils"
)

// Store is the persistence the handlers read and write.
type Store interface {
	GetTranslation(ctx context.Context, id string) (*model.Translation, error)
	ListTranslations(ctx context.Context) ([]model.Translation, error)
	DeleteTranslation(ctx context.Context, id string) error
	GetDiagnostics(ctx context.Context, translationID string) ([]model.Diagnostic, error)
	GetTranslationErrors(ctx context.Context, translationID string) ([]model.TranslationError, error)
	SaveModule(ctx context.Context, m model.Module) error
	SaveModuleVersion(ctx context.Context, mv model.ModuleVersion) error
	GetSchemaVersion(ctx context.Context, id string) (*model.ModuleVersion, error)
}

// Handler serves the HTTP API.
type Handler struct {
	store     Store
	runner    *translation.Runner
	workspace *utils.Workspace
}

// New returns a Handler.
func New(st Store, runner *translation.Runner, ws *utils.Workspace) *Handler {
	return &Handler{store: st, runner: runner, workspace: ws}
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if err != nil {
		ctxlog.FromContext(r.Context()).Warn(msg, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// lookupStatus maps a store error to a reply status.
func lookupStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
