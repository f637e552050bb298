// Package translation runs a topology translation end to end: it records
// the run, builds the descriptor, assembles dependencies and writes the
// workspace the build collaborator picks up.
package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"topology-builder/internal/config"
	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
	"topology-builder/internal/topology"
	"topology-builder/pkg/utils"
)

// Store is the persistence the runner needs.
type Store interface {
	topology.SchemaSource
	topology.ModuleSource
	SaveTranslation(ctx context.Context, t *model.Translation) error
	UpdateTranslationStatus(ctx context.Context, id, status string) error
	UpdateTranslation(ctx context.Context, t *model.Translation) error
	SaveDiagnostics(ctx context.Context, translationID string, diags []model.Diagnostic) error
	SaveTranslationError(ctx context.Context, translationID string, err error) error
}

// Runner translates topologies and keeps their records.
type Runner struct {
	store     Store
	workspace *utils.Workspace
	opts      topology.Options
	group     string
	newID     func() string
}

// NewRunner returns a Runner configured from cfg.
func NewRunner(st Store, ws *utils.Workspace, cfg config.Config) *Runner {
	return &Runner{
		store:     st,
		workspace: ws,
		opts:      topology.OptionsFromConfig(cfg),
		group:     cfg.ArtifactGroup,
		newID:     uuid.NewString,
	}
}

// Outcome is a finished translation and its structural diagnostics.
type Outcome struct {
	Translation *model.Translation `json:"translation"`
	Diagnostics []model.Diagnostic `json:"diagnostics"`
}

// Submit stores a pending translation for topo.
func (r *Runner) Submit(ctx context.Context, topo *model.Topology) (*model.Translation, error) {
	if topo == nil {
		return nil, errors.New("nil topology")
	}
	t := &model.Translation{
		ID:       r.newID(),
		Name:     topo.Name,
		Status:   model.StatusPending,
		Topology: topo,
	}
	if err := r.store.SaveTranslation(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save translation: %w", err)
	}
	return t, nil
}

// Translate submits topo and runs it.
func (r *Runner) Translate(ctx context.Context, topo *model.Topology) (*Outcome, error) {
	t, err := r.Submit(ctx, topo)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, t)
}

// Run translates a submitted translation. On failure the record is marked
// failed and the error is stored with it; the returned Outcome still
// carries the record.
func (r *Runner) Run(ctx context.Context, t *model.Translation) (out *Outcome, err error) {
	start := time.Now()
	logger := ctxlog.FromContext(ctx).With("translation_id", t.ID, "topology", t.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Info("Starting translation.")

	out = &Outcome{Translation: t, Diagnostics: []model.Diagnostic{}}

	if err := r.setStatus(ctx, t, model.StatusTranslating); err != nil {
		return out, err
	}

	defer func() {
		if err == nil {
			return
		}
		logger.Error("Translation failed.", "error", err)
		t.Status = model.StatusFailed
		t.Descriptor = nil
		t.Dependencies = nil
		// the caller's context may be what failed
		bg := context.WithoutCancel(ctx)
		if e := r.store.UpdateTranslation(bg, t); e != nil {
			logger.Error("Failed to mark translation failed.", "error", e)
		}
		if e := r.store.SaveTranslationError(bg, t.ID, err); e != nil {
			logger.Error("Failed to record translation error.", "error", e)
		}
		var se *topology.StructuralError
		if errors.As(err, &se) {
			out.Diagnostics = se.Diagnostics
			if e := r.store.SaveDiagnostics(bg, t.ID, se.Diagnostics); e != nil {
				logger.Error("Failed to record diagnostics.", "error", e)
			}
		}
	}()

	res, err := topology.Build(ctx, r.store, r.opts, t.Topology)
	if err != nil {
		return out, err
	}
	out.Diagnostics = res.Diagnostics
	if err := r.store.SaveDiagnostics(ctx, t.ID, res.Diagnostics); err != nil {
		return out, fmt.Errorf("failed to save diagnostics: %w", err)
	}

	deps, err := topology.Dependencies(ctx, r.store, t.Topology.Nodes, r.group)
	if err != nil {
		return out, err
	}
	if deps == nil {
		deps = []model.Dependency{}
	}

	if err := r.writeWorkspace(ctx, t.ID, res.Descriptor, deps); err != nil {
		return out, err
	}

	t.Status = model.StatusTranslated
	t.Descriptor = res.Descriptor
	t.Dependencies = deps
	t.Workspace = r.workspace.Dir(t.ID)
	if err := r.store.UpdateTranslation(ctx, t); err != nil {
		return out, fmt.Errorf("failed to save translation: %w", err)
	}

	logger.Info("Translation completed.",
		"components", res.Descriptor.BuilderConfig.Len(),
		"diagnostics", len(res.Diagnostics),
		"dependencies", len(deps),
		"duration", time.Since(start),
	)
	return out, nil
}

func (r *Runner) setStatus(ctx context.Context, t *model.Translation, status string) error {
	if err := r.store.UpdateTranslationStatus(ctx, t.ID, status); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	t.Status = status
	return nil
}

func (r *Runner) writeWorkspace(ctx context.Context, id string, desc *model.Descriptor, deps []model.Dependency) error {
	logger := ctxlog.FromContext(ctx)

	path, err := r.workspace.WriteJSON(id, utils.DescriptorFile, desc)
	if err != nil {
		return err
	}
	logger.Debug("Descriptor written.", "path", path)

	coords := make([]string, 0, len(deps))
	for _, d := range deps {
		coords = append(coords, d.String())
	}
	path, err = r.workspace.WriteJSON(id, utils.DependenciesFile, coords)
	if err != nil {
		return err
	}
	logger.Debug("Dependencies written.", "path", path)
	return nil
}
