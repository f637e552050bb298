// Package topology translates an authored topology (nodes plus wires) into
// the execution descriptor the stream runtime is built from.
//
// A Builder performs one translation. It normalizes the runtime properties,
// materializes every node (resolving templated parameters against the
// topology variables and the module schemas), normalizes wire direction,
// binds wires to their target components and groups the result by role.
//
// Structural problems with individual nodes, parameters or wires are
// collected as diagnostics and the offending element is skipped. Property,
// schema, template and coercion failures abort the translation.
package topology

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"topology-builder/internal/config"
	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
)

// SchemaSource provides module version schemas.
type SchemaSource interface {
	GetSchemaVersion(ctx context.Context, id string) (*model.ModuleVersion, error)
}

// Options tune a Builder.
type Options struct {
	Defaults       config.Defaults
	ClassNamespace string
	// ForwardAllGlobals processes every global variable wire. When false
	// binding stops after the first one.
	ForwardAllGlobals bool
	// Strict turns structural diagnostics into a fatal *StructuralError.
	Strict bool
	// NewID generates instance id suffixes. Defaults to random UUIDs.
	NewID func() string
}

// OptionsFromConfig builds Options from the service configuration.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Defaults:          cfg.Defaults,
		ClassNamespace:    cfg.ClassNamespace,
		ForwardAllGlobals: cfg.ForwardAllGlobals,
		Strict:            cfg.Strict,
	}
}

// Result is the outcome of a successful translation.
type Result struct {
	Descriptor  *model.Descriptor
	Diagnostics []model.Diagnostic
}

// Builder translates a single topology. It owns the schema cache for that
// run; use a new Builder for each translation.
type Builder struct {
	opts   Options
	fields *FieldResolver
	diags  []model.Diagnostic
	used   bool
}

// NewBuilder returns a Builder that reads schemas from src.
func NewBuilder(src SchemaSource, opts Options) *Builder {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.ClassNamespace == "" {
		opts.ClassNamespace = config.Default().ClassNamespace
	}
	return &Builder{
		opts:   opts,
		fields: NewFieldResolver(src),
	}
}

// Build is a shorthand for NewBuilder(src, opts).Build(ctx, topo).
func Build(ctx context.Context, src SchemaSource, opts Options, topo *model.Topology) (*Result, error) {
	return NewBuilder(src, opts).Build(ctx, topo)
}

// Build translates topo. topo is not modified. On error no descriptor is
// returned.
func (b *Builder) Build(ctx context.Context, topo *model.Topology) (*Result, error) {
	if b.used {
		return nil, errors.New("topology: builder already used; create one per translation")
	}
	b.used = true
	if topo == nil {
		return nil, errors.New("topology: nil topology")
	}
	logger := ctxlog.FromContext(ctx).With("topology", topo.Name)

	props, err := NormalizeProperties(topo.Name, topo.Properties, b.opts.Defaults)
	if err != nil {
		return nil, err
	}
	logger.Debug("Properties normalized.", "count", len(props))

	byIndex := make(map[int]*model.Component, len(topo.Nodes))
	ordered := make([]*model.Component, 0, len(topo.Nodes))
	for i := range topo.Nodes {
		c, err := b.Materialize(ctx, i, &topo.Nodes[i], topo.Variables)
		if err != nil {
			return nil, err
		}
		if c == nil {
			continue
		}
		byIndex[i] = c
		ordered = append(ordered, c)
	}
	logger.Debug("Nodes materialized.", "materialized", len(ordered), "declared", len(topo.Nodes))

	wires := NormalizeWires(cloneWires(topo.Wires))
	b.Bind(ctx, byIndex, wires)

	for _, d := range b.diags {
		logger.Warn("Structural problem skipped.", "element", d.Element, "index", d.Index, "name", d.Name, "reason", d.Message)
	}
	if b.opts.Strict && len(b.diags) > 0 {
		return nil, &StructuralError{Diagnostics: b.Diagnostics()}
	}

	return &Result{
		Descriptor: &model.Descriptor{
			Properties:    props,
			BuilderConfig: Group(ordered),
		},
		Diagnostics: b.Diagnostics(),
	}, nil
}

// Diagnostics returns the structural problems recorded so far.
func (b *Builder) Diagnostics() []model.Diagnostic {
	out := make([]model.Diagnostic, len(b.diags))
	copy(out, b.diags)
	return out
}

func (b *Builder) report(element string, index int, name, message string) {
	b.diags = append(b.diags, model.Diagnostic{
		Element: element,
		Index:   index,
		Name:    name,
		Message: message,
	})
}

func cloneWires(wires []model.Wire) []model.Wire {
	out := make([]model.Wire, len(wires))
	for i, w := range wires {
		if w.Src != nil {
			src := *w.Src
			out[i].Src = &src
		}
		if w.Tgt != nil {
			tgt := *w.Tgt
			out[i].Tgt = &tgt
		}
	}
	return out
}
