package topology

import (
	"context"
	"errors"

	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
)

// FieldResolver fetches module version schemas on first use and keeps them
// for the rest of the run. It is not safe for concurrent use.
type FieldResolver struct {
	src     SchemaSource
	schemas map[string]model.FieldSchema
}

// NewFieldResolver returns a resolver with an empty cache.
func NewFieldResolver(src SchemaSource) *FieldResolver {
	return &FieldResolver{
		src:     src,
		schemas: make(map[string]model.FieldSchema),
	}
}

// Resolve returns the field schema of a module version.
func (r *FieldResolver) Resolve(ctx context.Context, versionID string) (model.FieldSchema, error) {
	if schema, ok := r.schemas[versionID]; ok {
		return schema, nil
	}
	if versionID == "" {
		return nil, &SchemaLookupError{Err: errors.New("node does not reference a module version")}
	}
	if r.src == nil {
		return nil, &SchemaLookupError{VersionID: versionID, Err: errors.New("no schema source configured")}
	}

	mv, err := r.src.GetSchemaVersion(ctx, versionID)
	if err != nil {
		return nil, &SchemaLookupError{VersionID: versionID, Err: err}
	}
	if mv == nil {
		return nil, &SchemaLookupError{VersionID: versionID, Err: errors.New("schema not found")}
	}

	schema := mv.Schema()
	r.schemas[versionID] = schema
	ctxlog.FromContext(ctx).Debug("Module version schema fetched.", "version_id", versionID, "fields", len(schema))
	return schema, nil
}

// Cached reports how many schemas the resolver holds.
func (r *FieldResolver) Cached() int {
	return len(r.schemas)
}
