package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topology-builder/internal/model"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestModuleVersions(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	mv := model.ModuleVersion{
		ID:          "v1",
		ModuleID:    "m1",
		VersionCode: 2,
		Fields: []model.Field{
			{Name: "count", Type: model.FieldInteger, Required: true},
			{Name: "hosts", Type: model.FieldList},
		},
	}
	require.NoError(t, s.SaveModuleVersion(ctx, mv))

	got, err := s.GetSchemaVersion(ctx, "v1")
	require.NoError(t, err)
	if diff := cmp.Diff(&mv, got); diff != "" {
		t.Fatalf("unexpected module version -want/+got:\n%s", diff)
	}

	_, err = s.GetSchemaVersion(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModulesByIDs(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	require.NoError(t, s.SaveModule(ctx, model.Module{ID: "a", Name: "alpha", Language: "java"}))
	require.NoError(t, s.SaveModule(ctx, model.Module{
		ID:   "b",
		Name: "beta",
		Libraries: []model.Library{
			{GroupID: "org.json", ArtifactID: "json", Version: "20090211"},
		},
	}))

	mods, err := s.GetModulesByIDs(ctx, []string{"b", "missing", "a"})
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "beta", mods[0].Name)
	assert.Equal(t, "org.json", mods[0].Libraries[0].GroupID)
	assert.Equal(t, "alpha", mods[1].Name)
	assert.Equal(t, "java", mods[1].Language)

	mods, err = s.GetModulesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, mods)
}

func TestTranslationLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	tr := &model.Translation{
		ID:       "t1",
		Name:     "demo",
		Topology: &model.Topology{Name: "demo"},
	}
	require.NoError(t, s.SaveTranslation(ctx, tr))
	assert.Equal(t, model.StatusPending, tr.Status)

	require.NoError(t, s.UpdateTranslationStatus(ctx, "t1", model.StatusTranslating))

	params := model.NewParams()
	params.Set("count", "5")
	tr.Status = model.StatusTranslated
	tr.Descriptor = &model.Descriptor{
		Properties: map[string]any{"name": "demo"},
		BuilderConfig: model.BuilderConfig{
			Ingress: []*model.Component{{
				Role:          model.RoleIngress,
				AbstractionID: "Count_1",
				Parallelism:   "1",
				Sources:       []model.Source{},
				Params:        params,
			}},
			Processing: []*model.Component{},
			Egress:     []*model.Component{},
		},
	}
	tr.Dependencies = []model.Dependency{{GroupID: "g", ArtifactID: "a", Version: "1"}}
	tr.Workspace = "/tmp/ws/t1"
	require.NoError(t, s.UpdateTranslation(ctx, tr))

	got, err := s.GetTranslation(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusTranslated, got.Status)
	assert.Equal(t, "demo", got.Topology.Name)
	assert.Equal(t, "/tmp/ws/t1", got.Workspace)
	assert.Equal(t, tr.Dependencies, got.Dependencies)
	require.Len(t, got.Descriptor.BuilderConfig.Ingress, 1)
	v, _ := got.Descriptor.BuilderConfig.Ingress[0].Params.Get("count")
	assert.Equal(t, "5", v)

	list, err := s.ListTranslations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Descriptor)

	require.NoError(t, s.DeleteTranslation(ctx, "t1"))
	_, err = s.GetTranslation(ctx, "t1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteTranslation(ctx, "t1"), ErrNotFound)
}

func TestUpdateUnknownTranslation(t *testing.T) {
	s := openTest(t)
	err := s.UpdateTranslationStatus(context.Background(), "ghost", model.StatusFailed)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDiagnosticsAndErrors(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	diags := []model.Diagnostic{
		{Element: "node", Index: 0, Name: "A", Message: "missing required fields: params"},
		{Element: "wire", Index: 3, Message: "wire needs both src and tgt"},
	}
	require.NoError(t, s.SaveDiagnostics(ctx, "t1", diags))
	require.NoError(t, s.SaveDiagnostics(ctx, "t1", nil))

	got, err := s.GetDiagnostics(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, diags, got)

	none, err := s.GetDiagnostics(ctx, "t2")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	require.NoError(t, s.SaveTranslationError(ctx, "t1", errors.New("boom")))
	require.NoError(t, s.SaveTranslationError(ctx, "t1", nil))
	errs, err := s.GetTranslationErrors(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "boom", errs[0].Message)
	assert.False(t, errs[0].CreatedAt.IsZero())
}
