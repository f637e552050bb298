package translation

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topology-builder/internal/config"
	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
	"topology-builder/internal/store"
	"topology-builder/pkg/utils"
)

type fixture struct {
	store  *store.Store
	runner *Runner
	dir    string
}

func newFixture(t *testing.T, mutate func(*config.Config)) *fixture {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.ArtifactGroup = "com.acme"
	if mutate != nil {
		mutate(&cfg)
	}
	ws := utils.NewWorkspace(filepath.Join(dir, "out"))
	r := NewRunner(st, ws, cfg)
	var mu sync.Mutex
	n := 0
	r.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "tr-" + strconv.Itoa(n)
	}
	return &fixture{store: st, runner: r, dir: dir}
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func decodeTopology(t *testing.T, doc string) *model.Topology {
	t.Helper()
	var topo model.Topology
	require.NoError(t, json.Unmarshal([]byte(doc), &topo))
	return &topo
}

func TestTranslateWritesWorkspace(t *testing.T) {
	f := newFixture(t, nil)
	ctx := testContext()

	require.NoError(t, f.store.SaveModule(ctx, model.Module{
		ID:   "m1",
		Name: "counter",
		Libraries: []model.Library{
			{URL: "https://repo1.maven.org/maven2/org/json/json/20090211/json-20090211.jar"},
		},
	}))
	require.NoError(t, f.store.SaveModuleVersion(ctx, model.ModuleVersion{
		ID: "v1", ModuleID: "m1", VersionCode: 3,
		Fields: []model.Field{{Name: "count", Type: model.FieldInteger}},
	}))

	topo := decodeTopology(t, `{
		"name": "demo",
		"variables": {"n": "5"},
		"nodes": [
			{"type": "spout", "language": "java", "name": "Count",
			 "moduleId": "m1", "versionCode": 3, "moduleVersionId": "v1",
			 "params": {"count": "[$n]"}},
			{"type": "bolt", "language": "java", "name": "Print", "params": {}}
		],
		"wires": [{"src": {"node": 0}, "tgt": {"node": 1}}]
	}`)

	out, err := f.runner.Translate(ctx, topo)
	require.NoError(t, err)
	assert.Equal(t, model.StatusTranslated, out.Translation.Status)
	assert.Empty(t, out.Diagnostics)

	stored, err := f.store.GetTranslation(ctx, "tr-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusTranslated, stored.Status)
	assert.Equal(t, []model.Dependency{
		{GroupID: "com.acme", ArtifactID: "counter", Version: "3"},
		{GroupID: "org.json", ArtifactID: "json", Version: "20090211"},
	}, stored.Dependencies)

	data, err := os.ReadFile(filepath.Join(stored.Workspace, utils.DependenciesFile))
	require.NoError(t, err)
	assert.JSONEq(t, `["com.acme:counter:3","org.json:json:20090211"]`, string(data))

	data, err = os.ReadFile(filepath.Join(stored.Workspace, utils.DescriptorFile))
	require.NoError(t, err)
	var desc model.Descriptor
	require.NoError(t, json.Unmarshal(data, &desc))
	require.Len(t, desc.BuilderConfig.Ingress, 1)
	count, _ := desc.BuilderConfig.Ingress[0].Params.Get("count")
	assert.Equal(t, "5", count)
	require.Len(t, desc.BuilderConfig.Processing, 1)
	assert.Equal(t, desc.BuilderConfig.Ingress[0].AbstractionID, desc.BuilderConfig.Processing[0].Sources[0].SourceID)
}

func TestTranslateRecordsDiagnostics(t *testing.T) {
	f := newFixture(t, nil)
	ctx := testContext()

	topo := decodeTopology(t, `{
		"name": "partial",
		"nodes": [{"type": "spout", "language": "java", "name": "Broken"}]
	}`)

	out, err := f.runner.Translate(ctx, topo)
	require.NoError(t, err)
	require.Len(t, out.Diagnostics, 1)

	diags, err := f.store.GetDiagnostics(ctx, out.Translation.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Diagnostics, diags)
}

func TestTranslateFailureIsRecorded(t *testing.T) {
	f := newFixture(t, nil)
	ctx := testContext()

	topo := decodeTopology(t, `{
		"name": "bad",
		"properties": {"numWorkers": "lots"},
		"nodes": []
	}`)

	out, err := f.runner.Translate(ctx, topo)
	require.Error(t, err)
	require.NotNil(t, out)
	assert.Equal(t, model.StatusFailed, out.Translation.Status)

	stored, err := f.store.GetTranslation(ctx, out.Translation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, stored.Status)
	assert.Nil(t, stored.Descriptor)

	errs, err := f.store.GetTranslationErrors(ctx, out.Translation.ID)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "numWorkers")

	_, statErr := os.Stat(filepath.Join(f.dir, "out", out.Translation.ID))
	assert.True(t, os.IsNotExist(statErr), "no workspace for a failed translation")
}

func TestTranslateStrictStoresDiagnostics(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Strict = true })
	ctx := testContext()

	topo := decodeTopology(t, `{
		"name": "strict",
		"nodes": [{"type": "spout", "name": "NoLanguage", "params": {}}]
	}`)

	out, err := f.runner.Translate(ctx, topo)
	require.Error(t, err)
	require.Len(t, out.Diagnostics, 1)

	diags, err := f.store.GetDiagnostics(ctx, out.Translation.ID)
	require.NoError(t, err)
	assert.Len(t, diags, 1)
}

func TestSubmitRejectsNil(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.runner.Submit(testContext(), nil)
	assert.Error(t, err)
}
