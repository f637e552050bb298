package topology

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"topology-builder/internal/config"
	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
)

var errSchemaMissing = errors.New("schema missing")

type fakeSchemas struct {
	versions map[string]*model.ModuleVersion
	calls    map[string]int
}

func newFakeSchemas(versions ...*model.ModuleVersion) *fakeSchemas {
	f := &fakeSchemas{
		versions: make(map[string]*model.ModuleVersion),
		calls:    make(map[string]int),
	}
	for _, v := range versions {
		f.versions[v.ID] = v
	}
	return f
}

func (f *fakeSchemas) GetSchemaVersion(_ context.Context, id string) (*model.ModuleVersion, error) {
	f.calls[id]++
	mv, ok := f.versions[id]
	if !ok {
		return nil, errSchemaMissing
	}
	return mv, nil
}

func version(id string, fields ...model.Field) *model.ModuleVersion {
	return &model.ModuleVersion{ID: id, ModuleID: "m-" + id, VersionCode: 1, Fields: fields}
}

func field(name string, t model.FieldType) model.Field {
	return model.Field{Name: name, Type: t}
}

// sequentialIDs makes instance ids predictable: name_1, name_2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return strconv.Itoa(n)
	}
}

func testOptions() Options {
	return Options{
		Defaults:       config.Default().Defaults,
		ClassNamespace: "io.streamgraph",
		NewID:          sequentialIDs(),
	}
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func mustTopology(t *testing.T, doc string) *model.Topology {
	t.Helper()
	var topo model.Topology
	require.NoError(t, json.Unmarshal([]byte(doc), &topo))
	return &topo
}

func paramsJSON(t *testing.T, p *model.Params) string {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return string(data)
}
