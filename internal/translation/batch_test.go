package translation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topology-builder/internal/model"
)

func TestTranslateAll(t *testing.T) {
	f := newFixture(t, nil)
	ctx := testContext()

	topos := []*model.Topology{
		decodeTopology(t, `{"name": "a", "nodes": [{"type": "spout", "language": "java", "name": "A", "params": {}}]}`),
		decodeTopology(t, `{"name": "b", "properties": {"numWorkers": "x"}, "nodes": []}`),
		decodeTopology(t, `{"name": "c", "nodes": [{"type": "drain", "language": "java", "name": "C", "params": {}}]}`),
	}

	results := f.runner.TranslateAll(ctx, topos, 2)
	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, i, res.Index)
	}
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "a", results[0].Outcome.Translation.Name)
	assert.Equal(t, "c", results[2].Outcome.Translation.Name)

	list, err := f.store.ListTranslations(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestTranslateAllCancelled(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(testContext())
	cancel()

	results := f.runner.TranslateAll(ctx, []*model.Topology{
		decodeTopology(t, `{"name": "a", "nodes": []}`),
	}, 4)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestTranslateAllEmpty(t *testing.T) {
	f := newFixture(t, nil)
	assert.Empty(t, f.runner.TranslateAll(testContext(), nil, 3))
}
