package topology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topology-builder/internal/config"
)

var testDefaults = config.Defaults{MaxSpoutPending: 1000, Workers: 1, MessageTimeout: 30}

func TestNormalizePropertiesAppliesDefaults(t *testing.T) {
	props, err := NormalizeProperties("tweets", map[string]any{}, testDefaults)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":                 "tweets",
		RuntimeMaxSpoutPending: 1000,
		RuntimeWorkers:         1,
		RuntimeMessageTimeout:  30,
	}, props)
}

func TestNormalizePropertiesCoercesAndRenames(t *testing.T) {
	props, err := NormalizeProperties("tweets", map[string]any{
		PropMaxSpoutPending: "50",
		PropNumWorkers:      float64(4),
		"name":              "overwritten",
		"custom":            "kept",
	}, testDefaults)
	require.NoError(t, err)

	assert.Equal(t, 50, props[RuntimeMaxSpoutPending])
	assert.Equal(t, 4, props[RuntimeWorkers])
	assert.Equal(t, 30, props[RuntimeMessageTimeout])
	assert.Equal(t, "tweets", props["name"])
	assert.Equal(t, "kept", props["custom"])
	assert.NotContains(t, props, PropMaxSpoutPending)
	assert.NotContains(t, props, PropNumWorkers)
}

func TestNormalizePropertiesExpandsExtraConfiguration(t *testing.T) {
	in := map[string]any{
		PropExtraConfiguration: "  topology.debug=true\nurl=http://x?a=b\nno equals here\nnumWorkers=3\n",
	}
	props, err := NormalizeProperties("t", in, testDefaults)
	require.NoError(t, err)

	assert.Equal(t, "true", props["topology.debug"])
	assert.Equal(t, "http://x?a=b", props["url"])
	assert.Equal(t, 3, props[RuntimeWorkers])
	assert.NotContains(t, props, PropExtraConfiguration)
	assert.NotContains(t, props, "no equals here")

	// the caller's map is left alone
	assert.Contains(t, in, PropExtraConfiguration)
	assert.Len(t, in, 1)
}

func TestNormalizePropertiesKeepsExtraConfigurationVerbatim(t *testing.T) {
	in := map[string]any{
		PropExtraConfiguration: "spaced key = spaced value \n=orphan\nk=a=b",
	}
	props, err := NormalizeProperties("t", in, testDefaults)
	require.NoError(t, err)

	assert.Equal(t, " spaced value ", props["spaced key "])
	assert.Equal(t, "orphan", props[""])
	assert.Equal(t, "a=b", props["k"])
}

func TestNormalizePropertiesRejectsNonInteger(t *testing.T) {
	_, err := NormalizeProperties("t", map[string]any{PropMessageTimeout: "soon"}, testDefaults)
	require.Error(t, err)

	var pve *PropertyValidationError
	require.True(t, errors.As(err, &pve))
	assert.Equal(t, PropMessageTimeout, pve.Key)
	assert.Equal(t, "soon", pve.Value)
}

func TestNormalizePropertiesRejectsFractionalNumber(t *testing.T) {
	_, err := NormalizeProperties("t", map[string]any{PropNumWorkers: 2.5}, testDefaults)

	var pve *PropertyValidationError
	require.ErrorAs(t, err, &pve)
	assert.Equal(t, PropNumWorkers, pve.Key)
}

func TestNormalizePropertiesNilMap(t *testing.T) {
	props, err := NormalizeProperties("t", nil, testDefaults)
	require.NoError(t, err)
	assert.Equal(t, "t", props["name"])
	assert.Len(t, props, 4)
}
