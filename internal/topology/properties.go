package topology

import (
	"fmt"
	"strings"

	"topology-builder/internal/config"
	"topology-builder/pkg/utils"
)

// Authoring-side property names.
const (
	PropExtraConfiguration = "extraConfiguration"
	PropMaxSpoutPending    = "maxSpoutPending"
	PropNumWorkers         = "numWorkers"
	PropMessageTimeout     = "messageTimeout"
	PropName               = "name"
)

// Runtime-side property names.
const (
	RuntimeMaxSpoutPending = "topology.max.spout.pending"
	RuntimeWorkers         = "topology.workers"
	RuntimeMessageTimeout  = "topology.message.timeout.secs"
)

type numericProperty struct {
	from, to string
	fallback func(config.Defaults) int
}

var numericProperties = []numericProperty{
	{PropMaxSpoutPending, RuntimeMaxSpoutPending, func(d config.Defaults) int { return d.MaxSpoutPending }},
	{PropNumWorkers, RuntimeWorkers, func(d config.Defaults) int { return d.Workers }},
	{PropMessageTimeout, RuntimeMessageTimeout, func(d config.Defaults) int { return d.MessageTimeout }},
}

// NormalizeProperties returns a normalized copy of the topology properties.
// The extra configuration block is expanded into individual keys, name is
// set to the topology name and the well-known numeric settings are renamed
// to their runtime keys, falling back to defaults.
func NormalizeProperties(name string, props map[string]any, defaults config.Defaults) (map[string]any, error) {
	out := make(map[string]any, len(props)+4)
	for k, v := range props {
		out[k] = v
	}

	if extra, ok := out[PropExtraConfiguration]; ok {
		if extra != nil {
			text, ok := extra.(string)
			if !ok {
				return nil, &PropertyValidationError{Key: PropExtraConfiguration, Value: extra, Err: fmt.Errorf("expected text, got %T", extra)}
			}
			for k, v := range parseExtraConfiguration(text) {
				out[k] = v
			}
		}
		delete(out, PropExtraConfiguration)
	}

	out[PropName] = name

	for _, np := range numericProperties {
		raw, ok := out[np.from]
		if !ok || raw == nil {
			delete(out, np.from)
			out[np.to] = np.fallback(defaults)
			continue
		}
		n, err := utils.IntValue(raw)
		if err != nil {
			return nil, &PropertyValidationError{Key: np.from, Value: raw, Err: err}
		}
		delete(out, np.from)
		out[np.to] = n
	}

	return out, nil
}

// parseExtraConfiguration reads key=value lines of the trimmed block. Lines
// without "=" are ignored. Keys and values are kept verbatim; the value is
// everything after the first "=".
func parseExtraConfiguration(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		out[key] = value
	}
	return out
}
