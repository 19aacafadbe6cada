package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML keys.
const (
	keyAPI     = "api"
	keyDex     = "dex"
	keyState   = "state"
	keyLogging = "logging"
	keyMetrics = "metrics"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A key present in the file replaces the whole section; absent keys
// keep their current values. Unknown keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = mergeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// mergeSection decodes node onto the section named key. Sections start from
// the current value so fields omitted inside a present section keep their
// defaults.
func mergeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyAPI:
		return node.Decode(&target.API)
	case keyDex:
		return node.Decode(&target.Dex)
	case keyState:
		return node.Decode(&target.State)
	case keyLogging:
		return node.Decode(&target.Logging)
	case keyMetrics:
		return node.Decode(&target.Metrics)
	default:
		return nil
	}
}
