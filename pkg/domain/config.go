package domain

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// DefaultMaxDepth is used when a configuration leaves the depth bound
// unset. Four levels of substructure is the conventional precision/size
// trade-off for taint-style analyses.
const DefaultMaxDepth = 4

// StaticConfig is a plain-value Config, loadable from YAML.
type StaticConfig struct {
	MaxDepthAfterWidening int  `yaml:"max_tree_depth_after_widening"`
	Invariants            bool `yaml:"check_invariants"`
}

func (c StaticConfig) MaxTreeDepthAfterWidening() int { return c.MaxDepthAfterWidening }
func (c StaticConfig) CheckInvariants() bool          { return c.Invariants }

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() StaticConfig {
	return StaticConfig{MaxDepthAfterWidening: DefaultMaxDepth}
}

// LoadConfig reads a StaticConfig from a YAML file, filling in defaults
// for unset fields.
func LoadConfig(path string) (StaticConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cfg.MaxDepthAfterWidening < 0 {
		return cfg, fmt.Errorf("invalid config %s: max_tree_depth_after_widening must be non-negative, got %d", path, cfg.MaxDepthAfterWidening)
	}
	if cfg.MaxDepthAfterWidening == 0 {
		cfg.MaxDepthAfterWidening = DefaultMaxDepth
	}

	return cfg, nil
}
