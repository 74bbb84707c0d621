// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package project loads the layer configuration file.
package project

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nft-generator/pkg/types"
)

// DefaultFile is the layer configuration looked up when no path is given.
const DefaultFile = "layers.yaml"

// Load reads and parses a layer configuration file. Layers must name a
// directory; an empty layer list is an error.
func Load(path string) (*types.ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layer config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a layer configuration from YAML.
func Parse(data []byte) (*types.ProjectConfig, error) {
	var cfg types.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing layer config: %w", err)
	}
	if len(cfg.Layers) == 0 {
		return nil, fmt.Errorf("%w: layer config lists no layers", types.ErrConfig)
	}
	for i, l := range cfg.Layers {
		if l.Directory == "" {
			return nil, fmt.Errorf("%w: layer %d (%q) has no directory", types.ErrConfig, i, l.Name)
		}
	}
	return &cfg, nil
}
