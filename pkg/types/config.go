// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// RarityKind selects how trait weights are assigned within a layer.
type RarityKind string

const (
	// RarityUniform gives every trait the same weight.
	RarityUniform RarityKind = "uniform"

	// RarityRandom draws one uniform(0,1) weight per trait at catalog build time.
	RarityRandom RarityKind = "random"

	// RarityExplicit uses caller-supplied weights, one per trait.
	RarityExplicit RarityKind = "explicit"
)

// RaritySpec describes the rarity weights of one layer. In YAML it is
// either omitted (uniform), the scalar "uniform" or "random", or a
// sequence of numbers.
type RaritySpec struct {
	Kind    RarityKind `json:"kind" yaml:"kind"`
	Weights []float64  `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// UnmarshalYAML accepts the scalar and sequence forms of a rarity spec.
// Unknown scalars are kept as their own kind so that the catalog can
// reject them with ErrConfig.
func (r *RaritySpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			*r = RaritySpec{Kind: RarityUniform}
			return nil
		}
		*r = RaritySpec{Kind: RarityKind(node.Value)}
		return nil
	case yaml.SequenceNode:
		var weights []float64
		if err := node.Decode(&weights); err != nil {
			return fmt.Errorf("%w: rarity weights must be numbers: %v", ErrConfig, err)
		}
		*r = RaritySpec{Kind: RarityExplicit, Weights: weights}
		return nil
	default:
		return fmt.Errorf("%w: invalid rarity specification at line %d", ErrConfig, node.Line)
	}
}

// MarshalYAML writes the spec back in its short form.
func (r RaritySpec) MarshalYAML() (any, error) {
	if r.Kind == RarityExplicit {
		return r.Weights, nil
	}
	if r.Kind == "" {
		return string(RarityUniform), nil
	}
	return string(r.Kind), nil
}

// LayerConfig declares one visual layer of the generated images.
type LayerConfig struct {
	// Name is the display name, used as the ledger column header.
	Name string `json:"name" yaml:"name"`

	// Directory holds the layer's trait files, relative to the assets directory.
	Directory string `json:"directory" yaml:"directory"`

	// Required layers always contribute a trait. Optional layers may be absent.
	Required bool `json:"required" yaml:"required"`

	// Rarity assigns weights to the layer's traits. Optional layers count
	// the absent option as the first trait.
	Rarity RaritySpec `json:"rarity" yaml:"rarity"`
}

// ProjectConfig is the layer configuration file.
type ProjectConfig struct {
	// Layers lists the layers in compositing order; the first layer is the base.
	Layers []LayerConfig `json:"layers" yaml:"layers"`
}

// Strategy selects how duplicate combinations are handled.
type Strategy string

const (
	// StrategyDropDuplicates renders every draw, then removes duplicates
	// and renumbers the surviving files.
	StrategyDropDuplicates Strategy = "drop"

	// StrategyReject redraws duplicate combinations before rendering.
	StrategyReject Strategy = "reject"
)

// GenerationConfig holds settings for one edition run.
type GenerationConfig struct {
	// AssetsDir is the base directory for layer directories (default "assets").
	AssetsDir string `json:"assets_dir" yaml:"assets_dir"`

	// OutputDir is the base directory for editions (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Count is the number of images to draw.
	Count int `json:"count" yaml:"count"`

	// DropDuplicates removes duplicate combinations after sampling.
	DropDuplicates bool `json:"drop_duplicates" yaml:"drop_duplicates"`

	// Strategy selects post-hoc dropping or rejection sampling.
	Strategy Strategy `json:"strategy" yaml:"strategy"`

	// MaxRetries bounds redraws per image under StrategyReject (default 1000).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Seed makes a run reproducible. Zero seeds from the system.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// ArchiveConfig holds settings for the edition archive.
type ArchiveConfig struct {
	// OutputDir is the base directory; the database lives in OutputDir/index/.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}
