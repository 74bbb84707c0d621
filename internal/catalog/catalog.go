// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog resolves the layer configuration into an immutable set of
// layers, each with its ordered traits and rarity distribution.
package catalog

import (
	"fmt"
	"math"

	"github.com/pdiddy/nft-generator/internal/rarity"
	"github.com/pdiddy/nft-generator/internal/rng"
	"github.com/pdiddy/nft-generator/pkg/types"
)

// Lister enumerates the trait files of a layer directory in sorted order,
// excluding hidden entries.
type Lister interface {
	List(dir string) ([]string, error)
}

// Layer is one resolved layer. Its slices are never modified after Build.
type Layer struct {
	name       string
	directory  string
	required   bool
	traits     []types.Trait
	weights    []float64
	cumulative []float64
}

// Name returns the layer display name.
func (l *Layer) Name() string { return l.name }

// Directory returns the layer directory relative to the assets root.
func (l *Layer) Directory() string { return l.directory }

// Required reports whether the layer always contributes a trait.
func (l *Layer) Required() bool { return l.required }

// Len returns the number of traits, including the absent sentinel.
func (l *Layer) Len() int { return len(l.traits) }

// Trait returns the trait at index i.
func (l *Layer) Trait(i int) types.Trait { return l.traits[i] }

// Traits returns a copy of the ordered traits.
func (l *Layer) Traits() []types.Trait { return append([]types.Trait(nil), l.traits...) }

// Weights returns a copy of the normalized probability vector.
func (l *Layer) Weights() []float64 { return append([]float64(nil), l.weights...) }

// Cumulative returns a copy of the cumulative probability vector.
func (l *Layer) Cumulative() []float64 { return append([]float64(nil), l.cumulative...) }

// cumulativeView exposes the cumulative vector without copying; callers
// must not modify it.
func (l *Layer) cumulativeView() []float64 { return l.cumulative }

// Catalog is the resolved, read-only layer set for one run.
type Catalog struct {
	layers []*Layer
}

// Build resolves every configured layer: it lists trait files, prepends the
// absent sentinel for optional layers, resolves rarity weights (drawing
// random weights from src), and computes the normalized and cumulative
// vectors. Any configuration problem fails with types.ErrConfig.
func Build(configs []types.LayerConfig, store Lister, src rng.Source) (*Catalog, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: no layers configured", types.ErrConfig)
	}

	seenNames := make(map[string]bool, len(configs))
	c := &Catalog{layers: make([]*Layer, 0, len(configs))}

	for _, cfg := range configs {
		if cfg.Name == "" {
			return nil, fmt.Errorf("%w: layer with directory %q has no name", types.ErrConfig, cfg.Directory)
		}
		if seenNames[cfg.Name] {
			return nil, fmt.Errorf("%w: duplicate layer name %q", types.ErrConfig, cfg.Name)
		}
		seenNames[cfg.Name] = true

		layer, err := buildLayer(cfg, store, src)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", cfg.Name, err)
		}
		c.layers = append(c.layers, layer)
	}
	return c, nil
}

func buildLayer(cfg types.LayerConfig, store Lister, src rng.Source) (*Layer, error) {
	files, err := store.List(cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfig, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: directory %q has no traits", types.ErrConfig, cfg.Directory)
	}

	var traits []types.Trait
	if !cfg.Required {
		traits = append(traits, types.Trait{})
	}
	displays := make(map[string]string, len(files))
	for _, f := range files {
		t := types.Trait{File: f}
		d := t.Display()
		if d == types.AbsentMarker {
			return nil, fmt.Errorf("%w: trait %q uses the reserved name %q", types.ErrConfig, f, types.AbsentMarker)
		}
		if prev, ok := displays[d]; ok {
			return nil, fmt.Errorf("%w: traits %q and %q share the name %q", types.ErrConfig, prev, f, d)
		}
		displays[d] = f
		traits = append(traits, t)
	}

	raw, err := rarity.Resolve(cfg.Rarity, len(traits), src)
	if err != nil {
		return nil, err
	}
	weights, err := rarity.Normalize(raw)
	if err != nil {
		return nil, err
	}

	return &Layer{
		name:       cfg.Name,
		directory:  cfg.Directory,
		required:   cfg.Required,
		traits:     traits,
		weights:    weights,
		cumulative: rarity.Cumulative(weights),
	}, nil
}

// Len returns the number of layers.
func (c *Catalog) Len() int { return len(c.layers) }

// Layer returns the layer at index i.
func (c *Catalog) Layer(i int) *Layer { return c.layers[i] }

// Layers returns the layers in configured order.
func (c *Catalog) Layers() []*Layer { return append([]*Layer(nil), c.layers...) }

// Columns returns the layer names in order, used as ledger headers.
func (c *Catalog) Columns() []string {
	cols := make([]string, len(c.layers))
	for i, l := range c.layers {
		cols[i] = l.name
	}
	return cols
}

// TotalCombinations returns the product of the trait counts of all layers.
// The result saturates at math.MaxUint64.
func (c *Catalog) TotalCombinations() uint64 {
	total := uint64(1)
	for _, l := range c.layers {
		n := uint64(len(l.traits))
		if total > math.MaxUint64/n {
			return math.MaxUint64
		}
		total *= n
	}
	return total
}

// CumulativeOf returns layer i's cumulative vector without copying. It is
// meant for the sampler's hot loop; callers must not modify the result.
func (c *Catalog) CumulativeOf(i int) []float64 {
	return c.layers[i].cumulativeView()
}
