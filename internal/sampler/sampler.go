// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sampler draws trait combinations from a catalog by inverse-CDF
// sampling over each layer's cumulative distribution.
package sampler

import (
	"fmt"
	"math"

	"github.com/pdiddy/nft-generator/internal/catalog"
	"github.com/pdiddy/nft-generator/internal/rng"
	"github.com/pdiddy/nft-generator/pkg/types"
)

// DrawIndex returns the smallest index i with cum[i-1] <= r <= cum[i],
// taking cum[-1] as 0. Both ends of an interval are closed, so a draw on a
// boundary goes to the lower interval. r is clamped into [0, cum[last]]
// first. The second result is false only when cum is empty or r is NaN.
func DrawIndex(cum []float64, r float64) (int, bool) {
	if len(cum) == 0 || math.IsNaN(r) {
		return 0, false
	}
	last := cum[len(cum)-1]
	r = max(0, min(r, last))

	lower := 0.0
	for i, upper := range cum {
		if lower <= r && r <= upper {
			return i, true
		}
		lower = upper
	}
	return 0, false
}

// Sampler draws combinations from a catalog.
type Sampler struct {
	cat *catalog.Catalog
	src rng.Source
}

// New returns a sampler over cat that draws from src.
func New(cat *catalog.Catalog, src rng.Source) *Sampler {
	return &Sampler{cat: cat, src: src}
}

// Draw picks one trait per layer, in layer order, with one fresh uniform
// draw per layer.
func (s *Sampler) Draw() (types.Combination, error) {
	combo := make(types.Combination, s.cat.Len())
	for i := range combo {
		layer := s.cat.Layer(i)
		idx, ok := DrawIndex(s.cat.CumulativeOf(i), s.src.Float64())
		if !ok {
			return nil, fmt.Errorf("%w: no trait interval in layer %q", types.ErrSamplingInconsistency, layer.Name())
		}
		combo[i] = types.Selection{
			Layer:     layer.Name(),
			Directory: layer.Directory(),
			Index:     idx,
			Trait:     layer.Trait(idx),
		}
	}
	return combo, nil
}
