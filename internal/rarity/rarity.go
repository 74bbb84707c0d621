// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rarity turns per-trait rarity specifications into normalized
// probability vectors and their cumulative sums.
package rarity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pdiddy/nft-generator/internal/rng"
	"github.com/pdiddy/nft-generator/pkg/types"
)

// Tolerance bounds the floating-point error accepted in sums of probabilities.
const Tolerance = 1e-9

// Normalize returns weights divided by their sum. It fails with
// types.ErrConfig when weights is empty, holds a negative or NaN entry, or
// sums to zero.
func Normalize(weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weights to normalize", types.ErrConfig)
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %d is %v", types.ErrConfig, i, w)
		}
	}
	sum := floats.Sum(weights)
	if sum <= 0 {
		return nil, fmt.Errorf("%w: weights sum to %v", types.ErrConfig, sum)
	}

	probs := make([]float64, len(weights))
	copy(probs, weights)
	floats.Scale(1/sum, probs)
	return probs, nil
}

// Cumulative returns the prefix sums of probs. When the final sum is
// within Tolerance of 1 it is set to exactly 1, so every draw in [0, 1)
// falls inside the vector.
func Cumulative(probs []float64) []float64 {
	if len(probs) == 0 {
		return nil
	}
	cum := floats.CumSum(make([]float64, len(probs)), probs)
	last := len(cum) - 1
	if math.Abs(cum[last]-1) <= Tolerance {
		cum[last] = 1
	}
	return cum
}

// Resolve produces the raw weight vector for a layer with n traits
// (including the absent sentinel of an optional layer). Random weights are
// drawn from src once; they are not redrawn per image.
func Resolve(spec types.RaritySpec, n int, src rng.Source) ([]float64, error) {
	switch spec.Kind {
	case "", types.RarityUniform:
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
		return weights, nil
	case types.RarityRandom:
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = src.Float64()
		}
		return weights, nil
	case types.RarityExplicit:
		if len(spec.Weights) != n {
			return nil, fmt.Errorf("%w: %d rarity weights for %d traits", types.ErrConfig, len(spec.Weights), n)
		}
		weights := make([]float64, n)
		copy(weights, spec.Weights)
		return weights, nil
	default:
		return nil, fmt.Errorf("%w: invalid rarity specification %q", types.ErrConfig, spec.Kind)
	}
}
