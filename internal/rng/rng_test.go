// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsReproducible(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		x, y := a.Float64(), b.Float64()
		assert.Equal(t, x, y)
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
	}
}

func TestSeedReplaysSystemSeededRun(t *testing.T) {
	assert.Equal(t, uint64(7), New(7).Seed())

	first := New(0)
	seed := first.Seed()
	assert.NotZero(t, seed)

	replay := New(seed)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Float64(), replay.Float64())
	}
}

func TestFixedCycles(t *testing.T) {
	f := &Fixed{Values: []float64{0.1, 0.9}}
	got := []float64{f.Float64(), f.Float64(), f.Float64()}
	assert.Equal(t, []float64{0.1, 0.9, 0.1}, got)
	assert.Equal(t, 3, f.Draws())

	var empty Fixed
	assert.Zero(t, empty.Float64())
}
