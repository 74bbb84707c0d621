// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rng provides the uniform random source used for rarity weights
// and trait sampling.
package rng

import (
	"math/rand/v2"
)

// Source yields uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// PCG is a seeded Source.
type PCG struct {
	r    *rand.Rand
	seed uint64
}

// Float64 returns the next draw in [0, 1).
func (p *PCG) Float64() float64 { return p.r.Float64() }

// Seed returns the seed the generator was started from. For New(0) this is
// the system-chosen seed, so passing it back to New replays the run.
func (p *PCG) Seed() uint64 { return p.seed }

// New returns a Source seeded with seed. The same seed reproduces the same
// sequence of draws. A zero seed selects a random nonzero seed.
func New(seed uint64) *PCG {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return &PCG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed: seed}
}

// Fixed replays a scripted sequence of draws, cycling when exhausted.
// Tests use it to force specific trait selections.
type Fixed struct {
	Values []float64
	pos    int
}

// Float64 returns the next scripted value.
func (f *Fixed) Float64() float64 {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.pos%len(f.Values)]
	f.pos++
	return v
}

// Draws returns how many values have been consumed.
func (f *Fixed) Draws() int {
	return f.pos
}
