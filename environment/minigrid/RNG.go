package minigrid

import "golang.org/x/exp/rand"

// RNG is the single source of randomness of an environment. Every
// random draw made while building a layout goes through the same
// underlying source so that a seed reproduces a layout exactly.
type RNG struct {
	src  rand.Source
	rand *rand.Rand
}

// NewRNG returns a new RNG seeded with seed
func NewRNG(seed uint64) *RNG {
	src := rand.NewSource(seed)
	return &RNG{src, rand.New(src)}
}

// Seed reseeds the RNG
func (r *RNG) Seed(seed uint64) {
	r.src.Seed(seed)
}

// Source returns the underlying source. Draws made from the returned
// source advance the RNG.
func (r *RNG) Source() rand.Source {
	return r.src
}

// Int returns a uniform random integer in [low, high). Int panics if
// high <= low.
func (r *RNG) Int(low, high int) int {
	return low + r.rand.Intn(high-low)
}

// Pos returns a uniform random cell in [xLow, xHigh) x [yLow, yHigh)
func (r *RNG) Pos(xLow, xHigh, yLow, yHigh int) Cell {
	x := r.Int(xLow, xHigh)
	y := r.Int(yLow, yHigh)
	return Cell{x, y}
}
