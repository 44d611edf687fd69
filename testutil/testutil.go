// Package testutil provides fixture generators for tests.
//
// It is intended for use in tests and benchmarks only.
package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// FillGaussian fills vec with standard normal values.
func (r *RNG) FillGaussian(vec []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range vec {
		vec[i] = r.rand.NormFloat64()
	}
}

// ModeMatrix generates a row-major nPoint x nMode matrix of Gaussian
// values, the shape a segment block has inside the archive.
func (r *RNG) ModeMatrix(nPoint, nMode int) []float64 {
	m := make([]float64, nPoint*nMode)
	r.FillGaussian(m)
	return m
}

// PupilMask generates a mask of nPoint entries where each point is active
// with probability fill.
func (r *RNG) PupilMask(nPoint int, fill float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	mask := make([]bool, nPoint)
	for i := range mask {
		mask[i] = r.rand.Float64() < fill
	}
	return mask
}
