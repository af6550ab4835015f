package util

import (
	"math/rand"

	"github.com/fogleman/ease"
)

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewRandomSource creates a RandomSource seeded with seed.
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// Lerp interpolates linearly from b by a change of c over duration d.
// It does not clamp, so t > d keeps travelling past b+c.
func Lerp(t, b, c, d float64) float64 {
	return c*ease.Linear(t/d) + b
}
