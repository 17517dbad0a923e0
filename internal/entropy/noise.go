package entropy

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Noise is a coherent noise field. Implementations must be pure and
// return values in [0,1).
type Noise interface {
	Noise3D(x, y, z float64) float64
}

// Random is a uniform source in [0,1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// Perlin parameters, matching the smooth single-octave feel of a
// browser-side noise() call
const (
	perlinAlpha  = 2.0
	perlinBeta   = 2.0
	perlinOctave = 3
)

// PerlinNoise adapts go-perlin to the Noise interface
type PerlinNoise struct {
	p *perlin.Perlin
}

// NewPerlinNoise creates a seeded Perlin field
func NewPerlinNoise(seed int64) *PerlinNoise {
	return &PerlinNoise{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, seed)}
}

// Noise3D maps the roughly [-1,1] Perlin output into [0,1)
func (n *PerlinNoise) Noise3D(x, y, z float64) float64 {
	v := n.p.Noise3D(x, y, z)*0.5 + 0.5
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}
