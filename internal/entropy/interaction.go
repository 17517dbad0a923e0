package entropy

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Interaction constants
const (
	MinCollisionForce = 0.02
	MaxCollisionForce = 0.1
	CollisionSpeedRef = 10.0  // Relative speed that yields MaxCollisionForce
	ExchangeRate      = 0.2   // Share of the entropy difference exchanged per unit force
	ExchangeNoise     = 0.01  // Half-width of the random exchange term per unit force
	ExchangeDamping   = 0.3   // Share of the exchange applied to each particle
	MinEntropyChange  = 0.001 // Smaller changes are dropped
	DeflectionScale   = 0.3
)

// CollisionForce maps relative speed onto the exchange force. Speeds past
// CollisionSpeedRef extrapolate linearly.
func CollisionForce(relativeSpeed float64) float64 {
	return MinCollisionForce + relativeSpeed/CollisionSpeedRef*(MaxCollisionForce-MinCollisionForce)
}

// Interact exchanges entropy with other when the two overlap. deflect is
// the per-tick shared noise sample in [0,1) that steers p after a hit.
// It reports whether a collision happened.
func (p *Particle) Interact(other *Particle, deflect float64, rng Random) bool {
	d := r2.Norm(r2.Sub(p.Pos, other.Pos))
	if d >= p.Radius*2 {
		return false
	}

	relativeSpeed := r2.Norm(r2.Sub(p.Vel, other.Vel))
	force := CollisionForce(relativeSpeed)

	exchange := (p.Entropy - other.Entropy) * force * ExchangeRate
	exchange += (rng.Float64()*2 - 1) * ExchangeNoise * force

	next := clamp(p.Entropy-exchange*ExchangeDamping, MinEntropy, 1)
	otherNext := clamp(other.Entropy+exchange*ExchangeDamping, MinEntropy, 1)

	if math.Abs(next-p.Entropy) > MinEntropyChange {
		p.SetEntropy(next)
	}
	if math.Abs(otherNext-other.Entropy) > MinEntropyChange {
		other.SetEntropy(otherNext)
	}

	p.Vel = rotate(p.Vel, (deflect-0.5)*math.Pi*p.Entropy*DeflectionScale)
	return true
}

// interact evaluates every unordered pair (i < j) in index order
func (s *Simulation) interact() {
	s.grid.build(s.Particles, s.Width, s.Height)
	deflect := s.noise.Noise3D(float64(s.Tick)*NoiseScale, 0, 0)

	for i, p := range s.Particles {
		for _, j := range s.grid.near(p.Pos, i) {
			if p.Interact(s.Particles[j], deflect, s.rng) {
				s.Analytics.recordInteraction()
			}
		}
	}
}
