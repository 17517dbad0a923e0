package entropy

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Particle constants
const (
	ParticleRadius     = 5.0
	NeighborhoodRadius = 50.0
	MinEntropy         = 0.01 // Floor for every path except neighborhood decay
	MinSpeed           = 0.5
	MaxSpeed           = 6.0
)

var (
	calmColor    = color.RGBA{100, 200, 255, 255}
	chaoticColor = color.RGBA{255, 30, 50, 255}
)

// Particle is a single entropy-carrying body
type Particle struct {
	Pos r2.Vec // Position, wrapped to the simulation bounds
	Vel r2.Vec // Velocity
	Acc r2.Vec // Accumulated force, zeroed after each integration

	Entropy  float64    // Disorder in [0,1]
	MaxSpeed float64    // Derived from Entropy
	Color    color.RGBA // Derived from Entropy

	WanderAngle        float64
	Radius             float64
	NeighborhoodRadius float64

	lastUpdate float64 // Seconds, time of the last integration
}

// NewParticle creates a particle at pos. Entropy outside [0,1] is clamped.
func NewParticle(pos, vel r2.Vec, entropy, now float64) *Particle {
	p := &Particle{
		Pos:                pos,
		Vel:                vel,
		Entropy:            clamp(entropy, 0, 1),
		Radius:             ParticleRadius,
		NeighborhoodRadius: NeighborhoodRadius,
		lastUpdate:         now,
	}
	p.updateProperties()
	return p
}

// SetEntropy clamps v to [MinEntropy,1] and stores it.
// It reports whether the stored value changed.
func (p *Particle) SetEntropy(v float64) bool {
	return p.setEntropy(v, MinEntropy)
}

// setEntropy is the single mutation site for Entropy. The decay path
// passes a floor of 0, everything else passes MinEntropy.
func (p *Particle) setEntropy(v, floor float64) bool {
	v = clamp(v, floor, 1)
	if v == p.Entropy {
		return false
	}
	p.Entropy = v
	p.updateProperties()
	return true
}

// updateProperties recomputes fields derived from Entropy
func (p *Particle) updateProperties() {
	p.MaxSpeed = SpeedFor(p.Entropy)
	p.Color = ColorFor(p.Entropy)
}

// SpeedFor maps entropy in [0,1] to a speed limit in [MinSpeed,MaxSpeed]
func SpeedFor(entropy float64) float64 {
	return lerp(MinSpeed, MaxSpeed, entropy)
}

// ColorFor interpolates between the calm and chaotic colors
func ColorFor(entropy float64) color.RGBA {
	return color.RGBA{
		R: channel(calmColor.R, chaoticColor.R, entropy),
		G: channel(calmColor.G, chaoticColor.G, entropy),
		B: channel(calmColor.B, chaoticColor.B, entropy),
		A: 255,
	}
}

func channel(from, to uint8, t float64) uint8 {
	return uint8(math.Round(lerp(float64(from), float64(to), t)))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
