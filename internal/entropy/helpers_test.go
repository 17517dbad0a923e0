package entropy

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

// constNoise is a flat noise field
type constNoise float64

func (n constNoise) Noise3D(x, y, z float64) float64 { return float64(n) }

// constRand always returns the same draw
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

const eps = 1e-12

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// newTestParticle places a still particle at (x, y) with the given entropy
func newTestParticle(x, y, entropy float64) *Particle {
	return NewParticle(r2.Vec{X: x, Y: y}, r2.Vec{}, entropy, 0)
}

// newTestSimulation wraps hand-placed particles in a simulation
func newTestSimulation(width, height float64, particles ...*Particle) *Simulation {
	s := NewSimulation(Options{
		Width:  width,
		Height: height,
		Noise:  constNoise(0.5),
		Rand:   constRand(0.5),
	})
	s.Particles = particles
	return s
}

// checkDerived fails when a particle's derived fields lag its entropy
func checkDerived(t *testing.T, p *Particle) {
	t.Helper()
	if p.Entropy < 0 || p.Entropy > 1 {
		t.Fatalf("entropy out of range: %f", p.Entropy)
	}
	if !approx(p.MaxSpeed, SpeedFor(p.Entropy)) {
		t.Fatalf("maxSpeed %f does not match entropy %f", p.MaxSpeed, p.Entropy)
	}
	if p.Color != ColorFor(p.Entropy) {
		t.Fatalf("color %v does not match entropy %f", p.Color, p.Entropy)
	}
}
