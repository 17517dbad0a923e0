package entropy

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Motion constants
const (
	NoiseScale      = 0.01 // Applied to position and tick before sampling noise
	WanderMagnitude = 0.1
	WanderMinScale  = 1.0
	WanderMaxScale  = 3.0
	ChaosChance     = 0.02        // Per-tick rotation probability at entropy 1
	ChaosMaxAngle   = math.Pi / 4 // Rotation magnitude at entropy 1
	ReferenceRate   = 60.0        // Updates per second the velocity is tuned for
)

// wander samples the noise field at the particle's position and returns
// a steering force of WanderMagnitude
func (p *Particle) wander(noise Noise, tick uint64) r2.Vec {
	p.WanderAngle = noise.Noise3D(p.Pos.X*NoiseScale, p.Pos.Y*NoiseScale, float64(tick)*NoiseScale) * 4 * math.Pi
	return r2.Scale(WanderMagnitude, r2.Vec{X: math.Cos(p.WanderAngle), Y: math.Sin(p.WanderAngle)})
}

// ApplyForce accumulates f into the acceleration
func (p *Particle) ApplyForce(f r2.Vec) {
	p.Acc = r2.Add(p.Acc, f)
}

// Update integrates one tick. now is in seconds; the step length is the
// time since the particle's previous update.
func (p *Particle) Update(now float64, tick uint64, noise Noise, rng Random, width, height float64) {
	dt := now - p.lastUpdate
	if dt < 0 {
		dt = 0
	}
	p.lastUpdate = now

	force := p.wander(noise, tick)
	p.ApplyForce(r2.Scale(lerp(WanderMinScale, WanderMaxScale, p.Entropy), force))

	if rng.Float64() < p.Entropy*ChaosChance {
		angle := (rng.Float64()*2 - 1) * ChaosMaxAngle * p.Entropy
		p.Vel = rotate(p.Vel, angle)
	}

	p.Vel = r2.Add(p.Vel, p.Acc)
	p.Vel = limit(p.Vel, p.MaxSpeed)
	p.Pos = r2.Add(p.Pos, r2.Scale(dt*ReferenceRate, p.Vel))
	p.Acc = r2.Vec{}

	p.Pos.X = wrap(p.Pos.X, width)
	p.Pos.Y = wrap(p.Pos.Y, height)
}

// rotate turns v by angle radians about the origin
func rotate(v r2.Vec, angle float64) r2.Vec {
	if angle == 0 {
		return v
	}
	return r2.Rotate(v, angle, r2.Vec{})
}

// limit caps the magnitude of v at maxLen
func limit(v r2.Vec, maxLen float64) r2.Vec {
	n := r2.Norm(v)
	if n <= maxLen || n == 0 {
		return v
	}
	return r2.Scale(maxLen/n, v)
}

// wrap folds v into [0,bound). A non-positive bound leaves v alone.
func wrap(v, bound float64) float64 {
	if bound <= 0 {
		return v
	}
	v = math.Mod(v, bound)
	if v < 0 {
		v += bound
	}
	// -tiny + bound rounds to bound
	if v >= bound {
		v = 0
	}
	return v
}
