package entropy

import "gonum.org/v1/gonum/spatial/r2"

// Diffusion constants
const (
	CalmThreshold = 0.1   // Particle and neighborhood both below this decay toward order
	DecayStep     = 0.001 // Entropy removed per tick while decaying
)

// checkNeighborhood applies the neighborhood rule to p given the mean
// entropy of its neighbors. n is the neighbor count; zero means no change.
func (p *Particle) checkNeighborhood(avgNeighborEntropy float64, n int) {
	if n == 0 {
		return
	}
	if p.Entropy < CalmThreshold && avgNeighborEntropy < CalmThreshold {
		p.setEntropy(p.Entropy-DecayStep, 0)
		if p.Entropy == 0 {
			// Fully ordered particles stop
			p.Vel = r2.Vec{}
		}
		return
	}
	// Below the normal floor only while the neighborhood is calm
	p.setEntropy(p.Entropy, MinEntropy)
}

// diffuse runs the neighborhood rule over every particle. Neighbor sets
// and entropies are read from a snapshot taken before any particle is
// changed, so the result does not depend on iteration order.
func (s *Simulation) diffuse() {
	s.grid.build(s.Particles, s.Width, s.Height)

	if cap(s.snapshot) < len(s.Particles) {
		s.snapshot = make([]float64, len(s.Particles))
	}
	s.snapshot = s.snapshot[:len(s.Particles)]
	for i, p := range s.Particles {
		s.snapshot[i] = p.Entropy
	}

	for i, p := range s.Particles {
		sum, n := 0.0, 0
		for _, j := range s.grid.near(p.Pos, -1) {
			if j == i {
				continue
			}
			if r2.Norm(r2.Sub(p.Pos, s.Particles[j].Pos)) < p.NeighborhoodRadius {
				sum += s.snapshot[j]
				n++
			}
		}
		if n > 0 {
			p.checkNeighborhood(sum/float64(n), n)
		}
	}
}
