package entropy

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Tool is the kind of pointer stimulus
type Tool uint8

const (
	ToolHeal Tool = iota
	ToolTrauma
)

// Default stimulus settings
const (
	DefaultToolRadius   = 100.0
	DefaultToolStrength = 0.2
)

func (t Tool) String() string {
	switch t {
	case ToolHeal:
		return "heal"
	case ToolTrauma:
		return "trauma"
	default:
		return "unknown"
	}
}

// Stimulus is the pointer input sampled at the start of a tick
type Stimulus struct {
	Active   bool
	Pos      r2.Vec
	Tool     Tool
	Radius   float64
	Strength float64
}

// Effect records one tool-caused entropy change
type Effect struct {
	Pos      r2.Vec
	Tool     Tool
	Strength float64 // Falloff at the particle, in (0,1]
	Tick     uint64
}

// Falloff returns the linear attenuation at distance d: 1 at the center,
// 0 at the edge. ok is false outside the radius.
func (s Stimulus) Falloff(d float64) (float64, bool) {
	if s.Radius <= 0 || d >= s.Radius {
		return 0, false
	}
	return 1 - d/s.Radius, true
}

// Apply perturbs p and reports the falloff used and whether the entropy
// changed. A zero amount never touches the particle.
func (s Stimulus) Apply(p *Particle) (float64, bool) {
	falloff, ok := s.Falloff(r2.Norm(r2.Sub(p.Pos, s.Pos)))
	if !ok {
		return 0, false
	}
	amount := s.Strength * falloff
	if amount <= 0 {
		return falloff, false
	}

	switch s.Tool {
	case ToolHeal:
		return falloff, p.SetEntropy(max(MinEntropy, p.Entropy-amount))
	case ToolTrauma:
		return falloff, p.SetEntropy(min(1, p.Entropy+amount))
	default:
		return falloff, false
	}
}

// applyTool runs the active stimulus over every particle, counting and
// recording each real change
func (s *Simulation) applyTool(st Stimulus) {
	if !st.Active {
		return
	}
	for _, p := range s.Particles {
		falloff, changed := st.Apply(p)
		if !changed {
			continue
		}
		s.Analytics.recordTool(st.Tool)
		s.effects = append(s.effects, Effect{
			Pos:      p.Pos,
			Tool:     st.Tool,
			Strength: falloff,
			Tick:     s.Tick,
		})
	}
}
