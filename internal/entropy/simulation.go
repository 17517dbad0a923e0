package entropy

import (
	"io"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultPopulation is the particle count created at startup
const DefaultPopulation = 200

// Options configures a new Simulation. Nil Noise and Rand fall back to
// fixed-seed sources.
type Options struct {
	Width, Height float64
	Population    int
	Noise         Noise
	Rand          Random
	Start         float64 // Clock reading in seconds at creation
	Logger        *slog.Logger
}

// TickInput is everything sampled from the host at the start of a tick
type TickInput struct {
	Now      float64 // Seconds on the same clock as Options.Start
	Stimulus Stimulus
}

// Simulation holds the particle set and advances it one tick at a time.
// It is not safe for concurrent use.
type Simulation struct {
	Width, Height float64
	Particles     []*Particle
	Analytics     *Analytics
	Tick          uint64

	noise    Noise
	rng      Random
	grid     *grid
	snapshot []float64
	effects  []Effect
	logger   *slog.Logger
}

// NewSimulation creates the fixed particle population with uniform random
// positions, directions and entropy
func NewSimulation(opts Options) *Simulation {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	population := opts.Population
	if population < 0 {
		population = 0
	}
	noise, rng := opts.Noise, opts.Rand
	if noise == nil {
		noise = NewPerlinNoise(1)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	s := &Simulation{
		Width:     opts.Width,
		Height:    opts.Height,
		Analytics: &Analytics{},
		noise:     noise,
		rng:       rng,
		grid:      newGrid(NeighborhoodRadius),
		logger:    logger,
	}

	s.Particles = make([]*Particle, population)
	for i := range s.Particles {
		pos := r2.Vec{X: s.rng.Float64() * s.Width, Y: s.rng.Float64() * s.Height}
		entropy := s.rng.Float64()
		heading := s.rng.Float64() * 2 * math.Pi
		p := NewParticle(pos, r2.Vec{X: math.Cos(heading), Y: math.Sin(heading)}, entropy, opts.Start)
		p.WanderAngle = s.rng.Float64() * 2 * math.Pi
		s.Particles[i] = p
	}

	s.Analytics.observe(s.Particles)
	logger.Debug("simulation created", "width", s.Width, "height", s.Height, "population", population)
	return s
}

// Step advances one tick: diffusion, motion, pairwise interaction, tool
// application, analytics. It returns the effects emitted by the tool this
// tick; the slice is owned by the caller.
func (s *Simulation) Step(in TickInput) []Effect {
	s.Tick++
	s.effects = nil

	s.diffuse()

	for _, p := range s.Particles {
		p.Update(in.Now, s.Tick, s.noise, s.rng, s.Width, s.Height)
	}

	s.interact()
	s.applyTool(in.Stimulus)
	s.Analytics.observe(s.Particles)

	return s.effects
}

// Resize changes the wrap bounds and re-wraps positions without scaling
// them. Non-positive bounds are ignored.
func (s *Simulation) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		s.logger.Debug("ignoring resize", "width", width, "height", height)
		return
	}
	if width == s.Width && height == s.Height {
		return
	}
	s.Width, s.Height = width, height
	for _, p := range s.Particles {
		p.Pos.X = wrap(p.Pos.X, width)
		p.Pos.Y = wrap(p.Pos.Y, height)
	}
	s.logger.Debug("simulation resized", "width", width, "height", height)
}
