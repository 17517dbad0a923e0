package main

import (
	"math/rand"
	"testing"

	"github.com/olivierh59500/harmony-chaos-go/internal/config"
	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
)

func TestScriptPhases(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		tick   int
		active bool
		tool   entropy.Tool
	}{
		{0, true, entropy.ToolHeal},
		{29, true, entropy.ToolHeal},
		{30, false, entropy.ToolHeal},
		{60, true, entropy.ToolTrauma},
		{89, true, entropy.ToolTrauma},
		{90, false, entropy.ToolHeal},
		{120, true, entropy.ToolHeal},
	}
	for _, tt := range tests {
		st := script(cfg, tt.tick)
		if st.Active != tt.active || (st.Active && st.Tool != tt.tool) {
			t.Errorf("tick %d: got active=%v tool=%v", tt.tick, st.Active, st.Tool)
		}
		if st.Radius != cfg.ToolRadius || st.Strength != cfg.ToolStrength {
			t.Errorf("tick %d: stimulus ignores config: %+v", tt.tick, st)
		}
		if st.Pos.X <= 0 || st.Pos.X >= float64(cfg.Width) || st.Pos.Y <= 0 || st.Pos.Y >= float64(cfg.Height) {
			t.Errorf("tick %d: pointer off screen: %v", tt.tick, st.Pos)
		}
	}
}

func TestSameStateDetectsDivergence(t *testing.T) {
	newSim := func() *entropy.Simulation {
		return entropy.NewSimulation(entropy.Options{
			Width:      400,
			Height:     300,
			Population: 20,
			Noise:      entropy.NewPerlinNoise(5),
			Rand:       rand.New(rand.NewSource(5)),
		})
	}
	a, b := newSim(), newSim()
	if _, ok := sameState(a, b); !ok {
		t.Fatalf("identical runs reported as diverged")
	}

	b.Particles[3].Pos.X += 1
	if i, ok := sameState(a, b); ok || i != 3 {
		t.Fatalf("got %d %v want divergence at 3", i, ok)
	}
}
