package entropy

import (
	"image/color"
	"testing"
)

func TestSetEntropyClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 0.42, 0.42},
		{"below floor", 0.001, MinEntropy},
		{"negative", -3, MinEntropy},
		{"above one", 1.7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParticle(0, 0, 0.5)
			p.SetEntropy(tt.in)
			if !approx(p.Entropy, tt.want) {
				t.Fatalf("got %f want %f", p.Entropy, tt.want)
			}
			checkDerived(t, p)
		})
	}
}

func TestSetEntropyReportsChange(t *testing.T) {
	p := newTestParticle(0, 0, 0.5)
	if p.SetEntropy(0.5) {
		t.Fatalf("same value reported as a change")
	}
	if !p.SetEntropy(0.6) {
		t.Fatalf("new value not reported as a change")
	}
	p = newTestParticle(0, 0, 1)
	if p.SetEntropy(5) {
		t.Fatalf("clamped to the current value but reported a change")
	}
}

func TestNewParticleClampsToUnitRange(t *testing.T) {
	if p := newTestParticle(0, 0, -0.5); p.Entropy != 0 {
		t.Fatalf("negative initial entropy: got %f want 0", p.Entropy)
	}
	if p := newTestParticle(0, 0, 2); p.Entropy != 1 {
		t.Fatalf("large initial entropy: got %f want 1", p.Entropy)
	}
	// Creation allows the exact-zero state
	p := newTestParticle(0, 0, 0)
	if p.Entropy != 0 {
		t.Fatalf("zero initial entropy raised to %f", p.Entropy)
	}
	checkDerived(t, p)
}

func TestDerivedEndpoints(t *testing.T) {
	if got := SpeedFor(0); got != MinSpeed {
		t.Errorf("speed at 0: got %f", got)
	}
	if got := SpeedFor(1); got != MaxSpeed {
		t.Errorf("speed at 1: got %f", got)
	}
	if got := ColorFor(0); got != (color.RGBA{100, 200, 255, 255}) {
		t.Errorf("calm color: got %v", got)
	}
	if got := ColorFor(1); got != (color.RGBA{255, 30, 50, 255}) {
		t.Errorf("chaotic color: got %v", got)
	}
	mid := ColorFor(0.5)
	if mid.R <= 100 || mid.R >= 255 || mid.G >= 200 || mid.G <= 30 {
		t.Errorf("midpoint color not between endpoints: %v", mid)
	}
}
