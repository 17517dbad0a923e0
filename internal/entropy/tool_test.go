package entropy

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func heal(x, y, strength float64) Stimulus {
	return Stimulus{
		Active:   true,
		Pos:      r2.Vec{X: x, Y: y},
		Tool:     ToolHeal,
		Radius:   DefaultToolRadius,
		Strength: strength,
	}
}

func TestHealAtCenter(t *testing.T) {
	p := newTestParticle(200, 200, 0.7)
	s := newTestSimulation(800, 600, p)

	s.applyTool(heal(200, 200, DefaultToolStrength))

	if !approx(p.Entropy, 0.5) {
		t.Fatalf("got %f want 0.5", p.Entropy)
	}
	if got := s.Analytics.Snapshot().HealActions; got != 1 {
		t.Fatalf("healActions: got %d want 1", got)
	}
	if len(s.effects) != 1 {
		t.Fatalf("effects: got %d want 1", len(s.effects))
	}
	e := s.effects[0]
	if e.Tool != ToolHeal || e.Strength != 1 || e.Pos != p.Pos {
		t.Fatalf("unexpected effect %+v", e)
	}
	checkDerived(t, p)
}

func TestHealFloors(t *testing.T) {
	p := newTestParticle(200, 200, 0.1)
	s := newTestSimulation(800, 600, p)

	s.applyTool(heal(200, 200, DefaultToolStrength))
	if p.Entropy != MinEntropy {
		t.Fatalf("got %f want %f", p.Entropy, MinEntropy)
	}

	// Already at the floor: no change, no count
	s.applyTool(heal(200, 200, DefaultToolStrength))
	if got := s.Analytics.Snapshot().HealActions; got != 1 {
		t.Fatalf("healActions: got %d want 1", got)
	}
}

func TestTraumaCaps(t *testing.T) {
	p := newTestParticle(200, 200, 0.9)
	s := newTestSimulation(800, 600, p)
	st := heal(250, 200, 0.4)
	st.Tool = ToolTrauma

	s.applyTool(st)

	// falloff 0.5, amount 0.2, capped at 1
	if p.Entropy != 1 {
		t.Fatalf("got %f want 1", p.Entropy)
	}
	if got := s.Analytics.Snapshot().TraumaActions; got != 1 {
		t.Fatalf("traumaActions: got %d want 1", got)
	}
	if !approx(s.effects[0].Strength, 0.5) {
		t.Fatalf("effect strength: got %f want 0.5", s.effects[0].Strength)
	}
}

func TestToolNoOps(t *testing.T) {
	tests := []struct {
		name string
		st   Stimulus
	}{
		{"zero strength", heal(200, 200, 0)},
		{"at radius", heal(200+DefaultToolRadius, 200, DefaultToolStrength)},
		{"outside", heal(500, 500, DefaultToolStrength)},
		{"inactive", Stimulus{Pos: r2.Vec{X: 200, Y: 200}, Radius: 100, Strength: 0.2}},
		{"zero radius", Stimulus{Active: true, Pos: r2.Vec{X: 200, Y: 200}, Strength: 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Zero entropy would be raised to the floor by any real heal
			p := newTestParticle(200, 200, 0)
			q := newTestParticle(200, 200, 0.5)
			s := newTestSimulation(800, 600, p, q)

			s.applyTool(tt.st)
			trauma := tt.st
			trauma.Tool = ToolTrauma
			s.applyTool(trauma)

			if p.Entropy != 0 || q.Entropy != 0.5 {
				t.Fatalf("entropy changed: %f %f", p.Entropy, q.Entropy)
			}
			a := s.Analytics.Snapshot()
			if a.HealActions != 0 || a.TraumaActions != 0 || len(s.effects) != 0 {
				t.Fatalf("counted a no-op: %+v effects=%d", a, len(s.effects))
			}
		})
	}
}

func TestFalloffIsLinear(t *testing.T) {
	st := heal(0, 0, 1)
	for _, tt := range []struct{ d, want float64 }{{0, 1}, {25, 0.75}, {50, 0.5}, {99, 0.01}} {
		got, ok := st.Falloff(tt.d)
		if !ok || !approx(got, tt.want) {
			t.Errorf("Falloff(%v) = %v %v, want %v", tt.d, got, ok, tt.want)
		}
	}
}
