package entropy

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestInteractSlowPairBelowGate(t *testing.T) {
	// Zero relative speed moves each side by 0.00072, under the 0.001 gate
	a := newTestParticle(100, 100, 0.8)
	b := newTestParticle(101, 100, 0.2)

	if !a.Interact(b, 0.5, constRand(0.5)) {
		t.Fatalf("expected a collision at distance 1")
	}
	if a.Entropy != 0.8 || b.Entropy != 0.2 {
		t.Fatalf("sub-threshold change applied: %f %f", a.Entropy, b.Entropy)
	}
}

func TestInteractMovesTowardMidpoint(t *testing.T) {
	a := newTestParticle(100, 100, 0.8)
	b := newTestParticle(101, 100, 0.2)
	a.Vel = r2.Vec{X: 10, Y: 0}

	if !a.Interact(b, 0.5, constRand(0.5)) {
		t.Fatalf("expected a collision")
	}

	// force 0.1, exchange 0.6*0.1*0.2 = 0.012, applied share 0.0036
	if !approx(a.Entropy, 0.8-0.0036) {
		t.Errorf("a: got %f want %f", a.Entropy, 0.8-0.0036)
	}
	if !approx(b.Entropy, 0.2+0.0036) {
		t.Errorf("b: got %f want %f", b.Entropy, 0.2+0.0036)
	}
	if a.Entropy <= 0.5 || b.Entropy >= 0.5 {
		t.Errorf("overshot the midpoint: %f %f", a.Entropy, b.Entropy)
	}
	checkDerived(t, a)
	checkDerived(t, b)
}

func TestInteractOutOfRange(t *testing.T) {
	a := newTestParticle(100, 100, 0.8)
	b := newTestParticle(100+2*ParticleRadius, 100, 0.2)
	a.Vel = r2.Vec{X: 10, Y: 0}

	if a.Interact(b, 0.9, constRand(0.5)) {
		t.Fatalf("particles at exactly twice the radius collided")
	}
	if a.Entropy != 0.8 || b.Entropy != 0.2 || a.Vel != (r2.Vec{X: 10, Y: 0}) {
		t.Fatalf("state changed without a collision")
	}
}

func TestInteractDeflectsOnlyFirst(t *testing.T) {
	a := newTestParticle(100, 100, 1)
	b := newTestParticle(103, 100, 1)
	a.Vel = r2.Vec{X: 2, Y: 0}
	b.Vel = r2.Vec{X: 0, Y: 1}

	a.Interact(b, 1, constRand(0.5))

	want := 0.5 * math.Pi * DeflectionScale
	got := math.Atan2(a.Vel.Y, a.Vel.X)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("deflection: got %f want %f", got, want)
	}
	if math.Abs(r2.Norm(a.Vel)-2) > 1e-9 {
		t.Errorf("deflection changed speed: %f", r2.Norm(a.Vel))
	}
	if b.Vel != (r2.Vec{X: 0, Y: 1}) {
		t.Errorf("second particle deflected: %v", b.Vel)
	}
}

func TestInteractClampsAtFloor(t *testing.T) {
	a := newTestParticle(100, 100, 0.011)
	b := newTestParticle(100, 100, 1)
	a.Vel = r2.Vec{X: 1000, Y: 0}

	a.Interact(b, 0.5, constRand(0))

	if a.Entropy < MinEntropy || a.Entropy > 1 || b.Entropy < MinEntropy || b.Entropy > 1 {
		t.Fatalf("entropy escaped range: %f %f", a.Entropy, b.Entropy)
	}
	checkDerived(t, a)
	checkDerived(t, b)
}

func TestCollisionForceExtrapolates(t *testing.T) {
	tests := []struct {
		speed, want float64
	}{
		{0, 0.02},
		{5, 0.06},
		{10, 0.1},
		{20, 0.18},
	}
	for _, tt := range tests {
		if got := CollisionForce(tt.speed); !approx(got, tt.want) {
			t.Errorf("CollisionForce(%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestInteractCountsEveryCollidingPair(t *testing.T) {
	a := newTestParticle(100, 100, 0.5)
	b := newTestParticle(104, 100, 0.5)
	c := newTestParticle(108, 100, 0.5)
	d := newTestParticle(400, 400, 0.5)
	s := newTestSimulation(800, 600, a, b, c, d)

	s.interact()

	// a-b, a-c, b-c
	if got := s.Analytics.Snapshot().TotalInteractions; got != 3 {
		t.Fatalf("got %d interactions want 3", got)
	}
}
