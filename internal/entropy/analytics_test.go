package entropy

import "testing"

func TestAnalyticsAverage(t *testing.T) {
	a := &Analytics{}
	a.observe([]*Particle{
		newTestParticle(0, 0, 0.2),
		newTestParticle(0, 0, 0.4),
		newTestParticle(0, 0, 0.9),
	})
	if got := a.Snapshot().LastAverageEntropy; !approx(got, 0.5) {
		t.Fatalf("got %f want 0.5", got)
	}

	a.observe(nil)
	if got := a.Snapshot().LastAverageEntropy; !approx(got, 0.5) {
		t.Fatalf("empty set replaced the average: %f", got)
	}
}

func TestAnalyticsSnapshotIsACopy(t *testing.T) {
	a := &Analytics{}
	a.recordTool(ToolHeal)
	snap := a.Snapshot()
	a.recordTool(ToolHeal)
	a.recordTool(ToolTrauma)
	a.recordInteraction()

	if snap.HealActions != 1 {
		t.Fatalf("snapshot mutated: %+v", snap)
	}
	got := a.Snapshot()
	want := AnalyticsData{HealActions: 2, TraumaActions: 1, TotalInteractions: 1}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}

	a.Reset()
	if a.Snapshot() != (AnalyticsData{}) {
		t.Fatalf("reset left %+v", a.Snapshot())
	}
}
