package entropy

// AnalyticsData is a read-only copy of the session counters
type AnalyticsData struct {
	HealActions        uint64  `json:"heal_actions"`
	TraumaActions      uint64  `json:"trauma_actions"`
	TotalInteractions  uint64  `json:"total_interactions"`
	LastAverageEntropy float64 `json:"last_average_entropy"`
}

// Analytics accumulates counters for the reporting surface. It is owned
// by a Simulation and only mutated from its tick.
type Analytics struct {
	data AnalyticsData
}

// Snapshot returns the current counters
func (a *Analytics) Snapshot() AnalyticsData {
	return a.data
}

// Reset zeroes every counter and the average
func (a *Analytics) Reset() {
	a.data = AnalyticsData{}
}

func (a *Analytics) recordTool(t Tool) {
	switch t {
	case ToolHeal:
		a.data.HealActions++
	case ToolTrauma:
		a.data.TraumaActions++
	}
}

func (a *Analytics) recordInteraction() {
	a.data.TotalInteractions++
}

// observe updates the average entropy. An empty population leaves the
// previous average in place.
func (a *Analytics) observe(particles []*Particle) {
	if len(particles) == 0 {
		return
	}
	total := 0.0
	for _, p := range particles {
		total += p.Entropy
	}
	a.data.LastAverageEntropy = total / float64(len(particles))
}
