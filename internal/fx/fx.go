// Package fx keeps tool effects alive for a few ticks and maps particle
// state onto the visual parameters both shells draw with.
package fx

import (
	"math"

	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
)

// Effect animation constants
const (
	DefaultTTL   = 30
	EffectMinSz  = 10.0
	EffectMaxSz  = 40.0
	EffectSpin   = 0.2  // Radians per tick of age
	CursorSpin   = 0.02 // Radians per tick
	PulseRate    = 0.1  // Radians per tick
	PulseMaxGain = 0.3  // Size swing at entropy 1
)

// Trail holds recent effects until they age out
type Trail struct {
	ttl     uint64
	effects []entropy.Effect
}

// NewTrail creates a trail whose effects live for ttl ticks
func NewTrail(ttl int) *Trail {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Trail{ttl: uint64(ttl)}
}

// Add appends newly emitted effects
func (t *Trail) Add(effects []entropy.Effect) {
	t.effects = append(t.effects, effects...)
}

// Expire drops effects older than the ttl at tick
func (t *Trail) Expire(tick uint64) {
	kept := t.effects[:0]
	for _, e := range t.effects {
		if tick-e.Tick <= t.ttl {
			kept = append(kept, e)
		}
	}
	// Let dropped effects be collected
	clear(t.effects[len(kept):])
	t.effects = kept
}

// Each calls fn for every live effect with its age and fade progress in [0,1]
func (t *Trail) Each(tick uint64, fn func(e entropy.Effect, age uint64, progress float64)) {
	for _, e := range t.effects {
		age := tick - e.Tick
		fn(e, age, math.Min(float64(age)/float64(t.ttl), 1))
	}
}

// Len returns the number of live effects
func (t *Trail) Len() int {
	return len(t.effects)
}

// Alpha fades from 255 to 0 over the effect lifetime
func Alpha(progress float64) uint8 {
	return uint8(math.Round(255 * (1 - progress)))
}

// Size grows from EffectMinSz to EffectMaxSz, scaled by effect strength
func Size(progress, strength float64) float64 {
	return (EffectMinSz + (EffectMaxSz-EffectMinSz)*progress) * strength
}

// PulseRadius is the drawn radius of a particle; the swing grows with entropy
func PulseRadius(radius, entropyLevel float64, tick uint64) float64 {
	return radius * (1 + math.Sin(float64(tick)*PulseRate)*entropyLevel*PulseMaxGain)
}
