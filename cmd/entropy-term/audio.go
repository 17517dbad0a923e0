package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
)

const (
	sampleRate   = beep.SampleRate(44100)
	cueLength    = 40 * time.Millisecond
	cueInterval  = 120 * time.Millisecond // At most one cue per interval while a tool is held
	healFreq     = 880.0
	traumaFreq   = 220.0
	cueBaseLevel = -3.0 // log2 volume for a single affected particle
)

// audioCues plays a short tone whenever the tool changes some particles
type audioCues struct {
	last time.Time
}

func newAudioCues() (*audioCues, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &audioCues{}, nil
}

// play sounds the tool's tone, louder the more particles it touched
func (a *audioCues) play(tool entropy.Tool, affected int) {
	now := time.Now()
	if now.Sub(a.last) < cueInterval {
		return
	}
	a.last = now

	freq := healFreq
	if tool == entropy.ToolTrauma {
		freq = traumaFreq
	}
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}

	level := cueBaseLevel + 0.5*math.Log2(float64(min(affected, 16)))
	speaker.Play(&effects.Volume{
		Streamer: beep.Take(sampleRate.N(cueLength), tone),
		Base:     2,
		Volume:   level,
	})
}

func (a *audioCues) close() {
	speaker.Close()
}
