// Command entropy-term runs the simulation in a terminal with tcell.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/harmony-chaos-go/internal/config"
	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
	"github.com/olivierh59500/harmony-chaos-go/internal/fx"
)

const (
	cellWidth  = 10.0 // World units per column
	cellHeight = 20.0 // World units per row, terminal cells are twice as tall
	statusRows = 1
)

var (
	configPath = flag.String("config", "", "JSON config file")
	logPath    = flag.String("log", "", "Write logs to this file (discarded otherwise)")
	muteFlag   = flag.Bool("mute", false, "Disable audio cues")
)

// Viewer owns the terminal, the simulation and the pointer state
type Viewer struct {
	screen tcell.Screen
	sim    *entropy.Simulation
	trail  *fx.Trail
	cfg    config.Config
	logger *slog.Logger
	audio  *audioCues
	start  time.Time

	cols, rows     int
	tool           entropy.Tool
	pressed        bool
	mouseX, mouseY int
	showStats      bool
}

// NewViewer initialises the screen and sizes the simulation to it
func NewViewer(cfg config.Config, logger *slog.Logger) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	v := &Viewer{
		screen:    screen,
		trail:     fx.NewTrail(cfg.EffectTTL),
		cfg:       cfg,
		logger:    logger,
		start:     time.Now(),
		tool:      entropy.ToolHeal,
		showStats: true,
	}
	v.cols, v.rows = screen.Size()

	seed := cfg.ResolveSeed()
	w, h := v.worldSize()
	v.sim = entropy.NewSimulation(entropy.Options{
		Width:      w,
		Height:     h,
		Population: cfg.Population,
		Noise:      entropy.NewPerlinNoise(seed),
		Rand:       rand.New(rand.NewSource(seed)),
		Logger:     logger,
	})
	logger.Info("terminal viewer started", "seed", seed, "cols", v.cols, "rows", v.rows)

	if cfg.Audio && !*muteFlag {
		a, err := newAudioCues()
		if err != nil {
			// Non-fatal, the viewer runs silent
			logger.Warn("audio initialization failed", "err", err)
		} else {
			v.audio = a
		}
	}
	return v, nil
}

// worldSize maps the drawable terminal area to world units
func (v *Viewer) worldSize() (float64, float64) {
	rows := max(v.rows-statusRows, 1)
	return float64(max(v.cols, 1)) * cellWidth, float64(rows) * cellHeight
}

func (v *Viewer) toCell(p r2.Vec) (int, int) {
	return int(p.X / cellWidth), int(p.Y / cellHeight)
}

func (v *Viewer) run() {
	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.TPS))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.tick()
			v.draw()
		}
	}
}

func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			v.tool = entropy.ToolHeal
		case 't':
			v.tool = entropy.ToolTrauma
		case 'a':
			v.showStats = !v.showStats
		case 'c':
			v.sim.Analytics.Reset()
			v.logger.Info("analytics reset")
		}

	case *tcell.EventMouse:
		v.mouseX, v.mouseY = ev.Position()
		v.pressed = ev.Buttons()&tcell.Button1 != 0

	case *tcell.EventResize:
		v.screen.Sync()
		v.cols, v.rows = v.screen.Size()
		v.logger.Info("terminal resized", "cols", v.cols, "rows", v.rows)
	}
	return true
}

// tick samples bounds and pointer, then advances the simulation
func (v *Viewer) tick() {
	w, h := v.worldSize()
	v.sim.Resize(w, h)

	// Center of the pointed cell, in world units
	pos := r2.Vec{X: (float64(v.mouseX) + 0.5) * cellWidth, Y: (float64(v.mouseY) + 0.5) * cellHeight}
	inside := pos.X > 0 && pos.X < w && pos.Y > 0 && pos.Y < h

	effects := v.sim.Step(entropy.TickInput{
		Now: time.Since(v.start).Seconds(),
		Stimulus: entropy.Stimulus{
			Active:   v.pressed && inside,
			Pos:      pos,
			Tool:     v.tool,
			Radius:   v.cfg.ToolRadius,
			Strength: v.cfg.ToolStrength,
		},
	})
	v.trail.Add(effects)
	v.trail.Expire(v.sim.Tick)

	if v.audio != nil && len(effects) > 0 {
		v.audio.play(v.tool, len(effects))
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()
	tick := v.sim.Tick

	v.trail.Each(tick, func(e entropy.Effect, age uint64, progress float64) {
		x, y := v.toCell(e.Pos)
		glyph, base := '+', tcell.NewRGBColor(75, 192, 192)
		if e.Tool == entropy.ToolTrauma {
			glyph, base = '*', tcell.NewRGBColor(255, 99, 132)
		}
		r, g, b := base.RGB()
		fade := 1 - progress
		clr := tcell.NewRGBColor(int32(float64(r)*fade), int32(float64(g)*fade), int32(float64(b)*fade))
		v.screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(clr))
	})

	for _, p := range v.sim.Particles {
		x, y := v.toCell(p.Pos)
		glyph := '•'
		if fx.PulseRadius(p.Radius, p.Entropy, tick) > p.Radius*1.15 {
			glyph = '●'
		}
		clr := tcell.NewRGBColor(int32(p.Color.R), int32(p.Color.G), int32(p.Color.B))
		v.screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(clr))
	}

	// Pointer
	cursor := tcell.StyleDefault.Foreground(tcell.NewRGBColor(75, 192, 192)).Reverse(true)
	if v.tool == entropy.ToolTrauma {
		cursor = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 99, 132)).Reverse(true)
	}
	if v.mouseY < v.rows-statusRows {
		v.screen.SetContent(v.mouseX, v.mouseY, ' ', nil, cursor)
	}

	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawStatus() {
	line := fmt.Sprintf(" %s | h/t tool  a stats  c clear  q quit", v.tool)
	if v.showStats {
		d := v.sim.Analytics.Snapshot()
		line = fmt.Sprintf(" %s | entropy %.1f%% | heal %d | trauma %d | interactions %d | h/t a c q",
			v.tool, d.LastAverageEntropy*100, d.HealActions, d.TraumaActions, d.TotalInteractions)
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	y := v.rows - 1
	for x := 0; x < v.cols; x++ {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		v.screen.SetContent(x, y, ch, nil, style)
	}
}

func (v *Viewer) cleanup() {
	if v.audio != nil {
		v.audio.close()
	}
	v.screen.Fini()
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// stderr shares the screen, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := cfg.NewLogger(logOut)

	viewer, err := NewViewer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			viewer.cleanup()
			fmt.Fprintf(os.Stderr, "entropy-term crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	viewer.run()
	viewer.cleanup()
}
