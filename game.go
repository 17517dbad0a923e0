package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/harmony-chaos-go/internal/config"
	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
	"github.com/olivierh59500/harmony-chaos-go/internal/fx"
	"github.com/olivierh59500/harmony-chaos-go/internal/report"
)

// Analytics view size
const (
	chartWidth  = 480
	chartHeight = 320
)

// Game wires the entropy simulation to Ebitengine
type Game struct {
	cfg    config.Config
	sim    *entropy.Simulation
	trail  *fx.Trail
	logger *slog.Logger
	start  time.Time

	Width, Height int           // Current layout size
	canvas        *ebiten.Image // Scene layer, faded instead of cleared

	Tool          entropy.Tool
	stimulus      entropy.Stimulus
	CursorIn      bool // Pointer strictly inside the viewport
	CursorX       float64
	CursorY       float64
	ShowAnalytics bool
	chart         *ebiten.Image
	freeze        bool
}

// NewGame creates the shell around a fresh simulation
func NewGame(cfg config.Config, sim *entropy.Simulation, logger *slog.Logger) *Game {
	return &Game{
		cfg:    cfg,
		sim:    sim,
		trail:  fx.NewTrail(cfg.EffectTTL),
		logger: logger,
		start:  time.Now(),
		Width:  cfg.Width,
		Height: cfg.Height,
		Tool:   entropy.ToolHeal,
	}
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}

	// Bounds and pointer are sampled once, before the tick runs
	g.sim.Resize(float64(g.Width), float64(g.Height))

	effects := g.sim.Step(entropy.TickInput{
		Now:      time.Since(g.start).Seconds(),
		Stimulus: g.stimulus,
	})
	g.trail.Add(effects)
	g.trail.Expire(g.sim.Tick)

	if g.freeze {
		g.freeze = false
		g.saveFrame()
	}
	return nil
}

// Layout tracks the window size; the simulation picks it up next tick
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Minimized windows report zero
	outsideWidth, outsideHeight = max(outsideWidth, 1), max(outsideHeight, 1)
	if outsideWidth != g.Width || outsideHeight != g.Height {
		g.logger.Info("window resized", "width", outsideWidth, "height", outsideHeight)
	}
	g.Width, g.Height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.setTool(entropy.ToolHeal)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.setTool(entropy.ToolTrauma)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.ShowAnalytics = !g.ShowAnalytics
		if g.ShowAnalytics {
			g.refreshChart()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.sim.Analytics.Reset()
		g.logger.Info("analytics reset")
		if g.ShowAnalytics {
			g.refreshChart()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.freeze = true
	}

	mx, my := ebiten.CursorPosition()
	g.CursorX, g.CursorY = float64(mx), float64(my)
	g.CursorIn = mx > 0 && mx < g.Width && my > 0 && my < g.Height

	g.stimulus = entropy.Stimulus{
		Active:   g.CursorIn && !g.ShowAnalytics && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Pos:      r2.Vec{X: g.CursorX, Y: g.CursorY},
		Tool:     g.Tool,
		Radius:   g.cfg.ToolRadius,
		Strength: g.cfg.ToolStrength,
	}
	return nil
}

func (g *Game) setTool(t entropy.Tool) {
	if g.Tool == t {
		return
	}
	g.Tool = t
	g.logger.Debug("tool selected", "tool", t)
}

// refreshChart re-renders the analytics view from the current counters
func (g *Game) refreshChart() {
	data := g.sim.Analytics.Snapshot()
	out, err := report.ChartPNG(data, chartWidth, chartHeight)
	if err != nil {
		g.logger.Error("analytics chart failed", "err", err)
		g.chart = nil
		return
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		g.logger.Error("analytics chart decode failed", "err", err)
		g.chart = nil
		return
	}
	if g.chart != nil {
		g.chart.Deallocate()
	}
	g.chart = ebiten.NewImageFromImage(img)
	g.logger.Info("analytics opened",
		"heal", data.HealActions,
		"trauma", data.TraumaActions,
		"interactions", data.TotalInteractions,
		"avg_entropy", data.LastAverageEntropy)
}

// saveFrame writes the scene layer as a PNG
func (g *Game) saveFrame() {
	if g.canvas == nil {
		return
	}
	b := g.canvas.Bounds()
	img := image.NewRGBA(b)
	g.canvas.ReadPixels(img.Pix)

	name := fmt.Sprintf("harmony-chaos-%d.png", time.Now().Unix())
	f, err := os.Create(name)
	if err != nil {
		g.logger.Error("freeze failed", "err", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		g.logger.Error("freeze failed", "file", name, "err", err)
		return
	}
	g.logger.Info("frame saved", "file", name)
}
