package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
	"github.com/olivierh59500/harmony-chaos-go/internal/fx"
)

var (
	healColor   = color.RGBA{75, 192, 192, 255}
	traumaColor = color.RGBA{255, 99, 132, 255}
	fadeColor   = color.RGBA{0, 0, 0, 20} // Trails: the scene fades instead of clearing
	dimColor    = color.RGBA{0, 0, 0, 160}
)

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	g.ensureCanvas()
	w, h := float32(g.Width), float32(g.Height)

	vector.DrawFilledRect(g.canvas, 0, 0, w, h, fadeColor, false)
	tick := g.sim.Tick

	if g.CursorIn {
		g.drawCursor(g.canvas, tick)
	}

	for _, p := range g.sim.Particles {
		r := fx.PulseRadius(p.Radius, p.Entropy, tick)
		vector.DrawFilledCircle(g.canvas, float32(p.Pos.X), float32(p.Pos.Y), float32(r), p.Color, true)
	}

	g.trail.Each(tick, func(e entropy.Effect, age uint64, progress float64) {
		drawEffect(g.canvas, e, age, progress)
	})

	screen.DrawImage(g.canvas, nil)
	g.drawHUD(screen)

	if g.ShowAnalytics {
		g.drawAnalytics(screen)
	}
}

// ensureCanvas (re)creates the scene layer at the layout size
func (g *Game) ensureCanvas() {
	if g.canvas != nil {
		b := g.canvas.Bounds()
		if b.Dx() == g.Width && b.Dy() == g.Height {
			return
		}
		g.canvas.Deallocate()
	}
	g.canvas = ebiten.NewImage(g.Width, g.Height)
	g.canvas.Fill(color.Black)
}

// drawCursor outlines the tool area; both shapes spin with the tick
func (g *Game) drawCursor(dst *ebiten.Image, tick uint64) {
	cx, cy := g.CursorX, g.CursorY
	radius := g.cfg.ToolRadius
	spin := float64(tick) * fx.CursorSpin

	switch g.Tool {
	case entropy.ToolHeal:
		clr := withAlpha(healColor, 200)
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(radius), 2, clr, true)
		for i := 1; i <= 3; i++ {
			a := spin + float64(i)*2*math.Pi/3
			vector.StrokeCircle(dst, float32(cx+20*math.Cos(a)), float32(cy+20*math.Sin(a)), 5, 2, clr, true)
		}
	case entropy.ToolTrauma:
		clr := withAlpha(traumaColor, 200)
		for i := 0; i < 8; i++ {
			a := spin + float64(i)*2*math.Pi/8
			strokeRadial(dst, cx, cy, a, radius-10, radius, 2, clr)
		}
	}
}

// drawEffect renders a fading heal ring or trauma burst
func drawEffect(dst *ebiten.Image, e entropy.Effect, age uint64, progress float64) {
	size := fx.Size(progress, e.Strength)
	spin := float64(age) * fx.EffectSpin
	x, y := e.Pos.X, e.Pos.Y

	switch e.Tool {
	case entropy.ToolHeal:
		clr := withAlpha(healColor, fx.Alpha(progress))
		vector.StrokeCircle(dst, float32(x), float32(y), float32(size/2), 1, clr, true)
		for i := 1; i <= 3; i++ {
			a := spin + float64(i)*2*math.Pi/3
			ox, oy := x+size/4*math.Cos(a), y+size/4*math.Sin(a)
			vector.StrokeCircle(dst, float32(ox), float32(oy), float32(size/8), 1, clr, true)
		}
	case entropy.ToolTrauma:
		clr := withAlpha(traumaColor, fx.Alpha(progress))
		for i := 0; i < 4; i++ {
			a := spin + float64(i)*math.Pi/2
			strokeRadial(dst, x, y, a, size/2, size, 1, clr)
		}
	}
}

// strokeRadial draws the segment from r0 to r1 along angle a, measured
// clockwise from straight up
func strokeRadial(dst *ebiten.Image, cx, cy, a, r0, r1 float64, width float32, clr color.Color) {
	sin, cos := math.Sincos(a)
	vector.StrokeLine(dst,
		float32(cx+r0*sin), float32(cy-r0*cos),
		float32(cx+r1*sin), float32(cy-r1*cos),
		width, clr, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	data := g.sim.Analytics.Snapshot()
	toolClr := healColor
	if g.Tool == entropy.ToolTrauma {
		toolClr = traumaColor
	}
	text.Draw(screen, fmt.Sprintf("Tool: %s", g.Tool), basicfont.Face7x13, 8, 16, toolClr)
	text.Draw(screen, fmt.Sprintf("Entropy: %.1f%%  Interactions: %d", data.LastAverageEntropy*100, data.TotalInteractions),
		basicfont.Face7x13, 8, 32, color.White)
	text.Draw(screen, "[H]eal [T]rauma [A]nalytics [C]lear [F]reeze [Esc]",
		basicfont.Face7x13, 8, g.Height-8, color.Gray{Y: 160})
}

// drawAnalytics dims the scene and centers the chart
func (g *Game) drawAnalytics(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(g.Width), float32(g.Height), dimColor, false)
	if g.chart == nil {
		text.Draw(screen, "analytics unavailable", basicfont.Face7x13, g.Width/2-70, g.Height/2, color.White)
		return
	}
	b := g.chart.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.Width-b.Dx())/2, float64(g.Height-b.Dy())/2)
	screen.DrawImage(g.chart, op)
}

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
