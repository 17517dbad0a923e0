package entropy

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Bin for spatial partitioning: list of particle indices
type Bin []int

// grid is a dense bin grid over the simulation bounds. Cell size must be
// at least the largest query radius so a 3x3 block covers every match.
type grid struct {
	cellSize   float64
	cols, rows int
	bins       []Bin
	scratch    []int
}

func newGrid(cellSize float64) *grid {
	return &grid{cellSize: cellSize}
}

// build assigns every particle to its bin, reusing bin storage
func (g *grid) build(particles []*Particle, width, height float64) {
	cols := int(math.Ceil(width / g.cellSize))
	rows := int(math.Ceil(height / g.cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols != g.cols || rows != g.rows {
		g.cols, g.rows = cols, rows
		g.bins = make([]Bin, cols*rows)
	}
	for i := range g.bins {
		g.bins[i] = g.bins[i][:0]
	}
	for i, p := range particles {
		cx, cy := g.cell(p.Pos)
		key := cy*g.cols + cx
		g.bins[key] = append(g.bins[key], i)
	}
}

func (g *grid) cell(pos r2.Vec) (int, int) {
	cx := int(pos.X / g.cellSize)
	cy := int(pos.Y / g.cellSize)
	return clampInt(cx, 0, g.cols-1), clampInt(cy, 0, g.rows-1)
}

// near returns, in ascending order, the indices of particles whose bins
// touch the 3x3 block around pos and whose index is greater than after.
// The returned slice is reused by the next call.
func (g *grid) near(pos r2.Vec, after int) []int {
	out := g.scratch[:0]
	cx, cy := g.cell(pos)
	for y := cy - 1; y <= cy+1; y++ {
		if y < 0 || y >= g.rows {
			continue
		}
		for x := cx - 1; x <= cx+1; x++ {
			if x < 0 || x >= g.cols {
				continue
			}
			for _, j := range g.bins[y*g.cols+x] {
				if j > after {
					out = append(out, j)
				}
			}
		}
	}
	// Index order keeps float sums and pair order identical to a full scan
	sort.Ints(out)
	g.scratch = out
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
