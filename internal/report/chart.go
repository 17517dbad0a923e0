// Package report renders the analytics view
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
)

var (
	healFill     = drawing.Color{R: 75, G: 192, B: 192, A: 128}
	healStroke   = drawing.Color{R: 75, G: 192, B: 192, A: 255}
	traumaFill   = drawing.Color{R: 255, G: 99, B: 132, A: 128}
	traumaStroke = drawing.Color{R: 255, G: 99, B: 132, A: 255}
)

// Title is the chart heading including the current system entropy
func Title(data entropy.AnalyticsData) string {
	return fmt.Sprintf("User Interactions - Current System Entropy: %.1f%%", data.LastAverageEntropy*100)
}

// Chart draws the heal/trauma bar chart as a PNG into w
func Chart(w io.Writer, data entropy.AnalyticsData, width, height int) error {
	top := float64(max(data.HealActions, data.TraumaActions))
	if top < 1 {
		// go-chart refuses a zero-height range
		top = 1
	}

	graph := chart.BarChart{
		Title:      Title(data),
		TitleStyle: chart.Style{FontSize: 12},
		Width:      width,
		Height:     height,
		BarWidth:   width / 5,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		YAxis: chart.YAxis{
			Name:  "Number of Actions",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: []chart.Value{
			{
				Label: "Healing Actions",
				Value: float64(data.HealActions),
				Style: chart.Style{FillColor: healFill, StrokeColor: healStroke, StrokeWidth: 1},
			},
			{
				Label: "Trauma Actions",
				Value: float64(data.TraumaActions),
				Style: chart.Style{FillColor: traumaFill, StrokeColor: traumaStroke, StrokeWidth: 1},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render analytics chart: %w", err)
	}
	return nil
}

// ChartPNG is Chart into a fresh buffer
func ChartPNG(data entropy.AnalyticsData, width, height int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Chart(&buf, data, width, height); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
