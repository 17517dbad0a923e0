package report

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
)

func TestChartRendersPNG(t *testing.T) {
	tests := []struct {
		name string
		data entropy.AnalyticsData
	}{
		{"empty session", entropy.AnalyticsData{}},
		{"with actions", entropy.AnalyticsData{HealActions: 40, TraumaActions: 12, TotalInteractions: 900, LastAverageEntropy: 0.37}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ChartPNG(tt.data, 480, 320)
			if err != nil {
				t.Fatalf("ChartPNG: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 480 || b.Dy() != 320 {
				t.Fatalf("size %v", b)
			}
		})
	}
}

func TestTitleShowsPercent(t *testing.T) {
	got := Title(entropy.AnalyticsData{LastAverageEntropy: 0.4567})
	if !strings.Contains(got, "45.7%") {
		t.Fatalf("title %q missing percentage", got)
	}
}
