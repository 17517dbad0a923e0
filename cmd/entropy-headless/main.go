// Command entropy-headless runs a scripted session without a display and
// prints the resulting analytics.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/harmony-chaos-go/internal/config"
	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
	"github.com/olivierh59500/harmony-chaos-go/internal/report"
)

var (
	configPath = flag.String("config", "", "JSON config file")
	ticks      = flag.Int("ticks", 3600, "Ticks to simulate")
	seedFlag   = flag.Int64("seed", 0, "Random seed, overrides the config (0 keeps it)")
	verify     = flag.Bool("verify", false, "Run twice and fail if the runs diverge")
	chartPath  = flag.String("chart", "", "Write the analytics bar chart PNG here")
	period     = flag.Int("period", 120, "Ticks per heal/rest/trauma/rest script cycle")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Width(22)
	healStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("80"))
	hurtStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *ticks < 0 || *period < 4 {
		fmt.Fprintln(os.Stderr, "ticks must be >= 0 and period >= 4")
		os.Exit(2)
	}
	logger := cfg.NewLogger(os.Stderr)

	// Verification needs both runs on the same seed
	seed := cfg.ResolveSeed()
	sim := run(cfg, seed, logger)
	data := sim.Analytics.Snapshot()

	verified := ""
	if *verify {
		other := run(cfg, seed, logger)
		if i, ok := sameState(sim, other); !ok {
			fmt.Println(failStyle.Render(fmt.Sprintf("runs diverged at particle %d", i)))
			os.Exit(1)
		}
		verified = okStyle.Render("deterministic")
	}

	fmt.Println(summary(cfg, seed, sim, data, verified))

	if *chartPath != "" {
		if err := writeChart(*chartPath, data); err != nil {
			logger.Error("chart export failed", "err", err)
			os.Exit(1)
		}
		logger.Info("chart written", "file", *chartPath)
	}
}

// run simulates the scripted session on a fixed 1/TPS clock
func run(cfg config.Config, seed int64, logger *slog.Logger) *entropy.Simulation {
	sim := entropy.NewSimulation(entropy.Options{
		Width:      float64(cfg.Width),
		Height:     float64(cfg.Height),
		Population: cfg.Population,
		Noise:      entropy.NewPerlinNoise(seed),
		Rand:       rand.New(rand.NewSource(seed)),
		Logger:     logger,
	})
	for t := 0; t < *ticks; t++ {
		sim.Step(entropy.TickInput{
			Now:      float64(t+1) / float64(cfg.TPS),
			Stimulus: script(cfg, t),
		})
	}
	logger.Debug("run finished", "ticks", *ticks, "seed", seed)
	return sim
}

// script holds heal for the first quarter of each period and trauma for
// the third, sweeping the pointer along a Lissajous path
func script(cfg config.Config, t int) entropy.Stimulus {
	w, h := float64(cfg.Width), float64(cfg.Height)
	st := entropy.Stimulus{
		Pos: r2.Vec{
			X: w/2 + w/3*math.Sin(float64(t)*0.013),
			Y: h/2 + h/3*math.Sin(float64(t)*0.021),
		},
		Radius:   cfg.ToolRadius,
		Strength: cfg.ToolStrength,
	}

	quarter := *period / 4
	switch phase := t % *period; {
	case phase < quarter:
		st.Active, st.Tool = true, entropy.ToolHeal
	case phase >= 2*quarter && phase < 3*quarter:
		st.Active, st.Tool = true, entropy.ToolTrauma
	}
	return st
}

// sameState compares two runs particle by particle
func sameState(a, b *entropy.Simulation) (int, bool) {
	if a.Analytics.Snapshot() != b.Analytics.Snapshot() {
		return -1, false
	}
	for i := range a.Particles {
		pa, pb := a.Particles[i], b.Particles[i]
		if pa.Pos != pb.Pos || pa.Vel != pb.Vel || pa.Entropy != pb.Entropy {
			return i, false
		}
	}
	return 0, true
}

func summary(cfg config.Config, seed int64, sim *entropy.Simulation, d entropy.AnalyticsData, verified string) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}

	calm, ordered := 0, 0
	for _, p := range sim.Particles {
		if p.Entropy < entropy.CalmThreshold {
			calm++
		}
		if p.Entropy == 0 {
			ordered++
		}
	}

	rows := []string{
		titleStyle.Render("Harmony & Chaos"),
		row("seed", valueStyle.Render(fmt.Sprint(seed))),
		row("ticks", valueStyle.Render(fmt.Sprint(sim.Tick))),
		row("population", valueStyle.Render(fmt.Sprint(cfg.Population))),
		row("system entropy", valueStyle.Render(fmt.Sprintf("%.1f%%", d.LastAverageEntropy*100))),
		row("healing actions", healStyle.Render(fmt.Sprint(d.HealActions))),
		row("trauma actions", hurtStyle.Render(fmt.Sprint(d.TraumaActions))),
		row("interactions", valueStyle.Render(fmt.Sprint(d.TotalInteractions))),
		row("calm / ordered", valueStyle.Render(fmt.Sprintf("%d / %d", calm, ordered))),
	}
	if verified != "" {
		rows = append(rows, row("replay", verified))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func writeChart(path string, d entropy.AnalyticsData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := report.Chart(f, d, 640, 400); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
