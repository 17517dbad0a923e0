package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/harmony-chaos-go/internal/config"
	"github.com/olivierh59500/harmony-chaos-go/internal/entropy"
)

var (
	configPath = flag.String("config", "", "JSON config file")
	seedFlag   = flag.Int64("seed", 0, "Random seed, overrides the config (0 keeps it)")
	dumpConfig = flag.String("dump-config", "", "Write the effective config to this file and exit")
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
	logger := cfg.NewLogger(os.Stderr)

	if *dumpConfig != "" {
		if err := cfg.Save(*dumpConfig); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize simulation with the configured population
	seed := cfg.ResolveSeed()
	sim := entropy.NewSimulation(entropy.Options{
		Width:      float64(cfg.Width),
		Height:     float64(cfg.Height),
		Population: cfg.Population,
		Noise:      entropy.NewPerlinNoise(seed),
		Rand:       rand.New(rand.NewSource(seed)),
		Logger:     logger,
	})
	logger.Info("starting", "seed", seed, "population", cfg.Population, "tps", cfg.TPS)

	// Set up Ebitengine game
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Harmony & Chaos")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	// Run the game loop
	if err := ebiten.RunGame(NewGame(cfg, sim, logger)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop failed", "err", err)
		os.Exit(1)
	}
}
