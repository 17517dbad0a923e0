// Package config loads simulation and shell settings from defaults, an
// optional JSON file, an optional .env file and the process environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// EnvFile is the dotenv file read by Load when present
const EnvFile = ".env"

// Config holds the tunable settings shared by all shells
type Config struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Population   int     `json:"population"`
	ToolRadius   float64 `json:"tool_radius"`
	ToolStrength float64 `json:"tool_strength"`
	Seed         int64   `json:"seed"` // 0 derives a seed from the clock
	TPS          int     `json:"tps"`
	EffectTTL    int     `json:"effect_ttl"` // Ticks an effect stays on screen
	Audio        bool    `json:"audio"`
	LogLevel     string  `json:"log_level"`
}

// Default returns the stock settings
func Default() Config {
	return Config{
		Width:        800,
		Height:       600,
		Population:   200,
		ToolRadius:   100,
		ToolStrength: 0.2,
		TPS:          60,
		EffectTTL:    30,
		Audio:        true,
		LogLevel:     "info",
	}
}

// Load layers the JSON file at path (skipped when path is empty), the
// .env file and the environment over the defaults, then validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// A missing .env is normal
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", EnvFile, err)
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Save writes cfg as indented JSON
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from HARMONY_* variables
func (c *Config) applyEnv(getenv func(string) string) error {
	ints := map[string]*int{
		"HARMONY_WIDTH":      &c.Width,
		"HARMONY_HEIGHT":     &c.Height,
		"HARMONY_POPULATION": &c.Population,
		"HARMONY_TPS":        &c.TPS,
		"HARMONY_EFFECT_TTL": &c.EffectTTL,
	}
	for key, dst := range ints {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", key, v, err)
			}
			*dst = n
		}
	}

	floats := map[string]*float64{
		"HARMONY_TOOL_RADIUS":   &c.ToolRadius,
		"HARMONY_TOOL_STRENGTH": &c.ToolStrength,
	}
	for key, dst := range floats {
		if v := getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", key, v, err)
			}
			*dst = f
		}
	}

	if v := getenv("HARMONY_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("HARMONY_SEED=%q: %w", v, err)
		}
		c.Seed = n
	}
	if v := getenv("HARMONY_AUDIO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HARMONY_AUDIO=%q: %w", v, err)
		}
		c.Audio = b
	}
	if v := getenv("HARMONY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate rejects settings the simulation cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Population < 0:
		return fmt.Errorf("%w: population %d", ErrInvalid, c.Population)
	case c.ToolRadius <= 0:
		return fmt.Errorf("%w: tool_radius %g must be positive", ErrInvalid, c.ToolRadius)
	case c.ToolStrength < 0 || c.ToolStrength > 1:
		return fmt.Errorf("%w: tool_strength %g outside [0,1]", ErrInvalid, c.ToolStrength)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS)
	case c.EffectTTL <= 0:
		return fmt.Errorf("%w: effect_ttl %d", ErrInvalid, c.EffectTTL)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return lvl, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return lvl, nil
}

// ResolveSeed returns Seed, or a clock-derived seed when Seed is 0
func (c Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// NewLogger builds a text logger at the configured level
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
