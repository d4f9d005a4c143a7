package config

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/wricardo/battleship/game/engine"
)

// Settings holds process-wide options read from the environment
type Settings struct {
	ConfigDir      string `env:"BATTLESHIP_CONFIG_DIR" envDefault:"configs"`
	SavesDir       string `env:"BATTLESHIP_SAVES_DIR" envDefault:"saves"`
	LayoutStrategy string `env:"BATTLESHIP_LAYOUT_STRATEGY" envDefault:"exhaustive"`
	// DefaultPreset is used by create when no preset is named; empty means
	// classic
	DefaultPreset string `env:"BATTLESHIP_DEFAULT_PRESET"`
	MaxRetries    int    `env:"BATTLESHIP_MAX_RETRIES" envDefault:"100"`
	// Seed fixes the layout generator; 0 seeds from the clock
	Seed  uint64 `env:"BATTLESHIP_SEED" envDefault:"0"`
	Debug bool   `env:"BATTLESHIP_DEBUG" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings parses and validates Settings from the environment
func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks values the env parser cannot
func (s Settings) Validate() error {
	if _, err := engine.ParseLayoutStrategy(s.LayoutStrategy); err != nil {
		return err
	}
	if s.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", s.MaxRetries)
	}
	return nil
}

// LayoutOptions converts the settings for engine.RandomLayoutWithOptions
func (s Settings) LayoutOptions() engine.LayoutOptions {
	strategy, err := engine.ParseLayoutStrategy(s.LayoutStrategy)
	if err != nil {
		strategy = engine.StrategyExhaustive
	}
	return engine.LayoutOptions{Strategy: strategy, MaxRetries: s.MaxRetries}
}

// NewRand returns the layout random source
func (s Settings) NewRand() *rand.Rand {
	seed := s.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
