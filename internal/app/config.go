// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/session"
)

// Run modes.
const (
	ModeSolve   = "solve"
	ModeAnimate = "animate"
)

// DefaultSize is the grid side length used without a scenario file.
const DefaultSize = 25

// Config holds everything an App needs to run.
type Config struct {
	ScenarioPath string // HCL scenario; empty means an open Size×Size grid
	Size         int
	Mode         string
	Interval     time.Duration

	LogFormat   string
	LogLevel    string
	MetricsAddr string // serve /metrics here while running; empty disables
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Size:      DefaultSize,
		Mode:      ModeSolve,
		Interval:  session.DefaultInterval,
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" && (cfg.Size < 1 || cfg.Size > grid.MaxSize) {
		return nil, fmt.Errorf("size must be in 1..%d, got %d", grid.MaxSize, cfg.Size)
	}
	switch cfg.Mode {
	case ModeSolve, ModeAnimate:
	default:
		return nil, fmt.Errorf("invalid mode %q: must be %q or %q", cfg.Mode, ModeSolve, ModeAnimate)
	}
	if cfg.Interval < 0 {
		return nil, errors.New("interval must not be negative")
	}
	return &cfg, nil
}
