// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/gridpath/grid"
)

// Constructor applies a deterministic mutation to g using the resolved config.
// Constructors validate parameters early and return sentinel errors.
type Constructor func(g *grid.Grid, cfg builderConfig) error

// Build creates a size×size grid, resolves the builder configuration from
// bopts, and applies all constructors in order. Constructor errors are wrapped
// with "Build: %w" and returned immediately.
func Build(size int, bopts []BuilderOption, cons ...Constructor) (*grid.Grid, error) {
	g, err := grid.New(size)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	if err := Apply(g, bopts, cons...); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply runs constructors against an existing grid.
func Apply(g *grid.Grid, bopts []BuilderOption, cons ...Constructor) error {
	if g == nil {
		return fmt.Errorf("Build: nil grid: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return fmt.Errorf("Build: %w", err)
		}
	}
	return nil
}

// MustBuild is like Build but panics on error. Intended for fixtures.
func MustBuild(size int, bopts []BuilderOption, cons ...Constructor) *grid.Grid {
	g, err := Build(size, bopts, cons...)
	if err != nil {
		panic(err)
	}
	return g
}
