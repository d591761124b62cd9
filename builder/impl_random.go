// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/gridpath/grid"
)

const (
	methodScatter = "Scatter"
	methodWalks   = "Walks"
)

// Scatter blocks each non-endpoint cell independently with probability
// density. Cells are visited in row-major order, one RNG draw per cell.
func Scatter(density float64) Constructor {
	return func(g *grid.Grid, cfg builderConfig) error {
		if density < 0 || density > 1 {
			return fmt.Errorf("%s: density=%v: %w", methodScatter, density, ErrInvalidDensity)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodScatter, ErrNeedRand)
		}
		n := g.Size() * g.Size()
		for i := 0; i < n; i++ {
			if cfg.rng.Float64() >= density {
				continue
			}
			if err := blockUnlessEndpoint(g, g.Cell(i)); err != nil {
				return wrapf(methodScatter, g.Cell(i).String(), err)
			}
		}
		return nil
	}
}

// Walks grows clustered obstacles: each of clusters random walks starts at a
// random cell, takes steps moves, and blocks the cell it stands on with
// probability density before each move. Walks stay inside the grid.
func Walks(clusters, steps int, density float64) Constructor {
	return func(g *grid.Grid, cfg builderConfig) error {
		if density < 0 || density > 1 {
			return fmt.Errorf("%s: density=%v: %w", methodWalks, density, ErrInvalidDensity)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodWalks, ErrNeedRand)
		}
		size := g.Size()
		moves := [4]grid.Cell{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
		for k := 0; k < clusters; k++ {
			p := grid.Cell{X: cfg.rng.Intn(size), Y: cfg.rng.Intn(size)}
			for s := 0; s < steps; s++ {
				if cfg.rng.Float64() < density {
					if err := blockUnlessEndpoint(g, p); err != nil {
						return wrapf(methodWalks, p.String(), err)
					}
				}
				d := moves[cfg.rng.Intn(len(moves))]
				if np := (grid.Cell{X: p.X + d.X, Y: p.Y + d.Y}); g.InBounds(np) {
					p = np
				}
			}
		}
		return nil
	}
}
