// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridpath/grid"
)

const (
	methodBlocked = "Blocked"
	methodWall    = "Wall"
	methodEnclose = "Enclose"
)

// Blocked marks every listed cell as an obstacle.
// Endpoint cells are rejected with grid.ErrEndpointCell.
func Blocked(cells ...grid.Cell) Constructor {
	return func(g *grid.Grid, _ builderConfig) error {
		for _, c := range cells {
			if err := g.SetBlocked(c, true); err != nil {
				return wrapf(methodBlocked, c.String(), err)
			}
		}
		return nil
	}
}

// Wall blocks the axis-aligned segment from→to, both ends inclusive.
// Endpoint cells on the segment are left open.
func Wall(from, to grid.Cell) Constructor {
	return func(g *grid.Grid, _ builderConfig) error {
		if from.X != to.X && from.Y != to.Y {
			return fmt.Errorf("%s: %v→%v: %w", methodWall, from, to, ErrBadSegment)
		}
		dx, dy := sign(to.X-from.X), sign(to.Y-from.Y)
		for c := from; ; c = (grid.Cell{X: c.X + dx, Y: c.Y + dy}) {
			if err := blockUnlessEndpoint(g, c); err != nil {
				return wrapf(methodWall, c.String(), err)
			}
			if c == to {
				return nil
			}
		}
	}
}

// Enclose blocks the in-bounds 4-neighbours of c, cutting it off.
func Enclose(c grid.Cell) Constructor {
	return func(g *grid.Grid, _ builderConfig) error {
		if !g.InBounds(c) {
			return wrapf(methodEnclose, c.String(), grid.ErrOutOfBounds)
		}
		for _, d := range [4]grid.Cell{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: -1, Y: 0}} {
			nb := grid.Cell{X: c.X + d.X, Y: c.Y + d.Y}
			if !g.InBounds(nb) {
				continue
			}
			if err := blockUnlessEndpoint(g, nb); err != nil {
				return wrapf(methodEnclose, nb.String(), err)
			}
		}
		return nil
	}
}

// blockUnlessEndpoint blocks c, silently skipping the start and goal.
func blockUnlessEndpoint(g *grid.Grid, c grid.Cell) error {
	err := g.SetBlocked(c, true)
	if errors.Is(err, grid.ErrEndpointCell) {
		return nil
	}
	return err
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
