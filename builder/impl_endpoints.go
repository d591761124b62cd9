// SPDX-License-Identifier: MIT

package builder

import "github.com/katalvlaran/gridpath/grid"

const methodEndpoints = "Endpoints"

// Endpoints places the start and goal markers.
func Endpoints(start, goal grid.Cell) Constructor {
	return func(g *grid.Grid, _ builderConfig) error {
		if err := g.SetStart(start); err != nil {
			return wrapf(methodEndpoints, "SetStart", err)
		}
		if err := g.SetGoal(goal); err != nil {
			return wrapf(methodEndpoints, "SetGoal", err)
		}
		return nil
	}
}

// Corners places the start at the north-west corner and the goal at the
// south-east corner.
func Corners() Constructor {
	return func(g *grid.Grid, cfg builderConfig) error {
		last := g.Size() - 1
		return Endpoints(grid.Cell{X: 0, Y: 0}, grid.Cell{X: last, Y: last})(g, cfg)
	}
}
