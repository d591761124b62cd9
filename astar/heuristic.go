// SPDX-License-Identifier: MIT

package astar

import "github.com/katalvlaran/gridpath/grid"

// Heuristic estimates the remaining cost from a to b.
type Heuristic func(a, b grid.Cell) int

// Manhattan returns |a.X-b.X| + |a.Y-b.Y|. Admissible and consistent for
// unit-cost 4-directional movement.
func Manhattan(a, b grid.Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Zero always returns 0, turning the engine into uniform-cost search.
func Zero(_, _ grid.Cell) int {
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
