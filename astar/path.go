// SPDX-License-Identifier: MIT

package astar

import "github.com/katalvlaran/gridpath/grid"

// noPred marks a cell without predecessor in the parent table.
const noPred = -1

// reconstruct walks parent links from goal back to the cell with no
// predecessor and returns the route in start→goal order. size is the grid
// side length used to decode indices.
//
// The walk is bounded by len(parent). Predecessors are only ever assigned from
// closed cells with strictly lower cost, so a longer chain means a corrupted
// table; that is a programming error and panics.
func reconstruct(parent []int32, goal, size int) []grid.Cell {
	limit := len(parent)
	path := make([]grid.Cell, 0, 16)
	for at := int32(goal); at != noPred; at = parent[at] {
		if len(path) == limit {
			panic("astar: predecessor chain longer than grid; cycle in parent table")
		}
		path = append(path, grid.Cell{X: int(at) % size, Y: int(at) / size})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
