// SPDX-License-Identifier: MIT

// Package astar implements A* shortest-path search on a grid.Grid with
// unit-cost, 4-directional movement.
//
// Overview:
//
//   - Engine is an explicit state machine (Idle → Running → Succeeded, Failed
//     or Cancelled). Begin seeds a search, Step processes exactly one frontier
//     element and returns control to the caller, Solve steps to completion,
//     Cancel abandons a running search.
//   - Search is the one-shot form: Begin + Solve + CurrentPath.
//   - Frontier is a binary min-heap on fCost with arrival-order tie-break.
//   - Manhattan is the default heuristic; it is admissible and consistent for
//     unit-cost 4-directional moves, so the first goal pop is optimal.
//
// Lazy deletion:
//
//   - A cell may sit in the frontier several times with decreasing gCost.
//     Stale entries are recognized at pop time via the closed set and reported
//     as SignalStale; no entry is ever removed eagerly.
//   - The engine keeps the best-known gCost per cell in a table separate from
//     the frontier and only pushes strictly cheaper candidates.
//
// Memory model:
//
//   - Closed set, best-cost and predecessor tables are flat N² slices indexed
//     by grid.Grid.Index. Predecessors are indices, never pointers, and every
//     table is dropped when the search reaches a terminal state.
//
// Neighbour order:
//
//   - North (y-1), South (y+1), East (x+1), West (x-1). Fixed, so that a given
//     grid always yields the same expansion sequence.
//
// Errors:
//
//   - ErrNilGrid: Begin or Search called with a nil grid.
//   - ErrInvalidEndpoints: start or goal unset, out of bounds or blocked.
//   - ErrNotRunning: Step, Solve or Cancel outside the Running state.
//   - ErrNoPathRecorded: CurrentPath outside the Succeeded state.
//   - grid.ErrSearchInProgress: Begin while this engine runs or another search
//     holds the grid.
//
// "No path" is not an error: it is the Failed terminal state.
//
// Complexity:
//
//   - Time:  O(N² log N²) worst case; each cell is closed at most once and
//     each closing pushes at most four entries.
//   - Space: O(N²) for the tables plus O(pushes) for the frontier.
package astar
