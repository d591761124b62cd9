// SPDX-License-Identifier: MIT

// Package grid models a square N×N board of unit cells for 4-directional
// shortest-path search.
//
// What:
//
//   - Grid owns two independent layers over the same N×N coordinate space:
//     traversability (free or blocked) and search annotations (visited, path).
//   - At most one Start and one Goal marker exist; both are always traversable.
//   - Snapshot produces an immutable copy of every cell state for renderers.
//   - Parse builds a Grid from ASCII rows, Snapshot.String renders one back.
//
// Why:
//
//   - The traversability layer is edited by the caller between searches; the
//     annotation layer is written by the search engine while it runs.
//   - A search acquires the Grid and gets back a release func; while held,
//     obstacle and endpoint edits fail with ErrSearchInProgress so the
//     heuristic stays consistent with the board the search started on. Only
//     the holder's release func ends the hold.
//
// Coordinates:
//
//   - Cell{X, Y} with 0 ≤ X, Y < N. X grows east, Y grows south.
//   - Storage is row-major: index = Y*N + X.
//   - N is capped at MaxSize so every index fits in an int32.
//
// Concurrency:
//
//   - Every method is safe for concurrent use; state is guarded by a
//     sync.RWMutex. Renderers should prefer Snapshot over per-cell queries to
//     observe a consistent frame.
//
// Errors:
//
//   - ErrInvalidSize: side length outside [1, MaxSize].
//   - ErrOutOfBounds: coordinate outside [0, N).
//   - ErrCellBlocked: start or goal placed on a blocked cell.
//   - ErrEndpointCell: obstacle placed on the current start or goal.
//   - ErrSearchInProgress: mutation while a search holds the grid.
//   - ErrNonSquare, ErrBadSymbol, ErrDuplicateEndpoint: Parse input errors.
package grid
