// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a grid.Grid, returning
// move-count distances, parent links and visit order.
//
// What
//
//   - Explore traversable cells in non-decreasing distance from a start cell.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: map from cell → moves from start
//   - Parent: map from cell → its predecessor in the BFS tree
//   - Hooks at three stages: OnEnqueue, OnDequeue, OnVisit (may abort).
//   - WithFilterNeighbor prunes individual moves; WithMaxDepth bounds depth.
//
// Why
//
//   - Exact unit-cost distances in O(N²) with no heuristic involved, which
//     makes it the reference that A* results are checked against.
//   - Reachability and flood-fill queries over the same grid model.
//
// Determinism
//
//	Neighbours are enqueued in the fixed order N, S, E, W, so the visit
//	sequence is reproducible.
//
// Complexity (N = grid side)
//
//   - Time:   O(N²)
//   - Memory: O(N²) for queue, Depth and Parent.
//
// Usage
//
//	res, err := bfs.BFS(g, start, bfs.WithMaxDepth(10))
//	d, ok := res.Distance(goal)
//
//	// or just the number:
//	d, reachable, err := bfs.ShortestDistance(g, start, goal)
//
// Options
//
//   - DefaultOptions(): background Context, no-op hooks, no depth limit, no filtering.
//   - WithContext(ctx):        cancellation, checked once per dequeue.
//   - WithMaxDepth(d):         stop exploring beyond depth d (>0).
//   - WithFilterNeighbor(fn):  skip moves for which fn(curr, neighbor) == false.
//   - WithOnEnqueue(fn), WithOnDequeue(fn), WithOnVisit(fn).
//
// Errors
//
//   - ErrGridNil           if the grid pointer is nil.
//   - ErrStartOutOfBounds  if the start cell lies outside the grid.
//   - ErrStartBlocked      if the start cell is an obstacle.
//   - ErrOptionViolation   if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNoPath            from PathTo when the destination was not reached.
//   - Wrapped hook errors from OnVisit and context errors.
package bfs
