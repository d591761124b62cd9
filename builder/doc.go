// SPDX-License-Identifier: MIT

// Package builder assembles grid.Grid fixtures from composable constructors.
//
// What:
//
//   - Build(size, bopts, cons...) creates an N×N grid and applies constructors
//     in order; Apply does the same on an existing grid.
//   - Endpoints / Corners place the start and goal markers.
//   - Blocked, Wall and Enclose place deterministic obstacles.
//   - Scatter and Walks place random obstacles from a seeded RNG.
//
// Determinism:
//
//   - Same size, options, seed and constructor order ⇒ identical grid.
//   - Random constructors never block the start or goal; place endpoints
//     first so they are protected.
//
// Errors:
//
//   - ErrConstructFailed: nil grid or nil constructor.
//   - ErrInvalidDensity: density outside [0, 1].
//   - ErrNeedRand: random constructor without WithSeed/WithRand.
//   - ErrBadSegment: Wall endpoints not on one row or column.
//   - grid sentinels (ErrOutOfBounds, ErrCellBlocked, ...) wrapped with %w.
package builder
