// SPDX-License-Identifier: MIT

// Package session owns one grid.Grid and one astar.Engine and drives them
// from a stream of editing commands and a step clock.
//
// What:
//
//   - Commands: SetBlocked, SetStart, SetGoal, BeginSearch, CancelSearch.
//     Apply executes one synchronously and reports its error.
//   - Tick advances a running search by one visible expansion. Stale frontier
//     pops are drained inside the same tick.
//   - Run is the event loop: it applies commands from a channel, ticks once per
//     Interval while a search is running and publishes a Frame to the observer
//     after every change. Cancelling its context cancels the running search.
//
// Why:
//
//   - A single goroutine owns the engine; renderers receive immutable
//     snapshots through Frame and never touch the grid directly.
//   - Editing is rejected with grid.ErrSearchInProgress while a search holds
//     the grid, so cancelling is the only way to change the map mid-search.
//
// Observability:
//
//	Metrics    – Prometheus counters and histograms, registered on the
//	             Registerer passed to NewMetrics.
//	Tracing    – one OpenTelemetry span per search, from BeginSearch to its
//	             terminal state.
//	Logging    – commands at Debug, outcomes at Info, rejected commands at Warn.
//
// Defaults:
//
//	Interval = 50ms, the classic animation frame delay.
package session
