// SPDX-License-Identifier: MIT

// Package app wires a scenario, a session and the process-level concerns
// (logging, metrics endpoint, output) into one runnable unit.
//
// Modes:
//
//	solve   – run the search to completion, print the final grid.
//	animate – step once per Interval, redrawing the grid after each step.
//	          Cancelling the context (SIGINT) abandons the search.
package app
