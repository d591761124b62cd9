// SPDX-License-Identifier: MIT

package astar

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/gridpath/grid"
)

// Sentinel errors returned by the engine.
var (
	// ErrNilGrid indicates a nil *grid.Grid.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrInvalidEndpoints indicates that start or goal is unset, out of bounds
	// or blocked when a search begins.
	ErrInvalidEndpoints = errors.New("astar: invalid start or goal")

	// ErrNotRunning indicates Step, Solve or Cancel outside the Running state.
	ErrNotRunning = errors.New("astar: search is not running")

	// ErrNoPathRecorded indicates a path request outside the Succeeded state.
	ErrNoPathRecorded = errors.New("astar: no path recorded")
)

// State is the engine lifecycle state.
type State int

const (
	// Idle: no search has begun.
	Idle State = iota
	// Running: Step may be called.
	Running
	// Succeeded: the goal was closed; CurrentPath is available.
	Succeeded
	// Failed: the frontier ran dry, no path exists.
	Failed
	// Cancelled: the caller abandoned the search.
	Cancelled
)

var stateNames = [...]string{"Idle", "Running", "Succeeded", "Failed", "Cancelled"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether s is Succeeded, Failed or Cancelled.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed || s == Cancelled
}

// Signal tells the caller what a single Step did.
type Signal int

const (
	// SignalExpanded: a cell was closed and its neighbours relaxed; call Step again.
	SignalExpanded Signal = iota
	// SignalStale: a stale frontier entry was discarded; call Step again.
	SignalStale
	// SignalFound: the goal was closed; the engine is Succeeded.
	SignalFound
	// SignalNoPath: the frontier is empty; the engine is Failed.
	SignalNoPath
)

var signalNames = [...]string{"expanded", "stale", "found", "no_path"}

func (s Signal) String() string {
	if s >= 0 && int(s) < len(signalNames) {
		return signalNames[s]
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

// SearchNode is one frontier entry. Pred is a coordinate reference, valid
// only when HasPred is true (the start node has none).
type SearchNode struct {
	Cell    grid.Cell
	G       int // accumulated cost from start
	F       int // G + heuristic(Cell, goal)
	Pred    grid.Cell
	HasPred bool
}

// Stats counts work done by the current or last search.
type Stats struct {
	Steps    int // Step calls accepted while Running
	Expanded int // cells closed
	Pushed   int // frontier insertions, including the start node
	Stale    int // stale entries discarded at pop time
}

// Result is the outcome of a one-shot Search.
type Result struct {
	Path     []grid.Cell // start→goal inclusive; nil when Found is false
	Cost     int         // number of moves, len(Path)-1
	Expanded int
	Found    bool
}

// Options configures an Engine.
//
// Heuristic – remaining-cost estimate; must be admissible and consistent.
// Logger    – receives Debug records on state transitions.
// OnExpand  – called after a cell is closed, with its gCost and fCost.
// OnPush    – called for every frontier insertion.
// MarkPath  – write Path annotations into the grid on success.
type Options struct {
	Heuristic Heuristic
	Logger    *slog.Logger
	OnExpand  func(c grid.Cell, g, f int)
	OnPush    func(n SearchNode)
	MarkPath  bool
}

// Option is a functional option for NewEngine and Search.
type Option func(*Options)

// DefaultOptions returns Manhattan heuristic, a discarding logger, no-op
// hooks and path marking enabled.
func DefaultOptions() Options {
	return Options{
		Heuristic: Manhattan,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnExpand:  func(grid.Cell, int, int) {},
		OnPush:    func(SearchNode) {},
		MarkPath:  true,
	}
}

// WithHeuristic replaces the Manhattan heuristic. Panics on nil.
func WithHeuristic(h Heuristic) Option {
	if h == nil {
		panic("astar: WithHeuristic(nil)")
	}
	return func(o *Options) {
		o.Heuristic = h
	}
}

// WithLogger routes engine Debug logs to l. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnExpand registers a callback run after each cell is closed.
func WithOnExpand(fn func(c grid.Cell, g, f int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnPush registers a callback run for each frontier insertion.
func WithOnPush(fn func(n SearchNode)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPush = fn
		}
	}
}

// WithoutPathMarks leaves the grid's Path layer untouched on success.
func WithoutPathMarks() Option {
	return func(o *Options) {
		o.MarkPath = false
	}
}
