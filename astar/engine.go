// SPDX-License-Identifier: MIT

package astar

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/gridpath/grid"
)

// unreached is the best-cost sentinel for cells not yet discovered.
const unreached = math.MaxInt

// directions lists neighbour offsets in expansion order: N, S, E, W.
var directions = [4]grid.Cell{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
}

// Engine runs one A* search at a time over a grid.Grid.
// It is not safe for concurrent use; a single caller drives it.
type Engine struct {
	opts  Options
	state State

	grid        *grid.Grid
	release     func() // ends this engine's hold on grid; nil outside Running
	start, goal grid.Cell

	// Per-search tables, indexed by grid.Grid.Index; nil outside Running.
	frontier *Frontier
	closed   []bool
	best     []int
	parent   []int32

	path  []grid.Cell // set on Succeeded
	stats Stats
}

// NewEngine returns an Idle engine configured by opts.
func NewEngine(opts ...Option) *Engine {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{opts: cfg, state: Idle}
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Stats returns counters for the current or last search.
func (e *Engine) Stats() Stats { return e.stats }

// FrontierLen returns the number of frontier entries, stale ones included.
// Zero outside Running.
func (e *Engine) FrontierLen() int {
	if e.frontier == nil {
		return 0
	}
	return e.frontier.Len()
}

// Endpoints returns the start and goal of the current or last search.
func (e *Engine) Endpoints() (start, goal grid.Cell) { return e.start, e.goal }

// Begin starts a new search on g using its start and goal markers.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. the engine must not be Running (grid.ErrSearchInProgress).
//  3. g must not be held by another search (grid.ErrSearchInProgress).
//  4. start and goal must be set and traversable (ErrInvalidEndpoints).
//
// On success the grid is held until the search terminates, its annotations are
// cleared, fresh tables are allocated and the frontier holds the start node.
// Only this engine can end the hold, by reaching a terminal state.
//
// Complexity:
//
//   - Time:  O(N²) to clear annotations and initialise the tables.
//   - Space: O(N²) for closed, best and parent.
func (e *Engine) Begin(g *grid.Grid) error {
	// 1) Validate the grid and the engine state.
	if g == nil {
		return ErrNilGrid
	}
	if e.state == Running {
		return fmt.Errorf("astar: engine already running: %w", grid.ErrSearchInProgress)
	}

	// 2) Take the grid. The release func is the only way to give it back.
	release, err := g.Acquire()
	if err != nil {
		return err
	}
	start, goal, err := endpoints(g)
	if err != nil {
		release()
		return err
	}
	g.ResetAnnotations()

	// 3) Allocate per-search tables: every cell unreached, no predecessor.
	n := g.Size() * g.Size()
	e.grid, e.release, e.start, e.goal = g, release, start, goal
	e.frontier = NewFrontier()
	e.closed = make([]bool, n)
	e.best = make([]int, n)
	e.parent = make([]int32, n)
	for i := 0; i < n; i++ {
		e.best[i] = unreached
		e.parent[i] = noPred
	}
	e.path = nil
	e.stats = Stats{}

	// 4) Seed the frontier with the start node at g=0.
	e.best[g.Index(start)] = 0
	e.push(SearchNode{Cell: start, G: 0, F: e.opts.Heuristic(start, goal)})
	e.state = Running

	e.opts.Logger.Debug("search started",
		"start", start.String(), "goal", goal.String(), "size", g.Size())
	return nil
}

// endpoints validates and returns the grid's start and goal. Caller holds g.
func endpoints(g *grid.Grid) (grid.Cell, grid.Cell, error) {
	start, ok := g.Start()
	if !ok {
		return start, start, fmt.Errorf("%w: start not set", ErrInvalidEndpoints)
	}
	goal, ok := g.Goal()
	if !ok {
		return start, goal, fmt.Errorf("%w: goal not set", ErrInvalidEndpoints)
	}
	if !g.IsTraversable(start) {
		return start, goal, fmt.Errorf("%w: start %v out of bounds or blocked", ErrInvalidEndpoints, start)
	}
	if !g.IsTraversable(goal) {
		return start, goal, fmt.Errorf("%w: goal %v out of bounds or blocked", ErrInvalidEndpoints, goal)
	}
	return start, goal, nil
}

// Step processes one frontier element and reports what happened.
//
//   - SignalNoPath: the frontier was empty; the engine is now Failed.
//   - SignalStale:  the popped cell was already closed; nothing else changed.
//   - SignalFound:  the goal was closed; the engine is now Succeeded.
//   - SignalExpanded: a cell was closed and its neighbours relaxed.
//
// Each cell is closed at most once. A popped entry whose cell is already
// closed is a leftover from an earlier, costlier push (lazy deletion).
//
// Complexity: O(log F) for the pop plus up to four O(log F) pushes, where F
// is the frontier length.
//
// Errors:
//
//   - ErrNotRunning: the engine is not Running.
func (e *Engine) Step() (Signal, error) {
	if e.state != Running {
		return SignalNoPath, fmt.Errorf("%w: state %s", ErrNotRunning, e.state)
	}
	e.stats.Steps++

	// 1) Pop the lowest-f node. An empty frontier means no route exists.
	cur, ok := e.frontier.PopMin()
	if !ok {
		e.finish(Failed)
		return SignalNoPath, nil
	}

	// 2) Skip stale entries for cells already closed.
	ci := e.grid.Index(cur.Cell)
	if e.closed[ci] {
		e.stats.Stale++
		return SignalStale, nil
	}

	// 3) Close the cell. Its g is now final.
	e.closed[ci] = true
	e.stats.Expanded++
	if cur.Cell != e.start && cur.Cell != e.goal {
		_ = e.grid.MarkVisited(cur.Cell) // in bounds: only in-bounds cells are pushed
	}
	e.opts.OnExpand(cur.Cell, cur.G, cur.F)

	// 4) Goal closed: the recorded predecessors form a shortest route.
	if cur.Cell == e.goal {
		e.finish(Succeeded)
		return SignalFound, nil
	}

	// 5) Relax the open, traversable neighbours in N, S, E, W order.
	for _, d := range directions {
		nb := grid.Cell{X: cur.Cell.X + d.X, Y: cur.Cell.Y + d.Y}
		if !e.grid.IsTraversable(nb) {
			continue
		}
		ni := e.grid.Index(nb)
		if e.closed[ni] {
			continue
		}
		tentative := cur.G + 1
		if tentative >= e.best[ni] {
			continue
		}
		e.best[ni] = tentative
		e.parent[ni] = int32(ci) // fits: size is capped at grid.MaxSize
		e.push(SearchNode{
			Cell:    nb,
			G:       tentative,
			F:       tentative + e.opts.Heuristic(nb, e.goal),
			Pred:    cur.Cell,
			HasPred: true,
		})
	}
	return SignalExpanded, nil
}

func (e *Engine) push(n SearchNode) {
	e.frontier.Push(n)
	e.stats.Pushed++
	e.opts.OnPush(n)
}

// Solve calls Step until the search terminates and returns the final state.
// It is equivalent to calling Step in a loop. ctx is checked between steps;
// when it is done the search is cancelled and ctx.Err() returned.
//
// Complexity:
//
//   - Time:  O(N² log N²); each cell is closed once and pushed at most four times.
//   - Space: O(N²) for the tables and the frontier.
//
// Errors:
//
//   - ErrNotRunning: the engine is not Running.
//   - ctx.Err(): ctx was done before the search terminated; the engine is Cancelled.
func (e *Engine) Solve(ctx context.Context) (State, error) {
	if e.state != Running {
		return e.state, fmt.Errorf("%w: state %s", ErrNotRunning, e.state)
	}
	for e.state == Running {
		// 1) Honour cancellation between steps, never inside one.
		select {
		case <-ctx.Done():
			_ = e.Cancel()
			return e.state, ctx.Err()
		default:
		}
		// 2) Advance by one frontier element.
		if _, err := e.Step(); err != nil {
			return e.state, err
		}
	}
	return e.state, nil
}

// Cancel abandons a running search. Visited marks already written stay in
// the grid. Returns ErrNotRunning outside the Running state.
func (e *Engine) Cancel() error {
	if e.state != Running {
		return fmt.Errorf("%w: state %s", ErrNotRunning, e.state)
	}
	e.finish(Cancelled)
	return nil
}

// CurrentPath returns the route from start to goal, both inclusive.
// Each call returns a fresh copy of the same sequence.
// Returns ErrNoPathRecorded outside the Succeeded state.
func (e *Engine) CurrentPath() ([]grid.Cell, error) {
	if e.state != Succeeded {
		return nil, fmt.Errorf("%w: state %s", ErrNoPathRecorded, e.state)
	}
	out := make([]grid.Cell, len(e.path))
	copy(out, e.path)
	return out, nil
}

// finish moves to a terminal state, records the path on success, drops the
// per-search tables and releases the grid.
func (e *Engine) finish(s State) {
	// 1) Record the outcome; on success walk the parent chain back from goal.
	e.state = s
	if s == Succeeded {
		e.path = reconstruct(e.parent, e.grid.Index(e.goal), e.grid.Size())
		if e.opts.MarkPath {
			for _, c := range e.path {
				_ = e.grid.MarkPath(c)
			}
		}
	}

	// 2) Drop the tables and end this engine's hold on the grid.
	e.frontier, e.closed, e.best, e.parent = nil, nil, nil, nil
	e.release()
	e.release = nil

	e.opts.Logger.Debug("search finished",
		"state", s.String(),
		"steps", e.stats.Steps,
		"expanded", e.stats.Expanded,
		"pushed", e.stats.Pushed,
		"stale", e.stats.Stale,
		"path_len", len(e.path))
}

// Search runs a complete search on g and returns its outcome.
// A missing path yields Found=false and a nil error. Expanded is set even
// when ctx ends the search early.
//
// Complexity: as Solve, O(N² log N²) time and O(N²) space.
//
// Errors:
//
//   - ErrNilGrid, ErrInvalidEndpoints, grid.ErrSearchInProgress: from Begin.
//   - ctx.Err(): the search was cancelled.
func Search(ctx context.Context, g *grid.Grid, opts ...Option) (Result, error) {
	e := NewEngine(opts...)
	if err := e.Begin(g); err != nil {
		return Result{}, err
	}
	state, err := e.Solve(ctx)
	res := Result{Expanded: e.stats.Expanded}
	if err != nil {
		return res, err
	}
	if state == Succeeded {
		res.Path, _ = e.CurrentPath()
		res.Cost = len(res.Path) - 1
		res.Found = true
	}
	return res, nil
}
