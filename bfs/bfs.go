// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridpath/grid"
)

// offsets lists moves in the same N, S, E, W order as the astar engine.
var offsets = [4]grid.Cell{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: -1, Y: 0}}

// queueItem pairs a cell with its BFS depth.
type queueItem struct {
	cell  grid.Cell
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	grid    *grid.Grid
	opts    BFSOptions
	ctx     context.Context
	queue   []queueItem
	visited []bool
	res     *BFSResult
}

// BFS runs breadth-first search on g starting from start,
// applying any number of functional Options.
// Returns ErrGridNil, ErrStartOutOfBounds or ErrStartBlocked for invalid input,
// ErrOptionViolation for bad options, ctx errors on cancellation,
// or any user-supplied hook error.
func BFS(g *grid.Grid, start grid.Cell, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// Validate start cell
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartOutOfBounds, start)
	}
	if !g.IsTraversable(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartBlocked, start)
	}

	// Prepare walker
	n := g.Size() * g.Size()
	w := &walker{
		grid:    g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make([]bool, n),
		res: &BFSResult{
			Order:  make([]grid.Cell, 0, n),
			Depth:  make(map[grid.Cell]int, n),
			Parent: make(map[grid.Cell]grid.Cell, n),
		},
	}

	// Seed queue with start cell (no parent)
	w.enqueue(start, 0, nil)
	// Main loop
	return w.res, w.loop()
}

// ShortestDistance is a convenience wrapper returning the move count from
// start to goal, or false when goal is unreachable.
func ShortestDistance(g *grid.Grid, start, goal grid.Cell) (int, bool, error) {
	res, err := BFS(g, start)
	if err != nil {
		return 0, false, err
	}
	d, ok := res.Distance(goal)
	return d, ok, nil
}

// enqueue marks c visited at depth d, calls OnEnqueue, records its parent,
// and adds it to the queue.
func (w *walker) enqueue(c grid.Cell, d int, parent *grid.Cell) {
	w.visited[w.grid.Index(c)] = true
	w.res.Depth[c] = d
	if parent != nil {
		w.res.Parent[c] = *parent
	}
	w.opts.OnEnqueue(c, d)
	w.queue = append(w.queue, queueItem{cell: c, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.cell, item.depth)
	return item
}

// visit records the cell in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.cell)
	if err := w.opts.OnVisit(item.cell, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %v: %w", item.cell, err)
	}
	return nil
}

// enqueueNeighbors applies traversability, filtering and MaxDepth,
// and enqueues each unseen neighbor.
func (w *walker) enqueueNeighbors(item queueItem) {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return
	}
	for _, d := range offsets {
		nb := grid.Cell{X: item.cell.X + d.X, Y: item.cell.Y + d.Y}
		if !w.grid.IsTraversable(nb) {
			continue
		}
		if !w.opts.FilterNeighbor(item.cell, nb) {
			continue
		}
		// first time seen?
		if !w.visited[w.grid.Index(nb)] {
			cur := item.cell
			w.enqueue(nb, nextDepth, &cur)
		}
	}
}
