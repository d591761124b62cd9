// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"sync"
)

// New returns an all-free size×size grid with no start or goal.
// Returns ErrInvalidSize if size < 1 or size > MaxSize.
// Complexity: O(N²) time and memory.
func New(size int) (*Grid, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidSize, size, MaxSize)
	}
	n := size * size
	return &Grid{
		size:    size,
		blocked: make([]bool, n),
		marks:   make([]mark, n),
	}, nil
}

// Size returns the side length N.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether c lies within [0, N) on both axes.
// Complexity: O(1).
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// Index maps c to its row-major index Y*N + X. The caller checks bounds.
// Complexity: O(1).
func (g *Grid) Index(c Cell) int {
	return c.Y*g.size + c.X
}

// Cell converts a row-major index back to a coordinate.
// Complexity: O(1).
func (g *Grid) Cell(idx int) Cell {
	return Cell{X: idx % g.size, Y: idx / g.size}
}

func (g *Grid) checkBounds(c Cell) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v on %dx%d grid", ErrOutOfBounds, c, g.size, g.size)
	}
	return nil
}

// isEndpoint reports whether c holds the start or goal marker. Caller holds mu.
func (g *Grid) isEndpoint(c Cell) bool {
	return (g.hasStart && g.start == c) || (g.hasGoal && g.goal == c)
}

// SetBlocked sets or clears the obstacle at c.
// Returns ErrOutOfBounds, ErrSearchInProgress while a search holds the grid,
// or ErrEndpointCell when c is the current start or goal (blocking an
// endpoint is always rejected, unblocking one is a no-op).
func (g *Grid) SetBlocked(c Cell, blocked bool) error {
	if err := g.checkBounds(c); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return ErrSearchInProgress
	}
	if g.isEndpoint(c) {
		if !blocked {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrEndpointCell, c)
	}
	g.blocked[g.Index(c)] = blocked
	return nil
}

// SetStart moves the start marker to c.
// c may be the goal cell: the search is then trivial and CellState reports
// Start for that cell while Goal() still returns it.
// Returns ErrOutOfBounds, ErrCellBlocked or ErrSearchInProgress.
func (g *Grid) SetStart(c Cell) error {
	return g.setEndpoint(c, &g.start, &g.hasStart)
}

// SetGoal moves the goal marker to c.
// c may be the start cell; see SetStart for how that cell is reported.
// Returns ErrOutOfBounds, ErrCellBlocked or ErrSearchInProgress.
func (g *Grid) SetGoal(c Cell) error {
	return g.setEndpoint(c, &g.goal, &g.hasGoal)
}

func (g *Grid) setEndpoint(c Cell, dst *Cell, has *bool) error {
	if err := g.checkBounds(c); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return ErrSearchInProgress
	}
	if g.blocked[g.Index(c)] {
		return fmt.Errorf("%w: %v", ErrCellBlocked, c)
	}
	*dst, *has = c, true
	return nil
}

// ClearStart removes the start marker. Returns ErrSearchInProgress while held.
func (g *Grid) ClearStart() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return ErrSearchInProgress
	}
	g.hasStart = false
	return nil
}

// ClearGoal removes the goal marker. Returns ErrSearchInProgress while held.
func (g *Grid) ClearGoal() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return ErrSearchInProgress
	}
	g.hasGoal = false
	return nil
}

// Start returns the start marker and whether it is set.
func (g *Grid) Start() (Cell, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.start, g.hasStart
}

// Goal returns the goal marker and whether it is set.
func (g *Grid) Goal() (Cell, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.goal, g.hasGoal
}

// IsTraversable reports whether c is in bounds and not blocked.
// Complexity: O(1).
func (g *Grid) IsTraversable(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return !g.blocked[g.Index(c)]
}

// ResetAnnotations clears every Visited and Path mark.
// Complexity: O(N²).
func (g *Grid) ResetAnnotations() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.marks {
		g.marks[i] = markNone
	}
}

// MarkVisited annotates c as Visited. Idempotent; a Path mark is kept.
func (g *Grid) MarkVisited(c Cell) error {
	if err := g.checkBounds(c); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if i := g.Index(c); g.marks[i] == markNone {
		g.marks[i] = markVisited
	}
	return nil
}

// MarkPath annotates c as Path. Idempotent.
func (g *Grid) MarkPath(c Cell) error {
	if err := g.checkBounds(c); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.marks[g.Index(c)] = markPath
	return nil
}

// CellState returns the rendered state of c.
// Precedence: Blocked > Start > Goal > Path > Visited > Free.
func (g *Grid) CellState(c Cell) (CellState, error) {
	if err := g.checkBounds(c); err != nil {
		return Free, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stateAt(c), nil
}

// stateAt resolves the state of an in-bounds cell. Caller holds mu.
func (g *Grid) stateAt(c Cell) CellState {
	i := g.Index(c)
	switch {
	case g.blocked[i]:
		return Blocked
	case g.hasStart && g.start == c:
		return Start
	case g.hasGoal && g.goal == c:
		return Goal
	case g.marks[i] == markPath:
		return Path
	case g.marks[i] == markVisited:
		return Visited
	default:
		return Free
	}
}

// Acquire hands the grid to a search and returns the lease that ends it.
// While held, SetBlocked, SetStart, SetGoal, ClearStart and ClearGoal fail
// with ErrSearchInProgress; annotations stay writable.
//
// Only the returned release func can end the hold. It is idempotent, and a
// release from an earlier lease never ends a later one.
// Returns ErrSearchInProgress if another search already holds the grid.
func (g *Grid) Acquire() (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return nil, ErrSearchInProgress
	}
	g.held = true
	g.lease++
	lease := g.lease

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if g.lease == lease {
				g.held = false
			}
		})
	}, nil
}

// Searching reports whether a search currently holds the grid.
func (g *Grid) Searching() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.held
}
