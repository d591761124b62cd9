// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Snapshot is an immutable, point-in-time copy of every cell state.
// It is safe to hand to another goroutine.
type Snapshot struct {
	size   int
	states []CellState
}

// Snapshot copies the current state of every cell under a read lock.
// Complexity: O(N²).
func (g *Grid) Snapshot() *Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := &Snapshot{size: g.size, states: make([]CellState, len(g.marks))}
	for i := range s.states {
		s.states[i] = g.stateAt(g.Cell(i))
	}
	return s
}

// Size returns the side length of the captured grid.
func (s *Snapshot) Size() int {
	return s.size
}

// At returns the state of c, or Blocked when c is out of bounds.
func (s *Snapshot) At(c Cell) CellState {
	if c.X < 0 || c.X >= s.size || c.Y < 0 || c.Y >= s.size {
		return Blocked
	}
	return s.states[c.Y*s.size+c.X]
}

// Count returns how many cells are in state st.
func (s *Snapshot) Count(st CellState) int {
	n := 0
	for _, v := range s.states {
		if v == st {
			n++
		}
	}
	return n
}

// Rows renders the snapshot as one ASCII string per row, north first.
func (s *Snapshot) Rows() []string {
	rows := make([]string, s.size)
	var b strings.Builder
	for y := 0; y < s.size; y++ {
		b.Reset()
		for x := 0; x < s.size; x++ {
			b.WriteRune(s.states[y*s.size+x].Symbol())
		}
		rows[y] = b.String()
	}
	return rows
}

// String renders the snapshot as newline-separated rows.
func (s *Snapshot) String() string {
	return strings.Join(s.Rows(), "\n")
}

// Parse builds a grid from ASCII rows using the Symbol alphabet:
// '.' free, '#' blocked, 'S' start, 'G' goal. Annotation symbols ('o', '*')
// are accepted and read as free cells.
// Returns ErrNonSquare, ErrBadSymbol or ErrDuplicateEndpoint.
// Complexity: O(N²).
func Parse(rows ...string) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrNonSquare)
	}
	g, err := New(n)
	if err != nil {
		return nil, err
	}
	var start, goal []Cell
	for y, row := range rows {
		if utf8.RuneCountInString(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrNonSquare, y, utf8.RuneCountInString(row), n)
		}
		x := 0
		for _, r := range row {
			c := Cell{X: x, Y: y}
			switch r {
			case SymbolFree, SymbolVisited, SymbolPath:
			case SymbolBlocked:
				g.blocked[g.Index(c)] = true
			case SymbolStart:
				start = append(start, c)
			case SymbolGoal:
				goal = append(goal, c)
			default:
				return nil, fmt.Errorf("%w: %q at %v", ErrBadSymbol, r, c)
			}
			x++
		}
	}
	if len(start) > 1 || len(goal) > 1 {
		return nil, ErrDuplicateEndpoint
	}
	if len(start) == 1 {
		g.start, g.hasStart = start[0], true
	}
	if len(goal) == 1 {
		g.goal, g.hasGoal = goal[0], true
	}
	return g, nil
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return g
}
