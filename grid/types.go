// SPDX-License-Identifier: MIT

package grid

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for grid operations.
var (
	// ErrInvalidSize indicates a side length outside [1, MaxSize].
	ErrInvalidSize = errors.New("grid: invalid size")
	// ErrOutOfBounds indicates a coordinate outside [0, N).
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrCellBlocked indicates an attempt to place start or goal on a blocked cell.
	ErrCellBlocked = errors.New("grid: cell is blocked")
	// ErrEndpointCell indicates an attempt to block the current start or goal.
	ErrEndpointCell = errors.New("grid: cell holds the start or goal marker")
	// ErrSearchInProgress indicates a mutation while a search holds the grid.
	ErrSearchInProgress = errors.New("grid: search in progress")
	// ErrNonSquare indicates Parse input whose rows do not form an N×N square.
	ErrNonSquare = errors.New("grid: rows must form a square")
	// ErrBadSymbol indicates an unknown rune in Parse input.
	ErrBadSymbol = errors.New("grid: unknown cell symbol")
	// ErrDuplicateEndpoint indicates more than one start or goal in Parse input.
	ErrDuplicateEndpoint = errors.New("grid: duplicate start or goal")
)

// Cell is a grid coordinate. Two cells are the same cell iff X and Y match.
type Cell struct {
	X, Y int
}

// String formats the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CellState is what a renderer sees for a single cell.
type CellState uint8

const (
	// Free is a traversable cell without annotation.
	Free CellState = iota
	// Blocked is an obstacle.
	Blocked
	// Start is the search origin.
	Start
	// Goal is the search target.
	Goal
	// Visited is a cell closed by the current or last search.
	Visited
	// Path is a cell on the last route found.
	Path
)

var stateNames = [...]string{"Free", "Blocked", "Start", "Goal", "Visited", "Path"}

// String returns the state name.
func (s CellState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// Symbol returns the ASCII rune used by Parse and Snapshot.String.
func (s CellState) Symbol() rune {
	switch s {
	case Blocked:
		return SymbolBlocked
	case Start:
		return SymbolStart
	case Goal:
		return SymbolGoal
	case Visited:
		return SymbolVisited
	case Path:
		return SymbolPath
	default:
		return SymbolFree
	}
}

// ASCII alphabet shared by Parse and Snapshot.String.
const (
	SymbolFree    = '.'
	SymbolBlocked = '#'
	SymbolStart   = 'S'
	SymbolGoal    = 'G'
	SymbolVisited = 'o'
	SymbolPath    = '*'
)

// mark is the annotation layer value of a cell.
type mark uint8

const (
	markNone mark = iota
	markVisited
	markPath
)

// Grid is a square board with a traversability layer and an annotation layer.
// The zero value is not usable; construct with New or Parse.
type Grid struct {
	mu sync.RWMutex

	size    int
	blocked []bool // traversability layer, row-major
	marks   []mark // annotation layer, row-major

	start, goal       Cell
	hasStart, hasGoal bool

	held  bool   // a search currently owns the grid
	lease uint64 // generation of the current or last hold
}

// MaxSize is the largest side length: N² cell indices must fit in an int32,
// the width of the search engine's predecessor table.
const MaxSize = 46340
