// SPDX-License-Identifier: MIT

package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/grid"
)

// DefaultInterval is the delay between two animated steps.
const DefaultInterval = 50 * time.Millisecond

var (
	// ErrNilGrid indicates New was called without a grid.
	ErrNilGrid = errors.New("session: grid is nil")

	// ErrUnknownCommand indicates a Command with an unrecognised kind.
	ErrUnknownCommand = errors.New("session: unknown command")
)

// CommandKind identifies a Command.
type CommandKind int

const (
	CmdSetBlocked CommandKind = iota
	CmdSetStart
	CmdSetGoal
	CmdBeginSearch
	CmdCancelSearch
)

var commandNames = [...]string{"set_blocked", "set_start", "set_goal", "begin_search", "cancel_search"}

func (k CommandKind) String() string {
	if k >= 0 && int(k) < len(commandNames) {
		return commandNames[k]
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is one editing or control request.
// Cell is used by the cell commands, Blocked only by CmdSetBlocked.
type Command struct {
	Kind    CommandKind
	Cell    grid.Cell
	Blocked bool
}

// SetBlocked toggles the obstacle at c.
func SetBlocked(c grid.Cell, blocked bool) Command {
	return Command{Kind: CmdSetBlocked, Cell: c, Blocked: blocked}
}

// SetStart moves the start marker to c.
func SetStart(c grid.Cell) Command { return Command{Kind: CmdSetStart, Cell: c} }

// SetGoal moves the goal marker to c.
func SetGoal(c grid.Cell) Command { return Command{Kind: CmdSetGoal, Cell: c} }

// BeginSearch starts a search between the current markers.
func BeginSearch() Command { return Command{Kind: CmdBeginSearch} }

// CancelSearch abandons the running search.
func CancelSearch() Command { return Command{Kind: CmdCancelSearch} }

func (c Command) String() string {
	switch c.Kind {
	case CmdSetBlocked:
		return fmt.Sprintf("%s %v %t", c.Kind, c.Cell, c.Blocked)
	case CmdSetStart, CmdSetGoal:
		return fmt.Sprintf("%s %v", c.Kind, c.Cell)
	default:
		return c.Kind.String()
	}
}

// Frame is what an observer sees after each change.
// Signal is meaningful only when Stepped is true. Path is set once the
// search has Succeeded.
type Frame struct {
	Seq      uint64
	State    astar.State
	Stepped  bool
	Signal   astar.Signal
	Snapshot *grid.Snapshot
	Path     []grid.Cell
}

// Options configures a Session.
//
// Interval       – delay between ticks in Run; 0 steps as fast as possible.
// Logger         – receives command and outcome records.
// Observer       – called synchronously with every Frame.
// Metrics        – Prometheus collectors; unregistered ones by default.
// TracerProvider – source of the per-search span.
// Engine         – options forwarded to astar.NewEngine.
// AutoSolve      – re-run a full search after every accepted edit command.
type Options struct {
	Interval       time.Duration
	Logger         *slog.Logger
	Observer       func(Frame)
	Metrics        *Metrics
	TracerProvider trace.TracerProvider
	Engine         []astar.Option
	AutoSolve      bool
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns a 50ms interval, a discarding logger, no observer,
// unregistered metrics and the global tracer provider.
func DefaultOptions() Options {
	return Options{
		Interval:       DefaultInterval,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Observer:       func(Frame) {},
		Metrics:        NewMetrics(nil),
		TracerProvider: otel.GetTracerProvider(),
	}
}

// WithInterval sets the tick delay. Panics on a negative duration.
func WithInterval(d time.Duration) Option {
	if d < 0 {
		panic(fmt.Sprintf("session: WithInterval(%v): negative interval", d))
	}
	return func(o *Options) {
		o.Interval = d
	}
}

// WithLogger sets the session logger; it is also handed to the engine.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers fn to receive frames.
func WithObserver(fn func(Frame)) Option {
	return func(o *Options) {
		if fn != nil {
			o.Observer = fn
		}
	}
}

// WithMetrics records into m. Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("session: WithMetrics(nil)")
	}
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) {
		if tp != nil {
			o.TracerProvider = tp
		}
	}
}

// WithEngineOptions forwards opts to the engine.
func WithEngineOptions(opts ...astar.Option) Option {
	return func(o *Options) {
		o.Engine = append(o.Engine, opts...)
	}
}

// WithAutoSolve makes every accepted SetBlocked, SetStart or SetGoal run a
// complete search between the current markers, so the displayed route always
// matches the board. Edits made while no start or goal is set skip the search.
func WithAutoSolve() Option {
	return func(o *Options) {
		o.AutoSolve = true
	}
}
