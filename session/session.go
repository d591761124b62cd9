// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/grid"
)

const tracerName = "github.com/katalvlaran/gridpath/session"

// Session pairs a grid with the engine searching it.
// It is not safe for concurrent use; Run or a single caller drives it.
type Session struct {
	opts   Options
	grid   *grid.Grid
	engine *astar.Engine
	tracer trace.Tracer

	seq   uint64
	began time.Time
	span  trace.Span
}

// New returns a session over g. The engine inherits the session logger
// before any Engine options are applied.
func New(g *grid.Grid, opts ...Option) (*Session, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	engOpts := append([]astar.Option{astar.WithLogger(cfg.Logger)}, cfg.Engine...)
	return &Session{
		opts:   cfg,
		grid:   g,
		engine: astar.NewEngine(engOpts...),
		tracer: cfg.TracerProvider.Tracer(tracerName),
	}, nil
}

// Grid returns the grid the session edits and searches.
func (s *Session) Grid() *grid.Grid { return s.grid }

// EngineState returns the engine lifecycle state.
func (s *Session) EngineState() astar.State { return s.engine.State() }

// Stats returns the engine counters for the current or last search.
func (s *Session) Stats() astar.Stats { return s.engine.Stats() }

// CellState returns the display state of c.
func (s *Session) CellState(c grid.Cell) (grid.CellState, error) { return s.grid.CellState(c) }

// CurrentPath returns the last path found; see astar.Engine.CurrentPath.
func (s *Session) CurrentPath() ([]grid.Cell, error) { return s.engine.CurrentPath() }

// Snapshot returns an immutable copy of the grid.
func (s *Session) Snapshot() *grid.Snapshot { return s.grid.Snapshot() }

// Apply executes cmd with a background context.
func (s *Session) Apply(cmd Command) error {
	return s.ApplyContext(context.Background(), cmd)
}

// ApplyContext executes cmd; ctx parents the span a BeginSearch opens.
// Errors come from the grid (ErrOutOfBounds, ErrCellBlocked, ErrEndpointCell,
// ErrSearchInProgress), the engine (ErrInvalidEndpoints, ErrNotRunning) or
// ErrUnknownCommand. A rejected command changes nothing and publishes no frame.
//
// With WithAutoSolve, an accepted edit is followed by a complete search and
// the single published frame carries its outcome.
func (s *Session) ApplyContext(ctx context.Context, cmd Command) error {
	if err := s.apply(ctx, cmd); err != nil {
		s.opts.Metrics.commandErrors.WithLabelValues(cmd.Kind.String()).Inc()
		s.opts.Logger.Warn("command rejected", "command", cmd.String(), "error", err)
		return err
	}
	s.opts.Logger.Debug("command applied", "command", cmd.String())
	if s.opts.AutoSolve && cmd.Kind.edit() {
		if sig, ok := s.resolve(ctx); ok {
			s.publish(true, sig)
			return nil
		}
	}
	s.publish(false, astar.SignalExpanded)
	return nil
}

// edit reports whether k changes obstacles or endpoints.
func (k CommandKind) edit() bool {
	return k == CmdSetBlocked || k == CmdSetStart || k == CmdSetGoal
}

// resolve runs a whole search after an edit and returns its final signal.
// ok is false when no search could start, e.g. a marker is still unset.
func (s *Session) resolve(ctx context.Context) (sig astar.Signal, ok bool) {
	if err := s.begin(ctx); err != nil {
		s.opts.Logger.Debug("auto-solve skipped", "error", err)
		return sig, false
	}
	for {
		sig, err := s.engine.Step()
		if err != nil {
			// Unreachable: the engine is Running until Step reports a terminal signal.
			return sig, false
		}
		s.opts.Metrics.steps.WithLabelValues(sig.String()).Inc()
		if s.engine.State().Terminal() {
			s.finished()
			return sig, true
		}
	}
}

func (s *Session) apply(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CmdSetBlocked:
		return s.grid.SetBlocked(cmd.Cell, cmd.Blocked)
	case CmdSetStart:
		return s.grid.SetStart(cmd.Cell)
	case CmdSetGoal:
		return s.grid.SetGoal(cmd.Cell)
	case CmdBeginSearch:
		return s.begin(ctx)
	case CmdCancelSearch:
		if err := s.engine.Cancel(); err != nil {
			return err
		}
		s.finished()
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCommand, int(cmd.Kind))
	}
}

func (s *Session) begin(ctx context.Context) error {
	if err := s.engine.Begin(s.grid); err != nil {
		return err
	}
	start, goal := s.engine.Endpoints()
	_, s.span = s.tracer.Start(ctx, "session.Search", trace.WithAttributes(
		attribute.String("start", start.String()),
		attribute.String("goal", goal.String()),
		attribute.Int("size", s.grid.Size()),
	))
	s.began = time.Now()
	return nil
}

// Tick advances the running search to its next expansion or terminal state.
// Stale frontier pops are consumed within the same call, so the returned
// signal is never SignalStale. Returns astar.ErrNotRunning when idle.
func (s *Session) Tick() (astar.Signal, error) {
	for {
		sig, err := s.engine.Step()
		if err != nil {
			return sig, err
		}
		s.opts.Metrics.steps.WithLabelValues(sig.String()).Inc()
		if sig == astar.SignalStale {
			continue
		}
		if s.engine.State().Terminal() {
			s.finished()
		}
		s.publish(true, sig)
		return sig, nil
	}
}

// finished records the outcome of the search that just terminated.
func (s *Session) finished() {
	state := s.engine.State()
	outcome := strings.ToLower(state.String())
	elapsed := time.Since(s.began)
	st := s.engine.Stats()

	m := s.opts.Metrics
	m.searches.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())

	attrs := []any{"outcome", outcome, "steps", st.Steps, "expanded", st.Expanded, "elapsed", elapsed}
	moves := -1
	if path, err := s.engine.CurrentPath(); err == nil {
		moves = len(path) - 1
		m.pathLength.Observe(float64(moves))
		attrs = append(attrs, "path_len", moves)
	}
	s.opts.Logger.Info("search finished", attrs...)

	if s.span == nil {
		return
	}
	s.span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("steps", st.Steps),
		attribute.Int("expanded", st.Expanded),
		attribute.Int("stale", st.Stale),
	)
	switch state {
	case astar.Succeeded:
		s.span.SetAttributes(attribute.Int("path_len", moves))
		s.span.SetStatus(codes.Ok, "path found")
	case astar.Cancelled:
		s.span.AddEvent("cancelled")
	}
	s.span.End()
	s.span = nil
}

func (s *Session) publish(stepped bool, sig astar.Signal) {
	s.seq++
	f := Frame{
		Seq:      s.seq,
		State:    s.engine.State(),
		Stepped:  stepped,
		Signal:   sig,
		Snapshot: s.grid.Snapshot(),
	}
	if f.State == astar.Succeeded {
		f.Path, _ = s.engine.CurrentPath()
	}
	s.opts.Observer(f)
}
