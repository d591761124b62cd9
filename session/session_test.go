package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/builder"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/session"
)

func newSession(t *testing.T, size int, opts ...session.Option) *session.Session {
	t.Helper()
	s, err := session.New(builder.MustBuild(size, nil, builder.Corners()), opts...)
	require.NoError(t, err)
	return s
}

func tickToEnd(t *testing.T, s *session.Session) int {
	t.Helper()
	ticks := 0
	for s.EngineState() == astar.Running {
		sig, err := s.Tick()
		require.NoError(t, err)
		require.NotEqual(t, astar.SignalStale, sig)
		ticks++
	}
	return ticks
}

func TestNew_NilGrid(t *testing.T) {
	_, err := session.New(nil)
	assert.ErrorIs(t, err, session.ErrNilGrid)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { session.WithInterval(-time.Second) })
	assert.Panics(t, func() { session.WithMetrics(nil) })
	assert.NotPanics(t, func() { session.WithInterval(0) })
}

func TestApply_EditThenSearch(t *testing.T) {
	s := newSession(t, 5)
	require.NoError(t, s.Apply(session.SetStart(grid.Cell{X: 0, Y: 0})))
	require.NoError(t, s.Apply(session.SetGoal(grid.Cell{X: 0, Y: 2})))
	require.NoError(t, s.Apply(session.SetBlocked(grid.Cell{X: 0, Y: 1}, true)))

	st, err := s.CellState(grid.Cell{X: 0, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, grid.Blocked, st)

	require.NoError(t, s.Apply(session.BeginSearch()))
	assert.Equal(t, astar.Running, s.EngineState())
	tickToEnd(t, s)

	require.Equal(t, astar.Succeeded, s.EngineState())
	path, err := s.CurrentPath()
	require.NoError(t, err)
	assert.Len(t, path, 5)
	assert.Equal(t, 3, s.Snapshot().Count(grid.Path))
}

func TestApply_RejectedWhileRunning(t *testing.T) {
	s := newSession(t, 5)
	require.NoError(t, s.Apply(session.BeginSearch()))

	c := grid.Cell{X: 2, Y: 2}
	assert.ErrorIs(t, s.Apply(session.SetBlocked(c, true)), grid.ErrSearchInProgress)
	assert.ErrorIs(t, s.Apply(session.SetStart(c)), grid.ErrSearchInProgress)
	assert.ErrorIs(t, s.Apply(session.SetGoal(c)), grid.ErrSearchInProgress)
	assert.ErrorIs(t, s.Apply(session.BeginSearch()), grid.ErrSearchInProgress)
	st, _ := s.CellState(c)
	assert.NotEqual(t, grid.Blocked, st)

	require.NoError(t, s.Apply(session.CancelSearch()))
	assert.Equal(t, astar.Cancelled, s.EngineState())
	_, err := s.CurrentPath()
	assert.ErrorIs(t, err, astar.ErrNoPathRecorded)
	assert.NoError(t, s.Apply(session.SetBlocked(c, true)))
}

func TestApply_Errors(t *testing.T) {
	s := newSession(t, 3)
	assert.ErrorIs(t, s.Apply(session.CancelSearch()), astar.ErrNotRunning)
	assert.ErrorIs(t, s.Apply(session.Command{Kind: 42}), session.ErrUnknownCommand)
	assert.ErrorIs(t, s.Apply(session.SetBlocked(grid.Cell{X: 3, Y: 0}, true)), grid.ErrOutOfBounds)
	assert.ErrorIs(t, s.Apply(session.SetBlocked(grid.Cell{X: 0, Y: 0}, true)), grid.ErrEndpointCell)

	_, err := s.Tick()
	assert.ErrorIs(t, err, astar.ErrNotRunning)

	empty, err := session.New(mustGrid(t, 3))
	require.NoError(t, err)
	assert.ErrorIs(t, empty.Apply(session.BeginSearch()), astar.ErrInvalidEndpoints)
}

func mustGrid(t *testing.T, n int) *grid.Grid {
	t.Helper()
	g, err := grid.New(n)
	require.NoError(t, err)
	return g
}

func TestFrames(t *testing.T) {
	var frames []session.Frame
	s := newSession(t, 4, session.WithObserver(func(f session.Frame) { frames = append(frames, f) }))

	require.NoError(t, s.Apply(session.SetBlocked(grid.Cell{X: 1, Y: 1}, true)))
	require.Error(t, s.Apply(session.SetBlocked(grid.Cell{X: 9, Y: 9}, true)))
	require.NoError(t, s.Apply(session.BeginSearch()))
	ticks := tickToEnd(t, s)

	require.Len(t, frames, 2+ticks, "rejected commands publish nothing")
	for i, f := range frames {
		assert.Equal(t, uint64(i+1), f.Seq)
		require.NotNil(t, f.Snapshot)
	}
	assert.False(t, frames[0].Stepped)
	assert.Equal(t, grid.Blocked, frames[0].Snapshot.At(grid.Cell{X: 1, Y: 1}))

	last := frames[len(frames)-1]
	assert.True(t, last.Stepped)
	assert.Equal(t, astar.SignalFound, last.Signal)
	assert.Equal(t, astar.Succeeded, last.State)
	assert.Len(t, last.Path, 7)
	for _, f := range frames[:len(frames)-1] {
		assert.Nil(t, f.Path)
	}
}

func TestAutoSolve_ResolvesAfterEachEdit(t *testing.T) {
	var frames []session.Frame
	s := newSession(t, 3,
		session.WithAutoSolve(),
		session.WithObserver(func(f session.Frame) { frames = append(frames, f) }),
	)

	require.NoError(t, s.Apply(session.SetBlocked(grid.Cell{X: 1, Y: 0}, true)))
	require.Len(t, frames, 1, "one frame per command")
	assert.Equal(t, astar.Succeeded, s.EngineState())
	assert.Equal(t, astar.Succeeded, frames[0].State)
	assert.Equal(t, astar.SignalFound, frames[0].Signal)
	assert.Len(t, frames[0].Path, 5)
	st, _ := s.CellState(grid.Cell{X: 0, Y: 1})
	assert.Equal(t, grid.Path, st, "route detours below the new obstacle")

	// seal the start in
	require.NoError(t, s.Apply(session.SetBlocked(grid.Cell{X: 0, Y: 1}, true)))
	require.Len(t, frames, 2)
	assert.Equal(t, astar.Failed, frames[1].State)
	assert.Equal(t, astar.SignalNoPath, frames[1].Signal)
	assert.Nil(t, frames[1].Path)

	require.NoError(t, s.Apply(session.SetBlocked(grid.Cell{X: 0, Y: 1}, false)))
	require.Len(t, frames, 3)
	assert.Equal(t, astar.Succeeded, frames[2].State)
	assert.False(t, s.Grid().Searching(), "auto-solve leaves the grid editable")

	require.NoError(t, s.Apply(session.SetGoal(grid.Cell{X: 0, Y: 2})))
	path, err := s.CurrentPath()
	require.NoError(t, err)
	assert.Equal(t, []grid.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}, path)
}

func TestAutoSolve_SkippedWithoutEndpoints(t *testing.T) {
	var frames []session.Frame
	s, err := session.New(mustGrid(t, 3),
		session.WithAutoSolve(),
		session.WithObserver(func(f session.Frame) { frames = append(frames, f) }),
	)
	require.NoError(t, err)

	require.NoError(t, s.Apply(session.SetStart(grid.Cell{X: 0, Y: 0})))
	require.Len(t, frames, 1)
	assert.False(t, frames[0].Stepped)
	assert.Equal(t, astar.Idle, s.EngineState())

	require.NoError(t, s.Apply(session.SetGoal(grid.Cell{X: 2, Y: 0})))
	require.Len(t, frames, 2)
	assert.True(t, frames[1].Stepped)
	assert.Equal(t, astar.Succeeded, s.EngineState())
}

// TestTick_DrainsStale uses a heuristic that produces exactly one stale
// frontier entry on a 3×3 grid.
func TestTick_DrainsStale(t *testing.T) {
	weights := map[grid.Cell]int{
		{X: 1, Y: 0}: 5,
		{X: 2, Y: 0}: 3,
		{X: 1, Y: 2}: 10,
		{X: 2, Y: 2}: 10,
	}
	s := newSession(t, 3, session.WithEngineOptions(
		astar.WithHeuristic(func(a, _ grid.Cell) int { return weights[a] }),
	))
	require.NoError(t, s.Apply(session.BeginSearch()))
	ticks := tickToEnd(t, s)

	st := s.Stats()
	assert.Equal(t, 1, st.Stale)
	assert.Equal(t, st.Steps-st.Stale, ticks)
}

func TestRun_ImmediateMode(t *testing.T) {
	var last session.Frame
	s := newSession(t, 6,
		session.WithInterval(0),
		session.WithObserver(func(f session.Frame) { last = f }),
	)
	cmds := make(chan session.Command, 3)
	cmds <- session.SetBlocked(grid.Cell{X: 1, Y: 0}, true)
	cmds <- session.SetBlocked(grid.Cell{X: 9, Y: 9}, true) // rejected, loop continues
	cmds <- session.BeginSearch()
	close(cmds)

	require.NoError(t, s.Run(context.Background(), cmds))
	assert.Equal(t, astar.Succeeded, s.EngineState())
	assert.Equal(t, astar.Succeeded, last.State)
	assert.Len(t, last.Path, 11)
}

func TestRun_Animated(t *testing.T) {
	s := newSession(t, 4, session.WithInterval(time.Millisecond))
	require.NoError(t, s.Apply(session.BeginSearch()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Run(ctx, nil))
	assert.Equal(t, astar.Succeeded, s.EngineState())
}

func TestRun_NothingToDo(t *testing.T) {
	s := newSession(t, 4)
	assert.NoError(t, s.Run(context.Background(), nil))
	assert.Equal(t, astar.Idle, s.EngineState())
}

func TestRun_ContextCancelsSearch(t *testing.T) {
	s := newSession(t, 10, session.WithInterval(time.Hour))
	require.NoError(t, s.Apply(session.BeginSearch()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Run(ctx, make(chan session.Command))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, astar.Cancelled, s.EngineState())
	assert.False(t, s.Grid().Searching())
}

func TestRun_CancelCommand(t *testing.T) {
	cmds := make(chan session.Command)
	s := newSession(t, 10,
		session.WithInterval(time.Hour),
		session.WithObserver(func(f session.Frame) {
			if f.State == astar.Cancelled {
				close(cmds)
			}
		}),
	)
	require.NoError(t, s.Apply(session.BeginSearch()))

	go func() { cmds <- session.CancelSearch() }()
	require.NoError(t, s.Run(context.Background(), cmds))
	assert.Equal(t, astar.Cancelled, s.EngineState())
}

func TestTracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	s := newSession(t, 5, session.WithTracerProvider(tp))
	require.NoError(t, s.Apply(session.BeginSearch()))
	tickToEnd(t, s)
	require.NoError(t, s.Apply(session.BeginSearch()))
	require.NoError(t, s.Apply(session.CancelSearch()))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "session.Search", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("outcome", "succeeded"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("path_len", 8))
	assert.Contains(t, spans[1].Attributes(), attribute.String("outcome", "cancelled"))
	require.Len(t, spans[1].Events(), 1)
	assert.Equal(t, "cancelled", spans[1].Events()[0].Name)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "set_blocked (1,2) true", session.SetBlocked(grid.Cell{X: 1, Y: 2}, true).String())
	assert.Equal(t, "set_goal (0,0)", session.SetGoal(grid.Cell{}).String())
	assert.Equal(t, "begin_search", session.BeginSearch().String())
	assert.Equal(t, "CommandKind(42)", session.CommandKind(42).String())
}
