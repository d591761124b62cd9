package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/scenario"
)

func TestParse_Full(t *testing.T) {
	src := `
size    = 6
start   = [0, last]
goal    = [last, 0]
blocked = [[1, 1], [2, 2]]

wall "divider" {
  from = [3, 0]
  to   = [3, min(3, last)]
}

random {
  density  = 0.1
  seed     = 42
  clusters = 2
  steps    = 5
}
`
	sc, err := scenario.Parse(context.Background(), []byte(src), "full.hcl")
	require.NoError(t, err)

	want := &scenario.Scenario{
		Size:    6,
		Start:   grid.Cell{X: 0, Y: 5},
		Goal:    grid.Cell{X: 5, Y: 0},
		Blocked: []grid.Cell{{X: 1, Y: 1}, {X: 2, Y: 2}},
		Walls:   []scenario.Wall{{Name: "divider", From: grid.Cell{X: 3, Y: 0}, To: grid.Cell{X: 3, Y: 3}}},
		Random:  &scenario.Random{Density: 0.1, Seed: 42, Clusters: 2, Steps: 5},
	}
	if diff := cmp.Diff(want, sc); diff != "" {
		t.Errorf("scenario mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Defaults(t *testing.T) {
	sc, err := scenario.Parse(context.Background(), []byte(""), "empty.hcl")
	require.NoError(t, err)
	assert.Equal(t, scenario.Default(scenario.DefaultSize), sc)
	assert.Equal(t, grid.Cell{X: 24, Y: 24}, sc.Goal)
}

func TestParse_UnseededRandom(t *testing.T) {
	sc, err := scenario.Parse(context.Background(), []byte(`random { density = 0.2 }`), "r.hcl")
	require.NoError(t, err)
	require.NotNil(t, sc.Random)
	assert.NotZero(t, sc.Random.Seed)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		is   error
	}{
		{"Syntax", `size = `, nil},
		{"UnknownAttribute", `colour = "red"`, nil},
		{"UnknownVariable", `start = [nope, 0]`, nil},
		{"WallMissingTo", `wall "w" { from = [0, 0] }`, nil},
		{"TwoRandomBlocks", "random { density = 0.1 }\nrandom { density = 0.2 }", nil},
		{"ZeroSize", `size = 0`, scenario.ErrInvalidScenario},
		{"OversizedGrid", `size = 46341`, scenario.ErrInvalidScenario},
		{"ShortCell", `start = [1]`, scenario.ErrInvalidScenario},
		{"LongBlocked", `blocked = [[1, 2, 3]]`, scenario.ErrInvalidScenario},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scenario.Parse(context.Background(), []byte(tc.src), tc.name+".hcl")
			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	src := `
size = 5
wall "w" {
  from = [2, 0]
  to   = [2, 3]
}
blocked = [[4, 0]]
`
	sc, err := scenario.Parse(context.Background(), []byte(src), "b.hcl")
	require.NoError(t, err)
	g, err := sc.Build()
	require.NoError(t, err)

	want := []string{
		"S.#.#",
		"..#..",
		"..#..",
		"..#..",
		"....G",
	}
	if diff := cmp.Diff(want, g.Snapshot().Rows()); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_RandomIsSeeded(t *testing.T) {
	src := []byte("size = 12\nrandom {\n density = 0.3\n seed = 3\n}\n")
	a, err := scenario.Parse(context.Background(), src, "a.hcl")
	require.NoError(t, err)
	b, err := scenario.Parse(context.Background(), src, "b.hcl")
	require.NoError(t, err)

	ga, err := a.Build()
	require.NoError(t, err)
	gb, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, ga.Snapshot().String(), gb.Snapshot().String())
	assert.Positive(t, ga.Snapshot().Count(grid.Blocked))
}

func TestBuild_Errors(t *testing.T) {
	out := scenario.Default(4)
	out.Goal = grid.Cell{X: 4, Y: 4}
	_, err := out.Build()
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	onStart := scenario.Default(4)
	onStart.Blocked = []grid.Cell{{X: 0, Y: 0}}
	_, err = onStart.Build()
	assert.ErrorIs(t, err, grid.ErrEndpointCell)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.hcl")
	require.NoError(t, os.WriteFile(path, []byte("size = 3\ngoal = [last, 0]\n"), 0o600))

	sc, err := scenario.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, sc.Size)
	assert.Equal(t, grid.Cell{X: 2, Y: 0}, sc.Goal)

	_, err = scenario.Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
