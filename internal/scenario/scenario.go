// SPDX-License-Identifier: MIT

// Package scenario loads grid layouts from HCL files.
//
// A scenario file looks like:
//
//	size    = 20
//	start   = [0, 0]
//	goal    = [last, last]
//	blocked = [[0, 1], [1, 1]]
//
//	wall "divider" {
//	  from = [3, 0]
//	  to   = [3, min(10, last)]
//	}
//
//	random {
//	  density  = 0.2
//	  seed     = 7
//	  clusters = 0
//	  steps    = 0
//	}
//
// size is read first; every other expression may then refer to size and
// last (size-1) and call min, max and abs. Every attribute and block is
// optional. start and goal default to the north-west and south-east corners.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/katalvlaran/gridpath/builder"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/ctxlog"
)

// DefaultSize is the grid side length used when a scenario omits size.
const DefaultSize = 25

// ErrInvalidScenario indicates a file that parses but describes no valid grid.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Scenario is a decoded layout, ready to Build.
type Scenario struct {
	Size    int
	Start   grid.Cell
	Goal    grid.Cell
	Blocked []grid.Cell
	Walls   []Wall
	Random  *Random
}

// Wall is a named axis-aligned obstacle segment.
type Wall struct {
	Name     string
	From, To grid.Cell
}

// Random describes generated obstacles. Clusters > 0 selects random walks,
// otherwise cells are scattered independently.
type Random struct {
	Density  float64
	Seed     int64
	Clusters int
	Steps    int
}

// Default returns an empty size×size scenario with corner endpoints.
func Default(size int) *Scenario {
	return &Scenario{
		Size:  size,
		Start: grid.Cell{X: 0, Y: 0},
		Goal:  grid.Cell{X: size - 1, Y: size - 1},
	}
}

type sizeSchema struct {
	Size   *int     `hcl:"size,optional"`
	Remain hcl.Body `hcl:",remain"`
}

type bodySchema struct {
	Start   []int         `hcl:"start,optional"`
	Goal    []int         `hcl:"goal,optional"`
	Blocked [][]int       `hcl:"blocked,optional"`
	Walls   []wallSchema  `hcl:"wall,block"`
	Random  *randomSchema `hcl:"random,block"`
}

type wallSchema struct {
	Name string `hcl:"name,label"`
	From []int  `hcl:"from"`
	To   []int  `hcl:"to"`
}

type randomSchema struct {
	Density  float64 `hcl:"density"`
	Seed     *int64  `hcl:"seed,optional"`
	Clusters int     `hcl:"clusters,optional"`
	Steps    int     `hcl:"steps,optional"`
}

// Load reads and decodes the scenario file at path.
func Load(ctx context.Context, path string) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading scenario.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, diags)
	}
	return decode(ctx, file.Body, path)
}

// Parse decodes a scenario from src; filename is used in diagnostics only.
func Parse(ctx context.Context, src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", filename, diags)
	}
	return decode(ctx, file.Body, filename)
}

func decode(ctx context.Context, body hcl.Body, name string) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx)

	var head sizeSchema
	if diags := gohcl.DecodeBody(body, nil, &head); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", name, diags)
	}
	size := DefaultSize
	if head.Size != nil {
		size = *head.Size
	}
	if size < 1 || size > grid.MaxSize {
		return nil, fmt.Errorf("%w: %s: size %d", ErrInvalidScenario, name, size)
	}

	var raw bodySchema
	if diags := gohcl.DecodeBody(head.Remain, evalContext(size), &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", name, diags)
	}

	sc := Default(size)
	var err error
	if raw.Start != nil {
		if sc.Start, err = toCell("start", raw.Start); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if raw.Goal != nil {
		if sc.Goal, err = toCell("goal", raw.Goal); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	for i, b := range raw.Blocked {
		c, err := toCell(fmt.Sprintf("blocked[%d]", i), b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		sc.Blocked = append(sc.Blocked, c)
	}
	for _, w := range raw.Walls {
		from, err := toCell("wall "+w.Name+" from", w.From)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		to, err := toCell("wall "+w.Name+" to", w.To)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		sc.Walls = append(sc.Walls, Wall{Name: w.Name, From: from, To: to})
	}
	if r := raw.Random; r != nil {
		sc.Random = &Random{Density: r.Density, Clusters: r.Clusters, Steps: r.Steps}
		if r.Seed != nil {
			sc.Random.Seed = *r.Seed
		} else {
			sc.Random.Seed = time.Now().UnixNano()
			logger.Info("Random obstacles without seed; using clock.", "seed", sc.Random.Seed)
		}
	}

	logger.Debug("Scenario decoded.",
		"name", name, "size", sc.Size, "blocked", len(sc.Blocked), "walls", len(sc.Walls), "random", sc.Random != nil)
	return sc, nil
}

func evalContext(size int) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"size": cty.NumberIntVal(int64(size)),
			"last": cty.NumberIntVal(int64(size - 1)),
		},
		Functions: map[string]function.Function{
			"min": stdlib.MinFunc,
			"max": stdlib.MaxFunc,
			"abs": stdlib.AbsoluteFunc,
		},
	}
}

func toCell(what string, v []int) (grid.Cell, error) {
	if len(v) != 2 {
		return grid.Cell{}, fmt.Errorf("%w: %s must be [x, y], got %d values", ErrInvalidScenario, what, len(v))
	}
	return grid.Cell{X: v[0], Y: v[1]}, nil
}

// Build creates the grid described by the scenario.
// Endpoints are placed first, so walls and random obstacles never cover them;
// an explicitly blocked endpoint is an error.
func (s *Scenario) Build() (*grid.Grid, error) {
	cons := []builder.Constructor{builder.Endpoints(s.Start, s.Goal)}
	if len(s.Blocked) > 0 {
		cons = append(cons, builder.Blocked(s.Blocked...))
	}
	for _, w := range s.Walls {
		cons = append(cons, builder.Wall(w.From, w.To))
	}
	var bopts []builder.BuilderOption
	if r := s.Random; r != nil {
		bopts = append(bopts, builder.WithSeed(r.Seed))
		if r.Clusters > 0 {
			cons = append(cons, builder.Walks(r.Clusters, r.Steps, r.Density))
		} else {
			cons = append(cons, builder.Scatter(r.Density))
		}
	}
	g, err := builder.Build(s.Size, bopts, cons...)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return g, nil
}
