package astar_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/builder"
)

// BenchmarkSearch_OpenGrid solves corner to corner on an empty M×M grid.
func BenchmarkSearch_OpenGrid(b *testing.B) {
	const M = 100
	g := builder.MustBuild(M, nil, builder.Corners())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = astar.Search(context.Background(), g)
	}
}

// BenchmarkSearch_Heuristic compares Manhattan with the uniform-cost baseline
// on clustered obstacles.
func BenchmarkSearch_Heuristic(b *testing.B) {
	const M = 100
	g := builder.MustBuild(M, []builder.BuilderOption{builder.WithSeed(7)},
		builder.Corners(), builder.Walks(40, 200, 0.6))

	for _, bc := range []struct {
		name string
		h    astar.Heuristic
	}{
		{"Manhattan", astar.Manhattan},
		{"Zero", astar.Zero},
	} {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = astar.Search(context.Background(), g, astar.WithHeuristic(bc.h))
			}
		})
	}
}
