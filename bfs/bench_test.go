package bfs_test

import (
	"testing"

	"github.com/katalvlaran/gridpath/bfs"
	"github.com/katalvlaran/gridpath/builder"
	"github.com/katalvlaran/gridpath/grid"
)

// BenchmarkBFS_OpenGrid floods an empty M×M grid from a corner.
func BenchmarkBFS_OpenGrid(b *testing.B) {
	const M = 100
	g := builder.MustBuild(M, nil, builder.Corners())

	b.ReportAllocs()
	b.SetBytes(int64(M * M))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(g, grid.Cell{})
	}
}

// BenchmarkBFS_Scattered floods a grid with 30% random obstacles.
func BenchmarkBFS_Scattered(b *testing.B) {
	const M = 100
	g := builder.MustBuild(M, []builder.BuilderOption{builder.WithSeed(42)},
		builder.Corners(), builder.Scatter(0.3))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(g, grid.Cell{})
	}
}

// BenchmarkBFS_HookOverhead compares BFS with and without an expensive OnVisit hook.
func BenchmarkBFS_HookOverhead(b *testing.B) {
	const M = 50
	g := builder.MustBuild(M, nil, builder.Corners())

	b.Run("NoHook", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = bfs.BFS(g, grid.Cell{})
		}
	})

	b.Run("HeavyVisitHook", func(b *testing.B) {
		heavy := func(_ grid.Cell, _ int) error {
			sum := 0
			for i := 0; i < 100; i++ {
				sum += i
			}
			_ = sum
			return nil
		}
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = bfs.BFS(g, grid.Cell{}, bfs.WithOnVisit(heavy))
		}
	})
}
