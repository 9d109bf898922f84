package router_test

import (
	"testing"

	"github.com/katalvlaran/tubelath/lattice"
	"github.com/katalvlaran/tubelath/router"
)

// BenchmarkFindPath measures a corner-to-corner route on an empty
// 40×40×10 lattice. The path is deleted after each run so every iteration
// searches the same free space.
// Complexity: O(N log N), N = lattice cells.
func BenchmarkFindPath(b *testing.B) {
	r, err := router.New(lattice.Extent{X: 40, Y: 40, Z: 10})
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}
	start, end := lattice.Coord{}, lattice.Coord{X: 40, Y: 40, Z: 5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.FindPath(start, end); err != nil {
			b.Fatalf("FindPath failed: %v", err)
		}
		if err := r.DeletePath(start, end); err != nil {
			b.Fatalf("DeletePath failed: %v", err)
		}
	}
}

// BenchmarkConnect_Bridge measures bridging two long parallel paths, which
// exercises the candidate ranking and both splits.
func BenchmarkConnect_Bridge(b *testing.B) {
	ext := lattice.Extent{X: 30, Y: 30, Z: 5}
	west := [2]lattice.Coord{{X: 0, Y: 0}, {X: 0, Y: 30}}
	east := [2]lattice.Coord{{X: 30, Y: 30}, {X: 30, Y: 0}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		r, err := router.New(ext)
		if err != nil {
			b.Fatalf("setup New failed: %v", err)
		}
		if _, err := r.Connect(west[0], west[1]); err != nil {
			b.Fatalf("setup west failed: %v", err)
		}
		if _, err := r.Connect(east[0], east[1]); err != nil {
			b.Fatalf("setup east failed: %v", err)
		}
		b.StartTimer()

		if _, err := r.Connect(west[1], east[0]); err != nil {
			b.Fatalf("bridge failed: %v", err)
		}
	}
}
