package lattice_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tubelath/lattice"
)

//----------------------------------------------------------------------------//
// New and InBounds Tests
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects negative extents.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name   string
		extent lattice.Extent
	}{
		{"NegativeX", lattice.Extent{X: -1, Y: 2, Z: 2}},
		{"NegativeY", lattice.Extent{X: 2, Y: -1, Z: 2}},
		{"NegativeZ", lattice.Extent{X: 2, Y: 2, Z: -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lattice.New(tc.extent)
			if !errors.Is(err, lattice.ErrBadExtent) {
				t.Errorf("New(%+v) error = %v; want %v", tc.extent, err, lattice.ErrBadExtent)
			}
		})
	}
}

// TestNew_SingleCell checks the degenerate 1×1×1 lattice.
func TestNew_SingleCell(t *testing.T) {
	l, err := lattice.New(lattice.Extent{})
	require.NoError(t, err)
	require.Equal(t, 1, l.Len())
	require.Empty(t, l.Node(0).AllNeighbors())
}

// TestInBounds checks inclusive bounds on a 3×2×1 extent.
func TestInBounds(t *testing.T) {
	l, err := lattice.New(lattice.Extent{X: 3, Y: 2, Z: 1})
	require.NoError(t, err)
	require.Equal(t, 4*3*2, l.Len())

	valid := []lattice.Coord{{0, 0, 0}, {3, 2, 1}, {1, 1, 0}}
	for _, c := range valid {
		if !l.InBounds(c) {
			t.Errorf("InBounds(%v)=false; want true", c)
		}
	}
	invalid := []lattice.Coord{{-1, 0, 0}, {4, 0, 0}, {0, 3, 0}, {0, 0, 2}, {0, 0, -1}}
	for _, c := range invalid {
		if l.InBounds(c) {
			t.Errorf("InBounds(%v)=true; want false", c)
		}
		if _, err := l.Index(c); !errors.Is(err, lattice.ErrOutOfBounds) {
			t.Errorf("Index(%v) error = %v; want %v", c, err, lattice.ErrOutOfBounds)
		}
	}
}

//----------------------------------------------------------------------------//
// Index / Coord round trip and neighbor topology
//----------------------------------------------------------------------------//

// TestIndexRoundTrip verifies that every slot maps back to its coordinate.
func TestIndexRoundTrip(t *testing.T) {
	l, err := lattice.New(lattice.Extent{X: 2, Y: 3, Z: 4})
	require.NoError(t, err)
	seen := make(map[int]bool, l.Len())
	for x := 0; x <= 2; x++ {
		for y := 0; y <= 3; y++ {
			for z := 0; z <= 4; z++ {
				c := lattice.Coord{X: x, Y: y, Z: z}
				idx, err := l.Index(c)
				require.NoError(t, err)
				require.False(t, seen[idx], "slot %d reused", idx)
				seen[idx] = true
				require.Equal(t, c, l.Coord(idx))
			}
		}
	}
	require.Len(t, seen, l.Len())
}

// TestNeighborCounts checks corner, edge, face and interior cells.
func TestNeighborCounts(t *testing.T) {
	l, err := lattice.New(lattice.Extent{X: 2, Y: 2, Z: 2})
	require.NoError(t, err)
	cases := []struct {
		c    lattice.Coord
		want int
	}{
		{lattice.Coord{X: 0, Y: 0, Z: 0}, 7},
		{lattice.Coord{X: 1, Y: 0, Z: 0}, 11},
		{lattice.Coord{X: 1, Y: 1, Z: 0}, 17},
		{lattice.Coord{X: 1, Y: 1, Z: 1}, 26},
	}
	for _, tc := range cases {
		n, err := l.At(tc.c)
		require.NoError(t, err)
		require.Len(t, n.AllNeighbors(), tc.want, "cell %v", tc.c)
		for _, idx := range n.AllNeighbors() {
			require.Equal(t, 1, lattice.Chebyshev(tc.c, l.Coord(idx)))
		}
	}
}

//----------------------------------------------------------------------------//
// Blocking
//----------------------------------------------------------------------------//

// TestBlock_Symmetric verifies that Block unlinks both directions.
func TestBlock_Symmetric(t *testing.T) {
	l, err := lattice.New(lattice.Extent{X: 2, Y: 2, Z: 2})
	require.NoError(t, err)
	a, b := lattice.Coord{X: 0, Y: 1, Z: 0}, lattice.Coord{X: 1, Y: 0, Z: 0}
	require.NoError(t, l.Block(a, b))
	require.NoError(t, l.Block(b, a), "re-blocking is a no-op")

	na, _ := l.At(a)
	nb, _ := l.At(b)
	ia, _ := l.Index(a)
	ib, _ := l.Index(b)
	require.True(t, na.IsBlocked(ib))
	require.True(t, nb.IsBlocked(ia))
	require.NotContains(t, na.Neighbors(), ib)
	require.NotContains(t, nb.Neighbors(), ia)
	require.Len(t, na.Neighbors(), len(na.AllNeighbors())-1)
	require.Equal(t, []int{ib}, na.Blocked())
}

// TestBlock_Errors verifies bounds and adjacency checks.
func TestBlock_Errors(t *testing.T) {
	l, err := lattice.New(lattice.Extent{X: 2, Y: 2, Z: 2})
	require.NoError(t, err)
	err = l.Block(lattice.Coord{X: 0, Y: 0, Z: 0}, lattice.Coord{X: 2, Y: 0, Z: 0})
	require.ErrorIs(t, err, lattice.ErrNotNeighbor)
	err = l.Block(lattice.Coord{X: 0, Y: 0, Z: 0}, lattice.Coord{X: -1, Y: 0, Z: 0})
	require.ErrorIs(t, err, lattice.ErrOutOfBounds)
}

// TestClear verifies that Clear drops Visited and blocked pairs.
func TestClear(t *testing.T) {
	l, err := lattice.New(lattice.Extent{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	a, b := lattice.Coord{X: 0, Y: 0, Z: 0}, lattice.Coord{X: 1, Y: 1, Z: 1}
	require.NoError(t, l.Block(a, b))
	na, _ := l.At(a)
	na.Visited = true

	l.Clear()
	require.False(t, na.Visited)
	require.Empty(t, na.Blocked())
	require.Len(t, na.Neighbors(), 7)
}

//----------------------------------------------------------------------------//
// Scratch
//----------------------------------------------------------------------------//

// TestScratch_ResetAndTrace checks defaults and predecessor reconstruction.
func TestScratch_ResetAndTrace(t *testing.T) {
	l, err := lattice.New(lattice.Extent{X: 3})
	require.NoError(t, err)
	s := lattice.NewScratch(l)
	for i := 0; i < l.Len(); i++ {
		require.True(t, math.IsInf(s.G[i], 1))
		require.Equal(t, -1, s.Pred[i])
		require.False(t, s.Closed[i])
	}

	s.Pred[1], s.Pred[2], s.Pred[3] = 0, 1, 2
	require.Equal(t, []int{0, 1, 2, 3}, s.Trace(0, 3))
	require.Equal(t, []int{2}, s.Trace(2, 2))
	require.Nil(t, s.Trace(3, 0))

	s.Reset()
	require.Nil(t, s.Trace(0, 3))
}

// TestChangedAxes classifies unit steps.
func TestChangedAxes(t *testing.T) {
	o := lattice.Coord{}
	require.Equal(t, 1, lattice.ChangedAxes(o, lattice.Coord{Z: 1}))
	require.Equal(t, 2, lattice.ChangedAxes(o, lattice.Coord{X: 1, Y: -1}))
	require.Equal(t, 3, lattice.ChangedAxes(o, lattice.Coord{X: 1, Y: 1, Z: 1}))
	require.InDelta(t, math.Sqrt(3), lattice.Euclidean(o, lattice.Coord{X: 1, Y: 1, Z: 1}), 1e-12)
}
