package router_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tubelath/lattice"
	"github.com/katalvlaran/tubelath/router"
)

// TestHeadingToward checks per-axis signs, ties counting as negative.
func TestHeadingToward(t *testing.T) {
	require.Equal(t, router.Heading{DX: 1, DY: 1}, router.HeadingToward(lattice.Coord{}, lattice.Coord{X: 3, Y: 1}))
	require.Equal(t, router.Heading{DX: -1, DY: 1}, router.HeadingToward(lattice.Coord{X: 4}, lattice.Coord{X: 1, Y: 2}))
	require.Equal(t, router.Heading{DX: -1, DY: -1}, router.HeadingToward(lattice.Coord{X: 2, Y: 2}, lattice.Coord{X: 2, Y: 2}))
	require.Equal(t, router.Heading{DX: 1, DY: -1}, router.Heading{DX: -1, DY: 1}.Reverse())
}

// TestRouteTip_Vertical checks an elevated tip over a free floor drops
// straight down and is reused on a second request.
func TestRouteTip_Vertical(t *testing.T) {
	r := newRouter(t, lattice.Extent{X: 10, Y: 10, Z: 5})
	tip := lattice.Coord{X: 2, Y: 2, Z: 3}

	e, err := r.RouteTip(tip, router.Heading{DX: 1, DY: 1})
	require.NoError(t, err)
	require.Equal(t, lattice.Coord{X: 2, Y: 2}, e.Ground)
	require.True(t, e.IsStart)
	require.Equal(t, []lattice.Coord{
		{X: 2, Y: 2, Z: 3}, {X: 2, Y: 2, Z: 2}, {X: 2, Y: 2, Z: 1}, {X: 2, Y: 2},
	}, e.SubPath)
	for _, c := range e.SubPath {
		require.True(t, r.IsVisited(c))
	}

	again, err := r.RouteTip(tip, router.Heading{DX: -1, DY: -1})
	require.NoError(t, err)
	require.Equal(t, e, again)
	require.Len(t, r.Tips(), 1)
	require.Empty(t, r.SavedPaths())
}

// TestRouteTip_WalksAlongHeading checks a blocked cell below the tip pushes
// the ground one step along the heading.
func TestRouteTip_WalksAlongHeading(t *testing.T) {
	r := newRouter(t, lattice.Extent{X: 10, Y: 10, Z: 5})
	_, err := r.FindPath(lattice.Coord{X: 4, Y: 4}, lattice.Coord{X: 4, Y: 6})
	require.NoError(t, err)

	e, err := r.RouteTip(lattice.Coord{X: 4, Y: 5, Z: 2}, router.Heading{DX: 1, DY: 1})
	require.NoError(t, err)
	require.Equal(t, lattice.Coord{X: 5, Y: 5}, e.Ground)
	require.Equal(t, lattice.Coord{X: 4, Y: 5, Z: 2}, e.SubPath[0])
	require.Equal(t, e.Ground, e.SubPath[len(e.SubPath)-1])
	requireContiguous(t, e.SubPath)
}

// TestRouteTip_Floor checks a tip already on the floor is its own ground.
func TestRouteTip_Floor(t *testing.T) {
	r := newRouter(t, lattice.Extent{X: 3, Y: 3, Z: 1})
	tip := lattice.Coord{X: 1, Y: 1}
	e, err := r.RouteTip(tip, router.Heading{DX: 1, DY: 1})
	require.NoError(t, err)
	require.Equal(t, tip, e.Ground)
	require.Equal(t, []lattice.Coord{tip}, e.SubPath)
	require.True(t, r.IsVisited(tip))
}

// TestRouteTip_Errors covers occupied tips and a floor with no free cell.
func TestRouteTip_Errors(t *testing.T) {
	r := newRouter(t, lattice.Extent{Z: 1})
	_, err := r.RouteTip(lattice.Coord{}, router.Heading{DX: 1, DY: 1})
	require.NoError(t, err)

	_, err = r.RouteTip(lattice.Coord{Z: 1}, router.Heading{DX: 1, DY: 1})
	require.ErrorIs(t, err, router.ErrNoGround)
	require.Len(t, r.Tips(), 1)
	require.False(t, r.IsVisited(lattice.Coord{Z: 1}))

	_, err = r.RouteTip(lattice.Coord{Z: 2}, router.Heading{})
	require.ErrorIs(t, err, lattice.ErrOutOfBounds)

	r2 := newRouter(t, lattice.Extent{X: 4})
	_, err = r2.FindPath(lattice.Coord{}, lattice.Coord{X: 2})
	require.NoError(t, err)
	_, err = r2.RouteTip(lattice.Coord{X: 1}, router.Heading{DX: 1})
	require.ErrorIs(t, err, router.ErrAlreadyOccupied)
}

// TestConnectTips_RoundTrip routes two elevated tips end to end.
func TestConnectTips_RoundTrip(t *testing.T) {
	r := newRouter(t, lattice.Extent{X: 10, Y: 10, Z: 5})
	a, b := lattice.Coord{X: 2, Y: 2, Z: 3}, lattice.Coord{X: 8, Y: 8, Z: 3}

	path, err := r.ConnectTips(a, b)
	require.NoError(t, err)
	require.Equal(t, a, path[0])
	require.Equal(t, b, path[len(path)-1])

	tips := r.Tips()
	require.Len(t, tips, 2)
	require.Equal(t, lattice.Coord{X: 2, Y: 2}, tips[a].Ground)
	require.True(t, tips[a].IsStart)
	require.Equal(t, lattice.Coord{X: 8, Y: 8}, tips[b].Ground)
	require.False(t, tips[b].IsStart)

	paths := r.SavedPaths()
	require.Len(t, paths, 1)
	floor := paths[router.NewPathKey(tips[a].Ground, tips[b].Ground)]
	require.NotEmpty(t, floor)
	requireContiguous(t, floor)
	for _, c := range floor {
		require.True(t, r.IsVisited(c))
	}

	layout := r.Layout()
	require.Len(t, layout.Paths, 1)
	require.Equal(t, a, layout.Paths[0][0])
	require.Equal(t, b, layout.Paths[0][len(layout.Paths[0])-1])
}

// TestConnectTips_Junction checks a second tip linked to an anchored one
// branches into the existing floor path.
func TestConnectTips_Junction(t *testing.T) {
	r := newRouter(t, lattice.Extent{X: 10, Y: 10, Z: 5})
	a, b := lattice.Coord{X: 1, Y: 1, Z: 2}, lattice.Coord{X: 9, Y: 1, Z: 2}
	_, err := r.ConnectTips(a, b)
	require.NoError(t, err)

	c := lattice.Coord{X: 5, Y: 8, Z: 2}
	branch, err := r.ConnectTips(c, a)
	require.NoError(t, err)
	require.Equal(t, c, branch[0])
	require.Len(t, r.Junctions(), 1)
	require.Len(t, r.Tips(), 3)
	for j := range r.Junctions() {
		require.Equal(t, j, branch[len(branch)-1])
		require.Zero(t, j.Z)
	}
}

// TestConnectTips_Errors checks invalid requests leave the session intact.
func TestConnectTips_Errors(t *testing.T) {
	r := newRouter(t, lattice.Extent{X: 4, Y: 4, Z: 2})
	a := lattice.Coord{X: 1, Y: 1, Z: 2}

	_, err := r.ConnectTips(a, a)
	require.ErrorIs(t, err, router.ErrAlreadyOccupied)

	_, err = r.ConnectTips(a, lattice.Coord{X: 5})
	require.ErrorIs(t, err, lattice.ErrOutOfBounds)

	_, err = r.ConnectTips(a, lattice.Coord{X: 3, Y: 3, Z: 2})
	require.NoError(t, err)
	_, err = r.ConnectTips(a, lattice.Coord{X: 3, Y: 3, Z: 2})
	require.ErrorIs(t, err, router.ErrDuplicateConnection)
	require.Len(t, r.Tips(), 2)
	require.Len(t, r.SavedPaths(), 1)
}
