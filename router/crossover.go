package router

import (
	"github.com/katalvlaran/tubelath/lattice"
)

// eliminateCrossovers blocks every neighbor pair whose tube segment would
// intersect a diagonal step of nodes inside the same unit cell.
//
// Per step, classified by the number of changed axes:
//
//   - 1 (axis step):       nothing to block.
//   - 2 (planar diagonal): the face's other diagonal, plus the four body
//     diagonals of each unit cube sharing that face.
//   - 3 (space diagonal):  the other three body diagonals and both
//     diagonals of all six faces of the cube.
//
// Blocks are symmetric and cumulative.
func (r *Router) eliminateCrossovers(nodes []int) {
	for i := 0; i+1 < len(nodes); i++ {
		a, b := r.lat.Coord(nodes[i]), r.lat.Coord(nodes[i+1])
		switch lattice.ChangedAxes(a, b) {
		case 2:
			r.blockPlanar(a, b)
		case 3:
			r.blockCube(minCorner(a, b))
		}
	}
}

// blockPlanar handles a diagonal step inside one axis-aligned face.
func (r *Router) blockPlanar(a, b lattice.Coord) {
	o := minCorner(a, b)
	ext := r.lat.Extent()
	switch {
	case a.X == b.X: // y-z face
		r.unlink(lattice.Coord{X: a.X, Y: a.Y, Z: b.Z}, lattice.Coord{X: a.X, Y: b.Y, Z: a.Z})
		if o.X < ext.X {
			r.blockBody(o)
		}
		if o.X > 0 {
			r.blockBody(lattice.Coord{X: o.X - 1, Y: o.Y, Z: o.Z})
		}
	case a.Y == b.Y: // x-z face
		r.unlink(lattice.Coord{X: a.X, Y: a.Y, Z: b.Z}, lattice.Coord{X: b.X, Y: a.Y, Z: a.Z})
		if o.Y < ext.Y {
			r.blockBody(o)
		}
		if o.Y > 0 {
			r.blockBody(lattice.Coord{X: o.X, Y: o.Y - 1, Z: o.Z})
		}
	default: // x-y face
		r.unlink(lattice.Coord{X: a.X, Y: b.Y, Z: a.Z}, lattice.Coord{X: b.X, Y: a.Y, Z: a.Z})
		if o.Z < ext.Z {
			r.blockBody(o)
		}
		if o.Z > 0 {
			r.blockBody(lattice.Coord{X: o.X, Y: o.Y, Z: o.Z - 1})
		}
	}
}

// blockBody unlinks the four body diagonals of the unit cube at corner o.
func (r *Router) blockBody(o lattice.Coord) {
	for _, d := range bodyDiagonals {
		r.unlink(o.Add(d[0]), o.Add(d[1]))
	}
}

// blockCube unlinks the body diagonals and every face diagonal of the unit
// cube at corner o.
func (r *Router) blockCube(o lattice.Coord) {
	r.blockBody(o)
	for _, d := range faceDiagonals {
		r.unlink(o.Add(d[0]), o.Add(d[1]))
	}
}

func (r *Router) unlink(a, b lattice.Coord) {
	if err := r.lat.Block(a, b); err != nil {
		r.log.Error("crossover unlink failed", "a", a, "b", b, "err", err)
	}
}

// bodyDiagonals are the corner pairs through the center of a unit cube.
var bodyDiagonals = [4][2]lattice.Coord{
	{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}},
	{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 1}},
	{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 1}},
	{{X: 1, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}},
}

// faceDiagonals are both diagonals of each of the six faces of a unit cube.
var faceDiagonals = buildFaceDiagonals()

func buildFaceDiagonals() [][2]lattice.Coord {
	out := make([][2]lattice.Coord, 0, 12)
	for v := 0; v <= 1; v++ {
		out = append(out,
			// x = v
			[2]lattice.Coord{{X: v, Y: 0, Z: 0}, {X: v, Y: 1, Z: 1}},
			[2]lattice.Coord{{X: v, Y: 1, Z: 0}, {X: v, Y: 0, Z: 1}},
			// y = v
			[2]lattice.Coord{{X: 0, Y: v, Z: 0}, {X: 1, Y: v, Z: 1}},
			[2]lattice.Coord{{X: 1, Y: v, Z: 0}, {X: 0, Y: v, Z: 1}},
			// z = v
			[2]lattice.Coord{{X: 0, Y: 0, Z: v}, {X: 1, Y: 1, Z: v}},
			[2]lattice.Coord{{X: 1, Y: 0, Z: v}, {X: 0, Y: 1, Z: v}},
		)
	}

	return out
}

func minCorner(a, b lattice.Coord) lattice.Coord {
	return lattice.Coord{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
}
