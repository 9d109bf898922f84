// Package lattice defines core types and sentinel errors
// for the lattice subpackage of github.com/katalvlaran/tubelath.
package lattice

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for lattice operations.
var (
	// ErrBadExtent indicates a negative extent component.
	ErrBadExtent = errors.New("lattice: extent components must be non-negative")
	// ErrOutOfBounds indicates a coordinate outside the lattice.
	ErrOutOfBounds = errors.New("lattice: coordinate out of bounds")
	// ErrNotNeighbor indicates two cells that are not 26-adjacent.
	ErrNotNeighbor = errors.New("lattice: cells are not neighbors")
)

// Coord is an integer lattice address.
type Coord struct {
	X, Y, Z int
}

// String renders c as "(x,y,z)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Add returns c shifted by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{c.X + d.X, c.Y + d.Y, c.Z + d.Z}
}

// Euclidean returns the straight-line distance between a and b.
func Euclidean(a, b Coord) float64 {
	dx, dy, dz := float64(a.X-b.X), float64(a.Y-b.Y), float64(a.Z-b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Chebyshev returns max(|Δx|,|Δy|,|Δz|).
func Chebyshev(a, b Coord) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y), abs(a.Z-b.Z))
}

// ChangedAxes counts the axes on which a and b differ. For a single lattice
// step it is 1 (axis move), 2 (planar diagonal) or 3 (space diagonal).
func ChangedAxes(a, b Coord) int {
	n := 0
	if a.X != b.X {
		n++
	}
	if a.Y != b.Y {
		n++
	}
	if a.Z != b.Z {
		n++
	}

	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// Extent is the inclusive maximum coordinate of a lattice.
type Extent struct {
	X, Y, Z int
}

// Cells returns the number of cells spanned by e.
func (e Extent) Cells() int {
	return (e.X + 1) * (e.Y + 1) * (e.Z + 1)
}

// Contains reports whether c lies within 0..e on every axis.
func (e Extent) Contains(c Coord) bool {
	return c.X >= 0 && c.X <= e.X &&
		c.Y >= 0 && c.Y <= e.Y &&
		c.Z >= 0 && c.Z <= e.Z
}

// Lattice owns every Node of a bounded 3D box. Nodes are created once in New
// and never reallocated; Index/Coord convert between addresses and slots.
type Lattice struct {
	extent Extent
	nodes  []Node
	// strides for the flattened index: idx = x*sx + y*sy + z.
	sx, sy int
}
