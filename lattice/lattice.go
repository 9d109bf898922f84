// Package lattice provides a dense 3D arena of cells with 26-connectivity.
// It supports:
//
//   - Bounds-checked addressing via flattened indices
//   - Precomputed neighbor candidates per cell
//   - Symmetric blocking of neighbor pairs
//   - Durable occupancy flags separate from per-search scratch
package lattice

import (
	"fmt"
)

// offsets enumerates the 26 unit steps, grouped by layer: down, level, up.
var offsets = buildOffsets()

func buildOffsets() []Coord {
	out := make([]Coord, 0, 26)
	for _, dz := range []int{-1, 0, 1} {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				out = append(out, Coord{dx, dy, dz})
			}
		}
	}

	return out
}

// New allocates every cell of the box 0..extent (inclusive) and precomputes
// neighbor candidates. Returns ErrBadExtent if any component is negative.
// Complexity: O(N·26) time and memory.
func New(extent Extent) (*Lattice, error) {
	if extent.X < 0 || extent.Y < 0 || extent.Z < 0 {
		return nil, fmt.Errorf("%w: %+v", ErrBadExtent, extent)
	}
	l := &Lattice{
		extent: extent,
		nodes:  make([]Node, extent.Cells()),
		sy:     extent.Z + 1,
	}
	l.sx = (extent.Y + 1) * l.sy

	for x := 0; x <= extent.X; x++ {
		for y := 0; y <= extent.Y; y++ {
			for z := 0; z <= extent.Z; z++ {
				c := Coord{x, y, z}
				n := &l.nodes[l.index(c)]
				n.Coord = c
				n.all = make([]int, 0, 26)
				for _, d := range offsets {
					nc := c.Add(d)
					if extent.Contains(nc) {
						n.all = append(n.all, l.index(nc))
					}
				}
				n.neighbors = n.all
			}
		}
	}

	return l, nil
}

// Extent returns the inclusive maximum coordinate.
func (l *Lattice) Extent() Extent {
	return l.extent
}

// Len returns the number of cells.
func (l *Lattice) Len() int {
	return len(l.nodes)
}

// InBounds reports whether c lies within the lattice.
// Complexity: O(1).
func (l *Lattice) InBounds(c Coord) bool {
	return l.extent.Contains(c)
}

// Index maps c to its flattened slot, or ErrOutOfBounds.
// Complexity: O(1).
func (l *Lattice) Index(c Coord) (int, error) {
	if !l.extent.Contains(c) {
		return -1, fmt.Errorf("%w: %v not within %+v", ErrOutOfBounds, c, l.extent)
	}

	return l.index(c), nil
}

// index assumes c is in bounds.
func (l *Lattice) index(c Coord) int {
	return c.X*l.sx + c.Y*l.sy + c.Z
}

// Coord converts a flattened slot back to its coordinate.
// Complexity: O(1).
func (l *Lattice) Coord(idx int) Coord {
	return l.nodes[idx].Coord
}

// Node returns the cell at slot idx.
func (l *Lattice) Node(idx int) *Node {
	return &l.nodes[idx]
}

// At returns the cell at c, or ErrOutOfBounds.
func (l *Lattice) At(c Coord) (*Node, error) {
	idx, err := l.Index(c)
	if err != nil {
		return nil, err
	}

	return &l.nodes[idx], nil
}

// Coords maps a slice of slots to coordinates.
func (l *Lattice) Coords(idxs []int) []Coord {
	out := make([]Coord, len(idxs))
	for i, idx := range idxs {
		out[i] = l.nodes[idx].Coord
	}

	return out
}

// Block unlinks a and b in both directions. Unlinking an already blocked
// pair is a no-op. Returns ErrOutOfBounds or ErrNotNeighbor.
func (l *Lattice) Block(a, b Coord) error {
	ia, err := l.Index(a)
	if err != nil {
		return err
	}
	ib, err := l.Index(b)
	if err != nil {
		return err
	}
	na, nb := &l.nodes[ia], &l.nodes[ib]
	if !na.hasNeighbor(ib) {
		return fmt.Errorf("%w: %v and %v", ErrNotNeighbor, a, b)
	}
	na.block(ib)
	nb.block(ia)

	return nil
}

// Clear drops every durable exclusion: Visited flags and blocked pairs.
// Used when occupancy is re-derived from scratch.
// Complexity: O(N).
func (l *Lattice) Clear() {
	for i := range l.nodes {
		l.nodes[i].clear()
	}
}
