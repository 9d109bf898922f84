package lattice

// Node is a single lattice cell.
//
// all lists the in-bounds neighbor indices computed at construction.
// blocked grows as crossover rules unlink pairs; neighbors caches
// all \ blocked and is rebuilt lazily when dirty is set.
// Visited marks durable occupancy by a committed path and survives
// Scratch.Reset.
type Node struct {
	Coord   Coord
	Visited bool

	all       []int
	blocked   map[int]struct{}
	neighbors []int
	dirty     bool
}

// AllNeighbors returns every in-bounds neighbor index, blocked or not.
// The slice is shared; callers must not modify it.
func (n *Node) AllNeighbors() []int {
	return n.all
}

// Neighbors returns the neighbor indices that are not blocked.
// The slice is shared until the next Block on this node.
func (n *Node) Neighbors() []int {
	if !n.dirty {
		return n.neighbors
	}
	out := make([]int, 0, len(n.all))
	for _, v := range n.all {
		if _, ok := n.blocked[v]; !ok {
			out = append(out, v)
		}
	}
	n.neighbors = out
	n.dirty = false

	return n.neighbors
}

// IsBlocked reports whether the pair (n, idx) has been unlinked.
func (n *Node) IsBlocked(idx int) bool {
	_, ok := n.blocked[idx]

	return ok
}

// Blocked returns a copy of the blocked neighbor indices.
func (n *Node) Blocked() []int {
	out := make([]int, 0, len(n.blocked))
	for v := range n.blocked {
		out = append(out, v)
	}

	return out
}

func (n *Node) hasNeighbor(idx int) bool {
	for _, v := range n.all {
		if v == idx {
			return true
		}
	}

	return false
}

func (n *Node) block(idx int) {
	if _, ok := n.blocked[idx]; ok {
		return
	}
	if n.blocked == nil {
		n.blocked = make(map[int]struct{}, 4)
	}
	n.blocked[idx] = struct{}{}
	n.dirty = true
}

func (n *Node) clear() {
	n.Visited = false
	if len(n.blocked) > 0 {
		n.blocked = nil
		n.dirty = true
	}
}
