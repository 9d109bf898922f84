package router

import (
	"fmt"

	"github.com/katalvlaran/tubelath/lattice"
)

// SplitPath replaces the saved path under key with two paths sliced at
// at, which ends up in both halves: (start, at) and (at, end). It returns
// the nodes just before and just after at on the original path.
//
// Errors:
//
//   - ErrPathNotFound:       no saved path under key.
//   - ErrTooShortToSplit:    the path has fewer than 3 nodes.
//   - ErrInvalidSplitTarget: at is not an interior node of the path.
//
// Occupancy is unchanged: the halves cover the same cells and edges.
func (r *Router) SplitPath(key PathKey, at lattice.Coord) (before, after lattice.Coord, err error) {
	ia, ib, err := r.indexPair(key.A, key.B)
	if err != nil {
		return before, after, err
	}
	iat, err := r.lat.Index(at)
	if err != nil {
		return before, after, fmt.Errorf("%w: %w", ErrInvalidSplitTarget, err)
	}
	b, a, err := r.split(keyOf(ia, ib), iat)
	if err != nil {
		return before, after, err
	}

	return r.lat.Coord(b), r.lat.Coord(a), nil
}

// split validates fully before touching the registry.
// Junctions at the host's endpoints keep their connection nodes: each half
// starts or ends with the same two nodes as the original.
func (r *Router) split(k pathKey, at int) (int, int, error) {
	p, ok := r.paths[k]
	if !ok {
		return -1, -1, fmt.Errorf("%w: %v", ErrPathNotFound, r.publicKey(k))
	}
	if len(p.nodes) < 3 {
		return -1, -1, fmt.Errorf("%w: %v has %d nodes", ErrTooShortToSplit, r.publicKey(k), len(p.nodes))
	}
	pos := -1
	for i := 1; i < len(p.nodes)-1; i++ {
		if p.nodes[i] == at {
			pos = i
			break
		}
	}
	if pos < 0 {
		return -1, -1, fmt.Errorf("%w: %v on %v", ErrInvalidSplitTarget, r.lat.Coord(at), r.publicKey(k))
	}

	head := append([]int(nil), p.nodes[:pos+1]...)
	tail := append([]int(nil), p.nodes[pos:]...)
	delete(r.paths, k)
	r.register(head)
	r.register(tail)
	r.log.Debug("path split", "path", r.publicKey(k), "at", r.lat.Coord(at))

	return p.nodes[pos-1], p.nodes[pos+1], nil
}

// DeletePath removes the saved path between a and b and frees its cells.
// Where an endpoint is a junction, the path's adjacent node is detached from
// that junction's connections; ErrJunctionUnderflow is returned, and nothing
// changes, if that would leave the junction with fewer than two.
func (r *Router) DeletePath(a, b lattice.Coord) error {
	ia, ib, err := r.indexPair(a, b)
	if err != nil {
		return err
	}
	k := keyOf(ia, ib)
	p, ok := r.paths[k]
	if !ok {
		return fmt.Errorf("%w: %v", ErrPathNotFound, NewPathKey(a, b))
	}

	snap := r.stage()
	delete(r.paths, k)
	if err := r.detach(p.start(), p.nodes[1]); err != nil {
		r.rollback(snap)
		return err
	}
	if err := r.detach(p.end(), p.nodes[len(p.nodes)-2]); err != nil {
		r.rollback(snap)
		return err
	}
	r.Rebuild()
	r.log.Info("path deleted", "path", r.publicKey(k))

	return nil
}

// detach removes conn from the junction at j, if j is a junction.
func (r *Router) detach(j, conn int) error {
	conns, ok := r.junctions[j]
	if !ok {
		return nil
	}
	pos := -1
	for i, c := range conns {
		if c == conn {
			pos = i
			break
		}
	}
	if pos < 0 {
		r.log.Warn("connection not on junction", "junction", r.lat.Coord(j), "connection", r.lat.Coord(conn))
		return nil
	}
	if len(conns)-1 < 2 {
		return fmt.Errorf("%w: %v would keep %d", ErrJunctionUnderflow, r.lat.Coord(j), len(conns)-1)
	}
	next := make([]int, 0, len(conns)-1)
	next = append(next, conns[:pos]...)
	next = append(next, conns[pos+1:]...)
	r.junctions[j] = next

	return nil
}
