package router

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/tubelath/lattice"
)

// Connect links start and end, choosing the resolution from how the termini
// relate to saved paths:
//
//  1. Neither is a saved-path terminus → a fresh path (ResolveNew).
//  2. Exactly one is → the other branches into that terminus's path at the
//     best interior node, which becomes a junction (ResolveJunction).
//  3. Both are, on different paths → a bridge between interior nodes of the
//     two paths, each becoming a junction (ResolveBridge).
//  4. Both are linked by one saved path → ErrDuplicateConnection.
//
// The returned path is the newly routed segment, smoothed. On any error the
// router is left exactly as before the call.
func (r *Router) Connect(start, end lattice.Coord) ([]lattice.Coord, error) {
	is, ie, err := r.indexPair(start, end)
	if err != nil {
		return nil, err
	}
	snap := r.stage()
	nodes, res, err := r.connect(is, ie)
	if err != nil {
		r.rollback(snap)
		r.log.Warn("connect rejected", "from", start, "to", end, "resolution", res, "err", err)
		return nil, err
	}
	r.log.Info("connected", "from", start, "to", end, "resolution", res, "length", len(nodes))

	return Smooth(r.lat.Coords(nodes), nil), nil
}

// Classify reports the resolution Connect would pick for (start, end)
// without routing anything.
func (r *Router) Classify(start, end lattice.Coord) (Resolution, error) {
	is, ie, err := r.indexPair(start, end)
	if err != nil {
		return ResolveNew, err
	}

	return r.classify(is, ie), nil
}

func (r *Router) classify(start, end int) Resolution {
	st, et := r.isTerminus(start), r.isTerminus(end)
	switch {
	case !st && !et:
		return ResolveNew
	case st != et:
		return ResolveJunction
	}
	if _, ok := r.paths[keyOf(start, end)]; ok {
		return ResolveDuplicate
	}
	if a, b := r.hostPath(start), r.hostPath(end); a == b {
		return ResolveDuplicate
	}

	return ResolveBridge
}

// connect dispatches without staging; callers roll back on error.
func (r *Router) connect(start, end int) ([]int, Resolution, error) {
	if start == end {
		return nil, ResolveNew, fmt.Errorf("%w: start and end are both %v", ErrAlreadyOccupied, r.lat.Coord(start))
	}
	res := r.classify(start, end)
	var (
		nodes []int
		err   error
	)
	switch res {
	case ResolveNew:
		nodes, err = r.findPath(start, end)
	case ResolveJunction:
		if r.isTerminus(start) {
			nodes, err = r.junctionPath(end, start)
		} else {
			nodes, err = r.junctionPath(start, end)
		}
	case ResolveBridge:
		nodes, err = r.bridgePath(start, end)
	default:
		err = fmt.Errorf("%w: %v – %v", ErrDuplicateConnection, r.lat.Coord(start), r.lat.Coord(end))
	}

	return nodes, res, err
}

// junctionPath routes the free terminus fresh into the saved path ending at
// existing. The host path is split at the chosen interior node, which
// becomes a junction with three connection nodes: its two neighbors on the
// host path and the new path's penultimate node. A two-node host whose other
// end is a junction is joined at that junction instead.
func (r *Router) junctionPath(fresh, existing int) ([]int, error) {
	host := r.hostPath(existing)
	if r.lat.Node(fresh).Visited {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyOccupied, r.lat.Coord(fresh))
	}
	if len(host.nodes) < 3 {
		// A two-node half still ends at the junction it was split from.
		other := host.start()
		if other == existing {
			other = host.end()
		}
		if _, ok := r.junctions[other]; ok {
			return r.extendJunction(fresh, other)
		}
		return nil, fmt.Errorf("%w: host path %v has %d nodes",
			ErrTooShortToSplit, r.publicKey(host.key), len(host.nodes))
	}

	from := r.lat.Coord(fresh)
	cands := r.rankInterior(host.nodes, func(c lattice.Coord) float64 {
		return lattice.Euclidean(from, c)
	})

	var lastErr error
	for _, pos := range cands[:min(len(cands), r.opts.CandidateLimit)] {
		jn := host.nodes[pos]
		node := r.lat.Node(jn)
		node.Visited = false
		branch, err := r.search(fresh, jn)
		if err != nil {
			node.Visited = true
			lastErr = err
			continue
		}
		r.commit(branch)
		r.register(branch)

		before, after, err := r.split(host.key, jn)
		if err != nil {
			return nil, err
		}
		r.junctions[jn] = []int{before, after, branch[len(branch)-2]}
		r.log.Info("junction added", "at", node.Coord,
			"connections", r.lat.Coords(r.junctions[jn]))

		return branch, nil
	}

	return nil, lastErr
}

// extendJunction routes fresh into the existing junction j and appends the
// branch's penultimate node to j's connections.
func (r *Router) extendJunction(fresh, j int) ([]int, error) {
	node := r.lat.Node(j)
	node.Visited = false
	branch, err := r.search(fresh, j)
	if err != nil {
		node.Visited = true
		return nil, err
	}
	r.commit(branch)
	r.register(branch)
	r.junctions[j] = append(r.junctions[j], branch[len(branch)-2])
	r.log.Info("junction extended", "at", node.Coord,
		"connections", r.lat.Coords(r.junctions[j]))

	return branch, nil
}

// bridgePath links the saved paths ending at a and b through a new path
// between the closest pair of their interior nodes. Both host paths are
// split and each split node becomes a junction whose third connection is
// the bridge's adjacent node.
func (r *Router) bridgePath(a, b int) ([]int, error) {
	hostA, hostB := r.hostPath(a), r.hostPath(b)
	if hostA == hostB {
		return nil, fmt.Errorf("%w: %v – %v", ErrDuplicateConnection, r.lat.Coord(a), r.lat.Coord(b))
	}
	for _, h := range []*savedPath{hostA, hostB} {
		if len(h.nodes) < 3 {
			return nil, fmt.Errorf("%w: host path %v has %d nodes",
				ErrTooShortToSplit, r.publicKey(h.key), len(h.nodes))
		}
	}

	type pair struct {
		i, j  int
		score float64
	}
	pairs := make([]pair, 0, (len(hostA.nodes)-2)*(len(hostB.nodes)-2))
	half := float64(len(hostA.nodes)) / 2
	for i := 1; i < len(hostA.nodes)-1; i++ {
		ci := r.lat.Coord(hostA.nodes[i])
		bias := r.opts.JunctionBias * math.Abs(half-float64(i))
		for j := 1; j < len(hostB.nodes)-1; j++ {
			d := lattice.Euclidean(ci, r.lat.Coord(hostB.nodes[j]))
			pairs = append(pairs, pair{i: i, j: j, score: d + bias})
		}
	}
	sort.SliceStable(pairs, func(x, y int) bool { return pairs[x].score < pairs[y].score })

	var lastErr error
	for _, p := range pairs[:min(len(pairs), r.opts.CandidateLimit)] {
		ja, jb := hostA.nodes[p.i], hostB.nodes[p.j]
		na, nb := r.lat.Node(ja), r.lat.Node(jb)
		na.Visited, nb.Visited = false, false
		bridge, err := r.search(ja, jb)
		if err != nil {
			na.Visited, nb.Visited = true, true
			lastErr = err
			continue
		}
		r.commit(bridge)
		r.register(bridge)

		beforeA, afterA, err := r.split(hostA.key, ja)
		if err != nil {
			return nil, err
		}
		beforeB, afterB, err := r.split(hostB.key, jb)
		if err != nil {
			return nil, err
		}
		r.junctions[ja] = []int{beforeA, afterA, bridge[1]}
		r.junctions[jb] = []int{beforeB, afterB, bridge[len(bridge)-2]}
		r.log.Info("bridge added", "from", na.Coord, "to", nb.Coord, "length", len(bridge))

		return bridge, nil
	}

	return nil, lastErr
}

// rankInterior returns the interior positions of nodes ordered by
// dist(coord) + JunctionBias·|len/2 − i|, ties kept in path order.
func (r *Router) rankInterior(nodes []int, dist func(lattice.Coord) float64) []int {
	type cand struct {
		pos   int
		score float64
	}
	half := float64(len(nodes)) / 2
	cands := make([]cand, 0, len(nodes)-2)
	for i := 1; i < len(nodes)-1; i++ {
		score := dist(r.lat.Coord(nodes[i])) + r.opts.JunctionBias*math.Abs(half-float64(i))
		cands = append(cands, cand{pos: i, score: score})
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].score < cands[b].score })

	out := make([]int, len(cands))
	for i, c := range cands {
		out[i] = c.pos
	}

	return out
}
