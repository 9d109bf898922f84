package router

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/tubelath/lattice"
)

// FindPath routes a fresh path from start to end, commits it (marks its
// nodes visited and blocks crossovers) and stores it in the saved-path
// registry.
//
// Returns:
//
//   - the path start…end, inclusive, as lattice coordinates.
//   - ErrAlreadyOccupied if start or end is visited or start == end.
//   - ErrNotFound if the frontier is exhausted.
//
// Complexity: O(N log N) time, O(N) memory per search.
func (r *Router) FindPath(start, end lattice.Coord) ([]lattice.Coord, error) {
	is, ie, err := r.indexPair(start, end)
	if err != nil {
		return nil, err
	}
	nodes, err := r.findPath(is, ie)
	if err != nil {
		return nil, err
	}

	return r.lat.Coords(nodes), nil
}

// findPath is search + commit + register.
func (r *Router) findPath(start, end int) ([]int, error) {
	nodes, err := r.search(start, end)
	if err != nil {
		return nil, err
	}
	r.commit(nodes)
	r.register(nodes)

	return nodes, nil
}

// search runs the A* variant from start to end without touching durable
// occupancy. Scratch is reset on entry and on every exit.
func (r *Router) search(start, end int) ([]int, error) {
	ns, ne := r.lat.Node(start), r.lat.Node(end)
	if start == end {
		return nil, fmt.Errorf("%w: start and end are both %v", ErrAlreadyOccupied, ns.Coord)
	}
	if ns.Visited {
		return nil, fmt.Errorf("%w: start %v", ErrAlreadyOccupied, ns.Coord)
	}
	if ne.Visited {
		return nil, fmt.Errorf("%w: end %v", ErrAlreadyOccupied, ne.Coord)
	}

	run := &runner{
		lat:    r.lat,
		sc:     r.scratch,
		opts:   r.opts,
		goal:   ne.Coord,
		pq:     make(nodePQ, 0, 64),
		start:  start,
		target: end,
	}
	run.sc.Reset()
	defer run.sc.Reset()

	path := run.process()
	if path == nil {
		r.log.Warn("no path found", "from", ns.Coord, "to", ne.Coord, "closed", run.closed)
		return nil, fmt.Errorf("%w: %v → %v", ErrNotFound, ns.Coord, ne.Coord)
	}
	r.log.Debug("path found",
		"from", ns.Coord, "to", ne.Coord,
		"length", len(path), "pushed", run.pushed, "closed", run.closed)

	return path, nil
}

// runner holds the mutable state for a single search.
type runner struct {
	lat    *lattice.Lattice
	sc     *lattice.Scratch
	opts   Options
	goal   lattice.Coord
	pq     nodePQ
	start  int
	target int

	seq    int // insertion counter for FIFO ties
	pushed int
	closed int
}

// process is the core loop. It returns the reconstructed path or nil when
// the open set runs dry.
func (run *runner) process() []int {
	sc := run.sc
	sc.G[run.start] = 0
	sc.H[run.start] = run.heuristic(run.lat.Coord(run.start))
	sc.F[run.start] = sc.H[run.start]
	heap.Init(&run.pq)
	run.push(run.start, sc.H[run.start])

	for run.pq.Len() > 0 {
		item := heap.Pop(&run.pq).(*nodeItem)
		u := item.idx

		// Skip stale entries of already expanded nodes.
		if sc.Closed[u] {
			continue
		}
		if u == run.target {
			return sc.Trace(run.start, run.target)
		}
		sc.Closed[u] = true
		run.closed++
		run.relax(u)
	}

	return nil
}

// relax pushes every open, unoccupied neighbor of u whose g improves.
func (run *runner) relax(u int) {
	sc := run.sc
	from := run.lat.Coord(u)
	for _, v := range run.lat.Node(u).Neighbors() {
		nv := run.lat.Node(v)
		if nv.Visited || sc.Closed[v] {
			continue
		}
		g := sc.G[u] + stepCost(from, nv.Coord, run.opts.FloorDiscount)
		if g >= sc.G[v] {
			continue
		}
		h := run.heuristic(nv.Coord)
		sc.G[v] = g
		sc.H[v] = h
		sc.F[v] = g + h
		sc.Pred[v] = u
		run.push(v, h+run.opts.CostWeight*g)
	}
}

func (run *runner) push(idx int, key float64) {
	run.seq++
	run.pushed++
	heap.Push(&run.pq, &nodeItem{idx: idx, key: key, seq: run.seq})
}

// heuristic is Chebyshev distance plus a Euclidean tie-breaker.
func (run *runner) heuristic(c lattice.Coord) float64 {
	return float64(lattice.Chebyshev(c, run.goal)) + run.opts.TieBreak*lattice.Euclidean(c, run.goal)
}

// stepCost prices one lattice step. Moving down one layer costs only the
// lateral component; landing on the floor subtracts floorDiscount.
func stepCost(from, to lattice.Coord, floorDiscount float64) float64 {
	d := lattice.Euclidean(from, to)
	if from.Z-to.Z == 1 {
		d = lattice.Euclidean(from, lattice.Coord{X: to.X, Y: to.Y, Z: from.Z})
	}
	if to.Z == 0 {
		d -= floorDiscount
	}

	return d
}

// nodeItem is an open-set entry: a lattice slot with its priority key.
type nodeItem struct {
	idx int
	key float64
	seq int
}

// nodePQ is a min-heap of *nodeItem ordered by key, then insertion order.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by key; equal keys pop first-in first-out.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].key != pq[j].key {
		return pq[i].key < pq[j].key
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
// Called by heap.Push; x must be of type *nodeItem.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the smallest element from the heap.
// Called by heap.Pop; returns interface{} that must be cast to *nodeItem.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
