package router

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/tubelath/lattice"
)

// New allocates a lattice spanning 0..extent and returns an empty Router.
// It is the session's single initialisation step; every later request
// mutates this Router's occupancy.
//
// Returns lattice.ErrBadExtent for negative extents. Option constructors
// panic on invalid values.
// Complexity: O(N·26) time and memory, N = number of cells.
func New(extent lattice.Extent, opts ...Option) (*Router, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	lat, err := lattice.New(extent)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = discardLogger()
	}

	return &Router{
		lat:       lat,
		scratch:   lattice.NewScratch(lat),
		opts:      cfg,
		log:       log,
		paths:     make(map[pathKey]*savedPath),
		junctions: make(map[int][]int),
		tips:      make(map[int]*tipEntry),
	}, nil
}

// Extent returns the inclusive maximum coordinate of the router's lattice.
func (r *Router) Extent() lattice.Extent {
	return r.lat.Extent()
}

// Cells returns the number of lattice cells.
func (r *Router) Cells() int {
	return r.lat.Len()
}

// Options returns the effective tuning.
func (r *Router) Options() Options {
	return r.opts
}

// IsVisited reports whether c is occupied. Out-of-bounds coordinates count
// as occupied.
func (r *Router) IsVisited(c lattice.Coord) bool {
	n, err := r.lat.At(c)
	if err != nil {
		return true
	}

	return n.Visited
}

// IsBlocked reports whether the neighbor pair (a, b) has been unlinked by
// crossover elimination. Out-of-bounds coordinates are never blocked.
func (r *Router) IsBlocked(a, b lattice.Coord) bool {
	na, err := r.lat.At(a)
	if err != nil {
		return false
	}
	ib, err := r.lat.Index(b)
	if err != nil {
		return false
	}

	return na.IsBlocked(ib)
}

// BlockedNeighbors returns the neighbors unlinked from c, in lattice order.
// Out-of-bounds coordinates have none.
func (r *Router) BlockedNeighbors(c lattice.Coord) []lattice.Coord {
	n, err := r.lat.At(c)
	if err != nil {
		return nil
	}
	idxs := n.Blocked()
	sort.Ints(idxs)

	return r.lat.Coords(idxs)
}

// SavedPaths returns a copy of the saved-path registry. Each path runs from
// the terminus it was routed from to the other.
func (r *Router) SavedPaths() map[PathKey][]lattice.Coord {
	out := make(map[PathKey][]lattice.Coord, len(r.paths))
	for _, p := range r.paths {
		out[r.publicKey(p.key)] = r.lat.Coords(p.nodes)
	}

	return out
}

// Junctions returns a copy of the junction table: junction cell → its
// connection nodes.
func (r *Router) Junctions() map[lattice.Coord][]lattice.Coord {
	out := make(map[lattice.Coord][]lattice.Coord, len(r.junctions))
	for j, conns := range r.junctions {
		out[r.lat.Coord(j)] = r.lat.Coords(conns)
	}

	return out
}

// Tips returns a copy of the tip-to-ground table.
func (r *Router) Tips() map[lattice.Coord]TipEntry {
	out := make(map[lattice.Coord]TipEntry, len(r.tips))
	for t, e := range r.tips {
		out[r.lat.Coord(t)] = TipEntry{
			Ground:  r.lat.Coord(e.ground),
			IsStart: e.isStart,
			SubPath: r.lat.Coords(e.sub),
		}
	}

	return out
}

// Rebuild re-derives occupancy from the registries: every node of a saved
// path or tip sub-path is marked visited and crossover blocks are recomputed
// from scratch.
// Complexity: O(N + total path length).
func (r *Router) Rebuild() {
	r.lat.Clear()
	for _, k := range r.sortedKeys() {
		r.commit(r.paths[k].nodes)
	}
	for _, t := range r.sortedTips() {
		r.commit(r.tips[t].sub)
	}
	r.log.Debug("occupancy rebuilt", "paths", len(r.paths), "tips", len(r.tips))
}

// commit marks nodes visited and blocks crossovers along them.
func (r *Router) commit(nodes []int) {
	for _, idx := range nodes {
		r.lat.Node(idx).Visited = true
	}
	r.eliminateCrossovers(nodes)
}

// register stores nodes as a saved path. The slice must not be modified
// afterwards.
func (r *Router) register(nodes []int) *savedPath {
	p := &savedPath{key: keyOf(nodes[0], nodes[len(nodes)-1]), nodes: nodes}
	r.paths[p.key] = p

	return p
}

// stage copies the registries so a failing request can be undone.
func (r *Router) stage() state {
	s := state{
		paths:     make(map[pathKey]*savedPath, len(r.paths)),
		junctions: make(map[int][]int, len(r.junctions)),
		tips:      make(map[int]*tipEntry, len(r.tips)),
	}
	for k, p := range r.paths {
		s.paths[k] = p
	}
	for j, conns := range r.junctions {
		s.junctions[j] = append([]int(nil), conns...)
	}
	for t, e := range r.tips {
		s.tips[t] = e
	}

	return s
}

// rollback restores a staged state and re-derives occupancy.
func (r *Router) rollback(s state) {
	r.paths = s.paths
	r.junctions = s.junctions
	r.tips = s.tips
	r.Rebuild()
}

// isTerminus reports whether idx ends any saved path.
func (r *Router) isTerminus(idx int) bool {
	for _, p := range r.paths {
		if p.start() == idx || p.end() == idx {
			return true
		}
	}

	return false
}

// hostPath returns the first saved path, in key order, ending at idx.
func (r *Router) hostPath(idx int) *savedPath {
	for _, k := range r.sortedKeys() {
		p := r.paths[k]
		if p.start() == idx || p.end() == idx {
			return p
		}
	}

	return nil
}

func (r *Router) sortedKeys() []pathKey {
	keys := make([]pathKey, 0, len(r.paths))
	for k := range r.paths {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lo != keys[j].lo {
			return keys[i].lo < keys[j].lo
		}

		return keys[i].hi < keys[j].hi
	})

	return keys
}

func (r *Router) sortedTips() []int {
	tips := make([]int, 0, len(r.tips))
	for t := range r.tips {
		tips = append(tips, t)
	}
	sort.Ints(tips)

	return tips
}

func (r *Router) publicKey(k pathKey) PathKey {
	return PathKey{A: r.lat.Coord(k.lo), B: r.lat.Coord(k.hi)}
}

// indexPair resolves two coordinates to slots.
func (r *Router) indexPair(a, b lattice.Coord) (int, int, error) {
	ia, err := r.lat.Index(a)
	if err != nil {
		return -1, -1, fmt.Errorf("router: %w", err)
	}
	ib, err := r.lat.Index(b)
	if err != nil {
		return -1, -1, fmt.Errorf("router: %w", err)
	}

	return ia, ib, nil
}
