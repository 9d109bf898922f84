package router

import (
	"github.com/katalvlaran/tubelath/lattice"
)

// Smooth drops redundant corner nodes from path. Walking forward, path[i] is
// removed when the last kept node and path[i+1] lie on the same layer within
// one lattice step of each other. Endpoints are always kept and the input is
// not modified.
//
// When junctions is non-nil and an endpoint is a junction whose adjacent node
// was removed, that junction's connection entry is re-pointed to the new
// adjacent node so downstream geometry stays consistent.
func Smooth(path []lattice.Coord, junctions map[lattice.Coord][]lattice.Coord) []lattice.Coord {
	n := len(path)
	if n < 3 {
		return append([]lattice.Coord(nil), path...)
	}

	out := make([]lattice.Coord, 0, n)
	out = append(out, path[0])
	keptSecond, keptPenult := true, true
	for i := 1; i < n-1; i++ {
		last, next := out[len(out)-1], path[i+1]
		if last.Z == next.Z && lattice.Chebyshev(last, next) <= 1 {
			if i == 1 {
				keptSecond = false
			}
			if i == n-2 {
				keptPenult = false
			}
			continue
		}
		out = append(out, path[i])
	}
	out = append(out, path[n-1])

	if junctions != nil {
		if !keptSecond {
			repoint(junctions, path[0], path[1], out[1])
		}
		if !keptPenult {
			repoint(junctions, path[n-1], path[n-2], out[len(out)-2])
		}
	}

	return out
}

// repoint replaces old with repl in the connections of junction j.
func repoint(junctions map[lattice.Coord][]lattice.Coord, j, old, repl lattice.Coord) {
	conns, ok := junctions[j]
	if !ok {
		return
	}
	for i, c := range conns {
		if c == old {
			conns[i] = repl
			return
		}
	}
}

// Layout returns every saved path, stitched to its tip sub-paths and
// smoothed, together with the junction table in coordinates. Paths are
// ordered by normalised key; re-pointed junction entries reflect the
// smoothed geometry. The router is not modified.
func (r *Router) Layout() Layout {
	junctions := make(map[lattice.Coord][]lattice.Coord, len(r.junctions))
	for j, conns := range r.junctions {
		junctions[r.lat.Coord(j)] = r.lat.Coords(conns)
	}

	keys := r.sortedKeys()
	raw := make([][]int, len(keys))
	byStart := make(map[int]int, len(keys))
	byEnd := make(map[int]int, len(keys))
	for i, k := range keys {
		p := r.paths[k]
		raw[i] = append([]int(nil), p.nodes...)
		byStart[p.start()] = i
		byEnd[p.end()] = i
	}

	for _, t := range r.sortedTips() {
		e := r.tips[t]
		if len(e.sub) < 2 {
			continue
		}
		if i, ok := byStart[e.ground]; ok && raw[i][0] == e.ground {
			raw[i] = append(append([]int(nil), e.sub...), raw[i][1:]...)
			continue
		}
		if i, ok := byEnd[e.ground]; ok && raw[i][len(raw[i])-1] == e.ground {
			raw[i] = append(raw[i], reversed(e.sub)[1:]...)
		}
	}

	paths := make([][]lattice.Coord, len(raw))
	for i, nodes := range raw {
		paths[i] = Smooth(r.lat.Coords(nodes), junctions)
	}

	return Layout{Paths: paths, Junctions: junctions}
}
