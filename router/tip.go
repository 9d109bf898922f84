package router

import (
	"fmt"

	"github.com/katalvlaran/tubelath/lattice"
)

// Heading is a preferred floor-plane direction, ±1 per axis.
type Heading struct {
	DX, DY int
}

// HeadingToward returns the heading from a toward b: +1 on an axis where b
// is strictly greater, −1 otherwise.
func HeadingToward(a, b lattice.Coord) Heading {
	h := Heading{DX: -1, DY: -1}
	if b.X > a.X {
		h.DX = 1
	}
	if b.Y > a.Y {
		h.DY = 1
	}

	return h
}

// Reverse flips both axes.
func (h Heading) Reverse() Heading {
	return Heading{DX: -h.DX, DY: -h.DY}
}

// RouteTip anchors an elevated tip to a free floor cell, walking from the
// cell below the tip toward heading, and commits the tip → ground sub-path.
// The entry is kept in the tip table and reused by later requests for the
// same tip. A directly routed tip is recorded as a start tip.
//
// Errors: ErrAlreadyOccupied, ErrNoGround, ErrNotFound. On error nothing
// changes.
func (r *Router) RouteTip(tip lattice.Coord, heading Heading) (TipEntry, error) {
	it, err := r.lat.Index(tip)
	if err != nil {
		return TipEntry{}, fmt.Errorf("router: %w", err)
	}
	snap := r.stage()
	e, err := r.routeTip(it, heading, true)
	if err != nil {
		r.rollback(snap)
		return TipEntry{}, err
	}

	return TipEntry{Ground: r.lat.Coord(e.ground), IsStart: e.isStart, SubPath: r.lat.Coords(e.sub)}, nil
}

func (r *Router) routeTip(tip int, heading Heading, isStart bool) (*tipEntry, error) {
	if e, ok := r.tips[tip]; ok {
		return e, nil
	}
	tn := r.lat.Node(tip)
	if tn.Visited {
		return nil, fmt.Errorf("%w: tip %v", ErrAlreadyOccupied, tn.Coord)
	}
	ground, err := r.findGround(tip, heading)
	if err != nil {
		return nil, err
	}

	sub := []int{tip}
	if ground != tip {
		// Routed bottom-up so the tip end stays clean, then reversed.
		up, err := r.search(ground, tip)
		if err != nil {
			return nil, err
		}
		sub = make([]int, len(up))
		for i, v := range up {
			sub[len(up)-1-i] = v
		}
	}
	r.commit(sub)
	e := &tipEntry{ground: ground, isStart: isStart, sub: sub}
	r.tips[tip] = e
	r.log.Debug("tip anchored", "tip", tn.Coord, "ground", r.lat.Coord(ground), "length", len(sub))

	return e, nil
}

// findGround walks the floor from below the tip: at each step it tries the
// base cell, then one step along DX, along both, along DY; the base then
// advances along DX. When the walk leaves the lattice it ascends one layer,
// up to just below the tip.
func (r *Router) findGround(tip int, h Heading) (int, error) {
	t := r.lat.Coord(tip)
	top := max(t.Z-1, 0)
	alts := []lattice.Coord{{}, {X: h.DX}, {X: h.DX, Y: h.DY}, {Y: h.DY}}
	for z := 0; z <= top; z++ {
		for base := (lattice.Coord{X: t.X, Y: t.Y, Z: z}); r.lat.InBounds(base); base.X += h.DX {
			for _, d := range alts {
				if idx, ok := r.freeGround(base.Add(d)); ok {
					return idx, nil
				}
			}
		}
	}

	return -1, fmt.Errorf("%w: tip %v", ErrNoGround, t)
}

// freeGround reports whether c is an unoccupied cell not claimed by a tip.
func (r *Router) freeGround(c lattice.Coord) (int, bool) {
	idx, err := r.lat.Index(c)
	if err != nil || r.lat.Node(idx).Visited {
		return -1, false
	}
	for t, e := range r.tips {
		if t == idx || e.ground == idx {
			return -1, false
		}
	}

	return idx, true
}

// ConnectTips links two elevated tips. Each tip is anchored to the floor
// (or its existing anchor reused) and the grounds are linked with Connect's
// dispatch. The heading of each tip points at its partner.
//
// Output, smoothed:
//
//   - ResolveNew:      startTip → … → endTip.
//   - ResolveJunction: the newly anchored tip → … → junction cell.
//   - ResolveBridge:   the bridge between the two junction cells.
//
// On any error the router is left exactly as before the call.
func (r *Router) ConnectTips(startTip, endTip lattice.Coord) ([]lattice.Coord, error) {
	is, ie, err := r.indexPair(startTip, endTip)
	if err != nil {
		return nil, err
	}
	if is == ie {
		return nil, fmt.Errorf("%w: start and end are both %v", ErrAlreadyOccupied, startTip)
	}
	snap := r.stage()
	out, res, err := r.connectTips(is, ie)
	if err != nil {
		r.rollback(snap)
		r.log.Warn("tip connection rejected", "from", startTip, "to", endTip, "err", err)
		return nil, err
	}
	r.log.Info("tips connected", "from", startTip, "to", endTip, "resolution", res, "length", len(out))

	return Smooth(r.lat.Coords(out), nil), nil
}

func (r *Router) connectTips(is, ie int) ([]int, Resolution, error) {
	heading := HeadingToward(r.lat.Coord(is), r.lat.Coord(ie))
	se, err := r.routeTip(is, heading, true)
	if err != nil {
		return nil, ResolveNew, err
	}
	ee, err := r.routeTip(ie, heading.Reverse(), false)
	if err != nil {
		return nil, ResolveNew, err
	}
	if se.ground == ee.ground {
		return nil, ResolveNew, fmt.Errorf("%w: tips share ground %v", ErrAlreadyOccupied, r.lat.Coord(se.ground))
	}

	// Fresh grounds are held by their sub-paths; hand them to the search.
	sFresh, eFresh := !r.isTerminus(se.ground), !r.isTerminus(ee.ground)
	if sFresh {
		r.lat.Node(se.ground).Visited = false
	}
	if eFresh {
		r.lat.Node(ee.ground).Visited = false
	}

	mid, res, err := r.connect(se.ground, ee.ground)
	if err != nil {
		return nil, res, err
	}

	switch res {
	case ResolveNew:
		out := append([]int(nil), se.sub...)
		out = append(out, mid[1:]...)
		return append(out, reversed(ee.sub)[1:]...), res, nil
	case ResolveJunction:
		fresh := se
		if !sFresh {
			fresh = ee
		}
		return append(append([]int(nil), fresh.sub...), mid[1:]...), res, nil
	default:
		return mid, res, nil
	}
}

func reversed(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}

	return out
}
