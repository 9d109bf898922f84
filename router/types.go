package router

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/tubelath/lattice"
)

// Sentinel errors returned by the router. All are recoverable: the router
// state is left as it was before the failing call.
var (
	// ErrAlreadyOccupied indicates a requested terminus is already used by a
	// committed path, or both termini are the same cell.
	ErrAlreadyOccupied = errors.New("router: terminus already occupied")

	// ErrNotFound indicates no route exists under the current occupancy.
	ErrNotFound = errors.New("router: no path found")

	// ErrDuplicateConnection indicates both termini are already linked by
	// a saved path.
	ErrDuplicateConnection = errors.New("router: connection already exists")

	// ErrInvalidSplitTarget indicates the split cell is not an interior
	// member of the path.
	ErrInvalidSplitTarget = errors.New("router: split target not an interior path node")

	// ErrTooShortToSplit indicates a path with fewer than 3 nodes.
	ErrTooShortToSplit = errors.New("router: path too short to split")

	// ErrPathNotFound indicates no saved path exists for the endpoint pair.
	ErrPathNotFound = errors.New("router: saved path not found")

	// ErrJunctionUnderflow indicates a junction would drop below two
	// connection nodes.
	ErrJunctionUnderflow = errors.New("router: junction needs at least two connections")

	// ErrNoGround indicates no free floor cell could be found for a tip.
	ErrNoGround = errors.New("router: no free ground cell for tip")

	// ErrBadWeight indicates a negative tuning weight.
	ErrBadWeight = errors.New("router: weight must be non-negative")

	// ErrBadCandidateLimit indicates a candidate limit below one.
	ErrBadCandidateLimit = errors.New("router: candidate limit must be at least 1")
)

// Resolution names how Connect satisfies a request.
type Resolution int

const (
	// ResolveNew routes a fresh path between two unused termini.
	ResolveNew Resolution = iota

	// ResolveJunction branches a new terminus into an existing path.
	ResolveJunction

	// ResolveBridge links two existing paths through a new path between
	// interior nodes of each.
	ResolveBridge

	// ResolveDuplicate rejects a request whose termini are already linked.
	ResolveDuplicate
)

// String returns the resolution name.
func (r Resolution) String() string {
	switch r {
	case ResolveNew:
		return "new"
	case ResolveJunction:
		return "junction"
	case ResolveBridge:
		return "bridge"
	case ResolveDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// PathKey is the unordered endpoint pair of a saved path. A sorts before B
// lexicographically; use NewPathKey to build one.
type PathKey struct {
	A, B lattice.Coord
}

// NewPathKey normalises the pair (a, b).
func NewPathKey(a, b lattice.Coord) PathKey {
	if less(b, a) {
		a, b = b, a
	}

	return PathKey{A: a, B: b}
}

func less(a, b lattice.Coord) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}

	return a.Z < b.Z
}

// TipEntry maps an elevated tip to its floor anchor. SubPath runs from the
// tip to Ground, inclusive. IsStart records whether the tip was first routed
// as the start side of a request.
type TipEntry struct {
	Ground  lattice.Coord
	IsStart bool
	SubPath []lattice.Coord
}

// Layout is the emission view of a routing session: every saved path with
// tip sub-paths stitched on and smoothing applied, and the junction table
// with connection nodes re-pointed to match.
type Layout struct {
	Paths     [][]lattice.Coord
	Junctions map[lattice.Coord][]lattice.Coord
}

// pathKey is the slot form of PathKey: lo <= hi.
type pathKey struct {
	lo, hi int
}

func keyOf(a, b int) pathKey {
	if b < a {
		a, b = b, a
	}

	return pathKey{lo: a, hi: b}
}

// savedPath is immutable once registered; splits replace it.
type savedPath struct {
	key   pathKey
	nodes []int
}

func (p *savedPath) start() int { return p.nodes[0] }
func (p *savedPath) end() int   { return p.nodes[len(p.nodes)-1] }

// tipEntry is immutable once registered. sub runs tip → ground.
type tipEntry struct {
	ground  int
	isStart bool
	sub     []int
}

// state is a staged copy of the registries. Occupancy is derived from it,
// so restoring a state plus Rebuild undoes any mutation.
type state struct {
	paths     map[pathKey]*savedPath
	junctions map[int][]int
	tips      map[int]*tipEntry
}

// Router owns a lattice and every registry built on it: saved paths keyed by
// endpoint pair, junctions keyed by cell, and the tip-to-ground table.
//
// A Router is not safe for concurrent use: every request reads and mutates
// the shared occupancy, so callers must serialise access.
type Router struct {
	lat     *lattice.Lattice
	scratch *lattice.Scratch
	opts    Options
	log     *slog.Logger

	paths     map[pathKey]*savedPath
	junctions map[int][]int
	tips      map[int]*tipEntry
}
