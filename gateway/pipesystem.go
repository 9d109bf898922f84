package gateway

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tubelath/lattice"
	"github.com/katalvlaran/tubelath/router"
)

// PipeSystem connects real-world ports through a single router session.
// It is not safe for concurrent use.
type PipeSystem struct {
	cfg    Config
	router *router.Router
	log    *slog.Logger

	ports map[r3.Vec]*Port
	order []r3.Vec // registration order

	errs  []string
	warns []string
}

// New validates cfg and starts an empty session.
func New(cfg Config) (*PipeSystem, error) {
	ps := &PipeSystem{}
	if err := ps.Reset(cfg); err != nil {
		return nil, err
	}

	return ps, nil
}

// Reset discards every route, port and message and starts over with cfg.
// On error the current session is kept.
func (ps *PipeSystem) Reset(cfg Config) error {
	if !(cfg.Unit > 0) {
		return fmt.Errorf("%w: %v", ErrBadUnit, cfg.Unit)
	}
	if cfg.TipLength < 0 || math.IsNaN(cfg.TipLength) {
		return fmt.Errorf("%w: %v", ErrBadTipLength, cfg.TipLength)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := append([]router.Option{router.WithLogger(log)}, cfg.RouterOptions...)
	r, err := router.New(cfg.Extent, opts...)
	if err != nil {
		return fmt.Errorf("gateway: %w", err)
	}

	ps.cfg = cfg
	ps.router = r
	ps.log = log
	ps.ports = make(map[r3.Vec]*Port)
	ps.order = nil
	ps.errs = nil
	ps.warns = nil
	log.Info("pipe system reset",
		"extent", cfg.Extent, "unit", cfg.Unit, "tip_length", cfg.TipLength)

	return nil
}

// Router exposes the underlying router.
func (ps *PipeSystem) Router() *router.Router {
	return ps.router
}

// Config returns the active configuration.
func (ps *PipeSystem) Config() Config {
	return ps.cfg
}

// ConnectPorts routes a channel between two ports and returns it in real
// coordinates, dressed with port and tip points on the ends that touch a
// port. A port seen for the first time is snapped and registered; a known
// port reuses its cell. Ports are only registered when routing succeeds.
//
// A duplicate connection is recorded as a warning, every other failure as
// an error message; the error is returned either way.
func (ps *PipeSystem) ConnectPorts(start, end r3.Vec) ([]r3.Vec, error) {
	if start == end {
		err := fmt.Errorf("%w: both ends are port %v", router.ErrAlreadyOccupied, start)
		ps.errorf("connect %v – %v: %v", start, end, err)
		return nil, err
	}
	towardX, towardY := end.X-start.X > 0, end.Y-start.Y > 0

	sp, sNew, err := ps.port(start, towardX, towardY)
	if err != nil {
		ps.errorf("snap start port %v: %v", start, err)
		return nil, err
	}
	var pending []lattice.Coord
	if sNew {
		pending = append(pending, sp.Cell)
	}
	ep, eNew, err := ps.port(end, !towardX, !towardY, pending...)
	if err != nil {
		ps.errorf("snap end port %v: %v", end, err)
		return nil, err
	}
	ps.log.Debug("ports snapped", "start", start, "start_cell", sp.Cell, "end", end, "end_cell", ep.Cell)

	cells, err := ps.router.ConnectTips(sp.Cell, ep.Cell)
	if err != nil {
		if errors.Is(err, router.ErrDuplicateConnection) {
			ps.warnf("connection already exists between %v and %v", start, end)
		} else {
			ps.errorf("connect %v – %v: %v", start, end, err)
		}
		return nil, err
	}
	if sNew {
		ps.register(sp)
	}
	if eNew {
		ps.register(ep)
	}

	return ps.dress(ps.toReal(cells), cells, sp, ep), nil
}

// port returns the registered port at at, or a freshly snapped one.
func (ps *PipeSystem) port(at r3.Vec, towardX, towardY bool, pending ...lattice.Coord) (*Port, bool, error) {
	if p, ok := ps.ports[at]; ok {
		return p, false, nil
	}
	tip := r3.Sub(at, r3.Vec{Z: ps.cfg.TipLength})
	cell, err := ps.snap(tip, towardX, towardY, pending)
	if err != nil {
		return nil, false, err
	}

	return &Port{Port: at, Tip: tip, Cell: cell}, true, nil
}

func (ps *PipeSystem) register(p *Port) {
	ps.ports[p.Port] = p
	ps.order = append(ps.order, p.Port)
}

// Snap maps a real tip to a free lattice cell without registering it.
// towardX/towardY tell on which axes the partner port lies ahead.
func (ps *PipeSystem) Snap(tip r3.Vec, towardX, towardY bool) (lattice.Coord, error) {
	return ps.snap(tip, towardX, towardY, nil)
}

func (ps *PipeSystem) snap(tip r3.Vec, towardX, towardY bool, pending []lattice.Coord) (lattice.Coord, error) {
	u := ps.cfg.Unit
	dx, dy := nudge(tip.X, u, towardX), nudge(tip.Y, u, towardY)
	c := lattice.Coord{
		X: int(math.Floor(tip.X/u)) + dx,
		Y: int(math.Floor(tip.Y/u)) + dy,
		Z: int(math.Floor(tip.Z / u)),
	}

	for ps.inUse(c, pending) {
		back := []lattice.Coord{
			{X: c.X - dx, Y: c.Y, Z: c.Z},
			{X: c.X, Y: c.Y - dy, Z: c.Z},
			{X: c.X - dx, Y: c.Y - dy, Z: c.Z},
		}
		free := false
		for _, b := range back {
			if !ps.inUse(b, pending) {
				c, free = b, true
				break
			}
		}
		if free {
			break
		}
		c = lattice.Coord{X: c.X - dx, Y: c.Y - dy, Z: c.Z - 1}
		if c.Z < 0 {
			return lattice.Coord{}, fmt.Errorf("%w: %v", ErrNoSnapPoint, tip)
		}
	}

	return c, nil
}

// nudge is 1 when v is off-grid and the partner lies ahead, else 0.
func nudge(v, unit float64, ahead bool) int {
	if ahead && math.Mod(v, unit) != 0 {
		return 1
	}

	return 0
}

// inUse reports whether c is occupied, out of bounds or claimed by a port.
func (ps *PipeSystem) inUse(c lattice.Coord, pending []lattice.Coord) bool {
	if ps.router.IsVisited(c) {
		return true
	}
	for _, p := range ps.ports {
		if p.Cell == c {
			return true
		}
	}
	for _, p := range pending {
		if p == c {
			return true
		}
	}

	return false
}

// Ports returns the registered ports in registration order.
func (ps *PipeSystem) Ports() []Port {
	out := make([]Port, len(ps.order))
	for i, at := range ps.order {
		out[i] = *ps.ports[at]
	}

	return out
}

// Fetch returns the session layout in real coordinates. Route endpoints at
// a port cell are replaced by the port, with the tip point between port and
// route; junction connection points follow the smoothed routes.
func (ps *PipeSystem) Fetch() Result {
	layout := ps.router.Layout()
	byCell := make(map[lattice.Coord]*Port, len(ps.ports))
	for _, p := range ps.ports {
		byCell[p.Cell] = p
	}

	res := Result{
		Connections: make(map[Segment][]r3.Vec, len(layout.Paths)),
		Junctions:   make(map[r3.Vec][]r3.Vec, len(layout.Junctions)),
	}
	for _, cells := range layout.Paths {
		pts := ps.toReal(cells)
		key := Segment{From: pts[0], To: pts[len(pts)-1]}
		if p, ok := byCell[cells[0]]; ok {
			key.From = p.Port
		}
		if p, ok := byCell[cells[len(cells)-1]]; ok {
			key.To = p.Port
		}
		res.Connections[key] = ps.dressAll(pts, cells, byCell)
	}
	for j, conns := range layout.Junctions {
		res.Junctions[ps.toVec(j)] = ps.toReal(conns)
	}

	return res
}

// dress wraps a freshly routed path with the port and tip points of either
// request port found at its ends.
func (ps *PipeSystem) dress(pts []r3.Vec, cells []lattice.Coord, ports ...*Port) []r3.Vec {
	byCell := make(map[lattice.Coord]*Port, len(ports))
	for _, p := range ports {
		byCell[p.Cell] = p
	}

	return ps.dressAll(pts, cells, byCell)
}

// dressAll skips a tip point that coincides with its snapped cell.
func (ps *PipeSystem) dressAll(pts []r3.Vec, cells []lattice.Coord, byCell map[lattice.Coord]*Port) []r3.Vec {
	if len(cells) == 0 {
		return pts
	}
	out := make([]r3.Vec, 0, len(pts)+4)
	if p, ok := byCell[cells[0]]; ok {
		out = append(out, p.Port)
		if p.Tip != pts[0] {
			out = append(out, p.Tip)
		}
	}
	out = append(out, pts...)
	if p, ok := byCell[cells[len(cells)-1]]; ok && len(cells) > 1 {
		if p.Tip != pts[len(pts)-1] {
			out = append(out, p.Tip)
		}
		out = append(out, p.Port)
	}

	return out
}

func (ps *PipeSystem) toVec(c lattice.Coord) r3.Vec {
	return r3.Scale(ps.cfg.Unit, r3.Vec{X: float64(c.X), Y: float64(c.Y), Z: float64(c.Z)})
}

func (ps *PipeSystem) toReal(cells []lattice.Coord) []r3.Vec {
	out := make([]r3.Vec, len(cells))
	for i, c := range cells {
		out[i] = ps.toVec(c)
	}

	return out
}

// Errors returns the error messages recorded so far.
func (ps *PipeSystem) Errors() []string {
	return append([]string(nil), ps.errs...)
}

// Warnings returns the warning messages recorded so far.
func (ps *PipeSystem) Warnings() []string {
	return append([]string(nil), ps.warns...)
}

func (ps *PipeSystem) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ps.errs = append(ps.errs, msg)
	ps.log.Error(msg)
}

func (ps *PipeSystem) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ps.warns = append(ps.warns, msg)
	ps.log.Warn(msg)
}
