package gateway

import (
	"errors"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tubelath/lattice"
	"github.com/katalvlaran/tubelath/router"
)

// Sentinel errors for gateway operations.
var (
	// ErrNoSnapPoint indicates no free cell was found for a tip before the
	// descent went below the floor.
	ErrNoSnapPoint = errors.New("gateway: no snap point for tip")
	// ErrBadUnit indicates a non-positive unit size.
	ErrBadUnit = errors.New("gateway: unit must be positive")
	// ErrBadTipLength indicates a negative tip length.
	ErrBadTipLength = errors.New("gateway: tip length must be non-negative")
)

// Config describes a pipe system session.
//
// Extent        – inclusive lattice extent in cells.
// Unit          – real edge length of one cell.
// TipLength     – drop from each port to its tip along −z.
// RouterOptions – tuning passed to router.New.
// Logger        – structured logger shared with the router; nil discards.
type Config struct {
	Extent        lattice.Extent
	Unit          float64
	TipLength     float64
	RouterOptions []router.Option
	Logger        *slog.Logger
}

// DefaultConfig returns a 20-cell cube with unit cells and unit tips.
func DefaultConfig() Config {
	return Config{
		Extent:    lattice.Extent{X: 20, Y: 20, Z: 20},
		Unit:      1,
		TipLength: 1,
	}
}

// Port is a registered port: its real position, its tip and the lattice
// cell the tip was snapped to.
type Port struct {
	Port r3.Vec
	Tip  r3.Vec
	Cell lattice.Coord
}

// Segment is the real endpoint pair of a fetched connection.
type Segment struct {
	From, To r3.Vec
}

// Result is the real-coordinate view of a session: every connection keyed
// by its endpoints, and every junction with its connection points.
type Result struct {
	Connections map[Segment][]r3.Vec
	Junctions   map[r3.Vec][]r3.Vec
}
