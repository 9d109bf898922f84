package config

import (
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tubelath/gateway"
	"github.com/katalvlaran/tubelath/lattice"
	"github.com/katalvlaran/tubelath/router"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is a routing job.
type Config struct {
	Lattice     LatticeConfig `yaml:"lattice"`
	Router      RouterConfig  `yaml:"router,omitempty"`
	Pipe        PipeConfig    `yaml:"pipe"`
	Connections []Connection  `yaml:"connections"`
}

// LatticeConfig is the inclusive lattice extent in cells.
type LatticeConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// RouterConfig holds optional overrides of router.DefaultOptions.
type RouterConfig struct {
	CostWeight     *float64 `yaml:"costWeight,omitempty"`
	TieBreak       *float64 `yaml:"tieBreak,omitempty"`
	FloorDiscount  *float64 `yaml:"floorDiscount,omitempty"`
	JunctionBias   *float64 `yaml:"junctionBias,omitempty"`
	CandidateLimit *int     `yaml:"candidateLimit,omitempty"`
}

// PipeConfig sets the real size of a cell and the port-to-tip drop.
type PipeConfig struct {
	Unit      float64 `yaml:"unit"`
	TipLength float64 `yaml:"tipLength"`
}

// Connection is a port pair in real coordinates, each [x, y, z].
type Connection struct {
	From []float64 `yaml:"from,flow"`
	To   []float64 `yaml:"to,flow"`
}

// Ends returns the connection's ports. Call only on a validated Config.
func (c Connection) Ends() (from, to r3.Vec) {
	return vec(c.From), vec(c.To)
}

func vec(v []float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// Default returns the job used when a file leaves sections out: a 20-cell
// cube with unit cells, unit tips and no connections.
func Default() Config {
	def := gateway.DefaultConfig()

	return Config{
		Lattice: LatticeConfig{X: def.Extent.X, Y: def.Extent.Y, Z: def.Extent.Z},
		Pipe:    PipeConfig{Unit: def.Unit, TipLength: def.TipLength},
	}
}

// Validate checks every field and returns the first failure.
func (c *Config) Validate() error {
	if c.Lattice.X < 0 || c.Lattice.Y < 0 || c.Lattice.Z < 0 {
		return fmt.Errorf("%w: lattice extent %+v must be non-negative", ErrInvalid, c.Lattice)
	}
	if !(c.Pipe.Unit > 0) {
		return fmt.Errorf("%w: pipe.unit must be positive, got %v", ErrInvalid, c.Pipe.Unit)
	}
	if c.Pipe.TipLength < 0 {
		return fmt.Errorf("%w: pipe.tipLength must be non-negative, got %v", ErrInvalid, c.Pipe.TipLength)
	}

	weights := []struct {
		name string
		v    *float64
	}{
		{"costWeight", c.Router.CostWeight},
		{"tieBreak", c.Router.TieBreak},
		{"floorDiscount", c.Router.FloorDiscount},
		{"junctionBias", c.Router.JunctionBias},
	}
	for _, w := range weights {
		if w.v != nil && *w.v < 0 {
			return fmt.Errorf("%w: router.%s must be non-negative, got %v", ErrInvalid, w.name, *w.v)
		}
	}
	if n := c.Router.CandidateLimit; n != nil && *n < 1 {
		return fmt.Errorf("%w: router.candidateLimit must be at least 1, got %d", ErrInvalid, *n)
	}

	for i, conn := range c.Connections {
		if len(conn.From) != 3 {
			return fmt.Errorf("%w: connections[%d].from needs 3 components, got %d", ErrInvalid, i, len(conn.From))
		}
		if len(conn.To) != 3 {
			return fmt.Errorf("%w: connections[%d].to needs 3 components, got %d", ErrInvalid, i, len(conn.To))
		}
	}

	return nil
}

// Extent returns the lattice extent.
func (c *Config) Extent() lattice.Extent {
	return lattice.Extent{X: c.Lattice.X, Y: c.Lattice.Y, Z: c.Lattice.Z}
}

// RouterOptions turns the set overrides into router options.
func (c *Config) RouterOptions() []router.Option {
	var opts []router.Option
	if v := c.Router.CostWeight; v != nil {
		opts = append(opts, router.WithCostWeight(*v))
	}
	if v := c.Router.TieBreak; v != nil {
		opts = append(opts, router.WithTieBreak(*v))
	}
	if v := c.Router.FloorDiscount; v != nil {
		opts = append(opts, router.WithFloorDiscount(*v))
	}
	if v := c.Router.JunctionBias; v != nil {
		opts = append(opts, router.WithJunctionBias(*v))
	}
	if v := c.Router.CandidateLimit; v != nil {
		opts = append(opts, router.WithCandidateLimit(*v))
	}

	return opts
}

// GatewayConfig builds the pipe system configuration for this job.
func (c *Config) GatewayConfig(logger *slog.Logger) gateway.Config {
	return gateway.Config{
		Extent:        c.Extent(),
		Unit:          c.Pipe.Unit,
		TipLength:     c.Pipe.TipLength,
		RouterOptions: c.RouterOptions(),
		Logger:        logger,
	}
}
