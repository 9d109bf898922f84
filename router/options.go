package router

import (
	"io"
	"log/slog"
)

// Options configures the search weights and junction placement.
//
// CostWeight     – multiplier of accumulated cost g in the priority key h + w·g.
// TieBreak       – fraction of Euclidean distance added to the Chebyshev heuristic.
// FloorDiscount  – subtracted from edges that land on z=0.
// JunctionBias   – weight of the index-centering term |len/2 − i| when picking
//
//	junction and bridge nodes on a host path.
//
// CandidateLimit – how many ranked junction/bridge candidates to try before
//
//	giving up with ErrNotFound.
//
// Logger         – structured logger; nil discards.
type Options struct {
	CostWeight     float64
	TieBreak       float64
	FloorDiscount  float64
	JunctionBias   float64
	CandidateLimit int
	Logger         *slog.Logger
}

// Option represents a functional option for configuring a Router.
type Option func(*Options)

// WithCostWeight sets the g multiplier of the priority key.
// Panics with ErrBadWeight on negative values.
func WithCostWeight(w float64) Option {
	return func(o *Options) {
		if w < 0 {
			panic(ErrBadWeight.Error())
		}
		o.CostWeight = w
	}
}

// WithTieBreak sets the Euclidean fraction of the heuristic.
// Panics with ErrBadWeight on negative values.
func WithTieBreak(w float64) Option {
	return func(o *Options) {
		if w < 0 {
			panic(ErrBadWeight.Error())
		}
		o.TieBreak = w
	}
}

// WithFloorDiscount sets the cost bonus for edges landing on the floor.
// Panics with ErrBadWeight on negative values.
func WithFloorDiscount(d float64) Option {
	return func(o *Options) {
		if d < 0 {
			panic(ErrBadWeight.Error())
		}
		o.FloorDiscount = d
	}
}

// WithJunctionBias sets the index-centering weight used when ranking
// junction and bridge candidates. Zero picks the geometrically nearest node.
// Panics with ErrBadWeight on negative values.
func WithJunctionBias(w float64) Option {
	return func(o *Options) {
		if w < 0 {
			panic(ErrBadWeight.Error())
		}
		o.JunctionBias = w
	}
}

// WithCandidateLimit sets how many ranked candidates are searched.
// Panics with ErrBadCandidateLimit when n < 1.
func WithCandidateLimit(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(ErrBadCandidateLimit.Error())
		}
		o.CandidateLimit = n
	}
}

// WithLogger sets the structured logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// DefaultOptions returns the tuning used by the router when no option is
// given.
//
// Defaults:
//   - CostWeight:     0.2
//   - TieBreak:       0.1
//   - FloorDiscount:  0.1
//   - JunctionBias:   0.05
//   - CandidateLimit: 1
//   - Logger:         nil (discard)
func DefaultOptions() Options {
	return Options{
		CostWeight:     0.2,
		TieBreak:       0.1,
		FloorDiscount:  0.1,
		JunctionBias:   0.05,
		CandidateLimit: 1,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
