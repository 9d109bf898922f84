package lattice

import "math"

// Scratch is the per-search state of a lattice: accumulated cost G,
// heuristic H, F = G + H, predecessor slot and closed flag. It is sized once
// for a lattice and reset before every search; durable occupancy lives on
// Node and is never touched here.
type Scratch struct {
	G, H, F []float64
	Pred    []int
	Closed  []bool
}

// NewScratch allocates scratch arrays for l and resets them.
func NewScratch(l *Lattice) *Scratch {
	n := l.Len()
	s := &Scratch{
		G:      make([]float64, n),
		H:      make([]float64, n),
		F:      make([]float64, n),
		Pred:   make([]int, n),
		Closed: make([]bool, n),
	}
	s.Reset()

	return s
}

// Reset sets costs to +∞, predecessors to -1 and clears closed flags.
// Complexity: O(N).
func (s *Scratch) Reset() {
	inf := math.Inf(1)
	for i := range s.G {
		s.G[i] = inf
		s.H[i] = inf
		s.F[i] = inf
		s.Pred[i] = -1
		s.Closed[i] = false
	}
}

// Trace walks predecessors back from end and returns the slots start…end.
// It returns nil if end is unreachable from start.
func (s *Scratch) Trace(start, end int) []int {
	var rev []int
	for at := end; at >= 0; at = s.Pred[at] {
		rev = append(rev, at)
		if at == start {
			out := make([]int, len(rev))
			for i, v := range rev {
				out[len(rev)-1-i] = v
			}

			return out
		}
		if len(rev) > len(s.Pred) {
			break
		}
	}

	return nil
}
