// Package lattice treats a bounded 3D integer box as a 26-connected graph of
// cells, the discrete space fluid channels are routed through.
//
// What:
//
//   - Lattice allocates one Node per coordinate up front, addressed by a
//     flattened index (x-major, then y, then z).
//   - Every Node precomputes its in-bounds neighbors: 6 axis, 12 planar
//     diagonal and 8 space diagonal offsets.
//   - Neighbor pairs can be blocked (symmetrically) to forbid two tubes from
//     crossing inside one unit cell; Node.Neighbors excludes them.
//   - Scratch holds per-search cost fields, kept apart from the durable
//     occupancy (Visited, blocked pairs).
//
// Coordinates:
//
//   - Extent is the inclusive maximum coordinate: Extent{10,10,5} spans
//     0..10 × 0..10 × 0..5, i.e. 11×11×6 cells.
//   - Z=0 is the floor plane.
//
// Complexity:
//
//   - New:      O(N·26) time and memory, N = number of cells.
//   - Index:    O(1).
//   - Block:    O(1) amortized; Neighbors is rebuilt lazily in O(26).
//   - Scratch.Reset: O(N).
//
// Errors:
//
//   - ErrBadExtent:   an extent component is negative.
//   - ErrOutOfBounds: a coordinate lies outside the lattice.
//   - ErrNotNeighbor: Block was asked to unlink two non-adjacent cells.
package lattice
