// Package router implements a greedy-leaning A* over a 26-connected
// lattice, tuned for routing fluid channels, and the connection manager
// built on it: saved paths, junctions, bridges and elevated tips.
//
// A Router is created once per session with New and then takes requests:
//
//   - FindPath routes a fresh path and commits it.
//   - Connect picks a fresh path, a junction or a bridge from how the
//     termini relate to saved paths.
//   - ConnectTips anchors elevated tips to the floor first.
//   - SplitPath and DeletePath edit the saved-path registry.
//   - Layout emits every path, stitched and smoothed.
//
// Every request is atomic: on error the registries and occupancy are
// restored to their state before the call.
//
// Cost model:
//
//   - Edge cost g(from,to) is the Euclidean step length, except that a step
//     down (Δz = −1) is priced as the lateral move at the source level, and a
//     step landing on z=0 is discounted by FloorDiscount. Routes descend early
//     and run along the floor, where junctions are cheap to find.
//   - Heuristic h(n) is the Chebyshev distance to the goal plus TieBreak times
//     the Euclidean distance, favouring diagonal moves among equal Chebyshev
//     steps.
//   - The open set is ordered by h + CostWeight·g, not f = g + h. With the
//     downward discount h is not admissible, so optimality is best effort.
//
// Notes on implementation choices:
//
//   - Durable occupancy (Node.Visited) excludes cells; the closed set lives
//     in lattice.Scratch and is reset before and after every search.
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap
//     and ignoring stale entries once the node is closed.
//   - Equal keys pop in insertion order.
package router
