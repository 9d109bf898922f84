// Package tubelath routes fluid channels through a 3D lattice, the core of a
// generator for 3D-printable fluid logic gates.
//
// What is tubelath?
//
//	A single-session router that wires component ports together with tubes
//	that never cross inside a unit cell:
//		• Lattice: a dense 26-connected arena of cells with durable occupancy
//		• Search: a greedy-leaning A* that prefers to descend and run on the floor
//		• Connections: fresh paths, junctions into existing paths, bridges
//		  between two paths, and elevated tips anchored to the floor
//		• Crossover elimination: diagonal steps unlink the cell pairs that would
//		  intersect them
//		• Gateway: real-world port coordinates snapped onto the lattice and
//		  mapped back for geometry emission
//
// Packages:
//
//	lattice/        — Coord, Extent, Node, Lattice arena and per-search Scratch
//	router/         — Router: FindPath, Connect, ConnectTips, SplitPath, DeletePath, Layout
//	gateway/        — PipeSystem: port snapping, ConnectPorts, Fetch in real coordinates
//	config/         — YAML routing jobs
//	cmd/tuberoute/  — command that routes a job and prints the layout as YAML
//
// Quick example:
//
//	r, _ := router.New(lattice.Extent{X: 10, Y: 10, Z: 5})
//	west, _ := r.Connect(lattice.Coord{}, lattice.Coord{Y: 10})
//	east, _ := r.Connect(lattice.Coord{X: 10, Y: 10}, lattice.Coord{X: 10})
//	bridge, _ := r.Connect(lattice.Coord{}, lattice.Coord{X: 10}) // two junctions
//
// A Router is not safe for concurrent use; every request reads and mutates
// the lattice occupancy, so callers serialise access.
package tubelath
