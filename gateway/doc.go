// Package gateway maps real-world port coordinates onto a router lattice and
// back.
//
// A PipeSystem owns one router.Router. Ports live in continuous space
// (r3.Vec); each port hangs a tip TipLength below it, and the tip is snapped
// to a lattice cell of edge length Unit:
//
//  1. Floor-divide by Unit; off-grid coordinates are nudged one cell toward
//     the partner port on the axes where the partner lies ahead.
//  2. If the cell is in use (occupied by a route or claimed by another
//     port), try one step back along x, then y, then both.
//  3. If all are in use, step back on both and descend a layer; below z=0
//     the snap fails with ErrNoSnapPoint.
//
// A port keeps its snapped cell for the lifetime of the session, so fan-in
// and fan-out requests reuse it and resolve as junctions or bridges.
//
// Fetch converts the router layout to real coordinates, with the port and
// tip points dressed onto every route that ends at a port.
package gateway
