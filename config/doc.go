// Package config loads tuberoute jobs from YAML.
//
// A job names the lattice extent, optional router tuning, the pipe units
// and a list of port connections:
//
//	lattice: {x: 20, y: 20, z: 20}
//	router:
//	  junctionBias: 0.05
//	  candidateLimit: 3
//	pipe:
//	  unit: 1
//	  tipLength: 1
//	connections:
//	  - from: [15, 10, 2]
//	    to: [0, 10, 3]
//
// Missing sections keep the values of Default. Load and Parse validate the
// result; every failure wraps ErrInvalid with the offending field.
package config
