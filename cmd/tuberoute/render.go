package main

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tubelath/gateway"
)

// layoutDoc is the YAML shape of a routed job.
type layoutDoc struct {
	Connections []connectionDoc `yaml:"connections"`
	Junctions   []junctionDoc   `yaml:"junctions"`
	Errors      []string        `yaml:"errors,omitempty"`
	Warnings    []string        `yaml:"warnings,omitempty"`
}

type connectionDoc struct {
	From []float64   `yaml:"from,flow"`
	To   []float64   `yaml:"to,flow"`
	Path [][]float64 `yaml:"path,flow"`
}

type junctionDoc struct {
	At          []float64   `yaml:"at,flow"`
	Connections [][]float64 `yaml:"connections,flow"`
}

// render encodes the fetched layout, ordered by endpoint coordinates so the
// output is stable.
func render(ps *gateway.PipeSystem) ([]byte, error) {
	res := ps.Fetch()
	doc := layoutDoc{
		Connections: make([]connectionDoc, 0, len(res.Connections)),
		Junctions:   make([]junctionDoc, 0, len(res.Junctions)),
		Errors:      ps.Errors(),
		Warnings:    ps.Warnings(),
	}

	segs := make([]gateway.Segment, 0, len(res.Connections))
	for s := range res.Connections {
		segs = append(segs, s)
	}
	sort.Slice(segs, func(i, j int) bool {
		if segs[i].From != segs[j].From {
			return vecLess(segs[i].From, segs[j].From)
		}

		return vecLess(segs[i].To, segs[j].To)
	})
	for _, s := range segs {
		doc.Connections = append(doc.Connections, connectionDoc{
			From: triple(s.From),
			To:   triple(s.To),
			Path: triples(res.Connections[s]),
		})
	}

	js := make([]r3.Vec, 0, len(res.Junctions))
	for j := range res.Junctions {
		js = append(js, j)
	}
	sort.Slice(js, func(i, j int) bool { return vecLess(js[i], js[j]) })
	for _, j := range js {
		doc.Junctions = append(doc.Junctions, junctionDoc{At: triple(j), Connections: triples(res.Junctions[j])})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling layout YAML: %w", err)
	}

	return data, nil
}

func vecLess(a, b r3.Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}

	return a.Z < b.Z
}

func triple(v r3.Vec) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func triples(vs []r3.Vec) [][]float64 {
	out := make([][]float64, len(vs))
	for i, v := range vs {
		out[i] = triple(v)
	}

	return out
}
