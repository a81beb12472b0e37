package workflow

import (
	"encoding/json"
	"sort"
)

// PortMain is the connection kind that carries regular item flow between nodes.
const PortMain = "main"

// Position is the canvas coordinate of a node. It is encoded as a two element array.
type Position struct {
	X float64
	Y float64
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) > 0 {
		p.X = arr[0]
	}
	if len(arr) > 1 {
		p.Y = arr[1]
	}
	return nil
}

// Node is a single typed step of a workflow document.
type Node struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	TypeVersion float64        `json:"typeVersion,omitempty"`
	Parameters  map[string]any `json:"parameters"`
	Position    Position       `json:"position"`
}

// Target is one destination of an output port.
type Target struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// ConnectionMap maps a source node name to its port kinds, and every port kind to the
// ordered target lists of each output index.
type ConnectionMap map[string]map[string][][]Target

// Edge is a flattened connection between two nodes of the graph.
type Edge struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Port        string `json:"port"`
	OutputIndex int    `json:"outputIndex"`
}

// Graph is the validated, annotation free form of a workflow document.
type Graph struct {
	Name        string
	Tags        []string
	Nodes       []Node
	Connections ConnectionMap
}

// Edges lists every connection between two known nodes. Edges are ordered by source node
// (input order), then port kind (main first, others lexically), output index and target order.
func (g *Graph) Edges() []Edge {
	known := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		known[n.Name] = struct{}{}
	}

	var edges []Edge
	for _, n := range g.Nodes {
		ports := g.Connections[n.Name]
		for _, kind := range portKinds(ports) {
			for idx, targets := range ports[kind] {
				for _, t := range targets {
					if _, ok := known[t.Node]; !ok {
						continue
					}
					edges = append(edges, Edge{From: n.Name, To: t.Node, Port: kind, OutputIndex: idx})
				}
			}
		}
	}
	return edges
}

// successors returns the names of all known targets of a node, duplicates included.
func (g *Graph) successors(name string, known map[string]string) []string {
	ports := g.Connections[name]
	var out []string
	for _, kind := range portKinds(ports) {
		for _, targets := range ports[kind] {
			for _, t := range targets {
				if _, ok := known[t.Node]; ok {
					out = append(out, t.Node)
				}
			}
		}
	}
	return out
}

func portKinds(ports map[string][][]Target) []string {
	kinds := make([]string, 0, len(ports))
	for k := range ports {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if kinds[i] == PortMain || kinds[j] == PortMain {
			return kinds[i] == PortMain && kinds[j] != PortMain
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}

// Document is the typed form of a workflow document, accepted by Ingest as an alternative
// to raw JSON or YAML.
type Document struct {
	Name        string        `json:"name,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Nodes       []Node        `json:"nodes"`
	Connections ConnectionMap `json:"connections,omitempty"`
}
