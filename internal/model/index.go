package model

import "fmt"

// Index is a read-only lookup structure over a Diagram.
//
// Outgoing edges are kept in declaration order so that traversals are
// deterministic.
type Index struct {
	nodes    []Node
	byID     map[string]int
	edges    map[string]Connection
	outgoing map[string][]Connection
}

// NewIndex builds an index. Duplicate node ids keep their first occurrence;
// edges whose endpoints are missing are ignored. Edges without an id are
// given a positional one ("edge-3") so flows can always reference them.
func NewIndex(d Diagram) *Index {
	x := &Index{
		byID:     make(map[string]int, len(d.Nodes)),
		edges:    make(map[string]Connection, len(d.Edges)),
		outgoing: make(map[string][]Connection),
	}

	for _, n := range d.Nodes {
		if _, dup := x.byID[n.ID]; dup {
			continue
		}
		x.byID[n.ID] = len(x.nodes)
		x.nodes = append(x.nodes, n)
	}

	for i, e := range d.Edges {
		if e.ID == "" {
			e.ID = fmt.Sprintf("edge-%d", i)
		}
		if _, ok := x.byID[e.Source]; !ok {
			continue
		}
		if _, ok := x.byID[e.Target]; !ok {
			continue
		}
		if _, dup := x.edges[e.ID]; !dup {
			x.edges[e.ID] = e
		}
		x.outgoing[e.Source] = append(x.outgoing[e.Source], e)
	}

	return x
}

// Nodes returns the nodes in declaration order.
func (x *Index) Nodes() []Node {
	return x.nodes
}

// Node returns the node with the given id.
func (x *Index) Node(id string) (Node, bool) {
	i, ok := x.byID[id]
	if !ok {
		return Node{}, false
	}
	return x.nodes[i], true
}

// Edge returns the connection with the given id.
func (x *Index) Edge(id string) (Connection, bool) {
	e, ok := x.edges[id]
	return e, ok
}

// Outgoing returns the edges leaving a node.
func (x *Index) Outgoing(id string) []Connection {
	return x.outgoing[id]
}
