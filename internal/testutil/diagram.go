package testutil

import (
	"fmt"

	"github.com/roach88/socperf/internal/model"
)

// DiagramBuilder assembles diagrams for tests.
//
// Edges added without an explicit id are numbered "e1", "e2", ... in the
// order they are added.
type DiagramBuilder struct {
	d model.Diagram
}

// NewDiagram starts an empty diagram.
func NewDiagram() *DiagramBuilder {
	return &DiagramBuilder{d: model.Diagram{Nodes: []model.Node{}, Edges: []model.Connection{}}}
}

// NodeOption adjusts a node's data bag.
type NodeOption func(*model.ComponentData)

// Width sets the node-level data width in bits.
func Width(bits float64) NodeOption {
	return func(d *model.ComponentData) {
		d.DataWidth = model.Known(bits)
	}
}

// Clock sets the node-level frequency string, e.g. "500 MHz".
func Clock(freq string) NodeOption {
	return func(d *model.ComponentData) {
		d.Frequency = model.Measure(freq)
	}
}

// Latency sets the node-level latency string.
func Latency(lat string) NodeOption {
	return func(d *model.ComponentData) {
		d.Latency = model.Measure(lat)
	}
}

// Bandwidth sets the explicit node bandwidth string.
func Bandwidth(bw string) NodeOption {
	return func(d *model.ComponentData) {
		d.Bandwidth = model.Measure(bw)
	}
}

// ComponentID links the node to a catalog entry.
func ComponentID(id string) NodeOption {
	return func(d *model.ComponentData) {
		d.ComponentID = id
	}
}

// Iface appends an interface. A width of 0 leaves the width unresolved.
func Iface(id string, dir model.Direction, width float64, speed string) NodeOption {
	return func(d *model.ComponentData) {
		iface := model.Interface{ID: id, Name: id, Direction: dir, Speed: model.Measure(speed)}
		if width > 0 {
			iface.DataWidth = model.Known(width)
		}
		d.Interfaces = append(d.Interfaces, iface)
	}
}

// PathLatency appends an internal path entry.
func PathLatency(from, to, bandwidth, latency string) NodeOption {
	return func(d *model.ComponentData) {
		d.PathLatencies = append(d.PathLatencies, model.InternalPath{
			From:      from,
			To:        to,
			Bandwidth: model.Measure(bandwidth),
			Latency:   model.Measure(latency),
		})
	}
}

// Node adds a node with the given label and category tag.
func (b *DiagramBuilder) Node(id, label, category string, opts ...NodeOption) *DiagramBuilder {
	data := model.ComponentData{Label: label, Category: category}
	for _, opt := range opts {
		opt(&data)
	}
	b.d.Nodes = append(b.d.Nodes, model.Node{ID: id, Data: data})
	return b
}

// EdgeOption adjusts a connection.
type EdgeOption func(*model.Connection)

// EdgeID overrides the generated edge id.
func EdgeID(id string) EdgeOption {
	return func(c *model.Connection) {
		c.ID = id
	}
}

// Handles sets the source and target interface ids.
func Handles(source, target string) EdgeOption {
	return func(c *model.Connection) {
		c.SourceHandle = source
		c.TargetHandle = target
	}
}

// Protocol sets the edge label.
func Protocol(label string) EdgeOption {
	return func(c *model.Connection) {
		c.Label = label
	}
}

// Edge adds a directed connection.
func (b *DiagramBuilder) Edge(source, target string, opts ...EdgeOption) *DiagramBuilder {
	c := model.Connection{
		ID:     fmt.Sprintf("e%d", len(b.d.Edges)+1),
		Source: source,
		Target: target,
	}
	for _, opt := range opts {
		opt(&c)
	}
	b.d.Edges = append(b.d.Edges, c)
	return b
}

// Build returns the diagram. The builder may keep being used; later
// additions do not affect diagrams already built.
func (b *DiagramBuilder) Build() model.Diagram {
	return model.Diagram{
		Nodes: append([]model.Node(nil), b.d.Nodes...),
		Edges: append([]model.Connection(nil), b.d.Edges...),
	}
}
