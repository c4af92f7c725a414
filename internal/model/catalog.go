package model

import "strings"

// Component is a catalog entry: resolved metadata for a component model.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	ComponentData
}

// Catalog is a read-only component-metadata table.
type Catalog struct {
	components []Component
}

// NewCatalog copies components into a new catalog.
func NewCatalog(components []Component) Catalog {
	cp := make([]Component, len(components))
	copy(cp, components)
	return Catalog{components: cp}
}

// Len returns the number of entries.
func (c Catalog) Len() int {
	return len(c.components)
}

// Components returns a copy of the entries.
func (c Catalog) Components() []Component {
	cp := make([]Component, len(c.components))
	copy(cp, c.components)
	return cp
}

// Lookup finds the catalog entry for a node.
//
// Match order: the node's componentId against entry ids, then the node
// label against entry names (case-insensitive), then the node category
// against entry categories (case-insensitive).
func (c Catalog) Lookup(n Node) (Component, bool) {
	if id := n.Data.ComponentID; id != "" {
		for _, comp := range c.components {
			if comp.ID == id {
				return comp, true
			}
		}
	}
	if label := n.Data.Label; label != "" {
		for _, comp := range c.components {
			if comp.Name != "" && strings.EqualFold(comp.Name, label) {
				return comp, true
			}
		}
	}
	if kind := n.Data.Kind(); kind != "" {
		for _, comp := range c.components {
			if strings.EqualFold(comp.Kind(), kind) {
				return comp, true
			}
		}
	}
	return Component{}, false
}

// Effective merges a node's inline data with its catalog entry.
//
// Inline fields win field by field. Interfaces and internal path tables
// are taken from the catalog only when the node declares none.
func (c Catalog) Effective(n Node) ComponentData {
	data := n.Data
	comp, ok := c.Lookup(n)
	if !ok {
		return data
	}
	meta := comp.ComponentData

	if data.Category == "" && data.Type == "" {
		data.Category = meta.Kind()
	}
	if len(data.Interfaces) == 0 {
		data.Interfaces = meta.Interfaces
	}
	if !data.DataWidth.IsKnown() {
		data.DataWidth = meta.DataWidth
	}
	if data.ClockMeasure().IsZero() {
		data.Frequency = meta.ClockMeasure()
	}
	if data.Latency.IsZero() {
		data.Latency = meta.Latency
	}
	if data.Bandwidth.IsZero() {
		data.Bandwidth = meta.Bandwidth
	}
	if len(data.PathLatencies) == 0 {
		data.PathLatencies = meta.PathLatencies
	}
	if len(data.Paths) == 0 {
		data.Paths = meta.Paths
	}
	return data
}
