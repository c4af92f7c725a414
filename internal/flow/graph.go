package flow

import (
	"github.com/roach88/socperf/internal/classify"
	"github.com/roach88/socperf/internal/model"
)

// graph is the per-call view of a diagram: the index plus memoized
// effective data and classification for each node.
type graph struct {
	index      *model.Index
	catalog    model.Catalog
	effective  map[string]model.ComponentData
	components map[string]classify.Component
}

func newGraph(d model.Diagram, catalog model.Catalog) *graph {
	return &graph{
		index:      model.NewIndex(d),
		catalog:    catalog,
		effective:  make(map[string]model.ComponentData),
		components: make(map[string]classify.Component),
	}
}

func (g *graph) data(n model.Node) model.ComponentData {
	if d, ok := g.effective[n.ID]; ok {
		return d
	}
	d := g.catalog.Effective(n)
	g.effective[n.ID] = d
	return d
}

func (g *graph) component(n model.Node) classify.Component {
	if c, ok := g.components[n.ID]; ok {
		return c
	}
	c := classify.Classify(n.Label(), g.data(n))
	g.components[n.ID] = c
	return c
}

// ref summarizes a node with its effective category.
func (g *graph) ref(n model.Node) model.NodeRef {
	return model.NodeRef{ID: n.ID, Label: n.Label(), Category: g.data(n).Kind()}
}

// interfaceName returns the display name of a node's interface.
func (g *graph) interfaceName(n model.Node, id string) string {
	if iface, ok := g.data(n).Interface(id); ok && iface.Name != "" {
		return iface.Name
	}
	return id
}
