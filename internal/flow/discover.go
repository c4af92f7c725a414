package flow

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/socperf/internal/classify"
	"github.com/roach88/socperf/internal/model"
)

// DefaultMaxDepth bounds the number of hops in a discovered path.
const DefaultMaxDepth = 10

// Discoverer enumerates flows. It holds only read-only configuration, so
// one Discoverer may serve concurrent calls as long as its IDGenerator is
// safe for concurrent use.
type Discoverer struct {
	catalog  model.Catalog
	maxDepth int
	ids      IDGenerator
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithCatalog sets the component-metadata table.
func WithCatalog(c model.Catalog) Option {
	return func(d *Discoverer) {
		d.catalog = c
	}
}

// WithMaxDepth sets the hop limit. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(d *Discoverer) {
		if n > 0 {
			d.maxDepth = n
		}
	}
}

// WithIDGenerator sets the flow id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(d *Discoverer) {
		if g != nil {
			d.ids = g
		}
	}
}

// NewDiscoverer creates a Discoverer with DefaultMaxDepth and
// PathHashGenerator unless overridden.
func NewDiscoverer(opts ...Option) *Discoverer {
	d := &Discoverer{
		maxDepth: DefaultMaxDepth,
		ids:      PathHashGenerator{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover enumerates every source→sink flow in the diagram.
func (d *Discoverer) Discover(diagram model.Diagram) []model.DataFlow {
	g := newGraph(diagram, d.catalog)

	flows := []model.DataFlow{}
	seen := make(map[string]bool)
	sources := 0

	for _, n := range g.index.Nodes() {
		if g.component(n).Role != classify.RoleSource {
			continue
		}
		if len(g.index.Outgoing(n.ID)) == 0 {
			continue
		}
		sources++

		d.walk(g, n, func(nodes []model.Node, edges []model.Connection) {
			key := edgeKey(edges)
			if seen[key] {
				return
			}
			seen[key] = true
			flows = append(flows, d.build(g, nodes, edges, d.ids.Generate(key)))
		})
	}

	slog.Debug("flow discovery complete",
		"nodes", len(g.index.Nodes()),
		"sources", sources,
		"flows", len(flows),
	)
	return flows
}

// walk runs the bounded depth-first search from src and calls emit with
// copies of every terminated path.
func (d *Discoverer) walk(g *graph, src model.Node, emit func([]model.Node, []model.Connection)) {
	visited := map[string]bool{src.ID: true}
	nodes := []model.Node{src}
	var edges []model.Connection

	var visit func(cur model.Node)
	visit = func(cur model.Node) {
		var next []model.Connection
		for _, e := range g.index.Outgoing(cur.ID) {
			if !visited[e.Target] {
				next = append(next, e)
			}
		}

		if len(next) == 0 {
			if len(nodes) >= 2 && g.component(cur).Role != classify.RoleRelay {
				emit(append([]model.Node(nil), nodes...), append([]model.Connection(nil), edges...))
			}
			return
		}
		if len(edges) >= d.maxDepth {
			slog.Debug("path truncated at depth limit",
				"source", src.ID,
				"node", cur.ID,
				"depth", len(edges),
			)
			return
		}

		for _, e := range next {
			target, _ := g.index.Node(e.Target)
			visited[target.ID] = true
			nodes = append(nodes, target)
			edges = append(edges, e)

			visit(target)

			nodes = nodes[:len(nodes)-1]
			edges = edges[:len(edges)-1]
			delete(visited, target.ID)
		}
	}

	visit(src)
}

// build assembles a DataFlow from a path.
func (d *Discoverer) build(g *graph, nodes []model.Node, edges []model.Connection, id string) model.DataFlow {
	src, sink := nodes[0], nodes[len(nodes)-1]

	path := make([]model.NodeRef, len(nodes))
	for i, n := range nodes {
		path[i] = g.ref(n)
	}
	edgeIDs := make([]string, len(edges))
	for i, e := range edges {
		edgeIDs[i] = e.ID
	}

	return model.DataFlow{
		ID:              id,
		Name:            fmt.Sprintf("%s → %s", src.Label(), sink.Label()),
		TrafficType:     classify.Traffic(g.component(src), g.component(sink)),
		Source:          path[0],
		Sink:            path[len(path)-1],
		Path:            path,
		Edges:           edgeIDs,
		Protocol:        DetectProtocol(edges),
		SourceInterface: edges[0].SourceHandle,
		TargetInterface: edges[len(edges)-1].TargetHandle,
	}
}

// DetectProtocol returns the first non-empty edge label, or
// model.UnknownProtocol.
func DetectProtocol(edges []model.Connection) string {
	for _, e := range edges {
		if label := strings.TrimSpace(e.Label); label != "" {
			return label
		}
	}
	return model.UnknownProtocol
}

func edgeKey(edges []model.Connection) string {
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.ID
	}
	return strings.Join(ids, "|")
}
