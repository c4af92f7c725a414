package flow

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/socperf/internal/model"
)

// Resolve finds the shortest path (fewest hops) for an explicit request.
// It reports false when either endpoint is missing, when source and target
// are the same node, or when no path exists.
func (d *Discoverer) Resolve(diagram model.Diagram, req model.FlowRequest) (model.DataFlow, bool) {
	g := newGraph(diagram, d.catalog)
	return d.resolve(g, req)
}

func (d *Discoverer) resolve(g *graph, req model.FlowRequest) (model.DataFlow, bool) {
	src, ok := g.index.Node(req.SourceID)
	if !ok {
		return model.DataFlow{}, false
	}
	dst, ok := g.index.Node(req.TargetID)
	if !ok || src.ID == dst.ID {
		return model.DataFlow{}, false
	}

	nodes, edges, ok := shortestPath(g.index, src, dst)
	if !ok {
		slog.Debug("no path for flow request", "source", req.SourceID, "target", req.TargetID)
		return model.DataFlow{}, false
	}

	id := req.FlowID
	if id == "" {
		id = d.ids.Generate(requestKey(edges, req))
	}
	f := d.build(g, nodes, edges, id)
	if req.SourceInterface != "" {
		f.SourceInterface = req.SourceInterface
	}
	if req.TargetInterface != "" {
		f.TargetInterface = req.TargetInterface
	}
	f.Name = qualifiedName(g, src, dst, f.SourceInterface, f.TargetInterface)
	return f, true
}

// requestKey extends the edge key with the requested interfaces, so
// requests that differ only by port get distinct content ids.
func requestKey(edges []model.Connection, req model.FlowRequest) string {
	key := edgeKey(edges)
	if req.SourceInterface != "" || req.TargetInterface != "" {
		key += "#" + req.SourceInterface + ">" + req.TargetInterface
	}
	return key
}

// shortestPath is a breadth-first search over outgoing edges. Ties are
// broken by edge declaration order.
func shortestPath(x *model.Index, src, dst model.Node) ([]model.Node, []model.Connection, bool) {
	via := map[string]model.Connection{}
	visited := map[string]bool{src.ID: true}
	queue := []string{src.ID}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == dst.ID {
			break
		}
		for _, e := range x.Outgoing(cur) {
			if visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			via[e.Target] = e
			queue = append(queue, e.Target)
		}
	}

	if !visited[dst.ID] {
		return nil, nil, false
	}

	var edges []model.Connection
	for cur := dst.ID; cur != src.ID; {
		e := via[cur]
		edges = append(edges, e)
		cur = e.Source
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	nodes := []model.Node{src}
	for _, e := range edges {
		n, _ := x.Node(e.Target)
		nodes = append(nodes, n)
	}
	return nodes, edges, true
}

func qualifiedName(g *graph, src, dst model.Node, srcIface, dstIface string) string {
	left := src.Label()
	if srcIface != "" {
		left += ":" + g.interfaceName(src, srcIface)
	}
	right := dst.Label()
	if dstIface != "" {
		right += ":" + g.interfaceName(dst, dstIface)
	}
	return fmt.Sprintf("%s → %s", left, right)
}

// Select turns explicit requests into flows. A request whose (source, target)
// pair was already discovered adopts that flow under the request's id and an
// interface-qualified name; other requests are resolved by shortest path.
// Requests that cannot be satisfied are returned in the second result.
func (d *Discoverer) Select(diagram model.Diagram, discovered []model.DataFlow, reqs []model.FlowRequest) ([]model.DataFlow, []model.FlowRequest) {
	g := newGraph(diagram, d.catalog)

	flows := make([]model.DataFlow, 0, len(reqs))
	var missing []model.FlowRequest
	selected := map[string]model.DataFlow{}

	add := func(f model.DataFlow) {
		if prev, ok := selected[f.ID]; ok && sameFlow(prev, f) {
			slog.Debug("duplicate flow request", "flow", f.ID)
			return
		}
		selected[f.ID] = f
		flows = append(flows, f)
	}

	for _, req := range reqs {
		if f, ok := adopt(g, discovered, req); ok {
			add(f)
			continue
		}
		if f, ok := d.resolve(g, req); ok {
			add(f)
			continue
		}
		missing = append(missing, req)
	}
	return flows, missing
}

// sameFlow reports whether two flows take the same edges between the same
// interfaces.
func sameFlow(a, b model.DataFlow) bool {
	return slices.Equal(a.Edges, b.Edges) &&
		a.SourceInterface == b.SourceInterface &&
		a.TargetInterface == b.TargetInterface
}

func adopt(g *graph, discovered []model.DataFlow, req model.FlowRequest) (model.DataFlow, bool) {
	for _, f := range discovered {
		if f.Source.ID != req.SourceID || f.Sink.ID != req.TargetID {
			continue
		}
		if req.SourceInterface != "" && f.SourceInterface != req.SourceInterface {
			continue
		}
		if req.TargetInterface != "" && f.TargetInterface != req.TargetInterface {
			continue
		}

		out := f
		out.Path = append([]model.NodeRef(nil), f.Path...)
		out.Edges = append([]string(nil), f.Edges...)
		if req.FlowID != "" {
			out.ID = req.FlowID
		}
		src, _ := g.index.Node(f.Source.ID)
		dst, _ := g.index.Node(f.Sink.ID)
		out.Name = qualifiedName(g, src, dst, out.SourceInterface, out.TargetInterface)
		return out, true
	}
	return model.DataFlow{}, false
}
