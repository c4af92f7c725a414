package perf

import (
	"github.com/roach88/socperf/internal/classify"
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/units"
)

// session resolves figures for one Analyze call.
type session struct {
	m     *Modeler
	index *model.Index
	data  map[string]model.ComponentData
}

func (m *Modeler) newSession(d model.Diagram) *session {
	return &session{m: m, index: model.NewIndex(d), data: make(map[string]model.ComponentData)}
}

// nodeData returns the catalog-merged data for a node id. Nodes missing
// from the diagram resolve from their reference alone.
func (s *session) nodeData(ref model.NodeRef) model.ComponentData {
	if d, ok := s.data[ref.ID]; ok {
		return d
	}
	n, ok := s.index.Node(ref.ID)
	if !ok {
		n = model.Node{ID: ref.ID, Data: model.ComponentData{Label: ref.Label, Category: ref.Category}}
	}
	d := s.m.catalog.Effective(n)
	s.data[ref.ID] = d
	return d
}

// flowWidth returns the flow-level width override (0 when none applies)
// and false when a matched interface has no usable width.
func (s *session) flowWidth(f model.DataFlow) (float64, bool) {
	for _, id := range f.Edges {
		e, ok := s.index.Edge(id)
		if !ok {
			continue
		}
		for _, end := range []struct{ node, handle string }{
			{e.Source, e.SourceHandle},
			{e.Target, e.TargetHandle},
		} {
			iface, ok := s.nodeData(model.NodeRef{ID: end.node}).Interface(end.handle)
			if !ok {
				continue
			}
			if !iface.DataWidth.Positive() {
				return 0, false
			}
			return iface.DataWidth.Or(0), true
		}
	}
	return 0, true
}

// handles returns the ingress and egress interface ids used at hop i.
func (s *session) handles(f model.DataFlow, i int) (ingress, egress string) {
	if i > 0 && i-1 < len(f.Edges) {
		if e, ok := s.index.Edge(f.Edges[i-1]); ok {
			ingress = e.TargetHandle
		}
	}
	if i < len(f.Edges) {
		if e, ok := s.index.Edge(f.Edges[i]); ok {
			egress = e.SourceHandle
		}
	}
	return ingress, egress
}

func (s *session) component(f model.DataFlow, i int, ref model.NodeRef, override float64) model.ComponentPerformance {
	data := s.nodeData(ref)
	cat := classify.Parse(data.Kind())
	ingress, egress := s.handles(f, i)

	cp := model.ComponentPerformance{
		ComponentID: ref.ID,
		Label:       ref.Label,
		Category:    data.Kind(),
	}

	if p, ok := internalPath(data, ingress, egress); ok {
		s.resolvePath(&cp, data, cat, p, ingress, egress, override)
		return cp
	}

	iface, _ := matchedInterface(data, ingress, egress)
	mhz, explicit := s.clock(data, iface)
	cp.DataWidth = s.width(data, cat, iface, override)
	cp.FrequencyMHz = mhz
	cp.LatencyCycles = latency(data, cat, iface, conversionClock(mhz, explicit))
	cp.BandwidthMbps = units.Bandwidth(cp.DataWidth, cp.FrequencyMHz)
	return cp
}

func (s *session) resolvePath(cp *model.ComponentPerformance, data model.ComponentData, cat classify.Category, p model.InternalPath, ingress, egress string, override float64) {
	in, _ := data.Interface(ingress)
	out, _ := data.Interface(egress)

	inF, inExplicit := s.clock(data, &in)
	outF, outExplicit := s.clock(data, &out)
	// Each side runs at its own width; the flow width does not apply inside.
	inW := s.width(data, cat, &in, 0)
	outW := s.width(data, cat, &out, 0)

	cp.DataWidth, cp.FrequencyMHz = inW, inF
	explicit := inExplicit
	if units.Bandwidth(outW, outF) < units.Bandwidth(inW, inF) {
		cp.DataWidth, cp.FrequencyMHz = outW, outF
		explicit = outExplicit
	}

	cp.BandwidthMbps = units.Bandwidth(cp.DataWidth, cp.FrequencyMHz)
	if bw, ok := units.BandwidthMbps(string(p.Bandwidth)); ok {
		cp.BandwidthMbps = bw
	}

	mhz := conversionClock(cp.FrequencyMHz, explicit)
	if c, ok := units.LatencyCycles(string(p.Latency), mhz); ok {
		cp.LatencyCycles = c
	} else if c, ok := units.LatencyCycles(string(data.Latency), mhz); ok {
		cp.LatencyCycles = c
	} else {
		cp.LatencyCycles = classify.FallbackLatencyCycles
	}
}

// conversionClock returns the clock used for ns→cycle conversion: 0 (the fixed
// default ratio) unless the component declared its own clock.
func conversionClock(mhz float64, explicit bool) float64 {
	if !explicit {
		return 0
	}
	return mhz
}

// internalPath finds a declared route between two interfaces. The legacy
// paths table also matches in reverse.
func internalPath(data model.ComponentData, ingress, egress string) (model.InternalPath, bool) {
	if ingress == "" || egress == "" {
		return model.InternalPath{}, false
	}
	for _, p := range data.PathLatencies {
		if p.From == ingress && p.To == egress {
			return p, true
		}
	}
	for _, p := range data.Paths {
		if (p.From == ingress && p.To == egress) || (p.From == egress && p.To == ingress) {
			return p, true
		}
	}
	return model.InternalPath{}, false
}

// matchedInterface picks the interface whose figures describe the hop:
// egress, then ingress, then the node's only interface.
func matchedInterface(data model.ComponentData, ingress, egress string) (*model.Interface, bool) {
	for _, id := range []string{egress, ingress} {
		if iface, ok := data.Interface(id); ok {
			return &iface, true
		}
	}
	if len(data.Interfaces) == 1 {
		iface := data.Interfaces[0]
		return &iface, true
	}
	return nil, false
}

func (s *session) width(data model.ComponentData, cat classify.Category, iface *model.Interface, override float64) float64 {
	if override > 0 {
		return override
	}
	if iface != nil && iface.DataWidth.Positive() {
		return iface.DataWidth.Or(0)
	}
	if data.DataWidth.Positive() {
		return data.DataWidth.Or(0)
	}
	return classify.DefaultWidth(cat)
}

// clock reports the resolved frequency and whether it came from the
// component rather than the global default.
func (s *session) clock(data model.ComponentData, iface *model.Interface) (float64, bool) {
	if iface != nil {
		if f, ok := units.FrequencyMHz(string(iface.Speed)); ok {
			return f, true
		}
	}
	if f, ok := units.FrequencyMHz(string(data.ClockMeasure())); ok {
		return f, true
	}
	return s.m.clockMHz, false
}

// latency resolves cycles. Time values convert at clockMHz, or at
// units.DefaultNsPerCycle when clockMHz is 0.
func latency(data model.ComponentData, cat classify.Category, iface *model.Interface, clockMHz float64) float64 {
	if iface != nil {
		if c, ok := units.LatencyCycles(string(iface.Latency), clockMHz); ok {
			return c
		}
	}
	if c, ok := units.LatencyCycles(string(data.Latency), clockMHz); ok {
		return c
	}
	return classify.DefaultLatency(cat)
}
