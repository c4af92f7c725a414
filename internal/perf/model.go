package perf

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/units"
)

// ErrEmptyPath is returned when a flow has no components to model.
var ErrEmptyPath = errors.New("perf: flow has no components")

// DefaultClockMHz is the global clock used when nothing else resolves.
const DefaultClockMHz = 1000.0

// Modeler computes PerformanceMetrics. It holds only read-only
// configuration and is safe for concurrent use.
type Modeler struct {
	catalog  model.Catalog
	clockMHz float64
}

// Option configures a Modeler.
type Option func(*Modeler)

// WithCatalog sets the component-metadata table.
func WithCatalog(c model.Catalog) Option {
	return func(m *Modeler) {
		m.catalog = c
	}
}

// WithClockMHz sets the global default clock. Non-positive values keep
// DefaultClockMHz.
func WithClockMHz(mhz float64) Option {
	return func(m *Modeler) {
		if mhz > 0 {
			m.clockMHz = mhz
		}
	}
}

// NewModeler creates a Modeler.
func NewModeler(opts ...Option) *Modeler {
	m := &Modeler{clockMHz: DefaultClockMHz}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Analyze models every flow, preserving order.
func (m *Modeler) Analyze(d model.Diagram, flows []model.DataFlow) ([]model.PerformanceMetrics, error) {
	s := m.newSession(d)

	out := make([]model.PerformanceMetrics, 0, len(flows))
	for _, f := range flows {
		pm, err := s.flow(f)
		if err != nil {
			return nil, fmt.Errorf("flow %s: %w", f.ID, err)
		}
		out = append(out, pm)
	}
	return out, nil
}

// Flow models a single flow.
func (m *Modeler) Flow(d model.Diagram, f model.DataFlow) (model.PerformanceMetrics, error) {
	return m.newSession(d).flow(f)
}

func (s *session) flow(f model.DataFlow) (model.PerformanceMetrics, error) {
	if len(f.Path) == 0 {
		return model.PerformanceMetrics{}, ErrEmptyPath
	}

	width, ok := s.flowWidth(f)
	if !ok {
		slog.Debug("flow width unresolved", "flow", f.ID)
		return model.PerformanceMetrics{
			FlowID:     f.ID,
			FlowName:   f.Name,
			DataWidth:  model.Unresolved(),
			Unresolved: true,
			Components: []model.ComponentPerformance{},
		}, nil
	}

	components := make([]model.ComponentPerformance, len(f.Path))
	for i, ref := range f.Path {
		components[i] = s.component(f, i, ref, width)
	}

	idx, err := FindBottleneck(components)
	if err != nil {
		return model.PerformanceMetrics{}, err
	}

	pm := model.PerformanceMetrics{
		FlowID:     f.ID,
		FlowName:   f.Name,
		Components: components,
	}

	rep := components[0]
	minBW, maxBW := bandwidthRange(components)
	if idx >= 0 {
		components[idx].IsBottleneck = true
		rep = components[idx]
		ref := f.Path[idx]
		pm.Bottleneck = &ref
		pm.BottleneckReason = Reason(rep)
	}

	pm.MaxThroughputMbps = units.Round(minBW, 2)
	pm.DataWidth = model.Known(rep.DataWidth)
	pm.FrequencyMHz = rep.FrequencyMHz
	pm.LatencyNs = units.Round(pathLatencyNs(components), 2)
	pm.Efficiency = Efficiency(minBW, maxBW)
	return pm, nil
}

func bandwidthRange(components []model.ComponentPerformance) (lo, hi float64) {
	for i, c := range components {
		if i == 0 || c.BandwidthMbps < lo {
			lo = c.BandwidthMbps
		}
		if i == 0 || c.BandwidthMbps > hi {
			hi = c.BandwidthMbps
		}
	}
	return lo, hi
}

// pathLatencyNs converts the summed cycle counts at the path's average
// clock.
func pathLatencyNs(components []model.ComponentPerformance) float64 {
	var cycles, mhz float64
	for _, c := range components {
		cycles += c.LatencyCycles
		mhz += c.FrequencyMHz
	}
	if len(components) == 0 || mhz <= 0 {
		return 0
	}
	return cycles * units.CycleTimeNs(mhz/float64(len(components)))
}

// Efficiency is bottleneck ÷ maximum bandwidth as a percentage with one
// decimal, clamped to [0, 100]. It is 0 when the maximum is not positive.
func Efficiency(bottleneck, maximum float64) float64 {
	if maximum <= 0 || bottleneck <= 0 {
		return 0
	}
	e := units.Round(bottleneck/maximum*100, 1)
	if e > 100 {
		return 100
	}
	return e
}
