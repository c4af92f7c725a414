package contention

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/roach88/socperf/internal/classify"
	"github.com/roach88/socperf/internal/flow"
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/units"
)

// Mode selects how available bandwidth is split between competing flows.
type Mode string

const (
	// ModeFair gives every flow the same share.
	ModeFair Mode = "fair"
	// ModeWeighted shares capacity in proportion to requested bandwidth.
	ModeWeighted Mode = "weighted"
)

// ParseMode validates a distribution mode name. Empty means ModeFair.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFair:
		return ModeFair, nil
	case ModeWeighted:
		return ModeWeighted, nil
	default:
		return "", fmt.Errorf("unknown distribution mode %q (expected fair or weighted)", s)
	}
}

const (
	// FallbackLatencyCycles is used when a shared component has no record.
	FallbackLatencyCycles = 10.0
	// referenceNsPerCycle converts cycles at the 500 MHz reference clock.
	referenceNsPerCycle = 2.0
	// arbitrationNs is charged for every competing flow beyond the first.
	arbitrationNs = 10.0
)

// Analyzer grades shared components. It is safe for concurrent use.
type Analyzer struct {
	catalog model.Catalog
	mode    Mode
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCatalog sets the component-metadata table.
func WithCatalog(c model.Catalog) Option {
	return func(a *Analyzer) {
		a.catalog = c
	}
}

// WithMode sets the distribution mode used for allocations.
func WithMode(m Mode) Option {
	return func(a *Analyzer) {
		if m != "" {
			a.mode = m
		}
	}
}

// NewAnalyzer creates an Analyzer in ModeFair.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{mode: ModeFair}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns one record per shared component, sorted most severe
// first.
func (a *Analyzer) Analyze(d model.Diagram, flows []model.DataFlow, metrics []model.PerformanceMetrics) []model.ContentionAnalysis {
	byFlow := make(map[string]model.PerformanceMetrics, len(metrics))
	for _, m := range metrics {
		byFlow[m.FlowID] = m
	}

	var resolved []model.DataFlow
	for _, f := range flows {
		if m, ok := byFlow[f.ID]; ok && !m.Unresolved {
			resolved = append(resolved, f)
		}
	}

	index := model.NewIndex(d)
	flowByID := make(map[string]model.DataFlow, len(resolved))
	for _, f := range resolved {
		flowByID[f.ID] = f
	}

	out := []model.ContentionAnalysis{}
	for _, shared := range flow.SharedComponents(resolved) {
		var competing []model.DataFlow
		for _, id := range shared.FlowIDs {
			competing = append(competing, flowByID[id])
		}
		out = append(out, a.component(index, shared.Node, competing, byFlow, metrics))
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Severity.Rank(), out[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		if out[i].ContentionRatio != out[j].ContentionRatio {
			return out[i].ContentionRatio > out[j].ContentionRatio
		}
		return out[i].Component.ID < out[j].Component.ID
	})

	slog.Debug("contention analysis complete", "flows", len(resolved), "shared", len(out))
	return out
}

func (a *Analyzer) component(index *model.Index, ref model.NodeRef, competing []model.DataFlow, byFlow map[string]model.PerformanceMetrics, all []model.PerformanceMetrics) model.ContentionAnalysis {
	node, ok := index.Node(ref.ID)
	if !ok {
		node = model.Node{ID: ref.ID, Data: model.ComponentData{Label: ref.Label, Category: ref.Category}}
	}
	data := a.catalog.Effective(node)
	cls := classify.Classify(node.Label(), data)

	ca := model.ContentionAnalysis{Component: ref}
	for _, f := range competing {
		m := byFlow[f.ID]
		ca.CompetingFlows = append(ca.CompetingFlows, model.CompetingFlow{
			FlowID:             f.ID,
			FlowName:           f.Name,
			RequestedBandwidth: m.MaxThroughputMbps,
		})
		ca.TotalDemand += m.MaxThroughputMbps
	}
	ca.TotalDemand = units.Round(ca.TotalDemand, 2)

	record, hasRecord := findRecord(all, ref.ID)
	ca.AvailableBandwidth = available(record, hasRecord, data, cls.Category)

	ca.ContentionRatio, ca.Severity = Grade(ca.TotalDemand, ca.AvailableBandwidth)

	base := FallbackLatencyCycles
	if hasRecord {
		base = record.LatencyCycles
	}
	n := len(competing)
	ca.WorstCaseLatencyNs = units.Round(WorstCaseLatencyNs(base, n, ca.TotalDemand, ca.AvailableBandwidth), 2)
	if n > 0 {
		ca.FairShareBandwidth = units.Round(ca.AvailableBandwidth/float64(n), 2)
	}
	ca.Allocations = Allocate(a.mode, ca.AvailableBandwidth, ca.CompetingFlows)
	ca.DirectSharing = cls.Role != classify.RoleRelay && directlyShared(ref.ID, competing)
	ca.Recommendation = Recommend(cls.Category, ca.Severity, n, ca.TotalDemand, ca.AvailableBandwidth)
	return ca
}

// findRecord scans every flow's components for the shared component.
func findRecord(metrics []model.PerformanceMetrics, id string) (model.ComponentPerformance, bool) {
	for _, m := range metrics {
		if m.Unresolved {
			continue
		}
		if c, ok := m.Component(id); ok {
			return c, true
		}
	}
	return model.ComponentPerformance{}, false
}

func available(record model.ComponentPerformance, hasRecord bool, data model.ComponentData, cat classify.Category) float64 {
	if hasRecord && record.BandwidthMbps > 0 {
		return record.BandwidthMbps
	}
	if bw, ok := units.BandwidthMbps(string(data.Bandwidth)); ok && bw > 0 {
		return bw
	}
	if bw, ok := classify.DefaultCapacity(cat); ok {
		return bw
	}
	return 0
}

// directlyShared reports whether at least two flows enter the component
// straight from their source.
func directlyShared(id string, flows []model.DataFlow) bool {
	n := 0
	for _, f := range flows {
		if len(f.Path) > 1 && f.Path[1].ID == id {
			n++
		}
	}
	return n >= 2
}
