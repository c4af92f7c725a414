package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/socperf/internal/contention"
	"github.com/roach88/socperf/internal/flow"
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/perf"
)

// ErrInvalidContext is returned for a zero-value Context.
var ErrInvalidContext = errors.New("analysis: context not initialized (use NewContext)")

// ErrDuplicateFlowID is returned when two different requested flows share an id.
var ErrDuplicateFlowID = errors.New("analysis: duplicate flow id")

// Report is everything one analysis produces.
type Report struct {
	Flows              []model.DataFlow               `json:"flows"`
	Metrics            []model.PerformanceMetrics     `json:"metrics"`
	Performance        model.PerformanceSummary       `json:"performance"`
	Contention         []model.ContentionAnalysis     `json:"contention"`
	ContentionSummary  model.ContentionSummary        `json:"contentionSummary"`
	UnresolvedRequests []model.FlowRequest            `json:"unresolvedRequests,omitempty"`
	TrafficGroups      map[model.TrafficType][]string `json:"trafficGroups"`
}

// Metric returns the metrics for a flow.
func (r *Report) Metric(flowID string) (model.PerformanceMetrics, bool) {
	for _, m := range r.Metrics {
		if m.FlowID == flowID {
			return m, true
		}
	}
	return model.PerformanceMetrics{}, false
}

// ContentionFor returns the contention record for a component.
func (r *Report) ContentionFor(componentID string) (model.ContentionAnalysis, bool) {
	for _, c := range r.Contention {
		if c.Component.ID == componentID {
			return c, true
		}
	}
	return model.ContentionAnalysis{}, false
}

// Run analyzes a diagram.
//
// With no requests every discovered flow is analyzed. With requests only
// the requested flows are analyzed; requests that match no path are listed
// in Report.UnresolvedRequests.
func Run(ctx Context, d model.Diagram, requests []model.FlowRequest) (*Report, error) {
	if ctx.ids == nil {
		return nil, ErrInvalidContext
	}

	discoverer := flow.NewDiscoverer(
		flow.WithCatalog(ctx.catalog),
		flow.WithMaxDepth(ctx.maxDepth),
		flow.WithIDGenerator(ctx.ids),
	)

	flows := discoverer.Discover(d)
	var missing []model.FlowRequest
	if len(requests) > 0 {
		flows, missing = discoverer.Select(d, flows, requests)
		for _, req := range missing {
			slog.Debug("flow request not found", "source", req.SourceID, "target", req.TargetID)
		}
	}

	seen := make(map[string]bool, len(flows))
	for _, f := range flows {
		if seen[f.ID] {
			return nil, fmt.Errorf("%w %q", ErrDuplicateFlowID, f.ID)
		}
		seen[f.ID] = true
	}

	modeler := perf.NewModeler(perf.WithCatalog(ctx.catalog), perf.WithClockMHz(ctx.clockMHz))
	metrics, err := modeler.Analyze(d, flows)
	if err != nil {
		return nil, fmt.Errorf("performance modeling: %w", err)
	}

	analyzer := contention.NewAnalyzer(contention.WithCatalog(ctx.catalog), contention.WithMode(ctx.distribution))
	records := analyzer.Analyze(d, flows, metrics)

	groups := map[model.TrafficType][]string{}
	for tt, fs := range flow.GroupByTraffic(flows) {
		for _, f := range fs {
			groups[tt] = append(groups[tt], f.ID)
		}
	}

	return &Report{
		Flows:              flows,
		Metrics:            metrics,
		Performance:        perf.Summarize(metrics),
		Contention:         records,
		ContentionSummary:  contention.Summarize(records),
		UnresolvedRequests: missing,
		TrafficGroups:      groups,
	}, nil
}
