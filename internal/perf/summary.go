package perf

import (
	"math"

	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/units"
)

// Summarize aggregates metrics across flows. Unresolved flows are counted
// but contribute no figures.
func Summarize(metrics []model.PerformanceMetrics) model.PerformanceSummary {
	s := model.PerformanceSummary{
		TotalFlows:             len(metrics),
		BottleneckDistribution: map[string]int{},
	}

	var throughput, latency, efficiency float64
	minT := math.Inf(1)
	for _, m := range metrics {
		if m.Unresolved {
			s.UnresolvedFlows++
			continue
		}
		s.AnalyzedFlows++
		throughput += m.MaxThroughputMbps
		latency += m.LatencyNs
		efficiency += m.Efficiency
		minT = math.Min(minT, m.MaxThroughputMbps)
		s.MaxThroughputMbps = math.Max(s.MaxThroughputMbps, m.MaxThroughputMbps)

		if m.Bottleneck != nil {
			category := m.Bottleneck.Category
			if category == "" {
				category = "Unknown"
			}
			s.BottleneckDistribution[category]++
		}
	}

	if s.AnalyzedFlows == 0 {
		return s
	}
	n := float64(s.AnalyzedFlows)
	s.AvgThroughputMbps = units.Round(throughput/n, 2)
	s.MinThroughputMbps = minT
	s.AvgLatencyNs = units.Round(latency/n, 2)
	s.AvgEfficiency = units.Round(efficiency/n, 1)
	return s
}
