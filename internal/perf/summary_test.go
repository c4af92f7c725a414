package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/socperf/internal/model"
)

func TestSummarize(t *testing.T) {
	noc := model.NodeRef{ID: "noc", Category: "Interconnect"}
	ddr := model.NodeRef{ID: "ddr", Category: "Memory"}

	s := Summarize([]model.PerformanceMetrics{
		{FlowID: "a", MaxThroughputMbps: 64000, LatencyNs: 40, Efficiency: 41.7, Bottleneck: &noc},
		{FlowID: "b", MaxThroughputMbps: 32000, LatencyNs: 20, Efficiency: 50, Bottleneck: &noc},
		{FlowID: "c", MaxThroughputMbps: 1000, LatencyNs: 30, Efficiency: 100, Bottleneck: &ddr},
		{FlowID: "d", Unresolved: true},
	})

	assert.Equal(t, 4, s.TotalFlows)
	assert.Equal(t, 3, s.AnalyzedFlows)
	assert.Equal(t, 1, s.UnresolvedFlows)
	assert.Equal(t, 32333.33, s.AvgThroughputMbps)
	assert.Equal(t, 1000.0, s.MinThroughputMbps)
	assert.Equal(t, 64000.0, s.MaxThroughputMbps)
	assert.Equal(t, 30.0, s.AvgLatencyNs)
	assert.Equal(t, 63.9, s.AvgEfficiency)
	assert.Equal(t, map[string]int{"Interconnect": 2, "Memory": 1}, s.BottleneckDistribution)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.TotalFlows)
	assert.Zero(t, s.MinThroughputMbps)
	assert.NotNil(t, s.BottleneckDistribution)
	assert.Empty(t, s.BottleneckDistribution)
}
