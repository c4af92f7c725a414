package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/socperf/internal/analysis"
	"github.com/roach88/socperf/internal/flow"
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/testutil"
)

func intPtr(n int) *int { return &n }

func sharedReport(t *testing.T) *analysis.Report {
	t.Helper()
	ctx := analysis.NewContext(analysis.WithIDGenerator(flow.NewSequenceGenerator("flow")))
	r, err := analysis.Run(ctx, testutil.SharedInterconnect(), nil)
	require.NoError(t, err)
	return r
}

func TestEvaluate_Passing(t *testing.T) {
	r := sharedReport(t)

	assertions := []Assertion{
		{Type: AssertFlowCount, Count: intPtr(2)},
		{Type: AssertFlowCount, Traffic: model.TrafficMemoryAccess, Count: intPtr(2)},
		{Type: AssertFlowCount, Traffic: model.TrafficDMA, Count: intPtr(0)},
		{Type: AssertFlowExists, Source: "cpu0", Target: "ddr", Traffic: model.TrafficMemoryAccess, Protocol: "AXI4"},
		{Type: AssertBottleneck, Source: "cpu1", Target: "ddr", Component: "noc"},
		{Type: AssertMetric, Source: "cpu0", Target: "ddr", Metric: MetricThroughput, Value: 64000},
		{Type: AssertMetric, Source: "cpu0", Target: "ddr", Metric: MetricEfficiency, Value: 42, Tolerance: 0.5},
		{Type: AssertSeverity, Component: "noc", Severity: model.SeverityCritical},
		{Type: AssertSeverity, Component: "ddr", Severity: model.SeverityMedium},
		{Type: AssertSeverity, Component: "cpu0", Severity: model.SeverityNone},
		{Type: AssertScoreAtMost, Score: intPtr(25)},
		{Type: AssertUnresolvedCount, Count: intPtr(0)},
	}

	for _, a := range assertions {
		t.Run(a.Type, func(t *testing.T) {
			assert.NoError(t, evaluate(r, a))
		})
	}
}

func TestEvaluate_Failing(t *testing.T) {
	r := sharedReport(t)

	tests := []struct {
		name      string
		assertion Assertion
		expected  string
		actual    string
	}{
		{
			name:      "flow count",
			assertion: Assertion{Type: AssertFlowCount, Count: intPtr(3)},
			expected:  "3 flows",
			actual:    "2 flows",
		},
		{
			name:      "flow count by traffic",
			assertion: Assertion{Type: AssertFlowCount, Traffic: model.TrafficP2P, Count: intPtr(1)},
			expected:  "1 p2p flows",
			actual:    "0 p2p flows",
		},
		{
			name:      "missing flow",
			assertion: Assertion{Type: AssertFlowExists, Source: "ddr", Target: "cpu0"},
			expected:  "flow ddr → cpu0",
			actual:    "not found in report",
		},
		{
			name:      "wrong traffic",
			assertion: Assertion{Type: AssertFlowExists, Source: "cpu0", Target: "ddr", Traffic: model.TrafficDMA},
			expected:  "traffic type dma",
			actual:    "traffic type memory_access",
		},
		{
			name:      "wrong protocol",
			assertion: Assertion{Type: AssertFlowExists, Source: "cpu0", Target: "ddr", Protocol: "AHB"},
			expected:  "protocol AHB",
			actual:    "protocol AXI4",
		},
		{
			name:      "wrong bottleneck",
			assertion: Assertion{Type: AssertBottleneck, Source: "cpu0", Target: "ddr", Component: "ddr"},
			expected:  "bottleneck ddr",
			actual:    "bottleneck noc",
		},
		{
			name:      "expected no bottleneck",
			assertion: Assertion{Type: AssertBottleneck, Source: "cpu0", Target: "ddr"},
			expected:  "no bottleneck",
			actual:    "bottleneck noc",
		},
		{
			name:      "metric out of tolerance",
			assertion: Assertion{Type: AssertMetric, Source: "cpu0", Target: "ddr", Metric: MetricThroughput, Value: 60000, Tolerance: 100},
			expected:  "throughput 60000 (±100)",
			actual:    "throughput 64000",
		},
		{
			name:      "severity",
			assertion: Assertion{Type: AssertSeverity, Component: "noc", Severity: model.SeverityLow},
			expected:  "noc severity low",
			actual:    "noc severity critical",
		},
		{
			name:      "score",
			assertion: Assertion{Type: AssertScoreAtMost, Score: intPtr(10)},
			expected:  "score at most 10",
			actual:    "score 25",
		},
		{
			name:      "unresolved",
			assertion: Assertion{Type: AssertUnresolvedCount, Count: intPtr(1)},
			expected:  "1 unresolved flows",
			actual:    "0 unresolved flows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := evaluate(r, tt.assertion)
			require.Error(t, err)

			var ae *AssertionError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.assertion.Type, ae.Type)
			assert.Equal(t, tt.expected, ae.Expected)
			assert.Equal(t, tt.actual, ae.Actual)
			assert.Len(t, ae.Flows, 2)
		})
	}
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertFlowCount,
		Expected: "3 flows",
		Actual:   "1 flows",
		Flows: []model.DataFlow{{
			ID:          "flow-1",
			Source:      model.NodeRef{ID: "cpu"},
			Sink:        model.NodeRef{ID: "ddr"},
			TrafficType: model.TrafficMemoryAccess,
		}},
	}

	want := "Assertion failed: flow_count\n" +
		"  Expected: 3 flows\n" +
		"  Actual: 1 flows\n" +
		"\nFlows:\n" +
		"  [1] flow-1 cpu → ddr (memory_access)\n"
	assert.Equal(t, want, err.Error())
}

func TestEvaluateAssertions_RecordsFailures(t *testing.T) {
	r := sharedReport(t)
	result := NewResult()

	failures := EvaluateAssertions(result, r, []Assertion{
		{Type: AssertFlowCount, Count: intPtr(2)},
		{Type: AssertScoreAtMost, Score: intPtr(0)},
		{Type: "bogus"},
	})

	require.Len(t, failures, 2)
	assert.False(t, result.Pass)
	assert.Equal(t, failures, result.Errors)
	assert.Contains(t, failures[0], "assertions[1]: Assertion failed: score_at_most")
	assert.Equal(t, "assertions[2]: unknown assertion type: bogus", failures[1])
}
