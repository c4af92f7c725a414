package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/socperf/internal/contention"
	"github.com/roach88/socperf/internal/flow"
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/testutil"
)

func TestRun_SingleMemoryPath(t *testing.T) {
	r, err := Run(NewContext(), testutil.SingleMemoryPath(), nil)
	require.NoError(t, err)

	require.Len(t, r.Flows, 1)
	assert.Equal(t, model.TrafficMemoryAccess, r.Flows[0].TrafficType)

	m, ok := r.Metric(r.Flows[0].ID)
	require.True(t, ok)
	assert.Equal(t, "noc", m.Bottleneck.ID)
	assert.Equal(t, 64000.0, m.MaxThroughputMbps)
	assert.Equal(t, 41.7, m.Efficiency)

	assert.Empty(t, r.Contention)
	assert.Equal(t, 0, r.ContentionSummary.OverallScore)
	assert.Equal(t, []string{r.Flows[0].ID}, r.TrafficGroups[model.TrafficMemoryAccess])
	assert.Equal(t, 1, r.Performance.AnalyzedFlows)
	assert.Equal(t, map[string]int{"Interconnect": 1}, r.Performance.BottleneckDistribution)
}

func TestRun_SharedInterconnect(t *testing.T) {
	r, err := Run(NewContext(), testutil.SharedInterconnect(), nil)
	require.NoError(t, err)

	noc, ok := r.ContentionFor("noc")
	require.True(t, ok)
	assert.Len(t, noc.CompetingFlows, 2)
	assert.Equal(t, 64000.0, noc.AvailableBandwidth)
	assert.Equal(t, 2.0, noc.ContentionRatio)
	assert.Equal(t, 2, r.ContentionSummary.AffectedFlows)
}

func TestRun_CycleTerminates(t *testing.T) {
	r, err := Run(NewContext(), testutil.Cycle(), nil)
	require.NoError(t, err)

	assert.Len(t, r.Flows, 2)
}

func TestRun_MissingWidthIsUnknown(t *testing.T) {
	r, err := Run(NewContext(), testutil.MissingWidth(), nil)
	require.NoError(t, err)

	require.Len(t, r.Metrics, 1)
	assert.True(t, r.Metrics[0].Unresolved)
	assert.False(t, r.Metrics[0].DataWidth.IsKnown())
	assert.Equal(t, 1, r.Performance.UnresolvedFlows)
	assert.Equal(t, 0, r.Performance.AnalyzedFlows)
}

func TestRun_Requests(t *testing.T) {
	ctx := NewContext(WithIDGenerator(flow.NewSequenceGenerator("")))

	r, err := Run(ctx, testutil.SharedInterconnect(), []model.FlowRequest{
		{SourceID: "cpu1", TargetID: "ddr", FlowID: "hot-path"},
		{SourceID: "ddr", TargetID: "cpu1", FlowID: "impossible"},
	})
	require.NoError(t, err)

	require.Len(t, r.Flows, 1)
	assert.Equal(t, "hot-path", r.Flows[0].ID)
	require.Len(t, r.UnresolvedRequests, 1)
	assert.Equal(t, "impossible", r.UnresolvedRequests[0].FlowID)
	// One flow shares nothing.
	assert.Empty(t, r.Contention)
}

func TestRun_DuplicateRequestedFlowID(t *testing.T) {
	ctx := NewContext()

	_, err := Run(ctx, testutil.SharedInterconnect(), []model.FlowRequest{
		{SourceID: "cpu0", TargetID: "ddr", FlowID: "hot"},
		{SourceID: "cpu1", TargetID: "ddr", FlowID: "hot"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateFlowID)
	assert.Contains(t, err.Error(), `"hot"`)
}

func TestRun_RepeatedRequestIsNotContention(t *testing.T) {
	ctx := NewContext()

	r, err := Run(ctx, testutil.SharedInterconnect(), []model.FlowRequest{
		{SourceID: "cpu0", TargetID: "ddr"},
		{SourceID: "cpu0", TargetID: "ddr"},
	})
	require.NoError(t, err)

	require.Len(t, r.Flows, 1)
	assert.Empty(t, r.Contention)
}

func TestRun_ClockOption(t *testing.T) {
	d := testutil.NewDiagram().
		Node("cpu", "CPU", "CPU").
		Node("ddr", "DDR", "Memory").
		Edge("cpu", "ddr").
		Build()

	slow, err := Run(NewContext(WithClockMHz(100)), d, nil)
	require.NoError(t, err)
	fast, err := Run(NewContext(), d, nil)
	require.NoError(t, err)

	assert.Equal(t, 6400.0, slow.Metrics[0].MaxThroughputMbps)
	assert.Equal(t, 64000.0, fast.Metrics[0].MaxThroughputMbps)
}

func TestRun_ZeroContext(t *testing.T) {
	_, err := Run(Context{}, testutil.SingleMemoryPath(), nil)
	assert.ErrorIs(t, err, ErrInvalidContext)
}

func TestContext_WithCopies(t *testing.T) {
	base := NewContext()
	tuned := base.With(WithClockMHz(400), WithMaxDepth(3), WithDistribution(contention.ModeWeighted))

	assert.Equal(t, 1000.0, base.ClockMHz())
	assert.Equal(t, 10, base.MaxDepth())
	assert.Equal(t, contention.ModeFair, base.Distribution())
	assert.Equal(t, 400.0, tuned.ClockMHz())
	assert.Equal(t, 3, tuned.MaxDepth())
	assert.Equal(t, contention.ModeWeighted, tuned.Distribution())

	ignored := base.With(WithClockMHz(-1), WithMaxDepth(0))
	assert.Equal(t, base.ClockMHz(), ignored.ClockMHz())
	assert.Equal(t, base.MaxDepth(), ignored.MaxDepth())
}

// Concurrent runs share one Context and must agree with a serial run.
func TestRun_Parallel(t *testing.T) {
	ctx := NewContext(WithClockMHz(800))
	d := testutil.SharedInterconnect()
	want, err := Run(ctx, d, nil)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		t.Run(fmt.Sprintf("run-%d", i), func(t *testing.T) {
			t.Parallel()
			got, err := Run(ctx, d, nil)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
