package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/testutil"
)

func pathIDs(f model.DataFlow) []string {
	ids := make([]string, len(f.Path))
	for i, ref := range f.Path {
		ids[i] = ref.ID
	}
	return ids
}

func TestDiscover_SingleMemoryPath(t *testing.T) {
	d := NewDiscoverer(WithIDGenerator(NewFixedGenerator("f1")))

	flows := d.Discover(testutil.SingleMemoryPath())

	require.Len(t, flows, 1)
	f := flows[0]
	assert.Equal(t, "f1", f.ID)
	assert.Equal(t, "CPU → DDR", f.Name)
	assert.Equal(t, model.TrafficMemoryAccess, f.TrafficType)
	assert.Equal(t, []string{"cpu", "noc", "ddr"}, pathIDs(f))
	assert.Equal(t, []string{"e1", "e2"}, f.Edges)
	assert.Equal(t, "AXI4", f.Protocol)
	assert.Equal(t, f.Path[0], f.Source)
	assert.Equal(t, f.Path[2], f.Sink)
	assert.Equal(t, "Memory", f.Sink.Category)
}

func TestDiscover_SharedInterconnect(t *testing.T) {
	d := NewDiscoverer(WithIDGenerator(NewFixedGenerator("f1", "f2")))

	flows := d.Discover(testutil.SharedInterconnect())

	require.Len(t, flows, 2)
	assert.Equal(t, []string{"cpu0", "noc", "ddr"}, pathIDs(flows[0]))
	assert.Equal(t, []string{"cpu1", "noc", "ddr"}, pathIDs(flows[1]))
	assert.Equal(t, []string{"e1", "e3"}, flows[0].Edges)
	assert.Equal(t, []string{"e2", "e3"}, flows[1].Edges)
}

// A → B → A must terminate and never revisit A on one branch.
func TestDiscover_CycleTerminates(t *testing.T) {
	flows := NewDiscoverer().Discover(testutil.Cycle())

	require.Len(t, flows, 2)
	assert.Equal(t, []string{"a", "b"}, pathIDs(flows[0]))
	assert.Equal(t, []string{"b", "a"}, pathIDs(flows[1]))
	for _, f := range flows {
		seen := map[string]bool{}
		for _, id := range pathIDs(f) {
			assert.False(t, seen[id], "node %s repeated in %v", id, pathIDs(f))
			seen[id] = true
		}
	}
}

func TestDiscover_CycleThroughFabric(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("cpu", "CPU", "CPU").
		Node("x", "Crossbar", "Interconnect").
		Node("y", "Bridge", "Bridge").
		Node("ddr", "DDR", "Memory").
		Edge("cpu", "x").
		Edge("x", "y").
		Edge("y", "x").
		Edge("y", "ddr").
		Build()

	flows := NewDiscoverer().Discover(diagram)

	require.Len(t, flows, 1)
	assert.Equal(t, []string{"cpu", "x", "y", "ddr"}, pathIDs(flows[0]))
}

func TestDiscover_DepthBound(t *testing.T) {
	// 9 buses = 10 hops, still within the limit.
	flows := NewDiscoverer().Discover(testutil.Chain(9))
	require.Len(t, flows, 1)
	assert.Len(t, flows[0].Edges, 10)

	// 10 buses = 11 hops, truncated.
	assert.Empty(t, NewDiscoverer().Discover(testutil.Chain(10)))

	// A wider limit reaches the sink again.
	assert.Len(t, NewDiscoverer(WithMaxDepth(20)).Discover(testutil.Chain(10)), 1)
}

func TestDiscover_RelayIsNeverSink(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("cpu", "CPU", "CPU").
		Node("noc", "NoC", "Interconnect").
		Edge("cpu", "noc").
		Build()

	assert.Empty(t, NewDiscoverer().Discover(diagram))
}

func TestDiscover_DuplicateEdgeSequenceEmittedOnce(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("cpu", "CPU", "CPU").
		Node("ddr", "DDR", "Memory").
		Edge("cpu", "ddr", testutil.EdgeID("bus")).
		Edge("cpu", "ddr", testutil.EdgeID("bus")).
		Build()

	flows := NewDiscoverer(WithIDGenerator(NewFixedGenerator("only"))).Discover(diagram)

	require.Len(t, flows, 1)
	assert.Equal(t, "only", flows[0].ID)
}

func TestDiscover_IgnoresNodesWithoutOutgoingEdges(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("cpu", "CPU", "CPU").
		Node("gpu", "GPU", "Accelerator").
		Build()

	assert.Empty(t, NewDiscoverer().Discover(diagram))
}

func TestDiscover_DoesNotMutateDiagram(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("cpu", "CPU", "CPU").
		Node("ddr", "DDR", "Memory").
		Edge("cpu", "ddr", testutil.EdgeID("")).
		Build()

	flows := NewDiscoverer().Discover(diagram)

	require.Len(t, flows, 1)
	assert.Equal(t, []string{"edge-0"}, flows[0].Edges)
	assert.Equal(t, "", diagram.Edges[0].ID)
}

func TestDiscover_TrafficTypes(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("npu", "NPU", "Accelerator").
		Node("cpu", "CPU", "CPU").
		Node("noc", "NoC", "Interconnect").
		Node("ddr", "DDR", "Memory").
		Node("uart", "UART", "Peripheral").
		Edge("npu", "noc").
		Edge("cpu", "noc").
		Edge("noc", "ddr").
		Edge("noc", "uart").
		Build()

	flows := NewDiscoverer().Discover(diagram)

	require.Len(t, flows, 4)
	got := map[string]model.TrafficType{}
	for _, f := range flows {
		got[f.Source.ID+">"+f.Sink.ID] = f.TrafficType
	}
	assert.Equal(t, model.TrafficAccelerator, got["npu>ddr"])
	assert.Equal(t, model.TrafficPeripheralAccess, got["npu>uart"])
	assert.Equal(t, model.TrafficMemoryAccess, got["cpu>ddr"])
	assert.Equal(t, model.TrafficPeripheralAccess, got["cpu>uart"])
}

// DMA engines are fabric, so they only start flows when asked explicitly.
func TestDiscover_DMAIsNotASource(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("dma", "DMA Engine", "DMA").
		Node("ddr", "DDR", "Memory").
		Edge("dma", "ddr").
		Build()

	assert.Empty(t, NewDiscoverer().Discover(diagram))
}

func TestDiscover_DefaultIDsAreStable(t *testing.T) {
	first := NewDiscoverer().Discover(testutil.SharedInterconnect())
	second := NewDiscoverer().Discover(testutil.SharedInterconnect())

	require.Len(t, first, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)
}

func TestDetectProtocol(t *testing.T) {
	tests := []struct {
		name  string
		edges []model.Connection
		want  string
	}{
		{"no edges", nil, model.UnknownProtocol},
		{"no labels", []model.Connection{{ID: "a"}, {ID: "b"}}, model.UnknownProtocol},
		{"first label wins", []model.Connection{{ID: "a"}, {ID: "b", Label: "AHB"}, {ID: "c", Label: "APB"}}, "AHB"},
		{"blank label skipped", []model.Connection{{ID: "a", Label: "  "}, {ID: "b", Label: "AXI4"}}, "AXI4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectProtocol(tt.edges))
		})
	}
}
