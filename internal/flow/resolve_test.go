package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/testutil"
)

func TestResolve_ShortestPath(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("cpu", "CPU", "CPU").
		Node("noc", "NoC", "Interconnect").
		Node("ddr", "DDR", "Memory").
		Edge("cpu", "noc").
		Edge("noc", "ddr").
		Edge("cpu", "ddr", testutil.EdgeID("direct")).
		Build()

	f, ok := NewDiscoverer().Resolve(diagram, model.FlowRequest{SourceID: "cpu", TargetID: "ddr", FlowID: "req-1"})

	require.True(t, ok)
	assert.Equal(t, "req-1", f.ID)
	assert.Equal(t, []string{"cpu", "ddr"}, pathIDs(f))
	assert.Equal(t, []string{"direct"}, f.Edges)
	assert.Equal(t, "CPU → DDR", f.Name)
}

func TestResolve_InterfaceQualifiedName(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("cpu", "CPU", "CPU", testutil.Iface("m0", model.DirectionMaster, 64, "")).
		Node("ddr", "DDR", "Memory", testutil.Iface("s0", model.DirectionSlave, 64, "")).
		Edge("cpu", "ddr", testutil.Handles("m0", "s0")).
		Build()
	diagram.Nodes[0].Data.Interfaces[0].Name = "AXI_M"

	f, ok := NewDiscoverer().Resolve(diagram, model.FlowRequest{SourceID: "cpu", TargetID: "ddr", FlowID: "x"})

	require.True(t, ok)
	assert.Equal(t, "CPU:AXI_M → DDR:s0", f.Name)
	assert.Equal(t, "m0", f.SourceInterface)
	assert.Equal(t, "s0", f.TargetInterface)
}

func TestResolve_DMASource(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("dma", "DMA Engine", "DMA").
		Node("ddr", "DDR", "Memory").
		Edge("dma", "ddr").
		Build()

	f, ok := NewDiscoverer().Resolve(diagram, model.FlowRequest{SourceID: "dma", TargetID: "ddr"})

	require.True(t, ok)
	assert.Equal(t, model.TrafficDMA, f.TrafficType)
	assert.NotEmpty(t, f.ID)
}

func TestResolve_NotFound(t *testing.T) {
	diagram := testutil.SingleMemoryPath()
	d := NewDiscoverer()

	tests := []struct {
		name string
		req  model.FlowRequest
	}{
		{"against edge direction", model.FlowRequest{SourceID: "ddr", TargetID: "cpu"}},
		{"unknown source", model.FlowRequest{SourceID: "gpu", TargetID: "ddr"}},
		{"unknown target", model.FlowRequest{SourceID: "cpu", TargetID: "sram"}},
		{"same node", model.FlowRequest{SourceID: "cpu", TargetID: "cpu"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := d.Resolve(diagram, tt.req)
			assert.False(t, ok)
		})
	}
}

func TestResolve_Cycle(t *testing.T) {
	f, ok := NewDiscoverer().Resolve(testutil.Cycle(), model.FlowRequest{SourceID: "b", TargetID: "a"})

	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, pathIDs(f))
}

func TestSelect_AdoptsResolvesAndReportsMissing(t *testing.T) {
	diagram := testutil.SharedInterconnect()
	d := NewDiscoverer(WithIDGenerator(NewFixedGenerator("f1", "f2")))
	discovered := d.Discover(diagram)

	flows, missing := d.Select(diagram, discovered, []model.FlowRequest{
		{SourceID: "cpu0", TargetID: "ddr", FlowID: "x"},
		{SourceID: "ddr", TargetID: "cpu0", FlowID: "back"},
		{SourceID: "noc", TargetID: "ddr", FlowID: "y"},
	})

	require.Len(t, flows, 2)
	assert.Equal(t, "x", flows[0].ID)
	assert.Equal(t, []string{"cpu0", "noc", "ddr"}, pathIDs(flows[0]))
	assert.Equal(t, "CPU0 → DDR", flows[0].Name)
	assert.Equal(t, "y", flows[1].ID)
	assert.Equal(t, []string{"noc", "ddr"}, pathIDs(flows[1]))

	require.Len(t, missing, 1)
	assert.Equal(t, "back", missing[0].FlowID)

	// Adoption copies; the discovered flow keeps its id.
	assert.Equal(t, "f1", discovered[0].ID)
}

func TestSelect_InterfaceRequestsGetDistinctIDs(t *testing.T) {
	diagram := testutil.NewDiagram().
		Node("cpu", "CPU", "CPU",
			testutil.Iface("m0", model.DirectionMaster, 64, ""),
			testutil.Iface("m1", model.DirectionMaster, 64, ""),
		).
		Node("noc", "NoC", "Interconnect").
		Node("ddr", "DDR", "Memory").
		Edge("cpu", "noc").
		Edge("noc", "ddr").
		Build()
	d := NewDiscoverer()
	discovered := d.Discover(diagram)

	flows, missing := d.Select(diagram, discovered, []model.FlowRequest{
		{SourceID: "cpu", TargetID: "ddr", SourceInterface: "m1"},
		{SourceID: "cpu", TargetID: "ddr", SourceInterface: "m0"},
		{SourceID: "cpu", TargetID: "ddr", SourceInterface: "m0"},
	})

	assert.Empty(t, missing)
	require.Len(t, flows, 2, "a repeated request is selected once")
	assert.NotEqual(t, flows[0].ID, flows[1].ID)
	assert.Equal(t, "CPU:m1 → DDR", flows[0].Name)
	assert.Equal(t, "CPU:m0 → DDR", flows[1].Name)
	assert.Equal(t, flows[0].Edges, flows[1].Edges)
}
