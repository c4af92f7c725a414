package testutil

import (
	"strconv"

	"github.com/roach88/socperf/internal/model"
)

// Canned diagrams shared by package tests and harness scenarios.

// SingleMemoryPath is CPU → Interconnect → DDR with node-level widths and
// clocks: 64-bit @ 1500 MHz, 128-bit @ 500 MHz, 64-bit @ 2400 MHz.
// The interconnect is the bottleneck at 64,000 Mbit/s.
func SingleMemoryPath() model.Diagram {
	return NewDiagram().
		Node("cpu", "CPU", "CPU", Width(64), Clock("1500 MHz"), Latency("4 cycles")).
		Node("noc", "Interconnect", "Interconnect", Width(128), Clock("500 MHz"), Latency("4 cycles")).
		Node("ddr", "DDR", "Memory", Width(64), Clock("2400 MHz"), Latency("50 cycles")).
		Edge("cpu", "noc", Protocol("AXI4")).
		Edge("noc", "ddr", Protocol("AXI4")).
		Build()
}

// SharedInterconnect is two CPUs reaching one DDR through one interconnect.
func SharedInterconnect() model.Diagram {
	return NewDiagram().
		Node("cpu0", "CPU0", "CPU", Width(64), Clock("1500 MHz")).
		Node("cpu1", "CPU1", "CPU", Width(64), Clock("1500 MHz")).
		Node("noc", "Interconnect", "Interconnect", Width(128), Clock("500 MHz")).
		Node("ddr", "DDR", "Memory", Width(64), Clock("2400 MHz")).
		Edge("cpu0", "noc", Protocol("AXI4")).
		Edge("cpu1", "noc", Protocol("AXI4")).
		Edge("noc", "ddr", Protocol("AXI4")).
		Build()
}

// Cycle is A → B → A between a processor and a memory.
func Cycle() model.Diagram {
	return NewDiagram().
		Node("a", "A", "CPU").
		Node("b", "B", "Memory").
		Edge("a", "b").
		Edge("b", "a").
		Build()
}

// MissingWidth is CPU → DDR where the edge leaves through a master
// interface that declares no data width.
func MissingWidth() model.Diagram {
	return NewDiagram().
		Node("cpu", "CPU", "CPU", Clock("1000 MHz"), Iface("m0", model.DirectionMaster, 0, "")).
		Node("ddr", "DDR", "Memory", Width(64), Clock("2400 MHz"), Iface("s0", model.DirectionSlave, 64, "")).
		Edge("cpu", "ddr", Handles("m0", "s0")).
		Build()
}

// Chain builds a straight CPU → bus1 → ... → busN → DDR chain.
func Chain(buses int) model.Diagram {
	b := NewDiagram().Node("cpu", "CPU", "CPU")
	prev := "cpu"
	for i := 1; i <= buses; i++ {
		id := "bus" + strconv.Itoa(i)
		b.Node(id, "Bus "+strconv.Itoa(i), "Interconnect")
		b.Edge(prev, id)
		prev = id
	}
	b.Node("ddr", "DDR", "Memory")
	b.Edge(prev, "ddr")
	return b.Build()
}
