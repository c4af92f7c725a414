// Package perf models the throughput and latency of discovered flows.
//
// For each flow the Modeler resolves one ComponentPerformance record per
// node on the path, then derives the flow's bottleneck, end-to-end latency
// and efficiency.
//
// FLOW WIDTH:
//
// The flow's edges are walked in order. The first edge whose source handle
// (or, failing that, target handle) names an interface on its node decides
// the flow-level width. If that interface has no usable width the whole
// flow is unresolved: it is reported with Unresolved set, no components and
// zero figures, and is left out of summaries and contention analysis.
//
// PER-COMPONENT RESOLUTION:
//
// A node with an internal path entry between its ingress and egress
// interfaces takes bandwidth and latency from that entry (pathLatencies
// first, then paths, which also matches in reverse). Otherwise the node is
// resolved as a whole, each figure falling back in turn:
//
//	width:   flow override → interface → node dataWidth → category default
//	clock:   interface speed → node frequency/speed/clockFrequency → global clock
//	latency: interface latency → node latency → category default
//
// Bandwidth is width (bits) × clock (MHz), in Mbit/s.
//
// FLOW FIGURES:
//
//   - Bottleneck: minimum bandwidth, first occurrence wins; nothing is
//     flagged when every component has the same bandwidth
//   - Latency: Σ cycles × 1000 / average MHz, in ns
//   - Efficiency: bottleneck ÷ maximum bandwidth × 100, one decimal
package perf
