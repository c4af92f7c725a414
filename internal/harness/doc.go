// Package harness provides conformance testing for socperf analyses.
//
// The harness loads a diagram and an optional CUE configuration, runs the
// full analysis, and evaluates assertions against the report.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	diagram: ../diagrams/soc.yaml      # relative to the scenario file
//	config: ../configs/catalog.cue     # optional
//	clock_mhz: 800                     # optional override
//	distribution: weighted             # optional override
//	requests:                          # optional explicit flows
//	  - { source: cpu, target: ddr }
//	assertions:
//	  - type: flow_count
//	    count: 2
//	  - type: bottleneck
//	    source: cpu
//	    target: ddr
//	    component: noc
//	  - type: contention_severity
//	    component: noc
//	    severity: critical
//
// # Assertion Types
//
//   - flow_count: number of flows, optionally filtered by traffic
//   - flow_exists: a source→target flow exists, with traffic/protocol if given
//   - bottleneck: the flow's bottleneck component (empty means none)
//   - metric: throughput, latency or efficiency within a tolerance
//   - contention_severity: grade of a shared component
//   - score_at_most: upper bound on the overall contention score
//   - unresolved_count: number of flows without a resolvable data width
//
// # Deterministic Testing
//
// Flow ids come from a sequence generator ("flow-1", "flow-2", ...) in
// discovery order, so reports are byte-identical across runs and can be
// compared against golden files with canonical JSON.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/shared_interconnect.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
