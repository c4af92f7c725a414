// Package classify holds the heuristic rules that turn free-form category
// tags, labels and interface directions into closed variants.
//
// Three closed sets are defined here:
//
//	Class       what a component is (CPU, Memory, Interconnect, ...)
//	Role        how it participates in traffic (Source, Sink, Relay)
//	TrafficType what a flow is (model.TrafficType), from Traffic()
//
// Every rule that inspects strings lives in this package so the rest of
// the engine only switches over variants. Tags are case-folded with
// golang.org/x/text/cases before keyword matching.
//
// The category default tables (width, latency, capacity) also live here,
// keyed by Class, since they are the last step of every fallback chain.
package classify
