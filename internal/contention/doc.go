// Package contention finds components shared by several flows and grades
// how badly the flows compete for them.
//
// For each shared component:
//
//	demand     = Σ competing flows' max throughput (their own bottlenecks)
//	available  = component record bandwidth → node bandwidth → category table
//	ratio      = demand / available (0 when available is unknown)
//	worst case = base cycles × 2 ns + 10 ns per extra flow,
//	             × ratio when oversubscribed
//	fair share = available / flows
//
// Severity thresholds on the ratio:
//
//	≤ 0.5 none, ≤ 0.8 low, ≤ 1.0 medium, ≤ 1.5 high, otherwise critical
//
// Results are sorted by severity, then ratio (both descending), then
// component id. Flows whose performance is unresolved take no part.
//
// A shared endpoint entered straight from two or more flow sources, with
// no fabric in between, is still analyzed but carries DirectSharing so
// callers can tell unarbitrated sharing apart.
package contention
