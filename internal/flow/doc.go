// Package flow discovers data-transfer paths through a diagram.
//
// ALGORITHM:
//
// Discovery is a depth-first enumeration of simple paths starting at every
// Source node (see classify.Classify):
//  1. Follow outgoing edges in declaration order
//  2. Never revisit a node already on the current path (cycles are pruned)
//  3. Stop after MaxDepth hops (DefaultMaxDepth = 10)
//  4. Emit a flow when the current node cannot be extended, the path has
//     at least two nodes, and the node is not a Relay
//
// Paths with identical edge sequences are emitted once.
//
// Explicit requests (source, target, flow id) are served from discovered
// flows when the pair was found, otherwise by a breadth-first shortest path
// search. A request with no path is reported back as unresolved.
//
// Flow ids come from an IDGenerator. The default PathHashGenerator derives
// ids from the edge sequence so repeated runs over the same diagram agree.
package flow
