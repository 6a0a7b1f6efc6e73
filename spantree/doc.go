// Package spantree enumerates the directed spanning trees (lineage trees) of
// a phylogenetic constraint network, rooted at the virtual germline root, in
// the spirit of Gabow–Myers reverse-search enumeration.
//
// Key features:
//   - Enumerate(net, opts...): depth-first backtracking over a frontier edge
//     stack (edges from tree nodes to non-tree nodes), growing a partial tree
//     one edge at a time and pruning as soon as a parent's per-sample
//     frequency no longer dominates the sum of its attached children, within
//     the network's margin.
//   - Duplicate avoidance: after an edge is removed, competing edges into the
//     detached node are bridge-tested against the last completed tree; when
//     every competitor fails, no unseen tree remains behind this frame and
//     the loop stops. Every spanning tree is emitted exactly once.
//   - Paired mutation discipline: all frontier pushes/pops and graph edge
//     removals made by a frame are undone, in reverse order, before the frame
//     returns, including early stops, so a capped run leaves the network as
//     it found it.
//   - Safety valves: caps on recursive grow calls and on completed trees.
//     Reaching either is not an error; the partial result set is valid
//     best-effort output.
//   - Rank(trees): ascending sort by error score (the sum of edge-direction
//     selection errors, attached at completion).
//
// All counters are per-enumeration state; concurrent enumerations over
// different networks do not interfere. A single enumeration is strictly
// sequential and must not be shared across goroutines.
//
// Errors:
//
//	ErrNilNetwork - Enumerate received a nil network.
package spantree
