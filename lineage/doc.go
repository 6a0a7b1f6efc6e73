// Package lineage drives the full reconstruction pipeline: it builds the
// phylogenetic constraint network from pre-clustered mutation groups,
// enumerates candidate lineage trees, ranks them by error score, and refines
// the best candidates with the convex consistency check.
//
// When enumeration exhausts the graph without completing a tree the engine
// shrinks the network (dropping the smallest non-robust cluster) and retries,
// repeating until a tree appears or no non-robust cluster remains. The latter
// is reported as ErrNoLineage rather than an empty result, so callers can
// distinguish "contradictory data" from "not run". An empty yield caused by
// a configured bound is not evidence against the network and is reported as
// ErrBudgetExhausted instead of triggering a shrink.
//
// Key features:
//
//   - Config collects every pipeline tunable with validated defaults.
//   - Engine.Reconstruct is a single synchronous call from groups to ranked
//     trees; all intermediate state is per-call.
//   - Structured zap logging at each pipeline stage, silent by default.
//
// Errors:
//
//	ErrNoGroups        - no mutation groups were supplied.
//	ErrBadConfig       - a Config field is out of range.
//	ErrNoLineage       - no spanning tree exists even after exhausting shrinks.
//	ErrBudgetExhausted - a bound stopped enumeration before any tree completed.
package lineage
