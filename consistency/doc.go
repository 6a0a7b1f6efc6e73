// Package consistency validates candidate lineage trees against the raw
// frequency data by convex feasibility. For a tree over n nodes observed in
// S samples it introduces one deviation unknown per (node, sample) pair and
// asks the qp solver for the least-norm deviation assignment under which
// every parent's frequency covers the sum of its children's:
//
//   - one row per (node, sample) bounding the children-sum gap, floored at a
//     small positive constant so exact ties stay feasible,
//   - two rows per unknown bounding its absolute value by the error margin,
//   - one row per unknown bounding it by the node's observed frequency.
//
// A feasible system yields the sum of squared deviations as the tree's
// refined error score; an infeasible one marks the tree as failing the
// check. Failures are advisory: Refine logs them and leaves the tree's
// enumeration-time score untouched rather than discarding the tree, so
// callers always see the full candidate list.
//
// Errors:
//
//	ErrNilInput - a nil network or tree was passed to Check.
//
// Solver failures (qp.ErrNotConverged, qp.ErrInfeasible) pass through
// wrapped and are inspectable with errors.Is.
package consistency
