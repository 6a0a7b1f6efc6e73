// Package qp solves the dense convex quadratic program used as the
// feasibility oracle of the consistency check:
//
//	minimize   ½‖x‖²
//	subject to G·x ≤ h
//
// i.e. the least-norm point of a polyhedron, with an identity objective.
// The solver runs Hildreth's dual coordinate ascent: the dual of the
// least-norm problem is a bound-constrained quadratic over the multipliers
// λ ≥ 0 with Hessian G·Gᵀ, minimized one coordinate at a time; the primal
// solution is recovered as x = −Gᵀ·λ. An infeasible polyhedron makes the
// dual unbounded, which surfaces as ErrNotConverged once the iteration cap
// is hit; that is the infeasibility signal, not a crash.
//
// The solve is synchronous and bounded by the tolerance and iteration limits
// in Options; there is no timeout-based cancellation.
//
// Complexity:
//
//	Time:   O(MaxIter · m²) sweeps over m constraints, after an O(m²·n)
//	        Gram-matrix build.
//	Memory: O(m² + m·n).
//
// Errors:
//
//	ErrDimension    - constraint matrix and bound vector sizes disagree.
//	ErrInfeasible   - a structurally impossible constraint (zero row with a
//	                  negative bound).
//	ErrNotConverged - the iteration cap was reached without convergence;
//	                  for a well-posed problem this signals infeasibility.
package qp
