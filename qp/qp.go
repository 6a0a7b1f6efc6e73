package qp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimension reports a constraint matrix whose shape disagrees with the
	// bound vector, or an empty problem.
	ErrDimension = errors.New("qp: constraint dimensions mismatch")

	// ErrInfeasible reports a constraint no point can satisfy (an all-zero
	// row with a negative bound).
	ErrInfeasible = errors.New("qp: problem infeasible")

	// ErrNotConverged reports that the dual iteration hit MaxIter without the
	// multipliers settling. For the least-norm problem this is the practical
	// infeasibility signal.
	ErrNotConverged = errors.New("qp: dual ascent did not converge")
)

const (
	// DefaultMaxIter bounds the number of full coordinate sweeps.
	DefaultMaxIter = 10_000

	// DefaultTol is the convergence threshold on the largest multiplier
	// change within one sweep.
	DefaultTol = 1e-9

	// pivotEps guards division by a numerically zero Gram diagonal.
	pivotEps = 1e-12
)

// Options tune the dual iteration.
type Options struct {
	// MaxIter caps the number of coordinate sweeps.
	MaxIter int

	// Tol is the per-sweep convergence threshold.
	Tol float64
}

// DefaultOptions returns the standard solver tuning.
func DefaultOptions() Options {
	return Options{MaxIter: DefaultMaxIter, Tol: DefaultTol}
}

// Option overrides one field of Options.
type Option func(*Options)

// WithMaxIter caps the number of coordinate sweeps.
func WithMaxIter(n int) Option {
	return func(o *Options) { o.MaxIter = n }
}

// WithTol sets the per-sweep convergence threshold.
func WithTol(tol float64) Option {
	return func(o *Options) { o.Tol = tol }
}

// Solver is a reusable least-norm solver instance. The zero value is not
// ready; construct with NewSolver.
type Solver struct {
	opts Options
}

// NewSolver builds a Solver with the given overrides applied on top of
// DefaultOptions.
func NewSolver(opts ...Option) *Solver {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Solver{opts: o}
}

// Minimize returns the x of least Euclidean norm satisfying g·x ≤ h, where g
// is m×n and h has length m. The returned slice has length n.
//
// When every bound is non-negative the origin is already optimal and is
// returned without iterating. Otherwise Hildreth's coordinate ascent runs on
// the dual multipliers until the largest per-sweep change drops below Tol,
// and the primal point is recovered as x = −gᵀ·λ.
func (s *Solver) Minimize(g *mat.Dense, h []float64) ([]float64, error) {
	// 1. Validate shapes.
	m, n := g.Dims()
	if m == 0 || n == 0 || len(h) != m {
		return nil, ErrDimension
	}

	// 2. Fast path: the origin is feasible, hence optimal.
	feasibleAtZero := true
	for _, b := range h {
		if b < 0 {
			feasibleAtZero = false

			break
		}
	}
	if feasibleAtZero {
		return make([]float64, n), nil
	}

	// 3. Gram matrix of the constraint rows; the dual Hessian.
	var gram mat.Dense
	gram.Mul(g, g.T())

	// 4. Screen out degenerate rows once. A zero row bounds the constant 0,
	//    which is violated outright when its bound is negative.
	for i := 0; i < m; i++ {
		if gram.At(i, i) < pivotEps && h[i] < 0 {
			return nil, ErrInfeasible
		}
	}

	// 5. Coordinate ascent on λ ≥ 0: each pass minimizes the dual objective
	//    ½λᵀ(ggᵀ)λ + hᵀλ one coordinate at a time, clipping at zero.
	lambda := make([]float64, m)
	converged := false
	for it := 0; it < s.opts.MaxIter && !converged; it++ {
		delta := 0.0
		for i := 0; i < m; i++ {
			pii := gram.At(i, i)
			if pii < pivotEps {
				continue
			}
			grad := h[i]
			for j := 0; j < m; j++ {
				grad += gram.At(i, j) * lambda[j]
			}
			next := math.Max(0, lambda[i]-grad/pii)
			delta = math.Max(delta, math.Abs(next-lambda[i]))
			lambda[i] = next
		}
		converged = delta < s.opts.Tol
	}
	if !converged {
		return nil, ErrNotConverged
	}

	// 6. Recover the primal point: x = −gᵀ·λ.
	x := make([]float64, n)
	for j := 0; j < n; j++ {
		sum := 0.0
		for i := 0; i < m; i++ {
			if lambda[i] != 0 {
				sum += g.At(i, j) * lambda[i]
			}
		}
		x[j] = -sum
	}

	return x, nil
}
