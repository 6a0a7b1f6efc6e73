package consistency

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/clonetree/phylo"
	"github.com/katalvlaran/clonetree/qp"
	"github.com/katalvlaran/clonetree/spantree"
)

// ErrNilInput indicates a nil network or tree.
var ErrNilInput = errors.New("consistency: nil network or tree")

const (
	// gapFloor replaces a zero children-sum gap so that an exact tie remains
	// strictly feasible. It also serves as the bound of the trivial rows of
	// childless nodes.
	gapFloor = 0.0001

	// magnitudeFloor replaces a zero frequency in the per-unknown magnitude
	// bound, keeping the row satisfiable at the origin.
	magnitudeFloor = 0.00001
)

// Solver is the feasibility oracle: the least-norm point under g·x ≤ h, or
// an error when none exists. *qp.Solver satisfies it.
type Solver interface {
	Minimize(g *mat.Dense, h []float64) ([]float64, error)
}

// Options tune a Validator.
type Options struct {
	// Solver is the feasibility oracle. Defaults to qp.NewSolver().
	Solver Solver

	// Margin bounds each deviation unknown's absolute value. When zero, the
	// network's own margin baseline is used.
	Margin float64

	// Logger receives per-tree failure diagnostics. Defaults to a no-op
	// logger.
	Logger *zap.Logger
}

// DefaultOptions returns the standard validator tuning.
func DefaultOptions() Options {
	return Options{
		Solver: qp.NewSolver(),
		Margin: 0,
		Logger: zap.NewNop(),
	}
}

// Option overrides one field of Options.
type Option func(*Options)

// WithSolver installs a custom feasibility oracle.
func WithSolver(s Solver) Option {
	return func(o *Options) {
		if s != nil {
			o.Solver = s
		}
	}
}

// WithMargin overrides the deviation bound.
func WithMargin(m float64) Option {
	return func(o *Options) {
		if m > 0 {
			o.Margin = m
		}
	}
}

// WithLogger installs a structured logger for failure diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Validator scores trees by least-norm frequency deviation. Construct with
// NewValidator; the zero value has no solver.
type Validator struct {
	opts Options
}

// NewValidator builds a Validator with the given overrides applied on top of
// DefaultOptions.
func NewValidator(opts ...Option) *Validator {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Validator{opts: o}
}

// Check solves the tree's deviation system and returns the sum of squared
// deviations, or the solver's error when no feasible assignment exists. The
// tree itself is not modified.
func (v *Validator) Check(net *phylo.Network, t *spantree.Tree) (float64, error) {
	if net == nil || t == nil {
		return 0, ErrNilInput
	}

	g, h := v.assemble(net, t)
	eps, err := v.opts.Solver.Minimize(g, h)
	if err != nil {
		return 0, fmt.Errorf("consistency: tree rejected: %w", err)
	}

	score := 0.0
	for _, e := range eps {
		score += e * e
	}

	return score, nil
}

// assemble builds the constraint system of the tree: unknown (i, j) sits at
// column n*j + i, where i indexes the tree's nodes in insertion order and j
// the global samples.
func (v *Validator) assemble(net *phylo.Network, t *spantree.Tree) (*mat.Dense, []float64) {
	nodes := t.Nodes()
	n := len(nodes)
	numSamples := net.NumSamples()
	margin := v.opts.Margin
	if margin <= 0 {
		margin = net.MarginBaseline()
	}

	index := make(map[*phylo.Node]int, n)
	for i, node := range nodes {
		index[node] = i
	}

	nVars := n * numSamples
	g := mat.NewDense(4*nVars, nVars, nil)
	h := make([]float64, 4*nVars)

	// 1. Children-sum rows: for node i and sample j, the children's total
	//    deviation minus the node's own must stay within the observed gap.
	//    Childless nodes keep an all-zero row bounded by the floor.
	for i, node := range nodes {
		children := t.Children(node)
		for j := 0; j < numSamples; j++ {
			row := i*numSamples + j
			if len(children) == 0 {
				h[row] = gapFloor

				continue
			}
			gap := node.Freq(j)
			for _, c := range children {
				gap -= c.Freq(j)
				g.Set(row, n*j+index[c], 1)
			}
			g.Set(row, n*j+i, -1)
			if gap == 0 {
				gap = gapFloor
			}
			h[row] = gap
		}
	}

	// 2. Margin rows: |ε| ≤ margin, one pair per unknown.
	for k := 0; k < nVars; k++ {
		g.Set(nVars+k, k, 1)
		h[nVars+k] = margin
		g.Set(2*nVars+k, k, -1)
		h[2*nVars+k] = margin
	}

	// 3. Magnitude rows: each unknown is bounded by the node's observed
	//    frequency, floored where the node is absent from the sample.
	for i, node := range nodes {
		for j := 0; j < numSamples; j++ {
			row := 3*nVars + i*numSamples + j
			g.Set(row, n*j+i, 1)
			bound := node.Freq(j)
			if bound == 0 {
				bound = magnitudeFloor
			}
			h[row] = bound
		}
	}

	return g, h
}

// Refine re-scores the best trees in place: for each of the first topK trees
// (all of them when topK is not positive) a passing check overwrites the
// tree's Err with the squared-deviation score, while a failing one is logged
// and left with its enumeration-time score. It returns the number of trees
// that passed. Refine never reorders trees; callers re-rank the refined
// prefix explicitly.
func (v *Validator) Refine(net *phylo.Network, trees []*spantree.Tree, topK int) int {
	k := len(trees)
	if topK > 0 && topK < k {
		k = topK
	}

	passed := 0
	for i := 0; i < k; i++ {
		score, err := v.Check(net, trees[i])
		if err != nil {
			v.opts.Logger.Warn("tree failed the consistency check",
				zap.Int("rank", i),
				zap.Float64("enumeration_err", trees[i].Err),
				zap.Error(err))

			continue
		}
		trees[i].Err = score
		passed++
	}

	return passed
}
