package lineage

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/clonetree/consistency"
	"github.com/katalvlaran/clonetree/phylo"
	"github.com/katalvlaran/clonetree/qp"
	"github.com/katalvlaran/clonetree/snv"
	"github.com/katalvlaran/clonetree/spantree"
)

// Sentinel errors of the pipeline.
var (
	// ErrNoGroups indicates an empty group list or non-positive sample count.
	ErrNoGroups = errors.New("lineage: no mutation groups")

	// ErrBadConfig indicates an out-of-range Config field.
	ErrBadConfig = errors.New("lineage: invalid config")

	// ErrNoLineage indicates that no spanning lineage tree exists, even after
	// shrinking away every non-robust cluster.
	ErrNoLineage = errors.New("lineage: no spanning lineage tree found")

	// ErrBudgetExhausted indicates that enumeration hit a configured bound
	// before completing a single tree. The network may still admit trees
	// under a larger budget, so no cluster is shrunk away.
	ErrBudgetExhausted = errors.New("lineage: enumeration budget exhausted before any tree completed")
)

// DefaultTopK is the number of best-ranked trees refined by the consistency
// check.
const DefaultTopK = 5

// Config collects the tunables of one reconstruction run.
type Config struct {
	// MarginBaseline is the VAF error-margin floor used throughout network
	// construction, enumeration pruning, and consistency deviation bounds.
	MarginBaseline float64

	// AllEdges forces exhaustive inter-level edge attempts during network
	// construction.
	AllEdges bool

	// MaxGrowCalls caps the enumeration recursion.
	MaxGrowCalls int

	// MaxTrees caps the number of collected trees.
	MaxTrees int

	// TopK is the number of best-ranked trees passed through the consistency
	// check. Zero or negative refines every tree.
	TopK int

	// SolverTol is the convergence threshold of the consistency solver.
	SolverTol float64

	// SolverMaxIter caps the consistency solver's iteration sweeps.
	SolverMaxIter int

	// Logger receives pipeline-stage diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultConfig returns the standard pipeline tuning.
func DefaultConfig() Config {
	return Config{
		MarginBaseline: phylo.DefaultMarginBaseline,
		AllEdges:       false,
		MaxGrowCalls:   spantree.DefaultMaxGrowCalls,
		MaxTrees:       spantree.DefaultMaxTrees,
		TopK:           DefaultTopK,
		SolverTol:      qp.DefaultTol,
		SolverMaxIter:  qp.DefaultMaxIter,
		Logger:         zap.NewNop(),
	}
}

// Validate reports the first out-of-range field, wrapped in ErrBadConfig.
func (c Config) Validate() error {
	switch {
	case c.MarginBaseline <= 0:
		return fmt.Errorf("%w: margin baseline %v is not positive", ErrBadConfig, c.MarginBaseline)
	case c.MaxGrowCalls <= 0:
		return fmt.Errorf("%w: max grow calls %d is not positive", ErrBadConfig, c.MaxGrowCalls)
	case c.MaxTrees <= 0:
		return fmt.Errorf("%w: max trees %d is not positive", ErrBadConfig, c.MaxTrees)
	case c.SolverTol <= 0:
		return fmt.Errorf("%w: solver tolerance %v is not positive", ErrBadConfig, c.SolverTol)
	case c.SolverMaxIter <= 0:
		return fmt.Errorf("%w: solver max iterations %d is not positive", ErrBadConfig, c.SolverMaxIter)
	}

	return nil
}

// Result is the outcome of one reconstruction run.
type Result struct {
	// Network is the constraint network the trees were enumerated from; after
	// shrinking it is the reduced network, not the initial one.
	Network *phylo.Network

	// Trees holds the candidate trees, best first. The leading refined trees
	// carry consistency scores, the rest enumeration scores.
	Trees []*spantree.Tree

	// GrowCalls is the total recursion count across all enumeration attempts.
	GrowCalls int

	// Shrinks is the number of network reductions performed before a tree
	// set was found.
	Shrinks int
}

// Engine runs reconstructions under a fixed Config. Construct with NewEngine;
// an Engine is safe for sequential reuse.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and returns an Engine. A nil logger is replaced by
// a no-op one.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Engine{cfg: cfg}, nil
}

// Reconstruct builds the constraint network over the given groups and returns
// its ranked candidate lineage trees.
func (e *Engine) Reconstruct(groups []*snv.Group, numSamples int) (*Result, error) {
	// 1. Validate input.
	if len(groups) == 0 || numSamples <= 0 {
		return nil, ErrNoGroups
	}
	log := e.cfg.Logger

	// 2. Build the constraint network.
	netOpts := []phylo.Option{
		phylo.WithMarginBaseline(e.cfg.MarginBaseline),
		phylo.WithLogger(log),
	}
	if e.cfg.AllEdges {
		netOpts = append(netOpts, phylo.WithAllEdges())
	}
	net := phylo.NewNetwork(groups, numSamples, netOpts...)
	log.Info("constraint network built",
		zap.Int("nodes", net.NumNodes()),
		zap.Int("edges", net.NumEdges()),
		zap.Int("samples", numSamples))

	// 3. Enumerate; on an empty yield, shrink away the smallest non-robust
	//    cluster and retry until trees appear or nothing is left to drop.
	res := &Result{}
	var trees []*spantree.Tree
	for {
		enum, err := spantree.Enumerate(net,
			spantree.WithMaxGrowCalls(e.cfg.MaxGrowCalls),
			spantree.WithMaxTrees(e.cfg.MaxTrees))
		if err != nil {
			return nil, err
		}
		res.GrowCalls += enum.GrowCalls
		if enum.Capped {
			log.Warn("enumeration stopped at a configured bound",
				zap.Int("trees", len(enum.Trees)),
				zap.Int("grow_calls", enum.GrowCalls))
		}
		if len(enum.Trees) > 0 {
			trees = enum.Trees

			break
		}
		if enum.Capped {
			// The budget ran out before any completion: an empty yield here
			// says nothing about the network, so shrinking would discard a
			// cluster on no evidence.
			return nil, ErrBudgetExhausted
		}

		shrunk, ok := net.Shrink()
		if !ok {
			return nil, ErrNoLineage
		}
		net = shrunk
		res.Shrinks++
		log.Info("no spanning tree, retrying on shrunk network",
			zap.Int("shrinks", res.Shrinks),
			zap.Int("nodes", net.NumNodes()))
	}

	// 4. Rank by enumeration score, then refine the best candidates with the
	//    consistency check and re-rank the refined prefix.
	spantree.Rank(trees)

	validator := consistency.NewValidator(
		consistency.WithSolver(qp.NewSolver(
			qp.WithTol(e.cfg.SolverTol),
			qp.WithMaxIter(e.cfg.SolverMaxIter))),
		consistency.WithLogger(log))
	passed := validator.Refine(net, trees, e.cfg.TopK)

	k := len(trees)
	if e.cfg.TopK > 0 && e.cfg.TopK < k {
		k = e.cfg.TopK
	}
	spantree.Rank(trees[:k])

	log.Info("reconstruction finished",
		zap.Int("trees", len(trees)),
		zap.Int("refined", k),
		zap.Int("passed", passed),
		zap.Int("grow_calls", res.GrowCalls),
		zap.Int("shrinks", res.Shrinks))

	res.Network = net
	res.Trees = trees

	return res, nil
}
