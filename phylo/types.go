package phylo

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/clonetree/snv"
)

// Sentinel errors for network adjustments.
var (
	// ErrNodeNotCluster indicates an adjustment referenced the root or a leaf.
	ErrNodeNotCluster = errors.New("phylo: node is not cluster-backed")

	// ErrDifferentGroups indicates a collapse of nodes from different groups.
	ErrDifferentGroups = errors.New("phylo: nodes belong to different groups")
)

// DefaultMarginBaseline is the fixed VAF error-margin floor. Statistical
// margins never fall below it, and the root and sample leaves use it in
// place of a cluster-derived standard error.
const DefaultMarginBaseline = 0.1

// ciFactor scales a standard deviation to a 95% confidence interval.
const ciFactor = 1.96

// Kind discriminates the three node variants of the constraint network.
type Kind uint8

const (
	// KindRoot is the virtual germline root at level S+1.
	KindRoot Kind = iota

	// KindCluster is a sub-population node backed by an snv.Cluster.
	KindCluster

	// KindLeaf is a per-sample leaf at level 0, materialized on demand.
	KindLeaf
)

// Node wraps the virtual root, a per-sample leaf, or a cluster. Nodes are
// immutable after creation and exclusively owned by the Network that created
// them.
type Node struct {
	id         int
	level      int
	kind       Kind
	group      *snv.Group
	cluster    *snv.Cluster
	leafSample int
}

// ID returns the node's unique, monotonically assigned identifier.
func (n *Node) ID() int { return n.id }

// Level returns the node's level: S+1 for the root, the number of occupied
// samples for a cluster node, 0 for a leaf.
func (n *Node) Level() int { return n.level }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// IsRoot reports whether the node is the virtual root.
func (n *Node) IsRoot() bool { return n.kind == KindRoot }

// IsLeaf reports whether the node is a per-sample leaf.
func (n *Node) IsLeaf() bool { return n.kind == KindLeaf }

// Group returns the owning mutation group, or nil for the root and leaves.
func (n *Node) Group() *snv.Group { return n.group }

// Cluster returns the backing cluster, or nil for the root and leaves.
func (n *Node) Cluster() *snv.Cluster { return n.cluster }

// LeafSample returns the sample index of a leaf node, -1 otherwise.
func (n *Node) LeafSample() int {
	if n.kind != KindLeaf {
		return -1
	}

	return n.leafSample
}

// Freq returns the node's derived frequency in global sample i:
// 1 everywhere for the root, an indicator for a leaf, and the cluster
// centroid (via the group's tag mapping) for a cluster node.
func (n *Node) Freq(i int) float64 {
	switch n.kind {
	case KindRoot:
		return 1.0
	case KindLeaf:
		if i == n.leafSample {
			return 1.0
		}

		return 0.0
	default:
		col := n.group.SampleIndex(i)
		if col < 0 {
			return 0.0
		}

		return n.cluster.Centroid[col]
	}
}

// StdDev returns the cluster's frequency standard deviation in global sample
// i, or 0 for the root, leaves, and unoccupied samples.
func (n *Node) StdDev(i int) float64 {
	if n.kind != KindCluster {
		return 0.0
	}
	col := n.group.SampleIndex(i)
	if col < 0 {
		return 0.0
	}

	return n.cluster.StdDev[col]
}

// Size returns the backing cluster's membership size, or 0 for the root and
// leaves.
func (n *Node) Size() int {
	if n.kind != KindCluster {
		return 0
	}

	return n.cluster.Size()
}

// Label returns a short human-readable node description.
func (n *Node) Label() string {
	switch n.kind {
	case KindRoot:
		return "germline"
	case KindLeaf:
		return fmt.Sprintf("sample %d", n.leafSample)
	default:
		return fmt.Sprintf("%s/%d(%d)", n.group.Tag, n.cluster.ID, n.cluster.Size())
	}
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("node %d [level %d] %s", n.id, n.level, n.Label())
}

// Option configures a Network before construction.
type Option func(*Options)

// Options holds the global tunables of network construction.
type Options struct {
	// MarginBaseline is the fixed error-margin floor (see DefaultMarginBaseline).
	MarginBaseline float64

	// AllEdges forces exhaustive edge attempts between every pair of
	// differing levels, maximizing recall at the cost of graph density.
	AllEdges bool

	// Logger receives adjustment diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns the construction defaults: the baseline margin
// floor, nearest-level edges only, and a no-op logger.
func DefaultOptions() Options {
	return Options{
		MarginBaseline: DefaultMarginBaseline,
		AllEdges:       false,
		Logger:         zap.NewNop(),
	}
}

// WithMarginBaseline sets the fixed error-margin floor.
func WithMarginBaseline(m float64) Option {
	return func(o *Options) {
		if m > 0 {
			o.MarginBaseline = m
		}
	}
}

// WithAllEdges enables exhaustive inter-level edge attempts.
func WithAllEdges() Option {
	return func(o *Options) { o.AllEdges = true }
}

// WithLogger installs a structured logger for adjustment diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
