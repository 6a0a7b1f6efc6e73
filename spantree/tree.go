package spantree

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/clonetree/phylo"
)

// Tree is a spanning arborescence drawn from a constraint network: a node
// subset (always including the root) plus the tree edges over it, with a
// mutable error score. A Tree stores its own copies of the adjacency, so it
// survives further enumeration-time network mutation.
type Tree struct {
	// Err is the tree's error score: the sum of the edge-direction selection
	// errors at completion time, later overwritten by the consistency check.
	Err float64

	nodes    []*phylo.Node
	nodeSet  map[*phylo.Node]struct{}
	children map[*phylo.Node][]*phylo.Node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		nodeSet:  make(map[*phylo.Node]struct{}),
		children: make(map[*phylo.Node][]*phylo.Node),
	}
}

// Size returns the number of nodes currently in the tree.
func (t *Tree) Size() int { return len(t.nodes) }

// Nodes returns the tree nodes in insertion order (shared slice; callers
// must not mutate).
func (t *Tree) Nodes() []*phylo.Node { return t.nodes }

// ContainsNode reports whether n is in the tree.
func (t *Tree) ContainsNode(n *phylo.Node) bool {
	_, ok := t.nodeSet[n]

	return ok
}

// ContainsEdge reports whether the tree holds the edge from→to.
func (t *Tree) ContainsEdge(from, to *phylo.Node) bool {
	for _, c := range t.children[from] {
		if c == to {
			return true
		}
	}

	return false
}

// Children returns from's tree children (shared slice; callers must not
// mutate).
func (t *Tree) Children(from *phylo.Node) []*phylo.Node {
	return t.children[from]
}

// AddNode inserts n if absent.
func (t *Tree) AddNode(n *phylo.Node) {
	if t.ContainsNode(n) {
		return
	}
	t.nodes = append(t.nodes, n)
	t.nodeSet[n] = struct{}{}
}

// AddEdge attaches the tree edge from→to.
func (t *Tree) AddEdge(from, to *phylo.Node) {
	if t.ContainsEdge(from, to) {
		return
	}
	t.children[from] = append(t.children[from], to)
}

// RemoveEdge detaches the tree edge from→to and drops the child node, which
// at removal time has no children of its own (deeper frames have already
// unwound).
func (t *Tree) RemoveEdge(from, to *phylo.Node) {
	cs := t.children[from]
	for i, c := range cs {
		if c == to {
			t.children[from] = append(cs[:i], cs[i+1:]...)

			break
		}
	}
	if _, ok := t.nodeSet[to]; ok {
		delete(t.nodeSet, to)
		for i, n := range t.nodes {
			if n == to {
				t.nodes = append(t.nodes[:i], t.nodes[i+1:]...)

				break
			}
		}
	}
}

// Descendant reports whether w lies inside v's subtree (strictly below v).
func (t *Tree) Descendant(v, w *phylo.Node) bool {
	for _, c := range t.children[v] {
		if c == w || t.Descendant(c, w) {
			return true
		}
	}

	return false
}

// CheckConstraint reports whether parent's frequency still dominates the sum
// of its currently attached children's frequencies, within margin, in every
// sample. It is evaluated incrementally: each time a child is attached, only
// the affected parent needs re-checking, and since child sums only grow, a
// completed tree is valid iff every incremental check passed.
func (t *Tree) CheckConstraint(parent *phylo.Node, numSamples int, margin float64) bool {
	for s := 0; s < numSamples; s++ {
		sum := 0.0
		for _, c := range t.children[parent] {
			sum += c.Freq(s)
		}
		if sum > parent.Freq(s)+margin {
			return false
		}
	}

	return true
}

// Clone returns a deep copy: node order, adjacency, and score.
func (t *Tree) Clone() *Tree {
	out := &Tree{
		Err:      t.Err,
		nodes:    append([]*phylo.Node(nil), t.nodes...),
		nodeSet:  make(map[*phylo.Node]struct{}, len(t.nodeSet)),
		children: make(map[*phylo.Node][]*phylo.Node, len(t.children)),
	}
	for n := range t.nodeSet {
		out.nodeSet[n] = struct{}{}
	}
	for from, cs := range t.children {
		if len(cs) > 0 {
			out.children[from] = append([]*phylo.Node(nil), cs...)
		}
	}

	return out
}

// Edges returns the tree's edge list as (from, to) node pairs, in node
// insertion order.
func (t *Tree) Edges() [][2]*phylo.Node {
	var out [][2]*phylo.Node
	for _, from := range t.nodes {
		for _, to := range t.children[from] {
			out = append(out, [2]*phylo.Node{from, to})
		}
	}

	return out
}

// SameEdges reports whether two trees hold exactly the same edge set.
func (t *Tree) SameEdges(other *Tree) bool {
	count := 0
	for _, from := range t.nodes {
		for _, to := range t.children[from] {
			if !other.ContainsEdge(from, to) {
				return false
			}
			count++
		}
	}
	otherCount := 0
	for _, cs := range other.children {
		otherCount += len(cs)
	}

	return count == otherCount
}

// String renders the tree edges and score.
func (t *Tree) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tree (err=%.4f):\n", t.Err)
	for _, e := range t.Edges() {
		fmt.Fprintf(&b, "  %s -> %s\n", e[0].Label(), e[1].Label())
	}

	return b.String()
}
