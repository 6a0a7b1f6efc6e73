package phylo

import (
	"math"
	"sort"

	"github.com/katalvlaran/clonetree/snv"
)

// direction is the outcome of an edge admissibility test.
type direction int8

const (
	dirNone    direction = iota // no admissible edge
	dirForward                  // edge n1→n2
	dirReverse                  // edge n2→n1
)

// Network is the directed constraint graph over sub-population nodes.
// It owns every Node it created, indexes them by level and by id, and keeps
// the adjacency relation plus the per-edge direction-selection error used to
// seed tree scores.
type Network struct {
	opts       Options
	numSamples int
	numNodes   int
	numEdges   int

	root         *Node
	nodesByLevel map[int][]*Node
	nodesByID    map[int]*Node
	adj          map[*Node][]*Node

	// edgeErr records, per ordered (from,to) id pair, the violation magnitude
	// of the direction chosen at admission time.
	edgeErr map[[2]int]float64
}

// NewNetwork constructs the constraint network from the sub-populations of
// the given mutation groups over numSamples tissue samples.
//
// Steps:
//  1. Create the virtual root at level numSamples+1.
//  2. Create one node per cluster at level = |samples the group occurs in|,
//     attempting an edge between every pair of same-group nodes.
//  3. Attempt edges from every non-empty level to the nearest non-empty
//     lower level (or to every lower level in all-edges mode).
//  4. Orphan repair: connect any node without a parent to the closest valid
//     dominator above it, falling back to the root.
//
// Construction never fails structurally: after it returns, every node other
// than the root has at least one incoming edge.
func NewNetwork(groups []*snv.Group, numSamples int, opts ...Option) *Network {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	net := &Network{
		opts:         o,
		numSamples:   numSamples,
		nodesByLevel: make(map[int][]*Node),
		nodesByID:    make(map[int]*Node),
		adj:          make(map[*Node][]*Node),
		edgeErr:      make(map[[2]int]float64),
	}

	// 1. Virtual root at level numSamples+1.
	net.root = net.addNode(&Node{kind: KindRoot, level: numSamples + 1, leafSample: -1})

	// 2. Cluster nodes, plus same-group edge attempts (nested sub-clones of
	//    one mutation set live at the same level).
	for _, g := range groups {
		level := g.NumSamples()
		groupNodes := make([]*Node, 0, len(g.Clusters()))
		for _, c := range g.Clusters() {
			groupNodes = append(groupNodes, net.addNode(&Node{
				kind:       KindCluster,
				level:      level,
				group:      g,
				cluster:    c,
				leafSample: -1,
			}))
		}
		for i := 0; i < len(groupNodes); i++ {
			for j := i + 1; j < len(groupNodes); j++ {
				net.checkAndAddEdge(groupNodes[i], groupNodes[j])
			}
		}
	}

	// 3. Inter-level edges: each non-empty level connects down to the nearest
	//    non-empty lower level.
	for lvl := numSamples + 1; lvl > 0; lvl-- {
		from := net.nodesByLevel[lvl]
		if len(from) == 0 {
			continue
		}
		next := lvl - 1
		for next > 0 && len(net.nodesByLevel[next]) == 0 {
			next--
		}
		if next == 0 {
			continue
		}
		for _, n1 := range from {
			for _, n2 := range net.nodesByLevel[next] {
				net.checkAndAddEdge(n1, n2)
			}
		}
	}
	if o.AllEdges {
		net.addAllHiddenEdges()
	}

	// 4. Orphan repair (skips the root).
	net.repairOrphans()

	return net
}

// addAllHiddenEdges attempts edges between every pair of differing levels.
func (net *Network) addAllHiddenEdges() {
	for i := net.numSamples + 1; i > 0; i-- {
		from := net.nodesByLevel[i]
		if len(from) == 0 {
			continue
		}
		for j := i - 1; j >= 1; j-- {
			to := net.nodesByLevel[j]
			if len(to) == 0 {
				continue
			}
			for _, n1 := range from {
				for _, n2 := range to {
					net.checkAndAddEdge(n1, n2)
				}
			}
		}
	}
}

// repairOrphans connects every parentless non-root node to the first valid
// dominator found scanning the levels above it, closest first, and directly
// to the root when no level yields one. The scan starts two levels up: the
// level immediately above was already exhausted by the inter-level pass.
func (net *Network) repairOrphans() {
	hasParent := make([]bool, net.numNodes)
	for _, children := range net.adj {
		for _, c := range children {
			hasParent[c.id] = true
		}
	}

	for id := 1; id < net.numNodes; id++ {
		if hasParent[id] {
			continue
		}
		n := net.nodesByID[id]
		found := false
		for lvl := n.level + 2; lvl <= net.numSamples+1 && !found; lvl++ {
			for _, n2 := range net.nodesByLevel[lvl] {
				if net.checkAndAddEdge(n2, n) == dirForward {
					found = true

					break
				}
			}
		}
		if !found {
			net.AddEdge(net.root, n)
		}
	}
}

// checkAndAddEdge decides whether an edge should exist between n1 and n2
// based on the frequency data, and adds it in the direction that minimizes
// the violation error. Requires n1 at an equal or higher level than n2; every
// construction path iterates from higher levels, keeping the precondition.
//
// A per-sample leaf target short-circuits: the edge n1→n2 exists iff n1 is
// present in the leaf's sample; leaves are never promoted to parents.
func (net *Network) checkAndAddEdge(n1, n2 *Node) direction {
	if n2.IsLeaf() {
		if n1.Freq(n2.leafSample) > 0 {
			net.addEdgeWithErr(n1, n2, 0)

			return dirForward
		}

		return dirNone
	}

	comp12, comp21 := 0, 0
	var err12, err21 float64
	for i := 0; i < net.numSamples; i++ {
		// A zero parent cannot explain a non-zero child in any later sample.
		if n1.Freq(i) == 0 && n2.Freq(i) != 0 {
			break
		}
		if n1.Freq(i) >= n2.Freq(i)-net.errorMargin(n1, n2, i) {
			comp12++
		}
		if n1.Freq(i) < n2.Freq(i) {
			err12 += n2.Freq(i) - n1.Freq(i)
		}
	}
	for i := 0; i < net.numSamples; i++ {
		if n2.Freq(i) == 0 && n1.Freq(i) != 0 {
			break
		}
		if n2.Freq(i) >= n1.Freq(i)-net.errorMargin(n2, n1, i) {
			comp21++
		}
		if n2.Freq(i) < n1.Freq(i) {
			err21 += n1.Freq(i) - n2.Freq(i)
		}
	}

	switch {
	case comp12 == net.numSamples && comp21 == net.numSamples:
		// Both directions qualify: strictly lower error wins, ties go forward.
		if err21 < err12 {
			net.addEdgeWithErr(n2, n1, err21)

			return dirReverse
		}
		net.addEdgeWithErr(n1, n2, err12)

		return dirForward
	case comp12 == net.numSamples:
		net.addEdgeWithErr(n1, n2, err12)

		return dirForward
	case comp21 == net.numSamples:
		net.addEdgeWithErr(n2, n1, err21)

		return dirReverse
	default:
		return dirNone
	}
}

// errorMargin returns the adaptive margin for the (from, to, sample) triple:
// the sum of both sides' standard errors (95% CI), floored at the baseline.
// The root and leaves contribute the baseline in place of a standard error; a
// memberless cluster carries no statistical evidence and contributes nothing.
func (net *Network) errorMargin(from, to *Node, i int) float64 {
	fromErr := net.opts.MarginBaseline
	if from.kind == KindCluster {
		fromErr = 0
		if n := from.Size(); n > 0 {
			fromErr = ciFactor * from.StdDev(i) / math.Sqrt(float64(n))
		}
	}
	toErr := net.opts.MarginBaseline
	if to.kind == KindCluster {
		toErr = 0
		if n := to.Size(); n > 0 {
			toErr = ciFactor * to.StdDev(i) / math.Sqrt(float64(n))
		}
	}
	if m := fromErr + toErr; m > net.opts.MarginBaseline {
		return m
	}

	return net.opts.MarginBaseline
}

// addNode registers a node, assigning the next id.
func (net *Network) addNode(n *Node) *Node {
	n.id = net.numNodes
	net.numNodes++
	net.nodesByLevel[n.level] = append(net.nodesByLevel[n.level], n)
	net.nodesByID[n.id] = n

	return n
}

func (net *Network) addEdgeWithErr(from, to *Node, errSum float64) {
	key := [2]int{from.id, to.id}
	if _, seen := net.edgeErr[key]; !seen {
		net.edgeErr[key] = errSum
	}
	net.AddEdge(from, to)
}

// AddEdge inserts the directed edge from→to. At most one edge exists per
// ordered pair; re-adding is a no-op. Enumeration uses AddEdge solely to
// restore edges it removed.
func (net *Network) AddEdge(from, to *Node) {
	for _, c := range net.adj[from] {
		if c == to {
			return
		}
	}
	net.adj[from] = append(net.adj[from], to)
	net.numEdges++
}

// RemoveEdge deletes the directed edge from→to if present. Every removal
// during enumeration must be paired with a restoring AddEdge.
func (net *Network) RemoveEdge(from, to *Node) {
	children := net.adj[from]
	for i, c := range children {
		if c == to {
			net.adj[from] = append(children[:i], children[i+1:]...)
			net.numEdges--

			return
		}
	}
}

// Root returns the virtual germline root.
func (net *Network) Root() *Node { return net.root }

// NumNodes returns the total node count.
func (net *Network) NumNodes() int { return net.numNodes }

// NumEdges returns the current edge count.
func (net *Network) NumEdges() int { return net.numEdges }

// NumSamples returns the total tissue-sample count.
func (net *Network) NumSamples() int { return net.numSamples }

// MarginBaseline returns the configured fixed margin floor.
func (net *Network) MarginBaseline() float64 { return net.opts.MarginBaseline }

// NodeByID returns the node with the given id, or nil.
func (net *Network) NodeByID(id int) *Node { return net.nodesByID[id] }

// NodesAtLevel returns a copy of the nodes at the given level.
func (net *Network) NodesAtLevel(level int) []*Node {
	return append([]*Node(nil), net.nodesByLevel[level]...)
}

// Nodes returns all nodes in id order.
func (net *Network) Nodes() []*Node {
	out := make([]*Node, 0, net.numNodes)
	for id := 0; id < net.numNodes; id++ {
		out = append(out, net.nodesByID[id])
	}

	return out
}

// Children returns a copy of n's current out-neighbors.
func (net *Network) Children(n *Node) []*Node {
	return append([]*Node(nil), net.adj[n]...)
}

// Parents returns the nodes with a current edge into n, in id order.
func (net *Network) Parents(n *Node) []*Node {
	var out []*Node
	for from, children := range net.adj {
		for _, c := range children {
			if c == n {
				out = append(out, from)

				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })

	return out
}

// HasEdge reports whether the directed edge from→to currently exists.
func (net *Network) HasEdge(from, to *Node) bool {
	for _, c := range net.adj[from] {
		if c == to {
			return true
		}
	}

	return false
}

// EdgeErr returns the violation error recorded when the edge from→to was
// admitted, or 0 for repaired/unknown edges.
func (net *Network) EdgeErr(from, to *Node) float64 {
	return net.edgeErr[[2]int{from.id, to.id}]
}

// NewLeaf materializes a per-sample leaf node at level 0. Leaves are created
// on demand for reporting and are not part of the enumerated node set.
func NewLeaf(sample int) *Node {
	return &Node{kind: KindLeaf, level: 0, id: -1 - sample, leafSample: sample}
}
