package spantree

import "github.com/katalvlaran/clonetree/phylo"

// edge is a directed frontier entry from a tree node to a non-tree node.
type edge struct {
	from, to *phylo.Node
}

// enumerator encapsulates the state of one enumeration run: the frontier
// stack, the last completed tree (bridge-test reference), the collected
// trees, and the bound counters. State is per-run, never shared.
type enumerator struct {
	net        *phylo.Network
	opts       Options
	numSamples int
	margin     float64

	frontier  []edge
	last      *Tree
	trees     []*Tree
	growCalls int
	stopped   bool
}

// Enumerate finds the directed spanning trees of net rooted at the virtual
// root, visiting every node exactly once per tree. Enumeration prunes any
// branch whose newest edge breaks the parent's frequency-domination
// constraint, and stops early once either configured bound is hit; the
// result is then flagged Capped but remains valid best-effort output.
//
// The network's working edge set is mutated during the run and fully
// restored before Enumerate returns, bounds included.
func Enumerate(net *phylo.Network, opts ...Option) (*Result, error) {
	// 1. Validate input and normalize options.
	if net == nil {
		return nil, ErrNilNetwork
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	en := &enumerator{
		net:        net,
		opts:       o,
		numSamples: net.NumSamples(),
		margin:     net.MarginBaseline(),
	}

	// 2. Seed the partial tree with the root and the frontier with every
	//    (root, v) edge.
	t := NewTree()
	root := net.Root()
	t.AddNode(root)
	children := net.Children(root)
	if len(children) == 0 {
		return &Result{}, nil
	}
	for _, c := range children {
		en.frontier = append(en.frontier, edge{from: root, to: c})
	}

	// 3. Grow.
	en.grow(t)

	return &Result{Trees: en.trees, GrowCalls: en.growCalls, Capped: en.stopped}, nil
}

// grow extends the partial tree t by one frontier edge at a time, recursing
// until t spans the full node set, then backtracks. Every frontier push/pop
// and graph edge removal performed by a frame is undone before the frame
// returns, in reverse order, so the traversal state stays consistent across
// the whole recursion; the correctness of the restore depends on strict
// LIFO discipline.
func (en *enumerator) grow(t *Tree) {
	en.growCalls++

	// Base case: t spans all nodes, emit a snapshot.
	if t.Size() == en.net.NumNodes() {
		clone := t.Clone()
		clone.Err = en.score(clone)
		en.last = clone
		en.trees = append(en.trees, clone)
		if len(en.trees) >= en.opts.MaxTrees {
			en.stopped = true
		}

		return
	}

	// ff records the edges this frame removed from the graph, for restore.
	var ff []edge
	bridged := false
	for !bridged && !en.stopped && len(en.frontier) > 0 {
		// New tree edge: pop the frontier top and attach its target.
		e := en.frontier[len(en.frontier)-1]
		en.frontier = en.frontier[:len(en.frontier)-1]
		v := e.to
		t.AddNode(v)
		t.AddEdge(e.from, v)

		// Prune unless the parent still dominates its attached children.
		if t.CheckConstraint(e.from, en.numSamples, en.margin) {
			// Push v's edges to non-tree nodes; drop frontier edges into v
			// from nodes already in the tree.
			added := en.pushOutEdges(t, v)
			removed := en.dropInEdges(t, v)

			if en.growCalls >= en.opts.MaxGrowCalls {
				en.stopped = true
			} else {
				en.grow(t)
			}

			// Undo the frontier changes of this step.
			en.removeFromFrontier(added)
			en.frontier = append(en.frontier, removed...)
		}

		// Remove e from T and from the working graph; keep it for restore
		// and for the bridge test below.
		t.RemoveEdge(e.from, e.to)
		en.net.RemoveEdge(e.from, e.to)
		ff = append(ff, e)

		if en.stopped {
			break
		}

		// Bridge test: a competing edge w→v still in the graph is a bridge
		// only if w sits inside v's subtree of the last completed tree. If
		// every competitor is a bridge, no unseen tree remains behind this
		// frame.
		bridged = true
		for _, w := range en.net.Parents(v) {
			if en.last == nil || !en.last.Descendant(v, w) {
				bridged = false

				break
			}
		}
	}

	// Restore this frame's removed edges to the graph (and the frontier), in
	// reverse removal order.
	for i := len(ff) - 1; i >= 0; i-- {
		e := ff[i]
		en.frontier = append(en.frontier, e)
		en.net.AddEdge(e.from, e.to)
	}
}

// pushOutEdges pushes v's outgoing graph edges to nodes outside t onto the
// frontier, returning the pushed entries.
func (en *enumerator) pushOutEdges(t *Tree, v *phylo.Node) []edge {
	var added []edge
	for _, w := range en.net.Children(v) {
		if !t.ContainsNode(w) {
			vw := edge{from: v, to: w}
			en.frontier = append(en.frontier, vw)
			added = append(added, vw)
		}
	}

	return added
}

// dropInEdges removes from the frontier every edge into v whose source is
// already in t, returning the removed entries in frontier order.
func (en *enumerator) dropInEdges(t *Tree, v *phylo.Node) []edge {
	var removed []edge
	kept := en.frontier[:0]
	for _, wv := range en.frontier {
		if wv.to == v && t.ContainsNode(wv.from) {
			removed = append(removed, wv)
			continue
		}
		kept = append(kept, wv)
	}
	en.frontier = kept

	return removed
}

// removeFromFrontier deletes the given entries from the frontier, wherever
// they sit.
func (en *enumerator) removeFromFrontier(added []edge) {
	for _, a := range added {
		for i := len(en.frontier) - 1; i >= 0; i-- {
			if en.frontier[i] == a {
				en.frontier = append(en.frontier[:i], en.frontier[i+1:]...)

				break
			}
		}
	}
}

// score sums the network's per-edge direction-selection errors over the
// tree's edge set.
func (en *enumerator) score(t *Tree) float64 {
	sum := 0.0
	for _, e := range t.Edges() {
		sum += en.net.EdgeErr(e[0], e[1])
	}

	return sum
}
