package spantree

import "github.com/katalvlaran/clonetree/phylo"

// SampleParents returns the minimal set of tree nodes that directly dominate
// the per-sample leaf of the given sample: walking levels bottom-up, a node
// present in the sample is selected unless it is an ancestor of an already
// selected parent, and within one level ancestors of co-selected nodes are
// dropped. When no node is present in the sample the germline root is the
// sole parent.
//
// This materializes the network's level-0 leaves on demand for reporting;
// leaves are never part of the enumerated node set.
func SampleParents(net *phylo.Network, t *Tree, sample int) []*phylo.Node {
	var chosen []*phylo.Node
	var all []*phylo.Node

	for lvl := 1; lvl <= net.NumSamples(); lvl++ {
		var batch []*phylo.Node
		for _, n := range net.NodesAtLevel(lvl) {
			if !t.ContainsNode(n) || n.Freq(sample) <= 0 {
				continue
			}
			keep := true
			for _, p := range all {
				if t.Descendant(n, p) {
					keep = false

					break
				}
			}
			if keep {
				batch = append(batch, n)
				all = append(all, n)
			}
		}

		// Within the batch, drop any node that is an ancestor of another.
		for _, n1 := range batch {
			ancestor := false
			for _, n2 := range batch {
				if n1 != n2 && t.Descendant(n1, n2) {
					ancestor = true

					break
				}
			}
			if !ancestor {
				chosen = append(chosen, n1)
			}
		}
	}

	if len(chosen) == 0 {
		return []*phylo.Node{net.Root()}
	}

	return chosen
}
