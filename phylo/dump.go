package phylo

import (
	"fmt"
	"strings"
)

// Convenience text views over the network. These are reporting aids, not
// part of the algorithmic contract.

// String renders the full network: counts, nodes by level, and edges.
func (net *Network) String() string {
	var b strings.Builder
	b.WriteString("--- PHYLOGENETIC CONSTRAINT NETWORK ---\n")
	fmt.Fprintf(&b, "nodes = %d, edges = %d\n", net.numNodes, net.numEdges)

	b.WriteString("NODES:\n")
	for lvl := net.numSamples + 1; lvl >= 0; lvl-- {
		nodes := net.nodesByLevel[lvl]
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "level %d:\n", lvl)
		for _, n := range nodes {
			fmt.Fprintf(&b, "  %s\n", n)
		}
	}

	b.WriteString("EDGES:\n")
	for id := 0; id < net.numNodes; id++ {
		from := net.nodesByID[id]
		for _, to := range net.adj[from] {
			fmt.Fprintf(&b, "  %d -> %d\n", from.id, to.id)
		}
	}

	return b.String()
}

// NodeSummary renders one line per cluster node: id, tag, membership size,
// and the centroid expanded over all samples (zeros where the group is
// absent).
func (net *Network) NodeSummary() string {
	var b strings.Builder
	for lvl := net.numSamples + 1; lvl >= 0; lvl-- {
		for _, n := range net.nodesByLevel[lvl] {
			if n.kind != KindCluster {
				continue
			}
			fmt.Fprintf(&b, "%d\t%s\t%d", n.id, n.group.Tag, n.cluster.Size())
			for s := 0; s < net.numSamples; s++ {
				fmt.Fprintf(&b, "\t%.2f", n.Freq(s))
			}
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// MemberSummary renders one line per cluster node listing its member SNVs.
func (net *Network) MemberSummary() string {
	var b strings.Builder
	for lvl := net.numSamples + 1; lvl >= 0; lvl-- {
		for _, n := range net.nodesByLevel[lvl] {
			if n.kind != KindCluster {
				continue
			}
			fmt.Fprintf(&b, "%d\t%s\t[", n.id, n.group.Tag)
			for j, v := range n.cluster.Centroid {
				if j > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "%.2f", v)
			}
			b.WriteByte(']')
			for _, m := range n.cluster.Members {
				if m < len(n.group.SNVs) {
					entry := n.group.SNVs[m]
					fmt.Fprintf(&b, "\tsnv%d", entry.ID)
				}
			}
			b.WriteByte('\n')
		}
	}

	return b.String()
}
