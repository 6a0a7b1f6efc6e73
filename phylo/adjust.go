package phylo

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/clonetree/snv"
)

// Network adjustments are invoked when enumeration yields no spanning tree.
// Each one edits the cluster universe and reconstructs a brand-new network;
// none patches the graph in place.

// groups collects the distinct mutation groups referenced by the network's
// nodes, in first-seen id order.
func (net *Network) groups() []*snv.Group {
	seen := make(map[*snv.Group]struct{})
	var out []*snv.Group
	for id := 0; id < net.numNodes; id++ {
		g := net.nodesByID[id].group
		if g == nil {
			continue
		}
		if _, ok := seen[g]; !ok {
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}

	return out
}

// rebuild reconstructs a network over the given groups with the same
// tunables.
func (net *Network) rebuild(groups []*snv.Group) *Network {
	return NewNetwork(groups, net.numSamples,
		func(o *Options) { *o = net.opts })
}

// Shrink removes the smallest non-robust cluster from its group and rebuilds
// the network from the edited group set. When every cluster is robust there
// is nothing safe to drop: Shrink returns the receiver unchanged and false,
// and the caller must handle the no-solution outcome.
func (net *Network) Shrink() (*Network, bool) {
	var (
		victim *snv.Cluster
		owner  *snv.Group
	)
	for id := 0; id < net.numNodes; id++ {
		n := net.nodesByID[id]
		if n.kind != KindCluster || n.cluster.Robust() {
			continue
		}
		if victim == nil || n.cluster.Size() < victim.Size() {
			victim = n.cluster
			owner = n.group
		}
	}
	if victim == nil {
		return net, false
	}

	net.opts.Logger.Info("removing non-robust cluster",
		zap.String("group", owner.Tag),
		zap.Int("cluster", victim.ID),
		zap.Int("size", victim.Size()))

	groups := net.groups()
	for i, g := range groups {
		if g == owner {
			edited, err := g.Without(victim)
			if err != nil {
				// The victim was found on a live node; absence is impossible.
				return net, false
			}
			groups[i] = edited

			break
		}
	}

	return net.rebuild(groups), true
}

// Collapse merges the clusters behind two same-group nodes into their union
// (membership concatenated, centroid and deviation recomputed) and rebuilds.
func (net *Network) Collapse(n1, n2 *Node) (*Network, error) {
	if n1.kind != KindCluster || n2.kind != KindCluster {
		return nil, ErrNodeNotCluster
	}
	if n1.group != n2.group {
		return nil, ErrDifferentGroups
	}

	groups := net.groups()
	for i, g := range groups {
		if g == n1.group {
			edited, err := g.WithMerged(n1.cluster, n2.cluster)
			if err != nil {
				return nil, err
			}
			groups[i] = edited

			break
		}
	}

	net.opts.Logger.Info("collapsed clusters",
		zap.String("group", n1.group.Tag),
		zap.Int("cluster1", n1.cluster.ID),
		zap.Int("cluster2", n2.cluster.ID))

	return net.rebuild(groups), nil
}

// RemoveNode drops the cluster behind a single node from its group and
// rebuilds.
func (net *Network) RemoveNode(n *Node) (*Network, error) {
	if n.kind != KindCluster {
		return nil, ErrNodeNotCluster
	}

	groups := net.groups()
	for i, g := range groups {
		if g == n.group {
			edited, err := g.Without(n.cluster)
			if err != nil {
				return nil, err
			}
			groups[i] = edited

			break
		}
	}

	return net.rebuild(groups), nil
}
