// Package phylo builds the phylogenetic constraint network: a directed
// acyclic graph whose internal nodes are tumor sub-populations and whose
// edges encode the "happened-before" evolutionary relationship between them.
//
// Key features:
//   - NewNetwork(groups, S, opts...): one node per cluster (level = number of
//     samples its group occurs in) under a virtual root at level S+1;
//     candidate edges are attempted within each group, between neighbouring
//     non-empty levels, and (in all-edges mode) between every pair of
//     differing levels.
//   - Edge admissibility: a parent's frequency must dominate the child's in
//     every sample where the child is non-zero, within an adaptive margin
//     derived from the clusters' standard errors (95% confidence interval),
//     never below the configured baseline. When both directions qualify, the
//     lower-error direction wins.
//   - Orphan repair: any node left without a parent is connected to the
//     closest valid dominator above it, falling back to the root, so
//     construction always succeeds structurally.
//   - Network adjustments (Shrink, Collapse, RemoveNode) edit the cluster
//     universe and derive a brand-new network; the graph is never patched in
//     place, since admissibility depends globally on cluster statistics.
//
// Nodes are immutable once created; a rebuild creates entirely new node
// values. The only sanctioned post-construction mutation is the paired
// AddEdge/RemoveEdge cycle driven by spanning-tree enumeration, which must
// always restore what it removed.
//
// Errors:
//
//	ErrNodeNotCluster  - adjustment applied to the root or a leaf node.
//	ErrDifferentGroups - collapse of nodes from different groups.
package phylo
