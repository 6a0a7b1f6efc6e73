package snv

// RemoveCluster detaches c from the group. It returns ErrClusterNotFound when
// c does not belong to the group.
func (g *Group) RemoveCluster(c *Cluster) error {
	for i, cl := range g.clusters {
		if cl == c {
			g.clusters = append(g.clusters[:i], g.clusters[i+1:]...)

			return nil
		}
	}

	return ErrClusterNotFound
}

// MergeClusters builds the union of two disjoint clusters of the group:
// membership is the concatenation, centroid and standard deviation are
// recomputed from the combined membership against the group's frequency
// table. The union keeps c1's identifier and is robust when either input was.
//
// The inputs are left untouched; attaching the union (and detaching the
// originals) is the caller's decision, normally via WithMerged.
func (g *Group) MergeClusters(c1, c2 *Cluster) (*Cluster, error) {
	if !g.Contains(c1) || !g.Contains(c2) {
		return nil, ErrClusterNotFound
	}
	seen := make(map[int]struct{}, len(c1.Members))
	for _, m := range c1.Members {
		seen[m] = struct{}{}
	}
	for _, m := range c2.Members {
		if _, dup := seen[m]; dup {
			return nil, ErrOverlappingMembers
		}
	}

	union := &Cluster{
		ID:      c1.ID,
		Members: make([]int, 0, len(c1.Members)+len(c2.Members)),
		robust:  c1.robust || c2.robust,
	}
	union.Members = append(union.Members, c1.Members...)
	union.Members = append(union.Members, c2.Members...)
	union.Recompute(g.Freq, g.NumSamples())

	return union, nil
}

// Without derives a new Group identical to g but lacking cluster c. The SNV
// list and frequency table are shared; the cluster slice is fresh.
func (g *Group) Without(c *Cluster) (*Group, error) {
	if !g.Contains(c) {
		return nil, ErrClusterNotFound
	}
	out := &Group{Tag: g.Tag, SNVs: g.SNVs, Freq: g.Freq, robust: g.robust}
	for _, cl := range g.clusters {
		if cl != c {
			out.clusters = append(out.clusters, cl)
		}
	}

	return out, nil
}

// WithMerged derives a new Group in which c1 and c2 are replaced by their
// union cluster (see MergeClusters).
func (g *Group) WithMerged(c1, c2 *Cluster) (*Group, error) {
	union, err := g.MergeClusters(c1, c2)
	if err != nil {
		return nil, err
	}
	out := &Group{Tag: g.Tag, SNVs: g.SNVs, Freq: g.Freq, robust: g.robust}
	for _, cl := range g.clusters {
		if cl != c1 && cl != c2 {
			out.clusters = append(out.clusters, cl)
		}
	}
	out.clusters = append(out.clusters, union)

	return out, nil
}
