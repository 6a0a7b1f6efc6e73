package snv

import "errors"

// Sentinel errors for group and cluster operations.
var (
	// ErrBadTag indicates a malformed group tag bitstring.
	ErrBadTag = errors.New("snv: bad group tag")

	// ErrClusterNotFound indicates the referenced cluster is not in the group.
	ErrClusterNotFound = errors.New("snv: cluster not found in group")

	// ErrOverlappingMembers indicates a merge of clusters sharing members.
	ErrOverlappingMembers = errors.New("snv: clusters share members")
)

// SNV is a single-nucleotide variant record, the basic observational unit.
// Frequency observations live in the owning Group's frequency table, one row
// per SNV, one column per sample the group occurs in.
type SNV struct {
	// ID uniquely identifies the variant in the input set.
	ID int

	// Chrom is the chromosome name.
	Chrom string

	// Pos is the 1-based genomic position.
	Pos int

	// Desc is a free-form annotation (gene, effect, ...).
	Desc string
}

// Cluster describes one sub-population: a set of SNVs from a single Group
// whose frequency profiles across samples are statistically similar.
//
// Centroid and StdDev have one entry per sample the owning Group occurs in
// (the group's tag maps global sample indices onto these columns). Members
// holds indices into the owning Group's SNV list.
type Cluster struct {
	// ID identifies the cluster within its group.
	ID int

	// Centroid is the mean frequency per group sample column.
	Centroid []float64

	// StdDev is the per-column standard deviation of member frequencies.
	StdDev []float64

	// Members indexes the owning group's SNV list.
	Members []int

	// robust marks clusters whose membership meets the minimum-confidence
	// threshold; non-robust clusters are removal candidates when no valid
	// lineage tree exists.
	robust bool
}

// NewCluster constructs a cluster with the given identity and statistics.
// The slices are copied, so callers may reuse their buffers.
func NewCluster(id int, centroid, stdDev []float64, members []int, robust bool) *Cluster {
	return &Cluster{
		ID:       id,
		Centroid: append([]float64(nil), centroid...),
		StdDev:   append([]float64(nil), stdDev...),
		Members:  append([]int(nil), members...),
		robust:   robust,
	}
}

// Size returns the number of member SNVs.
func (c *Cluster) Size() int { return len(c.Members) }

// Robust reports whether the cluster meets the robustness threshold.
func (c *Cluster) Robust() bool { return c.robust }

// Group is one partition cell of the mutation universe: all SNVs observed in
// exactly the samples marked by Tag, together with the sub-population
// clusters found among them.
type Group struct {
	// Tag is the sample-occurrence bitstring, e.g. "110".
	Tag string

	// SNVs are the group's mutation records.
	SNVs []SNV

	// Freq is the per-mutation frequency table: Freq[i][j] is the VAF of
	// SNVs[i] in the group's j-th occurring sample.
	Freq [][]float64

	// robust marks groups whose SNV count meets the group-size threshold.
	robust bool

	clusters []*Cluster
}

// NewGroup validates tag and assembles a group. Clusters may be attached
// afterwards via AddCluster.
func NewGroup(tag string, snvs []SNV, freq [][]float64, robust bool) (*Group, error) {
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	return &Group{
		Tag:    tag,
		SNVs:   snvs,
		Freq:   freq,
		robust: robust,
	}, nil
}

// validateTag rejects empty tags, non-binary characters, and all-zero tags.
func validateTag(tag string) error {
	if len(tag) == 0 {
		return ErrBadTag
	}
	ones := 0
	for _, ch := range tag {
		switch ch {
		case '1':
			ones++
		case '0':
		default:
			return ErrBadTag
		}
	}
	if ones == 0 {
		return ErrBadTag
	}

	return nil
}

// NumSamples returns the number of samples the group's mutations occur in,
// i.e. the count of '1's in the tag. This is also the constraint-network
// level of the group's cluster nodes.
func (g *Group) NumSamples() int {
	n := 0
	for _, ch := range g.Tag {
		if ch == '1' {
			n++
		}
	}

	return n
}

// TotalSamples returns the tag length, i.e. the global sample count the tag
// was written against.
func (g *Group) TotalSamples() int { return len(g.Tag) }

// Occurs reports whether the group's mutations occur in global sample i.
func (g *Group) Occurs(i int) bool {
	return i >= 0 && i < len(g.Tag) && g.Tag[i] == '1'
}

// SampleIndex maps a global sample index onto the group's centroid column,
// or -1 when the group does not occur in that sample.
func (g *Group) SampleIndex(i int) int {
	if !g.Occurs(i) {
		return -1
	}
	col := 0
	for j := 0; j < i; j++ {
		if g.Tag[j] == '1' {
			col++
		}
	}

	return col
}

// Robust reports whether the group meets the group-size threshold.
func (g *Group) Robust() bool { return g.robust }

// Clusters returns the group's sub-population clusters (shared slice; callers
// must not mutate).
func (g *Group) Clusters() []*Cluster { return g.clusters }

// AddCluster attaches a cluster to the group.
func (g *Group) AddCluster(c *Cluster) { g.clusters = append(g.clusters, c) }

// Contains reports whether c belongs to the group.
func (g *Group) Contains(c *Cluster) bool {
	for _, cl := range g.clusters {
		if cl == c {
			return true
		}
	}

	return false
}
