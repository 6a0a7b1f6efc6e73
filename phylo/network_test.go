package phylo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clonetree/phylo"
	"github.com/katalvlaran/clonetree/snv"
)

// scenarioGroups builds the canonical 2-sample universe:
//
//	"11" — clusters [0.5,0.5] (robust) and [0.2,0.3] (non-robust)
//	"10" — cluster [0.3]
//	"01" — cluster [0.4]
func scenarioGroups(t *testing.T) []*snv.Group {
	t.Helper()

	g11, err := snv.NewGroup("11",
		[]snv.SNV{{ID: 0, Chrom: "1", Pos: 10}, {ID: 1, Chrom: "1", Pos: 20}},
		[][]float64{{0.5, 0.5}, {0.2, 0.3}}, true)
	require.NoError(t, err)
	g11.AddCluster(snv.NewCluster(0, []float64{0.5, 0.5}, []float64{0, 0}, []int{0}, true))
	g11.AddCluster(snv.NewCluster(1, []float64{0.2, 0.3}, []float64{0, 0}, []int{1}, false))

	g10, err := snv.NewGroup("10", []snv.SNV{{ID: 2, Chrom: "2", Pos: 30}},
		[][]float64{{0.3}}, true)
	require.NoError(t, err)
	g10.AddCluster(snv.NewCluster(0, []float64{0.3}, []float64{0}, []int{0}, true))

	g01, err := snv.NewGroup("01", []snv.SNV{{ID: 3, Chrom: "3", Pos: 40}},
		[][]float64{{0.4}}, true)
	require.NoError(t, err)
	g01.AddCluster(snv.NewCluster(0, []float64{0.4}, []float64{0}, []int{0}, true))

	return []*snv.Group{g11, g10, g01}
}

// findCluster locates the node backed by the cluster with the given id in the
// group with the given tag.
func findCluster(t *testing.T, net *phylo.Network, tag string, id int) *phylo.Node {
	t.Helper()
	for _, n := range net.Nodes() {
		if n.Kind() == phylo.KindCluster && n.Group().Tag == tag && n.Cluster().ID == id {
			return n
		}
	}
	t.Fatalf("cluster %s/%d not found", tag, id)

	return nil
}

func TestNewNetwork_Levels(t *testing.T) {
	net := phylo.NewNetwork(scenarioGroups(t), 2)

	assert.Equal(t, 5, net.NumNodes(), "root + 4 cluster nodes")
	assert.Equal(t, 3, net.Root().Level(), "root at numSamples+1")
	assert.Len(t, net.NodesAtLevel(3), 1)
	assert.Len(t, net.NodesAtLevel(2), 2, `"11" clusters at level 2`)
	assert.Len(t, net.NodesAtLevel(1), 2, `"10" and "01" clusters at level 1`)
}

func TestNewNetwork_Edges(t *testing.T) {
	net := phylo.NewNetwork(scenarioGroups(t), 2)
	c1 := findCluster(t, net, "11", 0)
	c2 := findCluster(t, net, "11", 1)
	d := findCluster(t, net, "10", 0)
	e := findCluster(t, net, "01", 0)

	// Within "11": [0.5,0.5] dominates [0.2,0.3].
	assert.True(t, net.HasEdge(c1, c2))
	assert.False(t, net.HasEdge(c2, c1))

	// Inter-level: c1 above both single-sample clusters.
	assert.True(t, net.HasEdge(c1, d))
	assert.True(t, net.HasEdge(c1, e))

	// The root dominates the top clusters.
	assert.True(t, net.HasEdge(net.Root(), c1))
}

// threeLevelGroups spreads one cluster per level over 3 samples:
//
//	"111" — cluster [0.5,0.5,0.5] at level 3
//	"110" — cluster [0.3,0.3] at level 2
//	"100" — cluster [0.15] at level 1
func threeLevelGroups(t *testing.T) []*snv.Group {
	t.Helper()

	g111, err := snv.NewGroup("111", []snv.SNV{{ID: 0}},
		[][]float64{{0.5, 0.5, 0.5}}, true)
	require.NoError(t, err)
	g111.AddCluster(snv.NewCluster(0, []float64{0.5, 0.5, 0.5}, []float64{0, 0, 0}, []int{0}, true))

	g110, err := snv.NewGroup("110", []snv.SNV{{ID: 1}},
		[][]float64{{0.3, 0.3}}, true)
	require.NoError(t, err)
	g110.AddCluster(snv.NewCluster(0, []float64{0.3, 0.3}, []float64{0, 0}, []int{0}, true))

	g100, err := snv.NewGroup("100", []snv.SNV{{ID: 2}},
		[][]float64{{0.15}}, true)
	require.NoError(t, err)
	g100.AddCluster(snv.NewCluster(0, []float64{0.15}, []float64{0}, []int{0}, true))

	return []*snv.Group{g111, g110, g100}
}

func TestNewNetwork_AllEdges(t *testing.T) {
	// Default construction connects neighbouring non-empty levels only: the
	// chain root→a→b→c with no level-skipping edges.
	net := phylo.NewNetwork(threeLevelGroups(t), 3)
	a := findCluster(t, net, "111", 0)
	b := findCluster(t, net, "110", 0)
	c := findCluster(t, net, "100", 0)

	assert.Equal(t, 3, net.NumEdges())
	assert.True(t, net.HasEdge(a, b))
	assert.True(t, net.HasEdge(b, c))
	assert.False(t, net.HasEdge(a, c), "level 3 → level 1 skips a level")
	assert.False(t, net.HasEdge(net.Root(), b))
	assert.False(t, net.HasEdge(net.Root(), c))

	// All-edges mode additionally attempts every pair of differing levels.
	dense := phylo.NewNetwork(threeLevelGroups(t), 3, phylo.WithAllEdges())
	a = findCluster(t, dense, "111", 0)
	b = findCluster(t, dense, "110", 0)
	c = findCluster(t, dense, "100", 0)

	assert.Equal(t, 6, dense.NumEdges())
	assert.True(t, dense.HasEdge(a, c), "hidden level-skipping edge admitted")
	assert.True(t, dense.HasEdge(dense.Root(), b))
	assert.True(t, dense.HasEdge(dense.Root(), c))

	// Admissibility invariants hold on the denser graph too.
	for _, n := range dense.Nodes() {
		assert.False(t, dense.HasEdge(n, n), "self-loop on %v", n)
		if !n.IsRoot() {
			assert.NotEmpty(t, dense.Parents(n), "orphan node %v", n)
		}
		for _, ch := range dense.Children(n) {
			assert.Greater(t, n.Level(), ch.Level())
			for s := 0; s < dense.NumSamples(); s++ {
				if ch.Freq(s) == 0 {
					continue
				}
				assert.GreaterOrEqual(t, n.Freq(s), ch.Freq(s)-dense.MarginBaseline()-1e-12,
					"edge %v→%v violates domination in sample %d", n, ch, s)
			}
		}
	}
}

func TestNewNetwork_Invariants(t *testing.T) {
	net := phylo.NewNetwork(scenarioGroups(t), 2)

	for _, n := range net.Nodes() {
		// No self-loops.
		assert.False(t, net.HasEdge(n, n), "self-loop on %v", n)

		// Every node but the root has at least one parent.
		if !n.IsRoot() {
			assert.NotEmpty(t, net.Parents(n), "orphan node %v", n)
		}

		// Edges respect level order and frequency domination within margin
		// in every sample where the child is non-zero (stddevs are 0 here,
		// so the margin is exactly the baseline).
		for _, c := range net.Children(n) {
			assert.GreaterOrEqual(t, n.Level(), c.Level())
			for s := 0; s < net.NumSamples(); s++ {
				if c.Freq(s) == 0 {
					continue
				}
				assert.GreaterOrEqual(t, n.Freq(s), c.Freq(s)-net.MarginBaseline()-1e-12,
					"edge %v→%v violates domination in sample %d", n, c, s)
			}
		}
	}
}

func TestNetwork_EdgeAddRemoveCycle(t *testing.T) {
	net := phylo.NewNetwork(scenarioGroups(t), 2)
	c1 := findCluster(t, net, "11", 0)
	d := findCluster(t, net, "10", 0)
	before := net.NumEdges()

	net.RemoveEdge(c1, d)
	assert.False(t, net.HasEdge(c1, d))
	assert.Equal(t, before-1, net.NumEdges())

	net.AddEdge(c1, d)
	assert.True(t, net.HasEdge(c1, d))
	assert.Equal(t, before, net.NumEdges())

	// Re-adding an existing edge is a no-op.
	net.AddEdge(c1, d)
	assert.Equal(t, before, net.NumEdges())
}

func TestNetwork_Shrink(t *testing.T) {
	net := phylo.NewNetwork(scenarioGroups(t), 2)

	out, removed := net.Shrink()
	assert.True(t, removed)
	assert.Equal(t, 4, out.NumNodes(), "exactly one cluster removed")
	for _, n := range out.Nodes() {
		if n.Kind() == phylo.KindCluster {
			assert.True(t, n.Cluster().Robust(), "only robust clusters survive")
		}
	}

	// All-robust network: shrink is a no-op.
	again, removed := out.Shrink()
	assert.False(t, removed)
	assert.Same(t, out, again)
}

func TestNetwork_Collapse(t *testing.T) {
	net := phylo.NewNetwork(scenarioGroups(t), 2)
	c1 := findCluster(t, net, "11", 0)
	c2 := findCluster(t, net, "11", 1)

	out, err := net.Collapse(c1, c2)
	require.NoError(t, err)
	assert.Equal(t, 4, out.NumNodes())

	union := findCluster(t, out, "11", 0)
	assert.Equal(t, 2, union.Cluster().Size())
	// Centroid recomputed from the union of the two singleton memberships.
	assert.InDelta(t, 0.35, union.Freq(0), 1e-9)
	assert.InDelta(t, 0.40, union.Freq(1), 1e-9)
}

func TestNetwork_Collapse_Errors(t *testing.T) {
	net := phylo.NewNetwork(scenarioGroups(t), 2)
	c1 := findCluster(t, net, "11", 0)
	d := findCluster(t, net, "10", 0)

	_, err := net.Collapse(c1, d)
	assert.ErrorIs(t, err, phylo.ErrDifferentGroups)

	_, err = net.Collapse(net.Root(), c1)
	assert.ErrorIs(t, err, phylo.ErrNodeNotCluster)
}

func TestNetwork_RemoveNode(t *testing.T) {
	net := phylo.NewNetwork(scenarioGroups(t), 2)
	d := findCluster(t, net, "10", 0)

	out, err := net.RemoveNode(d)
	require.NoError(t, err)
	assert.Equal(t, 4, out.NumNodes())

	_, err = out.RemoveNode(out.Root())
	assert.ErrorIs(t, err, phylo.ErrNodeNotCluster)
}

func TestNetwork_DumpViews(t *testing.T) {
	net := phylo.NewNetwork(scenarioGroups(t), 2)

	assert.Contains(t, net.String(), "PHYLOGENETIC CONSTRAINT NETWORK")
	assert.Contains(t, net.NodeSummary(), "11\t1")
	assert.Contains(t, net.MemberSummary(), "snv0")
}
