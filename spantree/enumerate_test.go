package spantree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clonetree/phylo"
	"github.com/katalvlaran/clonetree/snv"
	"github.com/katalvlaran/clonetree/spantree"
)

// oneSampleNet builds a single-sample network from one "1" group holding one
// singleton cluster per given frequency (all stddevs zero, so every margin is
// the 0.1 baseline).
func oneSampleNet(t *testing.T, freqs ...float64) *phylo.Network {
	t.Helper()
	snvs := make([]snv.SNV, len(freqs))
	table := make([][]float64, len(freqs))
	for i, f := range freqs {
		snvs[i] = snv.SNV{ID: i}
		table[i] = []float64{f}
	}
	g, err := snv.NewGroup("1", snvs, table, true)
	require.NoError(t, err)
	for i, f := range freqs {
		g.AddCluster(snv.NewCluster(i, []float64{f}, []float64{0}, []int{i}, true))
	}

	return phylo.NewNetwork([]*snv.Group{g}, 1)
}

// findNode locates the cluster node with the given single-sample frequency.
func findNode(t *testing.T, net *phylo.Network, freq float64) *phylo.Node {
	t.Helper()
	for _, n := range net.Nodes() {
		if n.Kind() == phylo.KindCluster && n.Freq(0) == freq {
			return n
		}
	}
	t.Fatalf("no cluster node with frequency %v", freq)

	return nil
}

// snapshotEdges captures the current edge list of a network.
func snapshotEdges(net *phylo.Network) [][2]*phylo.Node {
	var out [][2]*phylo.Node
	for _, n := range net.Nodes() {
		for _, c := range net.Children(n) {
			out = append(out, [2]*phylo.Node{n, c})
		}
	}

	return out
}

func TestEnumerate_NilNetwork(t *testing.T) {
	res, err := spantree.Enumerate(nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, spantree.ErrNilNetwork)
}

func TestEnumerate_SingleTree(t *testing.T) {
	// root → a is the only edge: exactly one spanning tree.
	net := oneSampleNet(t, 0.6)

	res, err := spantree.Enumerate(net)
	require.NoError(t, err)
	require.Len(t, res.Trees, 1)
	assert.False(t, res.Capped)
	assert.Equal(t, net.NumNodes(), res.Trees[0].Size())
	assert.True(t, res.Trees[0].ContainsEdge(net.Root(), findNode(t, net, 0.6)))
}

func TestEnumerate_Diamond(t *testing.T) {
	// Edges: root→a, root→b, a→b. Two spanning trees: {root→a, root→b} and
	// {root→a, a→b}.
	net := oneSampleNet(t, 0.6, 0.3)
	a := findNode(t, net, 0.6)
	b := findNode(t, net, 0.3)
	require.True(t, net.HasEdge(a, b))

	res, err := spantree.Enumerate(net)
	require.NoError(t, err)
	require.Len(t, res.Trees, 2)
	assert.False(t, res.Capped)

	for _, tr := range res.Trees {
		assert.Equal(t, 3, tr.Size(), "every emitted tree is complete")
	}
	assert.False(t, res.Trees[0].SameEdges(res.Trees[1]), "no duplicate trees")
}

func TestEnumerate_ConstraintPruning(t *testing.T) {
	// Clusters 0.5, 0.45, 0.45 under the root; edges a→b, a→c, b→c within
	// the group. Of the six spanning arborescences, two break frequency
	// domination (both 0.45s under the root: 1.4 > 1.1; both under a:
	// 0.9 > 0.6) and must be pruned.
	net := oneSampleNet(t, 0.5, 0.45, 0.45)

	res, err := spantree.Enumerate(net)
	require.NoError(t, err)
	assert.False(t, res.Capped)
	require.Len(t, res.Trees, 4)

	for i, tr := range res.Trees {
		assert.Equal(t, net.NumNodes(), tr.Size())
		for j := i + 1; j < len(res.Trees); j++ {
			assert.False(t, tr.SameEdges(res.Trees[j]),
				"trees %d and %d share an edge set", i, j)
		}
	}
}

func TestEnumerate_MaxTreesCap(t *testing.T) {
	net := oneSampleNet(t, 0.6, 0.3)

	res, err := spantree.Enumerate(net, spantree.WithMaxTrees(1))
	require.NoError(t, err)
	assert.Len(t, res.Trees, 1, "cap of 1 returns exactly one tree, not an error")
	assert.True(t, res.Capped)
	assert.Equal(t, net.NumNodes(), res.Trees[0].Size())
}

func TestEnumerate_MaxGrowCallsCap(t *testing.T) {
	net := oneSampleNet(t, 0.5, 0.45, 0.45)

	res, err := spantree.Enumerate(net, spantree.WithMaxGrowCalls(1))
	require.NoError(t, err)
	assert.True(t, res.Capped)
	assert.Empty(t, res.Trees, "one grow call cannot complete a tree")
}

func TestEnumerate_RestoresNetwork(t *testing.T) {
	net := oneSampleNet(t, 0.5, 0.45, 0.45)
	before := snapshotEdges(net)
	edgeCount := net.NumEdges()

	_, err := spantree.Enumerate(net)
	require.NoError(t, err)

	assert.Equal(t, edgeCount, net.NumEdges(), "edge count restored")
	for _, e := range before {
		assert.True(t, net.HasEdge(e[0], e[1]), "edge %v→%v restored", e[0], e[1])
	}

	// A capped run restores the graph as well.
	_, err = spantree.Enumerate(net, spantree.WithMaxGrowCalls(2))
	require.NoError(t, err)
	assert.Equal(t, edgeCount, net.NumEdges(), "edge count restored after cap")
}

func TestEnumerate_TreeScores(t *testing.T) {
	net := oneSampleNet(t, 0.6, 0.3)

	res, err := spantree.Enumerate(net)
	require.NoError(t, err)
	for _, tr := range res.Trees {
		// Every admitted edge here points from the strictly larger frequency,
		// so all selection errors, and hence all tree scores, are zero.
		assert.Zero(t, tr.Err)
	}
}

func TestRank(t *testing.T) {
	t1, t2, t3 := spantree.NewTree(), spantree.NewTree(), spantree.NewTree()
	t1.Err, t2.Err, t3.Err = 0.3, 0.1, 0.2
	trees := []*spantree.Tree{t1, t2, t3}

	spantree.Rank(trees)
	assert.Equal(t, []*spantree.Tree{t2, t3, t1}, trees)
}

func TestSampleParents(t *testing.T) {
	net := oneSampleNet(t, 0.6, 0.3)
	a := findNode(t, net, 0.6)
	b := findNode(t, net, 0.3)

	res, err := spantree.Enumerate(net)
	require.NoError(t, err)

	for _, tr := range res.Trees {
		parents := spantree.SampleParents(net, tr, 0)
		if tr.ContainsEdge(a, b) {
			// Chain root→a→b: the leaf hangs off the deepest presence.
			assert.Equal(t, []*phylo.Node{b}, parents)
		} else {
			// Star root→{a,b}: both dominate the sample directly.
			assert.ElementsMatch(t, []*phylo.Node{a, b}, parents)
		}
	}
}
