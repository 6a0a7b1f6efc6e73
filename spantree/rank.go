package spantree

import "sort"

// Rank sorts trees in place, ascending by error score (best first). The
// initial scores come from edge-direction selection; after a consistency
// refinement pass the caller re-invokes Rank over the refined prefix.
// Re-sorting is an explicit follow-up, never a side effect of validation.
func Rank(trees []*Tree) {
	sort.SliceStable(trees, func(i, j int) bool {
		return trees[i].Err < trees[j].Err
	})
}
