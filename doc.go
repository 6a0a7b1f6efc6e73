// Package clonetree reconstructs plausible clonal-evolution (lineage) trees
// of a tumor from multi-sample variant-allele-frequency data that has already
// been grouped into mutation sets and clustered into sub-populations.
//
// 🧬 What does clonetree do?
//
//	Given pre-clustered sub-populations it:
//		• builds a directed constraint graph of permissible ancestor/descendant
//		  ("happened-before") relationships between sub-populations
//		• exhaustively, but boundedly, enumerates every spanning tree of that
//		  graph consistent with per-sample frequency constraints
//		• ranks candidate trees by error and refines the top candidates with a
//		  convex-optimization feasibility check
//
// Everything is organized under focused subpackages:
//
//	snv/         — SNV records, clusters, and mutation groups (the input model)
//	phylo/       — the phylogenetic constraint network (DAG construction,
//	               adaptive error margins, network adjustments)
//	spantree/    — bounded Gabow–Myers spanning-tree enumeration and ranking
//	consistency/ — per-tree global frequency-consistency validation
//	qp/          — the dense convex quadratic-programming oracle
//	lineage/     — the end-to-end reconstruction engine
//	cmd/clonetree/ — command-line front end
//
// Clustering of raw VAF matrices, sequencing-data parsing, and tree rendering
// are external collaborators: clonetree consumes clusters and emits ranked
// trees.
//
//	go get github.com/katalvlaran/clonetree
package clonetree
