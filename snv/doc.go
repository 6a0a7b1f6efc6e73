// Package snv models the input universe of the lineage pipeline: single
// nucleotide variant (SNV) records, sub-population Clusters, and mutation
// Groups.
//
// A Group is a partition of the mutation universe: it holds every SNV observed
// in exactly the same subset of samples, encoded as a tag bitstring ("110"
// means present in samples 0 and 1, absent in sample 2). Each Group carries
// one or more Clusters: sub-populations of its SNVs with statistically
// similar frequency profiles, described by a per-sample centroid, a
// per-sample standard deviation, and a membership set.
//
// Clusters and Groups are produced by an external clustering collaborator and
// consumed here as given values. They are never mutated while referenced by a
// live constraint network: all editing operations (Without, WithMerged) derive
// a new Group, and network adjustments rebuild the entire graph from the
// edited Group set.
//
// Errors:
//
//	ErrBadTag             - tag is empty, or contains characters other than '0'/'1',
//	                        or marks no sample at all.
//	ErrClusterNotFound    - the referenced cluster does not belong to the group.
//	ErrOverlappingMembers - merge attempted on clusters with shared members.
package snv
