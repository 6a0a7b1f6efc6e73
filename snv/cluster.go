package snv

import "gonum.org/v1/gonum/stat"

// Recompute rederives the cluster's centroid and standard deviation from the
// given per-mutation frequency table (one row per SNV, one column per group
// sample). It is called after membership edits, e.g. when two clusters are
// merged during a network adjustment.
//
// A single-member column has no sample variance; its deviation is reported
// as 0. An empty membership yields zero vectors, never NaN means.
func (c *Cluster) Recompute(freq [][]float64, cols int) {
	centroid := make([]float64, cols)
	stdDev := make([]float64, cols)

	if len(c.Members) == 0 {
		c.Centroid = centroid
		c.StdDev = stdDev

		return
	}

	// Column-wise mean and sample standard deviation over the members.
	vals := make([]float64, 0, len(c.Members))
	for j := 0; j < cols; j++ {
		vals = vals[:0]
		for _, m := range c.Members {
			vals = append(vals, freq[m][j])
		}
		centroid[j] = stat.Mean(vals, nil)
		if len(vals) > 1 {
			stdDev[j] = stat.StdDev(vals, nil)
		}
	}

	c.Centroid = centroid
	c.StdDev = stdDev
}
