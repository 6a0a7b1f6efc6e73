package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/clonetree/snv"
)

// ErrBadInput indicates a malformed or inconsistent input document.
var ErrBadInput = errors.New("clonetree: invalid input")

// inputDoc is the YAML input: a sample count plus pre-clustered mutation
// groups. Clustering itself happens upstream; this document carries its
// output.
type inputDoc struct {
	Samples int          `yaml:"samples"`
	Groups  []inputGroup `yaml:"groups"`
}

type inputGroup struct {
	Tag      string         `yaml:"tag"`
	Robust   bool           `yaml:"robust"`
	SNVs     []inputSNV     `yaml:"snvs"`
	Clusters []inputCluster `yaml:"clusters"`
}

type inputSNV struct {
	ID    int       `yaml:"id"`
	Chrom string    `yaml:"chrom"`
	Pos   int       `yaml:"pos"`
	Desc  string    `yaml:"desc"`
	VAF   []float64 `yaml:"vaf"`
}

type inputCluster struct {
	ID       int       `yaml:"id"`
	Centroid []float64 `yaml:"centroid"`
	StdDev   []float64 `yaml:"stddev"`
	Members  []int     `yaml:"members"`
	Robust   bool      `yaml:"robust"`
}

// loadInput parses the document at path into mutation groups, returning the
// groups and the global sample count.
func loadInput(path string) ([]*snv.Group, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("clonetree: reading %s: %w", path, err)
	}

	var doc inputDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	if doc.Samples <= 0 {
		return nil, 0, fmt.Errorf("%w: sample count %d", ErrBadInput, doc.Samples)
	}
	if len(doc.Groups) == 0 {
		return nil, 0, fmt.Errorf("%w: no groups", ErrBadInput)
	}

	groups := make([]*snv.Group, 0, len(doc.Groups))
	for _, ig := range doc.Groups {
		g, err := buildGroup(ig, doc.Samples)
		if err != nil {
			return nil, 0, err
		}
		groups = append(groups, g)
	}

	return groups, doc.Samples, nil
}

// buildGroup converts one YAML group into an snv.Group with its clusters
// attached. Each SNV's vaf row must have one value per occupied sample of
// the group's tag.
func buildGroup(ig inputGroup, samples int) (*snv.Group, error) {
	if len(ig.Tag) != samples {
		return nil, fmt.Errorf("%w: group %q: tag length %d, want %d",
			ErrBadInput, ig.Tag, len(ig.Tag), samples)
	}
	if len(ig.SNVs) == 0 || len(ig.Clusters) == 0 {
		return nil, fmt.Errorf("%w: group %q: empty snvs or clusters", ErrBadInput, ig.Tag)
	}

	occupied := 0
	for _, ch := range ig.Tag {
		if ch == '1' {
			occupied++
		}
	}

	snvs := make([]snv.SNV, len(ig.SNVs))
	freq := make([][]float64, len(ig.SNVs))
	for i, is := range ig.SNVs {
		if len(is.VAF) != occupied {
			return nil, fmt.Errorf("%w: group %q: snv %d has %d vaf values, want %d",
				ErrBadInput, ig.Tag, is.ID, len(is.VAF), occupied)
		}
		snvs[i] = snv.SNV{ID: is.ID, Chrom: is.Chrom, Pos: is.Pos, Desc: is.Desc}
		freq[i] = append([]float64(nil), is.VAF...)
	}

	g, err := snv.NewGroup(ig.Tag, snvs, freq, ig.Robust)
	if err != nil {
		return nil, fmt.Errorf("%w: group %q: %v", ErrBadInput, ig.Tag, err)
	}

	for _, ic := range ig.Clusters {
		if len(ic.Centroid) != occupied || len(ic.StdDev) != occupied {
			return nil, fmt.Errorf("%w: group %q: cluster %d centroid/stddev length, want %d",
				ErrBadInput, ig.Tag, ic.ID, occupied)
		}
		for _, m := range ic.Members {
			if m < 0 || m >= len(snvs) {
				return nil, fmt.Errorf("%w: group %q: cluster %d member %d out of range",
					ErrBadInput, ig.Tag, ic.ID, m)
			}
		}
		g.AddCluster(snv.NewCluster(ic.ID, ic.Centroid, ic.StdDev, ic.Members, ic.Robust))
	}

	return g, nil
}
