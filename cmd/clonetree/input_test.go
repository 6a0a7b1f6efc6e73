package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `samples: 2
groups:
  - tag: "11"
    robust: true
    snvs:
      - id: 0
        chrom: "17"
        pos: 7579472
        desc: TP53_R273H
        vaf: [0.5, 0.5]
      - id: 1
        chrom: "9"
        pos: 21971120
        desc: CDKN2A
        vaf: [0.2, 0.3]
    clusters:
      - id: 0
        centroid: [0.5, 0.5]
        stddev: [0, 0]
        members: [0]
        robust: true
      - id: 1
        centroid: [0.2, 0.3]
        stddev: [0, 0]
        members: [1]
        robust: true
  - tag: "10"
    robust: true
    snvs:
      - id: 2
        chrom: "3"
        pos: 178936091
        desc: PIK3CA
        vaf: [0.3]
    clusters:
      - id: 0
        centroid: [0.3]
        stddev: [0]
        members: [0]
        robust: true
  - tag: "01"
    robust: true
    snvs:
      - id: 3
        chrom: "12"
        pos: 25398284
        desc: KRAS_G12D
        vaf: [0.4]
    clusters:
      - id: 0
        centroid: [0.4]
        stddev: [0]
        members: [0]
        robust: true
`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	return path
}

func TestLoadInput(t *testing.T) {
	groups, samples, err := loadInput(writeDoc(t, sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, 2, samples)
	require.Len(t, groups, 3)

	assert.Equal(t, "11", groups[0].Tag)
	assert.Len(t, groups[0].Clusters(), 2)
	assert.Equal(t, 0.3, groups[1].Clusters()[0].Centroid[0])
	assert.True(t, groups[2].Robust())
}

func TestLoadInput_Errors(t *testing.T) {
	_, _, err := loadInput(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = loadInput(writeDoc(t, "samples: 0\ngroups: []\n"))
	assert.ErrorIs(t, err, ErrBadInput)

	// Tag length must match the sample count.
	bad := `samples: 3
groups:
  - tag: "11"
    snvs:
      - {id: 0, vaf: [0.5, 0.5]}
    clusters:
      - {id: 0, centroid: [0.5, 0.5], stddev: [0, 0], members: [0], robust: true}
`
	_, _, err = loadInput(writeDoc(t, bad))
	assert.ErrorIs(t, err, ErrBadInput)

	// A vaf row must cover every occupied sample.
	bad = `samples: 2
groups:
  - tag: "11"
    snvs:
      - {id: 0, vaf: [0.5]}
    clusters:
      - {id: 0, centroid: [0.5, 0.5], stddev: [0, 0], members: [0], robust: true}
`
	_, _, err = loadInput(writeDoc(t, bad))
	assert.ErrorIs(t, err, ErrBadInput)
}

func TestRootCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input", writeDoc(t, sampleDoc), "--show", "1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "candidate tree(s)")
	assert.Contains(t, out.String(), "best tree sample lineages:")
	assert.Contains(t, out.String(), "germline")
}
