package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/clonetree/lineage"
	"github.com/katalvlaran/clonetree/spantree"
)

func newRootCmd() *cobra.Command {
	var (
		inputPath string
		show      int
		verbose   bool
		cfg       = lineage.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "clonetree",
		Short: "Reconstruct tumor lineage trees from clustered mutation groups",
		Long: "clonetree builds a phylogenetic constraint network from pre-clustered\n" +
			"mutation groups, enumerates the lineage trees compatible with the\n" +
			"per-sample mutation frequencies, and ranks them by deviation error.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				log, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer func() { _ = log.Sync() }()
				cfg.Logger = log
			}

			groups, samples, err := loadInput(inputPath)
			if err != nil {
				return err
			}

			eng, err := lineage.NewEngine(cfg)
			if err != nil {
				return err
			}
			res, err := eng.Reconstruct(groups, samples)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, res.Network.NodeSummary())
			fmt.Fprintf(out, "\n%d candidate tree(s), %d grow call(s), %d shrink(s)\n\n",
				len(res.Trees), res.GrowCalls, res.Shrinks)

			n := show
			if n <= 0 || n > len(res.Trees) {
				n = len(res.Trees)
			}
			for i := 0; i < n; i++ {
				fmt.Fprintf(out, "#%d %s", i+1, res.Trees[i])
			}
			if len(res.Trees) > 0 {
				printSampleLineages(out, res, samples)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the YAML input document")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().IntVar(&show, "show", 3, "number of ranked trees to print (0 = all)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages")

	cmd.Flags().Float64Var(&cfg.MarginBaseline, "margin", cfg.MarginBaseline,
		"VAF error-margin floor")
	cmd.Flags().BoolVar(&cfg.AllEdges, "all-edges", cfg.AllEdges,
		"attempt edges between every pair of levels")
	cmd.Flags().IntVar(&cfg.MaxGrowCalls, "max-grow-calls", cfg.MaxGrowCalls,
		"cap on enumeration recursion")
	cmd.Flags().IntVar(&cfg.MaxTrees, "max-trees", cfg.MaxTrees,
		"cap on collected trees")
	cmd.Flags().IntVar(&cfg.TopK, "top-k", cfg.TopK,
		"number of best trees refined by the consistency check (0 = all)")
	cmd.Flags().Float64Var(&cfg.SolverTol, "solver-tol", cfg.SolverTol,
		"consistency solver convergence threshold")
	cmd.Flags().IntVar(&cfg.SolverMaxIter, "solver-max-iter", cfg.SolverMaxIter,
		"consistency solver iteration cap")

	return cmd
}

// printSampleLineages reports, for the best tree, which sub-populations
// directly dominate each sample.
func printSampleLineages(out io.Writer, res *lineage.Result, samples int) {
	fmt.Fprintln(out, "best tree sample lineages:")
	for s := 0; s < samples; s++ {
		parents := spantree.SampleParents(res.Network, res.Trees[0], s)
		labels := make([]string, len(parents))
		for i, p := range parents {
			labels[i] = p.Label()
		}
		fmt.Fprintf(out, "  sample %d ← %s\n", s, strings.Join(labels, ", "))
	}
}
