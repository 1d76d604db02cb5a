package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var histColumns []string

var histogramCmd = &cobra.Command{
	Use:   "histogram <train> <test>",
	Short: "Print histogram bins for numeric columns of the merged table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		cols := opt.Histogram.Columns
		if len(histColumns) > 0 {
			cols = histColumns
		}
		ds, err := loadDataset(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range cols {
			h := analysis.HistogramFor(ds, c, opt.Histogram)
			if len(h.Bins) == 0 {
				fmt.Fprintf(out, "⚠ %s: no present numeric values\n", c)
				continue
			}
			fmt.Fprintf(out, "%s (%s, %d bins, n=%d)\n", c, h.Policy, len(h.Bins), h.Values)
			if h.Degenerate {
				fmt.Fprintf(out, "  all values equal %g\n", h.Bins[0].Lower)
			}
			peak := maxCount(h.Bins)
			for _, b := range h.Bins {
				fmt.Fprintf(out, "- %s: %d %s\n", b.Label(), b.Count, strings.Repeat("#", b.Count*40/peak))
			}
		}
		return nil
	},
}

func maxCount(bins []analysis.Bin) int {
	m := 1
	for _, b := range bins {
		m = max(m, b.Count)
	}
	return m
}

func init() {
	rootCmd.AddCommand(histogramCmd)
	histogramCmd.Flags().StringSliceVarP(&histColumns, "column", "c", nil, "columns to bin (default from config histogram_columns)")
	addAnalysisFlags(histogramCmd)
}
