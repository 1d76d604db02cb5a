package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/analysis"
	"github.com/KaramelBytes/dataloom-cli/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	descOutputPath  string
	descPolicy      string
	descBins        int
	descGroupBy     []string
	descPreviewRows int
	descSampleRows  int
)

var describeCmd = &cobra.Command{
	Use:   "describe <train> <test>",
	Short: "Merge train/test tables and print an exploratory summary",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		rep, err := analysis.Analyze(ds, opt)
		if err != nil {
			return err
		}
		rep.Name = filepath.Base(args[0]) + " + " + filepath.Base(args[1])
		for _, w := range rep.Warnings {
			logger.Debug("analysis note", zap.String("note", w))
		}
		md := rep.Markdown()

		if descOutputPath != "" {
			if err := utils.SafeWriteFile(descOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", descOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	},
}

// analysisOptions layers describe/histogram flags over the configuration.
func analysisOptions(cmd *cobra.Command) (analysis.Options, error) {
	opt := currentConfig().AnalysisOptions()
	f := cmd.Flags()
	if f.Changed("policy") {
		switch p := analysis.HistogramPolicy(strings.ToLower(descPolicy)); p {
		case analysis.FixedBins, analysis.AdaptiveBins:
			opt.Histogram.Policy = p
		default:
			return opt, fmt.Errorf("unsupported --policy: %s (use fixed|adaptive)", descPolicy)
		}
	}
	if f.Changed("bins") {
		if descBins <= 0 {
			return opt, fmt.Errorf("--bins must be positive")
		}
		opt.Histogram.Bins = descBins
	}
	if f.Changed("group-by") {
		opt.Outcome.GroupBy = descGroupBy
	}
	if f.Changed("preview-rows") && descPreviewRows >= 0 {
		opt.PreviewRows = descPreviewRows
	}
	if f.Changed("sample-rows") && descSampleRows >= 0 {
		opt.SampleValues = descSampleRows
	}
	return opt, nil
}

func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&descPolicy, "policy", "", "histogram bin policy: fixed|adaptive (overrides config)")
	cmd.Flags().IntVar(&descBins, "bins", 0, "histogram bin count (overrides config)")
	cmd.Flags().StringSliceVar(&descGroupBy, "group-by", nil, "comma-separated columns to break the outcome down by")
	cmd.Flags().IntVar(&descPreviewRows, "preview-rows", 0, "number of head rows to show")
	cmd.Flags().IntVar(&descSampleRows, "sample-rows", 0, "distinct sample values per column in the schema")
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&descOutputPath, "output", "o", "", "optional path to write analysis (Markdown)")
	addAnalysisFlags(describeCmd)
}
