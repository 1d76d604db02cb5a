package cmd

import (
	"fmt"

	"github.com/KaramelBytes/dataloom-cli/internal/analysis"
	"github.com/KaramelBytes/dataloom-cli/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	expDir      string
	expWorkbook bool
	expCSVName  string
	expJSONName string
	expXLSXName string
)

var exportCmd = &cobra.Command{
	Use:   "export <train> <test>",
	Short: "Write the merged table and its summary (CSV, JSON, optional XLSX)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		ds, err := loadDataset(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		rep, err := analysis.Analyze(ds, c.AnalysisOptions())
		if err != nil {
			return err
		}
		opt := c.ExportOptions(expDir, expWorkbook)
		f := cmd.Flags()
		if f.Changed("csv-name") {
			opt.CSVName = expCSVName
		}
		if f.Changed("json-name") {
			opt.JSONName = expJSONName
		}
		if f.Changed("xlsx-name") {
			opt.WorkbookName = expXLSXName
		}
		res, err := export.Export(ds, rep, opt)
		if err != nil {
			return err
		}
		logger.Info("export complete", zap.String("run_id", res.RunID), zap.Strings("files", res.Files))
		for _, p := range res.Files {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&expDir, "dir", "d", ".", "output directory")
	exportCmd.Flags().BoolVar(&expWorkbook, "xlsx", false, "also write an XLSX workbook")
	exportCmd.Flags().StringVar(&expCSVName, "csv-name", "", "merged CSV file name (overrides config)")
	exportCmd.Flags().StringVar(&expJSONName, "json-name", "", "summary JSON file name (overrides config)")
	exportCmd.Flags().StringVar(&expXLSXName, "xlsx-name", "", "workbook file name; implies --xlsx")
}
