package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/dataloom-cli/internal/config"
	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	delimiter string
	sheetName string

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dataloom",
	Short: "DataLoom CLI: merge train/test passenger tables and explore them",
	Long: `DataLoom loads a training and a held-out passenger table, merges them with
provenance tags, and reports schema, missingness, descriptive statistics,
outcome rates and histograms. Merged data and summaries can be exported as
CSV, JSON and XLSX.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dataloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "", "input delimiter: ',' | ';' | 'tab' (default by extension)")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet-name", "", "XLSX: sheet to read (default first sheet)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = cfgpkg.Default()
		return
	}
	cfg = c
}

func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}

func newLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level := zapcore.InfoLevel
	if lv := currentConfig().LogLevel; lv != "" {
		if err := level.Set(lv); err != nil {
			return nil, err
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

// loadDataset parses and merges the two input tables using the effective
// configuration and global input flags.
func loadDataset(ctx context.Context, trainPath, testPath string) (*dataset.Dataset, error) {
	opt := currentConfig().SessionOptions()
	d, err := parseDelimiter(delimiter)
	if err != nil {
		return nil, err
	}
	opt.Parse.Delimiter = d
	opt.Parse.Sheet = sheetName
	return session.New(opt, logger).Load(ctx, trainPath, testPath)
}
