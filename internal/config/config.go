package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/dataloom-cli/internal/analysis"
	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/export"
	"github.com/KaramelBytes/dataloom-cli/internal/parser"
	"github.com/KaramelBytes/dataloom-cli/internal/session"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. DATALOOM_HISTOGRAM_BINS.
const EnvPrefix = "DATALOOM"

// Global configuration structure.
type Global struct {
	// Declared schema
	NumericColumns     []string `mapstructure:"numeric_columns" yaml:"numeric_columns"`
	CategoricalColumns []string `mapstructure:"categorical_columns" yaml:"categorical_columns"`
	IDColumn           string   `mapstructure:"id_column" yaml:"id_column"`

	// Outcome
	OutcomeColumn   string   `mapstructure:"outcome_column" yaml:"outcome_column"`
	OutcomePositive float64  `mapstructure:"outcome_positive" yaml:"outcome_positive"`
	OutcomeNegative float64  `mapstructure:"outcome_negative" yaml:"outcome_negative" validate:"nefield=OutcomePositive"`
	OutcomeSource   string   `mapstructure:"outcome_source" yaml:"outcome_source"`
	OutcomeGroupBy  []string `mapstructure:"outcome_group_by" yaml:"outcome_group_by"`

	// Provenance
	SourceColumn string `mapstructure:"source_column" yaml:"source_column" validate:"required"`
	TrainTag     string `mapstructure:"train_tag" yaml:"train_tag" validate:"required"`
	TestTag      string `mapstructure:"test_tag" yaml:"test_tag" validate:"required,nefield=TrainTag"`

	// Histograms
	HistogramPolicy  string   `mapstructure:"histogram_policy" yaml:"histogram_policy" validate:"oneof=fixed adaptive"`
	HistogramBins    int      `mapstructure:"histogram_bins" yaml:"histogram_bins" validate:"min=1,max=1000"`
	HistogramColumns []string `mapstructure:"histogram_columns" yaml:"histogram_columns"`

	// Overview
	SampleRows  int `mapstructure:"sample_rows" yaml:"sample_rows" validate:"min=0"`
	PreviewRows int `mapstructure:"preview_rows" yaml:"preview_rows" validate:"min=0"`

	// Export artifact names
	ExportCSVName  string `mapstructure:"export_csv_name" yaml:"export_csv_name" validate:"required"`
	ExportJSONName string `mapstructure:"export_json_name" yaml:"export_json_name" validate:"required"`
	ExportXLSXName string `mapstructure:"export_xlsx_name" yaml:"export_xlsx_name"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Validate reports the first invalid fields as a single error.
func (c *Global) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func setDefaults(v *viper.Viper) {
	a := analysis.DefaultOptions()
	m := dataset.DefaultMergeOptions()
	v.SetDefault("numeric_columns", a.NumericColumns)
	v.SetDefault("categorical_columns", a.CategoricalColumns)
	v.SetDefault("id_column", a.IDColumn)
	v.SetDefault("outcome_column", a.Outcome.Column)
	v.SetDefault("outcome_positive", a.Outcome.Positive)
	v.SetDefault("outcome_negative", a.Outcome.Negative)
	v.SetDefault("outcome_source", a.Outcome.Source)
	v.SetDefault("outcome_group_by", a.Outcome.GroupBy)
	v.SetDefault("source_column", m.SourceColumn)
	v.SetDefault("train_tag", m.TrainTag)
	v.SetDefault("test_tag", m.TestTag)
	v.SetDefault("histogram_policy", string(a.Histogram.Policy))
	v.SetDefault("histogram_bins", a.Histogram.Bins)
	v.SetDefault("histogram_columns", a.Histogram.Columns)
	v.SetDefault("sample_rows", a.SampleValues)
	v.SetDefault("preview_rows", a.PreviewRows)
	v.SetDefault("export_csv_name", export.DefaultCSVName)
	v.SetDefault("export_json_name", export.DefaultJSONName)
	v.SetDefault("export_xlsx_name", export.DefaultWorkbookName)
	v.SetDefault("log_level", "info")
}

// Default returns the built-in configuration without reading files or env.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dataloom", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dataloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > .env > defaults. A missing config file is
// not an error; a malformed one is.
func Load(cfgFile string) (*Global, error) {
	// .env only fills variables that are not already set
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(cfgFile != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Set assigns a single key from its textual form, as used by "config set".
// List keys take comma-separated values.
func (c *Global) Set(key, val string) error {
	v := viper.New()
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(string(b))); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if !v.IsSet(key) {
		return fmt.Errorf("unknown key: %s", key)
	}
	switch v.Get(key).(type) {
	case []any:
		v.Set(key, splitList(val))
	default:
		v.Set(key, val)
	}
	var next Global
	if err := v.Unmarshal(&next); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AnalysisOptions converts the configuration into analysis options.
func (c *Global) AnalysisOptions() analysis.Options {
	return analysis.Options{
		NumericColumns:     c.NumericColumns,
		CategoricalColumns: c.CategoricalColumns,
		IDColumn:           c.IDColumn,
		Outcome: analysis.OutcomeOptions{
			Column:   c.OutcomeColumn,
			Positive: c.OutcomePositive,
			Negative: c.OutcomeNegative,
			Source:   c.OutcomeSource,
			GroupBy:  c.OutcomeGroupBy,
		},
		Histogram: analysis.HistogramOptions{
			Columns: c.HistogramColumns,
			Policy:  analysis.HistogramPolicy(c.HistogramPolicy),
			Bins:    c.HistogramBins,
		},
		PreviewRows:  c.PreviewRows,
		SampleValues: c.SampleRows,
	}
}

// SessionOptions converts the configuration into loader options. The
// identifier column is kept as raw text.
func (c *Global) SessionOptions() session.Options {
	p := parser.DefaultOptions()
	if c.IDColumn != "" {
		p.RawColumns = []string{c.IDColumn}
	}
	return session.Options{
		Parse: p,
		Merge: dataset.MergeOptions{SourceColumn: c.SourceColumn, TrainTag: c.TrainTag, TestTag: c.TestTag},
	}
}

// ExportOptions converts the configuration into export options rooted at dir.
func (c *Global) ExportOptions(dir string, workbook bool) export.Options {
	o := export.DefaultOptions()
	o.Dir = dir
	o.CSVName = c.ExportCSVName
	o.JSONName = c.ExportJSONName
	if workbook {
		o.WorkbookName = c.ExportXLSXName
	}
	return o
}
