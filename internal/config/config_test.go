package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/dataloom-cli/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(home); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Age", "SibSp", "Parch", "Fare"}, c.NumericColumns)
	assert.Equal(t, "Survived", c.OutcomeColumn)
	assert.Equal(t, "train", c.OutcomeSource)
	assert.Equal(t, "fixed", c.HistogramPolicy)
	assert.Equal(t, 20, c.HistogramBins)
	assert.Equal(t, "titanic_merged_data.csv", c.ExportCSVName)
	assert.Equal(t, "titanic_summary.json", c.ExportJSONName)
	assert.Equal(t, analysis.DefaultOptions(), c.AnalysisOptions())
}

func TestEnvOverridesFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("histogram_bins: 12\nhistogram_policy: adaptive\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, c.HistogramBins)
	assert.Equal(t, "adaptive", c.HistogramPolicy)

	t.Setenv("DATALOOM_HISTOGRAM_BINS", "7")
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, c.HistogramBins)
}

func TestDotEnvFillsUnsetVariables(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte("DATALOOM_PREVIEW_ROWS=9\n"), 0o644))
	t.Setenv("DATALOOM_PREVIEW_ROWS", "")
	os.Unsetenv("DATALOOM_PREVIEW_ROWS")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, c.PreviewRows)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("histogram_policy: sturges\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HistogramPolicy")

	require.NoError(t, os.WriteFile(path, []byte("test_tag: train\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TestTag")
}

func TestSetAndSaveRoundTrip(t *testing.T) {
	home := isolate(t)
	c := Default()
	require.NoError(t, c.Set("histogram_bins", "15"))
	require.NoError(t, c.Set("outcome_group_by", "Sex, Embarked"))
	require.NoError(t, c.Set("export_xlsx_name", "book.xlsx"))
	assert.Error(t, c.Set("histogram_bins", "zero"))
	assert.Error(t, c.Set("histogram_bins", "0"))
	assert.Error(t, c.Set("no_such_key", "1"))
	assert.Equal(t, 15, c.HistogramBins)

	require.NoError(t, Save(c, ""))
	_, err := os.Stat(filepath.Join(home, ".dataloom", "config.yaml"))
	require.NoError(t, err)

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 15, loaded.HistogramBins)
	assert.Equal(t, []string{"Sex", "Embarked"}, loaded.OutcomeGroupBy)
	assert.Equal(t, "book.xlsx", loaded.ExportXLSXName)
}

func TestSessionOptionsKeepIdentifierRaw(t *testing.T) {
	c := Default()
	o := c.SessionOptions()
	assert.Equal(t, []string{"PassengerId"}, o.Parse.RawColumns)
	assert.True(t, o.Parse.InferTypes)
	assert.Equal(t, "source", o.Merge.SourceColumn)

	e := c.ExportOptions("out", false)
	assert.Equal(t, "out", e.Dir)
	assert.Empty(t, e.WorkbookName)
	assert.Equal(t, "titanic_summary.xlsx", c.ExportOptions("out", true).WorkbookName)
}
