package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const trainCSV = `PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked
1,0,3,"Braund, Mr. Owen Harris",male,22,1,0,A/5 21171,7.25,,S
2,1,1,"Cumings, Mrs. John Bradley",female,38,1,0,PC 17599,71.2833,C85,C
3,1,3,"Heikkinen, Miss. Laina",female,26,0,0,STON/O2. 3101282,7.925,,S
4,1,1,"Futrelle, Mrs. Jacques Heath",female,35,1,0,113803,53.1,C123,S
5,0,3,"Allen, Mr. William Henry",male,35,0,0,373450,8.05,,S
`

const testCSV = `PassengerId,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked
892,3,"Kelly, Mr. James",male,34.5,0,0,330911,7.8292,,Q
893,3,"Wilkes, Mrs. James",female,47,1,0,363272,,,S
`

// runCmd is a helper to execute the root command with args and capture stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func execCmd(args ...string) (string, error) {
	// Reset sticky flags that may persist Changed state across invocations
	sets := []*pflag.FlagSet{rootCmd.PersistentFlags()}
	for _, c := range []*cobra.Command{describeCmd, histogramCmd, exportCmd} {
		sets = append(sets, c.Flags())
	}
	for _, fs := range sets {
		fs.VisitAll(func(fl *pflag.Flag) {
			if sv, ok := fl.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = fl.Value.Set(fl.DefValue)
			}
			fl.Changed = false
		})
	}
	cfg = nil
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func setup(t *testing.T) (train, test string) {
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
	train = filepath.Join(home, "train.csv")
	test = filepath.Join(home, "test.csv")
	if err := os.WriteFile(train, []byte(trainCSV), 0o644); err != nil {
		t.Fatalf("write train: %v", err)
	}
	if err := os.WriteFile(test, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("write test: %v", err)
	}
	return train, test
}

func TestCLI_Describe(t *testing.T) {
	train, test := setup(t)
	out := runCmd(t, "describe", train, test)
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"Shape: 7 rows x 13 columns",
		"- Fare: 1 (14.29%)",
		"- Cabin: 5 (71.43%)",
		"- positive: 3 (60.0%)",
		"[HISTOGRAMS]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("describe output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "- PassengerId: identifier (present 7)") {
		t.Fatalf("identifier column should be reported as such:\n%s", out)
	}
}

func TestCLI_DescribeWritesFile(t *testing.T) {
	train, test := setup(t)
	dst := filepath.Join(t.TempDir(), "reports", "eda.md")
	out := runCmd(t, "describe", train, test, "-o", dst)
	if !strings.Contains(out, "Wrote analysis") {
		t.Fatalf("unexpected output: %s", out)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "[NUMERIC SUMMARY]") {
		t.Fatalf("report missing numeric section")
	}
}

func TestCLI_DescribeMissingInput(t *testing.T) {
	train, _ := setup(t)
	_, err := execCmd("describe", train, filepath.Join(filepath.Dir(train), "nope.csv"))
	if err == nil || !strings.Contains(err.Error(), "test") {
		t.Fatalf("expected missing test input error, got %v", err)
	}
}

func TestCLI_HistogramDefaultsToConfiguredPolicy(t *testing.T) {
	train, test := setup(t)
	out := runCmd(t, "histogram", train, test, "-c", "Age")
	if !strings.Contains(out, "Age (fixed, 20 bins, n=7)") {
		t.Fatalf("unexpected histogram output:\n%s", out)
	}
	runCmd(t, "config", "set", "histogram_policy", "adaptive")
	out = runCmd(t, "histogram", train, test, "-c", "Age")
	if !strings.Contains(out, "Age (adaptive, 1 bins, n=7)") {
		t.Fatalf("config policy not applied:\n%s", out)
	}
}

func TestCLI_HistogramAdaptive(t *testing.T) {
	train, test := setup(t)
	out := runCmd(t, "histogram", train, test, "-c", "Age", "--policy", "adaptive")
	if !strings.Contains(out, "Age (adaptive, 1 bins, n=7)") {
		t.Fatalf("unexpected histogram output:\n%s", out)
	}
	if !strings.Contains(out, "- 22.0-47.0: 7") {
		t.Fatalf("expected single bin holding every value:\n%s", out)
	}
	if _, err := execCmd("histogram", train, test, "--policy", "sturges"); err == nil {
		t.Fatalf("expected invalid policy error")
	}
}

func TestCLI_Export(t *testing.T) {
	train, test := setup(t)
	dir := filepath.Join(t.TempDir(), "out")
	out := runCmd(t, "export", train, test, "--dir", dir, "--xlsx")
	if strings.Count(out, "✓ Wrote") != 3 {
		t.Fatalf("expected three artifacts:\n%s", out)
	}
	csv, err := os.ReadFile(filepath.Join(dir, "titanic_merged_data.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected header + 7 rows, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], ",source") || !strings.HasSuffix(lines[7], ",test") {
		t.Fatalf("unexpected csv layout: %q / %q", lines[0], lines[7])
	}
	b, err := os.ReadFile(filepath.Join(dir, "titanic_summary.json"))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var doc struct {
		DatasetInfo struct {
			TotalRows int `json:"totalRows"`
			TrainRows int `json:"trainRows"`
			TestRows  int `json:"testRows"`
		} `json:"datasetInfo"`
		Survival *struct {
			Survived int `json:"survived"`
		} `json:"survivalStatistics"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if doc.DatasetInfo.TotalRows != 7 || doc.DatasetInfo.TrainRows != 5 || doc.DatasetInfo.TestRows != 2 {
		t.Fatalf("unexpected dataset info: %+v", doc.DatasetInfo)
	}
	if doc.Survival == nil || doc.Survival.Survived != 3 {
		t.Fatalf("unexpected survival block: %+v", doc.Survival)
	}
	if _, err := os.Stat(filepath.Join(dir, "titanic_summary.xlsx")); err != nil {
		t.Fatalf("workbook missing: %v", err)
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	setup(t)
	runCmd(t, "config", "set", "histogram_bins", "8")
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "histogram_bins: 8") {
		t.Fatalf("config show missing updated value:\n%s", out)
	}
	if _, err := execCmd("config", "set", "histogram_policy", "sturges"); err == nil {
		t.Fatalf("expected validation error")
	}
}
