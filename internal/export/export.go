package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/dataloom-cli/internal/analysis"
	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/utils"
)

// Default artifact names.
const (
	DefaultCSVName      = "titanic_merged_data.csv"
	DefaultJSONName     = "titanic_summary.json"
	DefaultWorkbookName = "titanic_summary.xlsx"
)

// Options controls where and which artifacts are written. An empty
// WorkbookName skips the workbook.
type Options struct {
	Dir          string
	CSVName      string
	JSONName     string
	WorkbookName string
	Now          func() time.Time
}

// DefaultOptions writes the delimited text and the summary into the
// working directory.
func DefaultOptions() Options {
	return Options{CSVName: DefaultCSVName, JSONName: DefaultJSONName, Now: time.Now}
}

// Result lists the written files and the summary run id.
type Result struct {
	RunID string
	Files []string
}

// Export writes every configured artifact for ds. Nothing is written when
// the dataset is empty.
func Export(ds *dataset.Dataset, rep *analysis.Report, opt Options) (*Result, error) {
	if ds.Empty() || rep == nil {
		return nil, dataset.ErrEmptyDataset
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	res := &Result{}

	if opt.CSVName != "" {
		var buf bytes.Buffer
		if err := WriteDelimited(&buf, ds, ','); err != nil {
			return nil, err
		}
		p := filepath.Join(opt.Dir, opt.CSVName)
		if err := utils.SafeWriteFile(p, buf.Bytes()); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		res.Files = append(res.Files, p)
	}

	if opt.JSONName != "" {
		doc, err := BuildSummary(ds, rep, opt.Now())
		if err != nil {
			return nil, err
		}
		b, err := doc.JSON()
		if err != nil {
			return nil, err
		}
		p := filepath.Join(opt.Dir, opt.JSONName)
		if err := utils.SafeWriteFile(p, b); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		res.RunID = doc.RunID
		res.Files = append(res.Files, p)
	}

	if opt.WorkbookName != "" {
		var buf bytes.Buffer
		if err := WriteWorkbook(&buf, ds, rep); err != nil {
			return nil, err
		}
		p := filepath.Join(opt.Dir, opt.WorkbookName)
		if err := utils.SafeWriteFile(p, buf.Bytes()); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		res.Files = append(res.Files, p)
	}
	return res, nil
}
