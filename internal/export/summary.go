package export

import (
	"time"

	"github.com/KaramelBytes/dataloom-cli/internal/analysis"
	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/utils"
	"github.com/google/uuid"
)

// DatasetInfo is the shape block of the summary document.
type DatasetInfo struct {
	TotalRows    int `json:"totalRows"`
	TotalColumns int `json:"totalColumns"`
	TrainRows    int `json:"trainRows"`
	TestRows     int `json:"testRows"`
}

// GroupSurvival is one row of an outcome breakdown.
type GroupSurvival struct {
	Group       string  `json:"group"`
	Total       int     `json:"total"`
	Survived    int     `json:"survived"`
	NotSurvived int     `json:"notSurvived"`
	Rate        float64 `json:"survivalRate"`
}

// ColumnSurvival groups breakdowns by one column.
type ColumnSurvival struct {
	Column string          `json:"column"`
	Groups []GroupSurvival `json:"groups"`
}

// SurvivalBlock is present only when the outcome column exists.
type SurvivalBlock struct {
	Column        string           `json:"column"`
	Source        string           `json:"source"`
	Total         int              `json:"total"`
	Survived      int              `json:"survived"`
	NotSurvived   int              `json:"notSurvived"`
	SurvivalRate  float64          `json:"survivalRate"`
	NotSurvivedPc float64          `json:"notSurvivedRate"`
	ByColumn      []ColumnSurvival `json:"byColumn,omitempty"`
}

// NumericBlock is the per-column numeric entry.
type NumericBlock struct {
	Column       string  `json:"column"`
	Mean         float64 `json:"mean"`
	Count        int     `json:"count"`
	MissingCount int     `json:"missingCount"`
}

// SummaryDocument is the structured summary written as JSON.
type SummaryDocument struct {
	RunID          string         `json:"runId"`
	DatasetInfo    DatasetInfo    `json:"datasetInfo"`
	Columns        []string       `json:"columns"`
	Survival       *SurvivalBlock `json:"survivalStatistics,omitempty"`
	NumericColumns []NumericBlock `json:"numericColumns"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

// BuildSummary assembles the summary document from ds and its report.
// now is injected so callers control the timestamp.
func BuildSummary(ds *dataset.Dataset, rep *analysis.Report, now time.Time) (*SummaryDocument, error) {
	if ds.Empty() || rep == nil {
		return nil, dataset.ErrEmptyDataset
	}
	cols := rep.ColumnNames()
	doc := &SummaryDocument{
		RunID: uuid.NewString(),
		DatasetInfo: DatasetInfo{
			TotalRows:    ds.Len(),
			TotalColumns: len(cols),
			TrainRows:    len(ds.Train),
			TestRows:     len(ds.Test),
		},
		Columns:        cols,
		NumericColumns: make([]NumericBlock, 0, len(rep.Numeric)),
		GeneratedAt:    now.UTC(),
	}
	if o := rep.Outcome; o != nil {
		sb := &SurvivalBlock{
			Column:        o.Column,
			Source:        o.Source,
			Total:         o.Overall.Total,
			Survived:      o.Overall.Positive,
			NotSurvived:   o.Overall.Negative,
			SurvivalRate:  o.Overall.Rate,
			NotSurvivedPc: o.NegativeRate,
		}
		for _, g := range o.ByColumn {
			cs := ColumnSurvival{Column: g.Column}
			for _, b := range g.Groups {
				cs.Groups = append(cs.Groups, GroupSurvival{
					Group: b.GroupKey, Total: b.Total, Survived: b.Positive, NotSurvived: b.Negative, Rate: b.Rate,
				})
			}
			sb.ByColumn = append(sb.ByColumn, cs)
		}
		doc.Survival = sb
	}
	for _, s := range rep.Numeric {
		doc.NumericColumns = append(doc.NumericColumns, NumericBlock{
			Column:       s.Column,
			Mean:         analysis.Round(s.Mean, analysis.StatPlaces),
			Count:        s.Count,
			MissingCount: s.Missing,
		})
	}
	return doc, nil
}

// JSON renders the document as indented JSON.
func (d *SummaryDocument) JSON() ([]byte, error) {
	return utils.PrettyJSON(d)
}
