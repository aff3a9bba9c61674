package app

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/chengju279/viability-calculator/internal/domain"
)

// Report is the derived, render-ready view of one plate: category averages,
// every tagged well with its normalized viability, and any merge groups.
type Report struct {
	RunID       string
	GeneratedAt time.Time

	BlankAverage    float64
	NegativeAverage float64
	TestAverage     float64

	Cells  []ReportCell
	Groups []ReportGroup
}

// ReportCell is one tagged well in the report.
type ReportCell struct {
	Ref        string
	Category   string
	Raw        string
	Normalized string
}

// ReportGroup is one merge label flattened for reporting.
type ReportGroup struct {
	Number int
	Anchor string
	Refs   []string
	Rigid  bool
}

// BuildReport derives a report from the well store and the merge labels of
// the current session, stamped with a fresh run ID.
func BuildReport(store domain.Store, labels []domain.MergeLabel, now time.Time) Report {
	avg := domain.Averages(store)
	report := Report{
		RunID:           uuid.NewString(),
		GeneratedAt:     now.UTC(),
		BlankAverage:    avg.Blank,
		NegativeAverage: avg.Negative,
		TestAverage:     avg.Test,
	}

	for row := 0; row < domain.GridRows; row++ {
		for col := 0; col < domain.GridCols; col++ {
			c := domain.Coord{Row: row, Col: col}
			cell := store.Get(c)
			category, ok := cell.Category()
			if !ok {
				continue
			}
			normalized, _ := domain.NormalizedValue(store, c, avg)
			report.Cells = append(report.Cells, ReportCell{
				Ref:        c.Ref(),
				Category:   category.String(),
				Raw:        cell.Value,
				Normalized: normalized,
			})
		}
	}

	for _, label := range labels {
		group := ReportGroup{
			Number: label.Number,
			Rigid:  label.Rigid,
		}
		if anchor, err := domain.ParseKey(label.FirstCell); err == nil {
			group.Anchor = anchor.Ref()
		}
		for key := range label.Cells {
			coord, err := domain.ParseKey(key)
			if err != nil {
				continue
			}
			group.Refs = append(group.Refs, coord.Ref())
		}
		sort.Strings(group.Refs)
		report.Groups = append(report.Groups, group)
	}

	return report
}

// TestWells returns only the test-category cells of the report, preserving
// plate order. Chart rendering works off this subset.
func (r Report) TestWells() []ReportCell {
	var wells []ReportCell
	for _, cell := range r.Cells {
		if cell.Category == domain.CategoryTest.String() {
			wells = append(wells, cell)
		}
	}
	return wells
}
