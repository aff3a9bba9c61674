package app

import (
	"testing"
	"time"

	"github.com/chengju279/viability-calculator/internal/domain"
)

func TestBuildReportReferencePlate(t *testing.T) {
	s := NewSession()
	seedReference(s)
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	report := BuildReport(s.Store(), nil, now)
	if report.RunID == "" {
		t.Fatal("report must carry a run id")
	}
	if !report.GeneratedAt.Equal(now) {
		t.Fatalf("unexpected timestamp %v", report.GeneratedAt)
	}
	if report.BlankAverage != 10 || report.NegativeAverage != 110 || report.TestAverage != 60 {
		t.Fatalf("unexpected averages %+v", report)
	}
	if len(report.Cells) != 5 {
		t.Fatalf("expected 5 tagged wells, got %d", len(report.Cells))
	}

	var test ReportCell
	for _, cell := range report.Cells {
		if cell.Ref == "A3" {
			test = cell
		}
	}
	if test.Category != "test" || test.Raw != "60" || test.Normalized != "50.00" {
		t.Fatalf("unexpected test well %+v", test)
	}
}

func TestBuildReportBlankCellsCarryNoNormalizedValue(t *testing.T) {
	s := NewSession()
	seedReference(s)

	report := BuildReport(s.Store(), nil, time.Now())
	for _, cell := range report.Cells {
		if cell.Category == "blank" && cell.Normalized != "" {
			t.Fatalf("blank well %s must not normalize, got %q", cell.Ref, cell.Normalized)
		}
	}
}

func TestBuildReportGroups(t *testing.T) {
	s := NewSession()
	seedReference(s)
	s.SetMode(ModeMerge)
	s.PointerDown(GridResult, domain.Coord{Row: 0, Col: 0}, false)
	s.PointerMove(GridResult, domain.Coord{Row: 1, Col: 1})
	s.PointerUp(GridResult, false)

	report := BuildReport(s.Store(), s.MergeLabels(), time.Now())
	if len(report.Groups) != 1 {
		t.Fatalf("expected one group, got %d", len(report.Groups))
	}
	group := report.Groups[0]
	if group.Number != 1 || !group.Rigid || group.Anchor != "A1" {
		t.Fatalf("unexpected group %+v", group)
	}
	if len(group.Refs) != 4 {
		t.Fatalf("expected 4 refs, got %v", group.Refs)
	}
}

func TestTestWellsSubset(t *testing.T) {
	s := NewSession()
	seedReference(s)
	report := BuildReport(s.Store(), nil, time.Now())
	wells := report.TestWells()
	if len(wells) != 1 || wells[0].Ref != "A3" {
		t.Fatalf("unexpected test wells %+v", wells)
	}
}
