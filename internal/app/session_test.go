package app

import (
	"testing"

	"github.com/chengju279/viability-calculator/internal/domain"
)

// dragTag runs one drag gesture over the input grid in the given mode.
func dragTag(s *Session, mode Mode, from, to domain.Coord) {
	s.SetMode(mode)
	s.PointerDown(GridInput, from, false)
	s.PointerMove(GridInput, to)
	s.PointerUp(GridInput, false)
	s.SetMode(ModeNone)
}

// seedReference fills the store with the blank-10 / negative-110 / test-60
// reference plate used across these tests.
func seedReference(s *Session) {
	s.Store().SetValue(domain.Coord{Row: 0, Col: 0}, "8")
	s.Store().SetValue(domain.Coord{Row: 0, Col: 1}, "12")
	s.Store().SetValue(domain.Coord{Row: 1, Col: 0}, "100")
	s.Store().SetValue(domain.Coord{Row: 1, Col: 1}, "120")
	s.Store().SetValue(domain.Coord{Row: 2, Col: 0}, "60")
	dragTag(s, ModeBlank, domain.Coord{Row: 0, Col: 0}, domain.Coord{Row: 0, Col: 1})
	dragTag(s, ModeNegative, domain.Coord{Row: 1, Col: 0}, domain.Coord{Row: 1, Col: 1})
	dragTag(s, ModeTest, domain.Coord{Row: 2, Col: 0}, domain.Coord{Row: 2, Col: 0})
}

func TestTaggingDragCommitsAndClearsRegion(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeNegative)
	s.PointerDown(GridInput, domain.Coord{Row: 1, Col: 1}, false)
	s.PointerMove(GridInput, domain.Coord{Row: 2, Col: 2})
	s.PointerUp(GridInput, false)

	if s.Selection(GridInput).Active() {
		t.Fatal("tagging release must clear the region")
	}
	for _, c := range domain.CellsInRectangle(domain.Coord{Row: 1, Col: 1}, domain.Coord{Row: 2, Col: 2}) {
		if cat, ok := s.Store().Get(c).Category(); !ok || cat != domain.CategoryNegative {
			t.Fatalf("cell %v not tagged negative", c)
		}
	}
}

func TestTaggingClickTogglesOnce(t *testing.T) {
	s := NewSession()
	c := domain.Coord{Row: 3, Col: 3}
	s.SetMode(ModeBlank)
	s.PointerDown(GridInput, c, false)
	s.PointerUp(GridInput, false)
	if _, ok := s.Store().Get(c).Category(); !ok {
		t.Fatal("click must tag the cell")
	}
	s.PointerDown(GridInput, c, false)
	s.PointerUp(GridInput, false)
	if _, ok := s.Store().Get(c).Category(); ok {
		t.Fatal("second click must untag the cell")
	}
}

func TestNormalReleaseKeepsRegionAndActivatesAnchor(t *testing.T) {
	s := NewSession()
	s.PointerDown(GridInput, domain.Coord{Row: 2, Col: 1}, false)
	s.PointerMove(GridInput, domain.Coord{Row: 4, Col: 3})
	s.PointerUp(GridInput, false)

	if !s.Selection(GridInput).Active() {
		t.Fatal("normal release must retain the region")
	}
	active, ok := s.ActiveCell()
	if !ok || active != (domain.Coord{Row: 2, Col: 1}) {
		t.Fatalf("anchor must enter text-edit state, got %v ok=%t", active, ok)
	}
}

func TestShiftExtensionKeepsAnchorAndSkipsEdit(t *testing.T) {
	s := NewSession()
	s.PointerDown(GridInput, domain.Coord{Row: 0, Col: 0}, false)
	s.PointerUp(GridInput, false)

	s.PointerDown(GridInput, domain.Coord{Row: 2, Col: 3}, true)
	s.PointerUp(GridInput, true)

	selection := s.Selection(GridInput)
	if selection.Anchor() != (domain.Coord{Row: 0, Col: 0}) {
		t.Fatalf("shift extension moved the anchor: %v", selection.Anchor())
	}
	if len(selection.Cells()) != 12 {
		t.Fatalf("expected 3x4 region, got %d cells", len(selection.Cells()))
	}
}

func TestLeavingInputGridCancelsDrag(t *testing.T) {
	s := NewSession()
	s.PointerDown(GridInput, domain.Coord{Row: 0, Col: 0}, false)
	s.PointerMove(GridInput, domain.Coord{Row: 1, Col: 1})
	s.PointerLeave(GridInput, false)
	if s.Selection(GridInput).Active() {
		t.Fatal("leaving the grid must cancel the drag and clear the region")
	}
}

func TestLeavingResultGridKeepsRegionWithModifier(t *testing.T) {
	s := NewSession()
	s.PointerDown(GridResult, domain.Coord{Row: 0, Col: 0}, false)
	s.PointerLeave(GridResult, true)
	if !s.Selection(GridResult).Active() {
		t.Fatal("modifier must keep the result region across a boundary exit")
	}
	s.PointerLeave(GridResult, false)
	if s.Selection(GridResult).Active() {
		t.Fatal("without the modifier the boundary exit cancels")
	}
}

func TestResultPointerDownClearsInputSelection(t *testing.T) {
	s := NewSession()
	s.PointerDown(GridInput, domain.Coord{Row: 1, Col: 1}, false)
	s.PointerUp(GridInput, false)

	s.PointerDown(GridResult, domain.Coord{Row: 0, Col: 0}, false)
	if s.Selection(GridInput).Active() {
		t.Fatal("result pointer-down must clear the input selection")
	}
	if _, ok := s.ActiveCell(); ok {
		t.Fatal("result pointer-down must end text editing")
	}
}

func TestMergeGestureProtocol(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeMerge)

	// Unmodified drag cuts label 1 over a 2x2 block.
	s.PointerDown(GridResult, domain.Coord{Row: 1, Col: 1}, false)
	s.PointerMove(GridResult, domain.Coord{Row: 2, Col: 2})
	s.PointerUp(GridResult, false)

	labels := s.MergeLabels()
	if len(labels) != 1 || len(labels[0].Cells) != 4 || !labels[0].Rigid {
		t.Fatalf("unexpected first label %#v", labels)
	}
	if labels[0].FirstCell != (domain.Coord{Row: 1, Col: 1}).Key() {
		t.Fatalf("first cell must be the drag anchor, got %q", labels[0].FirstCell)
	}
	if s.Selection(GridResult).Active() {
		t.Fatal("unmodified merge commit must clear the region")
	}

	// Modifier-held gesture on a distant cell merges into label 1.
	s.PointerDown(GridResult, domain.Coord{Row: 6, Col: 9}, false)
	s.PointerUp(GridResult, true)
	labels = s.MergeLabels()
	if len(labels) != 1 {
		t.Fatalf("modifier gesture must extend, not cut: %d labels", len(labels))
	}
	if labels[0].Rigid {
		t.Fatal("disjoint union must turn the label non-rigid")
	}
	if !s.Selection(GridResult).Active() {
		t.Fatal("modifier commit must retain the region")
	}

	// Fresh unmodified gesture cuts label 2.
	s.PointerDown(GridResult, domain.Coord{Row: 0, Col: 5}, false)
	s.PointerUp(GridResult, false)
	labels = s.MergeLabels()
	if len(labels) != 2 || labels[1].Number != 2 {
		t.Fatalf("expected label 2, got %#v", labels)
	}
}

func TestMergeModifierHeldThroughDrag(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeMerge)

	// A click with the modifier already held cuts label 1.
	s.PointerDown(GridResult, domain.Coord{Row: 0, Col: 0}, true)
	s.PointerUp(GridResult, true)
	if labels := s.MergeLabels(); len(labels) != 1 || len(labels[0].Cells) != 1 {
		t.Fatalf("unexpected first label %#v", labels)
	}

	// A second drag with the modifier held through down, move, and up
	// unions two distant cells into label 1.
	s.PointerDown(GridResult, domain.Coord{Row: 5, Col: 7}, true)
	s.PointerMove(GridResult, domain.Coord{Row: 5, Col: 8})
	s.PointerUp(GridResult, true)

	labels := s.MergeLabels()
	if len(labels) != 1 {
		t.Fatalf("modifier-held drag must extend, not cut: %d labels", len(labels))
	}
	if got := len(labels[0].Cells); got != 3 {
		t.Fatalf("modifier-held drag must union into label 1: got %d cells, want 3", got)
	}
	if labels[0].Rigid {
		t.Fatal("disjoint union must turn the label non-rigid")
	}
	if !s.Selection(GridResult).Active() {
		t.Fatal("modifier commit must retain the region")
	}
}

func TestLeavingMergeModeDiscardsLabels(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeMerge)
	s.PointerDown(GridResult, domain.Coord{Row: 0, Col: 0}, false)
	s.PointerUp(GridResult, false)
	s.SetMode(ModeNone)
	if s.MergeLabels() != nil {
		t.Fatal("merge labels must die with merge mode")
	}

	s.SetMode(ModeMerge)
	s.PointerDown(GridResult, domain.Coord{Row: 0, Col: 0}, false)
	s.PointerUp(GridResult, false)
	if labels := s.MergeLabels(); len(labels) != 1 || labels[0].Number != 1 {
		t.Fatalf("re-entering merge mode must restart numbering at 1, got %#v", labels)
	}
}

func TestInputGridInertDuringMerge(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeMerge)
	s.PointerDown(GridInput, domain.Coord{Row: 0, Col: 0}, false)
	if s.Selection(GridInput).Active() {
		t.Fatal("input grid must not select while merging")
	}
}

func TestCopyResultGridEmitsNormalizedWithEmptyFields(t *testing.T) {
	s := NewSession()
	seedReference(s)

	// 1x3 range where only the middle cell (the test well) normalizes.
	s.PointerDown(GridResult, domain.Coord{Row: 2, Col: 0}, false)
	s.PointerMove(GridResult, domain.Coord{Row: 2, Col: 2})
	s.PointerUp(GridResult, false)

	got, ok := s.CopyText()
	if !ok {
		t.Fatal("result selection must copy")
	}
	if got != "50.00\t\t" {
		t.Fatalf("CopyText() = %q, want \"50.00\\t\\t\"", got)
	}
}

func TestCopyResultTakesPriorityOverInput(t *testing.T) {
	s := NewSession()
	seedReference(s)
	s.Store().SetValue(domain.Coord{Row: 5, Col: 5}, "raw")

	s.PointerDown(GridInput, domain.Coord{Row: 5, Col: 5}, false)
	s.PointerUp(GridInput, false)
	s.PointerDown(GridResult, domain.Coord{Row: 1, Col: 0}, false)
	s.PointerUp(GridResult, false)

	got, ok := s.CopyText()
	if !ok || got != "90.00" {
		t.Fatalf("result selection must win: %q ok=%t", got, ok)
	}
}

func TestCopyInputGridEmitsRawValues(t *testing.T) {
	s := NewSession()
	s.Store().SetValue(domain.Coord{Row: 0, Col: 0}, "1")
	s.Store().SetValue(domain.Coord{Row: 0, Col: 1}, "2")

	s.PointerDown(GridInput, domain.Coord{Row: 0, Col: 0}, false)
	s.PointerMove(GridInput, domain.Coord{Row: 0, Col: 1})
	s.PointerUp(GridInput, false)

	got, ok := s.CopyText()
	if !ok || got != "1\t2" {
		t.Fatalf("CopyText() = %q ok=%t, want \"1\\t2\"", got, ok)
	}
}

func TestCopyUnavailableInTaggingMode(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeBlank)
	if _, ok := s.CopyText(); ok {
		t.Fatal("no copy source must exist in a tagging mode")
	}
}

func TestPasteWritesClippedRectangle(t *testing.T) {
	s := NewSession()
	s.PointerDown(GridInput, domain.Coord{Row: 0, Col: 0}, false)
	s.PointerUp(GridInput, false)

	if !s.Paste("1\t2\n3\t4") {
		t.Fatal("paste must apply with an active cell")
	}
	want := map[domain.Coord]string{
		{Row: 0, Col: 0}: "1",
		{Row: 0, Col: 1}: "2",
		{Row: 1, Col: 0}: "3",
		{Row: 1, Col: 1}: "4",
	}
	for c, v := range want {
		if got := s.Store().Get(c).Value; got != v {
			t.Fatalf("cell %v = %q, want %q", c, got, v)
		}
	}
}

func TestPasteClipsAtGridBounds(t *testing.T) {
	s := NewSession()
	s.PointerDown(GridInput, domain.Coord{Row: 7, Col: 11}, false)
	s.PointerUp(GridInput, false)

	if !s.Paste("a\tb\nc\td") {
		t.Fatal("paste must apply")
	}
	if got := s.Store().Get(domain.Coord{Row: 7, Col: 11}).Value; got != "a" {
		t.Fatalf("anchor cell = %q, want \"a\"", got)
	}
	if len(s.Store()) != 1 {
		t.Fatalf("out-of-bounds cells must not be written, store has %d entries", len(s.Store()))
	}
}

func TestPasteRequiresActiveCellAndNormalMode(t *testing.T) {
	s := NewSession()
	if s.Paste("1") {
		t.Fatal("paste without an active cell must be ignored")
	}
	s.PointerDown(GridInput, domain.Coord{Row: 0, Col: 0}, false)
	s.PointerUp(GridInput, false)
	s.SetMode(ModeTest)
	if s.Paste("1") {
		t.Fatal("paste in a tagging mode must be ignored")
	}
}

func TestPastePreservesCategoryFlags(t *testing.T) {
	s := NewSession()
	c := domain.Coord{Row: 0, Col: 0}
	dragTag(s, ModeNegative, c, c)

	s.PointerDown(GridInput, c, false)
	s.PointerUp(GridInput, false)
	if !s.Paste("77") {
		t.Fatal("paste must apply")
	}
	cell := s.Store().Get(c)
	if cell.Value != "77" || !cell.Negative {
		t.Fatalf("paste must keep category flags: %#v", cell)
	}
}

func TestDeleteSelectionBlanksValuesOnly(t *testing.T) {
	s := NewSession()
	c := domain.Coord{Row: 2, Col: 2}
	s.Store().SetValue(c, "9")
	dragTag(s, ModeTest, c, c)

	s.PointerDown(GridInput, c, false)
	s.PointerUp(GridInput, false)
	s.DeleteSelection()

	cell := s.Store().Get(c)
	if cell.Value != "" || !cell.Test {
		t.Fatalf("delete must blank the value and keep flags: %#v", cell)
	}
}

func TestVisualStates(t *testing.T) {
	s := NewSession()
	seedReference(s)

	if got := s.VisualState(GridInput, domain.Coord{Row: 0, Col: 0}); got != StateColoredBlank {
		t.Fatalf("blank well state = %v", got)
	}
	if got := s.VisualState(GridInput, domain.Coord{Row: 1, Col: 0}); got != StateColoredNegative {
		t.Fatalf("negative well state = %v", got)
	}
	if got := s.VisualState(GridInput, domain.Coord{Row: 2, Col: 0}); got != StateColoredTest {
		t.Fatalf("test well state = %v", got)
	}
	if got := s.VisualState(GridInput, domain.Coord{Row: 7, Col: 7}); got != StatePlain {
		t.Fatalf("plain well state = %v", got)
	}

	s.SetMode(ModeTest)
	s.PointerDown(GridInput, domain.Coord{Row: 6, Col: 6}, false)
	if got := s.VisualState(GridInput, domain.Coord{Row: 6, Col: 6}); got != StateSelectedTest {
		t.Fatalf("selected-in-test state = %v", got)
	}
	s.SetMode(ModeNone)

	s.PointerDown(GridInput, domain.Coord{Row: 4, Col: 4}, false)
	s.PointerMove(GridInput, domain.Coord{Row: 5, Col: 5})
	s.PointerUp(GridInput, false)
	if got := s.VisualState(GridInput, domain.Coord{Row: 4, Col: 4}); got != StateActiveEdit {
		t.Fatalf("pressed cell must render as active edit, got %v", got)
	}
	if got := s.VisualState(GridInput, domain.Coord{Row: 5, Col: 5}); got != StateHover {
		t.Fatalf("retained normal-mode selection renders as hover, got %v", got)
	}
	if got := s.VisualState(GridInput, domain.Coord{Row: 7, Col: 11}); got != StatePlain {
		t.Fatalf("cell outside selection = %v", got)
	}
}

func TestSetModeTogglesBackToNormal(t *testing.T) {
	s := NewSession()
	s.SetMode(ModeBlank)
	s.SetMode(ModeBlank)
	if s.Mode() != ModeNone {
		t.Fatalf("re-selecting the active mode must return to normal, got %v", s.Mode())
	}
}

func TestReplaceStoreResetsInteractionState(t *testing.T) {
	s := NewSession()
	seedReference(s)
	s.SetMode(ModeMerge)
	s.PointerDown(GridResult, domain.Coord{Row: 0, Col: 0}, false)

	loaded := domain.NewStore()
	loaded.SetValue(domain.Coord{Row: 4, Col: 4}, "7")
	s.ReplaceStore(loaded)

	if s.Mode() != ModeNone {
		t.Fatalf("expected normal mode after store swap, got %v", s.Mode())
	}
	if s.Selection(GridResult).Active() {
		t.Fatal("expected result selection dropped after store swap")
	}
	if got := s.Store().Get(domain.Coord{Row: 4, Col: 4}).Value; got != "7" {
		t.Fatalf("expected loaded value, got %q", got)
	}
	if _, ok := s.ActiveCell(); ok {
		t.Fatal("expected no active cell after store swap")
	}
}

func TestAveragesReferencePlate(t *testing.T) {
	s := NewSession()
	seedReference(s)
	avg := s.Averages()
	if avg.Blank != 10 || avg.Negative != 110 || avg.Test != 60 {
		t.Fatalf("unexpected averages %+v", avg)
	}
	if got, ok := s.NormalizedValue(domain.Coord{Row: 2, Col: 0}); !ok || got != "50.00" {
		t.Fatalf("normalized test well = %q ok=%t", got, ok)
	}
}
