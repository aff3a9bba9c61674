// Package app owns the interactive session state for one plate. All UI
// mutations funnel through Session methods so gesture flows can be replayed
// and tested without a rendering surface.
package app

import (
	"github.com/chengju279/viability-calculator/internal/domain"
	"github.com/chengju279/viability-calculator/internal/tsv"
)

// Grid identifies one of the two concurrent grids.
type Grid int

// The editable input grid and the read-only result grid.
const (
	GridInput Grid = iota
	GridResult
)

// Mode is the single interaction-mode variant. The tagging and merge modes
// are mutually exclusive by construction; there are no independent booleans
// to fall out of sync.
type Mode int

// Interaction modes.
const (
	ModeNone Mode = iota
	ModeBlank
	ModeNegative
	ModeTest
	ModeMerge
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBlank:
		return "blank"
	case ModeNegative:
		return "negative"
	case ModeTest:
		return "test"
	case ModeMerge:
		return "merge"
	default:
		return "normal"
	}
}

// category maps a tagging mode to its well category.
func (m Mode) category() (domain.Category, bool) {
	switch m {
	case ModeBlank:
		return domain.CategoryBlank, true
	case ModeNegative:
		return domain.CategoryNegative, true
	case ModeTest:
		return domain.CategoryTest, true
	default:
		return 0, false
	}
}

// VisualState is the enumerated per-cell render state the presentation
// layer maps to styling. The core never prescribes colors.
type VisualState int

// Per-cell visual states.
const (
	StatePlain VisualState = iota
	StateHover
	StateActiveEdit
	StateSelectedBlank
	StateSelectedNegative
	StateSelectedTest
	StateColoredBlank
	StateColoredNegative
	StateColoredTest
)

// Session is the whole mutable state of one plate-entry session: the well
// store, one selection region per grid, the interaction mode, the active
// edit cell, and the merge labels of the current merge activation.
type Session struct {
	store  domain.Store
	input  domain.Selection
	result domain.Selection
	mode   Mode
	active *domain.Coord
	merge  *domain.MergeSession
}

// NewSession constructs an empty session.
func NewSession() *Session {
	return &Session{store: domain.NewStore()}
}

// Store exposes the underlying well store.
func (s *Session) Store() domain.Store {
	return s.store
}

// ReplaceStore swaps in a new well store and resets all interaction state.
// Snapshot loading goes through here.
func (s *Session) ReplaceStore(store domain.Store) {
	if store == nil {
		store = domain.NewStore()
	}
	s.store = store
	s.mode = ModeNone
	s.active = nil
	s.merge = nil
	s.input.Cancel()
	s.result.Cancel()
}

// Mode returns the current interaction mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Selection returns the region of the requested grid.
func (s *Session) Selection(grid Grid) domain.Selection {
	if grid == GridResult {
		return s.result
	}
	return s.input
}

// ActiveCell returns the single input-grid cell in text-edit state.
func (s *Session) ActiveCell() (domain.Coord, bool) {
	if s.active == nil {
		return domain.Coord{}, false
	}
	return *s.active, true
}

// MergeLabels returns the labels of the current merge session in creation
// order, or nil outside merge mode.
func (s *Session) MergeLabels() []domain.MergeLabel {
	return s.merge.Labels()
}

// MergeLabelAt returns the merge label covering a result-grid coordinate.
func (s *Session) MergeLabelAt(c domain.Coord) (domain.MergeLabel, bool) {
	return s.merge.LabelAt(c)
}

// SetMode switches the interaction mode. Selecting the active mode again
// returns to normal. Entering merge mode starts a fresh label sequence;
// leaving it discards all labels. Any mode change ends text editing and
// drops both selections.
func (s *Session) SetMode(mode Mode) {
	if mode == s.mode {
		mode = ModeNone
	}
	if s.mode == ModeMerge {
		s.merge = nil
	}
	if mode == ModeMerge {
		s.merge = domain.NewMergeSession()
	}
	s.mode = mode
	s.active = nil
	s.input.Cancel()
	s.result.Cancel()
}

// PointerDown begins a drag gesture on a grid cell (primary button only;
// the caller filters buttons). With shift held and a prior region present,
// only the focus corner moves so a range can be extended without a drag.
// Merge mode ignores shift here and always starts a fresh drag.
func (s *Session) PointerDown(grid Grid, c domain.Coord, shift bool) {
	if !c.InBounds() {
		return
	}
	switch grid {
	case GridInput:
		// The input grid is inert while the result grid owns merge gestures.
		if s.mode == ModeMerge {
			return
		}
		s.result.Cancel()
		s.active = nil
		if shift && s.input.Active() {
			s.input.ExtendFromAnchor(c)
			return
		}
		s.input.Begin(c)
	case GridResult:
		if s.mode == ModeMerge {
			// The modifier is read at commit time; every merge gesture
			// starts a fresh drag even over a retained region.
			s.result.Begin(c)
			return
		}
		// The two selections are mutually exclusive outside merge mode.
		s.input.Cancel()
		s.active = nil
		if shift && s.result.Active() && !s.result.Dragging() {
			s.result.ExtendFromAnchor(c)
			return
		}
		s.result.Begin(c)
	}
}

// PointerMove extends the active drag as the pointer enters a new cell.
// Only the focus corner of the dragged region ever moves.
func (s *Session) PointerMove(grid Grid, c domain.Coord) {
	if !c.InBounds() {
		return
	}
	switch grid {
	case GridInput:
		s.input.Extend(c)
	case GridResult:
		s.result.Extend(c)
	}
}

// PointerLeave cancels a drag that crossed the grid boundary. The result
// grid keeps its region when the keep-selection modifier is held, so a
// merge extension can continue.
func (s *Session) PointerLeave(grid Grid, shift bool) {
	switch grid {
	case GridInput:
		if s.input.Dragging() {
			s.input.Cancel()
		}
	case GridResult:
		if s.result.Dragging() && !shift {
			s.result.Cancel()
		}
	}
}

// PointerUp ends a drag gesture and commits its action:
//   - input grid in a tagging mode: toggles the category over the region,
//     then clears it;
//   - input grid in normal mode: retains the region for copy/delete and
//     puts the pressed cell into text-edit state (shift extension excepted);
//   - result grid in merge mode: commits a merge label (modifier extends
//     the most recent label and keeps the region, otherwise a fresh label
//     is cut and the region cleared);
//   - result grid otherwise: retains the region for copy export.
func (s *Session) PointerUp(grid Grid, shift bool) {
	switch grid {
	case GridInput:
		if !s.input.Dragging() {
			return
		}
		if category, ok := s.mode.category(); ok {
			s.store.ToggleCategory(s.input.Cells(), category)
			s.input.Cancel()
			return
		}
		s.input.Release()
		// The pressed cell enters text-edit state whether or not the
		// gesture grew into a drag; only a shift extension skips it.
		if !shift {
			anchor := s.input.Anchor()
			s.active = &anchor
		}
	case GridResult:
		if !s.result.Dragging() {
			return
		}
		if s.mode == ModeMerge {
			s.merge.Commit(s.result.Cells(), s.result.Anchor(), shift)
			if shift {
				s.result.Release()
			} else {
				s.result.Cancel()
			}
			return
		}
		s.result.Release()
	}
}

// EditActiveCell writes raw text into the single active edit cell.
func (s *Session) EditActiveCell(value string) {
	if s.active == nil {
		return
	}
	s.store.SetValue(*s.active, value)
}

// EndEdit leaves text-edit state.
func (s *Session) EndEdit() {
	s.active = nil
}

// MoveActive shifts the active edit cell by a row/column delta, clamped to
// the plate. Without an active cell it activates the origin.
func (s *Session) MoveActive(dRow, dCol int) {
	if s.mode != ModeNone {
		return
	}
	next := domain.Coord{}
	if s.active != nil {
		next = domain.Coord{Row: s.active.Row + dRow, Col: s.active.Col + dCol}
	}
	next.Row = clamp(next.Row, 0, domain.GridRows-1)
	next.Col = clamp(next.Col, 0, domain.GridCols-1)
	s.active = &next
	s.input.Cancel()
	s.result.Cancel()
}

// DeleteSelection blanks the values under the input-grid region. Category
// flags survive, matching the delete-key gesture contract.
func (s *Session) DeleteSelection() {
	if s.mode != ModeNone || !s.input.Active() {
		return
	}
	s.store.ClearValues(s.input.Cells())
}

// ClearColors untags every colored well on the plate.
func (s *Session) ClearColors() {
	s.store.ClearCategories()
}

// Averages recomputes the category means from the store.
func (s *Session) Averages() domain.CategoryAverages {
	return domain.Averages(s.store)
}

// NormalizedValue returns the displayable viability percentage for one well.
func (s *Session) NormalizedValue(c domain.Coord) (string, bool) {
	return domain.NormalizedValue(s.store, c, s.Averages())
}

// CopyText serializes the active selection as TSV. The result grid takes
// priority and emits normalized values (empty fields where none applies);
// the input grid emits raw values and only outside tagging modes.
func (s *Session) CopyText() (string, bool) {
	if s.result.Active() {
		avg := s.Averages()
		return rectToTSV(s.result, func(c domain.Coord) string {
			value, _ := domain.NormalizedValue(s.store, c, avg)
			return value
		}), true
	}
	if s.input.Active() && s.mode == ModeNone {
		return rectToTSV(s.input, func(c domain.Coord) string {
			return s.store.Get(c).Value
		}), true
	}
	return "", false
}

// Paste writes a TSV block of raw values anchored at the active edit cell,
// clipped to the plate bounds. It only applies in normal mode with exactly
// one active cell, and never alters category flags.
func (s *Session) Paste(text string) bool {
	if s.active == nil || s.mode != ModeNone {
		return false
	}
	rows := tsv.Parse(text)
	if len(rows) == 0 {
		return false
	}
	anchor := *s.active
	for dr, row := range rows {
		for dc, value := range row {
			target := domain.Coord{Row: anchor.Row + dr, Col: anchor.Col + dc}
			if !target.InBounds() {
				continue
			}
			s.store.SetValue(target, value)
		}
	}
	return true
}

// VisualState resolves the enumerated render state of one cell for the
// requested grid under the current mode and selections.
func (s *Session) VisualState(grid Grid, c domain.Coord) VisualState {
	if grid == GridInput && s.active != nil && *s.active == c {
		return StateActiveEdit
	}

	if s.Selection(grid).Contains(c) {
		switch s.mode {
		case ModeBlank:
			return StateSelectedBlank
		case ModeNegative:
			return StateSelectedNegative
		case ModeTest:
			return StateSelectedTest
		default:
			return StateHover
		}
	}

	switch category, ok := s.store.Get(c).Category(); {
	case !ok:
		return StatePlain
	case category == domain.CategoryNegative:
		return StateColoredNegative
	case category == domain.CategoryTest:
		return StateColoredTest
	default:
		return StateColoredBlank
	}
}

// rectToTSV renders a selection rectangle through a per-cell value lookup.
func rectToTSV(selection domain.Selection, value func(domain.Coord) string) string {
	anchor, focus := selection.Anchor(), selection.Focus()
	minRow, maxRow := order(anchor.Row, focus.Row)
	minCol, maxCol := order(anchor.Col, focus.Col)

	rows := make([][]string, 0, maxRow-minRow+1)
	for row := minRow; row <= maxRow; row++ {
		line := make([]string, 0, maxCol-minCol+1)
		for col := minCol; col <= maxCol; col++ {
			line = append(line, value(domain.Coord{Row: row, Col: col}))
		}
		rows = append(rows, line)
	}
	return tsv.Marshal(rows)
}

// order returns the pair sorted ascending.
func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// clamp bounds v into [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
