package domain

// Selection tracks one rectangular drag region over a grid. The region is
// inclusive and order-independent on both axes: Anchor is the pointer-down
// cell, Focus the most recently entered cell.
type Selection struct {
	anchor   Coord
	focus    Coord
	active   bool
	dragging bool
	moved    bool
}

// Begin starts a drag at the pressed coordinate, collapsing any prior region.
func (s *Selection) Begin(c Coord) {
	s.anchor = c
	s.focus = c
	s.active = true
	s.dragging = true
	s.moved = false
}

// Extend moves the focus corner while a drag is in progress. The anchor
// never moves. Calls outside a drag are ignored.
func (s *Selection) Extend(c Coord) {
	if !s.dragging {
		return
	}
	if c != s.anchor {
		s.moved = true
	}
	s.focus = c
}

// ExtendFromAnchor moves only the focus corner of a retained region,
// keeping the prior anchor. This is the shift-click extension path; it does
// not require a drag. Without a prior region it behaves like Begin followed
// by Release.
func (s *Selection) ExtendFromAnchor(c Coord) {
	if !s.active {
		s.anchor = c
		s.active = true
	}
	s.focus = c
	s.dragging = false
	s.moved = true
}

// Release ends the drag, retaining the region.
func (s *Selection) Release() {
	s.dragging = false
}

// Cancel drops the drag and the region.
func (s *Selection) Cancel() {
	*s = Selection{}
}

// Active reports whether a region exists.
func (s Selection) Active() bool {
	return s.active
}

// Dragging reports whether a drag gesture is in progress.
func (s Selection) Dragging() bool {
	return s.dragging
}

// Moved reports whether the pointer left the anchor cell during the current
// gesture. A release without movement is a click, decided by movement delta
// rather than wall-clock delay.
func (s Selection) Moved() bool {
	return s.moved
}

// Anchor returns the pointer-down corner of the region.
func (s Selection) Anchor() Coord {
	return s.anchor
}

// Focus returns the moving corner of the region.
func (s Selection) Focus() Coord {
	return s.focus
}

// Cells returns every coordinate inside the region, or nil without one.
func (s Selection) Cells() []Coord {
	if !s.active {
		return nil
	}
	return CellsInRectangle(s.anchor, s.focus)
}

// Contains reports whether the coordinate lies inside the region.
func (s Selection) Contains(c Coord) bool {
	if !s.active {
		return false
	}
	minRow, maxRow := minMax(s.anchor.Row, s.focus.Row)
	minCol, maxCol := minMax(s.anchor.Col, s.focus.Col)
	return c.Row >= minRow && c.Row <= maxRow && c.Col >= minCol && c.Col <= maxCol
}
