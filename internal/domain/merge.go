package domain

// MergeLabel is one named cluster of result-grid cells grouped for
// reporting. Rigid is true iff the cells exactly fill their bounding box.
// Invariant: FirstCell is a member of Cells.
type MergeLabel struct {
	Number    int
	Cells     map[string]struct{}
	FirstCell string
	Rigid     bool
}

// Contains reports whether the coordinate belongs to the label.
func (l MergeLabel) Contains(c Coord) bool {
	_, ok := l.Cells[c.Key()]
	return ok
}

// MergeSession holds the append-only label sequence for one merge-mode
// activation. Numbers are assigned sequentially from 1 and never reused;
// the whole session is discarded when merge mode is left.
type MergeSession struct {
	labels []MergeLabel
	next   int
}

// NewMergeSession starts a fresh session with the counter at 1.
func NewMergeSession() *MergeSession {
	return &MergeSession{next: 1}
}

// Commit records one merge gesture. With extend set, the selected cells are
// unioned into the most recent label (creating the first one if none exist);
// otherwise a brand-new label is appended. The anchor becomes FirstCell of
// any newly created label, and Rigid is recomputed whenever cells change.
func (m *MergeSession) Commit(cells []Coord, anchor Coord, extend bool) {
	if len(cells) == 0 {
		return
	}

	if extend && len(m.labels) > 0 {
		last := &m.labels[len(m.labels)-1]
		for _, c := range cells {
			last.Cells[c.Key()] = struct{}{}
		}
		last.Rigid = IsExactRectangle(last.Cells)
		return
	}

	label := MergeLabel{
		Number:    m.next,
		Cells:     make(map[string]struct{}, len(cells)),
		FirstCell: anchor.Key(),
	}
	for _, c := range cells {
		label.Cells[c.Key()] = struct{}{}
	}
	if _, ok := label.Cells[label.FirstCell]; !ok {
		// The anchor always participates in the gesture rectangle; guard
		// anyway so the FirstCell membership invariant cannot break.
		label.Cells[label.FirstCell] = struct{}{}
	}
	label.Rigid = IsExactRectangle(label.Cells)
	m.labels = append(m.labels, label)
	m.next++
}

// Labels returns the committed labels in creation order.
func (m *MergeSession) Labels() []MergeLabel {
	if m == nil {
		return nil
	}
	return m.labels
}

// LabelAt returns the first label containing the coordinate.
func (m *MergeSession) LabelAt(c Coord) (MergeLabel, bool) {
	if m == nil {
		return MergeLabel{}, false
	}
	for _, label := range m.labels {
		if label.Contains(c) {
			return label, true
		}
	}
	return MergeLabel{}, false
}
