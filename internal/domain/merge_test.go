package domain

import "testing"

func TestMergeCommitCreatesRigidLabel(t *testing.T) {
	m := NewMergeSession()
	anchor := Coord{Row: 1, Col: 1}
	m.Commit(CellsInRectangle(anchor, Coord{Row: 2, Col: 2}), anchor, false)

	labels := m.Labels()
	if len(labels) != 1 {
		t.Fatalf("expected one label, got %d", len(labels))
	}
	label := labels[0]
	if label.Number != 1 {
		t.Fatalf("first label must be numbered 1, got %d", label.Number)
	}
	if len(label.Cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(label.Cells))
	}
	if label.FirstCell != anchor.Key() {
		t.Fatalf("unexpected first cell %q", label.FirstCell)
	}
	if !label.Rigid {
		t.Fatal("2x2 block must be rigid")
	}
}

func TestMergeUnmodifiedGesturesCutSeparateLabels(t *testing.T) {
	m := NewMergeSession()
	m.Commit([]Coord{{Row: 0, Col: 0}}, Coord{Row: 0, Col: 0}, false)
	m.Commit([]Coord{{Row: 5, Col: 5}}, Coord{Row: 5, Col: 5}, false)

	labels := m.Labels()
	if len(labels) != 2 {
		t.Fatalf("expected two labels, got %d", len(labels))
	}
	if labels[0].Number != 1 || labels[1].Number != 2 {
		t.Fatalf("sequential numbering broken: %d, %d", labels[0].Number, labels[1].Number)
	}
}

func TestMergeExtendUnionsIntoLastLabel(t *testing.T) {
	m := NewMergeSession()
	m.Commit([]Coord{{Row: 0, Col: 0}}, Coord{Row: 0, Col: 0}, false)
	m.Commit([]Coord{{Row: 3, Col: 4}}, Coord{Row: 3, Col: 4}, true)

	labels := m.Labels()
	if len(labels) != 1 {
		t.Fatalf("extend must not create a second label, got %d", len(labels))
	}
	label := labels[0]
	if len(label.Cells) != 2 {
		t.Fatalf("expected union of 2 cells, got %d", len(label.Cells))
	}
	if label.Rigid {
		t.Fatal("disjoint union must not be rigid")
	}
	if label.FirstCell != (Coord{Row: 0, Col: 0}).Key() {
		t.Fatalf("extend must keep the original anchor, got %q", label.FirstCell)
	}
}

func TestMergeExtendWithoutLabelsCreatesFirst(t *testing.T) {
	m := NewMergeSession()
	m.Commit([]Coord{{Row: 2, Col: 2}}, Coord{Row: 2, Col: 2}, true)
	labels := m.Labels()
	if len(labels) != 1 || labels[0].Number != 1 {
		t.Fatalf("modifier-held first gesture must create label 1, got %#v", labels)
	}
}

func TestMergeExtendRecomputesRigidOnAdjacentUnion(t *testing.T) {
	m := NewMergeSession()
	m.Commit([]Coord{{Row: 0, Col: 0}}, Coord{Row: 0, Col: 0}, false)
	m.Commit([]Coord{{Row: 0, Col: 1}}, Coord{Row: 0, Col: 1}, true)
	if !m.Labels()[0].Rigid {
		t.Fatal("1x2 union must be rigid again")
	}
}

func TestMergeEmptyCommitIgnored(t *testing.T) {
	m := NewMergeSession()
	m.Commit(nil, Coord{}, false)
	if len(m.Labels()) != 0 {
		t.Fatal("empty gesture must not create a label")
	}
}

func TestMergeLabelAt(t *testing.T) {
	m := NewMergeSession()
	anchor := Coord{Row: 6, Col: 3}
	m.Commit(CellsInRectangle(anchor, Coord{Row: 7, Col: 4}), anchor, false)

	if _, ok := m.LabelAt(Coord{Row: 7, Col: 4}); !ok {
		t.Fatal("member cell not found in label")
	}
	if _, ok := m.LabelAt(Coord{Row: 0, Col: 0}); ok {
		t.Fatal("stranger cell mapped to a label")
	}
}

func TestMergeNilSessionIsInert(t *testing.T) {
	var m *MergeSession
	if m.Labels() != nil {
		t.Fatal("nil session must expose no labels")
	}
	if _, ok := m.LabelAt(Coord{}); ok {
		t.Fatal("nil session must not match cells")
	}
}
