package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Plate dimensions for the fixed 96-well layout.
const (
	GridRows = 8
	GridCols = 12
)

// Coord addresses one well on the plate grid.
type Coord struct {
	Row int
	Col int
}

// Key returns the canonical "row-col" identity of the coordinate.
func (c Coord) Key() string {
	return strconv.Itoa(c.Row) + "-" + strconv.Itoa(c.Col)
}

// Ref returns the spreadsheet-style reference for the coordinate (e.g. "C5").
func (c Coord) Ref() string {
	return ColumnLabel(c.Col) + strconv.Itoa(c.Row+1)
}

// InBounds reports whether the coordinate lies on the plate.
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < GridRows && c.Col >= 0 && c.Col < GridCols
}

// ParseKey parses a canonical "row-col" key back into a coordinate. Keys
// addressing a well off the plate are rejected with ErrOutOfBounds.
func ParseKey(key string) (Coord, error) {
	row, col, ok := strings.Cut(key, "-")
	if !ok {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	r, err := strconv.Atoi(row)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	coord := Coord{Row: r, Col: c}
	if !coord.InBounds() {
		return Coord{}, fmt.Errorf("%w: %q", ErrOutOfBounds, key)
	}
	return coord, nil
}

// CellsInRectangle returns every coordinate inside the inclusive rectangle
// spanned by a and b, in row-major order. The corner order does not matter.
func CellsInRectangle(a, b Coord) []Coord {
	minRow, maxRow := minMax(a.Row, b.Row)
	minCol, maxCol := minMax(a.Col, b.Col)

	cells := make([]Coord, 0, (maxRow-minRow+1)*(maxCol-minCol+1))
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			cells = append(cells, Coord{Row: row, Col: col})
		}
	}
	return cells
}

// IsExactRectangle reports whether the keyed set exactly fills its bounding
// box, with no holes and no protrusions. The empty set is not a rectangle.
func IsExactRectangle(keys map[string]struct{}) bool {
	if len(keys) == 0 {
		return false
	}

	first := true
	var minRow, maxRow, minCol, maxCol int
	for key := range keys {
		c, err := ParseKey(key)
		if err != nil {
			return false
		}
		if first {
			minRow, maxRow = c.Row, c.Row
			minCol, maxCol = c.Col, c.Col
			first = false
			continue
		}
		minRow = min(minRow, c.Row)
		maxRow = max(maxRow, c.Row)
		minCol = min(minCol, c.Col)
		maxCol = max(maxCol, c.Col)
	}

	return len(keys) == (maxRow-minRow+1)*(maxCol-minCol+1)
}

// ColumnLabel converts a zero-based column index into bijective base-26
// spreadsheet letters: 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}
	var b []byte
	for index >= 0 {
		b = append([]byte{byte('A' + index%26)}, b...)
		index = index/26 - 1
	}
	return string(b)
}

// minMax returns the pair ordered ascending.
func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
