package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chengju279/viability-calculator/internal/domain"
	"github.com/chengju279/viability-calculator/internal/tsv"
)

// snapshotMagic and snapshotCategoryHeader frame the snapshot text format:
// the raw 8x12 value grid as TSV, then one "key<TAB>category" line per
// tagged well. Selections and merge labels are deliberately never saved.
const (
	snapshotMagic          = "# plate snapshot v1"
	snapshotCategoryHeader = "# categories"
)

// ErrBadSnapshot reports a snapshot file the decoder cannot understand.
var ErrBadSnapshot = errors.New("unrecognized snapshot format")

// EncodeSnapshot renders the well store as snapshot text.
func EncodeSnapshot(store domain.Store) string {
	rows := make([][]string, domain.GridRows)
	for row := 0; row < domain.GridRows; row++ {
		line := make([]string, domain.GridCols)
		for col := 0; col < domain.GridCols; col++ {
			line[col] = store.Get(domain.Coord{Row: row, Col: col}).Value
		}
		rows[row] = line
	}

	var b strings.Builder
	b.WriteString(snapshotMagic)
	b.WriteString("\n")
	b.WriteString(tsv.Marshal(rows))
	b.WriteString("\n")

	var tagged []string
	for row := 0; row < domain.GridRows; row++ {
		for col := 0; col < domain.GridCols; col++ {
			c := domain.Coord{Row: row, Col: col}
			if category, ok := store.Get(c).Category(); ok {
				tagged = append(tagged, c.Key()+"\t"+category.String())
			}
		}
	}
	if len(tagged) > 0 {
		b.WriteString(snapshotCategoryHeader)
		b.WriteString("\n")
		b.WriteString(strings.Join(tagged, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// DecodeSnapshot parses snapshot text back into a well store. Rows and
// columns beyond the plate bounds are clipped, matching the paste contract.
func DecodeSnapshot(text string) (domain.Store, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != snapshotMagic {
		return nil, fmt.Errorf("%w: missing header", ErrBadSnapshot)
	}
	lines = lines[1:]

	store := domain.NewStore()
	row := 0
	inCategories := false
	for _, line := range lines {
		if strings.TrimSpace(line) == snapshotCategoryHeader {
			inCategories = true
			continue
		}
		if !inCategories {
			if row >= domain.GridRows {
				continue
			}
			for col, value := range strings.Split(line, "\t") {
				if col >= domain.GridCols || value == "" {
					continue
				}
				store.SetValue(domain.Coord{Row: row, Col: col}, value)
			}
			row++
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		key, name, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%w: category line %q", ErrBadSnapshot, line)
		}
		coord, err := domain.ParseKey(key)
		if errors.Is(err, domain.ErrOutOfBounds) {
			// Off-plate tags are clipped like off-plate values.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("decode category key: %w", err)
		}
		category, ok := domain.ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("%w: category %q", ErrBadSnapshot, name)
		}
		store.ToggleCategory([]domain.Coord{coord}, category)
	}
	return store, nil
}
