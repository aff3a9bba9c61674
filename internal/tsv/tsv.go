// Package tsv implements the tab/newline clipboard data contract: cells
// separated by \t within a row, rows separated by \n. There is no quoting
// or escaping, so a value containing a tab or newline will not round-trip.
// That is a documented limitation of the format, not a defect.
package tsv

import "strings"

// Marshal renders rows of cells as TSV text. Empty cells are preserved as
// empty fields.
func Marshal(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}

// Parse splits TSV text into rows of cells. Windows line endings are
// tolerated; a trailing newline does not produce a phantom row. Empty input
// yields no rows.
func Parse(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, "\t")
	}
	return rows
}
