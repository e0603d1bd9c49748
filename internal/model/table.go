// Package model holds the shared domain types: the raw table
// abstraction, resolved column roles, operation classes and the
// computed financial figures.
package model

import "strings"

// Table is a decoded report: rows of cells with no schema attached.
// Rows may be ragged; all access goes through Cell which is safe for
// any index.
type Table struct {
	Rows [][]string
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the width of the widest row.
func (t *Table) ColumnCount() int {
	width := 0
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Cell returns the trimmed cell value at (row, col), or the empty
// string when the index falls outside the table or its ragged row.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}
