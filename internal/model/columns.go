package model

import "fmt"

// ColumnRef is a zero-based column index, or NoColumn when the role is
// unassigned.
type ColumnRef = int

// NoColumn marks a column role with no assigned column.
const NoColumn ColumnRef = -1

// ColumnMap is the resolved assignment of semantic roles to table
// columns. SKU and Amount are mandatory for a complete map; Qty and Op
// are optional signals.
type ColumnMap struct {
	SKU    ColumnRef
	Amount ColumnRef
	Qty    ColumnRef
	Op     ColumnRef

	// HeaderRow is the row the labels were found on; data starts on
	// the next row.
	HeaderRow int
}

// NewColumnMap returns a map with every role unassigned.
func NewColumnMap() ColumnMap {
	return ColumnMap{
		SKU:    NoColumn,
		Amount: NoColumn,
		Qty:    NoColumn,
		Op:     NoColumn,
	}
}

// Complete reports whether both mandatory roles are assigned.
func (m ColumnMap) Complete() bool {
	return m.SKU != NoColumn && m.Amount != NoColumn
}

// HasQty reports whether a quantity column was found.
func (m ColumnMap) HasQty() bool {
	return m.Qty != NoColumn
}

// HasOp reports whether an operation-type column was found.
func (m ColumnMap) HasOp() bool {
	return m.Op != NoColumn
}

// DataStart returns the first data row index.
func (m ColumnMap) DataStart() int {
	return m.HeaderRow + 1
}

// Validate checks every assigned role against the table width.
func (m ColumnMap) Validate(width int) error {
	roles := []struct {
		name string
		ref  ColumnRef
	}{
		{"sku", m.SKU},
		{"amount", m.Amount},
		{"qty", m.Qty},
		{"op", m.Op},
	}
	for _, role := range roles {
		if role.ref == NoColumn {
			continue
		}
		if role.ref < 0 || role.ref >= width {
			return fmt.Errorf("%s column %d out of range [0,%d)", role.name, role.ref, width)
		}
	}
	if m.HeaderRow < 0 {
		return fmt.Errorf("header row %d is negative", m.HeaderRow)
	}
	return nil
}
