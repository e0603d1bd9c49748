package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCellIsIndexSafe(t *testing.T) {
	table := &Table{Rows: [][]string{
		{"  Артикул  ", "Сумма"},
		{"A-100"},
	}}

	assert.Equal(t, "Артикул", table.Cell(0, 0), "cells are trimmed")
	assert.Equal(t, "", table.Cell(1, 1), "short row")
	assert.Equal(t, "", table.Cell(5, 0), "row out of range")
	assert.Equal(t, "", table.Cell(0, -1), "negative column")
	assert.Equal(t, "", table.Cell(-1, 0), "negative row")
}

func TestTableColumnCountUsesWidestRow(t *testing.T) {
	table := &Table{Rows: [][]string{
		{"a"},
		{"a", "b", "c"},
		{"a", "b"},
	}}
	assert.Equal(t, 3, table.ColumnCount())
	assert.Equal(t, 3, table.RowCount())
}

func TestColumnMapComplete(t *testing.T) {
	m := NewColumnMap()
	assert.False(t, m.Complete())
	assert.False(t, m.HasQty())
	assert.False(t, m.HasOp())

	m.SKU = 0
	assert.False(t, m.Complete(), "amount still missing")

	m.Amount = 2
	assert.True(t, m.Complete())
}

func TestColumnMapDataStart(t *testing.T) {
	m := NewColumnMap()
	m.HeaderRow = 3
	assert.Equal(t, 4, m.DataStart())
}

func TestColumnMapValidate(t *testing.T) {
	m := NewColumnMap()
	m.SKU = 0
	m.Amount = 4

	assert.Error(t, m.Validate(3), "amount beyond table width")
	assert.NoError(t, m.Validate(5))

	m.Qty = NoColumn
	assert.NoError(t, m.Validate(5), "unassigned roles are not checked")
}

func TestParseOperationClass(t *testing.T) {
	for _, valid := range []string{"sale", "return", "other"} {
		class, err := ParseOperationClass(valid)
		require.NoError(t, err)
		assert.Equal(t, OperationClass(valid), class)
	}

	_, err := ParseOperationClass("refund")
	assert.Error(t, err)
	_, err = ParseOperationClass("")
	assert.Error(t, err)
}

func TestOpsMapClassifyDefaultsToOther(t *testing.T) {
	ops := OpsMap{"Доставка покупателю": OpSale}
	assert.Equal(t, OpSale, ops.Classify("Доставка покупателю"))
	assert.Equal(t, OpOther, ops.Classify("Штраф"))
	assert.Equal(t, OpOther, ops.Classify(""))
}

func TestOpsMapMerge(t *testing.T) {
	ops := OpsMap{"a": OpSale, "b": OpOther}
	ops.Merge(OpsMap{"b": OpReturn, "c": OpSale})
	assert.Equal(t, OpsMap{"a": OpSale, "b": OpReturn, "c": OpSale}, ops)
}

func TestCostCatalogUnitCost(t *testing.T) {
	catalog := NewCostCatalog()
	catalog.DefaultCost = 5
	catalog.PerEntity["A"] = 12

	assert.Equal(t, 12.0, catalog.UnitCost("A"))
	assert.Equal(t, 5.0, catalog.UnitCost("B"))

	var nilCatalog *CostCatalog
	assert.Equal(t, 0.0, nilCatalog.UnitCost("A"))
	assert.True(t, nilCatalog.Empty())
}

func TestCostCatalogEmpty(t *testing.T) {
	catalog := NewCostCatalog()
	assert.True(t, catalog.Empty())

	catalog.DefaultCost = 1
	assert.False(t, catalog.Empty())

	catalog.DefaultCost = 0
	catalog.PerEntity["A"] = 0
	assert.False(t, catalog.Empty(), "an explicit zero cost is still data")
}
