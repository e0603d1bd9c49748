package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/payout-lens/internal/common"
	"github.com/mkravets/payout-lens/internal/model"
)

func TestDirectSplitsRevenueAndDeductions(t *testing.T) {
	table := &model.Table{Rows: [][]string{
		{"code", "amount"},
		{"A", "1000"},
		{"B", "-250"},
		{"A", "500"},
		{"C", "-50"},
	}}
	cm := model.ColumnMap{SKU: 0, Amount: 1, Qty: model.NoColumn, Op: model.NoColumn, HeaderRow: 0}

	result, err := NewDirect().Compute(table, cm, nil, model.NewCostCatalog())
	require.NoError(t, err)

	assert.InDelta(t, 1500.0, result.RevenueTotal, epsilon)
	assert.InDelta(t, -300.0, result.Deductions, epsilon)
	assert.InDelta(t, 1200.0, result.ProfitTotal, epsilon, "empty catalog means no cost deduction")
	assert.Zero(t, result.TaxTotal, "no tax under direct deduction")
}

func TestDirectCostDeduction(t *testing.T) {
	table := &model.Table{Rows: [][]string{
		{"code", "qty", "amount"},
		{"A", "2", "1000"},
		{"B", "", "-100"},
		{"A", "-3", "200"},
	}}
	cm := model.ColumnMap{SKU: 0, Qty: 1, Amount: 2, Op: model.NoColumn, HeaderRow: 0}

	catalog := model.NewCostCatalog()
	catalog.PerEntity["A"] = 50
	catalog.DefaultCost = 5

	result, err := NewDirect().Compute(table, cm, nil, catalog)
	require.NoError(t, err)

	// A: qty 2 plus default 1 for the non-positive row; B: default 1.
	assert.InDelta(t, 3*50+1*5, result.COGSTotal, epsilon)
	assert.InDelta(t, 1100.0-155.0, result.ProfitTotal, epsilon)
}

func TestDirectMarginAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		rows   [][]string
		margin float64
		status model.HealthStatus
	}{
		{
			name:   "healthy",
			rows:   [][]string{{"A", "1000"}, {"B", "-100"}},
			margin: 90.0,
			status: model.HealthHealthy,
		},
		{
			name:   "marginal",
			rows:   [][]string{{"A", "1000"}, {"B", "-900"}},
			margin: 10.0,
			status: model.HealthMarginal,
		},
		{
			name:   "critical on zero profit",
			rows:   [][]string{{"A", "500"}, {"B", "-500"}},
			margin: 0.0,
			status: model.HealthCritical,
		},
		{
			name:   "critical on loss",
			rows:   [][]string{{"A", "100"}, {"B", "-300"}},
			margin: -200.0,
			status: model.HealthCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := append([][]string{{"code", "amount"}}, tt.rows...)
			cm := model.ColumnMap{SKU: 0, Amount: 1, Qty: model.NoColumn, Op: model.NoColumn, HeaderRow: 0}

			result, err := NewDirect().Compute(&model.Table{Rows: rows}, cm, nil, model.NewCostCatalog())
			require.NoError(t, err)
			assert.InDelta(t, tt.margin, result.Margin, epsilon)
			assert.Equal(t, tt.status, result.Status)
		})
	}
}

func TestDirectZeroRevenueMarginIsZero(t *testing.T) {
	table := &model.Table{Rows: [][]string{
		{"code", "amount"},
		{"A", "-10"},
	}}
	cm := model.ColumnMap{SKU: 0, Amount: 1, Qty: model.NoColumn, Op: model.NoColumn, HeaderRow: 0}

	result, err := NewDirect().Compute(table, cm, nil, model.NewCostCatalog())
	require.NoError(t, err)
	assert.Zero(t, result.Margin)
	assert.Equal(t, model.HealthCritical, result.Status)
}

func TestDirectNoUsableRows(t *testing.T) {
	table := &model.Table{Rows: [][]string{
		{"code", "amount"},
		{"A", "—"},
	}}
	cm := model.ColumnMap{SKU: 0, Amount: 1, Qty: model.NoColumn, Op: model.NoColumn, HeaderRow: 0}

	_, err := NewDirect().Compute(table, cm, nil, model.NewCostCatalog())
	assert.ErrorIs(t, err, common.ErrNoUsableRows)
}
