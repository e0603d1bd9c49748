package resolver

import (
	"context"
	"fmt"

	"github.com/mkravets/payout-lens/internal/model"
	"github.com/mkravets/payout-lens/internal/numeric"
)

// statisticalSampleLimit bounds how many rows the numeric census reads.
const statisticalSampleLimit = 2000

// amountStatistics picks the amount column as the one whose cells
// parse as numbers most often across a bounded row sample. It only
// fills the amount role; no other role can be inferred statistically.
type amountStatistics struct{}

func (a *amountStatistics) Name() string { return "amount-statistics" }

func (a *amountStatistics) Resolve(_ context.Context, table *model.Table, current model.ColumnMap) (model.ColumnMap, error) {
	if current.Amount != model.NoColumn {
		return current, nil
	}

	start := current.DataStart()
	end := table.RowCount()
	if end-start > statisticalSampleLimit {
		end = start + statisticalSampleLimit
	}

	claimed := map[int]bool{}
	for _, ref := range []model.ColumnRef{current.SKU, current.Qty, current.Op} {
		if ref != model.NoColumn {
			claimed[ref] = true
		}
	}

	counts := make([]int, table.ColumnCount())
	for row := start; row < end; row++ {
		for col := range counts {
			if claimed[col] {
				continue
			}
			if _, ok := numeric.Normalize(table.Cell(row, col)); ok {
				counts[col]++
			}
		}
	}

	best, bestCount := -1, 0
	for col, count := range counts {
		// Strictly greater keeps the leftmost column on ties.
		if count > bestCount {
			best, bestCount = col, count
		}
	}

	if best < 0 {
		return current, fmt.Errorf("no column parses as numeric")
	}

	m := current
	m.Amount = best
	return m, nil
}
