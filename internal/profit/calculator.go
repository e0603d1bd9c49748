// Package profit computes aggregate and per-entity revenue, tax,
// cost-of-goods-sold and profit figures for a normalized payout table.
// Two allocation policies exist as explicit named calculators behind
// one interface; their sign conventions differ and must never be
// mixed.
package profit

import (
	"github.com/mkravets/payout-lens/internal/model"
	"github.com/mkravets/payout-lens/internal/numeric"
)

// Calculator computes a ComputationResult from a resolved table.
type Calculator interface {
	Compute(table *model.Table, cm model.ColumnMap, ops model.OpsMap, catalog *model.CostCatalog) (*model.ComputationResult, error)
}

// row is one report line after normalization. Rows whose amount cell
// does not normalize never become rows: they are excluded from every
// sum rather than treated as zero.
type row struct {
	code   string
	class  model.OperationClass
	amount float64
	rawQty float64
	hasQty bool
	hasOp  bool
}

// parseRows normalizes the table into typed rows, dropping rows whose
// amount cannot be parsed.
func parseRows(table *model.Table, cm model.ColumnMap, ops model.OpsMap) []row {
	var rows []row

	for r := cm.DataStart(); r < table.RowCount(); r++ {
		amount, ok := numeric.Normalize(table.Cell(r, cm.Amount))
		if !ok {
			continue
		}

		parsed := row{
			code:   table.Cell(r, cm.SKU),
			amount: amount,
		}

		if cm.HasQty() {
			if qty, ok := numeric.Normalize(table.Cell(r, cm.Qty)); ok {
				parsed.rawQty = qty
				parsed.hasQty = true
			}
		}

		if cm.HasOp() {
			parsed.class = ops.Classify(table.Cell(r, cm.Op))
			parsed.hasOp = true
		}

		rows = append(rows, parsed)
	}

	return rows
}

// entityAccumulator aggregates per-entity figures preserving
// first-occurrence order of entity codes.
type entityAccumulator struct {
	figures map[string]*model.EntityFigures
	order   []string
}

func newEntityAccumulator() *entityAccumulator {
	return &entityAccumulator{figures: make(map[string]*model.EntityFigures)}
}

func (a *entityAccumulator) get(code string) *model.EntityFigures {
	f, ok := a.figures[code]
	if !ok {
		f = &model.EntityFigures{Code: code}
		a.figures[code] = f
		a.order = append(a.order, code)
	}
	return f
}

func (a *entityAccumulator) list() []model.EntityFigures {
	out := make([]model.EntityFigures, 0, len(a.order))
	for _, code := range a.order {
		out = append(out, *a.figures[code])
	}
	return out
}
