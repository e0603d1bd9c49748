package profit

import (
	"fmt"
	"math"

	"github.com/mkravets/payout-lens/internal/common"
	"github.com/mkravets/payout-lens/internal/model"
)

// Proportional implements the tax-from-revenue policy: tax is levied
// on non-negative aggregate revenue and allocated to entities in
// proportion to their positive revenue share; row quantities are
// re-signed by operation class when both signals are available.
type Proportional struct {
	// TaxRate is the flat rate applied to non-negative total revenue,
	// e.g. 0.06 for a 6% revenue-based regime.
	TaxRate float64
}

// NewProportional creates the proportional-allocation calculator.
func NewProportional(taxRate float64) *Proportional {
	return &Proportional{TaxRate: taxRate}
}

// Compute produces the full financial summary under the proportional
// policy.
func (p *Proportional) Compute(table *model.Table, cm model.ColumnMap, ops model.OpsMap, catalog *model.CostCatalog) (*model.ComputationResult, error) {
	rows := parseRows(table, cm, ops)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no row has a parsable amount", common.ErrNoUsableRows)
	}

	degraded := !cm.HasQty() && !cm.HasOp()

	result := &model.ComputationResult{Degraded: degraded}
	entities := newEntityAccumulator()

	for _, r := range rows {
		result.RevenueTotal += r.amount

		if r.code == "" {
			// Rows without an entity code count toward totals but
			// cannot be part of the per-entity breakdown.
			continue
		}

		f := entities.get(r.code)
		f.Revenue += r.amount

		if qty := signedQty(r); qty > 0 {
			// Returns are excluded from the cost base, not netted
			// against it.
			f.SoldQty += qty
		}
	}

	result.TaxTotal = math.Max(result.RevenueTotal, 0) * p.TaxRate

	perEntity := entities.list()

	var positiveRevenue float64
	for i := range perEntity {
		if !degraded {
			perEntity[i].COGS = perEntity[i].SoldQty * catalog.UnitCost(perEntity[i].Code)
		}
		result.COGSTotal += perEntity[i].COGS
		result.SoldQtyTotal += perEntity[i].SoldQty
		if perEntity[i].Revenue > 0 {
			positiveRevenue += perEntity[i].Revenue
		}
	}

	// Tax allocation is proportional to each entity's share of the
	// positive revenue; entities with non-positive revenue get zero.
	// When no entity has positive revenue all per-entity tax is zero
	// even though the aggregate tax may be nonzero.
	for i := range perEntity {
		if perEntity[i].Revenue > 0 && positiveRevenue > 0 {
			perEntity[i].Tax = result.TaxTotal * perEntity[i].Revenue / positiveRevenue
		}
		perEntity[i].Profit = perEntity[i].Revenue - perEntity[i].COGS - perEntity[i].Tax
	}

	result.PerEntity = perEntity
	result.ProfitTotal = result.RevenueTotal - result.COGSTotal - result.TaxTotal

	return result, nil
}

// signedQty derives a row's signed quantity from whichever of the
// quantity and operation signals are present.
func signedQty(r row) float64 {
	switch {
	case r.hasOp && r.hasQty:
		magnitude := math.Abs(r.rawQty)
		if magnitude == 0 {
			magnitude = 1
		}
		switch r.class {
		case model.OpSale:
			return magnitude
		case model.OpReturn:
			return -magnitude
		default:
			return 0
		}
	case r.hasOp:
		switch r.class {
		case model.OpSale:
			return 1
		case model.OpReturn:
			return -1
		default:
			return 0
		}
	case r.hasQty:
		return r.rawQty
	default:
		return 0
	}
}
