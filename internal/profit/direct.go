package profit

import (
	"fmt"

	"github.com/mkravets/payout-lens/internal/common"
	"github.com/mkravets/payout-lens/internal/model"
)

// Status thresholds are policy constants, not computed.
const (
	// marginalMarginPercent is the margin below which a profitable
	// result is still considered marginal.
	marginalMarginPercent = 15.0
)

// Direct implements the direct-deduction policy for reports whose row
// signs already encode gains and losses, such as a generic ledger.
// No operation-based sign inference happens here.
type Direct struct{}

// NewDirect creates the direct-deduction calculator.
func NewDirect() *Direct {
	return &Direct{}
}

// Compute produces the financial summary under the direct-deduction
// policy.
func (d *Direct) Compute(table *model.Table, cm model.ColumnMap, _ model.OpsMap, catalog *model.CostCatalog) (*model.ComputationResult, error) {
	rows := parseRows(table, cm, nil)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no row has a parsable amount", common.ErrNoUsableRows)
	}

	result := &model.ComputationResult{}
	entities := newEntityAccumulator()

	for _, r := range rows {
		if r.amount > 0 {
			result.RevenueTotal += r.amount
		} else {
			result.Deductions += r.amount
		}

		if r.code == "" {
			continue
		}

		f := entities.get(r.code)
		f.Revenue += r.amount

		// Quantity is taken directly from the quantity column,
		// defaulting to 1 when absent or non-positive.
		qty := 1.0
		if r.hasQty && r.rawQty > 0 {
			qty = r.rawQty
		}
		f.SoldQty += qty
	}

	net := result.RevenueTotal + result.Deductions

	perEntity := entities.list()
	if !catalog.Empty() {
		for i := range perEntity {
			perEntity[i].COGS = catalog.UnitCost(perEntity[i].Code) * perEntity[i].SoldQty
			result.COGSTotal += perEntity[i].COGS
		}
	}
	for i := range perEntity {
		perEntity[i].Profit = perEntity[i].Revenue - perEntity[i].COGS
		result.SoldQtyTotal += perEntity[i].SoldQty
	}

	result.PerEntity = perEntity
	result.ProfitTotal = net - result.COGSTotal

	if result.RevenueTotal > 0 {
		result.Margin = result.ProfitTotal / result.RevenueTotal * 100
	}

	switch {
	case result.ProfitTotal <= 0:
		result.Status = model.HealthCritical
	case result.Margin < marginalMarginPercent:
		result.Status = model.HealthMarginal
	default:
		result.Status = model.HealthHealthy
	}

	return result, nil
}
