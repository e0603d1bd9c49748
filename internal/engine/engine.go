// Package engine orchestrates the report pipeline: column resolution,
// numeric normalization, operation classification, profit computation
// and aggregation. One report is processed start to finish per
// invocation; there is no internal parallelism.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkravets/payout-lens/internal/classify"
	"github.com/mkravets/payout-lens/internal/model"
	"github.com/mkravets/payout-lens/internal/profit"
	"github.com/mkravets/payout-lens/internal/report"
	"github.com/mkravets/payout-lens/internal/resolver"
	"github.com/mkravets/payout-lens/internal/service"
)

// Policy names the allocation policy to compute under.
type Policy string

// Allocation policies.
const (
	// PolicyProportional is the tax-from-revenue policy with
	// proportional tax allocation.
	PolicyProportional Policy = "proportional"
	// PolicyLedger is the direct-deduction policy for reports whose
	// row signs already encode gains and losses.
	PolicyLedger Policy = "ledger"
)

// Options configures one analysis run.
type Options struct {
	// Owner scopes the persisted operation mapping and cost catalog.
	Owner string
	// TaxRate applies under the proportional policy.
	TaxRate float64
	// Policy selects the allocation policy; empty means proportional.
	Policy Policy
	// TopN bounds the rankings; zero means report.DefaultTopN.
	TopN int
}

// Report is the full outcome of one analysis run.
type Report struct {
	Result   *model.ComputationResult
	Ranking  report.Ranking
	Columns  model.ColumnMap
	Warnings []string
}

// Engine wires the pipeline stages together.
type Engine struct {
	storage    service.Storage
	resolver   *resolver.Resolver
	classifier *classify.Classifier
	logger     *slog.Logger
}

// New creates an engine with the given dependencies.
func New(storage service.Storage, res *resolver.Resolver, cls *classify.Classifier, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		storage:    storage,
		resolver:   res,
		classifier: cls,
		logger:     logger,
	}
}

// Analyze processes one decoded table into a Report. It either
// returns a complete report or a definite failure; partial financial
// totals are never produced.
func (e *Engine) Analyze(ctx context.Context, table *model.Table, opts Options) (*Report, error) {
	cm, err := e.resolver.Resolve(ctx, table)
	if err != nil {
		return nil, err
	}
	e.logger.Info("columns resolved",
		"header_row", cm.HeaderRow,
		"sku", cm.SKU, "amount", cm.Amount, "qty", cm.Qty, "op", cm.Op)

	ops, err := e.classifier.ClassifyTable(ctx, opts.Owner, table, cm)
	if err != nil {
		// Classification problems are recovered inside the
		// classifier; an error here is a programming bug.
		return nil, fmt.Errorf("classify operations: %w", err)
	}

	var extraWarnings []string
	catalog, err := e.storage.GetCostCatalog(ctx, opts.Owner)
	if err != nil {
		// Report computation proceeds without cost data.
		e.logger.Warn("cost catalog unavailable, computing without cost data",
			"owner", opts.Owner, "error", err)
		catalog = model.NewCostCatalog()
		extraWarnings = append(extraWarnings,
			"cost catalog unavailable: cost of goods sold is reported as zero")
	}

	var calc profit.Calculator
	metric := report.MetricProfit
	switch opts.Policy {
	case PolicyLedger:
		calc = profit.NewDirect()
		metric = report.MetricRevenue
	case PolicyProportional, "":
		calc = profit.NewProportional(opts.TaxRate)
	default:
		return nil, fmt.Errorf("unknown policy %q", opts.Policy)
	}

	result, err := calc.Compute(table, cm, ops, catalog)
	if err != nil {
		return nil, err
	}

	e.logger.Info("report computed",
		"owner", opts.Owner,
		"policy", string(opts.Policy),
		"revenue", result.RevenueTotal,
		"profit", result.ProfitTotal,
		"entities", len(result.PerEntity),
		"degraded", result.Degraded)

	return &Report{
		Result:   result,
		Ranking:  report.Build(result, metric, opts.TopN),
		Columns:  cm,
		Warnings: append(report.Warnings(result), extraWarnings...),
	}, nil
}
