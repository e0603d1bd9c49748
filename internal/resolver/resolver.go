// Package resolver maps an unlabeled table's columns to semantic
// roles. Resolution is an ordered chain of strategies; each strategy
// fills roles the previous ones left open, and the chain short-circuits
// once both mandatory roles are resolved.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkravets/payout-lens/internal/common"
	"github.com/mkravets/payout-lens/internal/llm"
	"github.com/mkravets/payout-lens/internal/model"
)

// Strategy is one link of the resolution chain. A strategy fills
// unresolved roles in the given map and returns the result; returning
// an error means it declined and the chain moves on.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, table *model.Table, current model.ColumnMap) (model.ColumnMap, error)
}

// Resolver runs the strategy chain over a table.
type Resolver struct {
	logger     *slog.Logger
	strategies []Strategy
}

// New creates a resolver with the default chain: header heuristics,
// statistical amount detection, then the external classification
// capability. A nil client drops the external fallback.
func New(client llm.Client, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	strategies := []Strategy{
		&headerHeuristics{},
		&amountStatistics{},
	}
	if client != nil {
		strategies = append(strategies, &capabilityFallback{client: client, logger: logger})
	}

	return &Resolver{strategies: strategies, logger: logger}
}

// NewWithStrategies creates a resolver with a custom chain.
func NewWithStrategies(logger *slog.Logger, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{strategies: strategies, logger: logger}
}

// Resolve returns a complete ColumnMap or ErrColumnsUnresolved. It
// never guesses: if the chain cannot place both the sku and amount
// roles the failure is definite.
func (r *Resolver) Resolve(ctx context.Context, table *model.Table) (model.ColumnMap, error) {
	m := model.NewColumnMap()

	if table == nil || table.RowCount() == 0 {
		return m, fmt.Errorf("%w: empty table", common.ErrColumnsUnresolved)
	}

	for _, s := range r.strategies {
		if m.Complete() {
			break
		}

		next, err := s.Resolve(ctx, table, m)
		if err != nil {
			r.logger.Warn("resolution strategy declined",
				"strategy", s.Name(),
				"error", err)
			continue
		}

		m = next
		r.logger.Debug("resolution strategy applied",
			"strategy", s.Name(),
			"sku", m.SKU, "amount", m.Amount, "qty", m.Qty, "op", m.Op)
	}

	if !m.Complete() {
		return m, fmt.Errorf("%w: sku=%v amount=%v", common.ErrColumnsUnresolved,
			m.SKU != model.NoColumn, m.Amount != model.NoColumn)
	}

	if err := m.Validate(table.ColumnCount()); err != nil {
		return m, fmt.Errorf("%w: %v", common.ErrColumnsUnresolved, err)
	}

	return m, nil
}
