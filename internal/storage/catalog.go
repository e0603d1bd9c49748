package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkravets/payout-lens/internal/common"
	"github.com/mkravets/payout-lens/internal/model"
)

// GetCostCatalog loads an owner's cost catalog. Unknown owners get an
// empty catalog, not an error.
func (s *SQLiteStorage) GetCostCatalog(ctx context.Context, owner string) (*model.CostCatalog, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}

	catalog := model.NewCostCatalog()

	err := s.db.QueryRowContext(ctx,
		`SELECT default_cost FROM cost_catalogs WHERE owner = ?`, owner).
		Scan(&catalog.DefaultCost)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: query cost catalog: %v", common.ErrCatalogUnavailable, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT code, cost FROM entity_costs WHERE owner = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: query entity costs: %v", common.ErrCatalogUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var code string
		var cost float64
		if err := rows.Scan(&code, &cost); err != nil {
			return nil, fmt.Errorf("failed to scan entity cost: %w", err)
		}
		catalog.PerEntity[code] = cost
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entity costs: %w", err)
	}

	return catalog, nil
}

// SaveCostCatalog persists an owner's full cost catalog, replacing the
// previous per-entity entries.
func (s *SQLiteStorage) SaveCostCatalog(ctx context.Context, owner string, catalog *model.CostCatalog) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(owner, "owner"); err != nil {
		return err
	}
	if catalog == nil {
		return fmt.Errorf("catalog must not be nil")
	}

	mu := s.ownerLock(owner)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO cost_catalogs (owner, default_cost, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(owner) DO UPDATE SET default_cost = excluded.default_cost, updated_at = CURRENT_TIMESTAMP`,
		owner, catalog.DefaultCost); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to save catalog default: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM entity_costs WHERE owner = ?`, owner); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to clear entity costs: %w", err)
	}

	for code, cost := range catalog.PerEntity {
		if _, err := tx.ExecContext(ctx, `INSERT INTO entity_costs (owner, code, cost) VALUES (?, ?, ?)`,
			owner, code, cost); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save cost for %q: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cost catalog: %w", err)
	}
	return nil
}
