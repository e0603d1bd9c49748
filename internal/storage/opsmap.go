package storage

import (
	"context"
	"fmt"

	"github.com/mkravets/payout-lens/internal/model"
)

// GetOpsMap loads the persisted operation-label mapping for an owner.
// Unknown owners get an empty map, not an error.
func (s *SQLiteStorage) GetOpsMap(ctx context.Context, owner string) (model.OpsMap, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, class FROM operation_labels WHERE owner = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation labels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ops := make(model.OpsMap)
	for rows.Next() {
		var label, class string
		if err := rows.Scan(&label, &class); err != nil {
			return nil, fmt.Errorf("failed to scan operation label: %w", err)
		}
		parsed, err := model.ParseOperationClass(class)
		if err != nil {
			return nil, fmt.Errorf("corrupt operation label %q: %w", label, err)
		}
		ops[label] = parsed
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate operation labels: %w", err)
	}

	return ops, nil
}

// SaveOpsMap merges the given entries into the owner's persisted
// mapping. Existing labels not present in ops are left untouched, so
// the mapping is append-only from the engine's perspective.
func (s *SQLiteStorage) SaveOpsMap(ctx context.Context, owner string, ops model.OpsMap) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(owner, "owner"); err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}

	mu := s.ownerLock(owner)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO operation_labels (owner, label, class, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(owner, label) DO UPDATE SET class = excluded.class, updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for label, class := range ops {
		if _, err := stmt.ExecContext(ctx, owner, label, string(class)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save label %q: %w", label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit operation labels: %w", err)
	}
	return nil
}

// SetOperation stores a single label mapping for an owner.
func (s *SQLiteStorage) SetOperation(ctx context.Context, owner, label string, class model.OperationClass) error {
	if err := validateString(label, "label"); err != nil {
		return err
	}
	return s.SaveOpsMap(ctx, owner, model.OpsMap{label: class})
}
