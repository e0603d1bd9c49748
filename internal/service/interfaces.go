// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/mkravets/payout-lens/internal/model"
)

// Storage defines the contract for the persistence layer. Both stores
// are keyed by an owning context so one owner's label semantics or
// cost data never leak into another's.
type Storage interface {
	// Operation-label mapping. GetOpsMap returns an empty map for an
	// unknown owner. SaveOpsMap merges the given entries into the
	// persisted mapping; it never removes existing labels.
	GetOpsMap(ctx context.Context, owner string) (model.OpsMap, error)
	SaveOpsMap(ctx context.Context, owner string, ops model.OpsMap) error
	SetOperation(ctx context.Context, owner, label string, class model.OperationClass) error

	// Cost catalog. GetCostCatalog returns an empty catalog for an
	// unknown owner.
	GetCostCatalog(ctx context.Context, owner string) (*model.CostCatalog, error)
	SaveCostCatalog(ctx context.Context, owner string, catalog *model.CostCatalog) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
