package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/payout-lens/internal/model"
)

func testStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "lens.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestOpsMapRoundtrip(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	ops := model.OpsMap{
		"Доставка покупателю": model.OpSale,
		"Возврат":             model.OpReturn,
		"Логистика":           model.OpOther,
	}
	require.NoError(t, store.SaveOpsMap(ctx, "owner-1", ops))

	loaded, err := store.GetOpsMap(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, ops, loaded)
}

func TestOpsMapUnknownOwnerIsEmpty(t *testing.T) {
	store := testStorage(t)

	loaded, err := store.GetOpsMap(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestOpsMapSaveMerges(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveOpsMap(ctx, "owner-1", model.OpsMap{
		"Доставка покупателю": model.OpSale,
		"Логистика":           model.OpOther,
	}))
	require.NoError(t, store.SaveOpsMap(ctx, "owner-1", model.OpsMap{
		"Логистика": model.OpReturn,
		"Возврат":   model.OpReturn,
	}))

	loaded, err := store.GetOpsMap(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, model.OpsMap{
		"Доставка покупателю": model.OpSale,
		"Логистика":           model.OpReturn,
		"Возврат":             model.OpReturn,
	}, loaded)
}

func TestOpsMapOwnerIsolation(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveOpsMap(ctx, "owner-1", model.OpsMap{"Бонус": model.OpSale}))
	require.NoError(t, store.SaveOpsMap(ctx, "owner-2", model.OpsMap{"Бонус": model.OpOther}))

	first, err := store.GetOpsMap(ctx, "owner-1")
	require.NoError(t, err)
	second, err := store.GetOpsMap(ctx, "owner-2")
	require.NoError(t, err)

	assert.Equal(t, model.OpSale, first["Бонус"])
	assert.Equal(t, model.OpOther, second["Бонус"])
}

func TestSetOperation(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SetOperation(ctx, "owner-1", "Штраф", model.OpOther))
	require.NoError(t, store.SetOperation(ctx, "owner-1", "Штраф", model.OpReturn))

	loaded, err := store.GetOpsMap(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, model.OpsMap{"Штраф": model.OpReturn}, loaded)
}

func TestSaveOpsMapEmptyIsNoop(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveOpsMap(ctx, "owner-1", model.OpsMap{}))
	loaded, err := store.GetOpsMap(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestCostCatalogRoundtrip(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	catalog := model.NewCostCatalog()
	catalog.DefaultCost = 12.5
	catalog.PerEntity["A-100"] = 99.9
	catalog.PerEntity["B-200"] = 0.5

	require.NoError(t, store.SaveCostCatalog(ctx, "owner-1", catalog))

	loaded, err := store.GetCostCatalog(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultCost, loaded.DefaultCost)
	assert.Equal(t, catalog.PerEntity, loaded.PerEntity)
}

func TestCostCatalogUnknownOwnerIsEmpty(t *testing.T) {
	store := testStorage(t)

	loaded, err := store.GetCostCatalog(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestCostCatalogSaveReplacesEntities(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	first := model.NewCostCatalog()
	first.PerEntity["A"] = 10
	first.PerEntity["B"] = 20
	require.NoError(t, store.SaveCostCatalog(ctx, "owner-1", first))

	second := model.NewCostCatalog()
	second.DefaultCost = 3
	second.PerEntity["A"] = 15
	require.NoError(t, store.SaveCostCatalog(ctx, "owner-1", second))

	loaded, err := store.GetCostCatalog(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, loaded.DefaultCost)
	assert.Equal(t, map[string]float64{"A": 15}, loaded.PerEntity)
}

func TestCostCatalogOwnerIsolation(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	mine := model.NewCostCatalog()
	mine.PerEntity["A"] = 7
	require.NoError(t, store.SaveCostCatalog(ctx, "owner-1", mine))

	loaded, err := store.GetCostCatalog(ctx, "owner-2")
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := testStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestValidation(t *testing.T) {
	store := testStorage(t)

	_, err := store.GetOpsMap(context.Background(), "")
	assert.Error(t, err)

	err = store.SetOperation(context.Background(), "owner", "", model.OpSale)
	assert.Error(t, err)

	_, err = NewSQLiteStorage("")
	assert.Error(t, err)
}
