package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db"
	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	"github.com/homeboardhq/homeboard-backend/pkg/enums"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), nil)
	require.NoError(t, err)
	return svc, conn
}

func TestRecordPurchaseRaisesBalance(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	category := mustCreateTestCategory(t, conn, "Pantry")
	item := mustCreateTestItem(t, conn, category.ID, "Rice", 0)

	record, err := svc.RecordPurchase(ctx, RecordPurchaseInput{
		ItemID:       item.ID,
		PurchaseDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Quantity:     4,
		UnitCost:     decimal.NewFromFloat(2.50),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, record.Quantity)

	var reloaded models.Item
	require.NoError(t, conn.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, 4, reloaded.CurrentQuantity)
}

func TestRecordUsageLowersBalance(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	category := mustCreateTestCategory(t, conn, "Pantry")
	item := mustCreateTestItem(t, conn, category.ID, "Rice", 7)

	_, err := svc.RecordUsage(ctx, RecordUsageInput{
		ItemID:       item.ID,
		UsageDate:    time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		QuantityUsed: 3,
	})
	require.NoError(t, err)

	var reloaded models.Item
	require.NoError(t, conn.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, 4, reloaded.CurrentQuantity)
}

func TestRecordUsageRefusesShortStock(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	category := mustCreateTestCategory(t, conn, "Pantry")
	item := mustCreateTestItem(t, conn, category.ID, "Beans", 2)

	_, err := svc.RecordUsage(ctx, RecordUsageInput{
		ItemID:       item.ID,
		UsageDate:    time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		QuantityUsed: 5,
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())

	details, ok := typed.Details().(InsufficientStockDetails)
	require.True(t, ok)
	assert.Equal(t, 5, details.Requested)
	assert.Equal(t, 2, details.Available)

	// The refused usage must leave both the balance and the ledger untouched.
	var reloaded models.Item
	require.NoError(t, conn.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, 2, reloaded.CurrentQuantity)

	var usageCount int64
	require.NoError(t, conn.Model(&models.UsageRecord{}).Where("item_id = ?", item.ID).Count(&usageCount).Error)
	assert.Zero(t, usageCount)
}

func TestLedgerReplayMatchesBalance(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	category := mustCreateTestCategory(t, conn, "Pantry")
	item := mustCreateTestItem(t, conn, category.ID, "Pasta", 0)

	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, qty := range []int{5, 3, 8} {
		_, err := svc.RecordPurchase(ctx, RecordPurchaseInput{
			ItemID:       item.ID,
			PurchaseDate: day,
			Quantity:     qty,
			UnitCost:     decimal.NewFromInt(1),
		})
		require.NoError(t, err)
	}
	for _, qty := range []int{2, 6} {
		_, err := svc.RecordUsage(ctx, RecordUsageInput{
			ItemID:       item.ID,
			UsageDate:    day,
			QuantityUsed: qty,
		})
		require.NoError(t, err)
	}

	detail, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)

	replayed := 0
	for _, purchase := range detail.Purchases {
		replayed += purchase.Quantity
	}
	for _, usage := range detail.Usages {
		replayed -= usage.QuantityUsed
	}
	assert.Equal(t, replayed, detail.Item.CurrentQuantity)
	assert.Equal(t, 8, detail.Item.CurrentQuantity)
}

func TestLedgerEntriesAreImmutable(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, err := range []error{
		svc.UpdatePurchase(ctx, uuid.New()),
		svc.DeletePurchase(ctx, uuid.New()),
		svc.UpdateUsage(ctx, uuid.New()),
		svc.DeleteUsage(ctx, uuid.New()),
	} {
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	}
}

func TestDeleteCategoryDispositions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("emptyCategoryDeletes", func(t *testing.T) {
		svc, conn := newTestService(t)
		category := mustCreateTestCategory(t, conn, "Empty")

		require.NoError(t, svc.DeleteCategory(ctx, category.ID, DeleteCategoryInput{}))

		var count int64
		require.NoError(t, conn.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("refusesWithoutDisposition", func(t *testing.T) {
		svc, conn := newTestService(t)
		category := mustCreateTestCategory(t, conn, "Busy")
		mustCreateTestItem(t, conn, category.ID, "Towels", 1)

		err := svc.DeleteCategory(ctx, category.ID, DeleteCategoryInput{})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	})

	t.Run("reassignMovesItems", func(t *testing.T) {
		svc, conn := newTestService(t)
		from := mustCreateTestCategory(t, conn, "Old")
		to := mustCreateTestCategory(t, conn, "New")
		item := mustCreateTestItem(t, conn, from.ID, "Soap", 1)

		disposition := enums.CategoryDispositionReassign
		require.NoError(t, svc.DeleteCategory(ctx, from.ID, DeleteCategoryInput{
			Disposition:  &disposition,
			ReassignToID: &to.ID,
		}))

		var reloaded models.Item
		require.NoError(t, conn.First(&reloaded, "id = ?", item.ID).Error)
		assert.Equal(t, to.ID, reloaded.CategoryID)
	})

	t.Run("reassignRequiresTarget", func(t *testing.T) {
		svc, conn := newTestService(t)
		category := mustCreateTestCategory(t, conn, "Busy")
		mustCreateTestItem(t, conn, category.ID, "Towels", 1)

		disposition := enums.CategoryDispositionReassign
		err := svc.DeleteCategory(ctx, category.ID, DeleteCategoryInput{Disposition: &disposition})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	})

	t.Run("deleteItemsRemovesLedger", func(t *testing.T) {
		svc, conn := newTestService(t)
		category := mustCreateTestCategory(t, conn, "Busy")
		item := mustCreateTestItem(t, conn, category.ID, "Candles", 0)

		_, err := svc.RecordPurchase(ctx, RecordPurchaseInput{
			ItemID:       item.ID,
			PurchaseDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Quantity:     2,
			UnitCost:     decimal.NewFromInt(3),
		})
		require.NoError(t, err)

		disposition := enums.CategoryDispositionDeleteItems
		require.NoError(t, svc.DeleteCategory(ctx, category.ID, DeleteCategoryInput{Disposition: &disposition}))

		var items, purchases int64
		require.NoError(t, conn.Model(&models.Item{}).Where("category_id = ?", category.ID).Count(&items).Error)
		require.NoError(t, conn.Model(&models.PurchaseRecord{}).Where("item_id = ?", item.ID).Count(&purchases).Error)
		assert.Zero(t, items)
		assert.Zero(t, purchases)
	})
}

func TestCreateItemRequiresCategory(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, CreateItemInput{Name: "Orphan", CategoryID: uuid.New()})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListLedgerEntriesByItem(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	category := mustCreateTestCategory(t, conn, "Pantry")
	item := mustCreateTestItem(t, conn, category.ID, "Beans", 0)

	for i := 0; i < 2; i++ {
		_, err := svc.RecordPurchase(ctx, RecordPurchaseInput{
			ItemID:       item.ID,
			PurchaseDate: time.Date(2026, 2, 1+i, 0, 0, 0, 0, time.UTC),
			Quantity:     5,
			UnitCost:     decimal.NewFromFloat(1.25),
		})
		require.NoError(t, err)
	}
	_, err := svc.RecordUsage(ctx, RecordUsageInput{
		ItemID:       item.ID,
		UsageDate:    time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		QuantityUsed: 4,
	})
	require.NoError(t, err)

	purchases, err := svc.ListPurchases(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, purchases, 2)

	usages, err := svc.ListUsages(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, usages, 1)
	assert.Equal(t, 4, usages[0].QuantityUsed)

	_, err = svc.ListPurchases(ctx, uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
