package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastenobite/backend/internal/models"
)

func batch(name string, expiry time.Time, purchased, used, wasted float64) models.InventoryBatch {
	return models.InventoryBatch{
		ItemName:          name,
		Category:          "",
		PurchaseDate:      expiry.AddDate(0, 0, -5),
		ExpiryDate:        expiry,
		QuantityPurchased: purchased,
		QuantityUsed:      used,
		QuantityWasted:    wasted,
	}
}

func TestReconcileEveryItemRepresentedOnce(t *testing.T) {
	now := day(0)
	batches := []models.InventoryBatch{
		batch("Apple", day(4), 30, 5, 0),
		batch("Apple", day(8), 20, 0, 0),
		batch("Beef", day(2), 15, 15, 0),  // exhausted
		batch("Carrot", day(6), 25, 0, 0), // single in-stock
	}

	views := ReconcileBatches(batches, now)

	byItem := make(map[string][]models.ItemView)
	for _, v := range views {
		byItem[strings.ToLower(v.ItemName)] = append(byItem[strings.ToLower(v.ItemName)], v)
	}

	require.Len(t, byItem, 3, "every distinct item name must appear")
	assert.Len(t, byItem["apple"], 2, "one view per in-stock batch")
	assert.Len(t, byItem["beef"], 1, "exhausted item gets exactly one representative")
	assert.Len(t, byItem["carrot"], 1)

	// A group is either all in-stock views or a single exhausted one, never
	// a mix.
	for name, group := range byItem {
		if len(group) > 1 {
			for _, v := range group {
				assert.False(t, v.StockStatus, "mixed group for %s", name)
			}
		}
	}
	assert.True(t, byItem["beef"][0].StockStatus)
}

func TestReconcileExhaustedTieBreak(t *testing.T) {
	now := day(0)
	batches := []models.InventoryBatch{
		batch("Milk", day(5), 10, 10, 0),
		batch("Milk", day(10), 8, 4, 4),
	}

	views := ReconcileBatches(batches, now)

	require.Len(t, views, 1)
	assert.True(t, views[0].StockStatus)
	assert.True(t, views[0].ExpiryDate.Equal(day(10)), "latest-expiring exhausted batch represents the item")
}

func TestReconcileEggScenario(t *testing.T) {
	now := day(0)
	older := batch("Egg", day(2), 12, 12, 0)
	newer := batch("Egg", day(14), 20, 0, 0)

	views := ReconcileBatches([]models.InventoryBatch{older, newer}, now)

	require.Len(t, views, 1)
	assert.Equal(t, "Egg", views[0].ItemName)
	assert.Equal(t, 20.0, views[0].Quantity)
	assert.False(t, views[0].StockStatus)
}

func TestReconcileGroupsCaseInsensitively(t *testing.T) {
	now := day(0)
	views := ReconcileBatches([]models.InventoryBatch{
		batch("  Chicken ", day(3), 10, 0, 0),
		batch("chicken", day(6), 10, 0, 0),
	}, now)

	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, "meat", v.Category)
	}
	// Earliest expiry first.
	assert.True(t, views[0].ExpiryDate.Before(views[1].ExpiryDate))
}

func TestReconcileSortsByExpiryThenPurchase(t *testing.T) {
	now := day(0)
	a := batch("Tomato", day(6), 10, 0, 0)
	b := batch("Tomato", day(6), 10, 0, 0)
	b.PurchaseDate = day(-10)
	c := batch("Tomato", day(3), 10, 0, 0)

	views := ReconcileBatches([]models.InventoryBatch{a, b, c}, now)

	require.Len(t, views, 3)
	assert.True(t, views[0].ExpiryDate.Equal(day(3)))
	// Same expiry: earlier purchase first. b's lifespan spans 16 days, a's 5.
	assert.True(t, views[1].ExpiryDate.Equal(day(6)))
	assert.Equal(t, 16, views[1].MaxLifespanDays)
	assert.Equal(t, 5, views[2].MaxLifespanDays)
}

func TestReconcileEmptyInput(t *testing.T) {
	assert.Empty(t, ReconcileBatches(nil, day(0)))
}

func TestFilterItemViews(t *testing.T) {
	now := day(0)
	views := ReconcileBatches([]models.InventoryBatch{
		batch("Apple", day(10), 30, 0, 0),
		batch("Beef", day(2), 15, 0, 0),
		batch("Broccoli", day(6), 25, 0, 0),
	}, now)

	found := FilterItemViews(views, models.InventoryFilter{Search: "app"})
	require.Len(t, found, 1)
	assert.Equal(t, "Apple", found[0].ItemName)

	meat := FilterItemViews(views, models.InventoryFilter{Category: "meat"})
	require.Len(t, meat, 1)
	assert.Equal(t, "Beef", meat[0].ItemName)

	critical := FilterItemViews(views, models.InventoryFilter{Status: "critical"})
	require.Len(t, critical, 1)
	assert.Equal(t, "Beef", critical[0].ItemName)

	assert.Len(t, FilterItemViews(views, models.InventoryFilter{}), 3)
	assert.Empty(t, FilterItemViews(views, models.InventoryFilter{Search: "zzz"}))
}

func TestPartitionByTier(t *testing.T) {
	now := day(0)
	views := ReconcileBatches([]models.InventoryBatch{
		batch("Beef", day(1), 15, 0, 0),      // critical
		batch("Broccoli", day(10), 25, 0, 0), // good or better
	}, now)

	critical, warning, good := PartitionByTier(views)
	assert.Len(t, critical, 1)
	assert.Empty(t, warning)
	assert.Len(t, good, 1)
}
