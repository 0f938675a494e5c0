package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/wastenobite/backend/internal/models"
)

// ReconcileBatches collapses raw inventory batches into the records worth
// displaying. Batches are grouped by case-insensitive trimmed item name and
// sorted earliest-expiring first within each group. Every in-stock batch of
// an item gets its own view; when an item has no stock left at all, its most
// recent exhausted batch is emitted alone so the item still shows up once.
func ReconcileBatches(batches []models.InventoryBatch, now time.Time) []models.ItemView {
	groups := make(map[string][]models.InventoryBatch)
	var order []string

	for _, b := range batches {
		key := itemKey(b.ItemName)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], b)
	}

	var views []models.ItemView
	for _, key := range order {
		group := groups[key]

		// Earliest expiry first; purchase date breaks ties, insertion order
		// breaks the rest (stable sort).
		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].ExpiryDate.Equal(group[j].ExpiryDate) {
				return group[i].ExpiryDate.Before(group[j].ExpiryDate)
			}
			return group[i].PurchaseDate.Before(group[j].PurchaseDate)
		})

		var inStock, outOfStock []models.InventoryBatch
		for _, b := range group {
			if b.InStock() {
				inStock = append(inStock, b)
			} else {
				outOfStock = append(outOfStock, b)
			}
		}

		if len(inStock) > 0 {
			for _, b := range inStock {
				views = append(views, makeView(b, now, false))
			}
			continue
		}
		if len(outOfStock) > 0 {
			// Latest-expiring exhausted batch represents the item.
			last := outOfStock[len(outOfStock)-1]
			views = append(views, makeView(last, now, true))
		}
	}

	return views
}

// FilterItemViews applies the dashboard's search and filter controls to
// reconciled views: case-insensitive substring match for the search text,
// exact match for category and status tier.
func FilterItemViews(views []models.ItemView, filter models.InventoryFilter) []models.ItemView {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.ItemView, 0, len(views))
	for _, v := range views {
		if search != "" && !strings.Contains(strings.ToLower(v.ItemName), search) {
			continue
		}
		if filter.Category != "" && v.Category != filter.Category {
			continue
		}
		if filter.Status != "" && v.StatusTier != filter.Status {
			continue
		}
		out = append(out, v)
	}
	return out
}

func makeView(b models.InventoryBatch, now time.Time, exhausted bool) models.ItemView {
	assessment := ScoreFreshness(b.PurchaseDate, b.ExpiryDate, now)
	return models.ItemView{
		BatchID:          b.ID,
		ItemName:         strings.TrimSpace(b.ItemName),
		Category:         string(NormalizeCategory(b.Category, b.ItemName)),
		Quantity:         b.Remaining(),
		FreshnessPercent: assessment.FreshnessPercent,
		StatusTier:       string(assessment.StatusTier),
		DaysRemaining:    assessment.DaysRemaining,
		MaxLifespanDays:  assessment.MaxLifespanDays,
		StockStatus:      exhausted,
		ExpiryDate:       b.ExpiryDate,
		CostPerUnit:      b.CostPerUnit,
	}
}

func itemKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PartitionByTier splits views into the three dashboard buckets. The good
// bucket also carries excellent items, matching how the spoilage view groups
// its summary cards.
func PartitionByTier(views []models.ItemView) (critical, warning, good []models.ItemView) {
	for _, v := range views {
		switch Tier(v.StatusTier) {
		case TierCritical:
			critical = append(critical, v)
		case TierWarning:
			warning = append(warning, v)
		default:
			good = append(good, v)
		}
	}
	return critical, warning, good
}
