package engine

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/wastenobite/backend/internal/models"
)

// Policy holds the tunable analysis constants. The defaults follow the
// dashboard's established baselines; both are overridable through config.
type Policy struct {
	// SavingsRate is the fraction of wasted cost considered recoverable.
	SavingsRate float64
	// DailyTargetUnits is the per-day waste ceiling plotted against actuals.
	DailyTargetUnits float64
}

// DefaultPolicy returns the standard analysis constants.
func DefaultPolicy() Policy {
	return Policy{
		SavingsRate:      0.30,
		DailyTargetUnits: 11,
	}
}

// WasteReport bundles every read-side waste rollup: category distribution,
// trailing-week trend, financial summary, per-item analysis and the overall
// summary card metrics.
type WasteReport struct {
	Distribution []models.WasteDistributionEntry
	Trends       []models.WeeklyTrendPoint
	CostSummary  models.CostSummary
	ItemAnalysis []models.ItemWasteAnalysis
	Summary      models.WasteSummary
}

// AggregateWaste computes the full waste report from a batch snapshot and the
// dated waste events recorded against it. It is a pure function of its
// inputs: the same snapshot, events, clock and policy always produce the same
// report, and no input slice is mutated.
func AggregateWaste(batches []models.InventoryBatch, events []models.WasteEvent, now time.Time, policy Policy) WasteReport {
	return WasteReport{
		Distribution: wasteDistribution(batches),
		Trends:       weeklyTrend(batches, events, now, policy),
		CostSummary:  costSummary(batches, policy),
		ItemAnalysis: itemAnalysis(batches, now),
		Summary:      wasteSummary(batches),
	}
}

func wasteDistribution(batches []models.InventoryBatch) []models.WasteDistributionEntry {
	type bucket struct {
		units float64
		cost  float64
	}
	byCategory := make(map[Category]*bucket)
	var totalUnits float64

	for _, b := range batches {
		cat := NormalizeCategory(b.Category, b.ItemName)
		entry, ok := byCategory[cat]
		if !ok {
			entry = &bucket{}
			byCategory[cat] = entry
		}
		entry.units += b.QuantityWasted
		entry.cost += b.QuantityWasted * b.CostPerUnit
		totalUnits += b.QuantityWasted
	}

	entries := make([]models.WasteDistributionEntry, 0, len(byCategory))
	for cat, bk := range byCategory {
		percent := 0.0
		if totalUnits > 0 {
			percent = round1(bk.units / totalUnits * 100)
		}
		entries = append(entries, models.WasteDistributionEntry{
			Category:        string(cat),
			ValuePercent:    percent,
			Units:           round1(bk.units),
			TotalCostWasted: round2(bk.cost),
		})
	}

	// Highest share first; category name breaks ties so output is stable.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ValuePercent != entries[j].ValuePercent {
			return entries[i].ValuePercent > entries[j].ValuePercent
		}
		return entries[i].Category < entries[j].Category
	})
	return entries
}

// weeklyTrend buckets recorded waste events by calendar day over the trailing
// seven days. When no events exist yet (older deployments tracked only batch
// totals), the batch total is spread evenly so the chart still renders.
func weeklyTrend(batches []models.InventoryBatch, events []models.WasteEvent, now time.Time, policy Policy) []models.WeeklyTrendPoint {
	points := make([]models.WeeklyTrendPoint, 0, 7)

	if len(events) == 0 {
		var total float64
		for _, b := range batches {
			total += b.QuantityWasted
		}
		average := total / 7
		for i := 6; i >= 0; i-- {
			day := now.AddDate(0, 0, -i)
			points = append(points, models.WeeklyTrendPoint{
				Day:    day.Weekday().String()[:3],
				Value:  round1(average),
				Target: policy.DailyTargetUnits,
			})
		}
		return points
	}

	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		var value float64
		for _, e := range events {
			if sameDay(e.RecordedAt, day) {
				value += e.Quantity
			}
		}
		points = append(points, models.WeeklyTrendPoint{
			Day:    day.Weekday().String()[:3],
			Value:  round1(value),
			Target: policy.DailyTargetUnits,
		})
	}
	return points
}

func costSummary(batches []models.InventoryBatch, policy Policy) models.CostSummary {
	var costWasted, inventoryValue float64
	for _, b := range batches {
		costWasted += b.QuantityWasted * b.CostPerUnit
		inventoryValue += b.QuantityPurchased * b.CostPerUnit
	}

	percentage := 0.0
	if inventoryValue > 0 {
		percentage = costWasted / inventoryValue * 100
	}
	if percentage > 100 {
		percentage = 100
	}

	return models.CostSummary{
		TotalCostWasted:     round2(costWasted),
		PotentialSavings:    round2(costWasted * policy.SavingsRate),
		WasteCostPercentage: round1(percentage),
		TotalInventoryValue: round2(inventoryValue),
	}
}

func itemAnalysis(batches []models.InventoryBatch, now time.Time) []models.ItemWasteAnalysis {
	type itemTotals struct {
		name      string
		category  Category
		wasted    float64
		purchased float64
		cost      float64
		latest    models.InventoryBatch
	}
	byItem := make(map[string]*itemTotals)
	var order []string

	for _, b := range batches {
		key := itemKey(b.ItemName)
		totals, ok := byItem[key]
		if !ok {
			totals = &itemTotals{
				name:     strings.TrimSpace(b.ItemName),
				category: NormalizeCategory(b.Category, b.ItemName),
				latest:   b,
			}
			byItem[key] = totals
			order = append(order, key)
		}
		totals.wasted += b.QuantityWasted
		totals.purchased += b.QuantityPurchased
		totals.cost += b.QuantityWasted * b.CostPerUnit
		if b.PurchaseDate.After(totals.latest.PurchaseDate) {
			totals.latest = b
		}
	}

	analysis := make([]models.ItemWasteAnalysis, 0, len(byItem))
	for _, key := range order {
		totals := byItem[key]

		denominator := totals.purchased
		if denominator < 1 {
			denominator = 1
		}
		wastePercent := totals.wasted / denominator * 100

		// Risk blends how aggressively the item is wasted with how close its
		// newest batch is to expiry.
		assessment := ScoreFreshness(totals.latest.PurchaseDate, totals.latest.ExpiryDate, now)
		freshness := assessment.FreshnessPercent
		if freshness < 1 {
			freshness = 1
		}
		risk := float64(assessment.DaysRemaining) * wastePercent / float64(freshness)

		analysis = append(analysis, models.ItemWasteAnalysis{
			ItemName:        totals.name,
			Category:        string(totals.category),
			WastePercentage: round1(wastePercent),
			WasteQuantity:   round1(totals.wasted),
			CostWasted:      round2(totals.cost),
			RiskScore:       round2(risk),
			WasteLevel:      wasteLevel(wastePercent),
		})
	}

	sort.SliceStable(analysis, func(i, j int) bool {
		if analysis[i].WastePercentage != analysis[j].WastePercentage {
			return analysis[i].WastePercentage > analysis[j].WastePercentage
		}
		return analysis[i].ItemName < analysis[j].ItemName
	})
	return analysis
}

func wasteSummary(batches []models.InventoryBatch) models.WasteSummary {
	var totalWasted, totalPurchased, totalCost float64
	byCategory := make(map[Category]float64)

	for _, b := range batches {
		totalWasted += b.QuantityWasted
		totalPurchased += b.QuantityPurchased
		totalCost += b.QuantityWasted * b.CostPerUnit
		byCategory[NormalizeCategory(b.Category, b.ItemName)] += b.QuantityWasted
	}

	averagePercent := 0.0
	if totalPurchased > 0 {
		averagePercent = totalWasted / totalPurchased * 100
	}

	highest := "none"
	var highestUnits float64 = -1
	for _, cat := range Categories {
		if units, ok := byCategory[cat]; ok && units > highestUnits {
			highest = string(cat)
			highestUnits = units
		}
	}
	if highestUnits <= 0 {
		highest = "none"
	}

	return models.WasteSummary{
		TotalItemsAnalyzed:     len(batches),
		TotalWasteQuantity:     round1(totalWasted),
		AverageWastePercentage: round1(averagePercent),
		HighestWasteCategory:   highest,
		TotalCostWasted:        round2(totalCost),
	}
}

// wasteLevel tiers an item's waste percentage.
func wasteLevel(percent float64) string {
	switch {
	case percent >= 40:
		return "High"
	case percent >= 15:
		return "Medium"
	default:
		return "Low"
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
