package models

import "time"

// ItemView is the reconciled, display-facing record for one batch of an item,
// or the single out-of-stock representative when every batch is exhausted.
type ItemView struct {
	BatchID  int    `json:"batch_id"`
	ItemName string `json:"item_name"`
	Category string `json:"category"` // normalized

	Quantity         float64 `json:"quantity"` // remaining in this batch
	FreshnessPercent int     `json:"freshness_percent"`
	StatusTier       string  `json:"status_tier"`
	DaysRemaining    int     `json:"days_remaining"`
	MaxLifespanDays  int     `json:"max_lifespan_days"`

	// True when the item has no in-stock batches at all and this view is the
	// most recent exhausted batch standing in for it.
	StockStatus bool `json:"stock_status"`

	ExpiryDate  time.Time `json:"expiry_date"`
	CostPerUnit float64   `json:"cost_per_unit"`
}

// WasteDistributionEntry is one category's share of total waste.
type WasteDistributionEntry struct {
	Category        string  `json:"category"`
	ValuePercent    float64 `json:"value_percent"`
	Units           float64 `json:"units"`
	TotalCostWasted float64 `json:"total_cost_wasted"`
}

// WeeklyTrendPoint is one day of the trailing-week waste trend.
type WeeklyTrendPoint struct {
	Day    string  `json:"day"`
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
}

// CostSummary is the financial rollup of waste.
type CostSummary struct {
	TotalCostWasted     float64 `json:"total_cost_wasted"`
	PotentialSavings    float64 `json:"potential_savings"`
	WasteCostPercentage float64 `json:"waste_cost_percentage"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
}

// ItemWasteAnalysis is the per-item waste profile.
type ItemWasteAnalysis struct {
	ItemName        string  `json:"name"`
	Category        string  `json:"category"`
	WastePercentage float64 `json:"waste_percentage"`
	WasteQuantity   float64 `json:"waste_quantity"`
	CostWasted      float64 `json:"cost_wasted"`
	RiskScore       float64 `json:"risk_score"`
	WasteLevel      string  `json:"waste_level"`
}

// WasteSummary holds overall summary statistics.
type WasteSummary struct {
	TotalItemsAnalyzed     int     `json:"total_items_analyzed"`
	TotalWasteQuantity     float64 `json:"total_waste_quantity"`
	AverageWastePercentage float64 `json:"average_waste_percentage"`
	HighestWasteCategory   string  `json:"highest_waste_category"`
	TotalCostWasted        float64 `json:"total_cost_wasted"`
}

// Recommendation is a ranked, human-readable action item.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// SpoilagePrediction is one recently purchased batch's freshness outlook.
type SpoilagePrediction struct {
	ItemName         string    `json:"item_name"`
	Category         string    `json:"category"`
	PurchaseDate     time.Time `json:"purchase_date"`
	FreshnessPercent int       `json:"freshness_percent"`
	DaysRemaining    int       `json:"days_remaining"`
	MaxLifespanDays  int       `json:"max_lifespan_days"`
	StatusTier       string    `json:"status_tier"`
}

// ScannedLabel is a purchase draft extracted from a label photo. Nothing is
// written until the operator confirms and posts a BatchCreateRequest.
type ScannedLabel struct {
	ItemName   string  `json:"item_name"`
	Quantity   float64 `json:"quantity"`
	ExpiryDate string  `json:"expiry_date,omitempty"`
	Confidence int     `json:"confidence"`
	RawText    string  `json:"raw_text"`
}
