package models

import (
	"time"
)

// InventoryBatch represents one purchased lot of a single item.
// Identity for display purposes is the case-insensitive trimmed item name;
// a single item usually has several batches with different expiry dates.
type InventoryBatch struct {
	ID int `json:"id"`

	ItemName string `json:"item_name"`
	Category string `json:"category"` // raw, as entered; normalized only for display

	PurchaseDate time.Time `json:"purchase_date"`
	ExpiryDate   time.Time `json:"expiry_date"`

	// Advisory storage conditions, not used in scoring
	StorageTemperature float64 `json:"storage_temperature"`
	Humidity           float64 `json:"humidity"`

	// Quantity ledger. Used + wasted should never exceed purchased; the
	// repository enforces it on writes, the engine assumes it on reads.
	QuantityPurchased float64 `json:"quantity_purchased"`
	QuantityUsed      float64 `json:"quantity_used"`
	QuantityWasted    float64 `json:"quantity_wasted"`

	CostPerUnit float64 `json:"cost_per_unit"`

	// Snapshot taken once at purchase entry
	FreshnessPercent int    `json:"freshness_percent"`
	FreshnessLevel   string `json:"freshness_level"`
	HighRisk         bool   `json:"high_risk"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Remaining returns the quantity still on hand for this batch.
func (b *InventoryBatch) Remaining() float64 {
	return b.QuantityPurchased - b.QuantityUsed - b.QuantityWasted
}

// InStock reports whether this batch still has usable quantity.
func (b *InventoryBatch) InStock() bool {
	return b.Remaining() > 0
}

// WasteEvent records a dated waste occurrence against a batch, used for
// day-of-week trend bucketing.
type WasteEvent struct {
	ID         int       `json:"id"`
	BatchID    int       `json:"batch_id"`
	ItemName   string    `json:"item_name"`
	Quantity   float64   `json:"quantity"`
	RecordedAt time.Time `json:"recorded_at"`
}

// BatchCreateRequest is the purchase-entry payload. Field presence and types
// are validated here at the boundary instead of trusting ad hoc access.
type BatchCreateRequest struct {
	ItemName           string  `json:"item_name"`
	Category           string  `json:"category"`
	PurchaseDate       string  `json:"purchase_date"` // RFC 3339 or YYYY-MM-DD
	ExpiryDate         string  `json:"expiry_date"`
	StorageTemperature float64 `json:"storage_temperature"`
	Humidity           float64 `json:"humidity"`
	QuantityPurchased  float64 `json:"quantity_purchased"`
	CostPerUnit        float64 `json:"cost_per_unit"`
}

// QuantityRequest records usage or waste against an item by name. The
// repository applies it FIFO across that item's earliest-expiring batches.
type QuantityRequest struct {
	ItemName string  `json:"item_name"`
	Quantity float64 `json:"quantity"`
}

// BatchListParams filters batch listings.
type BatchListParams struct {
	Search         string
	PurchasedAfter *time.Time
}

// InventoryFilter is applied to reconciled item views, not raw batches.
type InventoryFilter struct {
	Search   string // case-insensitive substring on item name
	Category string // exact match on normalized category
	Status   string // exact match on freshness tier
}
