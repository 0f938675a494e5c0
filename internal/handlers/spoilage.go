package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wastenobite/backend/internal/engine"
	"github.com/wastenobite/backend/internal/models"
)

// SpoilagePredictions scores batches purchased in the trailing week and
// pairs them with action recommendations derived from the whole inventory.
func (h *Handler) SpoilagePredictions(c *fiber.Ctx) error {
	now := time.Now()
	since := now.AddDate(0, 0, -7)

	recent, err := h.db.ListBatches(c.Context(), &models.BatchListParams{PurchasedAfter: &since})
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load recent purchases")
	}

	predictions := make([]models.SpoilagePrediction, 0, len(recent))
	for _, b := range recent {
		a := engine.ScoreFreshness(b.PurchaseDate, b.ExpiryDate, now)
		predictions = append(predictions, models.SpoilagePrediction{
			ItemName:         b.ItemName,
			Category:         string(engine.NormalizeCategory(b.Category, b.ItemName)),
			PurchaseDate:     b.PurchaseDate,
			FreshnessPercent: a.FreshnessPercent,
			DaysRemaining:    a.DaysRemaining,
			MaxLifespanDays:  a.MaxLifespanDays,
			StatusTier:       string(a.StatusTier),
		})
	}

	// Recommendations look at everything on hand, not just recent purchases
	all, err := h.db.ListBatches(c.Context(), nil)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load inventory")
	}
	views := engine.ReconcileBatches(all, now)
	critical, warning, good := engine.PartitionByTier(views)
	recommendations := engine.SynthesizeRecommendations(critical, warning, good)

	return Success(c, fiber.Map{
		"predictions":     predictions,
		"recommendations": recommendations,
	})
}
