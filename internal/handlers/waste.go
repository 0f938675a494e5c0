package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wastenobite/backend/internal/engine"
)

// wasteReport loads the data both halves of the waste analysis need and runs
// the aggregation once per request.
func (h *Handler) wasteReport(c *fiber.Ctx) (engine.WasteReport, error) {
	now := time.Now()

	batches, err := h.db.ListBatches(c.Context(), nil)
	if err != nil {
		return engine.WasteReport{}, err
	}

	events, err := h.db.ListWasteEvents(c.Context(), now.AddDate(0, 0, -7))
	if err != nil {
		return engine.WasteReport{}, err
	}

	return engine.AggregateWaste(batches, events, now, h.policy), nil
}

// WasteDistribution returns each category's share of total wasted units.
func (h *Handler) WasteDistribution(c *fiber.Ctx) error {
	report, err := h.wasteReport(c)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to build waste report")
	}
	return Success(c, report.Distribution)
}

// WasteTrends returns the trailing-week daily waste series with the target line.
func (h *Handler) WasteTrends(c *fiber.Ctx) error {
	report, err := h.wasteReport(c)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to build waste report")
	}
	return Success(c, report.Trends)
}

// WasteItemAnalysis returns the per-item waste profiles, highest waste first.
func (h *Handler) WasteItemAnalysis(c *fiber.Ctx) error {
	report, err := h.wasteReport(c)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to build waste report")
	}
	return Success(c, report.ItemAnalysis)
}

// WasteCostAnalysis returns the financial rollup of waste.
func (h *Handler) WasteCostAnalysis(c *fiber.Ctx) error {
	report, err := h.wasteReport(c)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to build waste report")
	}
	return Success(c, report.CostSummary)
}

// WasteSummary returns the headline waste statistics.
func (h *Handler) WasteSummary(c *fiber.Ctx) error {
	report, err := h.wasteReport(c)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to build waste report")
	}
	return Success(c, report.Summary)
}

// WasteRecommendations returns reduction advice derived from the report.
func (h *Handler) WasteRecommendations(c *fiber.Ctx) error {
	report, err := h.wasteReport(c)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to build waste report")
	}
	return Success(c, engine.WasteRecommendations(report))
}
