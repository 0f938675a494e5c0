package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wastenobite/backend/internal/engine"
	"github.com/wastenobite/backend/internal/models"
	"github.com/wastenobite/backend/internal/services"
)

// GenerateInventoryReport renders the reconciled inventory purchased within
// the requested window as CSV, stores it in the report archive, and returns
// a short-lived download link.
func (h *Handler) GenerateInventoryReport(c *fiber.Ctx) error {
	if h.archive == nil {
		return Error(c, fiber.StatusServiceUnavailable, "report archive is not configured")
	}

	var req struct {
		Months int `json:"months"`
	}
	// Body is optional; default to one month
	_ = c.BodyParser(&req)
	if req.Months <= 0 {
		req.Months = 1
	}
	if req.Months > 24 {
		return Error(c, fiber.StatusBadRequest, "months cannot exceed 24")
	}

	now := time.Now()
	since := now.AddDate(0, -req.Months, 0)

	batches, err := h.db.ListBatches(c.Context(), &models.BatchListParams{PurchasedAfter: &since})
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load inventory")
	}
	views := engine.ReconcileBatches(batches, now)

	data, err := h.reports.BuildInventoryCSV(views, now)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to render report")
	}

	key := services.ReportKey("inventory", now)
	stored, err := h.archive.StoreReport(c.Context(), key, data, "text/csv")
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to store report")
	}

	url, err := h.archive.PresignedURL(c.Context(), stored.Key, 24*time.Hour)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate download link")
	}

	h.collector.ReportsGenerated.Inc()

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data: fiber.Map{
			"key":          stored.Key,
			"size":         stored.Size,
			"download_url": url,
			"expires_in":   "24h",
		},
	})
}

// ListReports returns the archived report objects.
func (h *Handler) ListReports(c *fiber.Ctx) error {
	if h.archive == nil {
		return Error(c, fiber.StatusServiceUnavailable, "report archive is not configured")
	}

	reports, err := h.archive.ListReports(c.Context(), "reports/")
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list reports")
	}

	return Success(c, reports)
}
