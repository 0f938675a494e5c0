package handlers

import (
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wastenobite/backend/internal/database"
	"github.com/wastenobite/backend/internal/engine"
	"github.com/wastenobite/backend/internal/models"
)

// ListInventory returns the reconciled item views, optionally filtered by
// search text, normalized category, or freshness status.
func (h *Handler) ListInventory(c *fiber.Ctx) error {
	batches, err := h.db.ListBatches(c.Context(), nil)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load inventory")
	}

	now := time.Now()
	views := engine.ReconcileBatches(batches, now)

	critical, _, _ := engine.PartitionByTier(views)
	h.collector.BatchesCritical.Set(float64(len(critical)))

	filter := models.InventoryFilter{
		Search:   c.Query("search"),
		Category: strings.ToLower(c.Query("category")),
		Status:   strings.ToLower(c.Query("status")),
	}
	views = engine.FilterItemViews(views, filter)

	return SuccessWithMeta(c, views, len(views), len(views), 0)
}

// CreateBatch records a new purchase. Freshness and the high-risk flag are
// snapshotted once here and never recomputed for the stored batch.
func (h *Handler) CreateBatch(c *fiber.Ctx) error {
	var req models.BatchCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.ItemName == "" {
		return Error(c, fiber.StatusBadRequest, "item_name is required")
	}
	if req.QuantityPurchased <= 0 {
		return Error(c, fiber.StatusBadRequest, "quantity_purchased must be positive")
	}
	if req.CostPerUnit < 0 {
		return Error(c, fiber.StatusBadRequest, "cost_per_unit cannot be negative")
	}

	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid purchase_date")
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid expiry_date")
	}
	if expiryDate.Before(purchaseDate) {
		return Error(c, fiber.StatusBadRequest, "expiry_date cannot be before purchase_date")
	}

	assessment := engine.ScoreFreshness(purchaseDate, expiryDate, time.Now())

	batch := &models.InventoryBatch{
		ItemName:           req.ItemName,
		Category:           req.Category,
		PurchaseDate:       purchaseDate,
		ExpiryDate:         expiryDate,
		StorageTemperature: req.StorageTemperature,
		Humidity:           req.Humidity,
		QuantityPurchased:  req.QuantityPurchased,
		CostPerUnit:        req.CostPerUnit,
		FreshnessPercent:   assessment.FreshnessPercent,
		FreshnessLevel:     string(assessment.StatusTier),
		HighRisk:           assessment.HighRisk(),
	}

	if err := h.db.CreateBatch(c.Context(), batch); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create batch")
	}

	h.collector.PurchasesRecorded.Inc()

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    batch,
	})
}

// RecordUsage consumes quantity from an item's earliest-expiring batches.
func (h *Handler) RecordUsage(c *fiber.Ctx) error {
	var req models.QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateQuantityRequest(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.ApplyUsage(c.Context(), req.ItemName, req.Quantity); err != nil {
		return quantityError(c, err, "failed to record usage")
	}

	h.collector.UsageRecorded.Inc()

	return Success(c, fiber.Map{
		"item_name": req.ItemName,
		"quantity":  req.Quantity,
	})
}

// RecordWaste records wasted quantity and the dated waste events behind the
// weekly trend.
func (h *Handler) RecordWaste(c *fiber.Ctx) error {
	var req models.QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateQuantityRequest(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.ApplyWaste(c.Context(), req.ItemName, req.Quantity, time.Now()); err != nil {
		return quantityError(c, err, "failed to record waste")
	}

	category := engine.NormalizeCategory("", req.ItemName)
	h.collector.WasteRecorded.WithLabelValues(string(category)).Inc()

	return Success(c, fiber.Map{
		"item_name": req.ItemName,
		"quantity":  req.Quantity,
	})
}

// ScanLabel runs OCR over an uploaded label photo and returns a purchase
// draft for the operator to confirm. Nothing is written to inventory here.
func (h *Handler) ScanLabel(c *fiber.Ctx) error {
	if h.ocr == nil {
		return Error(c, fiber.StatusServiceUnavailable, "label scanning is not available")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to read uploaded file")
	}

	result, err := h.ocr.ProcessImage(imageBytes)
	if err != nil {
		h.collector.LabelScans.WithLabelValues("ocr_error").Inc()
		return Error(c, fiber.StatusUnprocessableEntity, "failed to extract text from image")
	}

	label, err := h.labelParser.Parse(result.Text)
	if err != nil {
		h.collector.LabelScans.WithLabelValues("unparseable").Inc()
		return Error(c, fiber.StatusUnprocessableEntity, "could not read a product label from the image")
	}

	h.collector.LabelScans.WithLabelValues("success").Inc()

	return Success(c, label)
}

// ExpiringItems returns in-stock items expiring within the window, default
// seven days, soonest first.
func (h *Handler) ExpiringItems(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 {
		return Error(c, fiber.StatusBadRequest, "days must be positive")
	}

	batches, err := h.db.ListBatches(c.Context(), nil)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load inventory")
	}

	views := engine.ReconcileBatches(batches, time.Now())

	// Out-of-stock representatives are not actionable here
	expiring := views[:0:0]
	for _, v := range views {
		if !v.StockStatus && v.DaysRemaining <= days {
			expiring = append(expiring, v)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysRemaining < expiring[j].DaysRemaining
	})

	return Success(c, expiring)
}

func validateQuantityRequest(req *models.QuantityRequest) error {
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.ItemName == "" {
		return errors.New("item_name is required")
	}
	if req.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

func quantityError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, database.ErrItemNotFound):
		return Error(c, fiber.StatusNotFound, "no in-stock batches for that item")
	case errors.Is(err, database.ErrInsufficientStock):
		return Error(c, fiber.StatusConflict, "not enough stock to cover the requested quantity")
	default:
		return Error(c, fiber.StatusInternalServerError, fallback)
	}
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
