package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wastenobite/backend/internal/config"
	"github.com/wastenobite/backend/internal/database"
	"github.com/wastenobite/backend/internal/engine"
	"github.com/wastenobite/backend/internal/metrics"
	"github.com/wastenobite/backend/internal/services"
)

// Handler holds all handler dependencies
type Handler struct {
	db          *database.DB
	cfg         *config.Config
	policy      engine.Policy
	collector   *metrics.Collector
	archive     *services.ArchiveService
	reports     *services.ReportService
	ocr         *services.OCRService
	labelParser *services.LabelParser
}

// New creates a new Handler instance. The archive and OCR services are
// optional; endpoints depending on them report unavailability when nil.
func New(db *database.DB, cfg *config.Config, collector *metrics.Collector, archive *services.ArchiveService, ocr *services.OCRService) *Handler {
	return &Handler{
		db:          db,
		cfg:         cfg,
		policy:      engine.Policy{SavingsRate: cfg.SavingsRate, DailyTargetUnits: cfg.DailyTargetUnits},
		collector:   collector,
		archive:     archive,
		reports:     services.NewReportService(),
		ocr:         ocr,
		labelParser: services.NewLabelParser(),
	}
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default to 500
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// APIResponse is a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta contains pagination metadata
type Meta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMeta returns a successful response with pagination
func SuccessWithMeta(c *fiber.Ctx, data interface{}, total, limit, offset int) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}
