package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/wastenobite/backend/internal/config"
	"github.com/wastenobite/backend/internal/database"
	"github.com/wastenobite/backend/internal/handlers"
	"github.com/wastenobite/backend/internal/metrics"
	"github.com/wastenobite/backend/internal/middleware"
	"github.com/wastenobite/backend/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Metrics
	collector := metrics.NewCollector()

	// Report archive (optional, report endpoints return 503 without it)
	var archive *services.ArchiveService
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		archive, err = services.NewArchiveService(
			cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize report archive: %v", err)
			archive = nil
		} else if err := archive.EnsureBucket(context.Background()); err != nil {
			log.Printf("Warning: Failed to ensure report bucket exists: %v", err)
		}
	} else {
		log.Println("Report archive not configured, report export disabled")
	}

	// OCR for label scanning (optional, scan endpoint returns 503 without it)
	ocrService, err := services.NewOCRService()
	if err != nil {
		log.Printf("Warning: Failed to initialize OCR service: %v", err)
		ocrService = nil
	} else {
		defer ocrService.Close()
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, collector, archive, ocrService)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Metrics exposition
	app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))

	// API routes (authenticated)
	api := app.Group("/api", middleware.AuthRequired(cfg))

	// Inventory routes
	inventory := api.Group("/inventory")
	inventory.Get("/", h.ListInventory)
	inventory.Post("/", h.CreateBatch)
	inventory.Post("/usage", h.RecordUsage)
	inventory.Post("/waste", h.RecordWaste)
	inventory.Post("/scan", h.ScanLabel)
	inventory.Get("/expiring", h.ExpiringItems)

	// Spoilage routes
	api.Get("/spoilage/predictions", h.SpoilagePredictions)

	// Waste analysis routes
	waste := api.Group("/waste")
	waste.Get("/distribution", h.WasteDistribution)
	waste.Get("/trends", h.WasteTrends)
	waste.Get("/item-analysis", h.WasteItemAnalysis)
	waste.Get("/cost-analysis", h.WasteCostAnalysis)
	waste.Get("/summary", h.WasteSummary)
	waste.Get("/recommendations", h.WasteRecommendations)

	// Report routes
	reports := api.Group("/reports")
	reports.Post("/inventory", h.GenerateInventoryReport)
	reports.Get("/", h.ListReports)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
