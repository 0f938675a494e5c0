package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/wastenobite/backend/internal/config"
	"github.com/wastenobite/backend/internal/database"
	"github.com/wastenobite/backend/internal/engine"
	"github.com/wastenobite/backend/internal/models"
)

// seedItem describes one demo batch relative to the seeding day.
type seedItem struct {
	Name             string
	Category         string
	PurchasedDaysAgo int
	LifespanDays     int
	Quantity         float64
	CostPerUnit      float64
	Used             float64
	Wasted           float64
	WastedDaysAgo    int
}

// Demo kitchen stocked the way a small restaurant's walk-in looks midweek.
var seedItems = []seedItem{
	{Name: "Apple", Category: "Fruit", PurchasedDaysAgo: 5, LifespanDays: 14, Quantity: 40, CostPerUnit: 0.6, Used: 12, Wasted: 3, WastedDaysAgo: 2},
	{Name: "Banana", Category: "Fruit", PurchasedDaysAgo: 3, LifespanDays: 6, Quantity: 30, CostPerUnit: 0.3, Used: 10, Wasted: 5, WastedDaysAgo: 1},
	{Name: "Beef", Category: "Meat", PurchasedDaysAgo: 2, LifespanDays: 4, Quantity: 12, CostPerUnit: 9.5, Used: 4, Wasted: 1, WastedDaysAgo: 1},
	{Name: "Broccoli", Category: "Vegetable", PurchasedDaysAgo: 4, LifespanDays: 7, Quantity: 18, CostPerUnit: 1.8, Used: 6, Wasted: 4, WastedDaysAgo: 3},
	{Name: "Capsicum", Category: "Vegetable", PurchasedDaysAgo: 6, LifespanDays: 10, Quantity: 20, CostPerUnit: 1.2, Used: 8, Wasted: 2, WastedDaysAgo: 4},
	{Name: "Carrot", Category: "Vegetable", PurchasedDaysAgo: 7, LifespanDays: 21, Quantity: 25, CostPerUnit: 0.5, Used: 10},
	{Name: "Cauliflower", Category: "Vegetable", PurchasedDaysAgo: 4, LifespanDays: 7, Quantity: 10, CostPerUnit: 2.2, Used: 3, Wasted: 2, WastedDaysAgo: 2},
	{Name: "Chicken", Category: "Meat", PurchasedDaysAgo: 1, LifespanDays: 3, Quantity: 15, CostPerUnit: 6.0, Used: 5},
	{Name: "Cinnamon", Category: "Spice", PurchasedDaysAgo: 30, LifespanDays: 365, Quantity: 5, CostPerUnit: 3.5, Used: 1},
	{Name: "Corn", Category: "Vegetable", PurchasedDaysAgo: 3, LifespanDays: 5, Quantity: 22, CostPerUnit: 0.8, Used: 7, Wasted: 3, WastedDaysAgo: 1},
	{Name: "Cucumber", Category: "Vegetable", PurchasedDaysAgo: 5, LifespanDays: 9, Quantity: 16, CostPerUnit: 0.7, Used: 5, Wasted: 1, WastedDaysAgo: 5},
	{Name: "Egg", Category: "Dairy", PurchasedDaysAgo: 6, LifespanDays: 28, Quantity: 60, CostPerUnit: 0.25, Used: 30, Wasted: 10, WastedDaysAgo: 2},
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview the seed data without writing to database")
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()

	if *dryRun {
		log.Println("DRY RUN - No changes will be made")
		for _, item := range seedItems {
			log.Printf("  %-12s %-10s qty=%.0f used=%.0f wasted=%.0f lifespan=%dd",
				item.Name, item.Category, item.Quantity, item.Used, item.Wasted, item.LifespanDays)
		}
		return
	}

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

	ctx := context.Background()
	now := time.Now()
	created := 0

	for _, item := range seedItems {
		purchaseDate := now.AddDate(0, 0, -item.PurchasedDaysAgo)
		expiryDate := purchaseDate.AddDate(0, 0, item.LifespanDays)

		// Snapshot freshness as of the purchase day, the same way the
		// purchase endpoint does
		assessment := engine.ScoreFreshness(purchaseDate, expiryDate, purchaseDate)

		batch := &models.InventoryBatch{
			ItemName:          item.Name,
			Category:          item.Category,
			PurchaseDate:      purchaseDate,
			ExpiryDate:        expiryDate,
			QuantityPurchased: item.Quantity,
			CostPerUnit:       item.CostPerUnit,
			FreshnessPercent:  assessment.FreshnessPercent,
			FreshnessLevel:    string(assessment.StatusTier),
			HighRisk:          assessment.HighRisk(),
		}

		if err := db.CreateBatch(ctx, batch); err != nil {
			log.Fatalf("Failed to seed %s: %v", item.Name, err)
		}
		created++

		if item.Used > 0 {
			if err := db.ApplyUsage(ctx, item.Name, item.Used); err != nil {
				log.Fatalf("Failed to seed usage for %s: %v", item.Name, err)
			}
		}

		if item.Wasted > 0 {
			recordedAt := now.AddDate(0, 0, -item.WastedDaysAgo)
			if err := db.ApplyWaste(ctx, item.Name, item.Wasted, recordedAt); err != nil {
				log.Fatalf("Failed to seed waste for %s: %v", item.Name, err)
			}
		}
	}

	log.Printf("Seed complete: %d batches created", created)
}
