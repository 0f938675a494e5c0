package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the connection pool
type DB struct {
	Pool *pgxpool.Pool
}

// Connect creates a new database connection pool
func Connect(databaseURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	// Configure pool
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	log.Println("Database connected successfully")
	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}

// migrations are applied in version order and recorded in schema_migrations.
var migrations = map[int]string{
	1: `
		CREATE TABLE IF NOT EXISTS inventory_batches (
			id SERIAL PRIMARY KEY,
			item_name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			purchase_date TIMESTAMPTZ NOT NULL,
			expiry_date TIMESTAMPTZ NOT NULL,
			storage_temperature DOUBLE PRECISION NOT NULL DEFAULT 0,
			humidity DOUBLE PRECISION NOT NULL DEFAULT 0,
			quantity_purchased DOUBLE PRECISION NOT NULL CHECK (quantity_purchased >= 0),
			quantity_used DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (quantity_used >= 0),
			quantity_wasted DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (quantity_wasted >= 0),
			cost_per_unit DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (cost_per_unit >= 0),
			freshness_percent INT NOT NULL DEFAULT 0,
			freshness_level TEXT NOT NULL DEFAULT '',
			high_risk BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (quantity_used + quantity_wasted <= quantity_purchased)
		);

		CREATE INDEX IF NOT EXISTS idx_inventory_batches_item_name
			ON inventory_batches (LOWER(TRIM(item_name)));
		CREATE INDEX IF NOT EXISTS idx_inventory_batches_purchase_date
			ON inventory_batches (purchase_date);
		CREATE INDEX IF NOT EXISTS idx_inventory_batches_expiry_date
			ON inventory_batches (expiry_date);
	`,
	2: `
		CREATE TABLE IF NOT EXISTS waste_events (
			id SERIAL PRIMARY KEY,
			batch_id INT NOT NULL REFERENCES inventory_batches(id) ON DELETE CASCADE,
			item_name TEXT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL CHECK (quantity > 0),
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_waste_events_recorded_at
			ON waste_events (recorded_at);
	`,
}

// RunMigrations runs all database migrations
func RunMigrations(db *DB) error {
	ctx := context.Background()

	// Create migrations table if it doesn't exist
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Run each migration in order
	for version := 1; version <= len(migrations); version++ {
		migration, ok := migrations[version]
		if !ok {
			return fmt.Errorf("missing migration version %d", version)
		}

		var exists bool
		err := db.Pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", version, err)
		}

		if exists {
			continue
		}

		log.Printf("Applying migration %d...", version)
		_, err = db.Pool.Exec(ctx, migration)
		if err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", version, err)
		}

		_, err = db.Pool.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)",
			version,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", version, err)
		}
	}

	return nil
}
