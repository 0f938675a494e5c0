package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wastenobite/backend/internal/models"
)

var (
	ErrBatchNotFound     = errors.New("inventory batch not found")
	ErrItemNotFound      = errors.New("no batches found for item")
	ErrInsufficientStock = errors.New("not enough stock to cover the requested quantity")
)

const batchColumns = `
	id, item_name, category, purchase_date, expiry_date,
	storage_temperature, humidity,
	quantity_purchased, quantity_used, quantity_wasted, cost_per_unit,
	freshness_percent, freshness_level, high_risk,
	created_at, updated_at`

// CreateBatch inserts a new purchase lot and fills in the generated fields.
func (db *DB) CreateBatch(ctx context.Context, batch *models.InventoryBatch) error {
	query := `
		INSERT INTO inventory_batches (
			item_name, category, purchase_date, expiry_date,
			storage_temperature, humidity,
			quantity_purchased, quantity_used, quantity_wasted, cost_per_unit,
			freshness_percent, freshness_level, high_risk
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`

	err := db.Pool.QueryRow(ctx, query,
		batch.ItemName, batch.Category, batch.PurchaseDate, batch.ExpiryDate,
		batch.StorageTemperature, batch.Humidity,
		batch.QuantityPurchased, batch.QuantityUsed, batch.QuantityWasted, batch.CostPerUnit,
		batch.FreshnessPercent, batch.FreshnessLevel, batch.HighRisk,
	).Scan(&batch.ID, &batch.CreatedAt, &batch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create inventory batch: %w", err)
	}

	return nil
}

// GetBatchByID returns a single batch
func (db *DB) GetBatchByID(ctx context.Context, id int) (*models.InventoryBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE id = $1`

	batch, err := scanBatch(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get inventory batch: %w", err)
	}

	return batch, nil
}

// ListBatches returns batches matching the given filters, oldest purchase
// first so downstream processing sees a stable order.
func (db *DB) ListBatches(ctx context.Context, params *models.BatchListParams) ([]models.InventoryBatch, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argCount := 0

	if params != nil && params.Search != "" {
		argCount++
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(item_name) LIKE $%d", argCount))
		args = append(args, "%"+strings.ToLower(params.Search)+"%")
	}

	if params != nil && params.PurchasedAfter != nil {
		argCount++
		whereClauses = append(whereClauses, fmt.Sprintf("purchase_date >= $%d", argCount))
		args = append(args, *params.PurchasedAfter)
	}

	query := `SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE ` + strings.Join(whereClauses, " AND ") + `
		ORDER BY purchase_date ASC, id ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory batches: %w", err)
	}
	defer rows.Close()

	var batches []models.InventoryBatch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory batch: %w", err)
		}
		batches = append(batches, *batch)
	}

	return batches, rows.Err()
}

// ApplyUsage consumes quantity from an item's in-stock batches, earliest
// expiry first, inside a single transaction. The whole request fails when the
// item does not have enough stock to cover it.
func (db *DB) ApplyUsage(ctx context.Context, itemName string, quantity float64) error {
	return db.applyFIFO(ctx, itemName, quantity, "quantity_used", time.Time{})
}

// ApplyWaste records wasted quantity the same way and appends one dated waste
// event per batch touched so trend bucketing can see when waste happened.
func (db *DB) ApplyWaste(ctx context.Context, itemName string, quantity float64, recordedAt time.Time) error {
	return db.applyFIFO(ctx, itemName, quantity, "quantity_wasted", recordedAt)
}

func (db *DB) applyFIFO(ctx context.Context, itemName string, quantity float64, column string, recordedAt time.Time) error {
	if column != "quantity_used" && column != "quantity_wasted" {
		return fmt.Errorf("unsupported ledger column %q", column)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the item's in-stock batches in consumption order.
	rows, err := tx.Query(ctx, `
		SELECT id, quantity_purchased - quantity_used - quantity_wasted AS remaining
		FROM inventory_batches
		WHERE LOWER(TRIM(item_name)) = LOWER(TRIM($1))
		  AND quantity_purchased - quantity_used - quantity_wasted > 0
		ORDER BY expiry_date ASC, purchase_date ASC, id ASC
		FOR UPDATE`,
		itemName,
	)
	if err != nil {
		return fmt.Errorf("failed to lock batches for %q: %w", itemName, err)
	}

	type stock struct {
		id        int
		remaining float64
	}
	var stocks []stock
	for rows.Next() {
		var s stock
		if err := rows.Scan(&s.id, &s.remaining); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan batch stock: %w", err)
		}
		stocks = append(stocks, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read batch stock: %w", err)
	}

	if len(stocks) == 0 {
		return ErrItemNotFound
	}

	var available float64
	for _, s := range stocks {
		available += s.remaining
	}
	if quantity > available {
		return ErrInsufficientStock
	}

	left := quantity
	for _, s := range stocks {
		if left <= 0 {
			break
		}
		take := s.remaining
		if take > left {
			take = left
		}

		_, err = tx.Exec(ctx,
			`UPDATE inventory_batches SET `+column+` = `+column+` + $1, updated_at = NOW() WHERE id = $2`,
			take, s.id,
		)
		if err != nil {
			return fmt.Errorf("failed to update batch %d: %w", s.id, err)
		}

		if column == "quantity_wasted" {
			_, err = tx.Exec(ctx, `
				INSERT INTO waste_events (batch_id, item_name, quantity, recorded_at)
				VALUES ($1, $2, $3, $4)`,
				s.id, itemName, take, recordedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to record waste event for batch %d: %w", s.id, err)
			}
		}

		left -= take
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ListWasteEvents returns waste events recorded at or after the given time,
// oldest first.
func (db *DB) ListWasteEvents(ctx context.Context, since time.Time) ([]models.WasteEvent, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, batch_id, item_name, quantity, recorded_at
		FROM waste_events
		WHERE recorded_at >= $1
		ORDER BY recorded_at ASC, id ASC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list waste events: %w", err)
	}
	defer rows.Close()

	var events []models.WasteEvent
	for rows.Next() {
		var e models.WasteEvent
		if err := rows.Scan(&e.ID, &e.BatchID, &e.ItemName, &e.Quantity, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan waste event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func scanBatch(row pgx.Row) (*models.InventoryBatch, error) {
	var b models.InventoryBatch
	err := row.Scan(
		&b.ID, &b.ItemName, &b.Category, &b.PurchaseDate, &b.ExpiryDate,
		&b.StorageTemperature, &b.Humidity,
		&b.QuantityPurchased, &b.QuantityUsed, &b.QuantityWasted, &b.CostPerUnit,
		&b.FreshnessPercent, &b.FreshnessLevel, &b.HighRisk,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
