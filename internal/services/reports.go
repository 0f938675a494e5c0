package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/wastenobite/backend/internal/models"
)

// ReportService renders inventory and waste snapshots as CSV for export
// into the report archive.
type ReportService struct{}

// NewReportService creates a new report service
func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildInventoryCSV renders reconciled item views as a CSV document.
func (s *ReportService) BuildInventoryCSV(views []models.ItemView, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"item_name", "category", "quantity", "freshness_percent", "status",
		"days_remaining", "max_lifespan_days", "expiry_date", "cost_per_unit", "in_stock",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, v := range views {
		inStock := "yes"
		if v.StockStatus {
			inStock = "no"
		}
		record := []string{
			v.ItemName,
			v.Category,
			strconv.FormatFloat(v.Quantity, 'f', 2, 64),
			strconv.Itoa(v.FreshnessPercent),
			v.StatusTier,
			strconv.Itoa(v.DaysRemaining),
			strconv.Itoa(v.MaxLifespanDays),
			v.ExpiryDate.Format("2006-01-02"),
			strconv.FormatFloat(v.CostPerUnit, 'f', 2, 64),
			inStock,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	// Trailing metadata row keeps the export self-describing
	if err := w.Write([]string{"generated_at", generatedAt.UTC().Format(time.RFC3339)}); err != nil {
		return nil, fmt.Errorf("failed to write CSV footer: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// BuildWasteCSV renders the per-item waste analysis as a CSV document.
func (s *ReportService) BuildWasteCSV(analysis []models.ItemWasteAnalysis, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"item_name", "category", "waste_percentage", "waste_quantity",
		"cost_wasted", "risk_score", "waste_level",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range analysis {
		record := []string{
			a.ItemName,
			a.Category,
			strconv.FormatFloat(a.WastePercentage, 'f', 1, 64),
			strconv.FormatFloat(a.WasteQuantity, 'f', 2, 64),
			strconv.FormatFloat(a.CostWasted, 'f', 2, 64),
			strconv.FormatFloat(a.RiskScore, 'f', 2, 64),
			a.WasteLevel,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	if err := w.Write([]string{"generated_at", generatedAt.UTC().Format(time.RFC3339)}); err != nil {
		return nil, fmt.Errorf("failed to write CSV footer: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportKey builds the archive object key for a report generated now.
func ReportKey(kind string, generatedAt time.Time) string {
	return fmt.Sprintf("reports/%s-%s.csv", kind, generatedAt.UTC().Format("20060102-150405"))
}
