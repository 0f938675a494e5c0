package services

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastenobite/backend/internal/models"
)

func TestBuildInventoryCSV(t *testing.T) {
	svc := NewReportService()
	generated := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	views := []models.ItemView{
		{
			ItemName:         "Chicken",
			Category:         "meat",
			Quantity:         8.5,
			FreshnessPercent: 45,
			StatusTier:       "warning",
			DaysRemaining:    2,
			MaxLifespanDays:  4,
			ExpiryDate:       time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			CostPerUnit:      6,
		},
		{
			ItemName:    "Carrot",
			Category:    "vegetable",
			StockStatus: true,
			ExpiryDate:  time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
			CostPerUnit: 0.5,
		},
	}

	data, err := svc.BuildInventoryCSV(views, generated)
	require.NoError(t, err)

	records, err := readCSV(t, data)
	require.NoError(t, err)

	// header + 2 items + footer
	require.Len(t, records, 4)
	assert.Equal(t, "item_name", records[0][0])

	chicken := records[1]
	assert.Equal(t, "Chicken", chicken[0])
	assert.Equal(t, "meat", chicken[1])
	assert.Equal(t, "8.50", chicken[2])
	assert.Equal(t, "45", chicken[3])
	assert.Equal(t, "warning", chicken[4])
	assert.Equal(t, "2026-03-12", chicken[7])
	assert.Equal(t, "yes", chicken[9])

	carrot := records[2]
	assert.Equal(t, "Carrot", carrot[0])
	assert.Equal(t, "no", carrot[9])

	footer := records[3]
	assert.Equal(t, "generated_at", footer[0])
	assert.Equal(t, "2026-03-10T12:00:00Z", footer[1])
}

func TestBuildInventoryCSVEmpty(t *testing.T) {
	svc := NewReportService()

	data, err := svc.BuildInventoryCSV(nil, time.Now())
	require.NoError(t, err)

	records, err := readCSV(t, data)
	require.NoError(t, err)
	require.Len(t, records, 2) // header + footer
}

func TestBuildWasteCSV(t *testing.T) {
	svc := NewReportService()

	analysis := []models.ItemWasteAnalysis{
		{
			ItemName:        "Banana",
			Category:        "fruit",
			WastePercentage: 16.7,
			WasteQuantity:   5,
			CostWasted:      1.5,
			RiskScore:       0.84,
			WasteLevel:      "Medium",
		},
	}

	data, err := svc.BuildWasteCSV(analysis, time.Now())
	require.NoError(t, err)

	records, err := readCSV(t, data)
	require.NoError(t, err)
	require.Len(t, records, 3)

	banana := records[1]
	assert.Equal(t, "Banana", banana[0])
	assert.Equal(t, "16.7", banana[2])
	assert.Equal(t, "5.00", banana[3])
	assert.Equal(t, "Medium", banana[6])
}

// readCSV parses without enforcing a uniform field count, since the footer
// row is shorter than the data rows.
func readCSV(t *testing.T, data []byte) ([][]string, error) {
	t.Helper()
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func TestReportKey(t *testing.T) {
	generated := time.Date(2026, 3, 10, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "reports/inventory-20260310-123045.csv", ReportKey("inventory", generated))
}
