package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastenobite/backend/internal/models"
)

func view(name, tier string) models.ItemView {
	return models.ItemView{ItemName: name, StatusTier: tier}
}

func TestSynthesizeRecommendationsAllBuckets(t *testing.T) {
	critical := []models.ItemView{view("Beef", "critical"), view("Banana", "critical"), view("Milk", "critical")}
	warning := []models.ItemView{view("Capsicum", "warning")}
	good := []models.ItemView{view("Carrot", "good"), view("Cinnamon", "excellent")}

	recs := SynthesizeRecommendations(critical, warning, good)
	require.Len(t, recs, 3)

	assert.Equal(t, "Urgent Action Required", recs[0].Title)
	assert.Contains(t, recs[0].Description, "3 items need immediate attention")
	assert.Contains(t, recs[0].Description, "Beef and Banana")
	assert.Equal(t, "high", recs[0].Priority)

	assert.Equal(t, "Freshness Alert", recs[1].Title)
	assert.Contains(t, recs[1].Description, "Capsicum")

	assert.Equal(t, "Optimization Opportunity", recs[2].Title)
	assert.Contains(t, recs[2].Description, "Carrot and Cinnamon")
	assert.Equal(t, "low", recs[2].Priority)
}

func TestSynthesizeRecommendationsSingleCritical(t *testing.T) {
	recs := SynthesizeRecommendations([]models.ItemView{view("Beef", "critical")}, nil, nil)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Description, "1 item need")
	assert.Contains(t, recs[0].Description, "Beef is predicted")
}

func TestSynthesizeRecommendationsEmpty(t *testing.T) {
	assert.Empty(t, SynthesizeRecommendations(nil, nil, nil))
}

func TestSynthesizeRecommendationsDeduplicatesNames(t *testing.T) {
	critical := []models.ItemView{view("Beef", "critical"), view("beef", "critical"), view("Milk", "critical")}

	recs := SynthesizeRecommendations(critical, nil, nil)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Description, "Beef and Milk")
}

func TestSynthesizeRecommendationsDeterministic(t *testing.T) {
	critical := []models.ItemView{view("Beef", "critical")}
	warning := []models.ItemView{view("Milk", "warning")}

	first := SynthesizeRecommendations(critical, warning, nil)
	second := SynthesizeRecommendations(critical, warning, nil)
	assert.Equal(t, first, second)
}

func TestWasteRecommendations(t *testing.T) {
	batches := []models.InventoryBatch{
		wasteBatch("Beef", "Meat", 20, 10, 30), // 50% waste, $300 wasted
		wasteBatch("Rice", "Dry", 100, 1, 1),
	}
	report := AggregateWaste(batches, nil, day(3), DefaultPolicy())

	recs := WasteRecommendations(report)
	require.NotEmpty(t, recs)

	assert.Equal(t, "High Impact Opportunity", recs[0].Title)
	assert.Contains(t, recs[0].Description, "Beef")
	assert.Contains(t, recs[0].Description, "$45.00") // 15% of $300

	titles := make([]string, 0, len(recs))
	for _, r := range recs {
		titles = append(titles, r.Title)
	}
	assert.Contains(t, titles, "General Waste Reduction") // waste cost well above 10%
	assert.Contains(t, titles, "Cost Monitoring")          // more than $100 wasted
}

func TestWasteRecommendationsQuietKitchen(t *testing.T) {
	batches := []models.InventoryBatch{
		wasteBatch("Rice", "Dry", 100, 1, 1), // 1% waste, $1 wasted
	}
	report := AggregateWaste(batches, nil, day(3), DefaultPolicy())

	assert.Empty(t, WasteRecommendations(report))
}
