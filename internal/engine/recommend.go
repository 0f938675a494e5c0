package engine

import (
	"fmt"
	"strings"

	"github.com/wastenobite/backend/internal/models"
)

// SynthesizeRecommendations turns tier-classified inventory into the three
// dashboard action cards: an urgent notice for critical items, a freshness
// alert for warning items and an optimization note for everything still in
// good shape. Each card names the top one or two items; a bucket with no
// items produces no card. The output is fully determined by the input.
func SynthesizeRecommendations(critical, warning, good []models.ItemView) []models.Recommendation {
	var recs []models.Recommendation

	if len(critical) > 0 {
		names := topNames(critical, 2)
		plural := ""
		verb := "is"
		if len(critical) != 1 {
			plural = "s"
			verb = "are"
		}
		recs = append(recs, models.Recommendation{
			Title: "Urgent Action Required",
			Description: fmt.Sprintf(
				"%d item%s need immediate attention. %s %s predicted to spoil within 24 hours. Consider creating daily specials or processing these items immediately.",
				len(critical), plural, names, verb),
			Priority: "high",
		})
	}

	if len(warning) > 0 {
		recs = append(recs, models.Recommendation{
			Title: "Freshness Alert",
			Description: fmt.Sprintf(
				"%s showing declining freshness. Optimal usage window: next 2-3 days. Consider incorporating into tomorrow's menu planning.",
				topNames(warning, 2)),
			Priority: "medium",
		})
	}

	if len(good) > 0 {
		recs = append(recs, models.Recommendation{
			Title: "Optimization Opportunity",
			Description: fmt.Sprintf(
				"%s maintain excellent freshness levels. These items can be used for longer-term menu planning and bulk preparation strategies.",
				topNames(good, 2)),
			Priority: "low",
		})
	}

	return recs
}

// WasteRecommendations derives cost-focused action items from a waste report:
// the single highest-waste item worth attacking first, a FIFO process change
// when waste cost runs above ten percent of inventory value, and a monitoring
// nudge once wasted cost passes a fixed floor.
func WasteRecommendations(report WasteReport) []models.Recommendation {
	var recs []models.Recommendation

	if top, ok := topWasteItem(report.ItemAnalysis); ok {
		savings := top.CostWasted * 0.15
		recs = append(recs, models.Recommendation{
			Title: "High Impact Opportunity",
			Description: fmt.Sprintf(
				"Reduce %s waste by 15%% by implementing portion control. Estimated savings: $%.2f/week",
				top.ItemName, savings),
			Priority: "high",
		})
	}

	if report.CostSummary.WasteCostPercentage > 10 {
		recs = append(recs, models.Recommendation{
			Title: "General Waste Reduction",
			Description: "Implement FIFO (First-In-First-Out) for perishable items, regular stock audits, and menu planning to use items before expiry.",
			Priority: "medium",
		})
	}

	if report.CostSummary.TotalCostWasted > 100 {
		recs = append(recs, models.Recommendation{
			Title: "Cost Monitoring",
			Description: "Set up alerts for high-cost waste events and review purchasing patterns to avoid overstocking expensive items.",
			Priority: "medium",
		})
	}

	return recs
}

// topWasteItem returns the analysis entry with the highest waste percentage
// above the attention threshold. ItemAnalysis is already sorted descending.
func topWasteItem(analysis []models.ItemWasteAnalysis) (models.ItemWasteAnalysis, bool) {
	for _, item := range analysis {
		if item.WastePercentage > 15 {
			return item, true
		}
	}
	return models.ItemWasteAnalysis{}, false
}

// topNames joins the first n distinct item names for use in card text.
func topNames(views []models.ItemView, n int) string {
	seen := make(map[string]bool)
	var names []string
	for _, v := range views {
		key := strings.ToLower(v.ItemName)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, v.ItemName)
		if len(names) == n {
			break
		}
	}
	if len(names) == 0 {
		return "No items"
	}
	return strings.Join(names, " and ")
}
