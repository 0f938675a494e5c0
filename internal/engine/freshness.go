package engine

import (
	"math"
	"time"
)

// Tier is a discrete freshness status derived from the freshness percentage
// and days remaining until expiry.
type Tier string

const (
	TierCritical  Tier = "critical"
	TierWarning   Tier = "warning"
	TierGood      Tier = "good"
	TierExcellent Tier = "excellent"
)

// Assessment is the computed freshness state of a batch at a point in time.
type Assessment struct {
	DaysElapsedSincePurchase int
	MaxLifespanDays          int
	DaysRemaining            int
	FreshnessPercent         int
	StatusTier               Tier

	// Valid is false when either date was missing or unparseable. Invalid
	// assessments carry the sentinel values (percent 0, tier critical) so a
	// single bad record never aborts an aggregation.
	Valid bool
}

// HighRisk reports whether the batch should be flagged at purchase entry.
// The flag is derived once when the purchase is recorded, not recomputed.
func (a Assessment) HighRisk() bool {
	return a.DaysRemaining <= 2
}

// ceilDays returns the number of whole-or-partial days from one instant to
// another, floored at zero.
func ceilDays(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// ScoreFreshness computes a freshness assessment from purchase and expiry
// dates. The percentage is the share of the batch's lifespan still ahead of
// it, so it only ever decreases as now advances and hits 0 at expiry.
func ScoreFreshness(purchaseDate, expiryDate, now time.Time) Assessment {
	if purchaseDate.IsZero() || expiryDate.IsZero() {
		return Assessment{StatusTier: TierCritical}
	}

	maxLifespan := ceilDays(purchaseDate, expiryDate)
	daysRemaining := ceilDays(now, expiryDate)

	denominator := maxLifespan
	if denominator < 1 {
		denominator = 1
	}
	percent := int(math.Round(float64(daysRemaining) / float64(denominator) * 100))
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	elapsed := int(now.Sub(purchaseDate).Hours() / 24)
	if elapsed < 0 {
		elapsed = 0
	}

	return Assessment{
		DaysElapsedSincePurchase: elapsed,
		MaxLifespanDays:          maxLifespan,
		DaysRemaining:            daysRemaining,
		FreshnessPercent:         percent,
		StatusTier:               classifyTier(percent, daysRemaining),
		Valid:                    true,
	}
}

// classifyTier applies the status thresholds. The days-remaining rule takes
// precedence over the percentage bands: anything within two days of expiry is
// critical no matter how high its percentage still is.
func classifyTier(freshnessPercent, daysRemaining int) Tier {
	switch {
	case daysRemaining <= 2 || freshnessPercent <= 20:
		return TierCritical
	case freshnessPercent <= 40:
		return TierWarning
	case freshnessPercent <= 70:
		return TierGood
	default:
		return TierExcellent
	}
}
