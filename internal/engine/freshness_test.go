package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestScoreFreshnessAtExpiry(t *testing.T) {
	a := ScoreFreshness(day(0), day(3), day(3))

	require.True(t, a.Valid)
	assert.Equal(t, 3, a.MaxLifespanDays)
	assert.Equal(t, 0, a.DaysRemaining)
	assert.Equal(t, 0, a.FreshnessPercent)
	assert.Equal(t, TierCritical, a.StatusTier)
}

func TestScoreFreshnessPastExpiry(t *testing.T) {
	a := ScoreFreshness(day(0), day(3), day(10))

	assert.Equal(t, 0, a.DaysRemaining)
	assert.Equal(t, 0, a.FreshnessPercent)
	assert.Equal(t, TierCritical, a.StatusTier)
}

// A beef batch purchased on day 0 with a three-day lifespan, looked at on day
// 2: one day and 33% remain, but the two-days-to-expiry rule overrides the
// percentage bands and forces critical.
func TestScoreFreshnessDaysRemainingOverride(t *testing.T) {
	a := ScoreFreshness(day(0), day(3), day(2))

	assert.Equal(t, 3, a.MaxLifespanDays)
	assert.Equal(t, 1, a.DaysRemaining)
	assert.Equal(t, 33, a.FreshnessPercent)
	assert.Equal(t, TierCritical, a.StatusTier)

	// High percentage, still within two days of expiry.
	b := ScoreFreshness(day(0), day(3), day(1))
	assert.Equal(t, 67, b.FreshnessPercent)
	assert.Equal(t, TierCritical, b.StatusTier)
}

func TestScoreFreshnessTiers(t *testing.T) {
	purchase := day(0)
	expiry := day(10)

	tests := []struct {
		now  time.Time
		tier Tier
	}{
		{day(0), TierExcellent}, // 100%
		{day(4), TierGood},      // 60%
		{day(7), TierWarning},   // 30%
		{day(9), TierCritical},  // 1 day left
	}
	for _, tt := range tests {
		a := ScoreFreshness(purchase, expiry, tt.now)
		assert.Equal(t, tt.tier, a.StatusTier, "now=%v percent=%d remaining=%d", tt.now, a.FreshnessPercent, a.DaysRemaining)
	}
}

func TestScoreFreshnessMonotonic(t *testing.T) {
	purchase := day(0)
	expiry := day(14)

	previous := 101
	for h := 0; h <= 15*24; h += 6 {
		now := purchase.Add(time.Duration(h) * time.Hour)
		a := ScoreFreshness(purchase, expiry, now)
		require.LessOrEqual(t, a.FreshnessPercent, previous,
			"freshness rose as time advanced (hour %d)", h)
		previous = a.FreshnessPercent
	}

	final := ScoreFreshness(purchase, expiry, expiry.AddDate(0, 0, 1))
	assert.Equal(t, 0, final.FreshnessPercent)
}

func TestScoreFreshnessExpiryBeforePurchase(t *testing.T) {
	a := ScoreFreshness(day(5), day(3), day(5))

	assert.Equal(t, 0, a.MaxLifespanDays)
	assert.Equal(t, 0, a.DaysRemaining)
	assert.Equal(t, 0, a.FreshnessPercent)
	assert.Equal(t, TierCritical, a.StatusTier)
}

func TestScoreFreshnessInvalidDates(t *testing.T) {
	for _, a := range []Assessment{
		ScoreFreshness(time.Time{}, day(3), day(0)),
		ScoreFreshness(day(0), time.Time{}, day(0)),
		ScoreFreshness(time.Time{}, time.Time{}, day(0)),
	} {
		assert.False(t, a.Valid)
		assert.Equal(t, 0, a.FreshnessPercent)
		assert.Equal(t, TierCritical, a.StatusTier)
	}
}

func TestHighRiskFlag(t *testing.T) {
	assert.True(t, ScoreFreshness(day(0), day(2), day(0)).HighRisk())
	assert.True(t, ScoreFreshness(day(0), day(10), day(8)).HighRisk())
	assert.False(t, ScoreFreshness(day(0), day(10), day(0)).HighRisk())
}

func TestDaysElapsedSincePurchase(t *testing.T) {
	a := ScoreFreshness(day(0), day(10), day(4))
	assert.Equal(t, 4, a.DaysElapsedSincePurchase)

	// Clock behind the purchase date never goes negative.
	b := ScoreFreshness(day(5), day(10), day(3))
	assert.Equal(t, 0, b.DaysElapsedSincePurchase)
}
