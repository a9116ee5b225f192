package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jaeho-lee/pensim/internal/domain"
)

func TestAccumulationSimulator_ZeroYears(t *testing.T) {
	sim := NewAccumulationSimulator()

	balance, series := sim.Project(60, 60, decimal.NewFromInt(6_000_000), decimal.NewFromFloat(0.06), domain.TimingEndOfYear)

	assert.True(t, balance.IsZero(), "Zero contribution years should produce a zero balance")
	assert.Empty(t, series, "Zero contribution years should produce an empty series")
}

func TestAccumulationSimulator_ZeroReturnIsSumOfContributions(t *testing.T) {
	sim := NewAccumulationSimulator()

	balance, series := sim.Project(30, 33, decimal.NewFromInt(100), decimal.Zero, domain.TimingEndOfYear)

	assert.True(t, balance.Equal(decimal.NewFromInt(300)), "Balance = %s, want 300", balance)
	assert.Len(t, series, 3, "Should record one point per contribution year")
	assert.Equal(t, 31, series[0].Age, "First point is recorded after the first year")
	assert.Equal(t, 33, series[2].Age, "Last point lands at payout start age")
	assert.True(t, series[1].Balance.Equal(decimal.NewFromInt(200)), "Mid-series balance = %s, want 200", series[1].Balance)
}

func TestAccumulationSimulator_StartOfYearTiming(t *testing.T) {
	sim := NewAccumulationSimulator()

	// Start-of-year: contributions earn the year's growth.
	// Year 1: (0+100)*1.1 = 110; year 2: (110+100)*1.1 = 231.
	balance, series := sim.Project(30, 32, decimal.NewFromInt(100), decimal.NewFromFloat(0.1), domain.TimingStartOfYear)

	assert.True(t, balance.Equal(decimal.NewFromInt(231)), "Balance = %s, want 231", balance)
	assert.True(t, series[0].Balance.Equal(decimal.NewFromInt(110)), "First-year balance = %s, want 110", series[0].Balance)
}

func TestAccumulationSimulator_EndOfYearTiming(t *testing.T) {
	sim := NewAccumulationSimulator()

	// End-of-year: contributions are credited after growth.
	// Year 1: 0*1.1+100 = 100; year 2: 100*1.1+100 = 210.
	balance, _ := sim.Project(30, 32, decimal.NewFromInt(100), decimal.NewFromFloat(0.1), domain.TimingEndOfYear)

	assert.True(t, balance.Equal(decimal.NewFromInt(210)), "Balance = %s, want 210", balance)
}

func TestAccumulationSimulator_StartOfYearBeatsEndOfYear(t *testing.T) {
	sim := NewAccumulationSimulator()
	contribution := decimal.NewFromInt(6_000_000)
	preReturn := decimal.NewFromFloat(0.06)

	startBalance, _ := sim.Project(30, 60, contribution, preReturn, domain.TimingStartOfYear)
	endBalance, _ := sim.Project(30, 60, contribution, preReturn, domain.TimingEndOfYear)

	assert.True(t, startBalance.GreaterThan(endBalance),
		"Earlier contributions should compound to more: %s vs %s", startBalance, endBalance)
}
