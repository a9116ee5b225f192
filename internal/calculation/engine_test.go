package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaeho-lee/pensim/internal/domain"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine.Accumulator, "Should initialize accumulation simulator")
	assert.NotNil(t, engine.Payout, "Should initialize payout simulator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Nil logger should fall back to no-op")
}

func TestEngine_RejectsInvalidInput(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name   string
		mutate func(*domain.PlanInput)
	}{
		{"start age after payout start", func(p *domain.PlanInput) { p.StartAge = 65 }},
		{"payout end before payout start", func(p *domain.PlanInput) { p.PayoutEndAge = 55 }},
		{"return at -100%", func(p *domain.PlanInput) { p.PostPayoutReturn = decimal.NewFromInt(-1) }},
		{"negative contribution", func(p *domain.PlanInput) { p.AnnualContribution = decimal.NewFromInt(-1) }},
		{"non-deductible exceeds contribution", func(p *domain.PlanInput) {
			p.NonDeductibleContribution = p.AnnualContribution.Add(decimal.NewFromInt(1))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testPlan()
			tt.mutate(plan)

			result, err := engine.Run(plan)

			assert.Error(t, err, "Should reject invalid input")
			assert.Nil(t, result, "Should not produce a partial result")
		})
	}
}

func TestEngine_BaseScenario(t *testing.T) {
	engine := NewEngine()

	result, err := engine.Run(testPlan())

	require.NoError(t, err)
	assert.True(t, result.EndingAccumulationBalance.GreaterThan(decimal.Zero),
		"Thirty contribution years should accumulate a balance")
	assert.Len(t, result.AccumulationSeries, 30, "One series point per contribution year")
	require.Len(t, result.PayoutLedger, 30, "One ledger row per payout year")

	// End-of-year balances never increase once withdrawals begin.
	prev := result.PayoutLedger[0].EndingBalance
	for _, row := range result.PayoutLedger[1:] {
		assert.True(t, row.EndingBalance.LessThanOrEqual(prev),
			"Year %d balance %s should not exceed prior year %s", row.YearIndex, row.EndingBalance, prev)
		prev = row.EndingBalance
	}

	assert.True(t, result.FirstYearAfterTax.GreaterThan(decimal.Zero), "First-year payout should be positive")
	assert.True(t, result.FirstYearAfterTaxPV.GreaterThan(decimal.Zero), "Present value should be positive")
	assert.True(t, result.FirstYearAfterTaxPV.LessThan(result.FirstYearAfterTax),
		"Discounting over thirty years should shrink the payout")
	assert.False(t, result.Depleted(), "The annuity schedule never exhausts the wallets early")
}

func TestEngine_Deterministic(t *testing.T) {
	engine := NewEngine()

	first, err := engine.Run(testPlan())
	require.NoError(t, err)
	second, err := engine.Run(testPlan())
	require.NoError(t, err)

	assert.Equal(t, first, second, "Identical inputs must produce identical results")
}

func TestEngine_ZeroContributionIsDegenerate(t *testing.T) {
	engine := NewEngine()
	plan := testPlan()
	plan.AnnualContribution = decimal.Zero

	result, err := engine.Run(plan)

	require.NoError(t, err, "A zero balance is a degenerate result, not an error")
	assert.True(t, result.EndingAccumulationBalance.IsZero())
	assert.Empty(t, result.PayoutLedger, "No payout phase without a balance")
}

func TestEngine_LumpSumFlat(t *testing.T) {
	engine := NewEngine()
	plan := testPlan()

	result, err := engine.Run(plan)
	require.NoError(t, err)

	// With no tax-free principal the whole balance is taxable at the flat
	// other-income rate.
	assert.True(t, result.LumpSum.TaxableAmount.Equal(result.EndingAccumulationBalance),
		"Taxable lump sum should be the full ending balance")
	expectedTax := result.EndingAccumulationBalance.Mul(decimal.NewFromFloat(0.165))
	assert.True(t, result.LumpSum.Tax.Equal(expectedTax),
		"Lump-sum tax = %s, want %s", result.LumpSum.Tax, expectedTax)
	assert.True(t, result.LumpSum.AfterTaxAmount.Equal(result.EndingAccumulationBalance.Sub(expectedTax)),
		"After-tax amount should be balance minus tax")
}

func TestEngine_LumpSumExcludesTaxFreePrincipal(t *testing.T) {
	engine := NewEngine()
	plan := testPlan()
	plan.NonDeductibleContribution = decimal.NewFromInt(2_000_000)
	plan.OtherTaxFreePrincipal = decimal.NewFromInt(10_000_000)

	result, err := engine.Run(plan)
	require.NoError(t, err)

	// 2M * 30 years + 10M of other tax-free principal stays out of the base.
	expectedTaxable := result.EndingAccumulationBalance.Sub(decimal.NewFromInt(70_000_000))
	assert.True(t, result.LumpSum.TaxableAmount.Equal(expectedTaxable),
		"Taxable lump sum = %s, want %s", result.LumpSum.TaxableAmount, expectedTaxable)
}

func TestEngine_ServiceYearLumpSumIsCheaperForLongService(t *testing.T) {
	engine := NewEngine()

	flat := testPlan()
	flat.LumpSumStrategy = domain.LumpSumFlat
	serviceYear := testPlan()
	serviceYear.LumpSumStrategy = domain.LumpSumServiceYear

	flatResult, err := engine.Run(flat)
	require.NoError(t, err)
	serviceResult, err := engine.Run(serviceYear)
	require.NoError(t, err)

	assert.True(t, serviceResult.LumpSum.Tax.LessThan(flatResult.LumpSum.Tax),
		"Thirty service years should beat the flat rate: %s vs %s",
		serviceResult.LumpSum.Tax, flatResult.LumpSum.Tax)
}
