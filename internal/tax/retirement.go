package tax

import (
	"github.com/shopspring/decimal"

	"github.com/jaeho-lee/pensim/internal/domain"
)

// serviceYearTier is one band of the years-of-service deduction: service up
// to Ceiling years deducts Base plus PerYear for each year beyond Floor.
type serviceYearTier struct {
	Ceiling int
	Floor   int
	Base    decimal.Decimal
	PerYear decimal.Decimal
}

var serviceYearTiers = []serviceYearTier{
	{5, 0, decimal.Zero, decimal.NewFromInt(1_000_000)},
	{10, 5, decimal.NewFromInt(5_000_000), decimal.NewFromInt(2_000_000)},
	{20, 10, decimal.NewFromInt(15_000_000), decimal.NewFromInt(2_500_000)},
	{0, 20, decimal.NewFromInt(40_000_000), decimal.NewFromInt(3_000_000)},
}

// convertedSalaryTier is one band of the converted-salary deduction: salary
// up to Ceiling deducts Base plus Rate of the amount above Floor.
type convertedSalaryTier struct {
	Ceiling decimal.Decimal
	Floor   decimal.Decimal
	Base    decimal.Decimal
	Rate    decimal.Decimal
}

var convertedSalaryTiers = []convertedSalaryTier{
	{decimal.NewFromInt(8_000_000), decimal.Zero, decimal.Zero, decimal.NewFromInt(1)},
	{decimal.NewFromInt(70_000_000), decimal.NewFromInt(8_000_000), decimal.NewFromInt(8_000_000), decimal.NewFromFloat(0.6)},
	{decimal.NewFromInt(100_000_000), decimal.NewFromInt(70_000_000), decimal.NewFromInt(45_200_000), decimal.NewFromFloat(0.55)},
	{decimal.NewFromInt(300_000_000), decimal.NewFromInt(100_000_000), decimal.NewFromInt(61_700_000), decimal.NewFromFloat(0.45)},
	{decimal.Zero, decimal.NewFromInt(300_000_000), decimal.NewFromInt(151_700_000), decimal.NewFromFloat(0.35)},
}

// ServiceYearDeduction returns the years-of-service deduction for the given
// contribution-year count.
func ServiceYearDeduction(serviceYears int) decimal.Decimal {
	if serviceYears <= 0 {
		return decimal.Zero
	}
	for i, tier := range serviceYearTiers {
		if i == len(serviceYearTiers)-1 || serviceYears <= tier.Ceiling {
			return tier.Base.Add(tier.PerYear.Mul(decimal.NewFromInt(int64(serviceYears - tier.Floor))))
		}
	}
	return decimal.Zero // unreachable, schedule is exhaustive
}

// ConvertedSalaryDeduction returns the deduction applied to the annualized
// converted salary in the service-year lump-sum schedule.
func ConvertedSalaryDeduction(convertedSalary decimal.Decimal) decimal.Decimal {
	if convertedSalary.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	for i, tier := range convertedSalaryTiers {
		if i == len(convertedSalaryTiers)-1 || convertedSalary.LessThanOrEqual(tier.Ceiling) {
			return tier.Base.Add(convertedSalary.Sub(tier.Floor).Mul(tier.Rate))
		}
	}
	return decimal.Zero // unreachable, schedule is exhaustive
}

// LumpSumCalculator computes the tax on a one-time full withdrawal of the
// taxable balance. Two statutory treatments exist; the plan selects one.
type LumpSumCalculator struct {
	Strategy        domain.LumpSumStrategy
	OtherIncomeRate decimal.Decimal
	Progressive     *ProgressiveCalculator
}

// NewLumpSumCalculator returns a calculator for the given strategy using the
// 2025 schedules.
func NewLumpSumCalculator(strategy domain.LumpSumStrategy) *LumpSumCalculator {
	return &LumpSumCalculator{
		Strategy:        strategy,
		OtherIncomeRate: OtherIncomeRate,
		Progressive:     NewComprehensiveCalculator2025(),
	}
}

// Tax returns the lump-sum tax on taxableLumpSum given the contribution-year
// count. Non-positive amounts are taxed at zero.
func (c *LumpSumCalculator) Tax(taxableLumpSum decimal.Decimal, serviceYears int) decimal.Decimal {
	if taxableLumpSum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if c.Strategy == domain.LumpSumServiceYear && serviceYears > 0 {
		return c.serviceYearTax(taxableLumpSum, serviceYears)
	}
	return taxableLumpSum.Mul(c.OtherIncomeRate)
}

// serviceYearTax applies the retirement-income schedule: deduct the
// years-of-service allowance, annualize the remainder over the service
// years, deduct the converted-salary allowance, tax the per-year remainder
// progressively (no surtax), scale back by the service years, and apply the
// surtax once at the end. Negative intermediates floor to zero.
func (c *LumpSumCalculator) serviceYearTax(taxableLumpSum decimal.Decimal, serviceYears int) decimal.Decimal {
	years := decimal.NewFromInt(int64(serviceYears))

	afterService := taxableLumpSum.Sub(ServiceYearDeduction(serviceYears))
	if afterService.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	converted := afterService.Div(years)
	perYearBase := converted.Sub(ConvertedSalaryDeduction(converted))
	if perYearBase.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	national := c.Progressive.Tax(perYearBase, false).Mul(years)
	return national.Mul(decimal.NewFromInt(1).Add(SurtaxRate))
}
