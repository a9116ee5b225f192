package tax

import (
	"github.com/shopspring/decimal"

	"github.com/jaeho-lee/pensim/internal/domain"
)

// PensionTaxThreshold is the gross annual pension income above which the
// low-flat-rate treatment is lost and the comprehensive/separate choice
// applies (2025).
var PensionTaxThreshold = decimal.NewFromInt(15_000_000)

// SeparateRate is the flat separate-taxation rate (surtax included).
var SeparateRate = decimal.NewFromFloat(0.165)

// pensionDeductionTier is one band of the pension income deduction schedule:
// income up to Ceiling deducts Base plus Rate of the amount above Floor.
type pensionDeductionTier struct {
	Ceiling decimal.Decimal
	Floor   decimal.Decimal
	Base    decimal.Decimal
	Rate    decimal.Decimal
}

// pensionDeductionTiers2025 is the 2025 pension income deduction schedule.
// The final tier's Ceiling is ignored; its deduction is capped by
// pensionDeductionCap.
var pensionDeductionTiers2025 = []pensionDeductionTier{
	{decimal.NewFromInt(3_500_000), decimal.Zero, decimal.Zero, decimal.NewFromInt(1)},
	{decimal.NewFromInt(7_000_000), decimal.NewFromInt(3_500_000), decimal.NewFromInt(3_500_000), decimal.NewFromFloat(0.4)},
	{decimal.NewFromInt(14_000_000), decimal.NewFromInt(7_000_000), decimal.NewFromInt(4_900_000), decimal.NewFromFloat(0.2)},
	{decimal.Zero, decimal.NewFromInt(14_000_000), decimal.NewFromInt(6_300_000), decimal.NewFromFloat(0.1)},
}

var pensionDeductionCap = decimal.NewFromInt(9_000_000)

// PensionIncomeDeduction converts gross annual pension income into the
// statutory deduction. Monotonic non-decreasing, capped at 9,000,000.
func PensionIncomeDeduction(grossPensionIncome decimal.Decimal) decimal.Decimal {
	if grossPensionIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	for i, tier := range pensionDeductionTiers2025 {
		last := i == len(pensionDeductionTiers2025)-1
		if last || grossPensionIncome.LessThanOrEqual(tier.Ceiling) {
			deduction := tier.Base.Add(grossPensionIncome.Sub(tier.Floor).Mul(tier.Rate))
			if last {
				deduction = decimal.Min(deduction, pensionDeductionCap)
			}
			return deduction
		}
	}
	return decimal.Zero // unreachable, schedule is exhaustive
}

// ageRate is a low-flat-rate tier keyed by the recipient's age at withdrawal.
type ageRate struct {
	MaxAge int // exclusive; 0 marks the open-ended top tier
	Rate   decimal.Decimal
}

// PensionTaxDecision reports the outcome of one year's taxation choice.
// Below the threshold no real choice exists and both estimates equal the
// flat tax.
type PensionTaxDecision struct {
	Tax              decimal.Decimal
	ComprehensiveTax decimal.Decimal
	SeparateTax      decimal.Decimal
	Mode             domain.TaxMode
}

// AnnualPensionTaxResolver decides, independently for each payout year, the
// cheapest taxation of the within-limit taxable withdrawal: the age-tiered
// low flat rate when total pension income stays at or under the threshold,
// otherwise the lower of comprehensive and separate taxation.
type AnnualPensionTaxResolver struct {
	Comprehensive *ProgressiveCalculator
	Threshold     decimal.Decimal
	SeparateRate  decimal.Decimal
	AgeRates      []ageRate
}

// NewAnnualPensionTaxResolver2025 wires the resolver with the 2025 schedules.
// Age-tier rates include the local surtax.
func NewAnnualPensionTaxResolver2025() *AnnualPensionTaxResolver {
	return &AnnualPensionTaxResolver{
		Comprehensive: NewComprehensiveCalculator2025(),
		Threshold:     PensionTaxThreshold,
		SeparateRate:  SeparateRate,
		AgeRates: []ageRate{
			{70, decimal.NewFromFloat(0.055)},
			{80, decimal.NewFromFloat(0.044)},
			{0, decimal.NewFromFloat(0.033)},
		},
	}
}

// lowFlatRate returns the age-tier rate for the given age.
func (r *AnnualPensionTaxResolver) lowFlatRate(age int) decimal.Decimal {
	for _, tier := range r.AgeRates {
		if tier.MaxAge == 0 || age < tier.MaxAge {
			return tier.Rate
		}
	}
	return r.AgeRates[len(r.AgeRates)-1].Rate
}

// Resolve picks the taxation mode for one payout year.
//
// The comprehensive estimate is the marginal tax attributable to the current
// withdrawal alone: bracket tax on (total pension income less its deduction,
// plus other comprehensive income) minus bracket tax on the same base
// without the withdrawal. Other income is taxed either way, so only the
// increment counts. Ties between comprehensive and separate resolve to
// separate; do not change the tie-break, downstream reports document it.
func (r *AnnualPensionTaxResolver) Resolve(withinLimitTaxable, otherPensionIncome, otherComprehensiveIncome decimal.Decimal, age int) PensionTaxDecision {
	if withinLimitTaxable.LessThanOrEqual(decimal.Zero) {
		return PensionTaxDecision{Mode: domain.TaxModeNone}
	}

	totalPensionGross := withinLimitTaxable.Add(otherPensionIncome)
	if totalPensionGross.LessThanOrEqual(r.Threshold) {
		flat := withinLimitTaxable.Mul(r.lowFlatRate(age))
		return PensionTaxDecision{
			Tax:              flat,
			ComprehensiveTax: flat,
			SeparateTax:      flat,
			Mode:             domain.TaxModeLowFlatRate,
		}
	}

	baseWith := totalPensionGross.Sub(PensionIncomeDeduction(totalPensionGross)).Add(otherComprehensiveIncome)
	baseWithout := otherPensionIncome.Sub(PensionIncomeDeduction(otherPensionIncome)).Add(otherComprehensiveIncome)
	comprehensive := r.Comprehensive.Tax(baseWith, true).Sub(r.Comprehensive.Tax(baseWithout, true))
	if comprehensive.LessThan(decimal.Zero) {
		comprehensive = decimal.Zero
	}
	separate := withinLimitTaxable.Mul(r.SeparateRate)

	decision := PensionTaxDecision{ComprehensiveTax: comprehensive, SeparateTax: separate}
	if comprehensive.LessThan(separate) {
		decision.Tax = comprehensive
		decision.Mode = domain.TaxModeComprehensive
	} else {
		decision.Tax = separate
		decision.Mode = domain.TaxModeSeparate
	}
	return decision
}
