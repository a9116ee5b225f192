// Package tax implements the 2025 Korean income tax schedules used by the
// payout simulation: the comprehensive (progressive) schedule, the pension
// income deduction, the annual pension taxation choice, and the two lump-sum
// withdrawal schedules.
//
// All schedule rates are national rates; the 10% local income tax surtax is
// applied as a multiplier where the statute adds it.
package tax

import "github.com/shopspring/decimal"

// SurtaxRate is the local income tax added on top of national income tax.
var SurtaxRate = decimal.NewFromFloat(0.10)

// OtherIncomeRate is the flat other-income rate (surtax included) applied to
// excess withdrawals and to the flat lump-sum strategy.
var OtherIncomeRate = decimal.NewFromFloat(0.165)

// Bracket is one entry of a progressive schedule: the inclusive upper bound
// of the taxable base it covers, the marginal rate, and the quick deduction
// that collapses the lower brackets into a single subtraction.
type Bracket struct {
	Threshold      decimal.Decimal
	Rate           decimal.Decimal
	QuickDeduction decimal.Decimal
}

// ProgressiveCalculator evaluates a quick-deduction bracket schedule.
// Brackets must be ordered ascending by threshold; the last bracket covers
// everything above the second-to-last threshold regardless of its own
// Threshold value, so the schedule is always exhaustive.
type ProgressiveCalculator struct {
	Brackets []Bracket
}

// NewComprehensiveCalculator2025 returns the comprehensive income tax
// schedule for 2025 (national rates, KRW).
func NewComprehensiveCalculator2025() *ProgressiveCalculator {
	return &ProgressiveCalculator{
		Brackets: []Bracket{
			{decimal.NewFromInt(14_000_000), decimal.NewFromFloat(0.06), decimal.Zero},
			{decimal.NewFromInt(50_000_000), decimal.NewFromFloat(0.15), decimal.NewFromInt(1_260_000)},
			{decimal.NewFromInt(88_000_000), decimal.NewFromFloat(0.24), decimal.NewFromInt(5_760_000)},
			{decimal.NewFromInt(150_000_000), decimal.NewFromFloat(0.35), decimal.NewFromInt(15_440_000)},
			{decimal.NewFromInt(300_000_000), decimal.NewFromFloat(0.38), decimal.NewFromInt(19_940_000)},
			{decimal.NewFromInt(500_000_000), decimal.NewFromFloat(0.40), decimal.NewFromInt(25_940_000)},
			{decimal.NewFromInt(1_000_000_000), decimal.NewFromFloat(0.42), decimal.NewFromInt(35_940_000)},
			{decimal.Zero, decimal.NewFromFloat(0.45), decimal.NewFromInt(65_940_000)}, // unbounded top bracket
		},
	}
}

// Tax returns the tax on taxableBase. Non-positive bases are taxed at zero.
// When includeSurtax is set the national tax is scaled by (1 + SurtaxRate).
// No rounding is performed; display rounding is the caller's concern.
func (pc *ProgressiveCalculator) Tax(taxableBase decimal.Decimal, includeSurtax bool) decimal.Decimal {
	if taxableBase.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	var tax decimal.Decimal
	for i, b := range pc.Brackets {
		if i == len(pc.Brackets)-1 || taxableBase.LessThanOrEqual(b.Threshold) {
			tax = taxableBase.Mul(b.Rate).Sub(b.QuickDeduction)
			break
		}
	}
	if includeSurtax {
		tax = tax.Mul(decimal.NewFromInt(1).Add(SurtaxRate))
	}
	return tax
}
