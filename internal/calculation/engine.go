package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jaeho-lee/pensim/internal/domain"
	"github.com/jaeho-lee/pensim/internal/tax"
)

// Engine orchestrates one full simulation: validation, accumulation, payout,
// and the lump-sum alternative. A run is a pure function of its PlanInput;
// independent runs may execute concurrently.
type Engine struct {
	Accumulator *AccumulationSimulator
	Payout      *PayoutSimulator
	Logger      Logger
}

// NewEngine creates a calculation engine with the 2025 schedules and a no-op
// logger.
func NewEngine() *Engine {
	return &Engine{
		Accumulator: NewAccumulationSimulator(),
		Payout:      NewPayoutSimulator(),
		Logger:      NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// Run executes the full simulation for one plan. Invalid inputs are rejected
// before any computation; a depleted or zero-balance outcome is reported as
// a normal result with a truncated or empty ledger.
func (e *Engine) Run(input *domain.PlanInput) (*domain.SimulationResult, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan input: %w", err)
	}

	endingBalance, series := e.Accumulator.Project(
		input.StartAge, input.PayoutStartAge,
		input.AnnualContribution, input.PrePayoutReturn, input.ContributionTiming)
	e.Logger.Debugf("accumulation complete: %d years, ending balance %s",
		len(series), endingBalance.StringFixed(0))

	result := &domain.SimulationResult{
		Input:                     *input,
		EndingAccumulationBalance: endingBalance,
		AccumulationSeries:        series,
	}

	if endingBalance.LessThanOrEqual(decimal.Zero) {
		e.Logger.Warnf("ending accumulation balance is %s; payout phase skipped", endingBalance.StringFixed(0))
		return result, nil
	}

	result.PayoutLedger = e.Payout.Simulate(input, endingBalance)
	result.LumpSum = e.lumpSumAlternative(input, endingBalance)
	e.summarize(result)
	return result, nil
}

// lumpSumAlternative prices a one-time full withdrawal of the ending
// balance. Only the portion beyond the tax-free principal is taxable.
func (e *Engine) lumpSumAlternative(input *domain.PlanInput, endingBalance decimal.Decimal) domain.LumpSumAlternative {
	taxFree := input.NonDeductibleContribution.
		Mul(decimal.NewFromInt(int64(input.ContributionYears()))).
		Add(input.OtherTaxFreePrincipal)
	taxableAmount := endingBalance.Sub(taxFree)
	if taxableAmount.LessThan(decimal.Zero) {
		taxableAmount = decimal.Zero
	}

	calc := tax.NewLumpSumCalculator(input.LumpSumStrategy)
	lumpTax := calc.Tax(taxableAmount, input.ContributionYears())

	return domain.LumpSumAlternative{
		TaxableAmount:  taxableAmount,
		Tax:            lumpTax,
		AfterTaxAmount: endingBalance.Sub(lumpTax),
	}
}

// summarize derives the result's scalar totals from the ledger, including
// the inflation-discounted present value of the first year's after-tax
// payout.
func (e *Engine) summarize(result *domain.SimulationResult) {
	for _, row := range result.PayoutLedger {
		result.TotalWithdrawn = result.TotalWithdrawn.Add(row.GrossWithdrawal)
		result.TotalTaxPaid = result.TotalTaxPaid.Add(row.TotalTax)
		result.TotalAfterTax = result.TotalAfterTax.Add(row.AfterTax)
	}
	if len(result.PayoutLedger) == 0 {
		return
	}

	result.FirstYearAfterTax = result.PayoutLedger[0].AfterTax
	yearsToDiscount := result.Input.ContributionYears()
	discount := decimal.NewFromInt(1).Add(result.Input.InflationRate).
		Pow(decimal.NewFromInt(int64(yearsToDiscount)))
	if discount.GreaterThan(decimal.Zero) {
		result.FirstYearAfterTaxPV = result.FirstYearAfterTax.Div(discount)
	}
}
