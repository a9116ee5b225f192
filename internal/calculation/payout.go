package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/jaeho-lee/pensim/internal/domain"
	"github.com/jaeho-lee/pensim/internal/tax"
)

// Statutory withdrawal-limit parameters: for the first LimitWindowYears
// payout years the tax-favored withdrawal is capped at
// base * LimitMultiplier / (LimitWindowYears + 1 - yearIndex).
const LimitWindowYears = 10

var LimitMultiplier = decimal.NewFromFloat(1.2)

// PayoutSimulator walks the decumulation phase year by year, maintaining the
// non-taxable/taxable wallet pair and emitting one ledger row per year.
type PayoutSimulator struct {
	Resolver        *tax.AnnualPensionTaxResolver
	OtherIncomeRate decimal.Decimal // penalty rate on excess withdrawals
}

// NewPayoutSimulator creates a payout simulator with the 2025 schedules.
func NewPayoutSimulator() *PayoutSimulator {
	return &PayoutSimulator{
		Resolver:        tax.NewAnnualPensionTaxResolver2025(),
		OtherIncomeRate: tax.OtherIncomeRate,
	}
}

// annuityWithdrawal sizes the year's gross withdrawal with an annuity-due
// factor (withdrawal at the start of the year, so the ordinary factor is
// scaled by 1+r). The result is clipped to the available balance.
func annuityWithdrawal(balance, r decimal.Decimal, remainingYears int) decimal.Decimal {
	if remainingYears <= 0 {
		return decimal.Zero
	}
	var withdrawal decimal.Decimal
	if r.IsZero() {
		withdrawal = balance.Div(decimal.NewFromInt(int64(remainingYears)))
	} else {
		one := decimal.NewFromInt(1)
		growth := one.Add(r)
		inv := one.Div(growth.Pow(decimal.NewFromInt(int64(remainingYears))))
		factor := one.Sub(inv).Div(r).Mul(growth)
		if factor.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero
		}
		withdrawal = balance.Div(factor)
	}
	return decimal.Min(withdrawal, balance)
}

// Simulate runs the payout phase seeded from the ending accumulation
// balance. The non-taxable wallet holds the cumulative non-deductible
// contributions plus any other tax-free principal (clipped to the balance);
// the taxable wallet holds the rest. The ledger may be shorter than the
// configured payout years when the wallets run out early; that is a normal
// terminal condition, not an error.
func (ps *PayoutSimulator) Simulate(input *domain.PlanInput, endingBalance decimal.Decimal) []domain.PayoutYearRecord {
	payoutYears := input.PayoutYears()
	if payoutYears <= 0 || endingBalance.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	nonTaxable := input.NonDeductibleContribution.
		Mul(decimal.NewFromInt(int64(input.ContributionYears()))).
		Add(input.OtherTaxFreePrincipal)
	nonTaxable = decimal.Min(nonTaxable, endingBalance)
	taxable := endingBalance.Sub(nonTaxable)

	growth := decimal.NewFromInt(1).Add(input.PostPayoutReturn)
	ledger := make([]domain.PayoutYearRecord, 0, payoutYears)

	for yearIndex := 1; yearIndex <= payoutYears; yearIndex++ {
		balance := nonTaxable.Add(taxable)
		if balance.LessThanOrEqual(decimal.Zero) {
			break
		}

		age := input.PayoutStartAge + yearIndex - 1
		withdrawal := annuityWithdrawal(balance, input.PostPayoutReturn, payoutYears-yearIndex+1)

		fromNonTaxable := decimal.Min(withdrawal, nonTaxable)
		fromTaxable := withdrawal.Sub(fromNonTaxable)

		record := domain.PayoutYearRecord{
			YearIndex:       yearIndex,
			Age:             age,
			GrossWithdrawal: withdrawal,
			FromNonTaxable:  fromNonTaxable,
			FromTaxable:     fromTaxable,
		}

		withinLimit := fromTaxable
		if yearIndex <= LimitWindowYears {
			limitBase := balance
			if input.WithdrawalLimitBase == domain.LimitBaseInitialBalance {
				limitBase = endingBalance
			}
			limit := limitBase.Mul(LimitMultiplier).
				Div(decimal.NewFromInt(int64(LimitWindowYears + 1 - yearIndex)))
			record.WithdrawalLimit = limit
			if fromTaxable.GreaterThan(limit) {
				record.ExcessWithdrawal = fromTaxable.Sub(limit)
				record.PenaltyTax = record.ExcessWithdrawal.Mul(ps.OtherIncomeRate)
				withinLimit = limit
			}
		}
		record.TaxableWithinLimit = withinLimit

		decision := ps.Resolver.Resolve(withinLimit, input.OtherPensionIncome, input.OtherComprehensiveIncome, age)
		record.PensionTax = decision.Tax
		record.ComprehensiveTax = decision.ComprehensiveTax
		record.SeparateTax = decision.SeparateTax
		record.Mode = decision.Mode

		record.TotalTax = record.PensionTax.Add(record.PenaltyTax)
		record.AfterTax = withdrawal.Sub(record.TotalTax)

		nonTaxable = nonTaxable.Sub(fromNonTaxable).Mul(growth)
		taxable = taxable.Sub(fromTaxable).Mul(growth)
		record.EndingBalance = nonTaxable.Add(taxable)

		ledger = append(ledger, record)
	}

	return ledger
}
