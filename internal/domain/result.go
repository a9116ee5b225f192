package domain

import "github.com/shopspring/decimal"

// AccumulationPoint is one projected balance during the contribution phase,
// recorded after the year's contribution and growth are applied.
type AccumulationPoint struct {
	Age     int             `yaml:"age" json:"age"`
	Balance decimal.Decimal `yaml:"balance" json:"balance"`
}

// PayoutYearRecord is the full ledger row for one payout year. Records are
// immutable once emitted; the ledger is owned by the engine's caller.
type PayoutYearRecord struct {
	YearIndex int `json:"year_index"` // 1-based
	Age       int `json:"age"`

	GrossWithdrawal decimal.Decimal `json:"gross_withdrawal"`
	FromNonTaxable  decimal.Decimal `json:"from_non_taxable"`
	FromTaxable     decimal.Decimal `json:"from_taxable"`

	WithdrawalLimit    decimal.Decimal `json:"withdrawal_limit"` // zero outside the statutory window
	TaxableWithinLimit decimal.Decimal `json:"taxable_within_limit"`
	ExcessWithdrawal   decimal.Decimal `json:"excess_withdrawal"`

	PensionTax       decimal.Decimal `json:"pension_tax"`
	PenaltyTax       decimal.Decimal `json:"penalty_tax"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	AfterTax         decimal.Decimal `json:"after_tax"`
	ComprehensiveTax decimal.Decimal `json:"comprehensive_tax"`
	SeparateTax      decimal.Decimal `json:"separate_tax"`
	Mode             TaxMode         `json:"mode"`

	// EndingBalance is the combined wallet balance after the withdrawal and
	// the year's post-payout growth.
	EndingBalance decimal.Decimal `json:"ending_balance"`
}

// LumpSumAlternative is the one-time full withdrawal comparison computed from
// the ending accumulation balance.
type LumpSumAlternative struct {
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	Tax            decimal.Decimal `json:"tax"`
	AfterTaxAmount decimal.Decimal `json:"after_tax_amount"`
}

// SimulationResult is everything one engine run produces. It is a pure
// function of the PlanInput; running the same input twice yields identical
// results.
type SimulationResult struct {
	Input PlanInput `json:"input"`

	EndingAccumulationBalance decimal.Decimal     `json:"ending_accumulation_balance"`
	AccumulationSeries        []AccumulationPoint `json:"accumulation_series"`
	PayoutLedger              []PayoutYearRecord  `json:"payout_ledger"`
	LumpSum                   LumpSumAlternative  `json:"lump_sum"`

	// Summary scalars derived from the ledger.
	FirstYearAfterTax   decimal.Decimal `json:"first_year_after_tax"`
	FirstYearAfterTaxPV decimal.Decimal `json:"first_year_after_tax_pv"`
	TotalWithdrawn      decimal.Decimal `json:"total_withdrawn"`
	TotalTaxPaid        decimal.Decimal `json:"total_tax_paid"`
	TotalAfterTax       decimal.Decimal `json:"total_after_tax"`
}

// Depleted reports whether the payout phase ended before the configured end
// age because the wallets ran out. Not an error condition.
func (r *SimulationResult) Depleted() bool {
	return len(r.PayoutLedger) < r.Input.PayoutYears()
}
