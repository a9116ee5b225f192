package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ContributionTiming controls when the annual contribution is credited
// within each accumulation year.
type ContributionTiming string

const (
	TimingStartOfYear ContributionTiming = "start-of-year"
	TimingEndOfYear   ContributionTiming = "end-of-year"
)

// WithdrawalLimitBase selects the balance the statutory withdrawal limit is
// computed against during the first ten payout years. Published guidance is
// read both ways, so both are supported.
type WithdrawalLimitBase string

const (
	// LimitBaseCurrentBalance re-evaluates the limit against the balance at
	// the start of each payout year.
	LimitBaseCurrentBalance WithdrawalLimitBase = "current-balance"
	// LimitBaseInitialBalance fixes the limit base at the ending
	// accumulation balance for the whole ten-year window.
	LimitBaseInitialBalance WithdrawalLimitBase = "initial-balance"
)

// LumpSumStrategy selects how the one-time withdrawal alternative is taxed.
type LumpSumStrategy string

const (
	// LumpSumFlat taxes the taxable portion at the other-income rate.
	LumpSumFlat LumpSumStrategy = "flat"
	// LumpSumServiceYear applies the retirement-income schedule keyed on
	// contribution years.
	LumpSumServiceYear LumpSumStrategy = "service-year"
)

// TaxMode identifies which taxation mode was chosen for a payout year.
type TaxMode string

const (
	TaxModeNone          TaxMode = "none"
	TaxModeLowFlatRate   TaxMode = "low-flat-rate"
	TaxModeComprehensive TaxMode = "comprehensive"
	TaxModeSeparate      TaxMode = "separate"
)

// Statutory contribution ceilings (2025, KRW). Exceeding them is legal but
// changes the tax treatment of the excess, so validation surfaces notices
// rather than errors.
var (
	DeductionCreditCeiling     = decimal.NewFromInt(6_000_000)
	AccountContributionCeiling = decimal.NewFromInt(18_000_000)
)

// PlanInput is the immutable description of one simulation run. All monetary
// amounts are annual KRW; returns and rates are fractions (0.06 = 6%).
type PlanInput struct {
	Name string `yaml:"name" json:"name"`

	StartAge       int `yaml:"start_age" json:"start_age"`
	PayoutStartAge int `yaml:"payout_start_age" json:"payout_start_age"`
	PayoutEndAge   int `yaml:"payout_end_age" json:"payout_end_age"`

	PrePayoutReturn  decimal.Decimal `yaml:"pre_payout_return" json:"pre_payout_return"`
	PostPayoutReturn decimal.Decimal `yaml:"post_payout_return" json:"post_payout_return"`
	InflationRate    decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`

	AnnualContribution        decimal.Decimal `yaml:"annual_contribution" json:"annual_contribution"`
	NonDeductibleContribution decimal.Decimal `yaml:"non_deductible_contribution" json:"non_deductible_contribution"`
	OtherTaxFreePrincipal     decimal.Decimal `yaml:"other_tax_free_principal" json:"other_tax_free_principal"`

	OtherPensionIncome       decimal.Decimal `yaml:"other_pension_income" json:"other_pension_income"`
	OtherComprehensiveIncome decimal.Decimal `yaml:"other_comprehensive_income" json:"other_comprehensive_income"`

	ContributionTiming  ContributionTiming  `yaml:"contribution_timing" json:"contribution_timing"`
	WithdrawalLimitBase WithdrawalLimitBase `yaml:"withdrawal_limit_base" json:"withdrawal_limit_base"`
	LumpSumStrategy     LumpSumStrategy     `yaml:"lump_sum_strategy" json:"lump_sum_strategy"`
}

// ContributionYears returns the number of accumulation years.
func (p *PlanInput) ContributionYears() int {
	return p.PayoutStartAge - p.StartAge
}

// PayoutYears returns the configured number of payout years.
func (p *PlanInput) PayoutYears() int {
	return p.PayoutEndAge - p.PayoutStartAge
}

// ApplyDefaults fills the enum fields left empty by the caller.
func (p *PlanInput) ApplyDefaults() {
	if p.ContributionTiming == "" {
		p.ContributionTiming = TimingEndOfYear
	}
	if p.WithdrawalLimitBase == "" {
		p.WithdrawalLimitBase = LimitBaseCurrentBalance
	}
	if p.LumpSumStrategy == "" {
		p.LumpSumStrategy = LumpSumFlat
	}
}

// Validate rejects inputs the simulation cannot run on. It mirrors the
// ordering and sign rules the engine assumes; the engine calls it again
// before simulating so a hand-built PlanInput gets the same screening as a
// parsed one.
func (p *PlanInput) Validate() error {
	if p.StartAge <= 0 {
		return fmt.Errorf("start age must be positive, got %d", p.StartAge)
	}
	if p.StartAge >= p.PayoutStartAge {
		return fmt.Errorf("payout start age (%d) must be after start age (%d)", p.PayoutStartAge, p.StartAge)
	}
	if p.PayoutStartAge >= p.PayoutEndAge {
		return fmt.Errorf("payout end age (%d) must be after payout start age (%d)", p.PayoutEndAge, p.PayoutStartAge)
	}
	minusOne := decimal.NewFromInt(-1)
	if p.PrePayoutReturn.LessThanOrEqual(minusOne) {
		return fmt.Errorf("pre-payout return must be greater than -100%%, got %s", p.PrePayoutReturn)
	}
	if p.PostPayoutReturn.LessThanOrEqual(minusOne) {
		return fmt.Errorf("post-payout return must be greater than -100%%, got %s", p.PostPayoutReturn)
	}
	if p.InflationRate.LessThanOrEqual(minusOne) {
		return fmt.Errorf("inflation rate must be greater than -100%%, got %s", p.InflationRate)
	}
	if p.AnnualContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("annual contribution must not be negative, got %s", p.AnnualContribution)
	}
	if p.NonDeductibleContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("non-deductible contribution must not be negative, got %s", p.NonDeductibleContribution)
	}
	if p.NonDeductibleContribution.GreaterThan(p.AnnualContribution) {
		return fmt.Errorf("non-deductible contribution (%s) cannot exceed annual contribution (%s)",
			p.NonDeductibleContribution, p.AnnualContribution)
	}
	for name, v := range map[string]decimal.Decimal{
		"other tax-free principal":   p.OtherTaxFreePrincipal,
		"other pension income":       p.OtherPensionIncome,
		"other comprehensive income": p.OtherComprehensiveIncome,
	} {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("%s must not be negative, got %s", name, v)
		}
	}
	switch p.ContributionTiming {
	case TimingStartOfYear, TimingEndOfYear:
	default:
		return fmt.Errorf("unknown contribution timing %q", p.ContributionTiming)
	}
	switch p.WithdrawalLimitBase {
	case LimitBaseCurrentBalance, LimitBaseInitialBalance:
	default:
		return fmt.Errorf("unknown withdrawal limit base %q", p.WithdrawalLimitBase)
	}
	switch p.LumpSumStrategy {
	case LumpSumFlat, LumpSumServiceYear:
	default:
		return fmt.Errorf("unknown lump sum strategy %q", p.LumpSumStrategy)
	}
	return nil
}

// PolicyNotices returns advisory messages about contribution ceilings. These
// never block a run.
func (p *PlanInput) PolicyNotices() []string {
	var notices []string
	if p.AnnualContribution.GreaterThan(DeductionCreditCeiling) {
		notices = append(notices, fmt.Sprintf(
			"annual contribution exceeds the %s deduction-credit ceiling; the excess earns no tax credit",
			DeductionCreditCeiling.StringFixed(0)))
	}
	if p.AnnualContribution.GreaterThan(AccountContributionCeiling) {
		notices = append(notices, fmt.Sprintf(
			"annual contribution exceeds the %s statutory account ceiling",
			AccountContributionCeiling.StringFixed(0)))
	}
	return notices
}
