package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jaeho-lee/pensim/internal/domain"
)

// writeConsoleReport renders the full result as a human-readable report:
// plan summary, lump-sum comparison, and the payout ledger table.
func writeConsoleReport(result *domain.SimulationResult, w io.Writer) error {
	input := &result.Input
	rule := strings.Repeat("=", 96)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "PENSION SAVINGS PROJECTION: %s\n", input.Name)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Ages %d -> %d (contribute) -> %d (payout)   pre %s / post %s   contribution %s/yr (%s)\n",
		input.StartAge, input.PayoutStartAge, input.PayoutEndAge,
		FormatPercent(input.PrePayoutReturn), FormatPercent(input.PostPayoutReturn),
		FormatCurrency(input.AnnualContribution), input.ContributionTiming)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Ending balance at %d:   %s\n", input.PayoutStartAge, FormatCurrency(result.EndingAccumulationBalance))
	if len(result.PayoutLedger) == 0 {
		fmt.Fprintln(w, "No payout phase: the account had no balance at payout start.")
		return nil
	}
	fmt.Fprintf(w, "First-year after tax:  %s (present value %s at %s inflation)\n",
		FormatCurrency(result.FirstYearAfterTax), FormatCurrency(result.FirstYearAfterTaxPV),
		FormatPercent(input.InflationRate))
	fmt.Fprintf(w, "Totals over %d payout years: withdrawn %s, tax %s, after tax %s\n",
		len(result.PayoutLedger), FormatCurrency(result.TotalWithdrawn),
		FormatCurrency(result.TotalTaxPaid), FormatCurrency(result.TotalAfterTax))
	if result.Depleted() {
		fmt.Fprintf(w, "NOTE: wallets depleted after %d of %d configured years\n",
			len(result.PayoutLedger), input.PayoutYears())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "LUMP-SUM ALTERNATIVE")
	fmt.Fprintf(w, "  taxable %s, tax %s (%s strategy), after tax %s\n",
		FormatCurrency(result.LumpSum.TaxableAmount), FormatCurrency(result.LumpSum.Tax),
		input.LumpSumStrategy, FormatCurrency(result.LumpSum.AfterTaxAmount))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PAYOUT LEDGER")
	fmt.Fprintf(w, "%4s %6s  %14s %14s %12s %12s %12s  %-14s %14s\n",
		"Year", "Age", "Gross", "After Tax", "Pension Tax", "Penalty", "Within Limit", "Mode", "End Balance")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	for _, row := range result.PayoutLedger {
		fmt.Fprintf(w, "%4d %6d  %14s %14s %12s %12s %12s  %-14s %14s\n",
			row.YearIndex, row.Age,
			FormatCurrency(row.GrossWithdrawal), FormatCurrency(row.AfterTax),
			FormatCurrency(row.PensionTax), FormatCurrency(row.PenaltyTax),
			FormatCurrency(row.TaxableWithinLimit), row.Mode,
			FormatCurrency(row.EndingBalance))
	}
	fmt.Fprintln(w, rule)
	return nil
}
