package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jaeho-lee/pensim/internal/domain"
)

// writeCSVReport writes the payout ledger as CSV, one row per payout year.
func writeCSVReport(result *domain.SimulationResult, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{
		"plan",
		"year_index",
		"age",
		"gross_withdrawal",
		"from_non_taxable",
		"from_taxable",
		"withdrawal_limit",
		"taxable_within_limit",
		"excess_withdrawal",
		"pension_tax",
		"penalty_tax",
		"total_tax",
		"after_tax",
		"comprehensive_tax",
		"separate_tax",
		"mode",
		"ending_balance",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range result.PayoutLedger {
		record := []string{
			result.Input.Name,
			strconv.Itoa(row.YearIndex),
			strconv.Itoa(row.Age),
			row.GrossWithdrawal.StringFixed(2),
			row.FromNonTaxable.StringFixed(2),
			row.FromTaxable.StringFixed(2),
			row.WithdrawalLimit.StringFixed(2),
			row.TaxableWithinLimit.StringFixed(2),
			row.ExcessWithdrawal.StringFixed(2),
			row.PensionTax.StringFixed(2),
			row.PenaltyTax.StringFixed(2),
			row.TotalTax.StringFixed(2),
			row.AfterTax.StringFixed(2),
			row.ComprehensiveTax.StringFixed(2),
			row.SeparateTax.StringFixed(2),
			string(row.Mode),
			row.EndingBalance.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
