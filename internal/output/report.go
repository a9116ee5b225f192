// Package output renders simulation results as console text, CSV, or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jaeho-lee/pensim/internal/domain"
)

// GenerateReport writes the result to w in the requested format.
func GenerateReport(result *domain.SimulationResult, format string, w io.Writer) error {
	switch format {
	case "console":
		return writeConsoleReport(result, w)
	case "csv":
		return writeCSVReport(result, w)
	case "json":
		return writeJSONReport(result, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatCurrency renders a KRW amount with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	out := "₩" + sb.String()
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPercent renders a fractional rate as a percentage with one decimal.
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
