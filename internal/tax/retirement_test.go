package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jaeho-lee/pensim/internal/domain"
)

func TestServiceYearDeduction(t *testing.T) {
	tests := []struct {
		years    int
		expected int64
	}{
		{0, 0},
		{3, 3_000_000},
		{5, 5_000_000},
		{7, 9_000_000},
		{10, 15_000_000},
		{15, 27_500_000},
		{20, 40_000_000},
		{25, 55_000_000},
	}

	for _, tt := range tests {
		got := ServiceYearDeduction(tt.years)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)),
			"ServiceYearDeduction(%d) = %s, want %d", tt.years, got, tt.expected)
	}
}

func TestConvertedSalaryDeduction(t *testing.T) {
	tests := []struct {
		salary   int64
		expected int64
	}{
		{5_000_000, 5_000_000},
		{8_000_000, 8_000_000},
		{10_000_000, 9_200_000},
		{70_000_000, 45_200_000},
		{80_000_000, 50_700_000},
		{100_000_000, 61_700_000},
		{200_000_000, 106_700_000},
		{400_000_000, 186_700_000},
	}

	for _, tt := range tests {
		got := ConvertedSalaryDeduction(decimal.NewFromInt(tt.salary))
		assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)),
			"ConvertedSalaryDeduction(%d) = %s, want %d", tt.salary, got, tt.expected)
	}
}

func TestLumpSumCalculator_Flat(t *testing.T) {
	calc := NewLumpSumCalculator(domain.LumpSumFlat)

	got := calc.Tax(decimal.NewFromInt(100_000_000), 30)
	assert.True(t, got.Equal(decimal.NewFromInt(16_500_000)),
		"Flat lump-sum tax = %s, want 16,500,000", got)

	assert.True(t, calc.Tax(decimal.Zero, 30).IsZero(), "Zero lump sum taxes at zero")
	assert.True(t, calc.Tax(decimal.NewFromInt(-1), 30).IsZero(), "Negative lump sum taxes at zero")
}

func TestLumpSumCalculator_ServiceYear(t *testing.T) {
	calc := NewLumpSumCalculator(domain.LumpSumServiceYear)

	// 100M over 10 years: 15M service deduction, 8.5M converted salary,
	// 8.3M converted-salary deduction, 200k per-year base at 6%, times 10
	// years, surtax applied once at the end.
	got := calc.Tax(decimal.NewFromInt(100_000_000), 10)
	assert.True(t, got.Equal(decimal.NewFromInt(132_000)),
		"Service-year lump-sum tax = %s, want 132,000", got)
}

func TestLumpSumCalculator_ServiceYear_FloorsNegativeIntermediates(t *testing.T) {
	calc := NewLumpSumCalculator(domain.LumpSumServiceYear)

	// Below the service-year deduction.
	assert.True(t, calc.Tax(decimal.NewFromInt(10_000_000), 10).IsZero(),
		"Amount fully covered by the service deduction should tax at zero")

	// Converted salary below the full-deduction band.
	assert.True(t, calc.Tax(decimal.NewFromInt(40_000_000), 10).IsZero(),
		"Converted salary inside the full-deduction band should tax at zero")
}

func TestLumpSumCalculator_ServiceYear_ZeroYearsFallsBackToFlat(t *testing.T) {
	calc := NewLumpSumCalculator(domain.LumpSumServiceYear)

	got := calc.Tax(decimal.NewFromInt(10_000_000), 0)
	assert.True(t, got.Equal(decimal.NewFromInt(1_650_000)),
		"Zero service years should use the flat rate, got %s", got)
}
