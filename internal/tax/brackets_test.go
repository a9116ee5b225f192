package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProgressiveCalculator_ZeroAndNegative(t *testing.T) {
	calc := NewComprehensiveCalculator2025()

	assert.True(t, calc.Tax(decimal.Zero, false).IsZero(), "Zero base should be taxed at zero")
	assert.True(t, calc.Tax(decimal.NewFromInt(-1_000_000), true).IsZero(), "Negative base should be taxed at zero")
}

func TestProgressiveCalculator_KnownValues(t *testing.T) {
	calc := NewComprehensiveCalculator2025()

	tests := []struct {
		name          string
		base          int64
		includeSurtax bool
		expected      int64
	}{
		{"bottom bracket no surtax", 10_000_000, false, 600_000},
		{"bottom bracket boundary with surtax", 14_000_000, true, 924_000},
		{"second bracket boundary with surtax", 50_000_000, true, 6_864_000},
		{"third bracket no surtax", 88_000_000, false, 15_360_000},
		{"top bracket no surtax", 2_000_000_000, false, 834_060_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Tax(decimal.NewFromInt(tt.base), tt.includeSurtax)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)),
				"Tax(%d) = %s, want %d", tt.base, got, tt.expected)
		})
	}
}

func TestProgressiveCalculator_Monotonic(t *testing.T) {
	calc := NewComprehensiveCalculator2025()

	bases := []int64{
		0, 1_000_000, 13_999_999, 14_000_000, 14_000_001,
		49_999_999, 50_000_000, 50_000_001, 88_000_000, 150_000_000,
		300_000_000, 500_000_000, 1_000_000_000, 1_000_000_001, 5_000_000_000,
	}

	prev := decimal.NewFromInt(-1)
	for _, base := range bases {
		got := calc.Tax(decimal.NewFromInt(base), true)
		assert.True(t, got.GreaterThanOrEqual(prev),
			"Tax should be non-decreasing, but Tax(%d) = %s dropped below %s", base, got, prev)
		prev = got
	}
}
