package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/jaeho-lee/pensim/internal/domain"
)

// AccumulationSimulator projects the account balance through the
// contribution phase, one step per contribution year.
type AccumulationSimulator struct{}

// NewAccumulationSimulator creates a new accumulation simulator.
func NewAccumulationSimulator() *AccumulationSimulator {
	return &AccumulationSimulator{}
}

// Project runs the accumulation phase from startAge to payoutStartAge and
// returns the ending balance plus the per-year (age, balance) series. With
// start-of-year timing the contribution earns the year's growth; with
// end-of-year timing it is credited after growth. Zero contribution years
// yields a zero balance and an empty series.
func (as *AccumulationSimulator) Project(startAge, payoutStartAge int, annualContribution, preReturn decimal.Decimal, timing domain.ContributionTiming) (decimal.Decimal, []domain.AccumulationPoint) {
	years := payoutStartAge - startAge
	if years <= 0 {
		return decimal.Zero, nil
	}

	growth := decimal.NewFromInt(1).Add(preReturn)
	balance := decimal.Zero
	series := make([]domain.AccumulationPoint, 0, years)

	for i := 1; i <= years; i++ {
		if timing == domain.TimingStartOfYear {
			balance = balance.Add(annualContribution).Mul(growth)
		} else {
			balance = balance.Mul(growth).Add(annualContribution)
		}
		series = append(series, domain.AccumulationPoint{Age: startAge + i, Balance: balance})
	}

	return balance, series
}
