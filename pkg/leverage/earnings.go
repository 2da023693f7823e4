package leverage

import (
	"fmt"

	"leverage/core"

	"github.com/shopspring/decimal"
)

// percentMonthsPerYear apy is in percent and duration in months
var percentMonthsPerYear = decimal.NewFromInt(1200)

// EstimateEarnings simple interest projection.
//
//	gain = supplied * supply_apy * months / 1200
//	loss = borrowed * borrow_apy * months / 1200
//
// Interest does not compound, the estimate is linear in duration.
func EstimateEarnings(in *core.EarningsInput) (*core.Earnings, error) {
	if in.DurationMonths < 0 {
		return nil, fmt.Errorf("months %d: %w", in.DurationMonths, core.ErrInvalidAmount)
	}

	for _, v := range []decimal.Decimal{in.Supplied, in.SupplyAPY, in.Borrowed, in.BorrowAPY} {
		if v.IsNegative() {
			return nil, fmt.Errorf("negative input %s: %w", v, core.ErrInvalidAmount)
		}
	}

	months := decimal.NewFromInt(in.DurationMonths)
	gain := monthlyInterest(in.Supplied, in.SupplyAPY).Mul(months)
	loss := monthlyInterest(in.Borrowed, in.BorrowAPY).Mul(months)

	return &core.Earnings{
		InterestGain: gain,
		InterestLoss: loss,
		Net:          gain.Sub(loss),
		NetAPY:       decimal.Zero,
	}, nil
}

// monthlyInterest is computed before scaling by months so that the
// estimate stays exactly linear in duration
func monthlyInterest(amount, apy decimal.Decimal) decimal.Decimal {
	if amount.IsZero() || apy.IsZero() {
		return decimal.Zero
	}

	return amount.Mul(apy).Div(percentMonthsPerYear)
}

// EstimatePositionEarnings projects earnings of a leveraged position, the
// collateral earns supplyAPY and the debt pays borrowAPY.
func EstimatePositionEarnings(state *core.LeverageState, supplyAPY, borrowAPY decimal.Decimal, months int64) (*core.Earnings, error) {
	supplied := state.CollateralUSD.Decimal()
	borrowed := state.DebtUSD.Decimal()

	earnings, err := EstimateEarnings(&core.EarningsInput{
		Supplied:       supplied,
		SupplyAPY:      supplyAPY,
		Borrowed:       borrowed,
		BorrowAPY:      borrowAPY,
		DurationMonths: months,
	})
	if err != nil {
		return nil, err
	}

	if !state.Degenerate && !state.EquityUSD.IsZero() {
		net := supplied.Mul(supplyAPY).Sub(borrowed.Mul(borrowAPY))
		earnings.NetAPY = net.DivRound(state.EquityUSD.Decimal(), 8)
	}

	return earnings, nil
}
