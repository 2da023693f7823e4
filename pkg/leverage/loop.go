package leverage

import (
	"fmt"

	"leverage/core"
	"leverage/pkg/fixed"

	"github.com/shopspring/decimal"
)

// Loop computes the extra borrow needed to take a position up to target leverage.
//
//	target_collateral_usd = equity_usd * target
//	target_debt_usd       = target_collateral_usd - equity_usd
//	borrow                = (target_debt_usd - debt_usd) in debt token
//
// The borrowed amount is swapped into collateral and supplied. deposit is
// optional collateral added before borrowing. maxLeverage is the market bound
// 1 / (1 - LTV) supplied by the caller and is not derived here.
func Loop(p *core.Position, target, maxLeverage decimal.Decimal, deposit *fixed.Amount, buffers Buffers) (*core.LoopParameters, error) {
	target, err := validTarget(target)
	if err != nil {
		return nil, err
	}

	if maxLeverage.LessThan(MinLeverage) {
		return nil, fmt.Errorf("max leverage %s: %w", maxLeverage, core.ErrInvalidLeverage)
	}

	if target.GreaterThan(maxLeverage) {
		return nil, fmt.Errorf("target %s max %s: %w", target, maxLeverage, core.ErrLeverageAboveMax)
	}

	base := *p
	supplied := fixed.ZeroAmount(p.Collateral.Decimals())
	if deposit != nil {
		if deposit.Decimals() != p.Collateral.Decimals() {
			return nil, fmt.Errorf("deposit decimals %d != %d: %w", deposit.Decimals(), p.Collateral.Decimals(), core.ErrInvalidAmount)
		}

		if base.Collateral, err = base.Collateral.Add(*deposit); err != nil {
			return nil, arithmeticError("deposit", err)
		}
		supplied = *deposit
	}

	state, err := Solve(&base)
	if err != nil {
		return nil, err
	}

	params := &core.LoopParameters{
		Deposit:            supplied,
		BorrowAmount:       fixed.ZeroAmount(p.Debt.Decimals()),
		ExpectedCollateral: fixed.ZeroAmount(p.Collateral.Decimals()),
		MinCollateralOut:   fixed.ZeroAmount(p.Collateral.Decimals()),
		Swap: core.Swap{
			From:         p.DebtToken,
			To:           p.CollateralToken,
			AmountToSwap: fixed.ZeroAmount(p.Debt.Decimals()),
		},
		TargetCollateral: base.Collateral,
		TargetDebt:       base.Debt,
	}

	if state.Degenerate || negligible(state.EquityUSD) {
		params.Degenerate = true
		return params, nil
	}

	current := RoundLeverage(state.Leverage)
	if target.LessThan(current) {
		return nil, fmt.Errorf("target %s current %s: %w", target, current, core.ErrInvalidLeverageDirection)
	}

	if target.Equal(current) {
		return params, nil
	}

	targetCollateralUSD, err := state.EquityUSD.Scale(target)
	if err != nil {
		return nil, arithmeticError("target collateral", err)
	}

	targetDebtUSD, err := targetCollateralUSD.Sub(state.EquityUSD)
	if err != nil {
		return nil, arithmeticError("target debt", err)
	}

	if targetDebtUSD.Cmp(state.DebtUSD) <= 0 {
		return params, nil
	}

	extra, err := targetDebtUSD.Sub(state.DebtUSD)
	if err != nil {
		return nil, arithmeticError("extra debt", err)
	}

	borrow, err := fixed.FromUSD(extra, p.DebtPrice, p.Debt.Decimals())
	if err != nil {
		return nil, arithmeticError("borrow amount", err)
	}

	expected, err := fixed.FromUSD(extra, p.CollateralPrice, p.Collateral.Decimals())
	if err != nil {
		return nil, arithmeticError("expected collateral", err)
	}

	minOut, err := expected.SubBps(buffers.SwapBps)
	if err != nil {
		return nil, arithmeticError("min collateral out", err)
	}

	if params.TargetCollateral, err = base.Collateral.Add(expected); err != nil {
		return nil, arithmeticError("target collateral", err)
	}

	if params.TargetDebt, err = base.Debt.Add(borrow); err != nil {
		return nil, arithmeticError("target debt", err)
	}

	params.BorrowAmount = borrow
	params.ExpectedCollateral = expected
	params.MinCollateralOut = minOut
	params.Swap.AmountToSwap = borrow
	return params, nil
}
