package leverage

import (
	"fmt"

	"leverage/core"
	"leverage/pkg/fixed"
)

// Fallback leverage state of a position without equity
func Fallback() *core.LeverageState {
	return &core.LeverageState{
		Leverage:   MinLeverage,
		Degenerate: true,
	}
}

// Solve computes usd values, equity and leverage of a position.
//
// leverage = collateral_usd / (collateral_usd - debt_usd)
//
// A position whose debt covers its collateral is degenerate, leverage falls back
// to 1 without an error. On an arithmetic fault or a zero price under a non zero
// balance the fallback is returned along with the error.
func Solve(p *core.Position) (*core.LeverageState, error) {
	state, err := solve(p)
	if err != nil {
		return Fallback(), err
	}

	return state, nil
}

func solve(p *core.Position) (*core.LeverageState, error) {
	if err := checkPrice(p.Collateral, p.CollateralPrice); err != nil {
		return nil, fmt.Errorf("collateral: %w", err)
	}

	if err := checkPrice(p.Debt, p.DebtPrice); err != nil {
		return nil, fmt.Errorf("debt: %w", err)
	}

	collateralUSD, err := fixed.ToUSD(p.Collateral, p.CollateralPrice)
	if err != nil {
		return nil, arithmeticError("collateral usd", err)
	}

	debtUSD, err := fixed.ToUSD(p.Debt, p.DebtPrice)
	if err != nil {
		return nil, arithmeticError("debt usd", err)
	}

	state := &core.LeverageState{
		CollateralUSD: collateralUSD,
		DebtUSD:       debtUSD,
		Leverage:      MinLeverage,
	}

	if collateralUSD.Cmp(debtUSD) <= 0 {
		state.Degenerate = true
		return state, nil
	}

	equity, err := collateralUSD.Sub(debtUSD)
	if err != nil {
		return nil, arithmeticError("equity", err)
	}

	leverage, err := collateralUSD.Ratio(equity)
	if err != nil {
		return nil, arithmeticError("leverage", err)
	}

	state.EquityUSD = equity
	state.Leverage = leverage
	return state, nil
}
