package leverage

import (
	"fmt"

	"leverage/core"
	"leverage/pkg/fixed"

	"github.com/shopspring/decimal"
)

// Unloop computes the repay, withdraw and swap amounts that take a position
// down to target leverage.
//
//	desired_collateral_usd = equity_usd * target
//	delta_usd              = collateral_usd - desired_collateral_usd
//	repay                  = delta_usd in debt token
//	withdraw               = delta_usd in collateral token
//	amount_to_swap         = withdraw * (1 + swap buffer)
//	a_token_amount         = withdraw * (1 + accrual buffer)
//
// target == 1 closes the position: the whole collateral is withdrawn and
// debt * (1 + accrual buffer) is repaid, also when there is no debt left.
// A target above the current leverage is rejected before anything else, empty
// positions included.
func Unloop(p *core.Position, target decimal.Decimal, buffers Buffers) (*core.UnloopParameters, error) {
	target, err := validTarget(target)
	if err != nil {
		return nil, err
	}

	state, err := Solve(p)
	if err != nil {
		return nil, err
	}

	// degenerate positions report leverage 1, so only target 1 passes
	current := RoundLeverage(state.Leverage)
	if target.GreaterThan(current) {
		return nil, fmt.Errorf("target %s current %s: %w", target, current, core.ErrInvalidLeverageDirection)
	}

	if state.Degenerate || negligible(state.EquityUSD) {
		return emptyUnloop(p), nil
	}

	if target.Equal(MinLeverage) {
		return closePosition(p, buffers)
	}

	if target.Equal(current) {
		return noopUnloop(p), nil
	}

	desired, err := state.EquityUSD.Scale(target)
	if err != nil {
		return nil, arithmeticError("desired collateral", err)
	}

	delta, err := state.CollateralUSD.Sub(desired)
	if err != nil {
		return nil, arithmeticError("collateral delta", err)
	}

	withdraw, err := fixed.FromUSD(delta, p.CollateralPrice, p.Collateral.Decimals())
	if err != nil {
		return nil, arithmeticError("withdraw amount", err)
	}
	withdraw = withdraw.Min(p.Collateral)

	repay, err := fixed.FromUSD(delta, p.DebtPrice, p.Debt.Decimals())
	if err != nil {
		return nil, arithmeticError("repay amount", err)
	}
	repay = repay.Min(p.Debt)

	aToken, err := withdraw.AddBps(buffers.AccrualBps)
	if err != nil {
		return nil, arithmeticError("aToken amount", err)
	}

	swapAmount, err := withdraw.AddBps(buffers.SwapBps)
	if err != nil {
		return nil, arithmeticError("swap amount", err)
	}

	targetCollateral, err := p.Collateral.Sub(withdraw)
	if err != nil {
		return nil, arithmeticError("target collateral", err)
	}

	targetDebt, err := p.Debt.Sub(repay)
	if err != nil {
		return nil, arithmeticError("target debt", err)
	}

	return &core.UnloopParameters{
		RepayAmount:  repay,
		Withdraw:     core.WithdrawExact(withdraw),
		ATokenAmount: aToken,
		Swap: core.Swap{
			From:         p.CollateralToken,
			To:           p.DebtToken,
			AmountToSwap: swapAmount.Min(aToken),
		},
		TargetCollateral: targetCollateral,
		TargetDebt:       targetDebt,
	}, nil
}

func closePosition(p *core.Position, buffers Buffers) (*core.UnloopParameters, error) {
	repay, err := p.Debt.AddBps(buffers.AccrualBps)
	if err != nil {
		return nil, arithmeticError("repay amount", err)
	}

	aToken, err := p.Collateral.AddBps(buffers.AccrualBps)
	if err != nil {
		return nil, arithmeticError("aToken amount", err)
	}

	repayUSD, err := fixed.ToUSD(repay, p.DebtPrice)
	if err != nil {
		return nil, arithmeticError("repay usd", err)
	}

	// collateral sold to buy the buffered debt
	sold, err := fixed.FromUSD(repayUSD, p.CollateralPrice, p.Collateral.Decimals())
	if err != nil {
		return nil, arithmeticError("swap amount", err)
	}

	swapAmount, err := sold.AddBps(buffers.SwapBps)
	if err != nil {
		return nil, arithmeticError("swap amount", err)
	}

	return &core.UnloopParameters{
		RepayAmount:  repay,
		Withdraw:     core.WithdrawAll(),
		ATokenAmount: aToken,
		Swap: core.Swap{
			From:         p.CollateralToken,
			To:           p.DebtToken,
			AmountToSwap: swapAmount.Min(aToken),
		},
		TargetCollateral: fixed.ZeroAmount(p.Collateral.Decimals()),
		TargetDebt:       fixed.ZeroAmount(p.Debt.Decimals()),
		FullClose:        true,
	}, nil
}

func noopUnloop(p *core.Position) *core.UnloopParameters {
	return &core.UnloopParameters{
		RepayAmount:  fixed.ZeroAmount(p.Debt.Decimals()),
		Withdraw:     core.WithdrawExact(fixed.ZeroAmount(p.Collateral.Decimals())),
		ATokenAmount: fixed.ZeroAmount(p.Collateral.Decimals()),
		Swap: core.Swap{
			From:         p.CollateralToken,
			To:           p.DebtToken,
			AmountToSwap: fixed.ZeroAmount(p.Collateral.Decimals()),
		},
		TargetCollateral: p.Collateral,
		TargetDebt:       p.Debt,
	}
}

// emptyUnloop nothing to unloop: no repay, withdraw whatever is left
func emptyUnloop(p *core.Position) *core.UnloopParameters {
	params := noopUnloop(p)
	params.Withdraw = core.WithdrawAll()
	params.TargetCollateral = fixed.ZeroAmount(p.Collateral.Decimals())
	params.FullClose = true
	params.Empty = true
	return params
}
