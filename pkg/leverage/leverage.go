// Package leverage computes equity, leverage and the token deltas needed to
// move an Aave style collateral/debt position to a target leverage.
//
// All functions are pure and safe for concurrent use.
package leverage

import (
	"errors"
	"fmt"

	"leverage/core"
	"leverage/pkg/fixed"

	"github.com/shopspring/decimal"
)

var (
	// LeveragePrecision leverage targets are rounded to this many decimals
	LeveragePrecision int32 = 2
	// MinLeverage leverage of a position without debt
	MinLeverage = decimal.NewFromInt(1)
	// NegligibleEquity equity below this usd figure is treated as no position
	NegligibleEquity = decimal.New(1, -6)
	// SwapBufferBps price movement margin on swap inputs, 0.5%
	SwapBufferBps uint64 = 50
	// AccrualBufferBps interest accrual margin on repay and aToken amounts, 2%
	AccrualBufferBps uint64 = 200
)

// Buffers safety margins in basis points
type Buffers struct {
	SwapBps    uint64
	AccrualBps uint64
}

// DefaultBuffers 0.5% swap, 2% accrual
func DefaultBuffers() Buffers {
	return Buffers{
		SwapBps:    SwapBufferBps,
		AccrualBps: AccrualBufferBps,
	}
}

// BuffersFromConfig fills unset values with the defaults
func BuffersFromConfig(cfg core.Leverage) Buffers {
	b := DefaultBuffers()
	if cfg.SwapBufferBps > 0 {
		b.SwapBps = cfg.SwapBufferBps
	}
	if cfg.AccrualBufferBps > 0 {
		b.AccrualBps = cfg.AccrualBufferBps
	}
	return b
}

// RoundLeverage rounds a leverage ratio to LeveragePrecision
func RoundLeverage(d decimal.Decimal) decimal.Decimal {
	return d.Round(LeveragePrecision)
}

// validTarget rounds target and rejects anything below 1
func validTarget(target decimal.Decimal) (decimal.Decimal, error) {
	target = RoundLeverage(target)
	if target.LessThan(MinLeverage) {
		return decimal.Zero, fmt.Errorf("target leverage %s: %w", target, core.ErrInvalidLeverage)
	}

	return target, nil
}

// NewPosition builds a position from caller supplied balances. Token metadata
// must be complete, missing decimals or price is an error, never a zero.
func NewPosition(req *core.PositionRequest) (*core.Position, error) {
	collateral, collateralPrice, err := parseBalance(&req.Collateral)
	if err != nil {
		return nil, fmt.Errorf("collateral: %w", err)
	}

	debt, debtPrice, err := parseBalance(&req.Debt)
	if err != nil {
		return nil, fmt.Errorf("debt: %w", err)
	}

	return &core.Position{
		CollateralToken: req.Collateral.Token.Address,
		Collateral:      collateral,
		CollateralPrice: collateralPrice,
		DebtToken:       req.Debt.Token.Address,
		Debt:            debt,
		DebtPrice:       debtPrice,
	}, nil
}

func parseBalance(b *core.Balance) (fixed.Amount, fixed.Price, error) {
	if err := b.Token.Validate(); err != nil {
		return fixed.Amount{}, fixed.Price{}, err
	}

	amount := b.Amount
	if amount == "" {
		amount = "0"
	}

	a, err := fixed.ParseAmount(amount, *b.Token.Decimals)
	if err != nil {
		return fixed.Amount{}, fixed.Price{}, fmt.Errorf("%v: %w", err, core.ErrInvalidAmount)
	}

	p, err := fixed.NewPrice(b.Token.Price.Decimal)
	if err != nil {
		return fixed.Amount{}, fixed.Price{}, fmt.Errorf("%v: %w", err, core.ErrInvalidPrice)
	}

	if err := checkPrice(a, p); err != nil {
		return fixed.Amount{}, fixed.Price{}, err
	}

	return a, p, nil
}

// checkPrice a zero price is only usable on an empty balance
func checkPrice(a fixed.Amount, p fixed.Price) error {
	if p.IsZero() && !a.IsZero() {
		return fmt.Errorf("zero price for amount %s: %w", a, core.ErrInvalidPrice)
	}

	return nil
}

// arithmeticError maps a fixed point failure onto the core taxonomy
func arithmeticError(op string, err error) error {
	if errors.Is(err, fixed.ErrZeroPrice) {
		return fmt.Errorf("%s: %v: %w", op, err, core.ErrInvalidPrice)
	}

	return fmt.Errorf("%s: %v: %w", op, err, core.ErrArithmeticFault)
}

func negligible(equity fixed.USD) bool {
	return equity.Decimal().LessThan(NegligibleEquity)
}
