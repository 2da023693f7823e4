package core

import (
	"context"

	"leverage/pkg/fixed"

	"github.com/shopspring/decimal"
)

// ILeverageService leverage calculation service interface
type ILeverageService interface {
	// Position resolves token metadata and parses raw balances
	Position(ctx context.Context, req *PositionRequest) (*Position, error)
	Leverage(ctx context.Context, position *Position) (*LeverageState, error)
	Unloop(ctx context.Context, position *Position, target decimal.Decimal) (*UnloopParameters, error)
	// Loop deposit may be nil, maxLeverage comes from the market data provider
	Loop(ctx context.Context, position *Position, target, maxLeverage decimal.Decimal, deposit *fixed.Amount) (*LoopParameters, error)
	Earnings(ctx context.Context, input *EarningsInput) (*Earnings, error)
	PositionEarnings(ctx context.Context, position *Position, supplyAPY, borrowAPY decimal.Decimal, months int64) (*Earnings, error)
}
