package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Reserve lending market reserve configuration of a token
type Reserve struct {
	Address common.Address `json:"address"`
	// LTV max borrowable fraction of collateral value, (0, 1)
	LTV decimal.Decimal `json:"ltv"`
	// SupplyAPY percent
	SupplyAPY decimal.Decimal `json:"supply_apy"`
	// BorrowAPY percent
	BorrowAPY decimal.Decimal `json:"borrow_apy"`
	// Borrowable variable rate borrowing enabled
	Borrowable bool `json:"borrowable"`
}

// IMarketDataService market data provider interface
type IMarketDataService interface {
	Token(ctx context.Context, address common.Address) (*Token, error)
	Reserve(ctx context.Context, address common.Address) (*Reserve, error)
	// MaxLeverage 1 / (1 - LTV) of the collateral reserve
	MaxLeverage(ctx context.Context, collateral, debt common.Address) (decimal.Decimal, error)
}
