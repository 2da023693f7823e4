package core

import (
	"leverage/pkg/fixed"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Position collateral/debt snapshot of a lending market position
type Position struct {
	CollateralToken common.Address `json:"collateral_token"`
	Collateral      fixed.Amount   `json:"collateral"`
	CollateralPrice fixed.Price    `json:"collateral_price"`
	DebtToken       common.Address `json:"debt_token"`
	Debt            fixed.Amount   `json:"debt"`
	DebtPrice       fixed.Price    `json:"debt_price"`
}

// LeverageState equity and leverage derived from a position
type LeverageState struct {
	CollateralUSD fixed.USD       `json:"collateral_usd"`
	DebtUSD       fixed.USD       `json:"debt_usd"`
	EquityUSD     fixed.USD       `json:"equity_usd"`
	Leverage      decimal.Decimal `json:"leverage"`
	// Degenerate equity <= 0, Leverage falls back to 1
	Degenerate bool `json:"degenerate"`
}

// Balance raw balance of a token, Amount is an integer string at native decimals
type Balance struct {
	Token  Token  `json:"token"`
	Amount string `json:"amount"`
}

// PositionRequest caller supplied balances with optional inline metadata
type PositionRequest struct {
	Collateral Balance `json:"collateral"`
	Debt       Balance `json:"debt"`
}
