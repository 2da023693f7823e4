package core

import (
	"github.com/shopspring/decimal"
)

// EarningsInput amounts in usd, apy in percent (5 means 5%)
type EarningsInput struct {
	Supplied       decimal.Decimal `json:"supplied"`
	SupplyAPY      decimal.Decimal `json:"supply_apy"`
	Borrowed       decimal.Decimal `json:"borrowed"`
	BorrowAPY      decimal.Decimal `json:"borrow_apy"`
	DurationMonths int64           `json:"months"`
}

// Earnings simple interest projection
type Earnings struct {
	InterestGain decimal.Decimal `json:"interest_gain"`
	InterestLoss decimal.Decimal `json:"interest_loss"`
	Net          decimal.Decimal `json:"net"`
	// NetAPY net apy on equity in percent, only set for position estimates
	NetAPY decimal.Decimal `json:"net_apy"`
}
