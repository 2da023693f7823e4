package core

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Token token metadata supplied by the market data provider.
// Decimals and Price stay unset when the provider does not know them.
type Token struct {
	Address  common.Address      `json:"address"`
	Symbol   string              `json:"symbol,omitempty"`
	Decimals *uint8              `json:"decimals,omitempty"`
	Price    decimal.NullDecimal `json:"price_usd"`
}

// Complete has both decimals and price
func (t *Token) Complete() bool {
	return t.Decimals != nil && t.Price.Valid
}

// Validate token metadata is usable for calculation
func (t *Token) Validate() error {
	if !t.Complete() {
		return fmt.Errorf("token %s: %w", t.Address.Hex(), ErrMissingPriceOrDecimals)
	}

	if t.Price.Decimal.IsNegative() {
		return fmt.Errorf("token %s: %w", t.Address.Hex(), ErrInvalidPrice)
	}

	return nil
}

// Merge fills unset fields from other
func (t *Token) Merge(other *Token) {
	if other == nil {
		return
	}

	if t.Symbol == "" {
		t.Symbol = other.Symbol
	}

	if t.Decimals == nil && other.Decimals != nil {
		d := *other.Decimals
		t.Decimals = &d
	}

	if !t.Price.Valid {
		t.Price = other.Price
	}
}
