package fixed

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// BasisPoints one hundred percent in basis points
const BasisPoints = 10000

// Amount a token magnitude at the token's native decimals.
// Amount is a value type, operations return new amounts.
type Amount struct {
	value    uint256.Int
	decimals uint8
}

// NewAmount amount from a raw magnitude
func NewAmount(v *uint256.Int, decimals uint8) (Amount, error) {
	if err := validDecimals(decimals); err != nil {
		return Amount{}, err
	}

	a := Amount{decimals: decimals}
	if v != nil {
		a.value.Set(v)
	}

	return a, nil
}

// ZeroAmount zero amount of a token with the given decimals
func ZeroAmount(decimals uint8) Amount {
	return Amount{decimals: decimals}
}

// ParseAmount parses a base-10 integer string of raw token units
func ParseAmount(s string, decimals uint8) (Amount, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return NewAmount(v, decimals)
}

// AmountFromDecimal converts a human readable amount (1.5 WETH) to raw units, truncating
func AmountFromDecimal(d decimal.Decimal, decimals uint8) (Amount, error) {
	if err := validDecimals(decimals); err != nil {
		return Amount{}, err
	}

	v, err := fromDecimal(d, int32(decimals))
	if err != nil {
		return Amount{}, err
	}

	return Amount{value: *v, decimals: decimals}, nil
}

// Int raw magnitude
func (a Amount) Int() *uint256.Int {
	return a.value.Clone()
}

// Decimals token decimals
func (a Amount) Decimals() uint8 {
	return a.decimals
}

// IsZero is zero
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Cmp compares raw magnitudes
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(&b.value)
}

// Add a + b
func (a Amount) Add(b Amount) (Amount, error) {
	var z Amount
	z.decimals = a.decimals
	if _, overflow := z.value.AddOverflow(&a.value, &b.value); overflow {
		return Amount{}, ErrOverflow
	}

	return z, nil
}

// Sub a - b, fails below zero
func (a Amount) Sub(b Amount) (Amount, error) {
	var z Amount
	z.decimals = a.decimals
	if _, underflow := z.value.SubOverflow(&a.value, &b.value); underflow {
		return Amount{}, ErrUnderflow
	}

	return z, nil
}

// Min the smaller of a and b, keeping a's decimals
func (a Amount) Min(b Amount) Amount {
	if b.value.Lt(&a.value) {
		return Amount{value: b.value, decimals: a.decimals}
	}

	return a
}

// AddBps increases the amount by bps basis points, truncating
func (a Amount) AddBps(bps uint64) (Amount, error) {
	return a.mulDiv(BasisPoints+bps, BasisPoints)
}

// SubBps decreases the amount by bps basis points, truncating
func (a Amount) SubBps(bps uint64) (Amount, error) {
	if bps > BasisPoints {
		return Amount{}, ErrUnderflow
	}

	return a.mulDiv(BasisPoints-bps, BasisPoints)
}

func (a Amount) mulDiv(num, den uint64) (Amount, error) {
	var z Amount
	z.decimals = a.decimals
	if _, overflow := z.value.MulDivOverflow(&a.value, uint256.NewInt(num), uint256.NewInt(den)); overflow {
		return Amount{}, ErrOverflow
	}

	return z, nil
}

// Decimal human readable amount
func (a Amount) Decimal() decimal.Decimal {
	return toDecimal(&a.value, int32(a.decimals))
}

// String raw magnitude as a base-10 integer string
func (a Amount) String() string {
	return a.value.Dec()
}

// MarshalText raw magnitude as a base-10 integer string
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
