// Package fixed converts between on-chain token magnitudes and USD values
// using 256-bit integers only. Every conversion truncates.
package fixed

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// PriceDecimals precision of a price quote, 1 USD = 1e8
	PriceDecimals = 8
	// USDDecimals precision of a usd value, 1 USD = 1e18
	USDDecimals = 18
	// RatioDecimals precision used when scaling by a decimal ratio
	RatioDecimals = 18
	// MaxDecimals largest token decimals accepted
	MaxDecimals = 36
)

var (
	// ErrOverflow result does not fit in 256 bits
	ErrOverflow = errors.New("fixed: overflow")
	// ErrUnderflow subtraction below zero
	ErrUnderflow = errors.New("fixed: underflow")
	// ErrZeroPrice conversion through a zero price
	ErrZeroPrice = errors.New("fixed: zero price")
	// ErrDivisionByZero division by a zero value
	ErrDivisionByZero = errors.New("fixed: division by zero")
	// ErrNegative negative input for an unsigned magnitude
	ErrNegative = errors.New("fixed: negative value")
	// ErrDecimals token decimals out of range
	ErrDecimals = errors.New("fixed: decimals out of range")
)

var pow10 [MaxDecimals + PriceDecimals + 1]uint256.Int

func init() {
	ten := uint256.NewInt(10)
	pow10[0].SetOne()
	for i := 1; i < len(pow10); i++ {
		pow10[i].Mul(&pow10[i-1], ten)
	}
}

// Pow10 returns 10^n as a fresh integer
func Pow10(n int) *uint256.Int {
	if n < 0 || n >= len(pow10) {
		panic("fixed: pow10 exponent out of range")
	}

	return pow10[n].Clone()
}

// MaxUint256 the largest representable magnitude
func MaxUint256() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// fromDecimal shifts d by exp places and truncates it into a 256-bit integer
func fromDecimal(d decimal.Decimal, exp int32) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegative
	}

	v, overflow := uint256.FromBig(d.Shift(exp).Truncate(0).BigInt())
	if overflow {
		return nil, ErrOverflow
	}

	return v, nil
}

func toDecimal(v *uint256.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(v.ToBig(), -decimals)
}

func validDecimals(decimals uint8) error {
	if decimals > MaxDecimals {
		return ErrDecimals
	}

	return nil
}
