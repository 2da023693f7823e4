package fixed

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Price usd price of one whole token, 8 decimals
type Price struct {
	value uint256.Int
}

// NewPrice price from a decimal usd figure, digits beyond 8 decimals are truncated
func NewPrice(d decimal.Decimal) (Price, error) {
	v, err := fromDecimal(d, PriceDecimals)
	if err != nil {
		return Price{}, err
	}

	return Price{value: *v}, nil
}

// ParsePrice parses a decimal usd string like "2000.5"
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, err
	}

	return NewPrice(d)
}

// Int raw magnitude
func (p Price) Int() *uint256.Int {
	return p.value.Clone()
}

// IsZero is zero
func (p Price) IsZero() bool {
	return p.value.IsZero()
}

// Decimal usd price
func (p Price) Decimal() decimal.Decimal {
	return toDecimal(&p.value, PriceDecimals)
}

func (p Price) String() string {
	return p.Decimal().String()
}

// MarshalText usd price as a decimal string
func (p Price) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// USD a usd value, 18 decimals
type USD struct {
	value uint256.Int
}

// NewUSD usd value from a decimal figure, truncated to 18 decimals
func NewUSD(d decimal.Decimal) (USD, error) {
	v, err := fromDecimal(d, USDDecimals)
	if err != nil {
		return USD{}, err
	}

	return USD{value: *v}, nil
}

// USDFromInt usd value from a raw 18 decimals magnitude
func USDFromInt(v *uint256.Int) USD {
	var u USD
	if v != nil {
		u.value.Set(v)
	}
	return u
}

// Int raw magnitude
func (u USD) Int() *uint256.Int {
	return u.value.Clone()
}

// IsZero is zero
func (u USD) IsZero() bool {
	return u.value.IsZero()
}

// Cmp compares two usd values
func (u USD) Cmp(o USD) int {
	return u.value.Cmp(&o.value)
}

// Add u + o
func (u USD) Add(o USD) (USD, error) {
	var z USD
	if _, overflow := z.value.AddOverflow(&u.value, &o.value); overflow {
		return USD{}, ErrOverflow
	}

	return z, nil
}

// Sub u - o, fails below zero
func (u USD) Sub(o USD) (USD, error) {
	var z USD
	if _, underflow := z.value.SubOverflow(&u.value, &o.value); underflow {
		return USD{}, ErrUnderflow
	}

	return z, nil
}

// Scale multiplies by a non-negative ratio, the ratio is truncated to 18 decimals
func (u USD) Scale(r decimal.Decimal) (USD, error) {
	ratio, err := fromDecimal(r, RatioDecimals)
	if err != nil {
		return USD{}, err
	}

	var z USD
	if _, overflow := z.value.MulDivOverflow(&u.value, ratio, &pow10[RatioDecimals]); overflow {
		return USD{}, ErrOverflow
	}

	return z, nil
}

// Ratio u / o with 18 decimals, truncated
func (u USD) Ratio(o USD) (decimal.Decimal, error) {
	if o.value.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}

	z, overflow := new(uint256.Int).MulDivOverflow(&u.value, &pow10[RatioDecimals], &o.value)
	if overflow {
		return decimal.Zero, ErrOverflow
	}

	return toDecimal(z, RatioDecimals), nil
}

// Decimal usd figure
func (u USD) Decimal() decimal.Decimal {
	return toDecimal(&u.value, USDDecimals)
}

func (u USD) String() string {
	return u.Decimal().String()
}

// MarshalText usd figure as a decimal string
func (u USD) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}
