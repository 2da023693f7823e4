package lending

import (
	"fmt"

	"leverage/core"
	"leverage/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year used by the lending pool
	SecondsPerYear int64 = 31536000
	// RayDecimals rates reported by the pool are scaled by 1e27
	RayDecimals int32 = 27
	// MaxPricision max pricision
	MaxPricision int32 = 27
	// LeveragePricision max leverage is floored at this precision
	LeveragePricision int32 = 2
)

// FromRay parses a ray scaled integer into an annual rate
func FromRay(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse ray %q: %w", v, core.ErrInvalidAmount)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative ray %q: %w", v, core.ErrInvalidAmount)
	}

	return d.Shift(-RayDecimals), nil
}

// RatePerSecond rate per second
func RatePerSecond(apr decimal.Decimal) decimal.Decimal {
	return apr.DivRound(decimal.NewFromInt(SecondsPerYear), MaxPricision)
}

// APY annual percentage yield of an apr compounded every second, in percent
// apy = ((1 + apr / seconds_per_year) ^ seconds_per_year - 1) * 100
func APY(apr decimal.Decimal) decimal.Decimal {
	if !apr.IsPositive() {
		return decimal.Zero
	}

	base := decimal.NewFromInt(1).Add(RatePerSecond(apr))
	factor := pow(base, SecondsPerYear)
	return factor.Sub(decimal.NewFromInt(1)).Shift(2).Truncate(MaxPricision)
}

// pow exponentiation by squaring, truncated at every step
func pow(base decimal.Decimal, exp int64) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Truncate(MaxPricision)
		}

		base = base.Mul(base).Truncate(MaxPricision)
		exp >>= 1
	}

	return result
}

// MaxLeverage the highest leverage a looped position may reach
// max_leverage = 1 / (1 - ltv)
func MaxLeverage(ltv decimal.Decimal) (decimal.Decimal, error) {
	one := decimal.NewFromInt(1)
	if ltv.IsNegative() || ltv.GreaterThanOrEqual(one) {
		return decimal.Zero, fmt.Errorf("ltv %s: %w", ltv, core.ErrInvalidLeverage)
	}

	return number.Floor(one.DivRound(one.Sub(ltv), MaxPricision), LeveragePricision), nil
}

// PairMaxLeverage a loop is bounded by the collateral's ltv, the debt
// reserve only needs to be borrowable
func PairMaxLeverage(collateral, debt *core.Reserve) (decimal.Decimal, error) {
	if !debt.Borrowable {
		return decimal.Zero, fmt.Errorf("reserve %s not borrowable: %w", debt.Address.Hex(), core.ErrInvalidLeverage)
	}

	return MaxLeverage(collateral.LTV)
}
