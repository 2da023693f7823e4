package fixed

import (
	"github.com/holiman/uint256"
)

// ToUSD value of amount at price.
//
// usd = amount * price * 10^18 / 10^(decimals + 8), truncated so that no value is created.
func ToUSD(a Amount, p Price) (USD, error) {
	if err := validDecimals(a.decimals); err != nil {
		return USD{}, err
	}

	var z USD
	exp := int(a.decimals) + PriceDecimals
	if exp >= USDDecimals {
		if _, overflow := z.value.MulDivOverflow(&a.value, &p.value, &pow10[exp-USDDecimals]); overflow {
			return USD{}, ErrOverflow
		}

		return z, nil
	}

	if _, overflow := z.value.MulOverflow(&a.value, &p.value); overflow {
		return USD{}, ErrOverflow
	}
	if _, overflow := z.value.MulOverflow(&z.value, &pow10[USDDecimals-exp]); overflow {
		return USD{}, ErrOverflow
	}

	return z, nil
}

// FromUSD token amount worth usd at price, truncated.
//
// amount = usd * 10^(decimals + 8) / (price * 10^18)
func FromUSD(u USD, p Price, decimals uint8) (Amount, error) {
	if err := validDecimals(decimals); err != nil {
		return Amount{}, err
	}

	if p.value.IsZero() {
		return Amount{}, ErrZeroPrice
	}

	z := Amount{decimals: decimals}
	exp := int(decimals) + PriceDecimals
	if exp >= USDDecimals {
		if _, overflow := z.value.MulDivOverflow(&u.value, &pow10[exp-USDDecimals], &p.value); overflow {
			return Amount{}, ErrOverflow
		}

		return z, nil
	}

	den, overflow := new(uint256.Int).MulOverflow(&p.value, &pow10[USDDecimals-exp])
	if overflow {
		return Amount{}, ErrOverflow
	}

	z.value.Div(&u.value, den)
	return z, nil
}
