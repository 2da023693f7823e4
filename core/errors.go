package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000

	// ErrMarketNotFound no market data for the token
	ErrMarketNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInvalidPrice invalid price
	ErrInvalidPrice ErrorCode = 100108

	// ErrInvalidLeverage leverage below 1
	ErrInvalidLeverage ErrorCode = 100200
	// ErrInvalidLeverageDirection unloop above current leverage or loop below it
	ErrInvalidLeverageDirection ErrorCode = 100201
	// ErrLeverageAboveMax target above the market bound
	ErrLeverageAboveMax ErrorCode = 100202
	// ErrDegeneratePosition equity <= 0. The calculators only set
	// LeverageState.Degenerate, callers that refuse to act on such a position
	// return this code.
	ErrDegeneratePosition ErrorCode = 100203
	// ErrMissingPriceOrDecimals token metadata incomplete
	ErrMissingPriceOrDecimals ErrorCode = 100204
	// ErrArithmeticFault overflow or division fault
	ErrArithmeticFault ErrorCode = 100205
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                  "unknown error",
	ErrMarketNotFound:           "market not found",
	ErrInvalidAmount:            "invalid amount",
	ErrInvalidPrice:             "invalid price",
	ErrInvalidLeverage:          "leverage must be at least 1",
	ErrInvalidLeverageDirection: "desired leverage cannot exceed current for unloop",
	ErrLeverageAboveMax:         "desired leverage exceeds max leverage",
	ErrDegeneratePosition:       "position has no equity",
	ErrMissingPriceOrDecimals:   "missing token price or decimals",
	ErrArithmeticFault:          "arithmetic fault",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}
