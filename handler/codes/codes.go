package codes

import (
	"errors"
	"net/http"

	"leverage/core"
)

const (
	// InvalidArguments malformed request
	InvalidArguments = 100001
)

// Get http status and error code of err
func Get(err error) (status int, code int) {
	var c core.ErrorCode
	if !errors.As(err, &c) {
		return http.StatusInternalServerError, int(core.ErrUnknown)
	}

	switch c {
	case core.ErrMarketNotFound:
		status = http.StatusNotFound
	case core.ErrInvalidAmount,
		core.ErrInvalidPrice,
		core.ErrInvalidLeverage,
		core.ErrMissingPriceOrDecimals:
		status = http.StatusBadRequest
	case core.ErrInvalidLeverageDirection,
		core.ErrLeverageAboveMax,
		core.ErrDegeneratePosition:
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}

	return status, int(c)
}
