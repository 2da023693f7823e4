package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"leverage/core"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{fmt.Errorf("target: %w", core.ErrInvalidLeverageDirection), http.StatusUnprocessableEntity, 100201},
		{core.ErrLeverageAboveMax, http.StatusUnprocessableEntity, 100202},
		{core.ErrDegeneratePosition, http.StatusUnprocessableEntity, 100203},
		{fmt.Errorf("debt: %w", core.ErrInvalidPrice), http.StatusBadRequest, 100108},
		{fmt.Errorf("debt: %w", core.ErrMissingPriceOrDecimals), http.StatusBadRequest, 100204},
		{core.ErrInvalidLeverage, http.StatusBadRequest, 100200},
		{core.ErrMarketNotFound, http.StatusNotFound, 100100},
		{core.ErrArithmeticFault, http.StatusInternalServerError, 100205},
		{errors.New("boom"), http.StatusInternalServerError, 100000},
	}

	for _, c := range cases {
		status, code := Get(c.err)
		assert.Equal(t, c.status, status, c.err.Error())
		assert.Equal(t, c.code, code, c.err.Error())
	}
}
