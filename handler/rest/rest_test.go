package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leverage/core"
	"leverage/service/position"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usdc = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	weth = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
)

type marketStub struct{}

func (marketStub) Token(ctx context.Context, address common.Address) (*core.Token, error) {
	decimals := map[common.Address]uint8{usdc: 6, weth: 18}
	prices := map[common.Address]string{usdc: "1", weth: "2000"}

	d, ok := decimals[address]
	if !ok {
		return nil, core.ErrMarketNotFound
	}

	return &core.Token{
		Address:  address,
		Decimals: &d,
		Price:    decimal.NewNullDecimal(decimal.RequireFromString(prices[address])),
	}, nil
}

func (marketStub) Reserve(ctx context.Context, address common.Address) (*core.Reserve, error) {
	return nil, core.ErrMarketNotFound
}

func (marketStub) MaxLeverage(ctx context.Context, collateral, debt common.Address) (decimal.Decimal, error) {
	return decimal.NewFromInt(4), nil
}

func handler() http.Handler {
	return Handle(position.New(marketStub{}, core.Leverage{}), marketStub{})
}

func positionBody(extra string) string {
	return `{
		"collateral": {"token": {"address": "` + usdc.Hex() + `"}, "amount": "1000000000"},
		"debt": {"token": {"address": "` + weth.Hex() + `"}, "amount": "250000000000000000"}` + extra + `
	}`
}

func do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	w := httptest.NewRecorder()
	handler().ServeHTTP(w, r)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestLeverageHandler(t *testing.T) {
	w, resp := do(t, http.MethodPost, "/positions/leverage", positionBody(""))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2", resp["leverage"])
	assert.Equal(t, "500", resp["equity_usd"])
	assert.Equal(t, false, resp["degenerate"])
}

func TestUnloopHandler(t *testing.T) {
	w, resp := do(t, http.MethodPost, "/positions/unloop", positionBody(`, "target": "1.5"`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "125000000000000000", resp["repay_amount_token"])
	assert.Equal(t, map[string]interface{}{"amount": "250000000"}, resp["withdraw_amount"])
	assert.Equal(t, "255000000", resp["a_token_amount"])
	assert.Equal(t, "1.5", resp["target"])

	w, resp = do(t, http.MethodPost, "/positions/unloop", positionBody(`, "target": "1"`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]interface{}{"all": true}, resp["withdraw_amount"])
	assert.Equal(t, true, resp["full_close"])

	w, resp = do(t, http.MethodPost, "/positions/unloop", positionBody(`, "target": "3"`))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.EqualValues(t, core.ErrInvalidLeverageDirection, resp["code"])
}

func TestLoopHandler(t *testing.T) {
	w, resp := do(t, http.MethodPost, "/positions/loop", positionBody(`, "target": "3"`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "250000000000000000", resp["borrow_amount"])
	assert.Equal(t, "497500000", resp["min_collateral_out"])
	assert.Equal(t, "4", resp["max_leverage"])

	w, resp = do(t, http.MethodPost, "/positions/loop", positionBody(`, "target": "4.5"`))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.EqualValues(t, core.ErrLeverageAboveMax, resp["code"])

	w, _ = do(t, http.MethodPost, "/positions/loop", positionBody(`, "target": "3", "deposit": "1.5"`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPositionHandlerErrors(t *testing.T) {
	w, _ := do(t, http.MethodPost, "/positions/leverage", `{"collateral": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := `{
		"collateral": {"token": {"address": "0x0000000000000000000000000000000000000001"}, "amount": "1"},
		"debt": {"token": {"address": "` + weth.Hex() + `"}, "amount": "1"}
	}`
	w, resp := do(t, http.MethodPost, "/positions/leverage", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, core.ErrMarketNotFound, resp["code"])

	body = `{
		"collateral": {"token": {"address": "` + usdc.Hex() + `"}, "amount": "-5"},
		"debt": {"token": {"address": "` + weth.Hex() + `"}, "amount": "1"}
	}`
	w, resp = do(t, http.MethodPost, "/positions/leverage", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, core.ErrInvalidAmount, resp["code"])
}

func TestEarningsHandler(t *testing.T) {
	w, resp := do(t, http.MethodGet, "/earnings?supplied=10000&supply_apy=6&borrowed=5000&borrow_apy=3&months=12", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "600", resp["interest_gain"])
	assert.Equal(t, "150", resp["interest_loss"])
	assert.Equal(t, "450", resp["net"])

	w, _ = do(t, http.MethodGet, "/earnings?supplied=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = do(t, http.MethodGet, "/earnings?supplied=100&months=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, core.ErrInvalidAmount, resp["code"])
}

func TestMaxLeverageHandler(t *testing.T) {
	w, resp := do(t, http.MethodGet, "/markets/max-leverage?collateral="+usdc.Hex()+"&debt="+weth.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "4", resp["max_leverage"])
	assert.Equal(t, usdc.Hex(), resp["collateral"])

	w, _ = do(t, http.MethodGet, "/markets/max-leverage?collateral=0x12", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, http.MethodGet, "/markets/max-leverage?collateral="+usdc.Hex(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotFound(t *testing.T) {
	w, _ := do(t, http.MethodGet, "/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
