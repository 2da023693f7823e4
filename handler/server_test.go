package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"leverage/core"
	"leverage/service/position"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type marketStub struct{}

func (marketStub) Token(ctx context.Context, address common.Address) (*core.Token, error) {
	return nil, core.ErrMarketNotFound
}

func (marketStub) Reserve(ctx context.Context, address common.Address) (*core.Reserve, error) {
	return nil, core.ErrMarketNotFound
}

func (marketStub) MaxLeverage(ctx context.Context, collateral, debt common.Address) (decimal.Decimal, error) {
	return decimal.NewFromInt(4), nil
}

func TestHandler(t *testing.T) {
	srv := httptest.NewServer(New("test", position.New(marketStub{}, core.Leverage{}), marketStub{}).Handler())
	defer srv.Close()

	for _, tc := range []struct {
		path   string
		status int
	}{
		{"/hc", http.StatusOK},
		{"/hc/", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/earnings?supplied=100&supply_apy=12&months=1", http.StatusOK},
		{"/api/unknown", http.StatusNotFound},
	} {
		path, status := tc.path, tc.status
		resp, err := http.Get(srv.URL + path)
		if assert.NoError(t, err, path) {
			assert.Equal(t, status, resp.StatusCode, path)
			resp.Body.Close()
		}
	}
}
