package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"leverage/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usdc = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	weth = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	dai  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
)

func newServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/tokens/"+usdc.Hex(), func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		w.Write([]byte(`{"address":"` + usdc.Hex() + `","symbol":"USDC","decimals":6,"price_usd":"1.0001"}`))
	})
	mux.HandleFunc("/tokens/"+dai.Hex(), func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		w.Write([]byte(`{"address":"` + dai.Hex() + `","symbol":"DAI","decimals":18}`))
	})
	mux.HandleFunc("/reserves/"+usdc.Hex(), func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		w.Write([]byte(`{"address":"` + usdc.Hex() + `","ltv":7500,"liquidity_rate":"30000000000000000000000000","variable_borrow_rate":"50000000000000000000000000","borrowing_enabled":true}`))
	})
	mux.HandleFunc("/reserves/"+weth.Hex(), func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		w.Write([]byte(`{"address":"` + weth.Hex() + `","ltv":8000,"liquidity_rate":"10000000000000000000000000","variable_borrow_rate":"20000000000000000000000000","borrowing_enabled":true}`))
	})
	mux.HandleFunc("/reserves/"+dai.Hex(), func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		w.Write([]byte(`{"address":"` + dai.Hex() + `","ltv":7700,"liquidity_rate":"0","variable_borrow_rate":"0","borrowing_enabled":false}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestToken(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits)
	s := New(core.MarketData{EndPoint: srv.URL + "/"})

	token, err := s.Token(context.Background(), usdc)
	require.NoError(t, err)
	assert.Equal(t, "USDC", token.Symbol)
	require.NotNil(t, token.Decimals)
	assert.EqualValues(t, 6, *token.Decimals)
	assert.True(t, token.Price.Valid)
	assert.Equal(t, "1.0001", token.Price.Decimal.String())
	assert.NoError(t, token.Validate())

	token, err = s.Token(context.Background(), dai)
	require.NoError(t, err)
	assert.False(t, token.Price.Valid)
	assert.ErrorIs(t, token.Validate(), core.ErrMissingPriceOrDecimals)
}

func TestTokenNotFound(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits)
	s := New(core.MarketData{EndPoint: srv.URL})

	_, err := s.Token(context.Background(), weth)
	assert.ErrorIs(t, err, core.ErrMarketNotFound)
}

func TestReserve(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits)
	s := New(core.MarketData{EndPoint: srv.URL})

	r, err := s.Reserve(context.Background(), usdc)
	require.NoError(t, err)
	assert.Equal(t, "0.75", r.LTV.String())
	assert.True(t, r.Borrowable)
	// e^0.03 - 1, e^0.05 - 1
	assert.Equal(t, "3.04", r.SupplyAPY.Truncate(2).String())
	assert.Equal(t, "5.12", r.BorrowAPY.Truncate(2).String())
}

func TestMaxLeverage(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits)
	s := New(core.MarketData{EndPoint: srv.URL})

	l, err := s.MaxLeverage(context.Background(), usdc, weth)
	require.NoError(t, err)
	assert.Equal(t, "4", l.String())

	l, err = s.MaxLeverage(context.Background(), weth, usdc)
	require.NoError(t, err)
	assert.Equal(t, "5", l.String())

	_, err = s.MaxLeverage(context.Background(), usdc, dai)
	assert.ErrorIs(t, err, core.ErrInvalidLeverage)
}

func TestRateLimitCanceled(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits)
	s := New(core.MarketData{EndPoint: srv.URL, RateLimit: 0.001, Burst: 1})

	_, err := s.Token(context.Background(), usdc)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = s.Token(ctx, usdc)
	assert.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))
}

func TestCache(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits)
	s := Cache(New(core.MarketData{EndPoint: srv.URL}), 16, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := s.Token(context.Background(), usdc)
			assert.NoError(t, err)
			assert.Equal(t, "USDC", token.Symbol)
		}()
	}
	wg.Wait()

	token, err := s.Token(context.Background(), usdc)
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt64(&hits), int64(8))

	before := atomic.LoadInt64(&hits)
	*token.Decimals = 18
	token, err = s.Token(context.Background(), usdc)
	require.NoError(t, err)
	assert.EqualValues(t, 6, *token.Decimals)
	assert.Equal(t, before, atomic.LoadInt64(&hits))

	l, err := s.MaxLeverage(context.Background(), usdc, weth)
	require.NoError(t, err)
	assert.Equal(t, "4", l.String())
	before = atomic.LoadInt64(&hits)
	_, err = s.MaxLeverage(context.Background(), usdc, weth)
	require.NoError(t, err)
	assert.Equal(t, before, atomic.LoadInt64(&hits))
}

func TestCacheExpiration(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits)
	s := Cache(New(core.MarketData{EndPoint: srv.URL}), 16, 20*time.Millisecond)

	_, err := s.Reserve(context.Background(), weth)
	require.NoError(t, err)
	_, err = s.Reserve(context.Background(), weth)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))

	time.Sleep(40 * time.Millisecond)
	_, err = s.Reserve(context.Background(), weth)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&hits))
}

func TestCacheErrorNotCached(t *testing.T) {
	var hits int64
	srv := newServer(t, &hits)
	s := Cache(New(core.MarketData{EndPoint: srv.URL}), 16, time.Minute)

	_, err := s.Token(context.Background(), weth)
	assert.ErrorIs(t, err, core.ErrMarketNotFound)
	_, err = s.Token(context.Background(), weth)
	assert.ErrorIs(t, err, core.ErrMarketNotFound)
}
