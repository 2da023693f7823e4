package core

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Config leverage config
type Config struct {
	MarketData MarketData `json:"market_data"`
	Leverage   Leverage   `json:"leverage"`
	Quote      Quote      `json:"quote"`
	Sync       Sync       `json:"sync"`
}

// MarketData market data provider config
type MarketData struct {
	EndPoint  string        `json:"end_point"`
	RateLimit float64       `json:"rate_limit"`
	Burst     int           `json:"burst"`
	CacheSize int           `json:"cache_size"`
	CacheTTL  time.Duration `json:"cache_ttl"`
}

// Leverage calculation buffers, in basis points
type Leverage struct {
	SwapBufferBps    uint64 `json:"swap_buffer_bps"`
	AccrualBufferBps uint64 `json:"accrual_buffer_bps"`
}

// Quote quoter config
type Quote struct {
	Debounce time.Duration `json:"debounce"`
}

// Sync market sync worker config
type Sync struct {
	Interval time.Duration `json:"interval"`
	Pairs    []Pair        `json:"pairs"`
}

// Pair collateral/debt token pair
type Pair struct {
	Collateral common.Address `json:"collateral"`
	Debt       common.Address `json:"debt"`
}
