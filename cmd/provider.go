package cmd

import (
	"leverage/core"
	"leverage/service/market"
	"leverage/service/position"
	"leverage/worker/marketsync"
	"leverage/worker/quoter"

	"github.com/sirupsen/logrus"
)

// ------------------service------------------------------------

// provideMarketDataService nil without an end point, callers then have to
// supply complete token metadata
func provideMarketDataService() core.IMarketDataService {
	if cfg.MarketData.EndPoint == "" {
		return nil
	}

	return market.Cache(market.New(cfg.MarketData), cfg.MarketData.CacheSize, cfg.MarketData.CacheTTL)
}

func mustProvideMarketDataService() core.IMarketDataService {
	marketSrv := provideMarketDataService()
	if marketSrv == nil {
		logrus.Fatalln("market_data.end_point is required")
	}

	return marketSrv
}

func provideLeverageService(marketSrv core.IMarketDataService) core.ILeverageService {
	return position.New(marketSrv, cfg.Leverage)
}

// ------------------worker-------------------------------------

func provideMarketSyncWorker(marketSrv core.IMarketDataService) *marketsync.Worker {
	return marketsync.New(cfg.Sync, marketSrv)
}

func provideQuoter(leverageSrv core.ILeverageService, marketSrv core.IMarketDataService) *quoter.Quoter {
	return quoter.New(leverageSrv, marketSrv, cfg.Quote)
}
