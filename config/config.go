package config

import (
	"time"

	"leverage/core"
	"leverage/pkg/leverage"
	"leverage/worker/quoter"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, LEVERAGE_ prefixed env vars override it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LEVERAGE")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultConfig(config)
	return nil
}

func defaultConfig(cfg *core.Config) {
	if cfg.MarketData.RateLimit <= 0 {
		cfg.MarketData.RateLimit = 10
	}

	if cfg.MarketData.Burst <= 0 {
		cfg.MarketData.Burst = 20
	}

	if cfg.MarketData.CacheSize <= 0 {
		cfg.MarketData.CacheSize = 2048
	}

	if cfg.MarketData.CacheTTL <= 0 {
		cfg.MarketData.CacheTTL = 30 * time.Second
	}

	if cfg.Leverage.SwapBufferBps == 0 {
		cfg.Leverage.SwapBufferBps = leverage.SwapBufferBps
	}

	if cfg.Leverage.AccrualBufferBps == 0 {
		cfg.Leverage.AccrualBufferBps = leverage.AccrualBufferBps
	}

	if cfg.Quote.Debounce <= 0 {
		cfg.Quote.Debounce = quoter.DefaultDebounce
	}

	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = time.Minute
	}
}
