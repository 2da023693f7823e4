package market

import (
	"context"
	"fmt"
	"time"

	"leverage/core"

	"github.com/bluele/gcache"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Cache caches tokens and reserves for exp, concurrent misses of the same
// key share one upstream request
func Cache(svc core.IMarketDataService, size int, exp time.Duration) core.IMarketDataService {
	if size <= 0 {
		size = 2048
	}

	b := gcache.New(size).LRU()
	if exp > 0 {
		b = b.Expiration(exp)
	}

	return &cacheService{
		IMarketDataService: svc,
		cache:              b.Build(),
		sf:                 &singleflight.Group{},
	}
}

type cacheService struct {
	core.IMarketDataService
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheService) Token(ctx context.Context, address common.Address) (*core.Token, error) {
	key := s.tokenKey(address)
	if v, err := s.cache.Get(key); err == nil {
		if token, ok := v.(*core.Token); ok {
			return copyToken(token), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		token, err := s.IMarketDataService.Token(ctx, address)
		if err != nil {
			return nil, err
		}

		s.cache.Set(key, token)
		return token, nil
	})
	if err != nil {
		return nil, err
	}

	return copyToken(v.(*core.Token)), nil
}

func (s *cacheService) Reserve(ctx context.Context, address common.Address) (*core.Reserve, error) {
	key := s.reserveKey(address)
	if v, err := s.cache.Get(key); err == nil {
		if reserve, ok := v.(*core.Reserve); ok {
			r := *reserve
			return &r, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		reserve, err := s.IMarketDataService.Reserve(ctx, address)
		if err != nil {
			return nil, err
		}

		s.cache.Set(key, reserve)
		return reserve, nil
	})
	if err != nil {
		return nil, err
	}

	r := *v.(*core.Reserve)
	return &r, nil
}

func (s *cacheService) MaxLeverage(ctx context.Context, collateral, debt common.Address) (decimal.Decimal, error) {
	return maxLeverage(ctx, s, collateral, debt)
}

func (s *cacheService) tokenKey(address common.Address) string {
	return fmt.Sprintf("token:%s", address.Hex())
}

func (s *cacheService) reserveKey(address common.Address) string {
	return fmt.Sprintf("reserve:%s", address.Hex())
}

// callers merge into the returned token
func copyToken(t *core.Token) *core.Token {
	c := *t
	if t.Decimals != nil {
		d := *t.Decimals
		c.Decimals = &d
	}
	return &c
}
