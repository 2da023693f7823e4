package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"leverage/core"
	"leverage/internal/lending"
	"leverage/pkg/resthttp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

type reserveResponse struct {
	Address            common.Address `json:"address"`
	LTV                int64          `json:"ltv"`
	LiquidityRate      string         `json:"liquidity_rate"`
	VariableBorrowRate string         `json:"variable_borrow_rate"`
	BorrowingEnabled   bool           `json:"borrowing_enabled"`
}

type service struct {
	endpoint string
	limiter  *rate.Limiter
}

// New new market data service backed by the market data http api
func New(cfg core.MarketData) core.IMarketDataService {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &service{
		endpoint: strings.TrimSuffix(cfg.EndPoint, "/"),
		limiter:  rate.NewLimiter(limit, burst),
	}
}

func (s *service) Token(ctx context.Context, address common.Address) (*core.Token, error) {
	var token core.Token
	if err := s.get(ctx, fmt.Sprintf("/tokens/%s", address.Hex()), &token); err != nil {
		return nil, err
	}

	token.Address = address
	return &token, nil
}

func (s *service) Reserve(ctx context.Context, address common.Address) (*core.Reserve, error) {
	var resp reserveResponse
	if err := s.get(ctx, fmt.Sprintf("/reserves/%s", address.Hex()), &resp); err != nil {
		return nil, err
	}

	supplyAPR, err := lending.FromRay(resp.LiquidityRate)
	if err != nil {
		return nil, err
	}

	borrowAPR, err := lending.FromRay(resp.VariableBorrowRate)
	if err != nil {
		return nil, err
	}

	return &core.Reserve{
		Address:    address,
		LTV:        decimal.NewFromInt(resp.LTV).Shift(-4),
		SupplyAPY:  lending.APY(supplyAPR),
		BorrowAPY:  lending.APY(borrowAPR),
		Borrowable: resp.BorrowingEnabled,
	}, nil
}

func (s *service) MaxLeverage(ctx context.Context, collateral, debt common.Address) (decimal.Decimal, error) {
	return maxLeverage(ctx, s, collateral, debt)
}

func (s *service) get(ctx context.Context, path string, obj interface{}) error {
	log := logger.FromContext(ctx).WithField("service", "market")

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	url := s.endpoint + path
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		log.WithError(err).Errorln("request market data", url)
		return err
	}

	if err := resthttp.ParseResponse(resp, obj); err != nil {
		var e *resthttp.Error
		if errors.As(err, &e) && e.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", path, core.ErrMarketNotFound)
		}

		log.WithError(err).Errorln("parse market data", url)
		return err
	}

	return nil
}

func maxLeverage(ctx context.Context, s core.IMarketDataService, collateral, debt common.Address) (decimal.Decimal, error) {
	c, err := s.Reserve(ctx, collateral)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := s.Reserve(ctx, debt)
	if err != nil {
		return decimal.Zero, err
	}

	return lending.PairMaxLeverage(c, d)
}
