package position

import (
	"context"
	"time"

	"leverage/core"
	"leverage/pkg/fixed"
	"leverage/pkg/leverage"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/yiplee/structs"
)

type unloopSummary struct {
	Repay     string `json:"repay"`
	Withdraw  string `json:"withdraw"`
	Swap      string `json:"swap"`
	FullClose bool   `json:"full_close"`
}

type loopSummary struct {
	Borrow string `json:"borrow"`
	MinOut string `json:"min_out"`
}

type service struct {
	marketSrv core.IMarketDataService
	buffers   leverage.Buffers
	metrics   *metrics
}

// New new leverage service, marketSrv may be nil when callers always supply
// complete token metadata
func New(marketSrv core.IMarketDataService, cfg core.Leverage) core.ILeverageService {
	return &service{
		marketSrv: marketSrv,
		buffers:   leverage.BuffersFromConfig(cfg),
		metrics:   defaultMetrics(),
	}
}

func (s *service) Position(ctx context.Context, req *core.PositionRequest) (*core.Position, error) {
	for _, b := range []*core.Balance{&req.Collateral, &req.Debt} {
		if err := s.resolve(ctx, &b.Token); err != nil {
			return nil, err
		}
	}

	return leverage.NewPosition(req)
}

// resolve fills missing decimals or price from the market data provider,
// caller supplied values win
func (s *service) resolve(ctx context.Context, token *core.Token) error {
	if token.Complete() || s.marketSrv == nil {
		return nil
	}

	t, err := s.marketSrv.Token(ctx, token.Address)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("resolve token", token.Address.Hex())
		return err
	}

	token.Merge(t)
	return nil
}

func (s *service) Leverage(ctx context.Context, position *core.Position) (state *core.LeverageState, err error) {
	defer s.track(ctx, "leverage", time.Now(), &err)
	return leverage.Solve(position)
}

func (s *service) Unloop(ctx context.Context, position *core.Position, target decimal.Decimal) (params *core.UnloopParameters, err error) {
	defer s.track(ctx, "unloop", time.Now(), &err)

	params, err = leverage.Unloop(position, target, s.buffers)
	if err == nil {
		logger.FromContext(ctx).WithFields(structs.Map(unloopSummary{
			Repay:     params.RepayAmount.String(),
			Withdraw:  params.Withdraw.String(),
			Swap:      params.Swap.AmountToSwap.String(),
			FullClose: params.FullClose,
		})).Debugln("unloop", target)
	}
	return params, err
}

func (s *service) Loop(ctx context.Context, position *core.Position, target, maxLeverage decimal.Decimal, deposit *fixed.Amount) (params *core.LoopParameters, err error) {
	defer s.track(ctx, "loop", time.Now(), &err)

	params, err = leverage.Loop(position, target, maxLeverage, deposit, s.buffers)
	if err == nil {
		logger.FromContext(ctx).WithFields(structs.Map(loopSummary{
			Borrow: params.BorrowAmount.String(),
			MinOut: params.MinCollateralOut.String(),
		})).Debugln("loop", target)
	}
	return params, err
}

func (s *service) Earnings(ctx context.Context, input *core.EarningsInput) (earnings *core.Earnings, err error) {
	defer s.track(ctx, "earnings", time.Now(), &err)
	return leverage.EstimateEarnings(input)
}

func (s *service) PositionEarnings(ctx context.Context, position *core.Position, supplyAPY, borrowAPY decimal.Decimal, months int64) (earnings *core.Earnings, err error) {
	defer s.track(ctx, "position_earnings", time.Now(), &err)

	state, err := leverage.Solve(position)
	if err != nil {
		return nil, err
	}

	return leverage.EstimatePositionEarnings(state, supplyAPY, borrowAPY, months)
}

func (s *service) track(ctx context.Context, operation string, start time.Time, err *error) {
	s.metrics.observe(operation, time.Since(start).Seconds(), *err)

	if *err != nil {
		logger.FromContext(ctx).WithError(*err).WithField("operation", operation).Infoln("calculation rejected")
	}
}
