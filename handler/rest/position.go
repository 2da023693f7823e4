package rest

import (
	"fmt"
	"net/http"

	"leverage/core"
	"leverage/handler/param"
	"leverage/handler/render"
	"leverage/handler/views"
	"leverage/pkg/fixed"

	"github.com/shopspring/decimal"
)

type positionParams struct {
	core.PositionRequest
	Target decimal.Decimal `json:"target"`
	// Deposit optional collateral supplied before looping
	Deposit string `json:"deposit" valid:"numeric,optional"`
}

func leverageHandler(leverageSrv core.ILeverageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params positionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		position, err := leverageSrv.Position(ctx, &params.PositionRequest)
		if err != nil {
			render.Fail(w, err)
			return
		}

		state, err := leverageSrv.Leverage(ctx, position)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, views.Leverage{LeverageState: state, Position: position})
	}
}

func unloopHandler(leverageSrv core.ILeverageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params positionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		position, err := leverageSrv.Position(ctx, &params.PositionRequest)
		if err != nil {
			render.Fail(w, err)
			return
		}

		state, err := leverageSrv.Leverage(ctx, position)
		if err != nil {
			render.Fail(w, err)
			return
		}

		unloop, err := leverageSrv.Unloop(ctx, position, params.Target)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, views.Unloop{UnloopParameters: unloop, Target: params.Target, State: state})
	}
}

func loopHandler(leverageSrv core.ILeverageService, marketSrv core.IMarketDataService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params positionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		position, err := leverageSrv.Position(ctx, &params.PositionRequest)
		if err != nil {
			render.Fail(w, err)
			return
		}

		var deposit *fixed.Amount
		if params.Deposit != "" {
			d, err := fixed.ParseAmount(params.Deposit, position.Collateral.Decimals())
			if err != nil {
				render.Fail(w, fmt.Errorf("deposit: %v: %w", err, core.ErrInvalidAmount))
				return
			}
			deposit = &d
		}

		maxLeverage, err := marketSrv.MaxLeverage(ctx, position.CollateralToken, position.DebtToken)
		if err != nil {
			render.Fail(w, err)
			return
		}

		state, err := leverageSrv.Leverage(ctx, position)
		if err != nil {
			render.Fail(w, err)
			return
		}

		loop, err := leverageSrv.Loop(ctx, position, params.Target, maxLeverage, deposit)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, views.Loop{LoopParameters: loop, Target: params.Target, MaxLeverage: maxLeverage, State: state})
	}
}
