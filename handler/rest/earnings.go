package rest

import (
	"errors"
	"net/http"

	"leverage/core"
	"leverage/handler/param"
	"leverage/handler/render"
	"leverage/handler/views"

	"github.com/ethereum/go-ethereum/common"
)

func earningsHandler(leverageSrv core.ILeverageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params core.EarningsInput
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		earnings, err := leverageSrv.Earnings(r.Context(), &params)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, earnings)
	}
}

func maxLeverageHandler(marketSrv core.IMarketDataService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Collateral common.Address `json:"collateral"`
			Debt       common.Address `json:"debt"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Collateral == (common.Address{}) || params.Debt == (common.Address{}) {
			render.BadRequest(w, errors.New("collateral and debt are required"))
			return
		}

		l, err := marketSrv.MaxLeverage(r.Context(), params.Collateral, params.Debt)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, views.MaxLeverage{
			Collateral:  params.Collateral.Hex(),
			Debt:        params.Debt.Hex(),
			MaxLeverage: l,
		})
	}
}
