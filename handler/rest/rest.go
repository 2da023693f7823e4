package rest

import (
	"errors"
	"net/http"

	"leverage/core"
	"leverage/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(leverageSrv core.ILeverageService, marketSrv core.IMarketDataService) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Route("/positions", func(r chi.Router) {
		r.Post("/leverage", leverageHandler(leverageSrv))
		r.Post("/unloop", unloopHandler(leverageSrv))
		r.Post("/loop", loopHandler(leverageSrv, marketSrv))
	})
	router.Get("/earnings", earningsHandler(leverageSrv))
	router.Get("/markets/max-leverage", maxLeverageHandler(marketSrv))

	return router
}
