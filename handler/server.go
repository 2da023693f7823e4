package handler

import (
	"net/http"

	"leverage/core"
	"leverage/handler/hc"
	"leverage/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Server server
type Server struct {
	version     string
	leverageSrv core.ILeverageService
	marketSrv   core.IMarketDataService
}

// New new server function
func New(
	version string,
	leverageSrv core.ILeverageService,
	marketSrv core.IMarketDataService,
) Server {
	return Server{
		version:     version,
		leverageSrv: leverageSrv,
		marketSrv:   marketSrv,
	}
}

// Handler root handler with hc, metrics and the restful apis mounted
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	{
		//hc
		mux.Mount("/hc", hc.Handle(s.version))
	}

	{
		//metrics
		mux.Handle("/metrics", promhttp.Handler())
	}

	{
		//restful api
		mux.Mount("/api", s.HandleRestAPI())
	}

	return mux
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	return rest.Handle(s.leverageSrv, s.marketSrv)
}
