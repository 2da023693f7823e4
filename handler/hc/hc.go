package hc

import (
	"net/http"
	"time"

	"leverage/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request
func Handle(ver string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, time.Now()))
	return r
}

func handle(version string, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, render.H{
			"uptime":     time.Since(startedAt).Truncate(time.Millisecond).String(),
			"started_at": startedAt.UTC().Format(time.RFC3339),
			"version":    version,
		})
	}
}
