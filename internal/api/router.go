package api

import (
	_ "curex/docs"
	"curex/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
	"github.com/ulule/limiter/v3"
)

// NewRouter mounts the API. refreshLimiter guards the only endpoint that
// spends provider quota; nil disables it.
func NewRouter(h *handler.Handler, refreshLimiter *limiter.Limiter) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", h.GetCatalog)

		r.Get("/selection", h.GetSelection)
		r.Post("/selection", h.AddCurrency)
		r.Delete("/selection", h.ResetSelection)
		r.Put("/selection/order", h.ReorderSelection)
		r.Delete("/selection/values", h.ClearValues)
		r.Delete("/selection/{code:[A-Za-z]{3}}", h.RemoveCurrency)
		r.Put("/selection/{code:[A-Za-z]{3}}/amount", h.SetAmount)

		r.Get("/convert", h.Convert)

		r.Get("/rates", h.GetRates)
		r.Group(func(r chi.Router) {
			if refreshLimiter != nil {
				r.Use(RateLimit(refreshLimiter))
			}
			r.Post("/rates/refresh", h.RefreshRates)
		})
		r.Get("/rates/history/{base:[A-Za-z]{3}}/{quote:[A-Za-z]{3}}", h.GetHistory)

		r.Get("/quota", h.GetQuota)
	})
	return router
}
