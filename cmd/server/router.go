package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riverline/items-api/internal/api"
	apimiddleware "github.com/riverline/items-api/internal/api/middleware"
	"github.com/riverline/items-api/internal/service"
)

// setupRouter configures the application router: standard chi middleware,
// trace and metrics instrumentation, the pre-parse content-type guard, and
// the items routes.
func setupRouter(itemService service.ItemService, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)
	r.Use(apimiddleware.Metrics)
	// The guard sits after instrumentation but before anything that could
	// read the body.
	r.Use(apimiddleware.RequireJSONContentType)

	itemHandler := api.NewItemHandler(itemService, log)

	r.Route("/items", func(r chi.Router) {
		r.Post("/", itemHandler.CreateItem)
		r.Get("/", itemHandler.ListItems)
		r.Get("/{id}", itemHandler.GetItem)
		r.Patch("/{id}", itemHandler.UpdateItem)
		r.Delete("/{id}", itemHandler.DeleteItem)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
