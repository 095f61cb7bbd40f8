package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lexvault/srs-api/internal/api"
	authmiddleware "github.com/lexvault/srs-api/internal/api/middleware"
)

// setupRouter builds the HTTP routing tree: common middleware, a public
// health check, and the authenticated API surface.
func (app *application) setupRouter() http.Handler {
	itemHandler := api.NewItemHandler(app.itemService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	auth := authmiddleware.NewAuthMiddleware(app.config.Auth.JWTSecret)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(authmiddleware.TraceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Post("/items", itemHandler.CreateItem)
		r.Get("/items/{id}", itemHandler.GetItem)
		r.Delete("/items/{id}", itemHandler.DeleteItem)

		r.Get("/queue", reviewHandler.GetQueue)
		r.Post("/items/{id}/review", reviewHandler.SubmitReview)
		r.Post("/items/{id}/postpone", reviewHandler.PostponeItem)
		r.Get("/items/{id}/history", reviewHandler.GetHistory)
	})

	return r
}
