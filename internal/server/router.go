package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"expression-calculator/internal/calculator"
	"expression-calculator/internal/expression"
	"expression-calculator/internal/handlers"
	"expression-calculator/internal/observability"
)

func NewRouter(calc *expression.Calculator) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calculator.NewHandlers(calc))

	return r
}
