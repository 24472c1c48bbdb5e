package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kayako-bot/internal/api/http/handlers"
	"github.com/spec-kit/kayako-bot/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Messages       *handlers.MessagesHandler
	Metrics        *handlers.MetricsHandler
	HostMiddleware *auth.HostMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Get)

	v1 := app.Group("/v1", cfg.HostMiddleware.Handle)
	v1.Post("/messages", cfg.Messages.Dispatch)
}
