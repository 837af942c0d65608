package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/bienestar-api/internal/config"
	"github.com/bienestar-app/bienestar-api/internal/handler"
	"github.com/bienestar-app/bienestar-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	CareerHandler       *handler.CareerHandler
	AnnouncementHandler *handler.AnnouncementHandler
	AuditHandler        *handler.AuditHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users", jwtMiddleware))
	}

	if deps.CareerHandler != nil {
		deps.CareerHandler.Register(api.Group("/careers", jwtMiddleware))
	}

	if deps.AnnouncementHandler != nil {
		deps.AnnouncementHandler.Register(api.Group("/announcements", jwtMiddleware))
	}

	if deps.AuditHandler != nil {
		deps.AuditHandler.Register(api.Group("/audit", jwtMiddleware))
	}
}
