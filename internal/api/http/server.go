package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/devdesk/queue-api/internal/observability"
)

// ServerConfig configures the fiber application.
type ServerConfig struct {
	AppName        string
	RequestTimeout time.Duration
	AllowedOrigins string
}

// NewServer builds the fiber application with global middlewares and routes.
func NewServer(cfg ServerConfig, logger *zap.Logger, metrics *observability.Metrics, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	RegisterMiddlewares(app, logger, metrics, MiddlewareConfig{
		Timeout:        cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	routes.Metrics = metrics
	RegisterRoutes(app, routes)
	return app
}
