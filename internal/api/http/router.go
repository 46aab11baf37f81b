package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/devdesk/queue-api/internal/api/http/handlers"
	"github.com/devdesk/queue-api/internal/auth"
	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Student *handlers.StudentTicketsHandler
	Helper  *handlers.HelperTicketsHandler
	Access  *auth.AccessMiddleware
	Tickets *auth.TicketGuard
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Each route lists its guards in the
// order they run: access, role, ticket existence, ownership.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Access.Handle, cfg.Auth.Logout)

	helpers := api.Group("/helpers", cfg.Access.Handle, auth.RequireRole(domain.RoleHelper))
	helpers.Get("/", cfg.Helper.ListHelpers)
	helpers.Get("/tickets", cfg.Helper.ListOpen)
	helpers.Put("/tickets/:id", cfg.Tickets.RequireTicketExists(), cfg.Helper.Update)

	students := api.Group("/students", cfg.Access.Handle, auth.RequireRole(domain.RoleStudent))
	students.Get("/tickets", cfg.Student.List)
	students.Post("/tickets", cfg.Student.Create)
	students.Put("/tickets/:id", cfg.Tickets.RequireTicketExists(), cfg.Tickets.RequireCreator(), cfg.Student.Update)
	students.Delete("/tickets/:id", cfg.Tickets.RequireTicketExists(), cfg.Tickets.RequireCreator(), cfg.Student.Delete)
}
