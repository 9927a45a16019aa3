package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-triage/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Triage  *handlers.TriageHandler
	Experts *handlers.ExpertsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/solve", cfg.Triage.SolveTicket)
	tickets.Post("/:id/assign", cfg.Triage.AssignTicket)

	app.Post("/triage/sweep", cfg.Triage.Sweep)

	experts := app.Group("/experts")
	experts.Get("", cfg.Experts.ListExperts)
	experts.Post("/refresh", cfg.Experts.RefreshExperts)
}
