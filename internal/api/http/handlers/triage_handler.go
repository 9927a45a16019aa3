package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-triage/internal/api/dto"
	"github.com/spec-kit/helpdesk-triage/internal/service"
)

// TriageHandler exposes the classify/resolve/route pipeline operations.
type TriageHandler struct {
	triage *service.TriageService
}

// NewTriageHandler constructs the handler.
func NewTriageHandler(triage *service.TriageService) *TriageHandler {
	return &TriageHandler{triage: triage}
}

// Sweep POST /triage/sweep.
func (h *TriageHandler) Sweep(c *fiber.Ctx) error {
	counts, err := h.triage.Sweep(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// SolveTicket POST /tickets/:id/solve.
func (h *TriageHandler) SolveTicket(c *fiber.Ctx) error {
	ticket, resolved, err := h.triage.SolveTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"ticket":   dto.TicketResponseFrom(*ticket),
		"resolved": resolved,
	}})
}

// AssignTicket POST /tickets/:id/assign.
func (h *TriageHandler) AssignTicket(c *fiber.Ctx) error {
	ticket, expert, err := h.triage.AssignTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"ticket": dto.TicketResponseFrom(*ticket),
		"expert": fiber.Map{"id": expert.ID, "name": expert.Name},
	}})
}
