package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-triage/internal/api/dto"
	"github.com/spec-kit/helpdesk-triage/internal/service"
)

// ExpertsHandler exposes the expert roster.
type ExpertsHandler struct {
	roster *service.ExpertRoster
}

// NewExpertsHandler constructs the handler.
func NewExpertsHandler(roster *service.ExpertRoster) *ExpertsHandler {
	return &ExpertsHandler{roster: roster}
}

// ListExperts GET /experts.
func (h *ExpertsHandler) ListExperts(c *fiber.Ctx) error {
	experts, err := h.roster.Experts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ExpertResponsesFrom(experts)})
}

// RefreshExperts POST /experts/refresh drops the roster cache so the next
// read reloads from the store.
func (h *ExpertsHandler) RefreshExperts(c *fiber.Ctx) error {
	h.roster.Invalidate()
	return c.JSON(fiber.Map{"data": fiber.Map{"refreshed": true}})
}
