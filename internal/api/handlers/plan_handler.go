package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pattadon/socialshift/internal/service"
)

type PlanHandler struct {
	s service.PlanService
}

func NewPlanHandler(service service.PlanService) *PlanHandler {
	return &PlanHandler{s: service}
}

func (h *PlanHandler) GetToday(c *fiber.Ctx) error {
	plan, err := h.s.Today(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(plan)
}

func (h *PlanHandler) RefreshPlan(c *fiber.Ctx) error {
	plan, err := h.s.Refresh(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(plan)
}
