package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pattadon/socialshift/internal/scheduling"
	"github.com/pattadon/socialshift/internal/service"
)

type RecommendationHandler struct {
	s service.RecommendationService
}

func NewRecommendationHandler(service service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{s: service}
}

func (h *RecommendationHandler) NextForAccount(c *fiber.Ctx) error {
	accountID := c.QueryInt("account_id", 0)

	shift := scheduling.Shift(c.Query("shift", string(scheduling.ShiftMorning)))
	if shift != scheduling.ShiftMorning && shift != scheduling.ShiftEvening {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "shift must be morning or evening",
		})
	}

	rec, err := h.s.NextForAccount(c.Context(), int64(accountID), shift)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if rec == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"done": true,
		})
	}

	return c.Status(fiber.StatusOK).JSON(rec)
}

func (h *RecommendationHandler) Worklist(c *fiber.Ctx) error {
	recs, err := h.s.Worklist(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(recs)
}
