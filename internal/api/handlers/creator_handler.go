package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pattadon/socialshift/internal/scheduling"
	"github.com/pattadon/socialshift/internal/service"
	"github.com/pattadon/socialshift/internal/transfer"
)

type CreatorHandler struct {
	s service.CreatorService
}

func NewCreatorHandler(service service.CreatorService) *CreatorHandler {
	return &CreatorHandler{s: service}
}

func (h *CreatorHandler) CreateCreator(c *fiber.Ctx) error {
	var cc transfer.CreatorCreation
	err := c.BodyParser(&cc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	id, err := h.s.Create(c.Context(), &cc)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidTimezone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to create creator",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *CreatorHandler) ListCreators(c *fiber.Ctx) error {
	creators, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list creators",
		})
	}

	return c.Status(fiber.StatusOK).JSON(creators)
}

func (h *CreatorHandler) UpdateCreator(c *fiber.Ctx) error {
	creatorID := c.QueryInt("id", 0)

	var cc transfer.CreatorCreation
	err := c.BodyParser(&cc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err = h.s.Update(c.Context(), int64(creatorID), &cc)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidTimezone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update creator",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *CreatorHandler) RemoveCreator(c *fiber.Ctx) error {
	creatorID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), int64(creatorID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to remove creator",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
