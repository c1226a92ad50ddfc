package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pattadon/socialshift/internal/service"
	"github.com/pattadon/socialshift/internal/transfer"
)

type LogHandler struct {
	s service.PostLogService
}

func NewLogHandler(service service.PostLogService) *LogHandler {
	return &LogHandler{s: service}
}

func (h *LogHandler) CreatePostLog(c *fiber.Ctx) error {
	var pc transfer.PostLogCreation
	err := c.BodyParser(&pc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	id, err := h.s.LogPost(c.Context(), &pc)
	if err != nil {
		if errors.Is(err, service.ErrSlotNotActionable) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to record post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *LogHandler) SkipSlot(c *fiber.Ctx) error {
	slotID := c.Params("id")
	if slotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "slot id is required",
		})
	}

	err := h.s.LogSkip(c.Context(), slotID)
	if err != nil {
		if errors.Is(err, service.ErrSlotNotActionable) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to skip slot",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *LogHandler) ListToday(c *fiber.Ctx) error {
	entries, err := h.s.ListToday(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list post logs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

func (h *LogHandler) ListAll(c *fiber.Ctx) error {
	entries, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list post logs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}
