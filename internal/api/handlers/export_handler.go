package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pattadon/socialshift/internal/service"
)

type ExportHandler struct {
	s service.ExportService
}

func NewExportHandler(service service.ExportService) *ExportHandler {
	return &ExportHandler{s: service}
}

func (h *ExportHandler) ExportSchedule(c *fiber.Ctx) error {
	key, err := h.s.Export(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to export schedule data",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"key": key})
}

func (h *ExportHandler) ImportSchedule(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("archive")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "archive file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to open uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read uploaded file",
		})
	}

	summary, err := h.s.Import(c.Context(), data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
