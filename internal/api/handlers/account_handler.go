package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pattadon/socialshift/internal/service"
	"github.com/pattadon/socialshift/internal/transfer"
)

type AccountHandler struct {
	s service.AccountService
}

func NewAccountHandler(service service.AccountService) *AccountHandler {
	return &AccountHandler{s: service}
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var ac transfer.AccountCreation
	err := c.BodyParser(&ac)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	id, err := h.s.Create(c.Context(), &ac)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id})
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list accounts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

func (h *AccountHandler) UpdateAccount(c *fiber.Ctx) error {
	accountID := c.QueryInt("id", 0)

	var au transfer.AccountUpdate
	err := c.BodyParser(&au)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err = h.s.Update(c.Context(), int64(accountID), &au)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update account",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *AccountHandler) RemoveAccount(c *fiber.Ctx) error {
	accountID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), int64(accountID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to remove account",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
