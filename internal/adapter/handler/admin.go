package handler

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AlejoJamC/banking-account/internal/core/service"
)

type AdminHandler struct {
	Accounts *service.AccountService
}

// GetAllAccounts pages over every account in the system.
func (h *AdminHandler) GetAllAccounts(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil || page < 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid page"})
	}
	size, err := strconv.Atoi(c.Query("size", "100"))
	if err != nil || size <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid size"})
	}

	result, err := h.Accounts.AllAccounts(c.Context(), page, size)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(result)
}
