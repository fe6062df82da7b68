package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlejoJamC/banking-account/internal/core/service"
)

type UserHandler struct {
	Users *service.UserService
}

func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.Users.AllUsers(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *UserHandler) SearchUsers(c *fiber.Ctx) error {
	user, err := h.Users.SearchByEmail(c.Context(), c.Query("email"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(user)
}
