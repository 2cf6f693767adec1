package handlers_fiber

import (
	"net/http"

	"github.com/k13lucien/Kollab/internal/mapper"
	"github.com/k13lucien/Kollab/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// PostAuthRegister creates an account and returns its first token.
func (h *Handler) PostAuthRegister(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	session, err := h.uc.Register(c.UserContext(), mapper.FromDTORegister(body))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToDTOSession(*session))
}

// PostAuthLogin exchanges credentials for a token.
func (h *Handler) PostAuthLogin(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	session, err := h.uc.Login(c.UserContext(), body.Email, body.Password)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOSession(*session))
}

// PostAuthLogout revokes every token of the caller.
func (h *Handler) PostAuthLogout(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return h.writeError(c, err)
	}
	if err := h.uc.Logout(c.UserContext(), userID); err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.Message{Message: "logged out"})
}

// GetAuthProfile returns the caller's account.
func (h *Handler) GetAuthProfile(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return h.writeError(c, err)
	}
	user, err := h.uc.Profile(c.UserContext(), userID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.UserResponse{User: mapper.ToDTOUser(*user)})
}
