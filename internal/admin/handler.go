package admin

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes admin authentication endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an admin HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	principal, token, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"admin_id": principal.AdminID,
		"username": principal.Username,
		"token":    token,
	})
}

// Logout revokes the caller's session token.
func (h *Handler) Logout(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return fiber.NewError(http.StatusBadRequest, "session token required")
	}
	if err := h.service.Logout(c.UserContext(), token); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}
