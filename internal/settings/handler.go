package settings

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/socialboost/socialboost/internal/admin"
)

// Handler exposes settings endpoints for the admin panel.
type Handler struct {
	service *Service
}

// NewHandler builds a settings HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// List returns every stored setting.
func (h *Handler) List(c *fiber.Ctx) error {
	if admin.PrincipalFromCtx(c).Zero() {
		return fiber.NewError(http.StatusUnauthorized, "admin principal required")
	}
	all, err := h.service.All(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]settingResponse, 0, len(all))
	for _, s := range all {
		out = append(out, settingResponse{Key: s.Key, Value: s.Value})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"settings": out})
}

type updateRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Update upserts one setting.
func (h *Handler) Update(c *fiber.Ctx) error {
	if admin.PrincipalFromCtx(c).Zero() {
		return fiber.NewError(http.StatusUnauthorized, "admin principal required")
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	s, err := h.service.Update(c.UserContext(), req.Key, req.Value)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"setting": settingResponse{Key: s.Key, Value: s.Value}})
}
