package catalog

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/socialboost/socialboost/internal/admin"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type itemRequest struct {
	Platform string `json:"platform"`
	Name     string `json:"name"`
	Price    int64  `json:"price_cents"`
	Active   bool   `json:"active"`
}

type itemResponse struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	Name      string    `json:"name"`
	Price     int64     `json:"price_cents"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List returns active items, optionally for one platform via ?platform=.
func (h *Handler) List(c *fiber.Ctx) error {
	var (
		items []Item
		err   error
	)
	if platform := c.Query("platform"); platform != "" {
		items, err = h.service.ListByPlatform(c.UserContext(), platform)
	} else {
		items, err = h.service.ListActive(c.UserContext())
	}
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"services": toResponses(items)})
}

// Platforms returns the distinct platforms with active items.
func (h *Handler) Platforms(c *fiber.Ctx) error {
	platforms, err := h.service.Platforms(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if platforms == nil {
		platforms = []string{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"platforms": platforms})
}

// Create upserts a catalog item.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	actor := admin.PrincipalFromCtx(c)
	item, err := h.service.Create(c.UserContext(), actor, ItemInput{Platform: req.Platform, Name: req.Name, Price: req.Price})
	if err != nil {
		return writeError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"service": toResponse(item)})
}

// Update replaces an item's fields.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	actor := admin.PrincipalFromCtx(c)
	item, err := h.service.Update(c.UserContext(), actor, c.Params("itemId"), ItemInput{
		Platform: req.Platform,
		Name:     req.Name,
		Price:    req.Price,
		Active:   req.Active,
	})
	if err != nil {
		return writeError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"service": toResponse(item)})
}

// Deactivate hides an item from the storefront.
func (h *Handler) Deactivate(c *fiber.Ctx) error {
	actor := admin.PrincipalFromCtx(c)
	if err := h.service.Deactivate(c.UserContext(), actor, c.Params("itemId")); err != nil {
		return writeError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func writeError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "catalog item not found")
	case errors.Is(err, ErrUnauthorized):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}

func toResponse(item Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Platform:  item.Platform,
		Name:      item.Name,
		Price:     item.Price,
		Active:    item.Active,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toResponses(items []Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}
