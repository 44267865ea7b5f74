package identity

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes identity HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type syncRequest struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

type userResponse struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Sync upserts the logged-in user's profile and guarantees their wallet.
func (h *Handler) Sync(c *fiber.Ctx) error {
	var req syncRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	u, err := h.service.Sync(c.UserContext(), SyncInput{
		UID:      req.UID,
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": toResponse(u)})
}

// Get returns a user by internal id.
func (h *Handler) Get(c *fiber.Ctx) error {
	u, err := h.service.Find(c.UserContext(), c.Params("userId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": toResponse(u)})
}

func toResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		UID:       u.UID,
		Email:     u.Email,
		Name:      u.Name,
		PhotoURL:  u.PhotoURL,
		CreatedAt: u.CreatedAt,
	}
}
