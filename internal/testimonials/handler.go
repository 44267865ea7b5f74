package testimonials

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/socialboost/socialboost/internal/admin"
)

// Handler exposes testimonial HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a testimonials HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitRequest struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`
	Avatar  string `json:"avatar"`
}

type testimonialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	Avatar    string    `json:"avatar,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// Submit stores a customer review for moderation.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	t, err := h.service.Submit(c.UserContext(), SubmitInput{
		UserID:  req.UserID,
		Name:    req.Name,
		Title:   req.Title,
		Rating:  req.Rating,
		Content: req.Content,
		Avatar:  req.Avatar,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"testimonial": toResponse(t)})
}

// Approved returns storefront-visible testimonials.
func (h *Handler) Approved(c *fiber.Ctx) error {
	out, err := h.service.Approved(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"testimonials": toResponses(out)})
}

// All returns the moderation queue.
func (h *Handler) All(c *fiber.Ctx) error {
	out, err := h.service.All(c.UserContext(), admin.PrincipalFromCtx(c))
	if err != nil {
		return writeError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"testimonials": toResponses(out)})
}

// Approve makes a testimonial storefront-visible.
func (h *Handler) Approve(c *fiber.Ctx) error {
	t, err := h.service.Approve(c.UserContext(), admin.PrincipalFromCtx(c), c.Params("testimonialId"))
	if err != nil {
		return writeError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"testimonial": toResponse(t)})
}

// Reject removes a testimonial.
func (h *Handler) Reject(c *fiber.Ctx) error {
	if err := h.service.Reject(c.UserContext(), admin.PrincipalFromCtx(c), c.Params("testimonialId")); err != nil {
		return writeError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func writeError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "testimonial not found")
	case errors.Is(err, ErrUnauthorized):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

func toResponse(t Testimonial) testimonialResponse {
	return testimonialResponse{
		ID:        t.ID,
		Name:      t.Name,
		Title:     t.Title,
		Rating:    t.Rating,
		Content:   t.Content,
		Avatar:    t.Avatar,
		Approved:  t.Approved,
		CreatedAt: t.CreatedAt,
	}
}

func toResponses(entries []Testimonial) []testimonialResponse {
	out := make([]testimonialResponse, 0, len(entries))
	for _, t := range entries {
		out = append(out, toResponse(t))
	}
	return out
}
