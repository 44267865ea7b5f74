package orders

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/socialboost/socialboost/internal/admin"
	"github.com/socialboost/socialboost/internal/wallet"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an orders HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type placeRequest struct {
	UserID        string `json:"user_id"`
	Platform      string `json:"platform"`
	Service       string `json:"service"`
	Link          string `json:"link"`
	Quantity      int64  `json:"quantity"`
	Total         int64  `json:"total_cents"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Message       string `json:"message"`
	Screenshot    string `json:"screenshot"`
	WalletPayment bool   `json:"wallet_payment"`
}

type orderResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	Platform      string    `json:"platform"`
	Service       string    `json:"service"`
	Link          string    `json:"link"`
	Quantity      int64     `json:"quantity"`
	Total         int64     `json:"total_cents"`
	Status        string    `json:"status"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Message       string    `json:"message,omitempty"`
	Screenshot    string    `json:"screenshot,omitempty"`
	WalletPayment bool      `json:"wallet_payment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Place accepts a checkout submission.
func (h *Handler) Place(c *fiber.Ctx) error {
	var req placeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	o, mutation, err := h.service.Place(c.UserContext(), PlaceInput{
		UserID:        req.UserID,
		Platform:      req.Platform,
		Service:       req.Service,
		Link:          req.Link,
		Quantity:      req.Quantity,
		Total:         req.Total,
		Name:          req.Name,
		Email:         req.Email,
		Message:       req.Message,
		Screenshot:    req.Screenshot,
		WalletPayment: req.WalletPayment,
	})
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInsufficientFunds):
			return fiber.NewError(http.StatusPaymentRequired, "insufficient wallet balance; deposit funds to continue")
		case errors.Is(err, wallet.ErrNotFound):
			return fiber.NewError(http.StatusPaymentRequired, "no wallet account; deposit funds to continue")
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}

	body := fiber.Map{"order": toResponse(o)}
	if o.WalletPayment {
		body["transaction_id"] = mutation.TransactionID
		body["balance_after_cents"] = mutation.BalanceAfter
	}
	return c.Status(http.StatusCreated).JSON(body)
}

// Track returns one order by its public id.
func (h *Handler) Track(c *fiber.Ctx) error {
	o, err := h.service.Track(c.UserContext(), c.Params("orderId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "order not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"order": toResponse(o)})
}

// History returns the requesting user's orders.
func (h *Handler) History(c *fiber.Ctx) error {
	out, err := h.service.History(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"orders": toResponses(out)})
}

// List returns the admin queue. Filter with ?status= or ?email=.
func (h *Handler) List(c *fiber.Ctx) error {
	actor := admin.PrincipalFromCtx(c)
	if actor.Zero() {
		return fiber.NewError(http.StatusUnauthorized, ErrUnauthorized.Error())
	}

	if email := c.Query("email"); email != "" {
		out, err := h.service.HistoryByEmail(c.UserContext(), email)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"orders": toResponses(out)})
	}

	out, err := h.service.ListForReview(c.UserContext(), actor, Status(c.Query("status")))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"orders": toResponses(out)})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus advances an order along the fulfilment pipeline.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	actor := admin.PrincipalFromCtx(c)
	o, err := h.service.UpdateStatus(c.UserContext(), actor, c.Params("orderId"), Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "order not found")
		case errors.Is(err, ErrInvalidTransition):
			return fiber.NewError(http.StatusConflict, "status transition not allowed; order unchanged")
		case errors.Is(err, ErrUnauthorized):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"order": toResponse(o)})
}

func toResponse(o Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Platform:      o.Platform,
		Service:       o.Service,
		Link:          o.Link,
		Quantity:      o.Quantity,
		Total:         o.Total,
		Status:        string(o.Status),
		Name:          o.Name,
		Email:         o.Email,
		Message:       o.Message,
		Screenshot:    o.Screenshot,
		WalletPayment: o.WalletPayment,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toResponses(orders []Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toResponse(o))
	}
	return out
}
