package wallet

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transactionResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	AmountCents  int64     `json:"amount_cents"`
	Description  string    `json:"description"`
	ReferenceID  string    `json:"reference_id"`
	BalanceAfter int64     `json:"balance_after_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

// Balance returns the user's wallet balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	userID := c.Params("userId")
	balance, err := h.service.Balance(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "wallet not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user_id":       balance.UserID,
		"balance_cents": balance.Amount,
		"as_of":         balance.AsOf,
	})
}

// Transactions returns the user's balance history, newest first.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	userID := c.Params("userId")
	records, err := h.service.Transactions(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	out := make([]transactionResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, transactionResponse{
			ID:           rec.ID,
			Type:         string(rec.Type),
			AmountCents:  rec.Amount,
			Description:  rec.Description,
			ReferenceID:  rec.ReferenceID,
			BalanceAfter: rec.BalanceAfter,
			CreatedAt:    rec.CreatedAt,
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": out})
}
