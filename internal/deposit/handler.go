package deposit

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/socialboost/socialboost/internal/admin"
)

// Handler exposes deposit HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a deposit HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitRequest struct {
	UserID       string `json:"user_id"`
	AmountUSD    int64  `json:"amount_usd_cents"`
	Method       string `json:"method"`
	Screenshot   string `json:"screenshot"`
	ExternalTxID string `json:"external_tx_id"`
}

type depositResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AmountUSD    int64     `json:"amount_usd_cents"`
	AmountINR    int64     `json:"amount_inr,omitempty"`
	Method       string    `json:"method"`
	Status       string    `json:"status"`
	AdminNote    string    `json:"admin_note,omitempty"`
	ExternalTxID string    `json:"external_tx_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Submit accepts a new deposit request from a customer.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	d, err := h.service.Submit(c.UserContext(), SubmitInput{
		UserID:       req.UserID,
		AmountUSD:    req.AmountUSD,
		Method:       Method(req.Method),
		Screenshot:   req.Screenshot,
		ExternalTxID: req.ExternalTxID,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toResponse(d))
}

// History returns the requesting user's deposit history.
func (h *Handler) History(c *fiber.Ctx) error {
	deposits, err := h.service.History(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"deposits": toResponses(deposits)})
}

// List returns the admin review queue, optionally filtered by ?status=.
func (h *Handler) List(c *fiber.Ctx) error {
	actor := admin.PrincipalFromCtx(c)
	deposits, err := h.service.ListForReview(c.UserContext(), actor, Status(c.Query("status")))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"deposits": toResponses(deposits)})
}

type decisionRequest struct {
	AdminNote string `json:"admin_note"`
}

// Approve completes a pending deposit and credits the wallet.
func (h *Handler) Approve(c *fiber.Ctx) error {
	var req decisionRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	actor := admin.PrincipalFromCtx(c)
	d, mutation, err := h.service.Approve(c.UserContext(), actor, c.Params("depositId"), req.AdminNote)
	if err != nil {
		return decisionError(err)
	}
	resp := toResponse(d)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"deposit":             resp,
		"transaction_id":      mutation.TransactionID,
		"balance_after_cents": mutation.BalanceAfter,
	})
}

// Reject declines a pending deposit.
func (h *Handler) Reject(c *fiber.Ctx) error {
	var req decisionRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	actor := admin.PrincipalFromCtx(c)
	d, err := h.service.Reject(c.UserContext(), actor, c.Params("depositId"), req.AdminNote)
	if err != nil {
		return decisionError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"deposit": toResponse(d)})
}

// decisionError maps approve/reject failures onto HTTP statuses. A repeated
// decision surfaces as 409 with an explanation rather than a silent success.
func decisionError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "deposit not found")
	case errors.Is(err, ErrInvalidState):
		return fiber.NewError(http.StatusConflict, "deposit already decided; no changes applied")
	case errors.Is(err, ErrUnauthorized):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

func toResponse(d Deposit) depositResponse {
	return depositResponse{
		ID:           d.ID,
		UserID:       d.UserID,
		AmountUSD:    d.AmountUSD,
		AmountINR:    d.AmountINR,
		Method:       string(d.Method),
		Status:       string(d.Status),
		AdminNote:    d.AdminNote,
		ExternalTxID: d.ExternalTxID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toResponses(deposits []Deposit) []depositResponse {
	out := make([]depositResponse, 0, len(deposits))
	for _, d := range deposits {
		out = append(out, toResponse(d))
	}
	return out
}
