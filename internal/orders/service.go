package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/socialboost/socialboost/internal/admin"
	"github.com/socialboost/socialboost/internal/notification"
	"github.com/socialboost/socialboost/internal/wallet"
)

// ErrUnauthorized occurs when a status update is attempted without an
// authenticated admin principal.
var ErrUnauthorized = errors.New("admin principal required")

// Service coordinates order placement and fulfilment. Wallet payments debit
// the customer's balance before the order exists; manual payments enter the
// review queue untouched.
type Service struct {
	repo     Repository
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds an orders service.
func NewService(repo Repository, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// PlaceInput captures a checkout submission.
type PlaceInput struct {
	UserID        string
	Platform      string
	Service       string
	Link          string
	Quantity      int64
	Total         int64
	Name          string
	Email         string
	Message       string
	Screenshot    string
	WalletPayment bool
}

func (in PlaceInput) validate() error {
	if in.Platform == "" || in.Service == "" {
		return fmt.Errorf("platform and service are required")
	}
	if in.Link == "" {
		return fmt.Errorf("target link is required")
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if in.Total <= 0 {
		return fmt.Errorf("total must be positive")
	}
	if in.Name == "" || in.Email == "" {
		return fmt.Errorf("name and email are required")
	}
	if in.WalletPayment {
		if _, err := uuid.Parse(in.UserID); err != nil {
			return fmt.Errorf("wallet payment requires a valid user id: %w", err)
		}
	} else if in.UserID != "" {
		if _, err := uuid.Parse(in.UserID); err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
	}
	return nil
}

// Place creates an order. With wallet payment the debit happens first and
// the order enters Processing; on insufficient funds no order is created and
// the caller is told to deposit. Manual payments create a Pending order with
// no balance effect.
func (s *Service) Place(ctx context.Context, input PlaceInput) (Order, wallet.Mutation, error) {
	if err := input.validate(); err != nil {
		return Order{}, wallet.Mutation{}, err
	}

	now := time.Now().UTC()
	o := Order{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		Platform:      input.Platform,
		Service:       input.Service,
		Link:          input.Link,
		Quantity:      input.Quantity,
		Total:         input.Total,
		Status:        StatusPending,
		Name:          input.Name,
		Email:         input.Email,
		Message:       input.Message,
		Screenshot:    input.Screenshot,
		WalletPayment: input.WalletPayment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var mutation wallet.Mutation
	if input.WalletPayment {
		// Payment is settled at placement, so the order skips review.
		o.Status = StatusProcessing
		var err error
		mutation, err = s.repo.CreateWithWalletDebit(ctx, o)
		if err != nil {
			return Order{}, wallet.Mutation{}, err
		}
	} else {
		if err := s.repo.Create(ctx, o); err != nil {
			return Order{}, wallet.Mutation{}, err
		}
	}

	if s.logger != nil {
		s.logger.Info("order placed",
			"order_id", o.ID,
			"platform", o.Platform,
			"service", o.Service,
			"total_cents", o.Total,
			"wallet_payment", o.WalletPayment,
		)
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindOrderPlaced,
			Destination: o.Email,
			Body:        fmt.Sprintf("Order %s received for %s on %s", o.ID, o.Service, o.Platform),
		})
	}
	return o, mutation, nil
}

// Track returns an order by its public id.
func (s *Service) Track(ctx context.Context, id string) (Order, error) {
	return s.repo.Get(ctx, id)
}

// History returns the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// HistoryByEmail returns orders placed under an email address, for guest
// checkouts with no account.
func (s *Service) HistoryByEmail(ctx context.Context, email string) ([]Order, error) {
	return s.repo.ListByEmail(ctx, email)
}

// ListForReview returns orders for the admin queue, optionally filtered by
// status.
func (s *Service) ListForReview(ctx context.Context, actor admin.Principal, status Status) ([]Order, error) {
	if actor.Zero() {
		return nil, ErrUnauthorized
	}
	return s.repo.List(ctx, status)
}

// UpdateStatus advances an order along the fulfilment pipeline. Illegal
// transitions fail ErrInvalidTransition; rejecting a wallet-paid order
// refunds the purchase.
func (s *Service) UpdateStatus(ctx context.Context, actor admin.Principal, id string, next Status) (Order, error) {
	if actor.Zero() {
		return Order{}, ErrUnauthorized
	}
	if !next.Valid() {
		return Order{}, fmt.Errorf("unknown status %q", next)
	}

	o, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return Order{}, err
	}

	if s.logger != nil {
		s.logger.Info("order status updated",
			"order_id", o.ID,
			"status", string(o.Status),
			"decided_by", actor.Username,
		)
	}
	return o, nil
}
