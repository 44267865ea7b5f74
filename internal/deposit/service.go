package deposit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/socialboost/socialboost/internal/admin"
	"github.com/socialboost/socialboost/internal/notification"
	"github.com/socialboost/socialboost/internal/rates"
	"github.com/socialboost/socialboost/internal/settings"
	"github.com/socialboost/socialboost/internal/wallet"
)

var (
	// ErrBelowMinimum occurs when the requested amount is under the
	// configured minimum deposit.
	ErrBelowMinimum = errors.New("amount below minimum deposit")

	// ErrMissingProof occurs when a QR/UPI deposit carries no payment
	// screenshot.
	ErrMissingProof = errors.New("payment screenshot is required")

	// ErrMissingReference occurs when a crypto deposit carries no external
	// transaction id.
	ErrMissingReference = errors.New("transaction id is required")

	// ErrUnauthorized occurs when a decision is attempted without an
	// authenticated admin principal.
	ErrUnauthorized = errors.New("admin principal required")
)

// Service coordinates the deposit workflow: customers submit requests, an
// admin approves or rejects them, and approval credits the wallet.
type Service struct {
	repo     Repository
	settings *settings.Service
	rates    rates.Provider
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds a deposit service.
func NewService(repo Repository, cfg *settings.Service, rateSource rates.Provider, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, settings: cfg, rates: rateSource, notifier: notifier, logger: logger}
}

// SubmitInput captures a customer's deposit request.
type SubmitInput struct {
	UserID       string
	AmountUSD    int64
	Method       Method
	Screenshot   string
	ExternalTxID string
}

// Submit validates the request, snapshots the exchange rate for QR/UPI
// payers and creates a Pending deposit. No balance change happens here.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Deposit, error) {
	if _, err := uuid.Parse(input.UserID); err != nil {
		return Deposit{}, fmt.Errorf("invalid user id: %w", err)
	}
	if !input.Method.Valid() {
		return Deposit{}, fmt.Errorf("unknown payment method %q", input.Method)
	}

	minDeposit, err := s.settings.MinDeposit(ctx)
	if err != nil {
		return Deposit{}, err
	}
	if input.AmountUSD < minDeposit {
		return Deposit{}, ErrBelowMinimum
	}

	switch input.Method {
	case MethodUPI:
		if input.Screenshot == "" {
			return Deposit{}, ErrMissingProof
		}
	case MethodCrypto:
		if input.ExternalTxID == "" {
			return Deposit{}, ErrMissingReference
		}
	}

	var amountINR int64
	if input.Method == MethodUPI {
		// Snapshot once; the stored figure is what the payer is told to
		// send and never changes if the rate moves later.
		rate, err := s.rates.USDToINR(ctx)
		if err != nil {
			return Deposit{}, fmt.Errorf("fetch exchange rate: %w", err)
		}
		amountINR = rates.CeilINR(input.AmountUSD, rate)
	}

	now := time.Now().UTC()
	d := Deposit{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		AmountUSD:    input.AmountUSD,
		AmountINR:    amountINR,
		Method:       input.Method,
		Screenshot:   input.Screenshot,
		ExternalTxID: input.ExternalTxID,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return Deposit{}, err
	}
	return d, nil
}

// Approve completes a pending deposit and credits the owner's wallet.
// Status change, credit and transaction record are one atomic unit; retrying
// an already-decided deposit fails ErrInvalidState without re-crediting.
func (s *Service) Approve(ctx context.Context, actor admin.Principal, id, note string) (Deposit, wallet.Mutation, error) {
	if actor.Zero() {
		return Deposit{}, wallet.Mutation{}, ErrUnauthorized
	}

	d, mutation, err := s.repo.Approve(ctx, id, note)
	if err != nil {
		return Deposit{}, wallet.Mutation{}, err
	}

	if s.logger != nil {
		s.logger.Info("deposit approved",
			"deposit_id", d.ID,
			"user_id", d.UserID,
			"amount_usd_cents", d.AmountUSD,
			"decided_by", actor.Username,
		)
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindDepositApproved,
			Destination: d.UserID,
			Body:        fmt.Sprintf("Your deposit of %d cents was approved", d.AmountUSD),
		})
	}
	return d, mutation, nil
}

// Reject declines a pending deposit. No balance effect.
func (s *Service) Reject(ctx context.Context, actor admin.Principal, id, note string) (Deposit, error) {
	if actor.Zero() {
		return Deposit{}, ErrUnauthorized
	}

	d, err := s.repo.Reject(ctx, id, note)
	if err != nil {
		return Deposit{}, err
	}

	if s.logger != nil {
		s.logger.Info("deposit rejected", "deposit_id", d.ID, "user_id", d.UserID, "decided_by", actor.Username)
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindDepositRejected,
			Destination: d.UserID,
			Body:        "Your deposit was rejected; see the admin note for details",
		})
	}
	return d, nil
}

// History returns the user's deposits, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]Deposit, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListForReview returns deposits for the admin queue, optionally filtered by
// status.
func (s *Service) ListForReview(ctx context.Context, actor admin.Principal, status Status) ([]Deposit, error) {
	if actor.Zero() {
		return nil, ErrUnauthorized
	}
	return s.repo.List(ctx, status)
}
