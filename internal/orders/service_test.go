package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/socialboost/socialboost/internal/admin"
	"github.com/socialboost/socialboost/internal/deposit"
	"github.com/socialboost/socialboost/internal/rates"
	"github.com/socialboost/socialboost/internal/settings"
	"github.com/socialboost/socialboost/internal/wallet"
)

func newTestService(t *testing.T) (*Service, wallet.Ledger, string) {
	t.Helper()
	led := wallet.NewInMemory()
	svc := NewService(NewMemoryRepository(led), nil, nil)

	userID := uuid.NewString()
	if err := led.CreateAccount(context.Background(), userID); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return svc, led, userID
}

func testAdmin() admin.Principal {
	return admin.Principal{AdminID: uuid.NewString(), Username: "reviewer"}
}

func walletOrder(userID string, total int64) PlaceInput {
	return PlaceInput{
		UserID:        userID,
		Platform:      "Instagram",
		Service:       "Followers",
		Link:          "https://instagram.com/example",
		Quantity:      1_000,
		Total:         total,
		Name:          "Asha",
		Email:         "asha@example.com",
		WalletPayment: true,
	}
}

func TestPlaceWalletPaymentDebitsBalance(t *testing.T) {
	svc, led, userID := newTestService(t)
	ctx := context.Background()
	wallet.SeedBalance(led, userID, 1_000)

	o, mutation, err := svc.Place(ctx, walletOrder(userID, 750))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if o.Status != StatusProcessing {
		t.Fatalf("wallet order should start Processing, got %s", o.Status)
	}
	if mutation.BalanceAfter != 250 {
		t.Fatalf("expected balance 250 after debit, got %d", mutation.BalanceAfter)
	}

	records, _ := led.Transactions(ctx, userID)
	if len(records) != 1 {
		t.Fatalf("expected one purchase record, got %d", len(records))
	}
	rec := records[0]
	if rec.Type != wallet.TypePurchase || rec.Amount != 750 || rec.ReferenceID != o.ID {
		t.Fatalf("unexpected purchase record: %+v", rec)
	}
	if rec.Description != "Purchase of Followers on Instagram" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestPlaceInsufficientFundsCreatesNothing(t *testing.T) {
	svc, led, userID := newTestService(t)
	ctx := context.Background()
	wallet.SeedBalance(led, userID, 250)

	_, _, err := svc.Place(ctx, walletOrder(userID, 500))
	if !errors.Is(err, wallet.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	balance, _ := led.Balance(ctx, userID)
	if balance != 250 {
		t.Fatalf("failed order must not change balance, got %d", balance)
	}
	out, _ := svc.History(ctx, userID)
	if len(out) != 0 {
		t.Fatalf("failed order must not be stored, got %d orders", len(out))
	}
	records, _ := led.Transactions(ctx, userID)
	if len(records) != 0 {
		t.Fatalf("failed order must not leave a record, got %d", len(records))
	}
}

func TestPlaceManualPaymentLeavesWalletAlone(t *testing.T) {
	svc, led, userID := newTestService(t)
	ctx := context.Background()
	wallet.SeedBalance(led, userID, 1_000)

	in := walletOrder(userID, 750)
	in.WalletPayment = false
	in.Screenshot = "upi-proof"

	o, _, err := svc.Place(ctx, in)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if o.Status != StatusPending {
		t.Fatalf("manual order should start Pending, got %s", o.Status)
	}

	balance, _ := led.Balance(ctx, userID)
	if balance != 1_000 {
		t.Fatalf("manual payment must not touch the wallet, balance=%d", balance)
	}
}

func TestPlaceValidation(t *testing.T) {
	svc, _, userID := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*PlaceInput)
	}{
		{"missing platform", func(in *PlaceInput) { in.Platform = "" }},
		{"missing link", func(in *PlaceInput) { in.Link = "" }},
		{"zero quantity", func(in *PlaceInput) { in.Quantity = 0 }},
		{"zero total", func(in *PlaceInput) { in.Total = 0 }},
		{"missing email", func(in *PlaceInput) { in.Email = "" }},
		{"wallet payment without user", func(in *PlaceInput) { in.UserID = "" }},
	}
	for _, tc := range cases {
		in := walletOrder(userID, 500)
		tc.mutate(&in)
		if _, _, err := svc.Place(ctx, in); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestUpdateStatusFollowsPipeline(t *testing.T) {
	svc, led, userID := newTestService(t)
	ctx := context.Background()
	wallet.SeedBalance(led, userID, 1_000)

	in := walletOrder(userID, 500)
	in.WalletPayment = false
	in.Screenshot = "upi-proof"
	o, _, err := svc.Place(ctx, in)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// Skipping review is not allowed.
	if _, err := svc.UpdateStatus(ctx, testAdmin(), o.ID, StatusProcessing); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	for _, next := range []Status{StatusInReview, StatusProcessing, StatusCompleted} {
		updated, err := svc.UpdateStatus(ctx, testAdmin(), o.ID, next)
		if err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
		if updated.Status != next {
			t.Fatalf("expected %s, got %s", next, updated.Status)
		}
	}

	// Completed is terminal.
	if _, err := svc.UpdateStatus(ctx, testAdmin(), o.ID, StatusRejected); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected terminal order to refuse changes, got %v", err)
	}
}

func TestRejectWalletOrderRefunds(t *testing.T) {
	svc, led, userID := newTestService(t)
	ctx := context.Background()
	wallet.SeedBalance(led, userID, 1_000)

	o, _, err := svc.Place(ctx, walletOrder(userID, 750))
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, testAdmin(), o.ID, StatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}

	balance, _ := led.Balance(ctx, userID)
	if balance != 1_000 {
		t.Fatalf("rejection should refund the purchase, balance=%d", balance)
	}

	records, _ := led.Transactions(ctx, userID)
	if len(records) != 2 {
		t.Fatalf("expected purchase and refund records, got %d", len(records))
	}
	refund := records[0]
	if refund.Type != wallet.TypeRefund || refund.Amount != 750 || refund.ReferenceID != o.ID {
		t.Fatalf("unexpected refund record: %+v", refund)
	}
}

func TestUpdateStatusRequiresPrincipal(t *testing.T) {
	svc, led, userID := newTestService(t)
	ctx := context.Background()
	wallet.SeedBalance(led, userID, 1_000)

	o, _, err := svc.Place(ctx, walletOrder(userID, 500))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, admin.Principal{}, o.ID, StatusCompleted); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

// TestDepositThenOrderFlow walks the storefront's money path end to end: a
// $10 QR/UPI deposit quoted at the 83.5 rate, admin approval crediting the
// wallet, a $7.50 wallet order, then a $5.00 order bouncing off the balance.
func TestDepositThenOrderFlow(t *testing.T) {
	ctx := context.Background()
	led := wallet.NewInMemory()
	cfg := settings.NewService(settings.NewMemoryStore())
	deposits := deposit.NewService(deposit.NewMemoryRepository(led), cfg, rates.NewSettingsProvider(cfg), nil, nil)
	ordersSvc := NewService(NewMemoryRepository(led), nil, nil)

	userID := uuid.NewString()
	if err := led.CreateAccount(ctx, userID); err != nil {
		t.Fatalf("create account: %v", err)
	}

	d, err := deposits.Submit(ctx, deposit.SubmitInput{
		UserID:     userID,
		AmountUSD:  1_000,
		Method:     deposit.MethodUPI,
		Screenshot: "upi-proof",
	})
	if err != nil {
		t.Fatalf("submit deposit: %v", err)
	}
	if d.AmountINR != 835 {
		t.Fatalf("expected 835 INR quoted, got %d", d.AmountINR)
	}

	if _, _, err := deposits.Approve(ctx, testAdmin(), d.ID, "verified"); err != nil {
		t.Fatalf("approve deposit: %v", err)
	}
	balance, _ := led.Balance(ctx, userID)
	if balance != 1_000 {
		t.Fatalf("expected 1000 cents after approval, got %d", balance)
	}

	_, mutation, err := ordersSvc.Place(ctx, walletOrder(userID, 750))
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if mutation.BalanceAfter != 250 {
		t.Fatalf("expected 250 cents left, got %d", mutation.BalanceAfter)
	}

	if _, _, err := ordersSvc.Place(ctx, walletOrder(userID, 500)); !errors.Is(err, wallet.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	balance, _ = led.Balance(ctx, userID)
	if balance != 250 {
		t.Fatalf("failed order changed the balance: %d", balance)
	}

	// The transaction log replays to the final balance.
	records, _ := led.Transactions(ctx, userID)
	var replayed int64
	for i := len(records) - 1; i >= 0; i-- {
		switch records[i].Type {
		case wallet.TypeDeposit, wallet.TypeRefund:
			replayed += records[i].Amount
		case wallet.TypePurchase:
			replayed -= records[i].Amount
		}
	}
	if replayed != balance {
		t.Fatalf("replayed %d, balance %d", replayed, balance)
	}
}
