package deposit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/socialboost/socialboost/internal/admin"
	"github.com/socialboost/socialboost/internal/rates"
	"github.com/socialboost/socialboost/internal/settings"
	"github.com/socialboost/socialboost/internal/wallet"
)

func newTestService(t *testing.T) (*Service, wallet.Ledger, string) {
	t.Helper()
	led := wallet.NewInMemory()
	cfg := settings.NewService(settings.NewMemoryStore())
	svc := NewService(NewMemoryRepository(led), cfg, rates.NewSettingsProvider(cfg), nil, nil)

	userID := uuid.NewString()
	if err := led.CreateAccount(context.Background(), userID); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return svc, led, userID
}

func testAdmin() admin.Principal {
	return admin.Principal{AdminID: uuid.NewString(), Username: "reviewer"}
}

func TestSubmitSnapshotsExchangeRate(t *testing.T) {
	svc, _, userID := newTestService(t)
	ctx := context.Background()

	// $10 at the default 83.5 rate comes out at 835 whole rupees.
	d, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 1_000, Method: MethodUPI, Screenshot: "proof-1"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if d.Status != StatusPending {
		t.Fatalf("expected Pending, got %s", d.Status)
	}
	if d.AmountINR != 835 {
		t.Fatalf("expected 835 INR, got %d", d.AmountINR)
	}

	// Crypto deposits carry no local-currency figure.
	d2, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 500, Method: MethodCrypto, ExternalTxID: "0xabc"})
	if err != nil {
		t.Fatalf("submit crypto: %v", err)
	}
	if d2.AmountINR != 0 {
		t.Fatalf("crypto deposit should have no INR amount, got %d", d2.AmountINR)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, _, userID := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 99, Method: MethodUPI, Screenshot: "x"}); !errors.Is(err, ErrBelowMinimum) {
		t.Fatalf("expected below minimum, got %v", err)
	}
	if _, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 1_000, Method: MethodUPI}); !errors.Is(err, ErrMissingProof) {
		t.Fatalf("expected missing proof, got %v", err)
	}
	if _, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 1_000, Method: MethodCrypto}); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected missing reference, got %v", err)
	}
	if _, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 1_000, Method: "Cheque"}); err == nil {
		t.Fatal("expected unknown method error")
	}
}

func TestSubmitHonorsConfiguredMinimum(t *testing.T) {
	led := wallet.NewInMemory()
	store := settings.NewMemoryStore()
	cfg := settings.NewService(store)
	svc := NewService(NewMemoryRepository(led), cfg, rates.NewSettingsProvider(cfg), nil, nil)
	ctx := context.Background()

	userID := uuid.NewString()
	led.CreateAccount(ctx, userID)

	if _, err := cfg.Update(ctx, settings.KeyMinDepositCents, "500"); err != nil {
		t.Fatalf("update setting: %v", err)
	}

	if _, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 499, Method: MethodCrypto, ExternalTxID: "0x1"}); !errors.Is(err, ErrBelowMinimum) {
		t.Fatalf("expected below minimum at 499, got %v", err)
	}
	if _, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 500, Method: MethodCrypto, ExternalTxID: "0x2"}); err != nil {
		t.Fatalf("expected 500 to pass, got %v", err)
	}
}

func TestApproveCreditsExactlyOnce(t *testing.T) {
	svc, led, userID := newTestService(t)
	ctx := context.Background()

	d, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 1_000, Method: MethodUPI, Screenshot: "proof"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	approved, mutation, err := svc.Approve(ctx, testAdmin(), d.ID, "verified against bank statement")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusCompleted {
		t.Fatalf("expected Completed, got %s", approved.Status)
	}
	if mutation.BalanceAfter != 1_000 {
		t.Fatalf("expected balance 1000, got %d", mutation.BalanceAfter)
	}

	records, _ := led.Transactions(ctx, userID)
	if len(records) != 1 {
		t.Fatalf("expected one transaction record, got %d", len(records))
	}
	if records[0].Type != wallet.TypeDeposit || records[0].ReferenceID != d.ID || records[0].BalanceAfter != 1_000 {
		t.Fatalf("unexpected record: %+v", records[0])
	}

	// Second approval must fail and leave the balance untouched.
	if _, _, err := svc.Approve(ctx, testAdmin(), d.ID, "retry"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	balance, _ := led.Balance(ctx, userID)
	if balance != 1_000 {
		t.Fatalf("balance changed on double approval: %d", balance)
	}
}

func TestRejectHasNoBalanceEffect(t *testing.T) {
	svc, led, userID := newTestService(t)
	ctx := context.Background()

	d, err := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 2_000, Method: MethodCrypto, ExternalTxID: "0xdef"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	rejected, err := svc.Reject(ctx, testAdmin(), d.ID, "no matching transfer found")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Fatalf("expected Rejected, got %s", rejected.Status)
	}

	balance, _ := led.Balance(ctx, userID)
	if balance != 0 {
		t.Fatalf("rejection must not credit, balance=%d", balance)
	}

	// A rejected deposit cannot be approved afterwards.
	if _, _, err := svc.Approve(ctx, testAdmin(), d.ID, ""); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestDecisionsRequirePrincipal(t *testing.T) {
	svc, _, userID := newTestService(t)
	ctx := context.Background()

	d, _ := svc.Submit(ctx, SubmitInput{UserID: userID, AmountUSD: 1_000, Method: MethodUPI, Screenshot: "proof"})

	if _, _, err := svc.Approve(ctx, admin.Principal{}, d.ID, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized approve, got %v", err)
	}
	if _, err := svc.Reject(ctx, admin.Principal{}, d.ID, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized reject, got %v", err)
	}
}

func TestApproveUnknownDeposit(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, _, err := svc.Approve(context.Background(), testAdmin(), uuid.NewString(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
