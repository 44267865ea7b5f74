package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/socialboost/socialboost/internal/wallet"
)

func TestSyncProvisionsWalletOnce(t *testing.T) {
	ctx := context.Background()
	led := wallet.NewInMemory()
	svc := NewService(NewMemoryRepository(led), nil)

	u, err := svc.Sync(ctx, SyncInput{UID: "auth-123", Email: "asha@example.com", Name: "Asha"})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	balance, err := led.Balance(ctx, u.ID)
	if err != nil {
		t.Fatalf("wallet should exist after sync: %v", err)
	}
	if balance != 0 {
		t.Fatalf("new wallet should start at zero, got %d", balance)
	}

	// A later login refreshes the profile but keeps the same user and wallet.
	again, err := svc.Sync(ctx, SyncInput{UID: "auth-123", Email: "asha@example.com", Name: "Asha K"})
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if again.ID != u.ID {
		t.Fatalf("uid must map to one user: %s vs %s", again.ID, u.ID)
	}
	if again.Name != "Asha K" {
		t.Fatalf("profile not refreshed, name=%q", again.Name)
	}
}

func TestSyncValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(wallet.NewInMemory()), nil)
	ctx := context.Background()

	if _, err := svc.Sync(ctx, SyncInput{Email: "x@example.com"}); err == nil {
		t.Fatal("expected error for missing uid")
	}
	if _, err := svc.Sync(ctx, SyncInput{UID: "auth-1"}); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestFindUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepository(wallet.NewInMemory()), nil)
	if _, err := svc.Find(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
