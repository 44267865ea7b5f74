package settings

import (
	"context"
	"testing"
)

func TestDefaultsWhenUnset(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	minDeposit, err := svc.MinDeposit(ctx)
	if err != nil {
		t.Fatalf("min deposit: %v", err)
	}
	if minDeposit != 100 {
		t.Fatalf("expected default 100 cents, got %d", minDeposit)
	}

	rate, err := svc.USDToINRRate(ctx)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rate != 83.5 {
		t.Fatalf("expected default 83.5, got %v", rate)
	}
}

func TestUpdateOverridesDefaults(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Update(ctx, KeyMinDepositCents, "500"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.Update(ctx, KeyUSDToINRRate, "88.25"); err != nil {
		t.Fatalf("update: %v", err)
	}

	minDeposit, _ := svc.MinDeposit(ctx)
	if minDeposit != 500 {
		t.Fatalf("expected 500, got %d", minDeposit)
	}
	rate, _ := svc.USDToINRRate(ctx)
	if rate != 88.25 {
		t.Fatalf("expected 88.25, got %v", rate)
	}

	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected two settings, got %d", len(all))
	}
}

func TestMalformedValuesSurfaceErrors(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Update(ctx, KeyMinDepositCents, "not-a-number"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.MinDeposit(ctx); err == nil {
		t.Fatal("expected error for malformed minimum")
	}

	if _, err := svc.Update(ctx, "", "x"); err == nil {
		t.Fatal("expected error for empty key")
	}
}
