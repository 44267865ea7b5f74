package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestServiceBalanceAndHistory(t *testing.T) {
	svc := NewService(NewInMemory())
	ctx := context.Background()
	userID := uuid.NewString()

	if err := svc.CreateAccount(ctx, userID); err != nil {
		t.Fatalf("create account: %v", err)
	}

	balance, err := svc.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Amount != 0 {
		t.Fatalf("new account must start at 0, got %d", balance.Amount)
	}

	if _, err := svc.Credit(ctx, userID, 1_500, Entry{Type: TypeDeposit, ReferenceID: "dep-1"}); err != nil {
		t.Fatalf("credit: %v", err)
	}
	res, err := svc.Debit(ctx, userID, 400, Entry{Type: TypePurchase, ReferenceID: "ord-1"})
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if res.BalanceAfter != 1_100 {
		t.Fatalf("expected 1100, got %d", res.BalanceAfter)
	}

	records, err := svc.Transactions(ctx, userID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Type != TypePurchase || records[0].BalanceAfter != 1_100 {
		t.Fatalf("unexpected latest record: %+v", records[0])
	}
}

func TestServiceBalanceUnknownUser(t *testing.T) {
	svc := NewService(NewInMemory())
	if _, err := svc.Balance(context.Background(), uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
