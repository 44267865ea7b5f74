package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestInMemoryLedger_CreditDebit(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	userID := uuid.NewString()

	if err := l.CreateAccount(ctx, userID); err != nil {
		t.Fatalf("create account: %v", err)
	}

	res, err := l.Credit(ctx, userID, 1_000, Entry{Type: TypeDeposit, Description: "Deposit via QR/UPI", ReferenceID: "dep-1"})
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if res.BalanceAfter != 1_000 {
		t.Fatalf("expected balance 1000, got %d", res.BalanceAfter)
	}

	res, err = l.Debit(ctx, userID, 750, Entry{Type: TypePurchase, Description: "Purchase of Followers on Instagram", ReferenceID: "ord-1"})
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if res.BalanceAfter != 250 {
		t.Fatalf("expected balance 250, got %d", res.BalanceAfter)
	}

	balance, err := l.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 250 {
		t.Fatalf("expected balance 250, got %d", balance)
	}
}

func TestInMemoryLedger_DebitRejectsOverdraft(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	userID := uuid.NewString()
	l.CreateAccount(ctx, userID)
	SeedBalance(l, userID, 500)

	if _, err := l.Debit(ctx, userID, 501, Entry{Type: TypePurchase, ReferenceID: "ord-1"}); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	balance, err := l.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 500 {
		t.Fatalf("balance changed after rejected debit: %d", balance)
	}

	records, _ := l.Transactions(ctx, userID)
	if len(records) != 0 {
		t.Fatalf("rejected debit must not produce a record, got %d", len(records))
	}
}

func TestInMemoryLedger_RejectsNonPositiveAmounts(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	userID := uuid.NewString()
	l.CreateAccount(ctx, userID)

	if _, err := l.Credit(ctx, userID, 0, Entry{Type: TypeDeposit}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for zero credit, got %v", err)
	}
	if _, err := l.Debit(ctx, userID, -5, Entry{Type: TypePurchase}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for negative debit, got %v", err)
	}
}

func TestInMemoryLedger_UnknownAccount(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	if _, err := l.Balance(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := l.Credit(ctx, uuid.NewString(), 100, Entry{Type: TypeDeposit}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInMemoryLedger_ReplayMatchesBalance(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	userID := uuid.NewString()
	l.CreateAccount(ctx, userID)

	l.Credit(ctx, userID, 2_000, Entry{Type: TypeDeposit, ReferenceID: "dep-1"})
	l.Debit(ctx, userID, 300, Entry{Type: TypePurchase, ReferenceID: "ord-1"})
	l.Credit(ctx, userID, 300, Entry{Type: TypeRefund, ReferenceID: "ord-1"})
	l.Debit(ctx, userID, 1_250, Entry{Type: TypePurchase, ReferenceID: "ord-2"})

	balance, err := l.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}

	records, err := l.Transactions(ctx, userID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	// Records come back newest first; replay oldest to newest.
	var replayed int64
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		switch rec.Type {
		case TypeDeposit, TypeRefund:
			replayed += rec.Amount
		case TypePurchase:
			replayed -= rec.Amount
		}
		if replayed != rec.BalanceAfter {
			t.Fatalf("record %s balance_after=%d, replay says %d", rec.ID, rec.BalanceAfter, replayed)
		}
	}
	if replayed != balance {
		t.Fatalf("replayed %d != balance %d", replayed, balance)
	}
	if records[0].BalanceAfter != balance {
		t.Fatalf("latest record balance_after=%d != balance %d", records[0].BalanceAfter, balance)
	}
}

func TestInMemoryLedger_ConcurrentDebits(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	userID := uuid.NewString()
	l.CreateAccount(ctx, userID)
	SeedBalance(l, userID, 10_000)

	const workers = 25
	const amount = int64(500)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := l.Debit(ctx, userID, amount, Entry{Type: TypePurchase, ReferenceID: fmt.Sprintf("ord-%d", i)})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("debit %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	// 10_000 / 500 = 20 debits can succeed; the rest must be rejected and
	// the balance can never go negative.
	if succeeded != 20 {
		t.Fatalf("expected 20 successful debits, got %d", succeeded)
	}
	balance, _ := l.Balance(ctx, userID)
	if balance != 0 {
		t.Fatalf("expected balance 0, got %d", balance)
	}
}
