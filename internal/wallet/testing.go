package wallet

// SeedBalance is a test helper that seeds a user's balance when using the
// in-memory ledger. It bypasses the transaction log, so tests asserting on
// record replay should fund accounts through Credit instead.
func SeedBalance(l Ledger, userID string, amount int64) {
	if mem, ok := l.(*inMemoryLedger); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.balances[userID] = amount
	}
}
