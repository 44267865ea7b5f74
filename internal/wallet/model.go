package wallet

import "time"

// Balance encapsulates the spendable USD credit for one user.
type Balance struct {
	UserID string
	Amount int64
	AsOf   time.Time
}
