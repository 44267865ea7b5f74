package admin

import "time"

// Admin is a back-office account allowed to review deposits, orders and
// testimonials.
type Admin struct {
	ID           string
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Principal identifies an authenticated admin. Service methods that perform
// admin actions take one explicitly instead of consulting ambient session
// state.
type Principal struct {
	AdminID  string
	Username string
}

// Zero reports whether the principal is unauthenticated.
func (p Principal) Zero() bool {
	return p.AdminID == ""
}
