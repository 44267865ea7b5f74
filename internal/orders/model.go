package orders

import "time"

// Status is an order's position in the fulfilment pipeline.
type Status string

const (
	// StatusPending is a freshly placed order awaiting payment review.
	StatusPending Status = "Pending"
	// StatusInReview means an admin is verifying the manual payment proof.
	StatusInReview Status = "In Review"
	// StatusProcessing means payment is confirmed and delivery has started.
	StatusProcessing Status = "Processing"
	// StatusCompleted is terminal: the order was delivered.
	StatusCompleted Status = "Completed"
	// StatusRejected is terminal: the order was declined.
	StatusRejected Status = "Rejected"
)

// Valid reports whether the status is one of the closed set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusProcessing, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// transitions is the allowed edge set. Anything not listed is illegal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInReview, StatusRejected},
	StatusInReview:   {StatusProcessing, StatusRejected},
	StatusProcessing: {StatusCompleted, StatusRejected},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a purchase of a catalog service. UserID is empty for guest
// checkouts; WalletPayment orders always carry the paying user's id.
type Order struct {
	ID            string
	UserID        string
	Platform      string
	Service       string
	Link          string
	Quantity      int64
	Total         int64 // USD cents
	Status        Status
	Name          string
	Email         string
	Message       string
	Screenshot    string
	WalletPayment bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
