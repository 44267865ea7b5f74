package deposit

import "time"

// Status is the lifecycle state of a deposit request. A deposit is created
// Pending and transitions exactly once to Completed or Rejected; both are
// terminal.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusRejected  Status = "Rejected"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Method is how the customer claims to have paid.
type Method string

const (
	// MethodUPI is a QR-code / UPI transfer, proved by a screenshot and
	// shown to the payer in rupees.
	MethodUPI Method = "QR/UPI"
	// MethodCrypto is a cryptocurrency transfer, proved by the external
	// transaction id.
	MethodCrypto Method = "Crypto"
)

// Valid reports whether the method is one of the closed set.
func (m Method) Valid() bool {
	return m == MethodUPI || m == MethodCrypto
}

// Deposit is a user-submitted claim of having sent external payment,
// awaiting admin confirmation. AmountUSD is in cents; AmountINR is the
// whole-rupee figure snapshotted at submission time for QR/UPI payers and
// zero otherwise.
type Deposit struct {
	ID           string
	UserID       string
	AmountUSD    int64
	AmountINR    int64
	Method       Method
	Screenshot   string
	ExternalTxID string
	Status       Status
	AdminNote    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
