package identity

import "time"

// User is a customer account synced from the external auth provider. UID is
// the provider's stable subject identifier; ID is our own key and is what
// the wallet account hangs off.
type User struct {
	ID        string
	UID       string
	Email     string
	Name      string
	PhotoURL  string
	CreatedAt time.Time
}
