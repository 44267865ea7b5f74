package catalog

import "time"

// Item is one purchasable service, e.g. "Followers" on "Instagram".
// Deactivated items stay stored so past orders keep their reference, but
// they disappear from the storefront.
type Item struct {
	ID        string
	Platform  string
	Name      string
	Price     int64 // USD cents
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
