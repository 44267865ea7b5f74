package testimonials

import "time"

// Testimonial is a customer review. Submissions start unapproved and only
// show on the storefront once an admin approves them.
type Testimonial struct {
	ID        string
	UserID    string
	Name      string
	Title     string
	Rating    int
	Content   string
	Avatar    string
	Approved  bool
	CreatedAt time.Time
}
