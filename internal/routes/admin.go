package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/socialboost/socialboost/internal/admin"
	"github.com/socialboost/socialboost/internal/catalog"
	"github.com/socialboost/socialboost/internal/deposit"
	"github.com/socialboost/socialboost/internal/orders"
	"github.com/socialboost/socialboost/internal/settings"
	"github.com/socialboost/socialboost/internal/testimonials"
)

type adminDeps struct {
	auth         *admin.Handler
	sessions     *admin.Sessions
	rateLimiter  fiber.Handler
	deposits     *deposit.Handler
	orders       *orders.Handler
	catalog      *catalog.Handler
	testimonials *testimonials.Handler
	settings     *settings.Handler
}

// RegisterAdminRoutes wires authentication plus the session-protected admin
// panel: deposit review, order fulfilment, catalog management, testimonial
// moderation and settings.
func RegisterAdminRoutes(r fiber.Router, d adminDeps) {
	group := r.Group("/admin")
	if d.rateLimiter != nil {
		group.Post("/login", d.rateLimiter, d.auth.Login)
	} else {
		group.Post("/login", d.auth.Login)
	}

	protected := group.Group("", admin.RequireSession(d.sessions))
	protected.Post("/logout", d.auth.Logout)

	protected.Get("/deposits", d.deposits.List)
	protected.Post("/deposits/:depositId/approve", d.deposits.Approve)
	protected.Post("/deposits/:depositId/reject", d.deposits.Reject)

	protected.Get("/orders", d.orders.List)
	protected.Patch("/orders/:orderId/status", d.orders.UpdateStatus)

	protected.Post("/services", d.catalog.Create)
	protected.Put("/services/:itemId", d.catalog.Update)
	protected.Delete("/services/:itemId", d.catalog.Deactivate)

	protected.Get("/testimonials", d.testimonials.All)
	protected.Post("/testimonials/:testimonialId/approve", d.testimonials.Approve)
	protected.Delete("/testimonials/:testimonialId", d.testimonials.Reject)

	protected.Get("/settings", d.settings.List)
	protected.Put("/settings", d.settings.Update)
}
