package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/socialboost/socialboost/internal/catalog"
	"github.com/socialboost/socialboost/internal/deposit"
	"github.com/socialboost/socialboost/internal/identity"
	"github.com/socialboost/socialboost/internal/orders"
	"github.com/socialboost/socialboost/internal/testimonials"
	"github.com/socialboost/socialboost/internal/wallet"
)

// RegisterIdentityRoutes wires login sync and profile lookup.
func RegisterIdentityRoutes(r fiber.Router, h *identity.Handler) {
	r.Post("/users/sync", h.Sync)
	r.Get("/users/:userId", h.Get)
}

// RegisterWalletRoutes wires balance and transaction history lookups.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/users/:userId/wallet", h.Balance)
	r.Get("/users/:userId/transactions", h.Transactions)
}

// RegisterDepositRoutes wires customer-facing deposit endpoints.
func RegisterDepositRoutes(r fiber.Router, h *deposit.Handler) {
	r.Post("/deposits", h.Submit)
	r.Get("/users/:userId/deposits", h.History)
}

// RegisterOrderRoutes wires checkout and order tracking.
func RegisterOrderRoutes(r fiber.Router, h *orders.Handler) {
	r.Post("/orders", h.Place)
	r.Get("/orders/:orderId", h.Track)
	r.Get("/users/:userId/orders", h.History)
}

// RegisterCatalogRoutes wires the public service catalog.
func RegisterCatalogRoutes(r fiber.Router, h *catalog.Handler) {
	r.Get("/services", h.List)
	r.Get("/platforms", h.Platforms)
}

// RegisterTestimonialRoutes wires review submission and the public list.
func RegisterTestimonialRoutes(r fiber.Router, h *testimonials.Handler) {
	r.Post("/testimonials", h.Submit)
	r.Get("/testimonials", h.Approved)
}
