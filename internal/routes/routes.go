package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/socialboost/socialboost/internal/admin"
	"github.com/socialboost/socialboost/internal/catalog"
	"github.com/socialboost/socialboost/internal/config"
	"github.com/socialboost/socialboost/internal/deposit"
	"github.com/socialboost/socialboost/internal/identity"
	"github.com/socialboost/socialboost/internal/middleware"
	"github.com/socialboost/socialboost/internal/notification"
	"github.com/socialboost/socialboost/internal/orders"
	"github.com/socialboost/socialboost/internal/rates"
	"github.com/socialboost/socialboost/internal/settings"
	"github.com/socialboost/socialboost/internal/testimonials"
	"github.com/socialboost/socialboost/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. When DB is nil
// (tests, local hacking) the in-memory repositories take over.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Logger != nil {
		app.Use(middleware.Audit(d.Logger))
	}
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	// Storage
	var (
		ledger        wallet.Ledger
		settingsStore settings.Store
		depositRepo   deposit.Repository
		orderRepo     orders.Repository
		userRepo      identity.Repository
		catalogRepo   catalog.Repository
		reviewRepo    testimonials.Repository
		adminRepo     admin.Repository
	)
	if d.DB != nil {
		ledger = wallet.NewPostgresLedger(d.DB)
		settingsStore = settings.NewPostgresStore(d.DB)
		depositRepo = deposit.NewPostgresRepository(d.DB)
		orderRepo = orders.NewPostgresRepository(d.DB)
		userRepo = identity.NewPostgresRepository(d.DB)
		catalogRepo = catalog.NewPostgresRepository(d.DB)
		reviewRepo = testimonials.NewPostgresRepository(d.DB)
		adminRepo = admin.NewPostgresRepository(d.DB)
	} else {
		ledger = wallet.NewInMemory()
		settingsStore = settings.NewMemoryStore()
		depositRepo = deposit.NewMemoryRepository(ledger)
		orderRepo = orders.NewMemoryRepository(ledger)
		userRepo = identity.NewMemoryRepository(ledger)
		catalogRepo = catalog.NewMemoryRepository()
		reviewRepo = testimonials.NewMemoryRepository()
		adminRepo = admin.NewMemoryRepository()
	}

	// Services
	notifier := notification.NewLoggerNotifier(d.Logger)
	settingsSvc := settings.NewService(settingsStore)
	var rateSource rates.Provider = rates.NewSettingsProvider(settingsSvc)
	if d.Cache != nil {
		rateSource = rates.NewCachedProvider(rateSource, d.Cache, 5*time.Minute)
	}
	walletSvc := wallet.NewService(ledger)
	depositSvc := deposit.NewService(depositRepo, settingsSvc, rateSource, notifier, d.Logger)
	orderSvc := orders.NewService(orderRepo, notifier, d.Logger)
	identitySvc := identity.NewService(userRepo, d.Logger)
	catalogSvc := catalog.NewService(catalogRepo, d.Logger)
	reviewSvc := testimonials.NewService(reviewRepo, d.Logger)
	sessions := admin.NewSessions(d.Cache, d.Cfg.AdminSessionTTL)
	adminSvc := admin.NewService(adminRepo, sessions)

	if d.Cfg.AdminUsername != "" && d.Cfg.AdminPassword != "" {
		if _, err := adminSvc.CreateAdmin(context.Background(), d.Cfg.AdminUsername, d.Cfg.AdminPassword); err != nil {
			return fmt.Errorf("bootstrap admin account: %w", err)
		}
	}

	// Handlers
	walletHandler := wallet.NewHandler(walletSvc)
	depositHandler := deposit.NewHandler(depositSvc)
	orderHandler := orders.NewHandler(orderSvc)
	identityHandler := identity.NewHandler(identitySvc)
	catalogHandler := catalog.NewHandler(catalogSvc)
	reviewHandler := testimonials.NewHandler(reviewSvc)
	settingsHandler := settings.NewHandler(settingsSvc)
	adminHandler := admin.NewHandler(adminSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public storefront routes
	RegisterIdentityRoutes(api, identityHandler)
	RegisterWalletRoutes(api, walletHandler)
	RegisterDepositRoutes(api, depositHandler)
	RegisterOrderRoutes(api, orderHandler)
	RegisterCatalogRoutes(api, catalogHandler)
	RegisterTestimonialRoutes(api, reviewHandler)

	// Admin routes
	rateLimiter := middleware.AdminLoginRateLimit(d.Cache, 5)
	RegisterAdminRoutes(api, adminDeps{
		auth:         adminHandler,
		sessions:     sessions,
		rateLimiter:  rateLimiter,
		deposits:     depositHandler,
		orders:       orderHandler,
		catalog:      catalogHandler,
		testimonials: reviewHandler,
		settings:     settingsHandler,
	})

	return nil
}
