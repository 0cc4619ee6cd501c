// Package routes defines the API routing configuration.
// It wires repositories into services, services into handlers, and
// registers every route with its middleware.
package routes

import (
	"time"

	"payloow/internal/config"
	"payloow/internal/handlers"
	"payloow/internal/middleware"
	"payloow/internal/repositories"
	"payloow/internal/services/deposit"
	"payloow/internal/services/dva"
	"payloow/internal/services/paystack"
	"payloow/internal/services/reconciliation"
	"payloow/internal/services/transaction"
	"payloow/internal/services/wallet"
	"payloow/internal/services/webhook"
	"payloow/internal/services/withdrawal"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes and returns the
// reconciliation sweeper for the caller to start.
func SetupRoutes(app *fiber.App, db *gorm.DB) *reconciliation.Sweeper {
	// Initialize repositories
	walletRepo := repositories.NewWalletRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)
	userRepo := repositories.NewUserRepository(db)
	dvaRepo := repositories.NewDVARepository(db)

	// Payment gateway client
	gateway := paystack.NewClient(
		config.GetEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		config.GetEnv("PAYSTACK_SECRET_KEY", ""),
		config.GetDurationEnv("PAYSTACK_TIMEOUT", 30*time.Second),
	)

	// Initialize services in dependency order
	walletService := wallet.NewService(walletRepo, repositories.CacheService, &wallet.NoopMetricsCollector{})
	txnService := transaction.NewService(txnRepo, walletRepo)
	dvaService := dva.NewService(dvaRepo, userRepo, gateway)
	depositService := deposit.NewService(userRepo, gateway, config.GetEnv("PAYSTACK_CALLBACK_URL", ""))
	withdrawalService := withdrawal.NewService(walletService, txnService, gateway)
	webhookService := webhook.NewService(gateway, walletService, txnService, dvaRepo, userRepo)

	sweeper := reconciliation.NewSweeper(txnService, gateway, webhookService, reconciliation.Config{
		Schedule:    config.GetEnv("RECONCILE_SCHEDULE", "*/10 * * * *"),
		GracePeriod: config.GetDurationEnv("RECONCILE_GRACE_PERIOD", 15*time.Minute),
	})

	// Initialize handlers
	walletHandler := handlers.NewWalletHandler(walletService, withdrawalService, depositService, dvaService, txnService)
	webhookHandler := handlers.NewWebhookHandler(webhookService)

	// Webhook endpoint is authenticated by signature, not by JWT
	app.Post("/webhook/paystack", webhookHandler.HandlePaystack)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Payloow API",
			"version": "1.0.0",
		})
	})

	api := app.Group("/api")

	authMiddleware := middleware.DefaultAuthMiddleware()
	protected := api.Use(authMiddleware.Handler)

	walletGroup := protected.Group("/wallet")
	walletGroup.Get("/", walletHandler.GetWallet)
	walletGroup.Get("/balance", walletHandler.GetBalance)
	walletGroup.Post("/withdraw", walletHandler.Withdraw)
	walletGroup.Post("/deposit", walletHandler.Deposit)
	walletGroup.Post("/bvn", walletHandler.BindBVN)
	walletGroup.Get("/transactions", walletHandler.GetTransactions)

	return sweeper
}
