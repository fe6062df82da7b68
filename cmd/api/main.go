package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/AlejoJamC/banking-account/internal/adapter/handler"
	"github.com/AlejoJamC/banking-account/internal/adapter/middleware"
	"github.com/AlejoJamC/banking-account/internal/adapter/storage"
	"github.com/AlejoJamC/banking-account/internal/core/config"
	"github.com/AlejoJamC/banking-account/internal/core/service"
	"github.com/AlejoJamC/banking-account/internal/core/worker"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Database
	dbPool, err := storage.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := storage.Migrate(context.Background(), dbPool); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	store := storage.NewStore(dbPool)

	if cfg.Env == "local" {
		if err := store.SeedLocalData(context.Background()); err != nil {
			slog.Error("seed data loading failed", "error", err)
			os.Exit(1)
		}
	}

	// 4. Services & handlers
	withdrawalService := service.NewWithdrawalService(store)
	transferService := service.NewTransferService(store, cfg.WebhookURL)
	accountService := service.NewAccountService(store)
	userService := service.NewUserService(store)

	accountHandler := &handler.AccountHandler{
		Withdrawals: withdrawalService,
		Transfers:   transferService,
		Accounts:    accountService,
	}
	userHandler := &handler.UserHandler{Users: userService}
	adminHandler := &handler.AdminHandler{Accounts: accountService}

	// 5. Fiber
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	// 6. Routes
	api := app.Group("/api")

	api.Get("/accounts", middleware.RequireUser(), accountHandler.GetBalances)
	api.Post("/accounts/:id/withdraw", middleware.Idempotency(dbPool), accountHandler.Withdraw)
	api.Post("/accounts/:id/transfer", middleware.Idempotency(dbPool), accountHandler.Transfer)
	api.Get("/accounts/:id/transactions", accountHandler.GetHistory)

	api.Get("/users", userHandler.GetUsers)
	api.Get("/users/search", userHandler.SearchUsers)

	admin := app.Group("/admin")
	admin.Get("/accounts", adminHandler.GetAllAccounts)

	// 7. Background worker
	worker.StartWebhookWorker(dbPool, cfg.WebhookSecret)

	// 8. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	dbPool.Close()
	slog.Info("server exited")
}
