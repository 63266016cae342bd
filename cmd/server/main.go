package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "hr-selfservice/docs" // Swagger docs
	"hr-selfservice/internal/adapters/http/middleware"
	"hr-selfservice/internal/adapters/http/routes"
	"hr-selfservice/internal/adapters/mail"
	"hr-selfservice/internal/adapters/persistence"
	"hr-selfservice/internal/config"
	"hr-selfservice/internal/core/services"
	"hr-selfservice/internal/pkg/dateutil"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// @title HR Self-Service API
// @version 1.0
// @description Annual vacation plans, service requests, skills surveys and vacation reminders.
// @BasePath /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ Failed to load configuration: %v", err)
	}
	config.SetupLogger(cfg)

	// Employee roster
	roster, err := config.LoadRoster(cfg.RosterFile)
	if err != nil {
		logrus.Fatalf("❌ Failed to load roster: %v", err)
	}
	gate, err := services.NewCredentialGate(roster)
	if err != nil {
		logrus.Fatalf("❌ Invalid roster: %v", err)
	}
	logrus.WithField("employees", len(roster)).Info("✅ Roster loaded")

	// Connect to storage
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := persistence.Open(ctx, cfg)
	cancel()
	if err != nil {
		logrus.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			logrus.WithError(err).Error("❌ Failed to close database")
		}
	}()

	// Seed the default admin
	if err := config.NewSeeder(store.Admins, cfg).Run(context.Background()); err != nil {
		logrus.Warnf("⚠️ Warning: Failed to seed admin: %v", err)
	}

	svc := services.New(services.Deps{
		Config:    cfg,
		Gate:      gate,
		Leaves:    store.Leaves,
		Requests:  store.Requests,
		Reminders: store.Reminders,
		Admins:    store.Admins,
		Surveys:   store.Surveys,
		Mailer:    mail.New(cfg.Mail),
		Clock:     dateutil.SystemClock{Location: cfg.Location()},
	})

	// Start cron service for vacation reminders (08:30 daily by default)
	if cfg.Reminder.Enabled {
		cronService := services.NewCronService(svc.Reminders, cfg.Reminder.Schedule, cfg.Location())
		if err := cronService.Start(); err != nil {
			logrus.Fatalf("❌ Invalid reminder schedule %q: %v", cfg.Reminder.Schedule, err)
		}
		defer cronService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HR Self-Service API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, svc, store, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	logrus.Infof("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Errorf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logrus.Errorf("❌ Error during shutdown: %v", err)
	}
	logrus.Info("✅ Server stopped gracefully")
}
