package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/lovemypet/backend/internal/aigen"
	"github.com/lovemypet/backend/internal/config"
	"github.com/lovemypet/backend/internal/database"
	"github.com/lovemypet/backend/internal/handlers"
	"github.com/lovemypet/backend/internal/logging"
	"github.com/lovemypet/backend/internal/markdown"
	"github.com/lovemypet/backend/internal/metrics"
	"github.com/lovemypet/backend/internal/middleware"
	"github.com/lovemypet/backend/internal/notify"
	"github.com/lovemypet/backend/internal/routes"
	"github.com/lovemypet/backend/internal/seed"
	"github.com/lovemypet/backend/internal/services"
	"github.com/lovemypet/backend/internal/storage"
)

func main() {
	cfg := config.Load()

	// Sentry error tracking
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	logging.Setup(cfg.IsProduction(), sentryEnabled)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Storage
	var (
		db        *gorm.DB
		stores    *storage.Stores
		dbHandler *logging.DBHandler
		cleanup   *cron.Cron
	)
	if cfg.UsePostgres() {
		if cfg.DBPassword == "" {
			slog.Error("DB_PASSWORD environment variable is required")
			os.Exit(1)
		}
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(db); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		stores = storage.NewGormStores(db)

		// ERROR+ records are batched into system_logs
		dbHandler = logging.NewDBHandler(db)
		logging.AddSink(dbHandler)

		cleanup, err = logging.StartCleanup(db, cfg.LogRetentionDays, cfg.LogCleanupSchedule)
		if err != nil {
			slog.Error("log cleanup schedule invalid", "schedule", cfg.LogCleanupSchedule, "error", err)
			os.Exit(1)
		}
	} else {
		var err error
		stores, err = storage.NewMemoryStores(cfg.SettingsPath)
		if err != nil {
			slog.Error("failed to open settings file", "path", cfg.SettingsPath, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("storage ready", "driver", cfg.StoreDriver)

	if cfg.SeedDemoData {
		if err := seed.Load(ctx, stores, time.Now().UTC()); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	// Notifications
	var broker notify.Broker = notify.NewMemoryBroker()
	if cfg.RedisURL != "" {
		rb, err := notify.NewRedisBroker(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis broker unavailable", "error", err)
			os.Exit(1)
		}
		broker = rb
	}
	toasts := notify.NewToasts(cfg.NotificationTTL)
	go toasts.Run(ctx, broker)

	// AI providers, tried in order
	var providers []aigen.Provider
	if cfg.GeminiAPIKey != "" {
		gp, err := aigen.NewGeminiProvider(ctx, cfg.GeminiAPIKey, splitList(cfg.GeminiModels))
		if err != nil {
			slog.Warn("gemini provider disabled", "error", err)
		} else {
			providers = append(providers, gp)
		}
	}
	if cfg.GLMAPIKey != "" {
		providers = append(providers, aigen.NewChatProvider("glm", cfg.GLMAPIURL, cfg.GLMAPIKey, cfg.GLMModel, cfg.AITimeout))
	}
	assistant := aigen.NewAssistant(cfg.AITimeout, providers...)
	slog.Info("writing assistant ready", "providers", len(providers))

	// Services
	settingsService := services.NewSettingsService(stores.Settings)
	userService := services.NewUserService(stores.Users, settingsService, cfg.JWTSecret, cfg.JWTExpiry)
	petService := services.NewPetService(stores, settingsService, broker)
	storyService := services.NewStoryService(stores, settingsService, broker, cfg.AppURL)
	moderationService := services.NewModerationService(stores, settingsService, broker)
	postService := services.NewPostService(stores, settingsService)
	pinService := services.NewPinService(stores)
	feedService := services.NewFeedService(stores)
	adService := services.NewAdService(stores)
	policyService := services.NewPolicyService(stores, markdown.NewRenderer())
	healthService := services.NewHealthService(stores)
	chatService := services.NewChatService(stores, broker, cfg.ChatAutoReplyDelay)

	h := routes.Handlers{
		Health:        handlers.NewHealthHandler(db, cfg.StoreDriver),
		Session:       handlers.NewSessionHandler(userService, petService),
		Members:       handlers.NewMemberHandler(userService, petService),
		Pets:          handlers.NewPetHandler(petService, storyService),
		HealthRecords: handlers.NewHealthRecordHandler(healthService),
		Stories:       handlers.NewStoryHandler(storyService),
		Moderation:    handlers.NewModerationHandler(moderationService),
		Posts:         handlers.NewPostHandler(postService),
		Pins:          handlers.NewPinHandler(pinService),
		Feed:          handlers.NewFeedHandler(feedService),
		Ads:           handlers.NewAdHandler(adService),
		Policies:      handlers.NewPolicyHandler(policyService, settingsService),
		Settings:      handlers.NewSettingsHandler(settingsService),
		Notifications: handlers.NewNotificationHandler(broker, toasts),
		Assist:        handlers.NewAssistHandler(assistant),
		Chats:         handlers.NewChatHandler(chatService),
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	app.Use(metrics.Middleware())

	routes.Setup(app, cfg, stores.Users, settingsService, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	stop()
	chatService.Close()
	if err := broker.Close(); err != nil {
		slog.Error("broker close error", "error", err)
	}
	if cleanup != nil {
		<-cleanup.Stop().Done()
	}
	if dbHandler != nil {
		dbHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if db != nil {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
