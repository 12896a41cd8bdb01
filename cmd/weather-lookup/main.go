package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "weather-lookup-service/internal/api/http"
	"weather-lookup-service/internal/config"
	"weather-lookup-service/internal/scheduler"
	"weather-lookup-service/internal/session"
	"weather-lookup-service/internal/weather/providers"
)

func main() {
	// Load configuration. Missing API keys fail here, before any fetch.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherClient(httpClient, cfg.WeatherAPIKey, cfg.WeatherLanguage)
	translator := providers.NewTranslateClient(httpClient, cfg.TranslationAPIKey)
	locator := providers.NewIPLocator(httpClient)

	registry := session.NewRegistry(cfg.SessionTTL)
	newSession := func() *session.Session {
		return session.New(provider, translator, locator, cfg.TargetLanguage)
	}

	// Janitor reclaiming idle sessions.
	janitor := scheduler.New(registry, cfg.JanitorInterval)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start janitor: %v", err)
	}
	defer janitor.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-lookup-service",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-lookup-service",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, registry, newSession)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
