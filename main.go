package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mailmind_server/config"
	"mailmind_server/internal/bootstrap"
	"mailmind_server/pkg/logger"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger.Init(logger.Config{
		Level:   logger.LevelInfo,
		Service: "mailmind",
	})

	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	app, err := bootstrap.NewAPI(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize API: %v", err)
	}

	// Graceful shutdown with timeout
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down (timeout: %v)...", shutdownTimeout)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- app.Shutdown()
		}()

		select {
		case err := <-done:
			if err != nil {
				logger.Error("Error shutting down: %v", err)
			} else {
				logger.Info("Server shut down gracefully")
			}
		case <-ctx.Done():
			logger.Warn("Shutdown timed out, forcing exit")
		}
		os.Exit(0)
	}()

	addr := ":" + cfg.Port
	logger.Info("Starting MailMind server on %s", addr)
	if err := app.Listen(addr); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
