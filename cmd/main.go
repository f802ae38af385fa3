package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"procedures-search-backend/config"
	"procedures-search-backend/internal/bootstrap"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// .env first so LOG_DIR and LOG_LEVEL from the file reach the logger
	envErr := config.LoadEnv()
	config.InitLogger()
	defer config.Logger.Sync()
	config.LogEnvError(envErr)

	settings, err := config.LoadSettings()
	if err != nil {
		config.Logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, closeIndex, err := bootstrap.Build(ctx, settings)
	if err != nil {
		config.Logger.Fatal("Cannot start search gateway", zap.String("profile", settings.Profile), zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		config.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			config.Logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	config.Logger.Info("Server starting",
		zap.String("profile", settings.Profile),
		zap.String("index", settings.PineconeIndex),
		zap.String("port", settings.Port),
	)
	if err := serve(app, ":"+settings.Port, closeIndex); err != nil {
		config.Logger.Fatal("Server failed", zap.String("port", settings.Port), zap.Error(err))
	}
}

// serve blocks until the app stops, then releases the index connections. A
// listen failure is returned so the process exits non-zero.
func serve(app *fiber.App, addr string, closeIndex func() error) error {
	listenErr := app.Listen(addr)

	if err := closeIndex(); err != nil {
		config.Logger.Error("Closing index connections failed", zap.Error(err))
	}
	return listenErr
}
