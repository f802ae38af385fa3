// Package handler is the serverless entry point. The host calls Handler for
// every request. The standalone gateway is built on the first call and reused;
// a failed build is retried on the next call, and until it succeeds requests
// are served by a degraded app whose health route still answers.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"procedures-search-backend/config"
	"procedures-search-backend/internal/bootstrap"
	"procedures-search-backend/search/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
)

var (
	loggerOnce sync.Once

	mu    sync.Mutex
	serve http.HandlerFunc
)

// buildApp connects to the index. Replaced in tests.
var buildApp = func(ctx context.Context, settings config.Settings) (*fiber.App, error) {
	// The index connection lives as long as the function instance.
	app, _, err := bootstrap.Build(ctx, settings)
	return app, err
}

func Handler(w http.ResponseWriter, r *http.Request) {
	loggerOnce.Do(func() {
		envErr := config.LoadEnv()
		config.InitConsoleLogger()
		config.LogEnvError(envErr)
	})
	current()(w, r)
}

func current() http.HandlerFunc {
	mu.Lock()
	defer mu.Unlock()

	if serve != nil {
		return serve
	}

	app, err := initialize()
	if err != nil {
		config.Logger.Error("Cannot build search gateway, serving degraded", zap.Error(err))
		degraded, derr := bootstrap.NewDegradedApp(bootstrap.ProfileStandalone, err, config.Logger)
		if derr != nil {
			return func(w http.ResponseWriter, _ *http.Request) { writeInitError(w, err) }
		}
		return adaptor.FiberApp(degraded)
	}

	serve = adaptor.FiberApp(app)
	return serve
}

func initialize() (*fiber.App, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	settings.Profile = string(bootstrap.ProfileStandalone)
	return buildApp(context.Background(), settings)
}

func writeInitError(w http.ResponseWriter, err error) {
	body, _ := json.Marshal(models.ErrorResponse{Detail: err.Error()})
	w.Header().Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(body)
}
