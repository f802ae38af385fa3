package bootstrap

import (
	"context"

	"procedures-search-backend/config"
	"procedures-search-backend/internal/services"
	"procedures-search-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Build connects to Pinecone (and Gemini when configured) and returns the app
// for settings.Profile. The returned close func releases the index connections.
func Build(ctx context.Context, settings config.Settings) (*fiber.App, func() error, error) {
	profile, err := ParseProfile(settings.Profile)
	if err != nil {
		return nil, nil, err
	}

	client, err := config.InitPinecone(settings.PineconeAPIKey)
	if err != nil {
		return nil, nil, err
	}

	namespace := StandaloneNamespace
	if profile == ProfileLayered {
		namespace = settings.Namespace
	}
	repo, err := repositories.NewPineconeRepository(ctx, client, settings.PineconeIndex, []string{namespace}, config.Logger)
	if err != nil {
		return nil, nil, err
	}

	deps := Dependencies{
		Index:           repo,
		Namespace:       settings.Namespace,
		TopK:            settings.TopK,
		CORSAllowOrigin: settings.CORSAllowOrigin,
		Logger:          config.Logger,
	}

	if profile == ProfileLayered && settings.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiService(ctx, settings.GeminiAPIKey, settings.GeminiModel, settings.GeminiRPM)
		if err != nil {
			config.Logger.Error("Gemini service unavailable, chat disabled", zap.Error(err))
		} else {
			deps.Completer = gemini
		}
	}

	app, err := NewApp(profile, deps)
	if err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	return app, repo.Close, nil
}
