package bootstrap

import (
	"fmt"

	"procedures-search-backend/config"
	"procedures-search-backend/middleware"
	"procedures-search-backend/search/controllers"
	"procedures-search-backend/search/repositories"
	"procedures-search-backend/search/routes"
	"procedures-search-backend/search/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Profile string

const (
	ProfileStandalone Profile = "standalone"
	ProfileLayered    Profile = "layered"

	// StandaloneNamespace and StandaloneTopK are fixed for the standalone gateway.
	StandaloneNamespace = "unique_descriptions"
	StandaloneTopK      = 10
)

func ParseProfile(s string) (Profile, error) {
	switch p := Profile(s); p {
	case ProfileStandalone, ProfileLayered:
		return p, nil
	}
	return "", fmt.Errorf("unknown APP_PROFILE %q (want %q or %q)", s, ProfileStandalone, ProfileLayered)
}

// Dependencies are the collaborators an app is built from. Completer is optional.
type Dependencies struct {
	Index     repositories.Index
	Completer services.Completer

	// Layered profile only.
	Namespace       string
	TopK            int
	CORSAllowOrigin string

	Logger *zap.Logger
}

// NewApp builds the fiber app for a profile over the shared search service.
func NewApp(profile Profile, deps Dependencies) (*fiber.App, error) {
	if deps.Index == nil {
		return nil, fmt.Errorf("bootstrap: index is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = config.Logger
	}

	app := fiber.New(fiber.Config{
		AppName:               "procedures-search-backend",
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	middleware.InitRequestID(app)
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())

	switch profile {
	case ProfileStandalone:
		middleware.InitOpenCors(app)

		searchService := services.NewSearchService(deps.Index, services.SearchOptions{
			Namespace:   StandaloneNamespace,
			TopK:        StandaloneTopK,
			RoundScores: true,
		}, logger)
		routes.InitStandaloneRoutes(app, controllers.NewSearchController(searchService, logger))

	case ProfileLayered:
		origin := deps.CORSAllowOrigin
		if origin == "" {
			origin = config.DefaultCORSAllowOrigin
		}
		middleware.InitCors(app, origin)

		opts := services.SearchOptions{Namespace: deps.Namespace, TopK: deps.TopK}
		if opts.Namespace == "" {
			opts.Namespace = config.DefaultNamespace
		}
		if opts.TopK <= 0 {
			opts.TopK = config.DefaultTopK
		}
		searchService := services.NewSearchService(deps.Index, opts, logger)

		var chatController *controllers.ChatController
		if deps.Completer != nil {
			chatController = controllers.NewChatController(services.NewChatService(searchService, deps.Completer, logger), logger)
		} else {
			logger.Warn("No completer configured, /chat not registered")
		}
		routes.InitLayeredRoutes(app, controllers.NewSearchController(searchService, logger), chatController)

	default:
		return nil, fmt.Errorf("bootstrap: unknown profile %q", profile)
	}

	return app, nil
}
