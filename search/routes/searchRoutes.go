package routes

import (
	"procedures-search-backend/search/controllers"

	"github.com/gofiber/fiber/v2"
)

// InitStandaloneRoutes mounts the standalone gateway: health plus /api/search.
func InitStandaloneRoutes(app *fiber.App, controller *controllers.SearchController) {
	app.Get("/", controller.HealthCheckController)

	api := app.Group("/api")
	api.Post("/search", controller.SearchProceduresController)
}

// InitLayeredRoutes mounts the layered gateway. chat may be nil.
func InitLayeredRoutes(app *fiber.App, controller *controllers.SearchController, chat *controllers.ChatController) {
	app.Post("/search", controller.SearchProceduresController)

	if chat != nil {
		app.Post("/chat", chat.ChatProceduresController)
	}
}
