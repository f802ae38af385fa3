package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const corsAllowMethods = "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS"

// InitOpenCors allows every origin. AllowHeaders is left empty so preflights
// echo whatever headers the browser asks for. Credentials cannot be combined
// with a wildcard origin.
func InitOpenCors(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: corsAllowMethods,
	}))
}

// InitCors restricts CORS to a single frontend origin, with credentials.
func InitCors(app *fiber.App, allowOrigin string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigin,
		AllowMethods:     corsAllowMethods,
		AllowCredentials: true,
	}))
}
