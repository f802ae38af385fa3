package controllers

import (
	"procedures-search-backend/search/models"

	"github.com/gofiber/fiber/v2"
)

func (c *SearchController) HealthCheckController(ctx *fiber.Ctx) error {
	return ctx.JSON(models.HealthResponse{Message: "Hello World"})
}
