package controllers

import (
	"procedures-search-backend/config"
	"procedures-search-backend/search/models"
	"procedures-search-backend/search/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SearchController struct {
	service *services.SearchService
	logger  *zap.Logger
}

func NewSearchController(service *services.SearchService, logger *zap.Logger) *SearchController {
	if logger == nil {
		logger = config.Logger
	}
	return &SearchController{service: service, logger: logger}
}

// respondError maps an error to its status. Unclassified failures are the
// last-resort bucket and get their own error-level entry.
func respondError(ctx *fiber.Ctx, logger *zap.Logger, err error) error {
	kind := services.KindOf(err)
	if kind == services.KindUnclassified {
		logger.Error("Unclassified search failure",
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
	} else {
		logger.Warn("Search request failed",
			zap.String("path", ctx.Path()),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)
	}
	return ctx.Status(kind.StatusCode()).JSON(models.ErrorResponse{Detail: err.Error()})
}

func validationError(ctx *fiber.Ctx, detail string) error {
	return ctx.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Detail: detail})
}
