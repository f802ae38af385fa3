package controllers

import (
	"encoding/json"
	"errors"
	"strings"

	"procedures-search-backend/search/models"

	"github.com/gofiber/fiber/v2"
)

func (c *SearchController) SearchProceduresController(ctx *fiber.Ctx) error {
	var req models.SearchQuery
	if err := ctx.BodyParser(&req); err != nil {
		return validationError(ctx, parseErrorDetail(err))
	}
	if req.Query == nil {
		return validationError(ctx, "query is required")
	}
	if strings.TrimSpace(*req.Query) == "" {
		return validationError(ctx, "query must not be empty")
	}

	results, err := c.service.Search(ctx.UserContext(), *req.Query)
	if err != nil {
		return respondError(ctx, c.logger, err)
	}

	return ctx.JSON(models.SearchResponse{Results: results})
}

func parseErrorDetail(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		if typeErr.Field == "query" {
			return "query must be a string"
		}
		return "invalid request body: " + typeErr.Error()
	case errors.As(err, &syntaxErr):
		return "request body is not valid JSON"
	default:
		return "request body must be a JSON object"
	}
}
