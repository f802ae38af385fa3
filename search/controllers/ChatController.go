package controllers

import (
	"strings"

	"procedures-search-backend/config"
	"procedures-search-backend/search/models"
	"procedures-search-backend/search/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatController struct {
	service *services.ChatService
	logger  *zap.Logger
}

func NewChatController(service *services.ChatService, logger *zap.Logger) *ChatController {
	if logger == nil {
		logger = config.Logger
	}
	return &ChatController{service: service, logger: logger}
}

// ChatProceduresController uses the last message as the search query.
func (c *ChatController) ChatProceduresController(ctx *fiber.Ctx) error {
	var req models.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return validationError(ctx, parseErrorDetail(err))
	}
	if len(req.Messages) == 0 {
		return validationError(ctx, "messages must not be empty")
	}
	query := req.Messages[len(req.Messages)-1].Content
	if strings.TrimSpace(query) == "" {
		return validationError(ctx, "last message content must not be empty")
	}

	resp, err := c.service.Chat(ctx.UserContext(), query)
	if err != nil {
		return respondError(ctx, c.logger, err)
	}
	return ctx.JSON(resp)
}
