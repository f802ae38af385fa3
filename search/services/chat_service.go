package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"procedures-search-backend/search/models"

	"go.uber.org/zap"
)

const ChatSystemPrompt = `You are a Healthcare Price Transparency Assistant for California hospitals. Your task is to:
1. Analyze the provided procedure descriptions
2. Explain the matches in simple terms
3. Highlight the most relevant procedures
Make your responses concise and easy to understand.`

const noResponseMessage = "No response generated"

// Completer turns a system prompt and a user prompt into a model answer.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

type ChatService struct {
	search    *SearchService
	completer Completer
	logger    *zap.Logger
}

func NewChatService(search *SearchService, completer Completer, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{search: search, completer: completer, logger: logger}
}

// Chat searches with the query, then asks the completer to explain the hits.
func (s *ChatService) Chat(ctx context.Context, query string) (models.ChatResponse, error) {
	hits, err := s.search.Search(ctx, query)
	if err != nil {
		return models.ChatResponse{}, err
	}

	answer, err := s.completer.Complete(ctx, ChatSystemPrompt, BuildChatPrompt(query, hits))
	if err != nil {
		s.logger.Warn("Chat completion failed", zap.Error(err))
		return models.ChatResponse{}, newError(KindCompletionFailed, fmt.Errorf("completion failed: %w", err))
	}
	if strings.TrimSpace(answer) == "" {
		answer = noResponseMessage
	}
	return models.ChatResponse{Message: answer, SearchResults: hits}, nil
}

// BuildChatPrompt lists each hit as "<text> (Score: <score>)" under the query.
func BuildChatPrompt(query string, hits []models.SearchHit) string {
	lines := make([]string, 0, len(hits))
	for _, h := range hits {
		lines = append(lines, fmt.Sprintf("%s (Score: %s)", h.Text, strconv.FormatFloat(h.Score, 'f', -1, 64)))
	}
	return fmt.Sprintf("Query: %s\n\nRelevant procedures found:\n%s", query, strings.Join(lines, "\n"))
}
