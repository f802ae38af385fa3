package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"procedures-search-backend/config"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	chatTemperature     = 0.5
	chatMaxOutputTokens = 500
)

// GeminiService answers chat prompts. It satisfies search/services.Completer.
type GeminiService struct {
	client      *genai.Client
	model       string
	rateLimiter *rate.Limiter
}

// NewGeminiService allows up to requestsPerMinute completions per minute,
// bursting to the full minute's quota.
func NewGeminiService(ctx context.Context, apiKey, model string, requestsPerMinute int) (*GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = config.DefaultGeminiModel
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = config.DefaultGeminiRPM
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiService{
		client:      client,
		model:       model,
		rateLimiter: newRateLimiter(requestsPerMinute),
	}, nil
}

func newRateLimiter(requestsPerMinute int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
}

// throttle waits for a request slot or fails once ctx is done.
func (g *GeminiService) throttle(ctx context.Context) error {
	if err := g.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit exceeded: %w", err)
	}
	return nil
}

func (g *GeminiService) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if err := g.throttle(ctx); err != nil {
		config.Logger.Warn("Gemini request throttled", zap.String("model", g.model), zap.Error(err))
		return "", err
	}

	config.Logger.Info("Sending chat request to Gemini",
		zap.String("model", g.model),
		zap.Int("promptLength", len(prompt)),
	)

	startTime := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, buildContents(prompt), generationConfig(systemPrompt))
	if err != nil {
		config.Logger.Error("Gemini API request failed",
			zap.String("model", g.model),
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return "", err
	}

	responseText := resp.Text()

	config.Logger.Info("Received response from Gemini",
		zap.String("model", g.model),
		zap.Int("responseLength", len(responseText)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return responseText, nil
}

func buildContents(prompt string) []*genai.Content {
	return []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}
}

func generationConfig(systemPrompt string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](chatTemperature),
		MaxOutputTokens: chatMaxOutputTokens,
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}}
	}
	return cfg
}
