package config

import (
	"errors"
	"fmt"
)

const (
	DefaultPort            = "8000"
	DefaultPineconeIndex   = "procedures-index"
	DefaultNamespace       = "unique_descriptions"
	DefaultTopK            = 10
	DefaultCORSAllowOrigin = "http://localhost:3000"
	DefaultGeminiModel     = "gemini-2.5-flash"
	DefaultGeminiRPM       = 15
)

// MaxTopK is Pinecone's limit on results per query.
const MaxTopK = 10000

// Settings is the process configuration read once at startup.
type Settings struct {
	Profile string
	Port    string

	PineconeAPIKey string
	PineconeIndex  string
	Namespace      string
	TopK           int

	CORSAllowOrigin string

	GeminiAPIKey string
	GeminiModel  string
	// GeminiRPM throttles outbound chat completions to the Gemini quota.
	GeminiRPM int
}

// LoadSettings reads Settings from the environment. PINECONE_API_KEY is required.
func LoadSettings() (Settings, error) {
	topK, err := GetEnvInt("SEARCH_TOP_K", DefaultTopK)
	if err != nil {
		return Settings{}, fmt.Errorf("SEARCH_TOP_K: %w", err)
	}
	if topK <= 0 || topK > MaxTopK {
		return Settings{}, fmt.Errorf("SEARCH_TOP_K must be between 1 and %d, got %d", MaxTopK, topK)
	}

	rpm, err := GetEnvInt("GEMINI_REQUESTS_PER_MINUTE", DefaultGeminiRPM)
	if err != nil {
		return Settings{}, fmt.Errorf("GEMINI_REQUESTS_PER_MINUTE: %w", err)
	}
	if rpm <= 0 {
		return Settings{}, fmt.Errorf("GEMINI_REQUESTS_PER_MINUTE must be positive, got %d", rpm)
	}

	s := Settings{
		Profile:         GetEnvDefault("APP_PROFILE", "standalone"),
		Port:            GetEnvDefault("PORT", DefaultPort),
		PineconeAPIKey:  GetPineconeAPIKey(),
		PineconeIndex:   GetEnvDefault("PINECONE_INDEX", DefaultPineconeIndex),
		Namespace:       GetEnvDefault("PINECONE_NAMESPACE", DefaultNamespace),
		TopK:            topK,
		CORSAllowOrigin: GetEnvDefault("CORS_ALLOW_ORIGIN", DefaultCORSAllowOrigin),
		GeminiAPIKey:    GetGeminiAPIKey(),
		GeminiModel:     GetEnvDefault("GEMINI_MODEL", DefaultGeminiModel),
		GeminiRPM:       rpm,
	}
	if s.PineconeAPIKey == "" {
		return Settings{}, errors.New("PINECONE_API_KEY is required")
	}
	return s, nil
}
