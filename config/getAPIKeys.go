package config

func GetPineconeAPIKey() string {
	return GetEnv("PINECONE_API_KEY")
}

// GetGeminiAPIKey is optional; without it the chat route is not registered.
func GetGeminiAPIKey() string {
	key := GetEnv("GEMINI_API_KEY")
	if key == "" {
		Logger.Warn("GEMINI_API_KEY not set, chat route disabled")
	}
	return key
}
