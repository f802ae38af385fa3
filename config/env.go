package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv loads the given .env files (".env" by default) into the process
// environment. Variables already set in the environment win. It runs before
// InitLogger so LOG_DIR and LOG_LEVEL can come from the file; report the
// returned error with LogEnvError once the logger exists.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("loading %v: %w", files, err)
	}
	return nil
}

func LogEnvError(err error) {
	if err != nil {
		Logger.Warn("No .env file loaded, using process environment", zap.Error(err))
	}
}

func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvDefault(key, fallback string) string {
	if v := GetEnv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt returns fallback when key is unset and an error when it is not an integer.
func GetEnvInt(key string, fallback int) (int, error) {
	v := GetEnv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
