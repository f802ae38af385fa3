package config

import (
	"fmt"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is replaced by InitLogger. The no-op default keeps packages usable in tests.
var Logger *zap.Logger = zap.NewNop()

// InitLogger initializes the Zap logger with Lumberjack log rotation in LOG_DIR
// (default "logs") and mirrors every entry to stdout.
func InitLogger() {
	logDir := GetEnvDefault("LOG_DIR", "logs")

	// Ensure the log directory exists
	err := os.MkdirAll(logDir, os.ModePerm)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logs directory: %v", err))
	}

	// Set up log rotation using Lumberjack
	logFile := &lumberjack.Logger{
		Filename:   fmt.Sprintf("%s/%s.log", logDir, time.Now().Format("2006-01-02")), // Logs will be named by date
		MaxSize:    10,                                                                // Megabytes
		MaxBackups: 7,
		MaxAge:     28, // Days
		Compress:   true,
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	level := logLevel()

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(logFile), level),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	)

	Logger = zap.New(core, zap.AddCaller())
}

// InitConsoleLogger logs to stdout only. Used where the filesystem is read-only
// (serverless hosts).
func InitConsoleLogger() {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	Logger = zap.New(zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), logLevel()))
}

func logLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(GetEnvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
