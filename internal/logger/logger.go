package logger

import (
	"log/slog"
	"os"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth a warning in the gorm log
const slowQueryThreshold = 200 * time.Millisecond

// InitLogger initializes and configures the application logger based on environment
// Returns a configured slog.Logger instance
func InitLogger(environment string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	// In development, use more verbose logging
	if environment == "development" {
		opts.Level = slog.LevelDebug
		opts.AddSource = true // Include source file and line number
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)

	// Set as default logger so it can be used throughout the application
	slog.SetDefault(logger)

	return logger
}

// NewGormLogger routes gorm's SQL log through the given slog logger.
// Verbose statement logging is only enabled in development.
func NewGormLogger(logger *slog.Logger, environment string) gormlogger.Interface {
	level := gormlogger.Warn
	if environment == "development" {
		level = gormlogger.Info
	}

	return gormlogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
