package rlog

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	logger   = zerolog.New(os.Stderr).With().Timestamp().Logger()
	loggerMu sync.RWMutex
)

// Initialize sets up the global logger with the level name (debug, info, warn, error)
func Initialize(level string) {
	InitializeWithWriter(level, zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	})
}

// InitializeWithWriter sets up the global logger writing to w
func InitializeWithWriter(level string, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	l := zerolog.New(w).With().Timestamp().Logger()

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
	log.Logger = l
}

// Get returns the global logger instance
func Get() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// GetForComponent returns a logger with a component field for better filtering
func GetForComponent(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}
