package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/turbot/cloudfront-analytics-forwarder/constants"
)

func Initialize(name string) {
	slog.SetDefault(forwarderLogger(name))
}

// forwarderLogger returns a JSON logger that writes to stderr
// the host (e.g. Lambda) ships stderr to its own log store
func forwarderLogger(name string) *slog.Logger {
	level := getLogLevel()
	if level == constants.LogLevelOff {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	}

	handlerOptions := &slog.HandlerOptions{
		Level: level,
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, handlerOptions)).With("source", name)
}

func getLogLevel() slog.Leveler {
	levelEnv := os.Getenv(constants.EnvLogLevel)

	switch strings.ToLower(levelEnv) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "off":
		return constants.LogLevelOff
	default:
		return slog.LevelInfo
	}
}
